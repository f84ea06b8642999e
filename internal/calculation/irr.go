package calculation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// DefaultImagTolerance is the largest imaginary part a root may have and
// still be treated as real.
const DefaultImagTolerance = 1e-5

// AnnualizedReturnSolver extracts the internal rate of return of a cash-flow vector.
type AnnualizedReturnSolver struct {
	ImagTolerance    float64
	PolishIterations int
}

// NewAnnualizedReturnSolver returns a solver with the default tolerance.
func NewAnnualizedReturnSolver() *AnnualizedReturnSolver {
	return &AnnualizedReturnSolver{
		ImagTolerance:    DefaultImagTolerance,
		PolishIterations: 20,
	}
}

// Solve treats cashFlows as polynomial coefficients, earliest year first
// (highest power), and returns the annualized return in percent: (x-1)×100
// for the real root x closest to 1.
func (s *AnnualizedReturnSolver) Solve(cashFlows []float64) (float64, error) {
	for i, c := range cashFlows {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return 0, &domain.InvalidParameterError{Field: fmt.Sprintf("cash_flows[%d]", i), Value: c, Reason: "must be finite"}
		}
	}
	coeffs := trimLeadingZeros(cashFlows)
	roots, err := PolynomialRoots(coeffs)
	if err != nil {
		return 0, err
	}

	tol := s.ImagTolerance
	if tol <= 0 {
		tol = DefaultImagTolerance
	}
	best, found := 0.0, false
	for _, r := range roots {
		if math.Abs(imag(r)) > tol {
			continue
		}
		if !found || math.Abs(real(r)-1) < math.Abs(best-1) {
			best, found = real(r), true
		}
	}
	if !found {
		degree := len(coeffs) - 1
		if degree < 0 {
			degree = 0
		}
		return 0, &domain.NoValidRootError{Degree: degree, Roots: roots}
	}

	best = polishRoot(coeffs, best, s.PolishIterations)
	return (best - 1) * 100, nil
}

// PolynomialRoots returns every complex root of the polynomial whose
// coefficients are given highest power first, as the eigenvalues of its
// companion matrix.
func PolynomialRoots(coeffs []float64) ([]complex128, error) {
	c := trimLeadingZeros(coeffs)
	end := len(c)
	for end > 0 && c[end-1] == 0 {
		end--
	}
	zeroRoots := len(c) - end
	c = c[:end]

	degree := len(c) - 1
	roots := make([]complex128, 0, max(degree, 0)+zeroRoots)
	switch {
	case degree == 1:
		roots = append(roots, complex(-c[1]/c[0], 0))
	case degree > 1:
		companion := mat.NewDense(degree, degree, nil)
		for k := 0; k < degree; k++ {
			companion.Set(0, k, -c[k+1]/c[0])
		}
		for k := 1; k < degree; k++ {
			companion.Set(k, k-1, 1)
		}
		var eig mat.Eigen
		if ok := eig.Factorize(companion, mat.EigenNone); !ok {
			return nil, fmt.Errorf("eigenvalue decomposition of degree %d companion matrix failed", degree)
		}
		roots = append(roots, eig.Values(nil)...)
	}
	for k := 0; k < zeroRoots; k++ {
		roots = append(roots, 0)
	}
	return roots, nil
}

// polishRoot refines a real root with Newton steps, keeping a step only when
// it reduces the residual.
func polishRoot(coeffs []float64, x float64, iterations int) float64 {
	for k := 0; k < iterations; k++ {
		p, dp := evalPoly(coeffs, x)
		if p == 0 || dp == 0 {
			return x
		}
		next := x - p/dp
		if math.IsNaN(next) || math.IsInf(next, 0) || next == x {
			return x
		}
		if pn, _ := evalPoly(coeffs, next); math.Abs(pn) >= math.Abs(p) {
			return x
		}
		x = next
	}
	return x
}

// evalPoly evaluates the polynomial and its derivative at x with Horner's scheme.
func evalPoly(coeffs []float64, x float64) (p, dp float64) {
	for _, c := range coeffs {
		dp = dp*x + p
		p = p*x + c
	}
	return p, dp
}

func trimLeadingZeros(coeffs []float64) []float64 {
	i := 0
	for i < len(coeffs) && coeffs[i] == 0 {
		i++
	}
	return coeffs[i:]
}
