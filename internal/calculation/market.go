package calculation

import (
	"math/rand/v2"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// AssetAssumption is the yearly return distribution of one asset class, in percent.
type AssetAssumption struct {
	ReturnPct     float64
	VolatilityPct float64
}

// Draw returns n independent yearly returns. Zero volatility yields n copies of
// the expected return and consumes no randomness.
func (a AssetAssumption) Draw(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	if a.VolatilityPct == 0 {
		for i := range out {
			out[i] = a.ReturnPct
		}
		return out
	}
	for i := range out {
		out[i] = a.ReturnPct + a.VolatilityPct*rng.NormFloat64()
	}
	return out
}

// MarketModel generates yearly bond and stock returns.
type MarketModel struct {
	Bond  AssetAssumption
	Stock AssetAssumption
}

// NewMarketModel validates the assumptions and builds a model from them.
func NewMarketModel(m domain.MarketAssumptions) (MarketModel, error) {
	if err := m.Validate(); err != nil {
		return MarketModel{}, err
	}
	return MarketModel{
		Bond:  AssetAssumption{ReturnPct: m.BondReturnPct, VolatilityPct: m.BondVolatilityPct},
		Stock: AssetAssumption{ReturnPct: m.StockReturnPct, VolatilityPct: m.StockVolatilityPct},
	}, nil
}

// Draw generates a fresh market path of the given length. Bond and stock
// volatilities are checked independently: each asset is drawn from its own
// distribution, bonds first.
func (mm MarketModel) Draw(rng *rand.Rand, years int) domain.MarketDraw {
	if rng == nil {
		rng = NewTrialRand(seedFunc(), 0)
	}
	bonds := mm.Bond.Draw(rng, years)
	stocks := mm.Stock.Draw(rng, years)
	draw := domain.MarketDraw{Years: make([]domain.YearReturn, years)}
	for i := range draw.Years {
		draw.Years[i] = domain.YearReturn{BondPct: bonds[i], StockPct: stocks[i]}
	}
	return draw
}
