package domain

import "math"

// MarketAssumptions holds the expected yearly return and volatility (standard
// deviation) of each asset class, all in percent.
type MarketAssumptions struct {
	BondReturnPct      float64 `yaml:"bond_return_pct" json:"bond_return_pct"`
	BondVolatilityPct  float64 `yaml:"bond_volatility_pct" json:"bond_volatility_pct"`
	StockReturnPct     float64 `yaml:"stock_return_pct" json:"stock_return_pct"`
	StockVolatilityPct float64 `yaml:"stock_volatility_pct" json:"stock_volatility_pct"`
}

// Validate rejects negative or non-finite volatilities and non-finite means.
func (m MarketAssumptions) Validate() error {
	fields := []struct {
		name  string
		value float64
		sd    bool
	}{
		{"bond_return_pct", m.BondReturnPct, false},
		{"bond_volatility_pct", m.BondVolatilityPct, true},
		{"stock_return_pct", m.StockReturnPct, false},
		{"stock_volatility_pct", m.StockVolatilityPct, true},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return invalidParameter(f.name, f.value, "must be a finite number")
		}
		if f.sd && f.value < 0 {
			return invalidParameter(f.name, f.value, "volatility cannot be negative")
		}
	}
	return nil
}

// IsDeterministic reports whether both asset classes have zero volatility.
func (m MarketAssumptions) IsDeterministic() bool {
	return m.BondVolatilityPct == 0 && m.StockVolatilityPct == 0
}

// YearReturn is one simulated year of percentage returns.
type YearReturn struct {
	BondPct  float64 `json:"bond_pct"`
	StockPct float64 `json:"stock_pct"`
}

// MarketDraw is the ordered sequence of yearly returns for one run.
type MarketDraw struct {
	Years []YearReturn `json:"years"`
}

// Len returns the number of drawn years.
func (d MarketDraw) Len() int { return len(d.Years) }

// Slice returns the sub-draw covering years [from, to).
func (d MarketDraw) Slice(from, to int) MarketDraw {
	return MarketDraw{Years: d.Years[from:to]}
}

// BondReturns returns the bond column of the draw.
func (d MarketDraw) BondReturns() []float64 {
	out := make([]float64, len(d.Years))
	for i, y := range d.Years {
		out[i] = y.BondPct
	}
	return out
}

// StockReturns returns the stock column of the draw.
func (d MarketDraw) StockReturns() []float64 {
	out := make([]float64, len(d.Years))
	for i, y := range d.Years {
		out[i] = y.StockPct
	}
	return out
}

// DrawStats summarizes the realized returns of a draw.
type DrawStats struct {
	BondMean  float64 `json:"bond_mean"`
	BondSD    float64 `json:"bond_sd"`
	StockMean float64 `json:"stock_mean"`
	StockSD   float64 `json:"stock_sd"`
}

// Stats returns the sample mean and population standard deviation of each column.
func (d MarketDraw) Stats() DrawStats {
	bm, bsd := meanSD(d.BondReturns())
	sm, ssd := meanSD(d.StockReturns())
	return DrawStats{BondMean: bm, BondSD: bsd, StockMean: sm, StockSD: ssd}
}

func meanSD(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}
