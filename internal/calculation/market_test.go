package calculation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

func TestAssetDrawZeroVolatility(t *testing.T) {
	a := AssetAssumption{ReturnPct: 4.5}
	got := a.Draw(nil, 5)
	assert.Equal(t, []float64{4.5, 4.5, 4.5, 4.5, 4.5}, got)
}

func TestAssetDrawIsSeeded(t *testing.T) {
	a := AssetAssumption{ReturnPct: 10, VolatilityPct: 20}
	first := a.Draw(NewTrialRand(7, 3), 50)
	second := a.Draw(NewTrialRand(7, 3), 50)
	other := a.Draw(NewTrialRand(7, 4), 50)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestAssetDrawMoments(t *testing.T) {
	a := AssetAssumption{ReturnPct: 10, VolatilityPct: 20}
	draw := domain.MarketDraw{}
	for _, r := range a.Draw(NewTrialRand(1, 0), 20000) {
		draw.Years = append(draw.Years, domain.YearReturn{BondPct: r})
	}
	stats := draw.Stats()
	assert.InDelta(t, 10, stats.BondMean, 1.0)
	assert.InDelta(t, 20, stats.BondSD, 1.0)
}

func TestMarketModelChecksVolatilitiesIndependently(t *testing.T) {
	mm, err := NewMarketModel(domain.MarketAssumptions{
		BondReturnPct:      4,
		BondVolatilityPct:  0,
		StockReturnPct:     10,
		StockVolatilityPct: 20,
	})
	require.NoError(t, err)

	draw := mm.Draw(NewTrialRand(99, 0), 30)
	require.Equal(t, 30, draw.Len())
	for _, b := range draw.BondReturns() {
		assert.Equal(t, 4.0, b)
	}
	stats := draw.Stats()
	assert.Greater(t, stats.StockSD, 0.0, "stock returns must vary even when bonds are flat")
}

func TestNewMarketModelRejectsNegativeVolatility(t *testing.T) {
	_, err := NewMarketModel(domain.MarketAssumptions{BondReturnPct: 4, BondVolatilityPct: -1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidParameter))

	var perr *domain.InvalidParameterError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "bond_volatility_pct", perr.Field)
}
