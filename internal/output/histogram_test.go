package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistogram(t *testing.T) {
	values := make([]float64, 0, 100)
	for i := 0; i < 100; i++ {
		values = append(values, float64(i))
	}
	h := NewHistogram(values, 10)
	require.Len(t, h.Counts, 10)
	require.Len(t, h.Edges, 11)
	assert.Equal(t, 0.0, h.Edges[0])
	assert.Equal(t, 99.0, h.Edges[10])
	assert.Equal(t, 100, h.Total())
	// the maximum lands in the closed last bin
	assert.Equal(t, 10, h.Counts[9])
}

func TestNewHistogramConstantValues(t *testing.T) {
	h := NewHistogram([]float64{7, 7, 7}, 4)
	assert.Equal(t, 6.5, h.Edges[0])
	assert.Equal(t, 7.5, h.Edges[4])
	assert.Equal(t, 3, h.Total())
}

func TestNewHistogramEmpty(t *testing.T) {
	h := NewHistogram(nil, 0)
	assert.Len(t, h.Counts, DefaultBins)
	assert.Equal(t, 0, h.Total())
	assert.Equal(t, "(no outcomes to chart)", h.Plot(60, 10))
}

func TestHistogramPlot(t *testing.T) {
	h := NewHistogram([]float64{1000, 2000, 2500, 2600, 4000, 1e6}, 5)
	chart := h.Plot(40, 6)
	assert.True(t, strings.Contains(chart, "trials per bin, $1.0k to $1.0M"), chart)
}
