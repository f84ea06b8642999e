package output

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// DefaultBins is the number of histogram bins used for outcome charts.
const DefaultBins = 20

// Histogram is a fixed-width binning of simulation outcomes.
type Histogram struct {
	Edges  []float64 // len(Counts)+1 ascending bin edges
	Counts []int
}

// NewHistogram bins values into the given number of equal-width bins spanning
// [min, max]. The last bin is closed on the right. When every value is equal
// the range is widened by 0.5 on each side.
func NewHistogram(values []float64, bins int) Histogram {
	if bins <= 0 {
		bins = DefaultBins
	}
	h := Histogram{Edges: make([]float64, bins+1), Counts: make([]int, bins)}
	if len(values) == 0 {
		return h
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)
	for i := range h.Edges {
		h.Edges[i] = lo + float64(i)*width
	}
	h.Edges[bins] = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		h.Counts[i]++
	}
	return h
}

// Total returns the number of binned values.
func (h Histogram) Total() int {
	n := 0
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// Plot renders the bin counts as an ASCII chart.
func (h Histogram) Plot(width, height int) string {
	if h.Total() == 0 {
		return "(no outcomes to chart)"
	}
	data := make([]float64, len(h.Counts))
	for i, c := range h.Counts {
		data[i] = float64(c)
	}
	caption := fmt.Sprintf("trials per bin, %s to %s", HumanFormat(h.Edges[0]), HumanFormat(h.Edges[len(h.Edges)-1]))
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
