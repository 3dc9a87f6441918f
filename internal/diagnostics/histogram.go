// Package diagnostics summarizes and renders the edge-value
// distribution of a neighbor graph, which is the quickest way to sanity
// check a chosen neighbor count or radius.
package diagnostics

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tesselate-labs/spatialfuse/internal/sparse"
)

// ErrNoEdges is returned when a graph has nothing to summarize.
var ErrNoEdges = errors.New("diagnostics: graph has no edges")

// DefaultBins matches the histogram resolution used for edge reviews.
const DefaultBins = 100

// EdgeSummary describes the distribution of a graph's edge values.
type EdgeSummary struct {
	Median float64 `json:"median"`
	// Mode is the left edge of the most populated histogram bin.
	Mode  float64 `json:"mode"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Edges int     `json:"edges"`
}

// Summarize computes the edge-value summary of g using the given
// number of histogram bins for the mode estimate.
func Summarize(g *sparse.CSR, bins int) (EdgeSummary, error) {
	if bins < 1 {
		return EdgeSummary{}, fmt.Errorf("diagnostics: %d bins, want at least 1", bins)
	}
	if g.NNZ() == 0 {
		return EdgeSummary{}, ErrNoEdges
	}

	vals := append([]float64(nil), g.Data()...)
	sort.Float64s(vals)

	lo, hi := vals[0], vals[len(vals)-1]
	summary := EdgeSummary{
		Median: stat.Quantile(0.5, stat.Empirical, vals, nil),
		Min:    lo,
		Max:    hi,
		Edges:  len(vals),
	}

	counts, width := binCounts(vals, lo, hi, bins)
	best := 0
	for b, c := range counts {
		if c > counts[best] {
			best = b
		}
	}
	summary.Mode = lo + float64(best)*width
	return summary, nil
}

func binCounts(vals []float64, lo, hi float64, bins int) ([]int, float64) {
	counts := make([]int, bins)
	if hi == lo {
		counts[0] = len(vals)
		return counts, 0
	}
	width := (hi - lo) / float64(bins)
	for _, v := range vals {
		b := int((v - lo) / width)
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}
	return counts, width
}

// RenderHistogram writes a PNG histogram of g's edge values to path,
// with vertical markers at the median (red) and mode (green), and
// returns the summary it drew.
func RenderHistogram(g *sparse.CSR, bins int, title, path string) (EdgeSummary, error) {
	summary, err := Summarize(g, bins)
	if err != nil {
		return EdgeSummary{}, err
	}

	p := plot.New()
	p.Title.Text = "Histogram of " + title
	p.X.Label.Text = title
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(g.Data()), bins)
	if err != nil {
		return EdgeSummary{}, fmt.Errorf("histogram of %q: %w", title, err)
	}
	p.Add(h)

	_, _, _, top := h.DataRange()
	for _, marker := range []struct {
		x float64
		c color.RGBA
	}{
		{summary.Median, color.RGBA{R: 0xcc, A: 0xff}},
		{summary.Mode, color.RGBA{G: 0xcc, A: 0xff}},
	} {
		line, err := plotter.NewLine(plotter.XYs{{X: marker.x, Y: 0}, {X: marker.x, Y: top}})
		if err != nil {
			return EdgeSummary{}, fmt.Errorf("marker line: %w", err)
		}
		line.Color = marker.c
		p.Add(line)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return EdgeSummary{}, fmt.Errorf("save histogram: %w", err)
	}
	return summary, nil
}
