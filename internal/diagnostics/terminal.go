package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/tesselate-labs/spatialfuse/internal/sparse"
)

// RenderTerminal writes an ASCII histogram of g's edge values to w,
// one bar per bin. Handy when no display is around for the PNG.
func RenderTerminal(w io.Writer, g *sparse.CSR, bins int, title string) (EdgeSummary, error) {
	summary, err := Summarize(g, bins)
	if err != nil {
		return EdgeSummary{}, err
	}

	counts, width := binCounts(g.Data(), summary.Min, summary.Max, bins)

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	const maxBarWidth = 50
	fmt.Fprintf(w, "\n%s (%d edges): median=%.6g mode=%.6g\n", title, summary.Edges, summary.Median, summary.Mode)
	fmt.Fprintln(w, "bin lower bound | count  | bar")
	fmt.Fprintln(w, "----------------|--------|"+strings.Repeat("-", maxBarWidth))
	for b, c := range counts {
		if c == 0 {
			continue
		}
		barWidth := c * maxBarWidth / maxCount
		bar := strings.Repeat("█", barWidth)
		if barWidth == 0 {
			bar = "▏"
		}
		fmt.Fprintf(w, "%15.6g | %6d | %s\n", summary.Min+float64(b)*width, c, bar)
	}
	return summary, nil
}
