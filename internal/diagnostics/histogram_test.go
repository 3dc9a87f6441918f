package diagnostics

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesselate-labs/spatialfuse/internal/sparse"
)

func edgeGraph(t *testing.T, values []float64) *sparse.CSR {
	t.Helper()
	indices := make([]int, len(values))
	for i := range indices {
		indices[i] = i
	}
	g, err := sparse.New(1, len(values), values, indices, []int{0, len(values)})
	require.NoError(t, err)
	return g
}

func TestSummarize(t *testing.T) {
	// Values clustered near 1 with one outlier at 9.
	g := edgeGraph(t, []float64{1, 1.1, 0.9, 1.05, 0.95, 9})

	s, err := Summarize(g, 10)
	require.NoError(t, err)

	assert.Equal(t, 6, s.Edges)
	assert.Equal(t, 0.9, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.InDelta(t, 1.0, s.Median, 0.11)
	// The cluster sits in the first bin, so the mode is its left edge.
	assert.InDelta(t, 0.9, s.Mode, 1e-12)
}

func TestSummarizeConstantValues(t *testing.T) {
	g := edgeGraph(t, []float64{2, 2, 2})

	s, err := Summarize(g, DefaultBins)
	require.NoError(t, err)

	assert.Equal(t, 2.0, s.Median)
	assert.Equal(t, 2.0, s.Mode)
}

func TestSummarizeEmptyGraph(t *testing.T) {
	g, err := sparse.New(2, 2, nil, nil, []int{0, 0, 0})
	require.NoError(t, err)

	_, err = Summarize(g, DefaultBins)
	assert.ErrorIs(t, err, ErrNoEdges)
}

func TestRenderTerminal(t *testing.T) {
	g := edgeGraph(t, []float64{1, 1, 2, 3, 3, 3})

	var buf bytes.Buffer
	s, err := RenderTerminal(&buf, g, 4, "edge distances")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "edge distances (6 edges)")
	assert.Contains(t, buf.String(), "█")
	assert.InDelta(t, 2.5, s.Mode, 1e-12)
}

func TestRenderHistogramWritesPNG(t *testing.T) {
	g := edgeGraph(t, []float64{1, 1.5, 2, 2.5, 3, 3.5, 2.1, 2.2})
	path := filepath.Join(t.TempDir(), "edges.png")

	s, err := RenderHistogram(g, 8, "edge weights", path)
	require.NoError(t, err)
	assert.Equal(t, 8, s.Edges)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
