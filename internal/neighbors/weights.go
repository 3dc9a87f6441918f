package neighbors

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/tesselate-labs/spatialfuse/internal/sparse"
)

// Decay selects how edge distances turn into affinity weights.
type Decay int

const (
	// DecayReciprocal weights an edge by the inverse of its distance.
	DecayReciprocal Decay = iota
	// DecayUniform weights every edge equally.
	DecayUniform
)

func (d Decay) String() string {
	switch d {
	case DecayReciprocal:
		return "reciprocal"
	case DecayUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// ParseDecay maps a configuration string onto a Decay.
func ParseDecay(s string) (Decay, error) {
	switch strings.ToLower(s) {
	case "reciprocal":
		return DecayReciprocal, nil
	case "uniform":
		return DecayUniform, nil
	default:
		return 0, fmt.Errorf("%w: unknown decay %q", ErrInvalidArgument, s)
	}
}

// minDistance floors edge distances before reciprocal weighting.
// Self-edges are already excluded by the graph builder, but distinct
// points can still be coincident; flooring gives them a large finite
// weight that dominates the row after normalization instead of an Inf
// that would poison the row sum.
const minDistance = 1e-12

// WeightsFromDistances converts a distance graph into a row-normalized
// affinity graph. The input graph is not modified.
func WeightsFromDistances(distances *sparse.CSR, decay Decay) (*sparse.CSR, error) {
	w := distances.Clone()
	data := w.Data()
	switch decay {
	case DecayReciprocal:
		for i, d := range data {
			data[i] = 1 / max(d, minDistance)
		}
	case DecayUniform:
		for i := range data {
			data[i] = 1
		}
	default:
		return nil, fmt.Errorf("%w: unknown decay %d", ErrInvalidArgument, decay)
	}
	w.NormalizeRows()
	return w, nil
}

// SpatialWeights builds the fixed-degree distance graph for coords and
// derives its normalized weight graph. Both graphs are returned: the
// weight graph drives neighbor aggregation, the distance graph feeds
// edge diagnostics. index may be nil, in which case one is built from
// coords.
func SpatialWeights(coords *mat.Dense, numNeighbours int, decay Decay, index *Index) (weights, distances *sparse.CSR, err error) {
	distances, err = DistanceGraph(coords, GraphConfig{Neighbours: numNeighbours, Index: index})
	if err != nil {
		return nil, nil, err
	}
	weights, err = WeightsFromDistances(distances, decay)
	if err != nil {
		return nil, nil, err
	}
	return weights, distances, nil
}
