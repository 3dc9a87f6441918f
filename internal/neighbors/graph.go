package neighbors

import (
	"fmt"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/tesselate-labs/spatialfuse/internal/sparse"
)

// GraphConfig selects how the neighbor graph is built. At least one of
// Neighbours and Radius must be set. With Neighbours alone every row
// gets exactly that many edges; with Radius alone a row gets all points
// within the radius; with both, the fixed-degree graph is built first
// and edges longer than Radius are dropped, so rows may end up with
// fewer than Neighbours edges.
type GraphConfig struct {
	// Neighbours is the fixed row degree of a k-nearest graph.
	// Zero means unset.
	Neighbours int
	// Radius bounds edge length. Zero means unset.
	Radius float64
	// Index is an optional prebuilt spatial index over the same
	// coordinates; one is built internally when nil.
	Index *Index
}

const queryParallelThreshold = 1024

// DistanceGraph builds the N×N sparse graph of pairwise Euclidean
// distances described by cfg. A point is never its own neighbor: the
// query point is excluded from its own result even when another point
// is coincident with it.
func DistanceGraph(coords *mat.Dense, cfg GraphConfig) (*sparse.CSR, error) {
	n, _ := coords.Dims()
	if cfg.Neighbours < 0 {
		return nil, fmt.Errorf("%w: negative neighbour count %d", ErrInvalidArgument, cfg.Neighbours)
	}
	if cfg.Radius < 0 {
		return nil, fmt.Errorf("%w: negative radius %v", ErrInvalidArgument, cfg.Radius)
	}
	if cfg.Neighbours == 0 && cfg.Radius == 0 {
		return nil, fmt.Errorf("%w: neither neighbour count nor radius set", ErrInvalidArgument)
	}
	if cfg.Neighbours >= n && n > 0 {
		return nil, fmt.Errorf("%w: %d neighbours requested from %d points", ErrInvalidArgument, cfg.Neighbours, n)
	}

	idx := cfg.Index
	if idx == nil {
		var err error
		if idx, err = NewIndex(coords); err != nil {
			return nil, err
		}
	}
	if idx.Len() != n {
		return nil, fmt.Errorf("%w: index over %d points, coordinates have %d rows", ErrInvalidArgument, idx.Len(), n)
	}

	var query func(i int) []neighbor
	if cfg.Neighbours > 0 {
		query = func(i int) []neighbor { return idx.nearest(i, cfg.Neighbours) }
	} else {
		query = func(i int) []neighbor { return idx.within(i, cfg.Radius) }
	}

	rows := queryAll(n, query)
	g, err := assemble(rows, n)
	if err != nil {
		return nil, err
	}

	if cfg.Neighbours > 0 && cfg.Radius > 0 {
		g.FilterGreaterThan(cfg.Radius)
	}
	return g, nil
}

// queryAll runs the per-point query for every row, fanning out over
// disjoint row ranges for large inputs. Queries only read the index.
func queryAll(n int, query func(i int) []neighbor) [][]neighbor {
	rows := make([][]neighbor, n)
	if n < queryParallelThreshold {
		for i := 0; i < n; i++ {
			rows[i] = query(i)
		}
		return rows
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				rows[i] = query(i)
			}
		}(lo, hi)
	}
	wg.Wait()
	return rows
}

func assemble(rows [][]neighbor, cols int) (*sparse.CSR, error) {
	nnz := 0
	for _, r := range rows {
		nnz += len(r)
	}
	data := make([]float64, 0, nnz)
	indices := make([]int, 0, nnz)
	indptr := make([]int, len(rows)+1)
	for i, r := range rows {
		for _, nb := range r {
			data = append(data, nb.dist)
			indices = append(indices, nb.id)
		}
		indptr[i+1] = len(data)
	}
	return sparse.New(len(rows), cols, data, indices, indptr)
}
