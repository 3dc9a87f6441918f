// Package neighbors builds distance-weighted spatial neighbor graphs
// from point coordinates, backed by a kd-tree index.
package neighbors

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// ErrInvalidArgument is the root of all argument validation failures in
// this package; use errors.Is to test for it.
var ErrInvalidArgument = errors.New("neighbors: invalid argument")

// point is one coordinate row tagged with its row index so query
// results can be mapped back into graph rows.
type point struct {
	vec []float64
	id  int
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	return p.vec[d] - q.vec[d]
}

func (p point) Dims() int { return len(p.vec) }

// Distance returns the squared Euclidean distance, the kd-tree's
// native metric. Callers take the square root when reporting.
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	var sum float64
	for i, v := range p.vec {
		d := v - q.vec[i]
		sum += d * d
	}
	return sum
}

type points []point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }
func (p points) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(pointPlane{points: p, Dim: d}, kdtree.MedianOfRandoms(pointPlane{points: p, Dim: d}, 100))
}

type pointPlane struct {
	points
	kdtree.Dim
}

func (p pointPlane) Less(i, j int) bool { return p.points[i].vec[p.Dim] < p.points[j].vec[p.Dim] }
func (p pointPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p pointPlane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }

// Index is a spatial index over a fixed coordinate matrix. Queries are
// read-only, so one Index can serve concurrent graph builds and can be
// reused across calls that share coordinates.
type Index struct {
	tree *kdtree.Tree
	pts  points
}

// NewIndex builds a kd-tree over the rows of coords (one point per
// row).
func NewIndex(coords *mat.Dense) (*Index, error) {
	n, d := coords.Dims()
	if n == 0 || d == 0 {
		return nil, fmt.Errorf("%w: empty coordinate matrix %dx%d", ErrInvalidArgument, n, d)
	}
	pts := make(points, n)
	for i := 0; i < n; i++ {
		pts[i] = point{vec: coords.RawRowView(i), id: i}
	}
	// The tree reorders its own copy; keep pts in row order for queries.
	tree := kdtree.New(append(points(nil), pts...), true)
	return &Index{tree: tree, pts: pts}, nil
}

// Len returns the number of indexed points.
func (x *Index) Len() int { return len(x.pts) }

type neighbor struct {
	id   int
	dist float64
}

// nearest returns the k nearest neighbors of point i, self excluded,
// ordered by increasing distance. Fewer than k are returned when the
// index holds too few points.
func (x *Index) nearest(i, k int) []neighbor {
	keeper := kdtree.NewNKeeper(k + 1)
	x.tree.NearestSet(keeper, x.pts[i])
	nbrs := x.collect(i, keeper.Heap)
	// Distance ties at the k-th place can crowd out the query point
	// itself; keep the degree fixed regardless.
	if len(nbrs) > k {
		nbrs = nbrs[:k]
	}
	return nbrs
}

// within returns all neighbors of point i closer than or at radius r,
// self excluded, ordered by increasing distance.
func (x *Index) within(i int, r float64) []neighbor {
	keeper := kdtree.NewDistKeeper(r * r)
	x.tree.NearestSet(keeper, x.pts[i])
	return x.collect(i, keeper.Heap)
}

func (x *Index) collect(self int, h kdtree.Heap) []neighbor {
	out := make([]neighbor, 0, len(h))
	for len(h) > 0 {
		item := heap.Pop(&h).(kdtree.ComparableDist)
		p, ok := item.Comparable.(point)
		if !ok || p.id == self {
			// Keeper sentinel or the query point itself.
			continue
		}
		out = append(out, neighbor{id: p.id, dist: math.Sqrt(item.Dist)})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].dist < out[b].dist })
	return out
}
