// Package feature standardizes feature matrices and fuses self- and
// neighbor-aggregated representations into one augmented matrix.
package feature

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/tesselate-labs/spatialfuse/internal/sparse"
)

// ErrInvalidArgument is the root of all argument validation failures in
// this package; use errors.Is to test for it.
var ErrInvalidArgument = errors.New("feature: invalid argument")

// Axis selects the reduction direction for per-axis statistics,
// matching the usual numeric convention: AxisColumns reduces over rows
// and yields one statistic per column.
type Axis int

const (
	AxisColumns Axis = 0
	AxisRows    Axis = 1
)

func (a Axis) valid() bool { return a == AxisColumns || a == AxisRows }

// Matrix is a feature matrix in either dense or sparse representation.
// Both variants expose the moment accessors standardization needs, so
// callers never branch on the concrete representation.
type Matrix interface {
	Dims() (rows, cols int)
	// Mean returns E[x] along the given axis.
	Mean(axis Axis) []float64
	// MeanSquares returns E[x²] along the given axis. Implicit
	// zeros of a sparse matrix square to zero, so sparse inputs
	// compute this without densifying.
	MeanSquares(axis Axis) []float64
	// ToDense materializes a fresh dense copy; the receiver keeps
	// ownership of its own storage.
	ToDense() *mat.Dense
}

// Dense wraps a gonum dense matrix as a Matrix.
type Dense struct {
	M *mat.Dense
}

// Sparse wraps a CSR matrix as a Matrix.
type Sparse struct {
	M *sparse.CSR
}

// FromDense adapts a gonum dense matrix.
func FromDense(m *mat.Dense) Dense { return Dense{M: m} }

// FromCSR adapts a CSR matrix.
func FromCSR(m *sparse.CSR) Sparse { return Sparse{M: m} }

func (d Dense) Dims() (int, int) { return d.M.Dims() }

func (d Dense) Mean(axis Axis) []float64 {
	return d.reduce(axis, func(v float64) float64 { return v })
}

func (d Dense) MeanSquares(axis Axis) []float64 {
	return d.reduce(axis, func(v float64) float64 { return v * v })
}

func (d Dense) reduce(axis Axis, f func(float64) float64) []float64 {
	rows, cols := d.M.Dims()
	if axis == AxisColumns {
		out := make([]float64, cols)
		for i := 0; i < rows; i++ {
			row := d.M.RawRowView(i)
			for j, v := range row {
				out[j] += f(v)
			}
		}
		scale(out, 1/float64(rows))
		return out
	}
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		var sum float64
		for _, v := range d.M.RawRowView(i) {
			sum += f(v)
		}
		out[i] = sum / float64(cols)
	}
	return out
}

func (d Dense) ToDense() *mat.Dense {
	var out mat.Dense
	out.CloneFrom(d.M)
	return &out
}

func (s Sparse) Dims() (int, int) { return s.M.Dims() }

func (s Sparse) Mean(axis Axis) []float64 {
	return s.reduce(axis, func(v float64) float64 { return v })
}

func (s Sparse) MeanSquares(axis Axis) []float64 {
	return s.reduce(axis, func(v float64) float64 { return v * v })
}

func (s Sparse) reduce(axis Axis, f func(float64) float64) []float64 {
	rows, cols := s.M.Dims()
	if axis == AxisColumns {
		out := make([]float64, cols)
		for i := 0; i < rows; i++ {
			vals, idx := s.M.Row(i)
			for p, j := range idx {
				out[j] += f(vals[p])
			}
		}
		scale(out, 1/float64(rows))
		return out
	}
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		vals, _ := s.M.Row(i)
		var sum float64
		for _, v := range vals {
			sum += f(v)
		}
		out[i] = sum / float64(cols)
	}
	return out
}

func (s Sparse) ToDense() *mat.Dense { return s.M.ToDense() }

func scale(s []float64, c float64) {
	for i := range s {
		s[i] *= c
	}
}

func checkAxis(axis Axis) error {
	if !axis.valid() {
		return fmt.Errorf("%w: axis %d, want 0 or 1", ErrInvalidArgument, axis)
	}
	return nil
}
