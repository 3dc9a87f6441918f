// Package sparse implements compressed sparse row (CSR) matrices used
// for spatial neighbor graphs and sparse feature matrices.
package sparse

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrShape is returned when a CSR triple or an operand pair is
// dimensionally inconsistent.
var ErrShape = errors.New("sparse: inconsistent shape")

// CSR is a rows×cols sparse matrix in compressed sparse row form.
// Entries of row i live at data[indptr[i]:indptr[i+1]] with matching
// column indices. indptr is non-decreasing, indptr[0] == 0 and
// indptr[rows] == len(data) == len(indices). Column indices within a
// row are not required to be sorted.
type CSR struct {
	rows, cols int
	data       []float64
	indices    []int
	indptr     []int
}

// New builds a CSR from its three backing slices, taking ownership of
// them. It validates the CSR invariant and returns ErrShape on any
// violation.
func New(rows, cols int, data []float64, indices, indptr []int) (*CSR, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrShape, rows, cols)
	}
	if len(indptr) != rows+1 {
		return nil, fmt.Errorf("%w: indptr length %d, want %d", ErrShape, len(indptr), rows+1)
	}
	if len(data) != len(indices) {
		return nil, fmt.Errorf("%w: data length %d, indices length %d", ErrShape, len(data), len(indices))
	}
	if indptr[0] != 0 {
		return nil, fmt.Errorf("%w: indptr[0] = %d, want 0", ErrShape, indptr[0])
	}
	if indptr[rows] != len(data) {
		return nil, fmt.Errorf("%w: indptr[%d] = %d, want %d", ErrShape, rows, indptr[rows], len(data))
	}
	for i := 0; i < rows; i++ {
		if indptr[i+1] < indptr[i] {
			return nil, fmt.Errorf("%w: indptr decreases at row %d", ErrShape, i)
		}
	}
	for _, j := range indices {
		if j < 0 || j >= cols {
			return nil, fmt.Errorf("%w: column index %d out of range [0,%d)", ErrShape, j, cols)
		}
	}
	return &CSR{rows: rows, cols: cols, data: data, indices: indices, indptr: indptr}, nil
}

// Dims returns the matrix dimensions.
func (m *CSR) Dims() (rows, cols int) { return m.rows, m.cols }

// NNZ returns the number of explicitly stored entries.
func (m *CSR) NNZ() int { return len(m.data) }

// Row returns the values and column indices of row i. The returned
// slices alias the matrix storage; writes to values are visible to the
// matrix.
func (m *CSR) Row(i int) (values []float64, cols []int) {
	start, end := m.indptr[i], m.indptr[i+1]
	return m.data[start:end], m.indices[start:end]
}

// Data returns the backing value slice, aliased. Useful for edge-value
// diagnostics over a whole graph.
func (m *CSR) Data() []float64 { return m.data }

// At returns the value at (i, j), zero when no entry is stored there.
func (m *CSR) At(i, j int) float64 {
	vals, cols := m.Row(i)
	for p, c := range cols {
		if c == j {
			return vals[p]
		}
	}
	return 0
}

// Clone returns a deep copy sharing no storage with the receiver.
func (m *CSR) Clone() *CSR {
	out := &CSR{
		rows:    m.rows,
		cols:    m.cols,
		data:    make([]float64, len(m.data)),
		indices: make([]int, len(m.indices)),
		indptr:  make([]int, len(m.indptr)),
	}
	copy(out.data, m.data)
	copy(out.indices, m.indices)
	copy(out.indptr, m.indptr)
	return out
}

// ToDense materializes the matrix as a dense gonum matrix.
func (m *CSR) ToDense() *mat.Dense {
	out := mat.NewDense(m.rows, m.cols, nil)
	for i := 0; i < m.rows; i++ {
		vals, cols := m.Row(i)
		row := out.RawRowView(i)
		for p, j := range cols {
			row[j] = vals[p]
		}
	}
	return out
}
