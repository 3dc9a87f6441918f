package sparse

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Scale multiplies every stored entry by c, in place.
func (m *CSR) Scale(c float64) {
	floats.Scale(c, m.data)
}

// MulDense computes the matrix product m × x and returns it as a dense
// matrix. x must have as many rows as m has columns.
func (m *CSR) MulDense(x mat.Matrix) (*mat.Dense, error) {
	xr, xc := x.Dims()
	if xr != m.cols {
		return nil, fmt.Errorf("%w: product of %dx%d by %dx%d", ErrShape, m.rows, m.cols, xr, xc)
	}
	out := mat.NewDense(m.rows, xc, nil)
	if xd, ok := x.(*mat.Dense); ok {
		for i := 0; i < m.rows; i++ {
			vals, cols := m.Row(i)
			dst := out.RawRowView(i)
			for p, j := range cols {
				floats.AddScaled(dst, vals[p], xd.RawRowView(j))
			}
		}
		return out, nil
	}
	for i := 0; i < m.rows; i++ {
		vals, cols := m.Row(i)
		dst := out.RawRowView(i)
		for p, j := range cols {
			v := vals[p]
			for c := 0; c < xc; c++ {
				dst[c] += v * x.At(j, c)
			}
		}
	}
	return out, nil
}

// HStack concatenates a and b horizontally into a new CSR with
// a.cols + b.cols columns. Both operands must have the same row count.
func HStack(a, b *CSR) (*CSR, error) {
	if a.rows != b.rows {
		return nil, fmt.Errorf("%w: hstack of %d rows with %d rows", ErrShape, a.rows, b.rows)
	}
	nnz := a.NNZ() + b.NNZ()
	data := make([]float64, 0, nnz)
	indices := make([]int, 0, nnz)
	indptr := make([]int, a.rows+1)

	for i := 0; i < a.rows; i++ {
		av, ac := a.Row(i)
		data = append(data, av...)
		indices = append(indices, ac...)

		bv, bc := b.Row(i)
		data = append(data, bv...)
		for _, j := range bc {
			indices = append(indices, j+a.cols)
		}
		indptr[i+1] = len(data)
	}
	return &CSR{
		rows:    a.rows,
		cols:    a.cols + b.cols,
		data:    data,
		indices: indices,
		indptr:  indptr,
	}, nil
}
