package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMulDense(t *testing.T) {
	// [1 0 2]   [1 2]   [ 7 10]
	// [0 3 0] × [0 1] = [ 0  3]
	//           [3 4]
	g := mustCSR(t, 2, 3, []float64{1, 2, 3}, []int{0, 2, 1}, []int{0, 2, 3})
	x := mat.NewDense(3, 2, []float64{1, 2, 0, 1, 3, 4})

	out, err := g.MulDense(x)
	require.NoError(t, err)

	want := mat.NewDense(2, 2, []float64{7, 10, 0, 3})
	assert.True(t, mat.EqualApprox(want, out, 1e-12))
}

func TestMulDenseGenericMatrix(t *testing.T) {
	g := mustCSR(t, 2, 2, []float64{2, 3}, []int{1, 0}, []int{0, 1, 2})
	x := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	// Exercise the non-RawRowView path through a transpose view.
	out, err := g.MulDense(x.T())
	require.NoError(t, err)

	want := mat.NewDense(2, 2, []float64{4, 8, 3, 9})
	assert.True(t, mat.EqualApprox(want, out, 1e-12))
}

func TestMulDenseShapeMismatch(t *testing.T) {
	g := mustCSR(t, 2, 3, nil, nil, []int{0, 0, 0})
	_, err := g.MulDense(mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, ErrShape)
}

func TestHStack(t *testing.T) {
	a := mustCSR(t, 2, 2, []float64{1, 2}, []int{0, 1}, []int{0, 1, 2})
	b := mustCSR(t, 2, 3, []float64{5, 6}, []int{2, 0}, []int{0, 1, 2})

	out, err := HStack(a, b)
	require.NoError(t, err)

	rows, cols := out.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 5, cols)
	assert.Equal(t, 1.0, out.At(0, 0))
	assert.Equal(t, 5.0, out.At(0, 4))
	assert.Equal(t, 2.0, out.At(1, 1))
	assert.Equal(t, 6.0, out.At(1, 2))
}

func TestHStackRowMismatch(t *testing.T) {
	a := mustCSR(t, 2, 1, nil, nil, []int{0, 0, 0})
	b := mustCSR(t, 3, 1, nil, nil, []int{0, 0, 0, 0})
	_, err := HStack(a, b)
	assert.ErrorIs(t, err, ErrShape)
}

func TestScale(t *testing.T) {
	m := mustCSR(t, 1, 2, []float64{1, 4}, []int{0, 1}, []int{0, 2})
	m.Scale(0.5)
	row, _ := m.Row(0)
	assert.Equal(t, []float64{0.5, 2}, row)
}
