package sparse

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterGreaterThan(t *testing.T) {
	// Two rows, data=[1,5,3,9]: filtering at 4 keeps [1,3] and shifts
	// the row boundaries to [0,1,2].
	m := mustCSR(t, 2, 4,
		[]float64{1, 5, 3, 9},
		[]int{0, 1, 2, 3},
		[]int{0, 2, 4},
	)

	m.FilterGreaterThan(4)

	data, cols := m.Row(0)
	assert.Equal(t, []float64{1}, data)
	assert.Equal(t, []int{0}, cols)
	data, cols = m.Row(1)
	assert.Equal(t, []float64{3}, data)
	assert.Equal(t, []int{2}, cols)
	assert.Equal(t, 2, m.NNZ())
}

func TestFilterKeepsEqualEntries(t *testing.T) {
	m := mustCSR(t, 1, 3, []float64{4, 4.0001, 3.9}, []int{0, 1, 2}, []int{0, 3})

	m.FilterGreaterThan(4)

	data, cols := m.Row(0)
	assert.Equal(t, []float64{4, 3.9}, data)
	assert.Equal(t, []int{0, 2}, cols)
}

func TestFilterCanEmptyRows(t *testing.T) {
	m := mustCSR(t, 3, 2,
		[]float64{9, 8, 1, 7},
		[]int{0, 1, 0, 1},
		[]int{0, 2, 3, 4},
	)

	m.FilterGreaterThan(5)

	v, _ := m.Row(0)
	assert.Empty(t, v)
	v, _ = m.Row(1)
	assert.Equal(t, []float64{1}, v)
	v, _ = m.Row(2)
	assert.Empty(t, v)
	assert.Equal(t, 1, m.NNZ())
}

func TestFilteredGreaterThanLeavesReceiver(t *testing.T) {
	m := mustCSR(t, 1, 2, []float64{1, 9}, []int{0, 1}, []int{0, 2})

	out := m.FilteredGreaterThan(4)

	assert.Equal(t, 2, m.NNZ())
	assert.Equal(t, 1, out.NNZ())
	assert.Equal(t, 0.0, out.At(0, 1))
}

func TestFilterPostconditionsRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	const rows, cols = 50, 40

	data := make([]float64, 0)
	indices := make([]int, 0)
	indptr := make([]int, rows+1)
	for i := 0; i < rows; i++ {
		deg := rng.IntN(8)
		for e := 0; e < deg; e++ {
			data = append(data, rng.Float64()*10)
			indices = append(indices, rng.IntN(cols))
		}
		indptr[i+1] = len(data)
	}
	m := mustCSR(t, rows, cols, data, indices, indptr)

	const threshold = 5.0
	wantRemoved := 0
	for _, v := range m.Data() {
		if v > threshold {
			wantRemoved++
		}
	}
	before := m.NNZ()

	m.FilterGreaterThan(threshold)

	assert.Equal(t, before-wantRemoved, m.NNZ())
	for _, v := range m.Data() {
		assert.LessOrEqual(t, v, threshold)
	}
	// Invariant survives: re-validating the triple must succeed.
	_, err := New(rows, cols, m.data, m.indices, m.indptr)
	require.NoError(t, err)
}
