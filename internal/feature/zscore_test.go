package feature

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/tesselate-labs/spatialfuse/internal/sparse"
)

const statTol = 1e-9

func colStats(m *mat.Dense, j int) (mean, variance float64) {
	rows, _ := m.Dims()
	for i := 0; i < rows; i++ {
		mean += m.At(i, j)
	}
	mean /= float64(rows)
	for i := 0; i < rows; i++ {
		d := m.At(i, j) - mean
		variance += d * d
	}
	variance /= float64(rows)
	return mean, variance
}

func TestZScoreColumns(t *testing.T) {
	in := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})

	out, err := ZScore(FromDense(in), AxisColumns)
	require.NoError(t, err)

	for j := 0; j < 2; j++ {
		mean, variance := colStats(out, j)
		assert.InDelta(t, 0, mean, statTol)
		assert.InDelta(t, 1, variance, statTol)
	}

	// The input is left untouched.
	assert.Equal(t, 1.0, in.At(0, 0))
}

func TestZScoreRows(t *testing.T) {
	in := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		5, 5, 8,
	})

	out, err := ZScore(FromDense(in), AxisRows)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		row := out.RawRowView(i)
		var mean float64
		for _, v := range row {
			mean += v
		}
		mean /= 3
		var variance float64
		for _, v := range row {
			variance += (v - mean) * (v - mean)
		}
		variance /= 3
		assert.InDelta(t, 0, mean, statTol, "row %d", i)
		assert.InDelta(t, 1, variance, statTol, "row %d", i)
	}
}

func TestZScoreConstantColumnIsZero(t *testing.T) {
	// A column stuck at 7 has zero variance; it must come out as
	// all zeros, never NaN.
	in := mat.NewDense(3, 2, []float64{
		7, 1,
		7, 2,
		7, 6,
	})

	out, err := ZScore(FromDense(in), AxisColumns)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, out.At(i, 0))
		assert.False(t, math.IsNaN(out.At(i, 1)))
	}
	_, variance := colStats(out, 1)
	assert.InDelta(t, 1, variance, statTol)
}

func TestZScoreSparseMatchesDense(t *testing.T) {
	// The sparse path must account for implicit zeros in both
	// moments and agree with the dense computation exactly.
	csr, err := sparse.New(3, 3,
		[]float64{2, 4, 6, 1},
		[]int{0, 2, 1, 0},
		[]int{0, 2, 3, 4},
	)
	require.NoError(t, err)

	fromSparse, err := ZScore(FromCSR(csr), AxisColumns)
	require.NoError(t, err)
	fromDense, err := ZScore(FromDense(csr.ToDense()), AxisColumns)
	require.NoError(t, err)

	assert.True(t, mat.EqualApprox(fromDense, fromSparse, statTol))
}

func TestZScoreRejectsBadAxis(t *testing.T) {
	_, err := ZScore(FromDense(mat.NewDense(1, 1, nil)), Axis(2))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestZScoreRandomMoments(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 4))
	data := make([]float64, 60*5)
	for i := range data {
		data[i] = rng.NormFloat64()*3 + 2
	}
	in := mat.NewDense(60, 5, data)

	out, err := ZScore(FromDense(in), AxisColumns)
	require.NoError(t, err)

	for j := 0; j < 5; j++ {
		mean, variance := colStats(out, j)
		assert.InDelta(t, 0, mean, statTol)
		assert.InDelta(t, 1, variance, statTol)
	}
}
