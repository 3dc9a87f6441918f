package feature

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ZScore standardizes m along axis and returns a fresh dense matrix:
// variance is E[x²] − E[x]², output is (x − mean)/sqrt(variance).
// Columns (or rows) with zero variance come out as exactly 0 rather
// than NaN; the output never contains a non-finite value. The input is
// not modified.
func ZScore(m Matrix, axis Axis) (*mat.Dense, error) {
	if err := checkAxis(axis); err != nil {
		return nil, err
	}

	mean := m.Mean(axis)
	meanSq := m.MeanSquares(axis)

	// 1/sqrt(variance), with degenerate slots mapped to 0 so their
	// whole column (or row) zeroes out below.
	invStd := make([]float64, len(mean))
	for i := range invStd {
		variance := meanSq[i] - mean[i]*mean[i]
		if variance > 0 {
			invStd[i] = 1 / math.Sqrt(variance)
		}
	}

	out := m.ToDense()
	rows, _ := out.Dims()
	for i := 0; i < rows; i++ {
		row := out.RawRowView(i)
		for j := range row {
			k := j
			if axis == AxisRows {
				k = i
			}
			v := (row[j] - mean[k]) * invStd[k]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			row[j] = v
		}
	}
	return out, nil
}
