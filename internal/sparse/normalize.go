package sparse

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Rows are independent under normalization, so large graphs are split
// into disjoint row ranges and normalized concurrently.
const parallelRowThreshold = 1 << 15

// NormalizeRows rescales each row to sum to 1, in place. Rows whose sum
// is exactly 0 (empty rows included) are left unchanged rather than
// filled with NaN.
func (m *CSR) NormalizeRows() {
	if m.rows >= parallelRowThreshold {
		m.normalizeRowRangeParallel()
		return
	}
	m.normalizeRowRange(0, m.rows)
}

// NormalizedRows is the copying variant of NormalizeRows.
func (m *CSR) NormalizedRows() *CSR {
	out := m.Clone()
	out.NormalizeRows()
	return out
}

func (m *CSR) normalizeRowRange(lo, hi int) {
	for i := lo; i < hi; i++ {
		row, _ := m.Row(i)
		sum := floats.Sum(row)
		if sum != 0 {
			floats.Scale(1/sum, row)
		}
	}
}

func (m *CSR) normalizeRowRangeParallel() {
	workers := runtime.GOMAXPROCS(0)
	chunk := (m.rows + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := 0; lo < m.rows; lo += chunk {
		hi := min(lo+chunk, m.rows)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			m.normalizeRowRange(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
