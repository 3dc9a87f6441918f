package sparse

// FilterGreaterThan removes every entry whose value is strictly greater
// than threshold, in place. Entries equal to threshold are kept. The
// survivors are compacted row by row and indptr is rebuilt from the
// per-row survivor counts, so the CSR invariant holds on return.
func (m *CSR) FilterGreaterThan(threshold float64) {
	w := 0
	for i := 0; i < m.rows; i++ {
		start, end := m.indptr[i], m.indptr[i+1]
		m.indptr[i] = w
		for p := start; p < end; p++ {
			if m.data[p] > threshold {
				continue
			}
			m.data[w] = m.data[p]
			m.indices[w] = m.indices[p]
			w++
		}
	}
	m.indptr[m.rows] = w
	m.data = m.data[:w]
	m.indices = m.indices[:w]
}

// FilteredGreaterThan is the copying variant of FilterGreaterThan: the
// receiver is left untouched and the filtered matrix is returned.
func (m *CSR) FilteredGreaterThan(threshold float64) *CSR {
	out := m.Clone()
	out.FilterGreaterThan(threshold)
	return out
}
