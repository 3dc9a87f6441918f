// Package annotated carries a data matrix together with its per-row
// and per-column metadata, and rebuilds that metadata around the
// augmented matrix produced by feature fusion.
package annotated

import (
	"errors"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidArgument is returned on shape mismatches between a matrix
// and the metadata describing it.
var ErrInvalidArgument = errors.New("annotated: invalid argument")

// RowMeta annotates one observation (one point).
type RowMeta struct {
	ID    string            `json:"id"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// ColumnMeta annotates one feature column. IsNeighbor marks columns
// that originate from neighbor aggregation rather than the point's own
// measurement.
type ColumnMeta struct {
	Name       string            `json:"name"`
	IsNeighbor bool              `json:"is_nbr"`
	Attrs      map[string]string `json:"attrs,omitempty"`
}

// Table is a dense matrix with row and column annotations plus an
// unstructured extras map carried through transformations untouched.
type Table struct {
	X    *mat.Dense
	Rows []RowMeta
	Cols []ColumnMeta
	Uns  map[string]any
}

// New builds a table, checking that the annotations match the matrix
// shape.
func New(x *mat.Dense, rows []RowMeta, cols []ColumnMeta) (*Table, error) {
	r, c := x.Dims()
	if len(rows) != r {
		return nil, fmt.Errorf("%w: %d row annotations for %d rows", ErrInvalidArgument, len(rows), r)
	}
	if len(cols) != c {
		return nil, fmt.Errorf("%w: %d column annotations for %d columns", ErrInvalidArgument, len(cols), c)
	}
	return &Table{X: x, Rows: rows, Cols: cols, Uns: map[string]any{}}, nil
}

// nbrSuffix tags column names duplicated for the neighbor block.
const nbrSuffix = "_nbr"

// WithNeighborColumns wraps an augmented matrix in a new table derived
// from src: the column annotations are duplicated, the second half
// renamed with a "_nbr" suffix and flagged as neighbor-derived, while
// row annotations and extras are carried over unchanged. aug must have
// src's row count and exactly twice its column count.
func WithNeighborColumns(aug *mat.Dense, src *Table) (*Table, error) {
	r, c := aug.Dims()
	srcRows, srcCols := src.X.Dims()
	if r != srcRows {
		return nil, fmt.Errorf("%w: augmented matrix has %d rows, source table %d", ErrInvalidArgument, r, srcRows)
	}
	if c != 2*srcCols {
		return nil, fmt.Errorf("%w: augmented matrix has %d columns, want %d", ErrInvalidArgument, c, 2*srcCols)
	}

	cols := make([]ColumnMeta, 0, 2*srcCols)
	cols = append(cols, src.Cols...)
	for _, cm := range src.Cols {
		cm.Name += nbrSuffix
		cm.IsNeighbor = true
		cols = append(cols, cm)
	}

	return &Table{X: aug, Rows: src.Rows, Cols: cols, Uns: src.Uns}, nil
}

// tableJSON is the wire shape of a table export.
type tableJSON struct {
	Rows []RowMeta      `json:"rows"`
	Cols []ColumnMeta   `json:"cols"`
	Uns  map[string]any `json:"uns,omitempty"`
	X    [][]float64    `json:"x"`
}

// WriteJSON serializes the table, matrix included, to w.
func (t *Table) WriteJSON(w io.Writer) error {
	r, _ := t.X.Dims()
	x := make([][]float64, r)
	for i := 0; i < r; i++ {
		x[i] = t.X.RawRowView(i)
	}
	buf, err := sonic.Marshal(tableJSON{Rows: t.Rows, Cols: t.Cols, Uns: t.Uns, X: x})
	if err != nil {
		return fmt.Errorf("marshal table: %w", err)
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}
