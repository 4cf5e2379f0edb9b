package frame

import (
	"fmt"

	"github.com/coltab-ml/coltab/internal/column"
	"github.com/coltab-ml/coltab/internal/table"
)

// RowsColumn is one column in the per-row-object convention. A flat column
// carries a single buffer; a list column carries one buffer per row, each of
// arbitrary length.
type RowsColumn struct {
	Name  string
	DType column.DataType

	// Flat holds the values of a non-list column. nil for list columns.
	Flat *column.Buffer

	// Rows holds one sub-array per row for list columns. nil for flat
	// columns.
	Rows []*column.Buffer
}

// IsList reports whether the column uses the per-row-object list encoding.
func (c *RowsColumn) IsList() bool {
	return c.Rows != nil
}

// RowsFrame is a table rendered in the per-row-object convention.
type RowsFrame struct {
	Columns []RowsColumn
}

// ToRows converts a table into the per-row-object convention. List columns
// are sliced at each row's offset range and materialized as independent
// sub-arrays; flat columns pass through.
func ToRows(t *table.Table) (*RowsFrame, error) {
	out := &RowsFrame{}
	for _, name := range t.Keys() {
		col, err := t.Get(name)
		if err != nil {
			return nil, err
		}
		values, err := hostValues(col)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}

		rc := RowsColumn{Name: name, DType: col.DType()}
		if col.IsList() {
			lengths := col.RowLengths()
			starts := column.StartOffsets(lengths)
			rc.Rows = make([]*column.Buffer, len(lengths))
			for i := range lengths {
				from := int(starts[i])
				to := from + int(lengths[i])
				rc.Rows[i] = values.View(from, to)
			}
		} else {
			rc.Flat = values
		}
		out.Columns = append(out.Columns, rc)
	}
	return out, nil
}

// FromRows converts a per-row-object frame into a table. Each list column's
// row lengths are measured individually and its sub-arrays concatenated, in
// row order, into one flat value buffer.
func FromRows(f *RowsFrame) (*table.Table, error) {
	t := table.New()
	for _, rc := range f.Columns {
		if !rc.IsList() {
			col, err := column.New(rc.Flat, nil)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", rc.Name, err)
			}
			t.Set(rc.Name, col)
			continue
		}

		lengths := make([]int64, len(rc.Rows))
		total := 0
		for i, row := range rc.Rows {
			if row.DType() != rc.DType {
				return nil, fmt.Errorf("column %q row %d: %w: dtype %s in a %s column",
					rc.Name, i, column.ErrUnsupportedBuffer, row.DType(), rc.DType)
			}
			lengths[i] = int64(row.Len())
			total += row.Len()
		}

		flat := make([]byte, 0, total*rc.DType.Size())
		for _, row := range rc.Rows {
			flat = append(flat, row.Bytes()...)
		}
		values, err := column.BufferFromBytes(flat, rc.DType)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", rc.Name, err)
		}
		col, err := column.New(values, lengths)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", rc.Name, err)
		}
		t.Set(rc.Name, col)
	}
	return t, nil
}
