// Package table provides an insertion-ordered mapping from column name to
// Column, the coltab equivalent of a lightweight dataframe buffer.
package table

import (
	"errors"
	"fmt"

	"github.com/coltab-ml/coltab/internal/column"
	"github.com/coltab-ml/coltab/internal/device"
)

// ErrColumnNotFound is returned when a named column does not exist.
var ErrColumnNotFound = errors.New("column not found")

// Table is an insertion-ordered name -> Column mapping.
//
// A Table does not enforce an equal row count across its columns: it is a
// transformable buffer of named arrays, not a validated relational table.
// Copy and Select share the underlying Columns, so an in-place mutation such
// as a device transfer is visible through every table referencing the Column.
type Table struct {
	names   []string
	columns map[string]*column.Column
}

// New creates an empty table.
func New() *Table {
	return &Table{columns: make(map[string]*column.Column)}
}

// FromColumns creates a table from name/column pairs, preserving the given
// order.
func FromColumns(names []string, cols []*column.Column) (*Table, error) {
	if len(names) != len(cols) {
		return nil, fmt.Errorf("got %d names for %d columns", len(names), len(cols))
	}
	t := New()
	for i, name := range names {
		t.Set(name, cols[i])
	}
	return t, nil
}

// Len returns the number of columns.
//
// Note: this deliberately mirrors the container being a name -> column map,
// not a row container. Use NumRows for the row count of a specific column.
func (t *Table) Len() int {
	return len(t.names)
}

// NumRows returns the row count of the named column.
func (t *Table) NumRows(name string) (int, error) {
	col, err := t.Get(name)
	if err != nil {
		return 0, err
	}
	return col.Len(), nil
}

// Keys returns the column names in insertion order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Get returns the named column.
func (t *Table) Get(name string) (*column.Column, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return col, nil
}

// Set inserts or replaces the named column. Inserting preserves insertion
// order; replacing keeps the column's existing position.
func (t *Table) Set(name string, col *column.Column) {
	if _, exists := t.columns[name]; !exists {
		t.names = append(t.names, name)
	}
	t.columns[name] = col
}

// Delete removes the named column.
func (t *Table) Delete(name string) error {
	if _, ok := t.columns[name]; !ok {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	delete(t.columns, name)
	for i, n := range t.names {
		if n == name {
			t.names = append(t.names[:i], t.names[i+1:]...)
			break
		}
	}
	return nil
}

// Update inserts or replaces every column from other, in other's order.
func (t *Table) Update(other *Table) {
	for _, name := range other.names {
		t.Set(name, other.columns[name])
	}
}

// Select returns a new table referencing the named columns, in the given
// order. The Columns themselves are shared, not copied.
func (t *Table) Select(names []string) (*Table, error) {
	out := New()
	for _, name := range names {
		col, err := t.Get(name)
		if err != nil {
			return nil, err
		}
		out.Set(name, col)
	}
	return out, nil
}

// Copy returns a new table with the same Column references. Name-level
// insert/delete/replace is isolated between the copies; buffer-level
// mutation (device transfer) is not.
func (t *Table) Copy() *Table {
	out := New()
	for _, name := range t.names {
		out.Set(name, t.columns[name])
	}
	return out
}

// DTypes returns the data type of every column, keyed by name.
func (t *Table) DTypes() map[string]column.DataType {
	out := make(map[string]column.DataType, len(t.names))
	for name, col := range t.columns {
		out[name] = col.DType()
	}
	return out
}

// Equal reports whether both tables hold structurally equal columns under the
// same names, in the same order.
func (t *Table) Equal(other *Table) bool {
	if other == nil || len(t.names) != len(other.names) {
		return false
	}
	for i, name := range t.names {
		if other.names[i] != name {
			return false
		}
		if !t.columns[name].Equal(other.columns[name]) {
			return false
		}
	}
	return true
}

// ToHost moves every column to host memory. Columns already on the host are
// untouched.
func (t *Table) ToHost() (*Table, error) {
	return t.transfer(device.Host)
}

// ToAccelerator moves every column to accelerator memory. Fails with
// ErrAcceleratorUnavailable if no accelerator backend is registered.
func (t *Table) ToAccelerator() (*Table, error) {
	return t.transfer(device.Accelerator)
}

func (t *Table) transfer(target device.Device) (*Table, error) {
	for _, name := range t.names {
		col := t.columns[name]
		var err error
		if target == device.Host {
			_, err = col.ToHost()
		} else {
			_, err = col.ToAccelerator()
		}
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
	}
	return t, nil
}

// String returns a human-readable summary of the table.
func (t *Table) String() string {
	return fmt.Sprintf("Table(%d columns: %v)", len(t.names), t.names)
}
