package frame

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/coltab-ml/coltab/internal/column"
	"github.com/coltab-ml/coltab/internal/table"
)

// Arrow list arrays are exactly the flat-values-plus-offset-boundaries
// convention: one child buffer shared by all rows plus N+1 monotonic int32
// offsets. ToArrow and FromArrow translate between that layout and the
// canonical (values, rowLengths) encoding.

// arrowType maps a column data type to its Arrow equivalent.
func arrowType(dt column.DataType) (arrow.DataType, error) {
	switch dt {
	case column.Float32:
		return arrow.PrimitiveTypes.Float32, nil
	case column.Float64:
		return arrow.PrimitiveTypes.Float64, nil
	case column.Int32:
		return arrow.PrimitiveTypes.Int32, nil
	case column.Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case column.Uint8:
		return arrow.PrimitiveTypes.Uint8, nil
	case column.Bool:
		return arrow.FixedWidthTypes.Boolean, nil
	default:
		return nil, fmt.Errorf("%w: dtype %s has no Arrow mapping", column.ErrUnsupportedBuffer, dt)
	}
}

// columnType maps an Arrow data type back to a column data type.
func columnType(dt arrow.DataType) (column.DataType, error) {
	switch dt.ID() {
	case arrow.FLOAT32:
		return column.Float32, nil
	case arrow.FLOAT64:
		return column.Float64, nil
	case arrow.INT32:
		return column.Int32, nil
	case arrow.INT64:
		return column.Int64, nil
	case arrow.UINT8:
		return column.Uint8, nil
	case arrow.BOOL:
		return column.Bool, nil
	default:
		return 0, fmt.Errorf("%w: Arrow type %s", column.ErrUnsupportedBuffer, dt)
	}
}

// ToArrow converts a table into an Arrow record. List columns become list
// arrays whose offsets are the column's boundary array; flat columns become
// primitive arrays. Column order and names are preserved.
//
// The caller owns the returned record and must Release it.
func ToArrow(t *table.Table) (arrow.Record, error) {
	pool := memory.NewGoAllocator()

	fields := make([]arrow.Field, 0, t.Len())
	cols := make([]*column.Column, 0, t.Len())
	for _, name := range t.Keys() {
		col, err := t.Get(name)
		if err != nil {
			return nil, err
		}
		at, err := arrowType(col.DType())
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		if col.IsList() {
			at = arrow.ListOf(at)
		}
		fields = append(fields, arrow.Field{Name: name, Type: at})
		cols = append(cols, col)
	}

	schema := arrow.NewSchema(fields, nil)
	rb := array.NewRecordBuilder(pool, schema)
	defer rb.Release()

	for i, col := range cols {
		values, err := hostValues(col)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", t.Keys()[i], err)
		}
		if col.IsList() {
			// The builder records each row's offset at Append time, so the
			// child values are appended row by row.
			lb := rb.Field(i).(*array.ListBuilder)
			lengths := col.RowLengths()
			starts := column.StartOffsets(lengths)
			for r := range lengths {
				lb.Append(true)
				from := int(starts[r])
				appendFlat(lb.ValueBuilder(), values.View(from, from+int(lengths[r])))
			}
			continue
		}
		appendFlat(rb.Field(i), values)
	}

	return rb.NewRecord(), nil
}

// appendFlat copies a host buffer into an Arrow builder without casting.
func appendFlat(b array.Builder, values *column.Buffer) {
	switch tb := b.(type) {
	case *array.Float32Builder:
		tb.AppendValues(values.AsFloat32(), nil)
	case *array.Float64Builder:
		tb.AppendValues(values.AsFloat64(), nil)
	case *array.Int32Builder:
		tb.AppendValues(values.AsInt32(), nil)
	case *array.Int64Builder:
		tb.AppendValues(values.AsInt64(), nil)
	case *array.Uint8Builder:
		tb.AppendValues(values.AsUint8(), nil)
	case *array.BooleanBuilder:
		tb.AppendValues(values.AsBool(), nil)
	default:
		panic(fmt.Sprintf("unsupported builder type %T", b))
	}
}

// FromArrow converts an Arrow record into a table. List and fixed-size-list
// columns are detected from the Arrow type and their offsets extracted into
// row lengths; primitive columns pass through as flat buffers.
func FromArrow(rec arrow.Record) (*table.Table, error) {
	t := table.New()
	for i := 0; i < int(rec.NumCols()); i++ {
		name := rec.ColumnName(i)
		col, err := fromArrowColumn(rec.Column(i))
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		t.Set(name, col)
	}
	return t, nil
}

func fromArrowColumn(arr arrow.Array) (*column.Column, error) {
	if arr.NullN() > 0 {
		return nil, fmt.Errorf("%w: null values are not supported", column.ErrUnsupportedBuffer)
	}

	switch a := arr.(type) {
	case *array.List:
		// Offsets() exposes the full underlying buffer, so a sliced array's
		// window must be cut out explicitly before use.
		offsets := a.Offsets()[a.Offset() : a.Offset()+a.Len()+1]
		child := a.ListValues()

		// A sliced list array may start at a non-zero child offset;
		// normalize so the boundaries begin at 0 over the covered range.
		bounds := make([]int64, len(offsets))
		base := int64(offsets[0])
		for j, off := range offsets {
			bounds[j] = int64(off) - base
		}
		values, err := bufferFromArrow(child, int(base), int(base)+int(bounds[len(bounds)-1]))
		if err != nil {
			return nil, err
		}
		lengths, err := column.RowLengthsFromBoundaries(bounds, values.Len())
		if err != nil {
			return nil, err
		}
		return column.New(values, lengths)

	case *array.FixedSizeList:
		width := int(a.DataType().(*arrow.FixedSizeListType).Len())
		values, err := bufferFromArrow(a.ListValues(), 0, a.ListValues().Len())
		if err != nil {
			return nil, err
		}
		lengths := make([]int64, a.Len())
		for j := range lengths {
			lengths[j] = int64(width)
		}
		return column.New(values, lengths)

	default:
		values, err := bufferFromArrow(arr, 0, arr.Len())
		if err != nil {
			return nil, err
		}
		return column.New(values, nil)
	}
}

// bufferFromArrow copies the [from, to) element range of an Arrow array into
// a host buffer, preserving the byte layout.
func bufferFromArrow(arr arrow.Array, from, to int) (*column.Buffer, error) {
	if arr.NullN() > 0 {
		return nil, fmt.Errorf("%w: null values are not supported", column.ErrUnsupportedBuffer)
	}

	switch a := arr.(type) {
	case *array.Float32:
		return column.BufferFromSlice(copyRange(a.Float32Values(), from, to)), nil
	case *array.Float64:
		return column.BufferFromSlice(copyRange(a.Float64Values(), from, to)), nil
	case *array.Int32:
		return column.BufferFromSlice(copyRange(a.Int32Values(), from, to)), nil
	case *array.Int64:
		return column.BufferFromSlice(copyRange(a.Int64Values(), from, to)), nil
	case *array.Uint8:
		return column.BufferFromSlice(copyRange(a.Uint8Values(), from, to)), nil
	case *array.Boolean:
		// Boolean arrays are bit-packed; unpack element-wise.
		out := make([]bool, to-from)
		for j := range out {
			out[j] = a.Value(from + j)
		}
		return column.BufferFromSlice(out), nil
	default:
		return nil, fmt.Errorf("%w: Arrow array type %T", column.ErrUnsupportedBuffer, arr)
	}
}

func copyRange[T any](values []T, from, to int) []T {
	out := make([]T, to-from)
	copy(out, values[from:to])
	return out
}
