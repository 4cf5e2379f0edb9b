package column

import (
	"fmt"

	"github.com/coltab-ml/coltab/internal/device"
)

// Column is a single named array's data: a flat value buffer plus an optional
// per-row length array for list-typed columns.
//
// A Column keeps its API just close enough to a dataframe series to be
// interchangeable from the perspective of a transform pipeline, but no more.
// Keep this type as small as possible.
//
// Columns are immutable after construction except for device transfer, which
// moves the backing buffers in place. Transfer is not safe to run concurrently
// with reads of the same Column from another owner; that contract is the
// caller's to uphold.
type Column struct {
	values     *Buffer
	rowLengths *Buffer // Int64, one entry per logical row; nil for flat columns
}

// FromSlice creates a column from a flat or 2-D slice.
//
// A nil or rank-1 shape produces a flat column. A rank-2 shape {rows, width}
// is normalized into a uniform list column: values flattened to rows*width
// elements with every row length equal to width. Rank > 2 fails with ErrShape.
func FromSlice[T DType](data []T, shape Shape) (*Column, error) {
	if shape == nil {
		shape = Shape{len(data)}
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, but got %d",
			ErrShape, shape, shape.NumElements(), len(data))
	}

	if len(shape) == 2 {
		// Fixed-width 2-D input becomes indistinguishable from a uniform
		// ragged column.
		rows, width := shape[0], shape[1]
		lengths := make([]int64, rows)
		for i := range lengths {
			lengths[i] = int64(width)
		}
		return &Column{
			values:     BufferFromSlice(data),
			rowLengths: BufferFromSlice(lengths),
		}, nil
	}

	return &Column{values: BufferFromSlice(data)}, nil
}

// FromRagged creates a list column from flat values and one length per row.
// The lengths must be non-negative and sum to len(values).
func FromRagged[T DType](values []T, rowLengths []int64) (*Column, error) {
	total, err := sumLengths(rowLengths)
	if err != nil {
		return nil, err
	}
	if total != int64(len(values)) {
		return nil, fmt.Errorf("%w: row lengths sum to %d, but got %d values",
			ErrShape, total, len(values))
	}
	return &Column{
		values:     BufferFromSlice(values),
		rowLengths: BufferFromSlice(rowLengths),
	}, nil
}

// New creates a column from an existing value buffer and optional row lengths.
// Used by layers that already hold dtype-tagged buffers (frame conversion,
// wire marshalling).
func New(values *Buffer, rowLengths []int64) (*Column, error) {
	if values == nil {
		return nil, fmt.Errorf("%w: nil value buffer", ErrUnsupportedBuffer)
	}
	if values.Device() != device.Host && values.Device() != device.Accelerator {
		return nil, fmt.Errorf("%w: unknown device tag %d", ErrUnsupportedBuffer, values.Device())
	}
	if rowLengths == nil {
		return &Column{values: values}, nil
	}

	total, err := sumLengths(rowLengths)
	if err != nil {
		return nil, err
	}
	if total != int64(values.Len()) {
		return nil, fmt.Errorf("%w: row lengths sum to %d, but buffer holds %d values",
			ErrShape, total, values.Len())
	}
	return &Column{
		values:     values,
		rowLengths: BufferFromSlice(rowLengths),
	}, nil
}

// Values returns the column's flat value buffer.
func (c *Column) Values() *Buffer {
	return c.values
}

// LengthsBuffer returns the row-length buffer, or nil for flat columns.
func (c *Column) LengthsBuffer() *Buffer {
	return c.rowLengths
}

// RowLengths returns the per-row lengths in host memory, or nil for flat
// columns. For accelerator-resident columns this is a downloaded snapshot.
func (c *Column) RowLengths() []int64 {
	if c.rowLengths == nil {
		return nil
	}
	return c.lengthInts()
}

// DType returns the column's data type.
func (c *Column) DType() DataType {
	return c.values.DType()
}

// Device returns the memory domain the column's buffers reside in.
func (c *Column) Device() device.Device {
	return c.values.Device()
}

// Len returns the number of logical rows.
func (c *Column) Len() int {
	if c.rowLengths != nil {
		return c.rowLengths.Len()
	}
	return c.values.Len()
}

// IsList reports whether the column is list-typed: it carries row lengths.
// 2-D inputs are normalized into row lengths at construction, so every
// list-shaped input ends up here.
func (c *Column) IsList() bool {
	return c.rowLengths != nil
}

// IsRagged reports whether the column is list-typed with differing row
// lengths.
func (c *Column) IsRagged() bool {
	if c.rowLengths == nil {
		return false
	}
	lengths := c.lengthInts()
	if len(lengths) == 0 {
		return false
	}
	for _, n := range lengths[1:] {
		if n != lengths[0] {
			return true
		}
	}
	return false
}

// Shape returns the column's logical dimensions.
//
// Flat columns report their native shape {n}. List columns report
// {rows, width} with the uniform per-row width, or {rows, RaggedWidth} when
// the rows differ in length.
func (c *Column) Shape() Shape {
	if c.rowLengths == nil {
		return Shape{c.values.Len()}
	}
	rows := c.rowLengths.Len()
	if c.IsRagged() {
		return Shape{rows, RaggedWidth}
	}
	width := 0
	if rows > 0 {
		width = int(c.lengthInts()[0])
	}
	return Shape{rows, width}
}

// Offsets returns the starting index of each row within the flat value
// buffer: the exclusive prefix sum of the row lengths. Returns nil for flat
// columns.
func (c *Column) Offsets() []int64 {
	if c.rowLengths == nil {
		return nil
	}
	return StartOffsets(c.lengthInts())
}

// Boundaries returns the N+1 offset-boundary array for the column's rows,
// or nil for flat columns.
func (c *Column) Boundaries() []int64 {
	if c.rowLengths == nil {
		return nil
	}
	return Boundaries(c.lengthInts())
}

// Row returns the values of row i as a zero-copy view into the flat buffer.
// For a list column this is the slice values[start(i) : start(i)+length(i)];
// for a flat column it is a single-element view.
//
// Panics if i is out of range or the column is accelerator-resident.
func (c *Column) Row(i int) *Buffer {
	if i < 0 || i >= c.Len() {
		panic(fmt.Sprintf("row index %d out of bounds for column of length %d", i, c.Len()))
	}
	if c.rowLengths == nil {
		return c.values.View(i, i+1)
	}
	lengths := c.lengthInts()
	var start int64
	for _, n := range lengths[:i] {
		start += n
	}
	return c.values.View(int(start), int(start+lengths[i]))
}

// Rows returns the values of row i as a typed host slice.
func Rows[T DType](c *Column, i int) []T {
	return Data[T](c.Row(i))
}

// Equal reports structural equality: same values, same dtype, and (for list
// columns) same row lengths.
func (c *Column) Equal(other *Column) bool {
	if other == nil {
		return false
	}
	if !c.values.Equal(other.values) {
		return false
	}
	if (c.rowLengths == nil) != (other.rowLengths == nil) {
		return false
	}
	if c.rowLengths != nil && !c.rowLengths.Equal(other.rowLengths) {
		return false
	}
	return true
}

// ToHost moves the column's buffers to host memory in place and returns the
// same column for chaining. Moving a host-resident column is a no-op.
func (c *Column) ToHost() (*Column, error) {
	return c.transfer(device.Host)
}

// ToAccelerator moves the column's buffers to accelerator memory in place and
// returns the same column for chaining. Fails with ErrAcceleratorUnavailable
// if no accelerator backend is registered.
func (c *Column) ToAccelerator() (*Column, error) {
	return c.transfer(device.Accelerator)
}

// transfer moves values and row lengths together: both buffers always reside
// in the same memory domain.
func (c *Column) transfer(target device.Device) (*Column, error) {
	if c.values.Device() == target {
		return c, nil
	}
	prev := c.values.Device()
	if err := c.values.toDevice(target); err != nil {
		return nil, err
	}
	if c.rowLengths != nil {
		if err := c.rowLengths.toDevice(target); err != nil {
			// Restore the value buffer so both stay in one domain.
			if rbErr := c.values.toDevice(prev); rbErr != nil {
				return nil, fmt.Errorf("transfer failed (%w) and rollback failed: %v", err, rbErr)
			}
			return nil, err
		}
	}
	return c, nil
}

// String returns a human-readable description of the column.
func (c *Column) String() string {
	kind := "flat"
	if c.IsRagged() {
		kind = "ragged"
	} else if c.IsList() {
		kind = "list"
	}
	return fmt.Sprintf("Column[%s]%v %s on %s", c.DType(), c.Shape(), kind, c.Device())
}

// lengthInts returns the row lengths as host int64s regardless of residency.
func (c *Column) lengthInts() []int64 {
	if c.rowLengths.Device() == device.Host {
		return c.rowLengths.AsInt64()
	}
	raw, err := c.rowLengths.HostBytes()
	if err != nil {
		panic("cannot read row lengths: " + err.Error())
	}
	buf, err := BufferFromBytes(raw, Int64)
	if err != nil {
		panic("cannot read row lengths: " + err.Error())
	}
	return buf.AsInt64()
}
