package column

import "fmt"

// RaggedWidth is the width reported by Shape for a list column whose rows
// have differing lengths. A ragged column has no single per-row width.
const RaggedWidth = -1

// Shape represents the logical dimensions of a column.
//
// A flat column reports its native shape {n}. A list column reports
// {rows, width}, where width is the uniform per-row length, or RaggedWidth
// when the rows are not all the same length.
type Shape []int

// NumElements returns the total number of elements described by the shape.
// Shapes containing RaggedWidth do not describe a fixed element count and
// must not be used for allocation.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is usable for construction (rank <= 2, all
// dimensions >= 0).
func (s Shape) Validate() error {
	if len(s) > 2 {
		return fmt.Errorf("%w: rank %d not supported (max 2)", ErrShape, len(s))
	}
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("%w: invalid dimension at index %d: %d", ErrShape, i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}
