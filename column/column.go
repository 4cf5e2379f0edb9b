// Copyright 2025 The Coltab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package column provides the public API for coltab's columnar arrays.
//
// A Column is a flat, dtype-tagged value buffer plus optional per-row lengths
// for list-typed (possibly ragged) data:
//
//	col, _ := column.FromRagged([]int32{1, 2, 3, 4, 5, 6}, []int64{2, 3, 1})
//	col.Len()               // 3 rows
//	column.Rows[int32](col, 1)  // [3 4 5]
//	col.Boundaries()        // [0 2 5 6]
package column

import (
	"github.com/coltab-ml/coltab/internal/column"
)

// Type aliases for public API

// DType is a constraint for column element types.
// Supported types: float32, float64, int32, int64, uint8, bool.
type DType = column.DType

// DataType represents the underlying data type of a column.
type DataType = column.DataType

// Data type constants.
const (
	Float32 DataType = column.Float32
	Float64 DataType = column.Float64
	Int32   DataType = column.Int32
	Int64   DataType = column.Int64
	Uint8   DataType = column.Uint8
	Bool    DataType = column.Bool
)

// Shape represents a column's logical dimensions.
type Shape = column.Shape

// RaggedWidth is the width reported by Shape for list columns whose rows
// differ in length.
const RaggedWidth = column.RaggedWidth

// Buffer is a flat, dtype-tagged byte buffer tracking its memory domain.
type Buffer = column.Buffer

// Column is a flat value buffer plus optional per-row lengths.
type Column = column.Column

// Sentinel errors.
var (
	ErrShape                  = column.ErrShape
	ErrUnsupportedBuffer      = column.ErrUnsupportedBuffer
	ErrMalformedOffsets       = column.ErrMalformedOffsets
	ErrAcceleratorUnavailable = column.ErrAcceleratorUnavailable
)

// Creation functions

// FromSlice creates a column from a flat or 2-D slice.
// A rank-2 shape {rows, width} is normalized into a uniform list column.
//
// Example:
//
//	flat, _ := column.FromSlice([]float32{1, 2, 3}, nil)
//	grid, _ := column.FromSlice(data, column.Shape{3, 4})
func FromSlice[T DType](data []T, shape Shape) (*Column, error) {
	return column.FromSlice(data, shape)
}

// FromRagged creates a list column from flat values and one length per row.
// The lengths must be non-negative and sum to len(values).
func FromRagged[T DType](values []T, rowLengths []int64) (*Column, error) {
	return column.FromRagged(values, rowLengths)
}

// New creates a column from an existing value buffer and optional row lengths.
//
// This is a low-level function. Most users should use FromSlice or FromRagged
// instead.
func New(values *Buffer, rowLengths []int64) (*Column, error) {
	return column.New(values, rowLengths)
}

// BufferFromSlice creates a host-resident buffer by copying a Go slice.
func BufferFromSlice[T DType](values []T) *Buffer {
	return column.BufferFromSlice(values)
}

// BufferFromBytes creates a host-resident buffer that takes ownership of the
// given bytes. The byte length must be a multiple of the dtype size.
func BufferFromBytes(data []byte, dtype DataType) (*Buffer, error) {
	return column.BufferFromBytes(data, dtype)
}

// Access functions

// Data returns a typed host slice view of a buffer's data (zero-copy).
func Data[T DType](b *Buffer) []T {
	return column.Data[T](b)
}

// Rows returns the values of row i as a typed host slice.
func Rows[T DType](c *Column, i int) []T {
	return column.Rows[T](c, i)
}

// Offset codec

// StartOffsets returns the starting index of each row: the exclusive prefix
// sum of the row lengths.
func StartOffsets(rowLengths []int64) []int64 {
	return column.StartOffsets(rowLengths)
}

// Boundaries returns the N+1 offset-boundary array for the given row lengths.
func Boundaries(rowLengths []int64) []int64 {
	return column.Boundaries(rowLengths)
}

// RowLengthsFromBoundaries recovers per-row lengths from an N+1 boundary
// array, validating monotonicity and coverage of the flat value buffer.
func RowLengthsFromBoundaries(boundaries []int64, valuesLen int) ([]int64, error) {
	return column.RowLengthsFromBoundaries(boundaries, valuesLen)
}
