// Copyright 2025 The Coltab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package frame provides the public API for converting tables to and from the
// two external ragged-list conventions:
//
//   - per-row objects: each list cell is its own sub-array (RowsFrame)
//   - flat values plus offset boundaries: Apache Arrow list arrays
//
// Both directions auto-detect list-typed columns, and buffer byte layout
// crosses the boundary bit-exactly.
package frame

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/coltab-ml/coltab/internal/frame"
	"github.com/coltab-ml/coltab/internal/table"
)

// RowsColumn is one column in the per-row-object convention.
type RowsColumn = frame.RowsColumn

// RowsFrame is a table rendered in the per-row-object convention.
type RowsFrame = frame.RowsFrame

// ToRows converts a table into the per-row-object convention: each list cell
// becomes its own sub-array.
func ToRows(t *table.Table) (*RowsFrame, error) {
	return frame.ToRows(t)
}

// FromRows converts a per-row-object frame into a table, measuring each row's
// length and concatenating the sub-arrays into one flat value buffer.
func FromRows(f *RowsFrame) (*table.Table, error) {
	return frame.FromRows(f)
}

// ToArrow converts a table into an Arrow record. List columns become list
// arrays whose offsets are the column's boundary array.
//
// The caller owns the returned record and must Release it.
func ToArrow(t *table.Table) (arrow.Record, error) {
	return frame.ToArrow(t)
}

// FromArrow converts an Arrow record into a table, extracting list-array
// offsets into per-row lengths.
func FromArrow(rec arrow.Record) (*table.Table, error) {
	return frame.FromArrow(rec)
}

// WriteIPC encodes a table as a single-batch Arrow IPC file.
func WriteIPC(w io.Writer, t *table.Table) error {
	return frame.WriteIPC(w, t)
}

// ReadIPC decodes an Arrow IPC file into a table. Multi-batch files are
// concatenated in file order.
func ReadIPC(r io.Reader) (*table.Table, error) {
	return frame.ReadIPC(r)
}
