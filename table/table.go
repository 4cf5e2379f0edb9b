// Copyright 2025 The Coltab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package table provides the public API for coltab's insertion-ordered
// name -> Column mapping.
//
// Example:
//
//	t := table.New()
//	t.Set("tokens", tokenCol)
//	t.Set("score", scoreCol)
//	t.Len()  // 2: the number of columns
package table

import (
	"github.com/coltab-ml/coltab/internal/column"
	"github.com/coltab-ml/coltab/internal/table"
)

// Table is an insertion-ordered name -> Column mapping.
type Table = table.Table

// ErrColumnNotFound is returned when a named column does not exist.
var ErrColumnNotFound = table.ErrColumnNotFound

// New creates an empty table.
func New() *Table {
	return table.New()
}

// FromColumns creates a table from name/column pairs, preserving the given
// order.
func FromColumns(names []string, cols []*column.Column) (*Table, error) {
	return table.FromColumns(names, cols)
}
