// Copyright 2025 The Coltab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tokens provides the public API for building ragged token-ID columns
// from batches of text.
//
// Example:
//
//	enc, _ := tokens.NewEncoder("cl100k_base")
//	col, _ := enc.EncodeColumn([]string{"hello world", "ragged arrays"})
//	col.RowLengths()  // per-text token counts
package tokens

import (
	"github.com/coltab-ml/coltab/internal/tokens"
)

// Encoder tokenizes text batches into ragged int32 columns.
type Encoder = tokens.Encoder

// NewEncoder creates an Encoder for the named tiktoken encoding
// (e.g. "cl100k_base").
func NewEncoder(encodingName string) (*Encoder, error) {
	return tokens.NewEncoder(encodingName)
}

// NewEncoderForModel creates an Encoder for a specific model
// (e.g. "gpt-4", "text-embedding-ada-002").
func NewEncoderForModel(modelName string) (*Encoder, error) {
	return tokens.NewEncoderForModel(modelName)
}
