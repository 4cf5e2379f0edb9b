// Package tokens builds ragged token-ID columns from batches of text using
// the tiktoken BPE encodings. One input string becomes one logical row whose
// length is that string's token count.
package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/coltab-ml/coltab/internal/column"
)

// Encoder tokenizes text batches into ragged int32 columns.
//
// Supported encodings:
//   - cl100k_base: GPT-4, GPT-3.5-turbo, text-embedding-ada-002
//   - p50k_base: GPT-3, Codex
//   - r50k_base: GPT-3, davinci-002, babbage-002
type Encoder struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewEncoder creates an Encoder for the named tiktoken encoding.
func NewEncoder(encodingName string) (*Encoder, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", encodingName, err)
	}
	return &Encoder{encoding: encoding, name: encodingName}, nil
}

// NewEncoderForModel creates an Encoder for a specific model.
//
// Example models: "gpt-4", "gpt-3.5-turbo", "text-embedding-ada-002".
func NewEncoderForModel(modelName string) (*Encoder, error) {
	encoding, err := tiktoken.EncodingForModel(modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken for model %q: %w", modelName, err)
	}
	return &Encoder{encoding: encoding, name: modelName}, nil
}

// Name returns the encoding or model name the Encoder was built for.
func (e *Encoder) Name() string {
	return e.name
}

// EncodeColumn tokenizes each text into one row of a ragged int32 column.
// The row lengths are the per-text token counts, so the result satisfies the
// usual list-column invariant: the lengths sum to the flat token buffer.
func (e *Encoder) EncodeColumn(texts []string) (*column.Column, error) {
	lengths := make([]int64, len(texts))
	var flat []int32
	for i, text := range texts {
		ids := e.encoding.Encode(text, nil, nil)
		lengths[i] = int64(len(ids))
		for _, id := range ids {
			flat = append(flat, int32(id)) //nolint:gosec // Token IDs fit in int32: vocab size < 2^31.
		}
	}
	return column.FromRagged(flat, lengths)
}

// DecodeRow decodes row i of a token column back into text.
func (e *Encoder) DecodeRow(c *column.Column, i int) (string, error) {
	if c.DType() != column.Int32 {
		return "", fmt.Errorf("token columns are int32, got %s", c.DType())
	}
	ids := column.Rows[int32](c, i)
	intIDs := make([]int, len(ids))
	for j, id := range ids {
		intIDs[j] = int(id)
	}
	return e.encoding.Decode(intIDs), nil
}
