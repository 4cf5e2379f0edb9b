package column

import (
	"errors"
	"testing"
)

func assertInt64s(t *testing.T, expected, actual []int64, msg string) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Fatalf("%s: expected %v, got %v", msg, expected, actual)
	}
	for i := range expected {
		if expected[i] != actual[i] {
			t.Fatalf("%s: expected %v, got %v", msg, expected, actual)
		}
	}
}

func TestStartOffsets(t *testing.T) {
	tests := []struct {
		name    string
		lengths []int64
		starts  []int64
	}{
		{"non-uniform", []int64{2, 3, 1}, []int64{0, 2, 5}},
		{"uniform", []int64{4, 4, 4}, []int64{0, 4, 8}},
		{"empty rows", []int64{0, 2, 0, 1}, []int64{0, 0, 2, 2}},
		{"no rows", []int64{}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertInt64s(t, tt.starts, StartOffsets(tt.lengths), "StartOffsets")
		})
	}
}

func TestBoundaries(t *testing.T) {
	assertInt64s(t, []int64{0, 2, 5, 6}, Boundaries([]int64{2, 3, 1}), "Boundaries")
	assertInt64s(t, []int64{0}, Boundaries(nil), "Boundaries of no rows")
}

func TestRowLengthsFromBoundaries(t *testing.T) {
	lengths, err := RowLengthsFromBoundaries([]int64{0, 2, 5}, 5)
	if err != nil {
		t.Fatalf("RowLengthsFromBoundaries: %v", err)
	}
	assertInt64s(t, []int64{2, 3}, lengths, "extracted lengths")

	// Extracting then re-encoding must reproduce the boundary array.
	assertInt64s(t, []int64{0, 2, 5}, Boundaries(lengths), "round-trip boundaries")
}

func TestRowLengthsFromBoundariesMalformed(t *testing.T) {
	tests := []struct {
		name      string
		bounds    []int64
		valuesLen int
	}{
		{"non-monotonic", []int64{0, 3, 2}, 2},
		{"final mismatch", []int64{0, 2, 4}, 5},
		{"nonzero start", []int64{1, 3, 5}, 5},
		{"empty", []int64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RowLengthsFromBoundaries(tt.bounds, tt.valuesLen)
			if !errors.Is(err, ErrMalformedOffsets) {
				t.Fatalf("expected ErrMalformedOffsets, got %v", err)
			}
		})
	}
}
