package column

import "fmt"

// Offset arithmetic shared by row access and the two external ragged-list
// encodings.
//
// The canonical encoding stores one length per logical row. Row i then starts
// at the exclusive prefix sum of the lengths before it:
//
//	start(0) = 0
//	start(i) = start(i-1) + rowLengths[i-1]
//
// The boundary form used by flat+offsets representations appends one final
// entry equal to the total value count, giving N+1 monotonically
// non-decreasing boundaries with row i occupying [b[i], b[i+1]).

// StartOffsets returns the starting index of each row within the flat value
// buffer: the exclusive prefix sum of rowLengths.
func StartOffsets(rowLengths []int64) []int64 {
	starts := make([]int64, len(rowLengths))
	var total int64
	for i, n := range rowLengths {
		starts[i] = total
		total += n
	}
	return starts
}

// Boundaries returns the N+1 offset-boundary array for rowLengths:
// b[0] = 0, b[i+1] = b[i] + rowLengths[i].
func Boundaries(rowLengths []int64) []int64 {
	bounds := make([]int64, len(rowLengths)+1)
	for i, n := range rowLengths {
		bounds[i+1] = bounds[i] + n
	}
	return bounds
}

// RowLengthsFromBoundaries recovers per-row lengths from an offset-boundary
// array: rowLengths[i] = b[i+1] - b[i].
//
// The boundaries must start at 0, be monotonically non-decreasing, and end at
// valuesLen; anything else returns ErrMalformedOffsets.
func RowLengthsFromBoundaries(bounds []int64, valuesLen int) ([]int64, error) {
	if len(bounds) == 0 {
		return nil, fmt.Errorf("%w: empty boundary array", ErrMalformedOffsets)
	}
	if bounds[0] != 0 {
		return nil, fmt.Errorf("%w: boundaries start at %d, want 0", ErrMalformedOffsets, bounds[0])
	}
	if last := bounds[len(bounds)-1]; last != int64(valuesLen) {
		return nil, fmt.Errorf("%w: final boundary %d disagrees with value count %d",
			ErrMalformedOffsets, last, valuesLen)
	}

	lengths := make([]int64, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		if bounds[i+1] < bounds[i] {
			return nil, fmt.Errorf("%w: boundaries decrease at index %d (%d -> %d)",
				ErrMalformedOffsets, i, bounds[i], bounds[i+1])
		}
		lengths[i] = bounds[i+1] - bounds[i]
	}
	return lengths, nil
}

// sumLengths returns the total element count covered by rowLengths, or an
// error if any length is negative.
func sumLengths(rowLengths []int64) (int64, error) {
	var total int64
	for i, n := range rowLengths {
		if n < 0 {
			return 0, fmt.Errorf("%w: negative row length %d at index %d", ErrShape, n, i)
		}
		total += n
	}
	return total, nil
}
