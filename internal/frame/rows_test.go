package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coltab-ml/coltab/internal/column"
	"github.com/coltab-ml/coltab/internal/table"
)

func buildTable(t *testing.T) *table.Table {
	t.Helper()
	ragged, err := column.FromRagged([]int32{1, 2, 3, 4, 5, 6}, []int64{2, 3, 1})
	require.NoError(t, err)
	flat, err := column.FromSlice([]float64{0.5, 1.5, 2.5}, nil)
	require.NoError(t, err)

	tbl := table.New()
	tbl.Set("tokens", ragged)
	tbl.Set("score", flat)
	return tbl
}

func TestToRows(t *testing.T) {
	tbl := buildTable(t)

	f, err := ToRows(tbl)
	require.NoError(t, err)
	require.Len(t, f.Columns, 2)

	tokens := f.Columns[0]
	assert.Equal(t, "tokens", tokens.Name)
	assert.True(t, tokens.IsList())
	require.Len(t, tokens.Rows, 3)
	assert.Equal(t, []int32{1, 2}, tokens.Rows[0].AsInt32())
	assert.Equal(t, []int32{3, 4, 5}, tokens.Rows[1].AsInt32())
	assert.Equal(t, []int32{6}, tokens.Rows[2].AsInt32())

	score := f.Columns[1]
	assert.Equal(t, "score", score.Name)
	assert.False(t, score.IsList())
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, score.Flat.AsFloat64())
}

func TestRowsRoundTrip(t *testing.T) {
	tbl := buildTable(t)

	f, err := ToRows(tbl)
	require.NoError(t, err)
	back, err := FromRows(f)
	require.NoError(t, err)

	assert.True(t, tbl.Equal(back), "rows round-trip changed the table")

	// Re-encoding reproduces the canonical lengths, not just the values.
	tokens, err := back.Get("tokens")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1}, tokens.RowLengths())
	assert.Equal(t, []int64{0, 2, 5, 6}, tokens.Boundaries())
}

func TestFromRowsMeasuresLengths(t *testing.T) {
	// Hand-built rows with irregular lengths, including an empty row.
	rows := []*column.Buffer{
		column.BufferFromSlice([]float32{1, 2, 3}),
		column.BufferFromSlice([]float32{}),
		column.BufferFromSlice([]float32{4}),
	}
	f := &RowsFrame{Columns: []RowsColumn{{Name: "x", DType: column.Float32, Rows: rows}}}

	tbl, err := FromRows(f)
	require.NoError(t, err)
	col, err := tbl.Get("x")
	require.NoError(t, err)

	assert.Equal(t, []int64{3, 0, 1}, col.RowLengths())
	assert.Equal(t, []float32{1, 2, 3, 4}, column.Data[float32](col.Values()))
}

func TestFromRowsDTypeMismatch(t *testing.T) {
	rows := []*column.Buffer{
		column.BufferFromSlice([]float32{1}),
		column.BufferFromSlice([]int32{2}),
	}
	f := &RowsFrame{Columns: []RowsColumn{{Name: "x", DType: column.Float32, Rows: rows}}}

	_, err := FromRows(f)
	assert.ErrorIs(t, err, column.ErrUnsupportedBuffer)
}
