package frame

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coltab-ml/coltab/internal/column"
	"github.com/coltab-ml/coltab/internal/table"
)

func arrowPool() memory.Allocator {
	return memory.NewGoAllocator()
}

// writeIPCBatches writes each table as its own record batch in one IPC file.
func writeIPCBatches(buf *bytes.Buffer, tables ...*table.Table) error {
	recs := make([]arrow.Record, 0, len(tables))
	for _, tbl := range tables {
		rec, err := ToArrow(tbl)
		if err != nil {
			return err
		}
		defer rec.Release()
		recs = append(recs, rec)
	}

	fw, err := ipc.NewFileWriter(buf, ipc.WithSchema(recs[0].Schema()), ipc.WithAllocator(arrowPool()))
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if err := fw.Write(rec); err != nil {
			return err
		}
	}
	return fw.Close()
}

func TestToArrowListOffsets(t *testing.T) {
	tbl := buildTable(t)

	rec, err := ToArrow(tbl)
	require.NoError(t, err)
	defer rec.Release()

	require.Equal(t, int64(2), rec.NumCols())
	assert.Equal(t, "tokens", rec.ColumnName(0))
	assert.Equal(t, "score", rec.ColumnName(1))

	list, ok := rec.Column(0).(*array.List)
	require.True(t, ok, "list column should become an Arrow list array")
	assert.Equal(t, []int32{0, 2, 5, 6}, list.Offsets())

	child, ok := list.ListValues().(*array.Int32)
	require.True(t, ok)
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6}, child.Int32Values())

	score, ok := rec.Column(1).(*array.Float64)
	require.True(t, ok)
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, score.Float64Values())
}

func TestArrowRoundTrip(t *testing.T) {
	tbl := buildTable(t)
	bools, err := column.FromSlice([]bool{true, false, true}, nil)
	require.NoError(t, err)
	tbl.Set("flag", bools)

	rec, err := ToArrow(tbl)
	require.NoError(t, err)
	defer rec.Release()

	back, err := FromArrow(rec)
	require.NoError(t, err)
	assert.True(t, tbl.Equal(back), "arrow round-trip changed the table")
}

func TestFromArrowSlicedList(t *testing.T) {
	tbl := buildTable(t)
	rec, err := ToArrow(tbl)
	require.NoError(t, err)
	defer rec.Release()

	// Slicing windows the offsets buffer and shifts the base offset;
	// conversion must honor the window and renormalize so the extracted
	// boundaries start at zero.
	sliced := array.NewSlice(rec.Column(0), 1, 3)
	defer sliced.Release()

	col, err := fromArrowColumn(sliced)
	require.NoError(t, err)
	assert.Equal(t, 2, col.Len())
	assert.Equal(t, []int64{3, 1}, col.RowLengths())
	assert.Equal(t, []int32{3, 4, 5, 6}, column.Data[int32](col.Values()))

	// A prefix slice keeps a zero base but must still drop the trailing rows.
	prefix := array.NewSlice(rec.Column(0), 0, 2)
	defer prefix.Release()

	col, err = fromArrowColumn(prefix)
	require.NoError(t, err)
	assert.Equal(t, 2, col.Len())
	assert.Equal(t, []int64{2, 3}, col.RowLengths())
	assert.Equal(t, []int32{1, 2, 3, 4, 5}, column.Data[int32](col.Values()))
}

func TestFromArrowRejectsNulls(t *testing.T) {
	b := array.NewInt32Builder(arrowPool())
	defer b.Release()
	b.Append(1)
	b.AppendNull()
	arr := b.NewArray()
	defer arr.Release()

	_, err := fromArrowColumn(arr)
	assert.ErrorIs(t, err, column.ErrUnsupportedBuffer)
}

func TestIPCRoundTrip(t *testing.T) {
	tbl := buildTable(t)

	var buf bytes.Buffer
	require.NoError(t, WriteIPC(&buf, tbl))

	back, err := ReadIPC(&buf)
	require.NoError(t, err)
	assert.True(t, tbl.Equal(back), "IPC round-trip changed the table")
}

func TestIPCMultiBatch(t *testing.T) {
	first := buildTable(t)
	second := table.New()
	tokens, err := column.FromRagged([]int32{7, 8}, []int64{2})
	require.NoError(t, err)
	score, err := column.FromSlice([]float64{3.5}, nil)
	require.NoError(t, err)
	second.Set("tokens", tokens)
	second.Set("score", score)

	var buf bytes.Buffer
	require.NoError(t, writeIPCBatches(&buf, first, second))

	got, err := ReadIPC(&buf)
	require.NoError(t, err)

	gotTokens, err := got.Get("tokens")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1, 2}, gotTokens.RowLengths())
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6, 7, 8}, column.Data[int32](gotTokens.Values()))

	gotScore, err := got.Get("score")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5, 2.5, 3.5}, column.Data[float64](gotScore.Values()))
}

func TestArrowUnsupportedType(t *testing.T) {
	_, err := arrowType(column.DataType(99))
	assert.ErrorIs(t, err, column.ErrUnsupportedBuffer)

	_, err = columnType(arrow.BinaryTypes.String)
	assert.ErrorIs(t, err, column.ErrUnsupportedBuffer)
}
