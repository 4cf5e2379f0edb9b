package frame

import (
	"bytes"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/coltab-ml/coltab/internal/column"
	"github.com/coltab-ml/coltab/internal/table"
)

// WriteIPC encodes a table as a single-batch Arrow IPC file.
func WriteIPC(w io.Writer, t *table.Table) error {
	rec, err := ToArrow(t)
	if err != nil {
		return err
	}
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return fmt.Errorf("failed to create Arrow writer: %w", err)
	}
	if err := fw.Write(rec); err != nil {
		return fmt.Errorf("failed to write record batch: %w", err)
	}
	return fw.Close()
}

// ReadIPC decodes an Arrow IPC file into a table. Multi-batch files are
// concatenated batch by batch in file order.
func ReadIPC(r io.Reader) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read Arrow data: %w", err)
	}

	fr, err := ipc.NewFileReader(bytes.NewReader(data), ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, fmt.Errorf("failed to create Arrow reader: %w", err)
	}
	defer fr.Close()

	var out *table.Table
	for i := 0; i < fr.NumRecords(); i++ {
		rec, err := fr.Record(i)
		if err != nil {
			return nil, fmt.Errorf("failed to read record batch %d: %w", i, err)
		}
		t, err := FromArrow(rec)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = t
			continue
		}
		if out, err = appendBatch(out, t); err != nil {
			return nil, fmt.Errorf("batch %d: %w", i, err)
		}
	}
	if out == nil {
		out = table.New()
	}
	return out, nil
}

// appendBatch concatenates a later batch's rows onto the accumulated table,
// column by column.
func appendBatch(acc, next *table.Table) (*table.Table, error) {
	names := acc.Keys()
	out := table.New()
	for _, name := range names {
		a, err := acc.Get(name)
		if err != nil {
			return nil, err
		}
		b, err := next.Get(name)
		if err != nil {
			return nil, err
		}
		if a.DType() != b.DType() {
			return nil, fmt.Errorf("column %q: %w: dtype %s vs %s",
				name, column.ErrUnsupportedBuffer, a.DType(), b.DType())
		}
		if a.IsList() != b.IsList() {
			return nil, fmt.Errorf("column %q: %w: list and non-list batches",
				name, column.ErrShape)
		}

		joined := append(append([]byte(nil), a.Values().Bytes()...), b.Values().Bytes()...)
		values, err := column.BufferFromBytes(joined, a.DType())
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}

		var lengths []int64
		if a.IsList() {
			lengths = append(append([]int64(nil), a.RowLengths()...), b.RowLengths()...)
		}
		col, err := column.New(values, lengths)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		out.Set(name, col)
	}
	return out, nil
}
