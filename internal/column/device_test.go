package column

import (
	"errors"
	"testing"

	"github.com/coltab-ml/coltab/internal/device"
)

// withMockBackend registers a fresh mock accelerator for the duration of one
// test and deregisters it afterwards.
func withMockBackend(t *testing.T) *device.MockBackend {
	t.Helper()
	mock := device.NewMockBackend()
	device.Register(mock)
	t.Cleanup(func() { device.Register(nil) })
	return mock
}

func TestTransferRoundTrip(t *testing.T) {
	mock := withMockBackend(t)

	col, err := FromRagged([]float32{1, 2, 3, 4, 5, 6}, []int64{2, 3, 1})
	if err != nil {
		t.Fatalf("FromRagged: %v", err)
	}
	want, _ := FromRagged([]float32{1, 2, 3, 4, 5, 6}, []int64{2, 3, 1})

	if _, err := col.ToAccelerator(); err != nil {
		t.Fatalf("ToAccelerator: %v", err)
	}
	if col.Device() != device.Accelerator {
		t.Errorf("Device() = %s, want Accelerator", col.Device())
	}
	// Values and row lengths always travel together.
	if col.LengthsBuffer().Device() != device.Accelerator {
		t.Error("row lengths left behind on host")
	}
	if mock.ActiveAllocations() != 2 {
		t.Errorf("ActiveAllocations() = %d, want 2", mock.ActiveAllocations())
	}

	if _, err := col.ToHost(); err != nil {
		t.Fatalf("ToHost: %v", err)
	}
	if col.Device() != device.Host {
		t.Errorf("Device() = %s, want Host", col.Device())
	}
	if mock.ActiveAllocations() != 0 {
		t.Errorf("ActiveAllocations() = %d after download, want 0", mock.ActiveAllocations())
	}
	if !col.Equal(want) {
		t.Error("round-tripped column differs from original")
	}
}

func TestTransferNoOp(t *testing.T) {
	mock := withMockBackend(t)

	col, _ := FromSlice([]int64{1, 2, 3}, nil)
	if _, err := col.ToHost(); err != nil {
		t.Fatalf("ToHost on host column: %v", err)
	}
	if mock.ActiveAllocations() != 0 {
		t.Error("host-to-host transfer should not touch the accelerator")
	}

	if _, err := col.ToAccelerator(); err != nil {
		t.Fatalf("ToAccelerator: %v", err)
	}
	before := mock.ActiveAllocations()
	if _, err := col.ToAccelerator(); err != nil {
		t.Fatalf("repeated ToAccelerator: %v", err)
	}
	if mock.ActiveAllocations() != before {
		t.Error("accelerator-to-accelerator transfer should be a no-op")
	}
}

func TestTransferWithoutBackend(t *testing.T) {
	device.Register(nil)

	col, _ := FromSlice([]float64{1, 2}, nil)
	if _, err := col.ToAccelerator(); !errors.Is(err, ErrAcceleratorUnavailable) {
		t.Errorf("expected ErrAcceleratorUnavailable, got %v", err)
	}
	if col.Device() != device.Host {
		t.Error("failed transfer must leave the column on host")
	}
}

func TestAcceleratorReadsSnapshot(t *testing.T) {
	withMockBackend(t)

	col, _ := FromRagged([]int32{7, 8, 9}, []int64{1, 2})
	if _, err := col.ToAccelerator(); err != nil {
		t.Fatalf("ToAccelerator: %v", err)
	}

	// Metadata reads work through downloaded snapshots without moving the
	// column back to host.
	assertInt64s(t, []int64{1, 2}, col.RowLengths(), "RowLengths")
	assertInt64s(t, []int64{0, 1, 3}, col.Boundaries(), "Boundaries")
	if col.Device() != device.Accelerator {
		t.Error("metadata reads must not change residency")
	}

	other, _ := FromRagged([]int32{7, 8, 9}, []int64{1, 2})
	if !col.Equal(other) {
		t.Error("device-resident column should compare equal to its host twin")
	}
}

func TestDeregistrationStrandsColumn(t *testing.T) {
	withMockBackend(t)

	col, _ := FromRagged([]int32{1, 2, 3}, []int64{2, 1})
	if _, err := col.ToAccelerator(); err != nil {
		t.Fatalf("ToAccelerator: %v", err)
	}

	// Removing the backend while the column is device-resident strands it:
	// the handles can no longer be resolved.
	device.Register(nil)

	if _, err := col.ToHost(); !errors.Is(err, ErrAcceleratorUnavailable) {
		t.Errorf("ToHost: expected ErrAcceleratorUnavailable, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("metadata read on a stranded column should panic")
		}
	}()
	col.RowLengths()
}

func TestDeviceResidentAccessPanics(t *testing.T) {
	withMockBackend(t)

	col, _ := FromSlice([]float32{1, 2, 3}, nil)
	if _, err := col.ToAccelerator(); err != nil {
		t.Fatalf("ToAccelerator: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("typed access to a device-resident buffer should panic")
		}
	}()
	col.Values().AsFloat32()
}
