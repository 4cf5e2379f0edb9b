package column

import (
	"bytes"
	"fmt"
	"unsafe"

	"github.com/coltab-ml/coltab/internal/device"
)

// Buffer is a flat, dtype-tagged byte buffer tracking which memory domain it
// lives in. Host-resident buffers hold their bytes directly; accelerator-
// resident buffers hold an opaque handle owned by the registered device
// backend.
type Buffer struct {
	data   []byte        // Host storage; nil while device-resident
	handle device.Handle // Accelerator storage; nil while host-resident
	dtype  DataType      // Runtime type information
	length int           // Number of elements
	dev    device.Device // Current memory domain
}

// BufferFromSlice creates a host-resident buffer by copying a Go slice.
func BufferFromSlice[T DType](values []T) *Buffer {
	var dummy T
	dtype := inferDataType(dummy)

	buf := &Buffer{
		data:   make([]byte, len(values)*dtype.Size()),
		dtype:  dtype,
		length: len(values),
		dev:    device.Host,
	}
	if len(values) > 0 {
		src := unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(buf.data))
		copy(buf.data, src)
	}
	return buf
}

// BufferFromBytes creates a host-resident buffer that takes ownership of the
// given bytes. The byte length must be a multiple of the dtype size.
func BufferFromBytes(data []byte, dtype DataType) (*Buffer, error) {
	if len(data)%dtype.Size() != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %s size %d",
			ErrUnsupportedBuffer, len(data), dtype, dtype.Size())
	}
	return &Buffer{
		data:   data,
		dtype:  dtype,
		length: len(data) / dtype.Size(),
		dev:    device.Host,
	}, nil
}

// Len returns the number of elements.
func (b *Buffer) Len() int {
	return b.length
}

// DType returns the buffer's data type.
func (b *Buffer) DType() DataType {
	return b.dtype
}

// Device returns the memory domain the buffer currently resides in.
func (b *Buffer) Device() device.Device {
	return b.dev
}

// ByteSize returns the total buffer size in bytes.
func (b *Buffer) ByteSize() int {
	return b.length * b.dtype.Size()
}

// Bytes returns the raw host bytes.
// Panics if the buffer is resident on the accelerator; use ToHost first or
// HostBytes for a read-only snapshot.
func (b *Buffer) Bytes() []byte {
	if b.dev != device.Host {
		panic("buffer is resident on " + b.dev.String() + "; move it to host before direct access")
	}
	return b.data
}

// HostBytes returns the buffer contents in host memory without changing
// residency. For host buffers this is the backing storage itself; for
// accelerator buffers it is a freshly downloaded copy.
func (b *Buffer) HostBytes() ([]byte, error) {
	if b.dev == device.Host {
		return b.data, nil
	}
	backend, ok := device.Registered()
	if !ok {
		return nil, fmt.Errorf("%w: cannot read accelerator-resident buffer", ErrAcceleratorUnavailable)
	}
	return backend.Download(b.handle)
}

// AsFloat32 interprets the host data as []float32.
// Panics if the dtype is not Float32 or the buffer is device-resident.
func (b *Buffer) AsFloat32() []float32 {
	b.checkAccess(Float32)
	if b.length == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b.data[0])), b.length)
}

// AsFloat64 interprets the host data as []float64.
// Panics if the dtype is not Float64 or the buffer is device-resident.
func (b *Buffer) AsFloat64() []float64 {
	b.checkAccess(Float64)
	if b.length == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&b.data[0])), b.length)
}

// AsInt32 interprets the host data as []int32.
// Panics if the dtype is not Int32 or the buffer is device-resident.
func (b *Buffer) AsInt32() []int32 {
	b.checkAccess(Int32)
	if b.length == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&b.data[0])), b.length)
}

// AsInt64 interprets the host data as []int64.
// Panics if the dtype is not Int64 or the buffer is device-resident.
func (b *Buffer) AsInt64() []int64 {
	b.checkAccess(Int64)
	if b.length == 0 {
		return nil
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(&b.data[0])), b.length)
}

// AsUint8 interprets the host data as []uint8.
// Panics if the dtype is not Uint8 or the buffer is device-resident.
func (b *Buffer) AsUint8() []uint8 {
	b.checkAccess(Uint8)
	return b.data
}

// AsBool interprets the host data as []bool.
// Panics if the dtype is not Bool or the buffer is device-resident.
func (b *Buffer) AsBool() []bool {
	b.checkAccess(Bool)
	if b.length == 0 {
		return nil
	}
	return unsafe.Slice((*bool)(unsafe.Pointer(&b.data[0])), b.length)
}

func (b *Buffer) checkAccess(want DataType) {
	if b.dtype != want {
		panic(fmt.Sprintf("buffer dtype is %s, not %s", b.dtype, want))
	}
	if b.dev != device.Host {
		panic("buffer is resident on " + b.dev.String() + "; move it to host before typed access")
	}
}

// Data returns a typed host slice view of the buffer's data (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the buffer.
func Data[T DType](b *Buffer) []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(b.AsFloat32()).([]T)
	case float64:
		return any(b.AsFloat64()).([]T)
	case int32:
		return any(b.AsInt32()).([]T)
	case int64:
		return any(b.AsInt64()).([]T)
	case uint8:
		return any(b.AsUint8()).([]T)
	case bool:
		return any(b.AsBool()).([]T)
	default:
		panic("unsupported type")
	}
}

// View returns a host-resident sub-buffer sharing the same backing bytes.
// from and to are element indices.
func (b *Buffer) View(from, to int) *Buffer {
	if b.dev != device.Host {
		panic("cannot take a view of a " + b.dev.String() + "-resident buffer")
	}
	if from < 0 || to < from || to > b.length {
		panic(fmt.Sprintf("view [%d:%d] out of bounds for buffer of length %d", from, to, b.length))
	}
	size := b.dtype.Size()
	return &Buffer{
		data:   b.data[from*size : to*size],
		dtype:  b.dtype,
		length: to - from,
		dev:    device.Host,
	}
}

// Equal reports structural equality: same dtype, same length, same bytes.
// Accelerator-resident buffers are compared through a downloaded snapshot
// without changing residency.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil {
		return false
	}
	if b.dtype != other.dtype || b.length != other.length {
		return false
	}
	lhs, err := b.HostBytes()
	if err != nil {
		return false
	}
	rhs, err := other.HostBytes()
	if err != nil {
		return false
	}
	return bytes.Equal(lhs, rhs)
}

// toDevice moves the buffer's storage to the target domain in place.
// Moving to the current domain is a no-op.
func (b *Buffer) toDevice(target device.Device) error {
	if b.dev == target {
		return nil
	}

	backend, ok := device.Registered()
	if !ok {
		return fmt.Errorf("%w: cannot move buffer to %s", ErrAcceleratorUnavailable, target)
	}

	switch target {
	case device.Accelerator:
		handle, err := backend.Upload(b.data)
		if err != nil {
			return fmt.Errorf("upload to %s failed: %w", backend.Name(), err)
		}
		b.handle = handle
		b.data = nil
		b.dev = device.Accelerator
	case device.Host:
		data, err := backend.Download(b.handle)
		if err != nil {
			return fmt.Errorf("download from %s failed: %w", backend.Name(), err)
		}
		backend.Free(b.handle)
		b.handle = nil
		b.data = data
		b.dev = device.Host
	default:
		return fmt.Errorf("%w: unknown device %d", ErrUnsupportedBuffer, target)
	}
	return nil
}

// String returns a human-readable description of the buffer.
func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer[%s] len=%d on %s", b.dtype, b.length, b.dev)
}
