// Package device defines the memory domains a column buffer can live in and
// the backend interface that moves bytes between them.
package device

import "errors"

// Device represents the memory domain where buffer data resides.
type Device int

// Supported memory domains.
const (
	Host Device = iota
	Accelerator
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case Host:
		return "Host"
	case Accelerator:
		return "Accelerator"
	default:
		return "Unknown"
	}
}

// ErrAcceleratorUnavailable is returned when a transfer to or from accelerator
// memory is requested but no accelerator backend has been registered.
var ErrAcceleratorUnavailable = errors.New("accelerator runtime unavailable")

// Handle is an opaque reference to a device-resident allocation.
// Only the backend that produced a handle can interpret it.
type Handle any

// Backend moves raw bytes between host and accelerator memory.
// All operations are synchronous: when Upload or Download returns, the copy
// is complete.
//
// Implementations:
//   - backend/webgpu: GPU memory via WebGPU storage buffers
//   - MockBackend: in-process test double
type Backend interface {
	// Name returns a human-readable backend name.
	Name() string

	// Upload copies host bytes into a new device allocation.
	Upload(data []byte) (Handle, error)

	// Download copies a device allocation back into host memory.
	// The allocation remains valid; Download does not free it.
	Download(h Handle) ([]byte, error)

	// Free releases a device allocation.
	Free(h Handle)
}
