package column

import (
	"errors"

	"github.com/coltab-ml/coltab/internal/device"
)

// Error values returned by column construction and conversion.
// All failures are synchronous and deterministic; none are retryable.
var (
	// ErrShape is returned for inputs with rank > 2, or when row lengths do
	// not account for the full value buffer.
	ErrShape = errors.New("unsupported column shape")

	// ErrUnsupportedBuffer is returned when a backing buffer belongs to
	// neither the host nor the accelerator memory domain.
	ErrUnsupportedBuffer = errors.New("unsupported buffer type")

	// ErrMalformedOffsets is returned when an external offset-boundary array
	// fails monotonicity or length-consistency checks.
	ErrMalformedOffsets = errors.New("malformed offset boundaries")

	// ErrAcceleratorUnavailable is returned when a device transfer is
	// requested but no accelerator backend is registered.
	ErrAcceleratorUnavailable = device.ErrAcceleratorUnavailable
)
