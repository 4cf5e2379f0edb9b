package device

import "sync"

// The accelerator backend is a process-wide capability: it is either linked
// and registered once at startup, or absent for the lifetime of the process.
var (
	mu    sync.RWMutex
	accel Backend
)

// Register installs the accelerator backend used by all subsequent transfers.
// Passing nil deregisters the current backend.
//
// Register is expected to be called once during process startup, before any
// column is moved to accelerator memory:
//
//	if webgpu.IsAvailable() {
//	    gpu, _ := webgpu.New()
//	    device.Register(gpu)
//	}
//
// Deregistering while buffers are still accelerator-resident strands them:
// their handles can no longer be resolved, so transfers fail with
// ErrAcceleratorUnavailable and metadata reads that require a download panic.
// Move all columns to host before removing a backend.
func Register(b Backend) {
	mu.Lock()
	defer mu.Unlock()
	accel = b
}

// Registered returns the current accelerator backend, or false if none is
// installed.
func Registered() (Backend, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return accel, accel != nil
}

// Available reports whether an accelerator backend has been registered.
func Available() bool {
	_, ok := Registered()
	return ok
}
