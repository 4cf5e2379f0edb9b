// Copyright 2025 The Coltab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package device provides the public API for coltab's memory domains and
// accelerator backends.
//
// The accelerator backend is a process-wide capability, registered once at
// startup:
//
//	if webgpu.IsAvailable() {
//	    gpu, _ := webgpu.New()
//	    device.Register(gpu)
//	}
package device

import (
	"github.com/coltab-ml/coltab/internal/device"
)

// Device represents the memory domain where buffer data resides.
type Device = device.Device

// Memory domain constants.
const (
	Host        Device = device.Host
	Accelerator Device = device.Accelerator
)

// Handle is an opaque reference to a device-resident allocation.
type Handle = device.Handle

// Backend moves raw bytes between host and accelerator memory.
type Backend = device.Backend

// ErrAcceleratorUnavailable is returned when a transfer to or from accelerator
// memory is requested but no accelerator backend has been registered.
var ErrAcceleratorUnavailable = device.ErrAcceleratorUnavailable

// Register installs the accelerator backend used by all subsequent transfers.
// Passing nil deregisters the current backend.
//
// Deregistering while buffers are still accelerator-resident strands them:
// transfers fail with ErrAcceleratorUnavailable and metadata reads that
// require a download panic. Move all columns to host before removing a
// backend.
func Register(b Backend) {
	device.Register(b)
}

// Registered returns the current accelerator backend, or false if none is
// installed.
func Registered() (Backend, bool) {
	return device.Registered()
}

// Available reports whether an accelerator backend has been registered.
func Available() bool {
	return device.Available()
}

// MockBackend is an in-process accelerator for testing: allocations live in
// host memory, so transfer round-trips are exact and observable without GPU
// hardware.
type MockBackend = device.MockBackend

// NewMockBackend creates a new MockBackend with no allocations.
func NewMockBackend() *MockBackend {
	return device.NewMockBackend()
}
