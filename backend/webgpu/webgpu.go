// Copyright 2025 The Coltab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU accelerator backend for coltab buffers.
//
// WebGPU is a cross-platform compute API that works on Windows (D3D12),
// macOS (Metal), and Linux (Vulkan). The backend stores column buffers in GPU
// storage buffers and moves them through staging buffers on download.
//
// Example:
//
//	if webgpu.IsAvailable() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//	    device.Register(gpu)
//	}
package webgpu

import (
	"github.com/coltab-ml/coltab/device"
	internalwebgpu "github.com/coltab-ml/coltab/internal/backend/webgpu"
)

// Backend moves column buffers between host and GPU memory using WebGPU.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements device.Backend.
var _ device.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
//
// This function initializes the WebGPU adapter, device, and queue. Call
// Release when done to free GPU resources.
//
// Returns an error if WebGPU initialization fails (e.g., no compatible GPU).
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// This function attempts to initialize a WebGPU adapter to verify that a
// compatible GPU and drivers are present. It's useful for graceful fallback
// to host-only operation.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
