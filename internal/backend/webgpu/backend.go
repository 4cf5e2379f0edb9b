// Package webgpu implements the accelerator device backend on top of WebGPU
// storage buffers. Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO
// WebGPU bindings.
package webgpu

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/coltab-ml/coltab/internal/device"
)

// Verify that Backend implements device.Backend.
var _ device.Backend = (*Backend)(nil)

// Backend moves column buffers between host and GPU memory using WebGPU.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	adapterInfo *wgpu.AdapterInfoGo
}

// allocation is the device.Handle produced by Upload: a GPU storage buffer
// plus the unpadded byte size of the data it holds.
type allocation struct {
	buffer *wgpu.Buffer
	size   uint64 // Logical data size
	padded uint64 // Buffer size, rounded up to 4 bytes for WebGPU copies
}

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
func New() (backend *Backend, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, fmt.Errorf("webgpu: failed to create instance: %w", instanceErr)
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	adapterInfo, _ := adapter.GetInfo()

	dev, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}

	queue := dev.GetQueue()
	if queue == nil {
		dev.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Backend{
		instance:    instance,
		adapter:     adapter,
		device:      dev,
		queue:       queue,
		adapterInfo: adapterInfo,
	}, nil
}

// Name returns the backend name.
func (b *Backend) Name() string {
	if b.adapterInfo != nil {
		return fmt.Sprintf("WebGPU (%s %s)", b.adapterInfo.Device, b.adapterInfo.Vendor)
	}
	return "WebGPU"
}

// Upload copies host bytes into a new GPU storage buffer.
func (b *Backend) Upload(data []byte) (device.Handle, error) {
	size := uint64(len(data))
	padded := (size + 3) &^ 3 // WebGPU copies require 4-byte alignment

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:             padded,
		MappedAtCreation: wgpu.True,
	})
	if buffer == nil {
		return nil, fmt.Errorf("webgpu: failed to allocate %d-byte buffer", padded)
	}

	if padded > 0 {
		mappedPtr := buffer.GetMappedRange(0, padded)
		mappedSlice := unsafe.Slice((*byte)(mappedPtr), padded)
		copy(mappedSlice, data)
	}
	buffer.Unmap()

	return &allocation{buffer: buffer, size: size, padded: padded}, nil
}

// Download reads a GPU allocation back to host memory through a staging
// buffer; storage buffers cannot be mapped directly.
func (b *Backend) Download(h device.Handle) ([]byte, error) {
	alloc, ok := h.(*allocation)
	if !ok {
		return nil, fmt.Errorf("webgpu: invalid handle type %T", h)
	}
	if alloc.padded == 0 {
		return []byte{}, nil
	}

	stagingBuffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  alloc.padded,
	})
	defer stagingBuffer.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(alloc.buffer, 0, stagingBuffer, 0, alloc.padded)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	if err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, alloc.padded); err != nil {
		return nil, fmt.Errorf("webgpu: failed to map staging buffer: %w", err)
	}
	mappedPtr := stagingBuffer.GetMappedRange(0, alloc.padded)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alloc.padded)
	result := make([]byte, alloc.size)
	copy(result, mappedSlice[:alloc.size])
	stagingBuffer.Unmap()

	return result, nil
}

// Free releases a GPU allocation.
func (b *Backend) Free(h device.Handle) {
	if alloc, ok := h.(*allocation); ok && alloc.buffer != nil {
		alloc.buffer.Release()
		alloc.buffer = nil
	}
}

// Release releases all WebGPU resources.
// Must be called when the backend is no longer needed.
func (b *Backend) Release() {
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// AdapterInfo returns information about the GPU adapter.
func (b *Backend) AdapterInfo() *wgpu.AdapterInfoGo {
	return b.adapterInfo
}

// IsAvailable checks if WebGPU is available on this system.
// Useful for graceful fallback to host-only operation:
//
//	if webgpu.IsAvailable() {
//	    gpu, _ := webgpu.New()
//	    device.Register(gpu)
//	}
func IsAvailable() (available bool) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}
