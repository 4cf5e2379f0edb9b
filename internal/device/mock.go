package device

import (
	"fmt"
	"sync"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple in-process accelerator for testing.
// It stores "device" allocations in host memory, which makes transfer
// round-trips exact and observable without GPU hardware.
type MockBackend struct {
	mu      sync.Mutex
	nextID  int
	buffers map[int][]byte
}

// NewMockBackend creates a new MockBackend with no allocations.
func NewMockBackend() *MockBackend {
	return &MockBackend{buffers: make(map[int][]byte)}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Upload copies data into a new mock allocation.
func (m *MockBackend) Upload(data []byte) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	buf := make([]byte, len(data))
	copy(buf, data)
	m.buffers[id] = buf
	return id, nil
}

// Download copies a mock allocation back to host memory.
func (m *MockBackend) Download(h Handle) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := h.(int)
	if !ok {
		return nil, fmt.Errorf("mock: invalid handle type %T", h)
	}
	buf, ok := m.buffers[id]
	if !ok {
		return nil, fmt.Errorf("mock: unknown handle %d", id)
	}
	out := make([]byte, len(buf))
	copy(out, buf)
	return out, nil
}

// Free releases a mock allocation.
func (m *MockBackend) Free(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := h.(int); ok {
		delete(m.buffers, id)
	}
}

// ActiveAllocations returns the number of live mock allocations.
// Useful for asserting that transfers free device memory.
func (m *MockBackend) ActiveAllocations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buffers)
}
