package device

import "testing"

func TestRegistry(t *testing.T) {
	t.Cleanup(func() { Register(nil) })

	Register(nil)
	if Available() {
		t.Error("Available() = true with no backend registered")
	}
	if _, ok := Registered(); ok {
		t.Error("Registered() returned a backend with none installed")
	}

	mock := NewMockBackend()
	Register(mock)
	if !Available() {
		t.Error("Available() = false after Register")
	}
	backend, ok := Registered()
	if !ok || backend != Backend(mock) {
		t.Error("Registered() did not return the installed backend")
	}

	Register(nil)
	if Available() {
		t.Error("Available() = true after deregistration")
	}
}

func TestMockBackendRoundTrip(t *testing.T) {
	mock := NewMockBackend()

	data := []byte{1, 2, 3, 4, 5}
	h, err := mock.Upload(data)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if mock.ActiveAllocations() != 1 {
		t.Errorf("ActiveAllocations() = %d, want 1", mock.ActiveAllocations())
	}

	// The allocation must be isolated from the source slice.
	data[0] = 99
	got, err := mock.Download(h)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if got[0] != 1 || len(got) != 5 {
		t.Errorf("Download returned %v, want [1 2 3 4 5]", got)
	}

	mock.Free(h)
	if mock.ActiveAllocations() != 0 {
		t.Errorf("ActiveAllocations() = %d after Free, want 0", mock.ActiveAllocations())
	}
	if _, err := mock.Download(h); err == nil {
		t.Error("Download after Free should fail")
	}
}

func TestMockBackendInvalidHandle(t *testing.T) {
	mock := NewMockBackend()
	if _, err := mock.Download("not a handle"); err == nil {
		t.Error("Download with a foreign handle type should fail")
	}
}
