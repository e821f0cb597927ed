package domain_test

import (
	"encoding/json"
	"runtime"
	"testing"
	"time"

	"go.trai.ch/intern/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	slot := domain.NewInternedString("hello")
	if slot.RefCount() != 1 {
		t.Fatalf("Expected a new payload to have one holder, got %d", slot.RefCount())
	}

	h1 := slot.Retain()
	h2 := h1.Retain()

	// Verify that all holders share the payload
	if !h1.Same(h2) || !slot.Same(h1) {
		t.Errorf("Expected retained holders to share one payload")
	}
	if h1 == h2 {
		t.Errorf("Expected every holder to be a distinct pointer")
	}
	if slot.RefCount() != 3 {
		t.Errorf("Expected 3 holders, got %d", slot.RefCount())
	}

	// Verify String() method
	if h1.String() != "hello" {
		t.Errorf("Expected String() to return %q, got %q", "hello", h1.String())
	}
	if h1.Len() != 5 {
		t.Errorf("Expected Len() to return 5, got %d", h1.Len())
	}
}

func TestInternedString_Release(t *testing.T) {
	slot := domain.NewInternedString("gain")
	h := slot.Retain()

	h.Release()
	if slot.RefCount() != 1 {
		t.Fatalf("Expected release to drop the holder count to 1, got %d", slot.RefCount())
	}
	if !h.Released() {
		t.Errorf("Expected holder to report released")
	}

	// A second release of the same holder is a no-op
	h.Release()
	if slot.RefCount() != 1 {
		t.Errorf("Expected double release to be ignored, got %d", slot.RefCount())
	}

	// A released holder cannot hand out new holders
	if got := h.Retain(); got != nil {
		t.Errorf("Expected Retain on a released holder to return the empty handle, got %q", got)
	}
}

func TestInternedString_Empty(t *testing.T) {
	var empty *domain.InternedString

	if !empty.IsEmpty() {
		t.Errorf("Expected nil handle to be empty")
	}
	if empty.String() != "" || empty.Len() != 0 || empty.RefCount() != 0 {
		t.Errorf("Expected nil handle to read as an empty string")
	}
	if empty.Retain() != nil {
		t.Errorf("Expected Retain on the empty handle to stay empty")
	}
	if !empty.Same(nil) {
		t.Errorf("Expected two empty handles to be the same")
	}
	if empty.Same(domain.NewInternedString("x")) {
		t.Errorf("Expected empty handle to differ from a pooled value")
	}

	// Must not panic
	empty.Release()
}

func TestInternedString_EqualAndCompare(t *testing.T) {
	a := domain.NewInternedString("cat")
	b := domain.NewInternedString("cat")
	c := domain.NewInternedString("dog")

	if a.Same(b) {
		t.Errorf("Expected independent payloads not to be the same")
	}
	if !a.Equal(b) {
		t.Errorf("Expected equal content to compare equal")
	}
	if a.Compare(c) >= 0 || c.Compare(a) <= 0 || a.Compare(b) != 0 {
		t.Errorf("Expected byte ordering cat < dog")
	}
}

func TestInternedString_CleanupReleasesUnreachableHolder(t *testing.T) {
	slot := domain.NewInternedString("plugin-id")

	func() {
		h := slot.Retain()
		if h.RefCount() != 2 {
			t.Fatalf("Expected 2 holders, got %d", h.RefCount())
		}
	}()

	for range 100 {
		runtime.GC()
		if slot.RefCount() == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Expected the unreachable holder to be released, count is %d", slot.RefCount())
}

func TestInternedStringJSON(t *testing.T) {
	type TestStruct struct {
		Name *domain.InternedString `json:"name"`
	}

	original := TestStruct{
		Name: domain.NewInternedString("build"),
	}

	// Marshal to JSON
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Failed to marshal struct: %v", err)
	}

	// Verify marshaled value
	expectedJSON := `{"name":"build"}`
	if string(data) != expectedJSON {
		t.Errorf("Expected JSON %q, got %q", expectedJSON, string(data))
	}
}
