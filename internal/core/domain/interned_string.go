package domain

import (
	"runtime"
	"strings"
	"sync/atomic"
)

// payload is the immutable text shared by every holder of one interned value.
type payload struct {
	text string
	refs atomic.Int64
}

// holderState is kept outside InternedString so a runtime cleanup can reach it
// without keeping the holder itself alive.
type holderState struct {
	p        *payload
	released atomic.Bool
}

func (s *holderState) release() {
	if s.released.CompareAndSwap(false, true) {
		s.p.refs.Add(-1)
	}
}

// InternedString is one holder of a canonical, reference-counted string.
// Every holder is a distinct pointer; all holders of the same value share one payload.
// The nil *InternedString is the empty handle and every read method is nil-safe.
type InternedString struct {
	state *holderState
}

// NewInternedString creates the first holder of a new payload for s.
// The returned holder is the only one, so RefCount reports 1.
// It does not copy s; callers that slice a larger buffer should clone first.
func NewInternedString(s string) *InternedString {
	p := &payload{text: s}
	p.refs.Store(1)
	return &InternedString{state: &holderState{p: p}}
}

// Retain returns a new holder sharing the same payload and bumps the holder count.
// The new holder is released automatically once it becomes unreachable.
// Retaining the empty handle or a released holder yields the empty handle.
func (is *InternedString) Retain() *InternedString {
	if is == nil || is.state.released.Load() {
		return nil
	}
	p := is.state.p
	p.refs.Add(1)
	h := &InternedString{state: &holderState{p: p}}
	runtime.AddCleanup(h, func(s *holderState) { s.release() }, h.state)
	return h
}

// Release drops this holder's claim on the payload. It is idempotent.
func (is *InternedString) Release() {
	if is == nil {
		return
	}
	is.state.release()
}

// Released reports whether Release has been called on this holder.
func (is *InternedString) Released() bool {
	return is != nil && is.state.released.Load()
}

// RefCount returns the number of live holders of the payload, the pool included.
func (is *InternedString) RefCount() int64 {
	if is == nil {
		return 0
	}
	return is.state.p.refs.Load()
}

// String returns the underlying string value.
func (is *InternedString) String() string {
	if is == nil {
		return ""
	}
	return is.state.p.text
}

// Len returns the length of the value in bytes.
func (is *InternedString) Len() int {
	return len(is.String())
}

// IsEmpty reports whether this is the empty handle.
func (is *InternedString) IsEmpty() bool {
	return is == nil
}

// Same reports whether both holders share one payload.
// Two handles interned from one pool for equal input are always the same.
func (is *InternedString) Same(other *InternedString) bool {
	if is == nil || other == nil {
		return is == nil && other == nil
	}
	return is.state.p == other.state.p
}

// Equal reports whether both handles carry the same bytes.
func (is *InternedString) Equal(other *InternedString) bool {
	return is.Same(other) || is.String() == other.String()
}

// Compare orders two handles by byte value.
func (is *InternedString) Compare(other *InternedString) int {
	return strings.Compare(is.String(), other.String())
}

// MarshalText implements encoding.TextMarshaler.
func (is *InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}
