package domain

import "strings"

// Key is a lookup value the pool can order against stored canonical strings
// without first turning it into a string of its own.
type Key interface {
	// CompareTo orders the key against a stored value: negative when the key
	// sorts first, zero when equal, positive when it sorts after.
	CompareTo(stored string) int
	// Materialize returns an owned copy of the key, used only on insertion.
	Materialize() string
	// IsEmpty reports whether the key has no bytes.
	IsEmpty() bool
}

var (
	_ Key = StringKey("")
	_ Key = CStringKey(nil)
	_ Key = RangeKey{}
	_ Key = (*InternedString)(nil)
)

// StringKey is an already materialized string.
type StringKey string

// CompareTo implements Key.
func (k StringKey) CompareTo(stored string) int {
	return strings.Compare(string(k), stored)
}

// Materialize returns a copy detached from any larger backing buffer.
func (k StringKey) Materialize() string {
	return strings.Clone(string(k))
}

// IsEmpty implements Key.
func (k StringKey) IsEmpty() bool {
	return k == ""
}

// CStringKey is a NUL-terminated byte buffer. Only the bytes before the first
// zero byte belong to the key; a buffer without a zero byte is used whole.
type CStringKey []byte

func (k CStringKey) text() []byte {
	for i, c := range k {
		if c == 0 {
			return k[:i]
		}
	}
	return k
}

// CompareTo implements Key.
func (k CStringKey) CompareTo(stored string) int {
	return compareBytes(k.text(), stored)
}

// Materialize implements Key.
func (k CStringKey) Materialize() string {
	return string(k.text())
}

// IsEmpty implements Key.
func (k CStringKey) IsEmpty() bool {
	return len(k) == 0 || k[0] == 0
}

// RangeKey is the half-open byte range [Start, End) of Buf.
// A range that is inverted or falls outside Buf is empty.
type RangeKey struct {
	Buf        []byte
	Start, End int
}

func (k RangeKey) valid() bool {
	return k.Start >= 0 && k.Start < k.End && k.End <= len(k.Buf)
}

// CompareTo implements Key.
func (k RangeKey) CompareTo(stored string) int {
	if !k.valid() {
		return compareBytes(nil, stored)
	}
	return compareBytes(k.Buf[k.Start:k.End], stored)
}

// Materialize implements Key.
func (k RangeKey) Materialize() string {
	if !k.valid() {
		return ""
	}
	return string(k.Buf[k.Start:k.End])
}

// IsEmpty implements Key.
func (k RangeKey) IsEmpty() bool {
	return !k.valid()
}

// CompareTo lets an existing handle act as a read-only lookup key.
func (is *InternedString) CompareTo(stored string) int {
	return strings.Compare(is.String(), stored)
}

// Materialize shares the handle's text; it is already immutable.
func (is *InternedString) Materialize() string {
	return is.String()
}

// compareBytes walks both sequences byte by byte. Running out of bytes sorts
// first, so the result matches strings.Compare on the same contents.
func compareBytes(b []byte, s string) int {
	n := min(len(b), len(s))
	for i := range n {
		switch {
		case b[i] < s[i]:
			return -1
		case b[i] > s[i]:
			return 1
		}
	}
	switch {
	case len(b) < len(s):
		return -1
	case len(b) > len(s):
		return 1
	}
	return 0
}
