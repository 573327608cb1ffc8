package tart

import "encoding/binary"

// Key is a finite sequence of bytes usable as a tart index key. The same
// representation serves both shapes spec.md describes: fixed-width integer
// keys are simply produced by a constructor that zero-pads to a chosen width;
// variable-length keys wrap arbitrary byte content directly.
type Key []byte

// KeyFromBytes copies b into a new Key. The caller's slice is never aliased.
func KeyFromBytes(b []byte) Key {
	k := make(Key, len(b))
	copy(k, b)
	return k
}

// KeyFromString is a convenience wrapper over KeyFromBytes.
func KeyFromString(s string) Key {
	return KeyFromBytes([]byte(s))
}

// FixedKeyFromUint64 encodes n big-endian, zero-padded (on the left, i.e. the
// most-significant end) to width bytes. width must be at least 8 to hold a
// full uint64 without truncation.
func FixedKeyFromUint64(n uint64, width int) Key {
	k := make(Key, width)
	if width >= 8 {
		binary.BigEndian.PutUint64(k[width-8:], n)
		return k
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	copy(k, buf[8-width:])
	return k
}

// Len returns the number of bytes in the key.
func (k Key) Len() int { return len(k) }

// ByteAt returns the byte at index i.
func (k Key) ByteAt(i int) byte { return k[i] }

// Bytes returns the underlying byte slice. Callers must not mutate it.
func (k Key) Bytes() []byte { return k }

// SubKey returns the suffix of k starting at offset i.
func (k Key) SubKey(i int) Key { return k[i:] }

// LongestCommonPrefixLen returns the length of the longest common prefix
// between k and other.
func (k Key) LongestCommonPrefixLen(other Key) int {
	max := len(k)
	if len(other) < max {
		max = len(other)
	}
	i := 0
	for i < max && k[i] == other[i] {
		i++
	}
	return i
}

// Equal reports whether k and other contain the same bytes.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

// Compare returns -1, 0 or 1 as k is lexicographically less than, equal to,
// or greater than other.
func (k Key) Compare(other Key) int {
	n := len(k)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if k[i] != other[i] {
			if k[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(k) < len(other):
		return -1
	case len(k) > len(other):
		return 1
	default:
		return 0
	}
}
