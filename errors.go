package tart

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind is the sentinel half of a TartError, matchable with errors.Is.
type ErrorKind uint8

const (
	// KeyNotFound: no entry for the queried key. No operation in this
	// package returns it; lookups and removals report absence as ok=false.
	KeyNotFound ErrorKind = iota
	// SnapshotNotFound: CloseReader called with an id the tree never issued.
	SnapshotNotFound
	// SnapshotAlreadyClosed: CloseReader called twice for the same id.
	SnapshotAlreadyClosed
	// InvalidPrefix: a prefix construction was given an out-of-range offset.
	InvalidPrefix
)

func (k ErrorKind) String() string {
	switch k {
	case KeyNotFound:
		return "key not found"
	case SnapshotNotFound:
		return "snapshot not found"
	case SnapshotAlreadyClosed:
		return "snapshot already closed"
	case InvalidPrefix:
		return "invalid prefix"
	default:
		return "unknown error"
	}
}

// Error makes a bare ErrorKind usable as an errors.Is target.
func (k ErrorKind) Error() string { return k.String() }

// TartError is the user-facing error taxonomy of spec.md §6/§7. Internal
// invariant violations (capacity overflow on addChild, out-of-range prefix
// offsets reached through malformed internal calls) panic instead, as §7
// requires ("internal invariant failures are fatal").
type TartError struct {
	Kind ErrorKind
	err  error
}

func (e *TartError) Error() string { return e.err.Error() }

func (e *TartError) Unwrap() error { return e.err }

// Is supports errors.Is(err, KeyNotFound)-style matching against the Kind,
// by comparing against another *TartError or bare ErrorKind value.
func (e *TartError) Is(target error) bool {
	if k, ok := target.(ErrorKind); ok {
		return e.Kind == k
	}
	te, ok := target.(*TartError)
	return ok && te.Kind == e.Kind
}

func newSnapshotNotFound(id uint64) error {
	return &TartError{Kind: SnapshotNotFound, err: errors.Wrapf(fmt.Errorf("%s", SnapshotNotFound), "snapshot id %d", id)}
}

func newSnapshotAlreadyClosed(id uint64) error {
	return &TartError{Kind: SnapshotAlreadyClosed, err: errors.Wrapf(fmt.Errorf("%s", SnapshotAlreadyClosed), "snapshot id %d", id)}
}

func newInvalidPrefix(offset, length int) error {
	return &TartError{Kind: InvalidPrefix, err: errors.Wrapf(fmt.Errorf("%s", InvalidPrefix), "offset %d, length %d", offset, length)}
}
