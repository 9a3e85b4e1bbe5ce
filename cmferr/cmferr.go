// Package cmferr defines the error kinds shared by every cmf package, so
// that reader and writer failures can be inspected by callers instead of
// string-matched.
package cmferr

import (
	"fmt"

	"github.com/carbocation/pfx"
)

// Kind identifies why a core operation failed.
type Kind int

const (
	// Truncated means the stream ended in the middle of an element.
	Truncated Kind = iota
	// Overflow means a varint would require more bytes or bits than u64 allows.
	Overflow
	// BadMagic means the header's magic bytes did not match "cvcf".
	BadMagic
	// BadVersion means the header's version bytes are not one this package understands.
	BadVersion
	// Malformed means the bytes decoded cleanly but violated a structural invariant.
	Malformed
	// InvalidInput means the caller passed a value that violates a precondition.
	InvalidInput
	// IOError means the underlying byte source or sink reported a failure.
	IOError
)

func (k Kind) String() string {
	switch k {
	case Truncated:
		return "TRUNCATED"
	case Overflow:
		return "OVERFLOW"
	case BadMagic:
		return "BAD_MAGIC"
	case BadVersion:
		return "BAD_VERSION"
	case Malformed:
		return "MALFORMED"
	case InvalidInput:
		return "INVALID_INPUT"
	case IOError:
		return "IO_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Error pairs a Kind with the underlying cause, if any.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, cmferr.Truncated) work by comparing Kind values
// against a bare Kind passed as the target.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// Error lets a bare Kind be used as an errors.Is target without needing
// a constructed *Error on the comparison side.
func (k Kind) Error() string { return k.String() }

// New wraps cause (which may be nil) with Kind and runs it through pfx.Err
// so the error carries a call-site trace.
func New(kind Kind, cause error) *Error {
	e := &Error{Kind: kind, Err: cause}
	if cause == nil {
		return e
	}
	return &Error{Kind: kind, Err: pfx.Err(cause)}
}
