package cmferr

import (
	"errors"
	"io"
	"testing"
)

func TestErrorsIsMatchesKind(t *testing.T) {
	err := New(Truncated, io.ErrUnexpectedEOF)
	if !errors.Is(err, Truncated) {
		t.Fatalf("expected errors.Is(err, Truncated) to hold")
	}
	if errors.Is(err, Overflow) {
		t.Fatalf("did not expect errors.Is(err, Overflow) to hold")
	}
}

func TestUnwrapReturnsCause(t *testing.T) {
	cause := io.ErrClosedPipe
	err := New(IOError, cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to unwrap to the wrapped cause")
	}
}

func TestNewWithNilCauseHasNoWrappedError(t *testing.T) {
	err := New(BadMagic, nil)
	if err.Err != nil {
		t.Fatalf("expected nil Err, got %v", err.Err)
	}
	if err.Error() != "BAD_MAGIC" {
		t.Fatalf("got %q, want %q", err.Error(), "BAD_MAGIC")
	}
}

func TestKindStringCoversAllKinds(t *testing.T) {
	want := map[Kind]string{
		Truncated:    "TRUNCATED",
		Overflow:     "OVERFLOW",
		BadMagic:     "BAD_MAGIC",
		BadVersion:   "BAD_VERSION",
		Malformed:    "MALFORMED",
		InvalidInput: "INVALID_INPUT",
		IOError:      "IO_ERROR",
	}
	for k, s := range want {
		if got := k.String(); got != s {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, s)
		}
	}
}
