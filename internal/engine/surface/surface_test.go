package surface

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	base := &Error{Kind: Outdated, Op: "present"}
	wrapped := fmt.Errorf("frame 12: %w", base)

	if got := KindOf(wrapped); got != Outdated {
		t.Errorf("KindOf(wrapped) = %v, want outdated", got)
	}
	if got := KindOf(errors.New("plain")); got != 0 {
		t.Errorf("KindOf(plain) = %v, want 0", got)
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("GL_OUT_OF_MEMORY")
	err := &Error{Kind: OutOfMemory, Op: "draw", Err: cause}

	if got, want := err.Error(), "surface draw: out of memory: GL_OUT_OF_MEMORY"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
	if got, want := (&Error{Kind: Timeout, Op: "present"}).Error(), "surface present: timeout"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
