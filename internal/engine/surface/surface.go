// Package surface defines the contract between the frame loop and whatever
// presents frames (an OpenGL window, an ebiten screen, a PNG file).
package surface

import (
	"errors"
	"fmt"

	"github.com/Faultbox/voxelspace/internal/engine/frame"
)

// Kind classifies presentation failures.
type Kind int

const (
	// Lost means the surface must be recreated before drawing again.
	Lost Kind = iota + 1
	// Outdated means the surface no longer matches the window size.
	Outdated
	// OutOfMemory is fatal.
	OutOfMemory
	// Timeout means presenting took too long; the frame is dropped.
	Timeout
)

func (k Kind) String() string {
	switch k {
	case Lost:
		return "lost"
	case Outdated:
		return "outdated"
	case OutOfMemory:
		return "out of memory"
	case Timeout:
		return "timeout"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by Surface methods.
type Error struct {
	Kind Kind
	Op   string // "draw", "present", "reconfigure"
	Err  error  // optional underlying cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("surface %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("surface %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of a surface error anywhere in err's chain, or 0.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// Surface presents finished frames.
type Surface interface {
	// Draw clears the target and draws the frame's segments.
	Draw(f *frame.Frame) error
	// Present shows the drawn frame.
	Present() error
	// Reconfigure rebuilds the surface for the current window and returns
	// its size in pixels.
	Reconfigure() (width, height int, err error)
}
