// Package input turns SDL2 events into renderer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/voxelspace/internal/engine/camera"
	"github.com/Faultbox/voxelspace/internal/engine/event"
)

// Keymap binds scancodes to view commands.
type Keymap map[sdl.Scancode]camera.Command

// DefaultKeymap returns the classic bindings: A/D rotate, arrows pan,
// W/S raise and lower the eye.
func DefaultKeymap() Keymap {
	return Keymap{
		sdl.SCANCODE_A:     camera.RotateLeft,
		sdl.SCANCODE_D:     camera.RotateRight,
		sdl.SCANCODE_LEFT:  camera.PanLeft,
		sdl.SCANCODE_RIGHT: camera.PanRight,
		sdl.SCANCODE_UP:    camera.PanForward,
		sdl.SCANCODE_DOWN:  camera.PanBack,
		sdl.SCANCODE_W:     camera.RaiseEye,
		sdl.SCANCODE_S:     camera.LowerEye,
	}
}

// Input polls SDL and implements event.Source.
type Input struct {
	keys   Keymap
	events []event.Event
}

// New creates an input handler with the default key bindings.
func New() *Input {
	return &Input{
		keys:   DefaultKeymap(),
		events: make([]event.Event, 0, 16),
	}
}

// Poll drains the SDL queue. Held keys produce a command per OS key
// repeat. The returned slice is reused by the next call.
func (i *Input) Poll() []event.Event {
	i.events = i.events[:0]

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, event.Quit())

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, event.Resize(int(e.Data1), int(e.Data2)))
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				i.events = append(i.events, event.Quit())
				continue
			}
			if cmd, ok := i.keys[e.Keysym.Scancode]; ok {
				i.events = append(i.events, event.Command(cmd))
			}
		}
	}

	return i.events
}

var _ event.Source = (*Input)(nil)
