// Package event defines the host-agnostic input events consumed by the
// frame loop. Hosts (SDL2, ebiten, scripted) translate their native events
// into these.
package event

import (
	"github.com/Faultbox/voxelspace/internal/engine/camera"
)

// Type identifies an event.
type Type int

const (
	TypeNone Type = iota
	TypeQuit
	TypeResize
	TypeCommand
)

// Event is a processed input event.
type Event struct {
	Type    Type
	Command camera.Command // TypeCommand
	Width   int            // TypeResize
	Height  int            // TypeResize
}

// Quit returns a window-closed event.
func Quit() Event {
	return Event{Type: TypeQuit}
}

// Resize returns a window-resized event.
func Resize(width, height int) Event {
	return Event{Type: TypeResize, Width: width, Height: height}
}

// Command returns a key-command event.
func Command(cmd camera.Command) Event {
	return Event{Type: TypeCommand, Command: cmd}
}

// Source delivers the events that arrived since the previous poll.
type Source interface {
	Poll() []Event
}

// Script is a Source that replays a fixed list of events on the first poll
// and nothing afterwards.
type Script struct {
	events []Event
	done   bool
}

// NewScript creates a Script from commands, optionally ending with quit.
func NewScript(cmds []camera.Command, quit bool) *Script {
	s := &Script{}
	for _, c := range cmds {
		s.events = append(s.events, Command(c))
	}
	if quit {
		s.events = append(s.events, Quit())
	}
	return s
}

// Poll implements Source.
func (s *Script) Poll() []Event {
	if s.done {
		return nil
	}
	s.done = true
	return s.events
}
