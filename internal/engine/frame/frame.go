// Package frame collects the vertical segments produced by the projector
// into a primitive list for a renderer surface.
package frame

import (
	"github.com/Faultbox/voxelspace/internal/engine/terrain"
)

// FloatsPerVertex is the interleaved vertex layout: x, y, r, g, b.
const FloatsPerVertex = 5

// Segment is one vertical colored line on screen. Top is above Bottom
// (smaller Y) in screen space.
type Segment struct {
	X      float32
	Top    float32
	Bottom float32
	Color  terrain.Color
}

// Frame is a finished primitive list.
type Frame struct {
	Width    int
	Height   int
	Segments []Segment
	Steps    int // distance steps swept to produce the frame
}

// Vertices appends the frame as a line list (two vertices per segment) to
// dst and returns the extended slice.
func (f *Frame) Vertices(dst []float32) []float32 {
	for _, s := range f.Segments {
		c := s.Color
		dst = append(dst,
			s.X, s.Top, c.R, c.G, c.B,
			s.X, s.Bottom, c.R, c.G, c.B,
		)
	}
	return dst
}

// VertexCount returns the number of vertices Vertices produces.
func (f *Frame) VertexCount() int {
	return len(f.Segments) * 2
}

// Emitter accumulates segments for one frame. The backing storage is
// reused between frames, so a Frame is only valid until the next
// BeginFrame.
type Emitter struct {
	frame Frame
}

// NewEmitter creates an emitter with room for capacity segments.
func NewEmitter(capacity int) *Emitter {
	return &Emitter{
		frame: Frame{Segments: make([]Segment, 0, capacity)},
	}
}

// BeginFrame discards the previous frame and starts a new one.
func (e *Emitter) BeginFrame(width, height int) {
	e.frame.Width = width
	e.frame.Height = height
	e.frame.Segments = e.frame.Segments[:0]
	e.frame.Steps = 0
}

// PushSegment appends a segment to the current frame.
func (e *Emitter) PushSegment(x, top, bottom float32, c terrain.Color) {
	e.frame.Segments = append(e.frame.Segments, Segment{X: x, Top: top, Bottom: bottom, Color: c})
}

// CountStep records one distance step of the sweep.
func (e *Emitter) CountStep() {
	e.frame.Steps++
}

// FinishFrame returns the current frame.
func (e *Emitter) FinishFrame() *Frame {
	return &e.frame
}
