// Package camera holds the viewer state of the voxel-space renderer:
// heading, ground position and eye height.
package camera

import (
	"github.com/Faultbox/voxelspace/pkg/math"
)

// Steps holds the amount each command moves the view.
type Steps struct {
	Rotate float64 // radians per rotate command
	Pan    float32 // world units per pan command
	Eye    int     // height units per eye command
}

// DefaultSteps returns the standard command step sizes.
func DefaultSteps() Steps {
	return Steps{
		Rotate: 0.1,
		Pan:    10,
		Eye:    10,
	}
}

// View is the camera state read by the projector every frame.
//
// At heading 0 the view looks down -Y with -X on the left. Panning is
// along world axes and does not follow the heading.
type View struct {
	Heading   float64   // radians, unbounded
	Origin    math.Vec2 // ground position, unbounded
	EyeHeight int       // unbounded

	Steps Steps
}

// New returns a view at the given position using DefaultSteps.
func New(origin math.Vec2, heading float64, eyeHeight int) *View {
	return &View{
		Heading:   heading,
		Origin:    origin,
		EyeHeight: eyeHeight,
		Steps:     DefaultSteps(),
	}
}

// Apply mutates the view for one command. Unknown commands are ignored.
func (v *View) Apply(cmd Command) {
	switch cmd {
	case RotateLeft:
		v.Heading += v.Steps.Rotate
	case RotateRight:
		v.Heading -= v.Steps.Rotate
	case PanLeft:
		v.Origin.X -= v.Steps.Pan
	case PanRight:
		v.Origin.X += v.Steps.Pan
	case PanForward:
		v.Origin.Y -= v.Steps.Pan
	case PanBack:
		v.Origin.Y += v.Steps.Pan
	case RaiseEye:
		v.EyeHeight += v.Steps.Eye
	case LowerEye:
		v.EyeHeight -= v.Steps.Eye
	}
}

// ApplyAll applies commands in order.
func (v *View) ApplyAll(cmds []Command) {
	for _, cmd := range cmds {
		v.Apply(cmd)
	}
}
