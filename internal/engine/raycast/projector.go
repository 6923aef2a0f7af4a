// Package raycast implements the voxel-space projector: for every distance
// step, front to back, it walks a scan line perpendicular to the view,
// samples the terrain under each screen column, projects the height with a
// perspective divide and emits the newly revealed sliver of each column.
package raycast

import (
	"fmt"
	stdmath "math"

	"github.com/Faultbox/voxelspace/internal/engine/camera"
	"github.com/Faultbox/voxelspace/internal/engine/frame"
	"github.com/Faultbox/voxelspace/internal/engine/horizon"
	"github.com/Faultbox/voxelspace/internal/engine/terrain"
	"github.com/Faultbox/voxelspace/pkg/math"
)

// Sampler is the read-only terrain view the projector needs.
// *terrain.Store implements it.
type Sampler interface {
	Width() int
	Height() int
	SampleHeight(x, y int) float32
	SampleColor(x, y int) terrain.Color
}

// Params are the fixed projection constants.
type Params struct {
	FarDistance     float32 // sweep stops once distance reaches this
	ProjectionScale float32 // vertical exaggeration of the perspective divide
	StepIncrement   float32 // growth of the distance step per iteration
	MinY            float32 // smallest projected Y, keeps segments non-degenerate
	Horizon         float32 // screen Y offset added to every projection
}

// DefaultParams returns the classic constants: 700 units of view distance,
// scale 240 and a step that grows by 0.2 per iteration.
func DefaultParams() Params {
	return Params{
		FarDistance:     700,
		ProjectionScale: 240,
		StepIncrement:   0.2,
		MinY:            1,
		Horizon:         0,
	}
}

// Validate reports parameters that would stall or invert the sweep.
func (p Params) Validate() error {
	if p.FarDistance <= 1 {
		return fmt.Errorf("far distance must be > 1, got %v", p.FarDistance)
	}
	if p.ProjectionScale <= 0 {
		return fmt.Errorf("projection scale must be > 0, got %v", p.ProjectionScale)
	}
	if p.StepIncrement <= 0 {
		return fmt.Errorf("step increment must be > 0, got %v", p.StepIncrement)
	}
	if p.MinY <= 0 {
		return fmt.Errorf("min y must be > 0, got %v", p.MinY)
	}
	return nil
}

// ProjectY maps a terrain sample to a screen row, clamped to
// [MinY, screenHeight].
func (p Params) ProjectY(eye, sampled, distance, screenHeight float32) float32 {
	y := (eye-sampled)/distance*p.ProjectionScale + p.Horizon
	if y > screenHeight {
		y = screenHeight
	}
	if y < p.MinY {
		y = p.MinY
	}
	return y
}

// FrameContext owns the per-frame mutable state: the view snapshot, the
// screen size, the horizon buffer and the segment emitter.
type FrameContext struct {
	View    camera.View
	Width   int
	Height  int
	Horizon *horizon.Buffer
	Emitter *frame.Emitter
}

// NewFrameContext allocates state for a width x height screen.
func NewFrameContext(width, height int) *FrameContext {
	return &FrameContext{
		Width:   width,
		Height:  height,
		Horizon: horizon.New(width + 1),
		Emitter: frame.NewEmitter((width + 1) * 8),
	}
}

// Resize changes the screen size. Call between frames only.
func (fc *FrameContext) Resize(width, height int) {
	fc.Width = width
	fc.Height = height
	fc.Horizon.Resize(width + 1)
}

// Projector renders frames from a terrain sampler.
type Projector struct {
	terrain Sampler
	params  Params
}

// NewProjector creates a projector. The sampler must be valid for the
// projector's whole lifetime.
func NewProjector(s Sampler, params Params) *Projector {
	return &Projector{terrain: s, params: params}
}

// Params returns the projection constants.
func (p *Projector) Params() Params {
	return p.params
}

// Render sweeps one frame using fc and returns the finished primitive
// list. The returned frame is owned by fc.Emitter.
func (p *Projector) Render(fc *FrameContext) *frame.Frame {
	w, h := fc.Width, fc.Height
	fc.Emitter.BeginFrame(w, h)
	if w <= 0 || h <= 0 {
		return fc.Emitter.FinishFrame()
	}

	fc.Horizon.Resize(w + 1)
	fc.Horizon.Reset(float32(h))

	view := fc.View
	// Scan lines are rotated by -heading so that a positive heading turns
	// the view to the left.
	sin := -float32(stdmath.Sin(view.Heading))
	cos := float32(stdmath.Cos(view.Heading))
	eye := float32(view.EyeHeight)
	screenH := float32(h)
	invW := 1 / float32(w)

	// The view origin maps to the centre of the map.
	center := view.Origin.Add(math.Vec2{
		X: float32(p.terrain.Width()) / 2,
		Y: float32(p.terrain.Height()) / 2,
	})

	for dist, dz := float32(1), float32(1); dist < p.params.FarDistance; dist, dz = dist+dz, dz+p.params.StepIncrement {
		left := math.Vec2{X: -dist, Y: -dist}.Rotate(sin, cos).Add(center)
		right := math.Vec2{X: dist, Y: -dist}.Rotate(sin, cos).Add(center)
		step := right.Sub(left).Scale(invW)

		for col := 0; col <= w; col++ {
			x, y := left.Add(step.Scale(float32(col))).Floor()
			py := p.params.ProjectY(eye, p.terrain.SampleHeight(x, y), dist, screenH)

			bottom := fc.Horizon.At(col)
			if fc.Horizon.TestAndUpdate(col, py) {
				fc.Emitter.PushSegment(float32(col), py, bottom, p.terrain.SampleColor(x, y))
			}
		}
		fc.Emitter.CountStep()
	}

	return fc.Emitter.FinishFrame()
}

// RenderFrame renders a single frame with freshly allocated state.
func RenderFrame(view camera.View, s Sampler, width, height int, params Params) *frame.Frame {
	fc := NewFrameContext(width, height)
	fc.View = view
	return NewProjector(s, params).Render(fc)
}
