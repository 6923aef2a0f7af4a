package raycast

import (
	"image"
	"image/color"
	"testing"

	"github.com/Faultbox/voxelspace/internal/engine/camera"
	"github.com/Faultbox/voxelspace/internal/engine/frame"
	"github.com/Faultbox/voxelspace/internal/engine/terrain"
	"github.com/Faultbox/voxelspace/pkg/math"
)

// fakeSampler is a procedural terrain that records sampled coordinates.
type fakeSampler struct {
	w, h    int
	height  func(x, y int) float32
	color   terrain.Color
	samples [][2]int
}

func (f *fakeSampler) Width() int  { return f.w }
func (f *fakeSampler) Height() int { return f.h }

func (f *fakeSampler) SampleHeight(x, y int) float32 {
	f.samples = append(f.samples, [2]int{x, y})
	return f.height(x, y)
}

func (f *fakeSampler) SampleColor(x, y int) terrain.Color {
	return f.color
}

func flat(h float32) func(x, y int) float32 {
	return func(x, y int) float32 { return h }
}

// redStore is the 2x2 all-zero height map with a solid red color map.
func redStore(t *testing.T) *terrain.Store {
	t.Helper()
	colors := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		colors.SetRGBA(i%2, i/2, color.RGBA{R: 255, A: 255})
	}
	s, err := terrain.New(colors, image.NewGray(image.Rect(0, 0, 2, 2)))
	if err != nil {
		t.Fatalf("terrain.New() error = %v", err)
	}
	return s
}

// columns groups segments by screen column in emission order.
func columns(f *frame.Frame) map[int][]frame.Segment {
	out := make(map[int][]frame.Segment)
	for _, s := range f.Segments {
		out[int(s.X)] = append(out[int(s.X)], s)
	}
	return out
}

func TestProjectYFlatTerrainMonotonic(t *testing.T) {
	p := DefaultParams()
	prev := p.ProjectY(100, 0, 1, 512)
	for d := float32(1.5); d < p.FarDistance; d += 0.5 {
		y := p.ProjectY(100, 0, d, 512)
		if y > prev {
			t.Fatalf("ProjectY at distance %v = %v, above previous %v", d, y, prev)
		}
		prev = y
	}
	if prev >= 512 {
		t.Errorf("far ground never rose above the bottom edge: %v", prev)
	}
}

func TestProjectYClamp(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name                  string
		eye, sampled, dist, h float32
		want                  float32
	}{
		{"near ground clamps to bottom", 100, 0, 1, 512, 512},
		{"terrain above eye clamps to min", 0, 200, 10, 512, 1},
		{"exactly zero clamps to min", 50, 50, 10, 512, 1},
		{"in range", 100, 0, 100, 512, 240},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ProjectY(tt.eye, tt.sampled, tt.dist, tt.h); got != tt.want {
				t.Errorf("ProjectY() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectYHorizonOffset(t *testing.T) {
	p := DefaultParams()
	p.Horizon = 100
	if got := p.ProjectY(100, 0, 100, 512); got != 340 {
		t.Errorf("ProjectY() with horizon 100 = %v, want 340", got)
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("DefaultParams().Validate() = %v", err)
	}

	mutations := map[string]func(*Params){
		"far":   func(p *Params) { p.FarDistance = 1 },
		"scale": func(p *Params) { p.ProjectionScale = 0 },
		"step":  func(p *Params) { p.StepIncrement = -0.1 },
		"min y": func(p *Params) { p.MinY = 0 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			p := DefaultParams()
			mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestRenderSolidRedFlatMap(t *testing.T) {
	store := redStore(t)
	view := *camera.New(math.Vec2{}, 0, 100)

	f := RenderFrame(view, store, 64, 48, DefaultParams())
	if len(f.Segments) == 0 {
		t.Fatal("no segments emitted")
	}

	for _, s := range f.Segments {
		if s.Color != (terrain.Color{R: 1}) {
			t.Fatalf("segment color = %v, want {1 0 0}", s.Color)
		}
		if s.Color.RGBA() != (color.RGBA{R: 255, A: 255}) {
			t.Fatalf("segment RGBA = %v, want (255,0,0)", s.Color.RGBA())
		}
	}

	for col, segs := range columns(f) {
		for i := 1; i < len(segs); i++ {
			if segs[i].Top >= segs[i-1].Top {
				t.Errorf("column %d: top %v at step %d not above previous %v", col, segs[i].Top, i, segs[i-1].Top)
			}
		}
	}
}

func TestRenderHorizonNeverIncreases(t *testing.T) {
	// Rolling terrain so that some samples are hidden behind nearer hills.
	s := &fakeSampler{w: 256, h: 256, color: terrain.Color{G: 1}, height: func(x, y int) float32 {
		return float32((x*7 + y*13) % 97)
	}}
	view := *camera.New(math.Vec2{X: 12, Y: -40}, 0.7, 120)

	const w, h = 80, 60
	f := RenderFrame(view, s, w, h, DefaultParams())

	cols := columns(f)
	for col := 0; col <= w; col++ {
		prevTop := float32(h)
		for i, seg := range cols[col] {
			if seg.Bottom != prevTop {
				t.Fatalf("column %d segment %d: bottom %v, want previous horizon %v", col, i, seg.Bottom, prevTop)
			}
			if seg.Top >= seg.Bottom {
				t.Fatalf("column %d segment %d: degenerate or inverted (%v..%v)", col, i, seg.Top, seg.Bottom)
			}
			prevTop = seg.Top
		}
	}
}

func TestRenderOcclusion(t *testing.T) {
	// A wall right in front of the viewer hides everything behind it.
	wall := &fakeSampler{w: 100, h: 100, height: func(x, y int) float32 {
		if y < 48 {
			return 250
		}
		return 0
	}}
	open := &fakeSampler{w: 100, h: 100, height: flat(0)}
	view := *camera.New(math.Vec2{}, 0, 10)

	walled := RenderFrame(view, wall, 32, 24, DefaultParams())
	openFrame := RenderFrame(view, open, 32, 24, DefaultParams())

	if len(walled.Segments) >= len(openFrame.Segments) {
		t.Errorf("occluded frame has %d segments, open frame %d; want fewer", len(walled.Segments), len(openFrame.Segments))
	}
	for _, s := range walled.Segments {
		if s.Top < 1 {
			t.Errorf("segment top %v below MinY", s.Top)
		}
	}
}

func TestRenderScanLineGeometry(t *testing.T) {
	s := &fakeSampler{w: 100, h: 100, height: flat(0)}
	view := *camera.New(math.Vec2{}, 0, 100)

	const w = 10
	RenderFrame(view, s, w, 8, DefaultParams())

	// First scan line at distance 1: left (-1,-1), right (1,-1), shifted
	// by the map centre (50,50).
	if got := s.samples[0]; got != [2]int{49, 49} {
		t.Errorf("first sample = %v, want [49 49]", got)
	}
	if got := s.samples[w]; got != [2]int{51, 49} {
		t.Errorf("last sample of first scan line = %v, want [51 49]", got)
	}
}

func TestRenderHeadingRotatesScanLine(t *testing.T) {
	s := &fakeSampler{w: 100, h: 100, height: flat(0)}
	view := *camera.New(math.Vec2{}, 1.5707963267948966, 100) // quarter turn left

	RenderFrame(view, s, 10, 8, DefaultParams())

	// At +90 degrees the view looks down -X; the first scan line runs
	// from (-1, +1) to (-1, -1) around the centre.
	if got := s.samples[0]; got != [2]int{49, 51} {
		t.Errorf("first sample = %v, want [49 51]", got)
	}
	if got := s.samples[10]; got != [2]int{49, 49} && got != [2]int{49, 48} {
		t.Errorf("last sample of first scan line = %v, want about [49 49]", got)
	}
}

func TestRenderStepCount(t *testing.T) {
	s := &fakeSampler{w: 16, h: 16, height: flat(0)}
	f := RenderFrame(*camera.New(math.Vec2{}, 0, 100), s, 4, 4, DefaultParams())

	// d_n = 1 + n + 0.1 n(n-1) crosses 700 after roughly 80 steps.
	if f.Steps < 75 || f.Steps > 85 {
		t.Errorf("Steps = %d, want about 80", f.Steps)
	}
	if want := f.Steps * 5; len(s.samples) != want {
		t.Errorf("sampled %d points, want %d (steps x columns)", len(s.samples), want)
	}
}

func TestRenderReusesContext(t *testing.T) {
	store := redStore(t)
	p := NewProjector(store, DefaultParams())
	fc := NewFrameContext(20, 10)
	fc.View = *camera.New(math.Vec2{}, 0, 10)

	first := len(p.Render(fc).Segments)
	if first == 0 {
		t.Fatal("no segments emitted")
	}
	second := len(p.Render(fc).Segments)
	if first != second {
		t.Errorf("second render emitted %d segments, first %d", second, first)
	}

	fc.Resize(40, 10)
	f := p.Render(fc)
	if fc.Horizon.Len() != 41 {
		t.Errorf("horizon len = %d after resize, want 41", fc.Horizon.Len())
	}
	maxX := float32(0)
	for _, s := range f.Segments {
		maxX = max(maxX, s.X)
	}
	if maxX != 40 {
		t.Errorf("rightmost column = %v, want 40", maxX)
	}
}

func TestRenderEmptyScreen(t *testing.T) {
	f := RenderFrame(*camera.New(math.Vec2{}, 0, 100), redStore(t), 0, 0, DefaultParams())
	if len(f.Segments) != 0 {
		t.Errorf("zero-size screen produced %d segments", len(f.Segments))
	}
}
