package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/voxelspace/internal/engine/frame"
	"github.com/Faultbox/voxelspace/internal/engine/terrain"
)

func testFrame() *frame.Frame {
	e := frame.NewEmitter(4)
	e.BeginFrame(4, 3)
	e.PushSegment(1, 1, 3, terrain.Color{R: 1})
	return e.FinishFrame()
}

func TestSaveFrame(t *testing.T) {
	sky := color.RGBA{G: 255, B: 255, A: 255}
	path := filepath.Join(t.TempDir(), "nested", "frame.png")

	if err := SaveFrame(path, testFrame(), sky); err != nil {
		t.Fatalf("SaveFrame() error = %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("image size = %v, want 4x3", b)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, sky},
		{1, 0, sky},
		{1, 1, color.RGBA{R: 255, A: 255}},
		{1, 2, color.RGBA{R: 255, A: 255}},
		{2, 2, sky},
	}
	for _, tt := range tests {
		r, g, b, a := img.At(tt.x, tt.y).RGBA()
		got := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
		if got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSaveFrameEmpty(t *testing.T) {
	e := frame.NewEmitter(0)
	e.BeginFrame(0, 0)
	if err := SaveFrame(filepath.Join(t.TempDir(), "x.png"), e.FinishFrame(), color.RGBA{}); err == nil {
		t.Error("SaveFrame() on empty frame: error = nil")
	}
}

func TestCaptureFrame(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "voxel", color.RGBA{A: 255})
	sc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC) }

	name, err := sc.CaptureFrame(testFrame())
	if err != nil {
		t.Fatalf("CaptureFrame() error = %v", err)
	}
	if want := filepath.Join(dir, "voxel_2024-03-01_12-30-45.png"); name != want {
		t.Errorf("filename = %s, want %s", name, want)
	}
	if _, err := os.Stat(name); err != nil {
		t.Errorf("screenshot not written: %v", err)
	}
}

func TestGenerateFilenameNoDir(t *testing.T) {
	sc := NewScreenshotCapture("", "shot", color.RGBA{})
	name := sc.GenerateFilename()
	if filepath.Dir(name) != "." || !strings.HasPrefix(name, "shot_") || !strings.HasSuffix(name, ".png") {
		t.Errorf("GenerateFilename() = %s", name)
	}
}
