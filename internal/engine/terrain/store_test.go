package terrain

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// grayImage returns a w x h grayscale image where f supplies each value.
func grayImage(w, h int, f func(x, y int) uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: f(x, y)})
		}
	}
	return img
}

// rgbImage returns a w x h RGBA image where f supplies each color.
func rgbImage(w, h int, f func(x, y int) color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, f(x, y))
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// gradientStore builds a non-square store with unique values per cell.
func gradientStore(t *testing.T, w, h int, opts ...Option) *Store {
	t.Helper()
	heights := grayImage(w, h, func(x, y int) uint8 { return uint8(y*w + x) })
	colors := rgbImage(w, h, func(x, y int) color.RGBA {
		return color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 7, A: 255}
	})
	s, err := New(colors, heights, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, n, want int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 0},
		{12, 5, 2},
		{-1, 5, 4},
		{-5, 5, 0},
		{-6, 5, 4},
	}
	for _, tt := range tests {
		if got := wrap(tt.v, tt.n); got != tt.want {
			t.Errorf("wrap(%d, %d) = %d, want %d", tt.v, tt.n, got, tt.want)
		}
	}
}

func TestSampleWrapsPerAxis(t *testing.T) {
	const w, h = 5, 3
	s := gradientStore(t, w, h)

	coords := [][2]int{
		{0, 0}, {4, 2}, {5, 0}, {-1, 0}, {0, -1}, {-7, 8}, {123, -456}, {-5, -3},
	}
	for _, c := range coords {
		x, y := c[0], c[1]
		wx, wy := wrap(x, w), wrap(y, h)

		if got, want := s.SampleHeight(x, y), s.SampleHeight(wx, wy); got != want {
			t.Errorf("SampleHeight(%d,%d) = %v, want %v (cell %d,%d)", x, y, got, want, wx, wy)
		}
		if got, want := s.SampleColor(x, y), s.SampleColor(wx, wy); got != want {
			t.Errorf("SampleColor(%d,%d) = %v, want %v (cell %d,%d)", x, y, got, want, wx, wy)
		}
		if got, want := s.SampleHeight(wx, wy), float32(wy*w+wx); got != want {
			t.Errorf("SampleHeight(%d,%d) = %v, want %v", wx, wy, got, want)
		}
	}
}

func TestSampleLegacyWrap(t *testing.T) {
	// Wide map: x wraps against height (3), so x=3 lands on column 0.
	wide := gradientStore(t, 5, 3, WithLegacyWrap())
	if got, want := wide.SampleHeight(3, 0), wide.SampleHeight(0, 0); got != want {
		t.Errorf("legacy SampleHeight(3,0) = %v, want %v", got, want)
	}
	if wide.WrapMode() != WrapLegacy {
		t.Errorf("WrapMode() = %v, want legacy", wide.WrapMode())
	}

	// Tall map: x=3 is in range of height (5) but not width (3), so it is
	// folded against the width and never goes out of bounds.
	tall := gradientStore(t, 3, 5, WithLegacyWrap())
	if got, want := tall.SampleHeight(3, 0), tall.SampleHeight(0, 0); got != want {
		t.Errorf("legacy tall SampleHeight(3,0) = %v, want %v", got, want)
	}
	if got, want := tall.SampleHeight(-1, 0), tall.SampleHeight(1, 0); got != want {
		t.Errorf("legacy tall SampleHeight(-1,0) = %v, want %v", got, want)
	}
}

func TestSampleColorNormalized(t *testing.T) {
	s := gradientStore(t, 4, 4)
	c := s.SampleColor(2, 1)
	if c.R != 20.0/255 || c.G != 10.0/255 || c.B != 7.0/255 {
		t.Errorf("SampleColor(2,1) = %v", c)
	}
	if rgb := s.SampleRGB(2, 1); rgb != [3]uint8{20, 10, 7} {
		t.Errorf("SampleRGB(2,1) = %v, want [20 10 7]", rgb)
	}
	if got := c.RGBA(); got != (color.RGBA{R: 20, G: 10, B: 7, A: 255}) {
		t.Errorf("Color.RGBA() = %v", got)
	}
}

func TestLoadPNG(t *testing.T) {
	red := rgbImage(2, 2, func(x, y int) color.RGBA { return color.RGBA{R: 255, A: 255} })
	zero := grayImage(2, 2, func(x, y int) uint8 { return 0 })

	s, err := Load(bytes.NewReader(encodePNG(t, red)), bytes.NewReader(encodePNG(t, zero)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Width() != 2 || s.Height() != 2 {
		t.Errorf("size = %dx%d, want 2x2", s.Width(), s.Height())
	}
	if got := s.SampleColor(-3, 7); got != (Color{R: 1}) {
		t.Errorf("SampleColor = %v, want {1 0 0}", got)
	}
}

func TestLoadDimensionMismatch(t *testing.T) {
	colors := rgbImage(4, 4, func(x, y int) color.RGBA { return color.RGBA{A: 255} })
	heights := grayImage(4, 5, func(x, y int) uint8 { return 0 })

	s, err := Load(bytes.NewReader(encodePNG(t, colors)), bytes.NewReader(encodePNG(t, heights)))
	if s != nil {
		t.Error("Load() returned a store on dimension mismatch")
	}
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("Load() error = %v, want ErrDimensionMismatch", err)
	}
	var dm *DimensionMismatchError
	if !errors.As(err, &dm) {
		t.Fatalf("error %T is not *DimensionMismatchError", err)
	}
	if dm.Color != image.Pt(4, 4) || dm.Height != image.Pt(4, 5) {
		t.Errorf("DimensionMismatchError = %+v", dm)
	}
}

func TestLoadDecodeErrors(t *testing.T) {
	colors := encodePNG(t, rgbImage(2, 2, func(x, y int) color.RGBA { return color.RGBA{A: 255} }))
	heights := encodePNG(t, grayImage(2, 2, func(x, y int) uint8 { return 0 }))

	tests := []struct {
		name       string
		color      []byte
		height     []byte
		wantSource string
	}{
		{"garbage color", []byte("not an image"), heights, "color"},
		{"garbage height", colors, []byte("not an image"), "height"},
		{"rgb height map", colors, colors, "height"},
		{"gray color map", heights, heights, "color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(bytes.NewReader(tt.color), bytes.NewReader(tt.height))
			if s != nil {
				t.Error("Load() returned a store on decode error")
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("Load() error = %v, want *DecodeError", err)
			}
			if de.Source != tt.wantSource {
				t.Errorf("DecodeError.Source = %q, want %q", de.Source, tt.wantSource)
			}
		})
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	colorPath := filepath.Join(dir, "color.png")
	heightPath := filepath.Join(dir, "height.tga")

	colors := rgbImage(2, 1, func(x, y int) color.RGBA { return color.RGBA{G: 255, A: 255} })
	if err := os.WriteFile(colorPath, encodePNG(t, colors), 0644); err != nil {
		t.Fatalf("write color: %v", err)
	}
	// 2x1 uncompressed grayscale TGA, top-to-bottom
	tga := []byte{0, 0, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 0, 1, 0, 8, 0x20, 40, 80}
	if err := os.WriteFile(heightPath, tga, 0644); err != nil {
		t.Fatalf("write height: %v", err)
	}

	s, err := LoadFiles(colorPath, heightPath)
	if err != nil {
		t.Fatalf("LoadFiles() error = %v", err)
	}
	if got := s.SampleHeight(1, 0); got != 80 {
		t.Errorf("SampleHeight(1,0) = %v, want 80", got)
	}
	if got := s.SampleHeight(2, 0); got != 40 {
		t.Errorf("SampleHeight(2,0) = %v, want 40", got)
	}
}

func TestLoadFilesMissing(t *testing.T) {
	if _, err := LoadFiles("/nonexistent/color.png", "/nonexistent/height.png"); err == nil {
		t.Error("LoadFiles() error = nil, want error for missing files")
	}
}
