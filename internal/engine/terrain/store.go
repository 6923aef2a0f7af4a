// Package terrain provides the height and color rasters sampled by the
// voxel-space renderer. A Store is immutable after load and wraps every
// coordinate toroidally, so there is no out-of-bounds lookup.
package terrain

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration

	"github.com/Faultbox/voxelspace/internal/engine/texture"
	"github.com/Faultbox/voxelspace/internal/logger"
)

// Color is an RGB sample with channels normalized to [0, 1].
type Color struct {
	R, G, B float32
}

// RGBA converts the color back to 8-bit channels with full alpha.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 255}
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// WrapMode selects how out-of-range sample coordinates are folded back
// into the map.
type WrapMode int

const (
	// WrapPerAxis wraps x against the width and y against the height.
	WrapPerAxis WrapMode = iota
	// WrapLegacy wraps both axes against the height, as early versions of
	// the renderer did. On maps taller than wide, x is folded once more
	// against the width to keep lookups in range.
	WrapLegacy
)

func (m WrapMode) String() string {
	if m == WrapLegacy {
		return "legacy"
	}
	return "per-axis"
}

// Option configures a Store at load time.
type Option func(*Store)

// WithWrapMode sets the coordinate wrap mode.
func WithWrapMode(mode WrapMode) Option {
	return func(s *Store) {
		s.wrap = mode
	}
}

// WithLegacyWrap is shorthand for WithWrapMode(WrapLegacy).
func WithLegacyWrap() Option {
	return WithWrapMode(WrapLegacy)
}

// Store holds co-registered height and color rasters.
type Store struct {
	width   int
	height  int
	heights []uint8 // row-major, one byte per cell
	colors  []uint8 // row-major, R G B per cell
	wrap    WrapMode
}

// Load decodes a color map and a height map and builds a Store from them.
func Load(colorSrc, heightSrc io.Reader, opts ...Option) (*Store, error) {
	colorImg, _, err := image.Decode(colorSrc)
	if err != nil {
		return nil, &DecodeError{Source: "color", Err: err}
	}
	heightImg, _, err := image.Decode(heightSrc)
	if err != nil {
		return nil, &DecodeError{Source: "height", Err: err}
	}
	return New(colorImg, heightImg, opts...)
}

// LoadFiles reads both maps from disk. Files ending in .tga go through the
// TGA decoder; everything else is decoded by format sniffing.
func LoadFiles(colorPath, heightPath string, opts ...Option) (*Store, error) {
	colorImg, err := decodeFile(colorPath)
	if err != nil {
		return nil, err
	}
	heightImg, err := decodeFile(heightPath)
	if err != nil {
		return nil, err
	}

	s, err := New(colorImg, heightImg, opts...)
	if err != nil {
		return nil, err
	}

	logger.Info("terrain loaded",
		zap.String("color", colorPath),
		zap.String("height", heightPath),
		zap.Int("width", s.width),
		zap.Int("height_px", s.height),
		zap.Stringer("wrap", s.wrap),
	)
	return s, nil
}

// decodeFile decodes a single raster file.
func decodeFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = texture.DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, &DecodeError{Source: path, Err: err}
	}
	return img, nil
}

// New builds a Store from already decoded images. The height map must be
// 8-bit grayscale and the color map an 8-bit color raster of the same size.
func New(colorImg, heightImg image.Image, opts ...Option) (*Store, error) {
	heights, err := grayPixels(heightImg)
	if err != nil {
		return nil, &DecodeError{Source: "height", Err: err}
	}
	colors, err := rgbPixels(colorImg)
	if err != nil {
		return nil, &DecodeError{Source: "color", Err: err}
	}

	colorSize := colorImg.Bounds().Size()
	heightSize := heightImg.Bounds().Size()
	if colorSize != heightSize {
		return nil, &DimensionMismatchError{Color: colorSize, Height: heightSize}
	}
	if colorSize.X <= 0 || colorSize.Y <= 0 {
		return nil, &DecodeError{Source: "color", Err: fmt.Errorf("empty raster %dx%d", colorSize.X, colorSize.Y)}
	}

	s := &Store{
		width:   colorSize.X,
		height:  colorSize.Y,
		heights: heights,
		colors:  colors,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// grayPixels copies an 8-bit grayscale image into a packed row-major slice.
func grayPixels(img image.Image) ([]uint8, error) {
	gray, ok := img.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("got %T, want 8-bit grayscale", img)
	}

	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]uint8, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := gray.PixOffset(b.Min.X, y)
		out = append(out, gray.Pix[off:off+w]...)
	}
	return out, nil
}

// rgbPixels converts an 8-bit color image into packed R G B triples.
// Grayscale and 16-bit rasters are rejected.
func rgbPixels(img image.Image) ([]uint8, error) {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return nil, fmt.Errorf("got grayscale %T, want 8-bit RGB", img)
	case *image.RGBA64, *image.NRGBA64:
		return nil, fmt.Errorf("got 16-bit %T, want 8-bit RGB", img)
	}

	b := img.Bounds()
	out := make([]uint8, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out = append(out, c.R, c.G, c.B)
		}
	}
	return out, nil
}

// Width returns the map width in cells.
func (s *Store) Width() int {
	return s.width
}

// Height returns the map height in cells.
func (s *Store) Height() int {
	return s.height
}

// WrapMode returns the configured wrap mode.
func (s *Store) WrapMode() WrapMode {
	return s.wrap
}

// SampleHeight returns the elevation (0-255) at the wrapped coordinate.
func (s *Store) SampleHeight(x, y int) float32 {
	return float32(s.heights[s.index(x, y)])
}

// SampleColor returns the normalized color at the wrapped coordinate.
func (s *Store) SampleColor(x, y int) Color {
	i := s.index(x, y) * 3
	return Color{
		R: float32(s.colors[i]) / 255,
		G: float32(s.colors[i+1]) / 255,
		B: float32(s.colors[i+2]) / 255,
	}
}

// SampleRGB returns the raw 8-bit color at the wrapped coordinate.
func (s *Store) SampleRGB(x, y int) [3]uint8 {
	i := s.index(x, y) * 3
	return [3]uint8{s.colors[i], s.colors[i+1], s.colors[i+2]}
}

// index folds (x, y) into the map and returns the cell offset.
func (s *Store) index(x, y int) int {
	switch s.wrap {
	case WrapLegacy:
		x = wrap(x, s.height)
		if x >= s.width {
			x = wrap(x, s.width)
		}
	default:
		x = wrap(x, s.width)
	}
	y = wrap(y, s.height)
	return y*s.width + x
}

// wrap is the Euclidean remainder of v by n (always in [0, n)).
func wrap(v, n int) int {
	r := v % n
	if r < 0 {
		r += n
	}
	return r
}
