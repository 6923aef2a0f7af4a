// Package debug writes rendered frames to disk as PNG files.
package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/voxelspace/internal/engine/frame"
)

// ScreenshotCapture handles screenshot capture functionality.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	sky       color.RGBA
	now       func() time.Time
}

// NewScreenshotCapture creates a capture handler that names files
// "<prefix>_<timestamp>.png" inside outputDir.
func NewScreenshotCapture(outputDir, prefix string, sky color.RGBA) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		sky:       sky,
		now:       time.Now,
	}
}

// CaptureFrame rasterizes f and saves it under a generated name.
func (sc *ScreenshotCapture) CaptureFrame(f *frame.Frame) (string, error) {
	filename := sc.GenerateFilename()
	if err := SaveFrame(filename, f, sc.sky); err != nil {
		return "", err
	}
	return filename, nil
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", sc.prefix, timestamp)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

// SaveFrame rasterizes f over a sky-colored background and writes it to
// path, creating parent directories as needed.
func SaveFrame(path string, f *frame.Frame, sky color.RGBA) error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("cannot save %dx%d frame", f.Width, f.Height)
	}
	return SavePNG(path, f.Rasterize(sky))
}

// SavePNG encodes img to path.
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}
