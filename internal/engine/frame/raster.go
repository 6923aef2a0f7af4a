package frame

import (
	"image"
	"image/color"
	"math"
)

// Rasterize draws the frame into a new RGBA image cleared to sky.
func (f *Frame) Rasterize(sky color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	f.RasterizeInto(img, sky)
	return img
}

// RasterizeInto clears img to sky and draws every segment into it. Each
// segment covers the rows [floor(Top), ceil(Bottom)) of column X, clipped
// to the image.
func (f *Frame) RasterizeInto(img *image.RGBA, sky color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, sky)
		}
	}

	for _, s := range f.Segments {
		x := int(s.X)
		if x < b.Min.X || x >= b.Max.X {
			continue
		}
		y0 := max(int(math.Floor(float64(s.Top))), b.Min.Y)
		y1 := min(int(math.Ceil(float64(s.Bottom))), b.Max.Y)
		c := s.Color.RGBA()
		for y := y0; y < y1; y++ {
			img.SetRGBA(x, y, c)
		}
	}
}
