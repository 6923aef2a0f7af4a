package terrain

import (
	"errors"
	"fmt"
	"image"
)

// ErrDimensionMismatch is matched by DimensionMismatchError via errors.Is.
var ErrDimensionMismatch = errors.New("terrain: color and height maps differ in size")

// DecodeError reports a source that could not be decoded into the raster
// layout the store needs.
type DecodeError struct {
	Source string // "color" or "height", or a file path
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("terrain: decoding %s map: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DimensionMismatchError reports color and height maps of different sizes.
type DimensionMismatchError struct {
	Color  image.Point
	Height image.Point
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("terrain: color map is %dx%d but height map is %dx%d",
		e.Color.X, e.Color.Y, e.Height.X, e.Height.Y)
}

func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}
