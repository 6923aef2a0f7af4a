// Package horizon implements the per-column occlusion buffer used by the
// raycast projector.
//
// Each column stores the smallest screen Y drawn so far in the frame. As
// distances are swept front to back, a sample is visible only if it lands
// above that value, so one scalar per column replaces a full depth buffer.
package horizon

// Buffer holds the highest drawn screen Y (smallest value) per column.
type Buffer struct {
	cols []float32
}

// New creates a buffer with the given number of columns.
func New(columns int) *Buffer {
	return &Buffer{cols: make([]float32, columns)}
}

// Resize changes the number of columns. Existing storage is reused when
// it is large enough. Values are undefined until the next Reset.
func (b *Buffer) Resize(columns int) {
	if columns <= cap(b.cols) {
		b.cols = b.cols[:columns]
		return
	}
	b.cols = make([]float32, columns)
}

// Len returns the number of columns.
func (b *Buffer) Len() int {
	return len(b.cols)
}

// Reset marks every column as empty by setting it to the screen height.
func (b *Buffer) Reset(screenHeight float32) {
	for i := range b.cols {
		b.cols[i] = screenHeight
	}
}

// At returns the current value of a column.
func (b *Buffer) At(col int) float32 {
	return b.cols[col]
}

// TestAndUpdate reports whether y is above the column's horizon and, if
// so, raises the horizon to y.
func (b *Buffer) TestAndUpdate(col int, y float32) bool {
	if y >= b.cols[col] {
		return false
	}
	b.cols[col] = y
	return true
}
