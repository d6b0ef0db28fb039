package compositor

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Rect is an axis-aligned rectangle in content coordinates.
// It describes the visible part of the page (the viewport), so it uses
// float32 like the host's scroll and zoom state.
//
// Rect is half-open: a rect with Left >= Right or Top >= Bottom is empty.
// Integer screen-space rectangles use image.Rectangle instead.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// RectXYWH creates a rectangle from its top-left corner and size.
func RectXYWH(x, y, w, h float32) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float32 {
	return r.Bottom - r.Top
}

// IsEmpty reports whether the rectangle has no area.
// Rectangles with NaN edges are empty.
func (r Rect) IsEmpty() bool {
	return !(r.Left < r.Right && r.Top < r.Bottom)
}

// Intersects reports whether r and o share a region of positive area.
// An empty rectangle never intersects anything.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	left := math32.Max(r.Left, o.Left)
	top := math32.Max(r.Top, o.Top)
	right := math32.Min(r.Right, o.Right)
	bottom := math32.Min(r.Bottom, o.Bottom)
	return left < right && top < bottom
}

// String returns the rectangle as "(left, top)-(right, bottom)".
func (r Rect) String() string {
	return fmt.Sprintf("(%.2f, %.2f)-(%.2f, %.2f)", r.Left, r.Top, r.Right, r.Bottom)
}
