package compositor

// Viewport tracks the visible content rectangle and zoom scale between
// frames and classifies each change.
//
// A change where the old and new rectangles overlap is treated as continuous
// scrolling. A change to a disjoint rectangle (zoom-to-point, tab switch,
// programmatic jump) is not.
//
// The zero value is not ready for use; create one with NewViewport.
type Viewport struct {
	rect      Rect
	scale     float32
	scrolling bool
	goingDown bool
	goingLeft bool
}

// NewViewport returns a tracker with an empty rectangle at scale 1,
// heading down and to the right.
func NewViewport() Viewport {
	return Viewport{
		scale:     1,
		goingDown: true,
	}
}

// Update records a new viewport rectangle and scale.
//
// When both are unchanged only the scrolling flag is cleared and Update
// returns false. Otherwise the scroll direction is derived from the
// movement of the top-left corner and Update returns true.
func (v *Viewport) Update(rect Rect, scale float32) bool {
	if v.rect == rect && v.scale == scale {
		v.scrolling = false
		return false
	}
	v.scale = scale

	v.goingDown = v.rect.Top-rect.Top <= 0
	v.goingLeft = v.rect.Left-rect.Left >= 0

	// Overlapping rects mean a continuous scroll; a disjoint rect is a jump.
	v.scrolling = v.rect != rect && v.rect.Intersects(rect)
	v.rect = rect
	return true
}

// Rect returns the current viewport rectangle.
func (v *Viewport) Rect() Rect { return v.rect }

// Scale returns the current zoom scale.
func (v *Viewport) Scale() float32 { return v.scale }

// Scrolling reports whether the last update moved the viewport continuously.
func (v *Viewport) Scrolling() bool { return v.scrolling }

// GoingDown reports whether the last change moved the viewport down
// (or kept it vertically still).
func (v *Viewport) GoingDown() bool { return v.goingDown }

// GoingLeft reports whether the last change moved the viewport left
// (or kept it horizontally still).
func (v *Viewport) GoingLeft() bool { return v.goingLeft }
