package compositor

import "image"

// Inflation margins applied to invalidated areas, in pixels.
const (
	// DirtyMargin is added around every reported dirty rectangle.
	DirtyMargin = 8

	// InvalMargin is added around the accumulated area when it is resolved
	// into the frame's inval rectangle.
	InvalMargin = 1
)

// DirtyArea accumulates the invalidations reported during a frame into a
// single bounding rectangle.
//
// An empty DirtyArea means nothing was reported. It does not mean a
// zero-area change; see Resolve.
//
// The zero value is an empty accumulator ready for use.
type DirtyArea struct {
	bounds image.Rectangle
}

// Add unions r, inflated by DirtyMargin, into the accumulator.
// Empty rectangles are ignored.
func (d *DirtyArea) Add(r image.Rectangle) {
	if r.Empty() {
		return
	}

	inflated := r.Inset(-DirtyMargin)
	if d.bounds.Empty() {
		d.bounds = inflated
		return
	}
	d.bounds = d.bounds.Union(inflated)
}

// Reset empties the accumulator.
func (d *DirtyArea) Reset() {
	d.bounds = image.Rectangle{}
}

// IsEmpty reports whether nothing has been accumulated since the last Reset.
func (d *DirtyArea) IsEmpty() bool {
	return d.bounds.Empty()
}

// Bounds returns the accumulated rectangle.
func (d *DirtyArea) Bounds() image.Rectangle {
	return d.bounds
}

// Resolve turns the accumulated area into the inval rectangle for a frame
// drawn into frame.
//
// The zero rectangle means full-screen invalidation. It is returned when
// nothing was accumulated (new content is still being generated, keep
// redrawing everything) and when the accumulated area lies off-screen,
// so the region is redrawn once the view pans onto it.
func (d *DirtyArea) Resolve(frame image.Rectangle) image.Rectangle {
	if d.bounds.Empty() {
		return image.Rectangle{}
	}

	d.bounds = d.bounds.Inset(-InvalMargin)
	if !d.bounds.Overlaps(frame) {
		return image.Rectangle{}
	}
	return d.bounds
}
