package compositor

import (
	"image"

	"golang.org/x/image/math/f64"
)

// identityTransform is the content to window transform before the first frame.
var identityTransform = f64.Aff3{1, 0, 0, 0, 1, 0}

// viewTransform maps content coordinates to window coordinates: the visible
// rect's top-left corner lands on the view rect's top-left corner, shifted by
// the animation delta.
//
// The delta follows GL conventions: dx moves right, dy moves up.
func viewTransform(viewRect image.Rectangle, visible Rect, scale float32, dx, dy float64) f64.Aff3 {
	s := float64(scale)
	tx := float64(viewRect.Min.X) + dx - float64(visible.Left)*s
	ty := float64(viewRect.Min.Y) - dy - float64(visible.Top)*s
	return f64.Aff3{
		s, 0, tx,
		0, s, ty,
	}
}

// glViewport returns the GPU viewport rectangle for the view, offset by the
// animation delta and keeping the view's size.
func glViewport(viewRect image.Rectangle, dx, dy float64) image.Rectangle {
	return viewRect.Add(image.Pt(int(dx), -int(dy)))
}

// applyTransform maps a content point through m.
func applyTransform(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}
