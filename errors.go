package compositor

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// Common errors returned by the compositor.
var (
	// ErrNilTileManager is returned when New gets a nil TileTextureManager.
	ErrNilTileManager = errors.New("compositor: nil TileTextureManager")

	// ErrNilSceneManager is returned when New gets a nil SceneCollectionManager.
	ErrNilSceneManager = errors.New("compositor: nil SceneCollectionManager")

	// ErrInvalidTileSize is returned when the configured tile size is not positive.
	ErrInvalidTileSize = errors.New("compositor: invalid tile size")

	// ErrInvalidScaleBounds is returned when the sane scale range is empty.
	ErrInvalidScaleBounds = errors.New("compositor: invalid scale bounds")

	// ErrCorruptScale is wrapped by ScaleError.
	ErrCorruptScale = errors.New("compositor: scale corrupted")
)

// ScaleError reports a frame scale outside the sane range after the frame's
// tile and image updates. Rendering with such a scale would use a poisoned
// transform, so it is delivered to the FaultHandler instead of being returned.
type ScaleError struct {
	Scale    float32
	Min, Max float32
}

func (e *ScaleError) Error() string {
	return fmt.Sprintf("%v: %e outside [%g, %g] after update", ErrCorruptScale, e.Scale, e.Min, e.Max)
}

// Unwrap returns ErrCorruptScale.
func (e *ScaleError) Unwrap() error {
	return ErrCorruptScale
}

// FaultHandler receives unrecoverable faults. The default handler panics.
// A handler that returns makes the compositor abandon the current frame.
type FaultHandler func(err error)

// panicOnFault is the default FaultHandler.
func panicOnFault(err error) {
	panic(err)
}

// scaleInBounds reports whether scale lies within [lo, hi]. NaN never does.
func scaleInBounds(scale, lo, hi float32) bool {
	if math32.IsNaN(scale) {
		return false
	}
	return scale >= lo && scale <= hi
}
