package compositor

import "cmp"

// RenderingMode selects how many distinct GPU surfaces are used for layers
// versus being folded into the base surface.
//
// Modes are totally ordered. AllTextures gives every layer its own textures;
// each following mode folds more layers into the base surface, down to
// SingleSurfaceRendering where everything is drawn into one surface.
// Lower modes need more layer textures.
type RenderingMode uint8

const (
	// AllTextures renders every layer into its own textures.
	AllTextures RenderingMode = iota

	// ClippedTextures renders only the visible (clipped) part of each layer.
	ClippedTextures

	// ScrollableAndFixedLayers keeps separate textures for scrollable and
	// fixed-position layers only.
	ScrollableAndFixedLayers

	// FixedLayers keeps separate textures for fixed-position layers only.
	FixedLayers

	// SingleSurfaceRendering draws all layers into the base surface.
	SingleSurfaceRendering
)

// String returns the rendering mode name.
func (m RenderingMode) String() string {
	switch m {
	case AllTextures:
		return "AllTextures"
	case ClippedTextures:
		return "ClippedTextures"
	case ScrollableAndFixedLayers:
		return "ScrollableAndFixedLayers"
	case FixedLayers:
		return "FixedLayers"
	case SingleSurfaceRendering:
		return "SingleSurfaceRendering"
	default:
		return "Unknown"
	}
}

// IsValid reports whether m is one of the defined modes.
func (m RenderingMode) IsValid() bool {
	return m <= SingleSurfaceRendering
}

// Compare returns -1, 0 or +1 depending on whether m orders before, equal to
// or after o.
func (m RenderingMode) Compare(o RenderingMode) int {
	return cmp.Compare(m, o)
}

// TexturesNeeded is the per-frame texture demand reported by the scene,
// one figure per fidelity tier. For a well-formed estimate the tiers are
// non-decreasing: Fixed <= Scrollable <= Clipped <= Full.
type TexturesNeeded struct {
	Fixed      int
	Scrollable int
	Clipped    int
	Full       int
}

// AddImages returns n with count image textures added to the clipped and
// full tiers. Images share the layer texture budget.
func (n TexturesNeeded) AddImages(count int) TexturesNeeded {
	n.Full += count
	n.Clipped += count
	return n
}

// LayerTextureRequest returns the layer texture count to request from the
// tile texture manager: none when there are no layers, otherwise twice the
// full demand plus one for double buffering.
func LayerTextureRequest(needed TexturesNeeded) int {
	if needed.Full == 0 {
		return 0
	}
	return 2*needed.Full + 1
}

// ModeDecision is the outcome of one rendering mode evaluation.
type ModeDecision struct {
	// Previous is the mode in effect before the evaluation.
	Previous RenderingMode

	// Evaluated is the mode chosen by the tier thresholds, before collapsing
	// unimplemented modes.
	Evaluated RenderingMode

	// Mode is the mode to use from now on.
	Mode RenderingMode

	// Ceiling is the texture threshold the tiers were compared against.
	Ceiling int

	// InvalBase reports whether the base surface content depends on the
	// transition from Previous to Evaluated.
	InvalBase bool
}

// Changed reports whether the mode in effect changed.
func (d ModeDecision) Changed() bool {
	return d.Mode != d.Previous
}

// NeedsRedraw reports whether the base surface must be redrawn this frame.
func (d ModeDecision) NeedsRedraw() bool {
	return d.Changed() && d.InvalBase
}

// SelectRenderingMode picks the rendering mode for the given demand.
//
// maxTextures is the layer texture count granted by the tile texture
// manager. Leaving SingleSurfaceRendering requires twice the headroom of
// staying in any other mode, so demand sitting near a threshold does not
// flip the mode every frame.
func SelectRenderingMode(needed TexturesNeeded, maxTextures int, current RenderingMode) ModeDecision {
	ceiling := hysteresisCeiling(current, maxTextures)
	evaluated := evaluateTiers(needed, ceiling)
	return ModeDecision{
		Previous:  current,
		Evaluated: evaluated,
		Mode:      collapseMode(evaluated),
		Ceiling:   ceiling,
		InvalBase: baseInvalidated(current, evaluated),
	}
}

// hysteresisCeiling halves the texture threshold while in
// SingleSurfaceRendering.
func hysteresisCeiling(current RenderingMode, maxTextures int) int {
	if current == SingleSurfaceRendering {
		return maxTextures / 2
	}
	return maxTextures
}

// evaluateTiers returns the highest-fidelity mode whose demand fits strictly
// under ceiling. With no layers and no layer textures, AllTextures is free.
func evaluateTiers(needed TexturesNeeded, ceiling int) RenderingMode {
	mode := SingleSurfaceRendering
	if needed.Fixed < ceiling {
		mode = FixedLayers
	}
	if needed.Scrollable < ceiling {
		mode = ScrollableAndFixedLayers
	}
	if needed.Clipped < ceiling {
		mode = ClippedTextures
	}
	if needed.Full < ceiling {
		mode = AllTextures
	}

	if ceiling == 0 && needed.Full == 0 {
		mode = AllTextures
	}
	return mode
}

// collapseMode folds every mode past ClippedTextures into
// SingleSurfaceRendering. FixedLayers and ScrollableAndFixedLayers are not
// implemented by the scene renderer yet.
func collapseMode(m RenderingMode) RenderingMode {
	if m > ClippedTextures {
		return SingleSurfaceRendering
	}
	return m
}

// baseInvalidated reports whether moving from one mode to another changes
// what the base surface contains. Moving up to AllTextures and moving down
// to ClippedTextures are exempt.
func baseInvalidated(from, to RenderingMode) bool {
	switch {
	case to < from:
		return to != AllTextures
	case to > from:
		return to != ClippedTextures
	default:
		return false
	}
}
