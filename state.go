package compositor

import (
	"fmt"
	"image"
	"time"

	"golang.org/x/image/math/f64"
)

// FrameParams describes one frame requested by the host.
type FrameParams struct {
	// ViewRect is where the view is drawn, in window coordinates.
	ViewRect image.Rectangle

	// Viewport is the visible content rectangle.
	Viewport Rect

	// WebViewRect is the full view bounds, in window coordinates.
	WebViewRect image.Rectangle

	// TitleBarHeight is the height of the title bar overlapping the view.
	TitleBarHeight int

	// Clip is the screen clip for the frame.
	Clip image.Rectangle

	// Scale is the content zoom scale.
	Scale float32

	// ShouldDraw is false when the host only wants state updated.
	ShouldDraw bool
}

// FrameResult is the outcome of DrawFrame.
type FrameResult struct {
	// Status tells the host whether to draw or invoke again.
	Status Status

	// Inval is the region the host must redraw. It is only set when Status
	// has StatusDraw; the zero rectangle then means the whole view.
	Inval image.Rectangle

	// CollectionsSwapped reports that a new layer collection became active.
	CollectionsSwapped bool

	// NewCollectionHasAnimation reports that the active collection animates.
	NewCollectionHasAnimation bool
}

// NeedsInval reports whether Inval is meaningful for this frame.
func (r FrameResult) NeedsInval() bool {
	return r.Status.Has(StatusDraw)
}

// FullScreenInval reports whether the host must redraw the whole view.
func (r FrameResult) FullScreenInval() bool {
	return r.NeedsInval() && r.Inval == image.Rectangle{}
}

// State drives the per-frame decisions of a tile compositor: texture
// budget, rendering mode and inval rectangle.
//
// State is NOT safe for concurrent use. All methods must be called from the
// rendering thread, once per frame for DrawFrame. Collaborators are
// responsible for any hand-off from background workers.
type State struct {
	opts options

	tiles       TileTextureManager
	scenes      SceneCollectionManager
	transformer Transformer

	viewport  Viewport
	mode      RenderingMode
	dirty     DirtyArea
	scrolling bool
	transform f64.Aff3
	drawCount uint64

	info frameInfo
}

// New creates a State drawing through the given tile texture manager and
// scene collection manager.
//
// If tiles implements Transformer, it also receives the GPU viewport
// transform every frame.
//
// Returns error if a manager is nil or the options are invalid.
func New(tiles TileTextureManager, scenes SceneCollectionManager, opts ...Option) (*State, error) {
	if tiles == nil {
		return nil, ErrNilTileManager
	}
	if scenes == nil {
		return nil, ErrNilSceneManager
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.tileWidth <= 0 || o.tileHeight <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidTileSize, o.tileWidth, o.tileHeight)
	}
	if !(o.minScale > 0 && o.minScale <= o.maxScale) {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidScaleBounds, o.minScale, o.maxScale)
	}

	s := &State{
		opts:      o,
		tiles:     tiles,
		scenes:    scenes,
		viewport:  NewViewport(),
		mode:      AllTextures,
		transform: identityTransform,
	}
	s.transformer, _ = tiles.(Transformer)
	s.info.maxMeasures = o.maxMeasures

	propagateLogger(Logger(), tiles, scenes, o.images, o.videos, o.overlay)
	return s, nil
}

// MustNew is like New but panics on error.
// Use only when errors are programming mistakes.
func MustNew(tiles TileTextureManager, scenes SceneCollectionManager, opts ...Option) *State {
	s, err := New(tiles, scenes, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// SetBaseLayer replaces the active layer tree. A nil tree clears the scene.
//
// A nil tree, or the first picture after layout, resets the rendering mode
// to AllTextures. showVisualIndicator toggles the frame-info overlay.
//
// It returns true when the scene's upload queue is full; the host must then
// hold back further replacements until frames have been drawn.
func (s *State) SetBaseLayer(layers any, showVisualIndicator, isPictureAfterFirstLayout bool) (queueFull bool) {
	if layers == nil || isPictureAfterFirstLayout {
		s.mode = AllTextures
	}

	queueFull = s.scenes.ReplaceActiveCollection(layers, isPictureAfterFirstLayout)

	measuring := s.opts.perfMeasures && showVisualIndicator
	if s.info.measuring && !measuring {
		s.info.dump()
	}
	s.info.measuring = measuring
	s.info.showIndicator = showVisualIndicator

	return queueFull
}

// ScrollLayer moves a scrollable layer to the given offset.
func (s *State) ScrollLayer(layerID, x, y int) {
	s.scenes.UpdateScrollableLayerOffset(layerID, x, y)
}

// AddDirtyArea reports a screen area whose content changed this frame.
// The accumulator is cleared when DrawFrame starts, so areas only count when
// reported from inside DrawFrame: by the image manager during uploads or by
// the scene through [SceneDrawRequest.Dirty].
func (s *State) AddDirtyArea(r image.Rectangle) {
	s.dirty.Add(r)
}

// SetIsScrolling records whether the host is scrolling the view.
func (s *State) SetIsScrolling(scrolling bool) {
	s.scrolling = scrolling
}

// IsScrolling reports whether the host is scrolling or the viewport moved
// continuously in the last frame.
func (s *State) IsScrolling() bool {
	return s.scrolling || s.viewport.Scrolling()
}

// GoingDown reports whether the last viewport change moved down.
func (s *State) GoingDown() bool { return s.viewport.GoingDown() }

// GoingLeft reports whether the last viewport change moved left.
func (s *State) GoingLeft() bool { return s.viewport.GoingLeft() }

// Viewport returns the current visible content rectangle.
func (s *State) Viewport() Rect { return s.viewport.Rect() }

// Scale returns the current zoom scale.
func (s *State) Scale() float32 { return s.viewport.Scale() }

// RenderingMode returns the rendering mode in effect.
func (s *State) RenderingMode() RenderingMode { return s.mode }

// ViewTransform returns the content to window transform of the last frame.
func (s *State) ViewTransform() f64.Aff3 { return s.transform }

// ContentToWindow maps a content point to window coordinates using the
// transform of the last frame.
func (s *State) ContentToWindow(x, y float64) (float64, float64) {
	return applyTransform(s.transform, x, y)
}

// DrawCount returns the number of DrawFrame calls so far.
func (s *State) DrawCount() uint64 { return s.drawCount }

// DrawFrame runs the per-frame sequence: uploads, viewport and budget
// update, scene drawing, rendering mode selection and inval resolution.
//
// A scale outside the sane range after the uploads is delivered to the
// FaultHandler; if the handler returns, the frame is abandoned and the zero
// FrameResult is returned.
func (s *State) DrawFrame(p FrameParams) FrameResult {
	log := Logger()
	s.drawCount++
	if p.ShouldDraw {
		log.Debug("compositor: frame",
			"count", s.drawCount, "viewport", p.Viewport, "scale", p.Scale)
	}

	s.dirty.Reset()

	if !s.scaleSane(p.Scale) {
		log.Warn("compositor: scale seems corrupted before update", "scale", p.Scale)
	}

	// Blit tiles with new content from the transfer queue.
	s.tiles.FlushPendingUploads()

	var status Status
	if s.opts.images != nil && s.opts.images.FlushPendingImageUploads(s) {
		status |= StatusDraw
	}

	if !s.scaleSane(p.Scale) {
		err := &ScaleError{Scale: p.Scale, Min: s.opts.minScale, Max: s.opts.maxScale}
		log.Error("compositor: scale corrupted after update", "scale", p.Scale, "err", err)
		s.opts.faultHandler(err)
		return FrameResult{}
	}

	s.tiles.GatherAvailableTextures()

	now := s.setupDrawing(p)

	drawn := s.scenes.DrawFrame(SceneDrawRequest{
		Time:       now,
		FrameRect:  p.ViewRect,
		Viewport:   p.Viewport,
		Scale:      p.Scale,
		FastSwap:   s.IsScrolling() || s.mode == SingleSurfaceRendering,
		ShouldDraw: p.ShouldDraw,
		Dirty:      s,
	})
	status |= drawn.Status

	needed := drawn.Needed
	if s.opts.images != nil {
		imageTextures := s.opts.images.ResidentTextureCount()
		log.Debug("compositor: textures needed",
			"images", imageTextures, "full", needed.Full, "clipped", needed.Clipped)
		needed = needed.AddImages(imageTextures)
	}

	if s.setLayersRenderingMode(needed) {
		status |= StatusDraw | StatusInvoke
	}

	if s.opts.videos != nil {
		s.opts.videos.ReleaseUnusedTextures()
	}

	res := FrameResult{
		Status:                    status,
		CollectionsSwapped:        drawn.CollectionsSwapped,
		NewCollectionHasAnimation: drawn.NewCollectionHasAnimation,
	}
	if status.Has(StatusDraw) {
		res.Inval = s.dirty.Resolve(p.ViewRect)
		log.Debug("compositor: inval", "rect", res.Inval, "full", res.FullScreenInval())
	}

	if p.ShouldDraw {
		s.showFrameInfo(p.ViewRect, drawn.CollectionsSwapped)
	}
	return res
}

// scaleSane reports whether scale lies within the configured bounds.
func (s *State) scaleSane(scale float32) bool {
	return scaleInBounds(scale, s.opts.minScale, s.opts.maxScale)
}

// ensureGPUResources creates the shader and transfer queue on first use and
// after the GPU context was lost. It is a cheap no-op otherwise.
func (s *State) ensureGPUResources() {
	if !s.tiles.ShaderInitialized() {
		Logger().Info("compositor: reinit shader")
		s.tiles.InitShader()
	}
	if !s.tiles.TransferQueueInitialized() {
		Logger().Info("compositor: reinit transfer queue")
		s.tiles.InitTransferQueue(s.opts.tileWidth, s.opts.tileHeight, tileTextureFormat(s.opts.device))
	}
}

// setupDrawing prepares GPU resources and the view transform for the frame,
// then updates the viewport. It returns the frame time.
func (s *State) setupDrawing(p FrameParams) time.Time {
	s.ensureGPUResources()

	var dx, dy float64
	if s.transformer != nil {
		s.transformer.SetupDrawing(DrawSetup{
			ViewRect:       p.ViewRect,
			Viewport:       p.Viewport,
			WebViewRect:    p.WebViewRect,
			TitleBarHeight: p.TitleBarHeight,
			ScreenClip:     p.Clip,
			Scale:          p.Scale,
		})
		dx, dy = s.transformer.AnimationDelta()
	}
	s.transform = viewTransform(p.ViewRect, p.Viewport, p.Scale, dx, dy)
	if s.transformer != nil {
		s.transformer.SetViewTransform(glViewport(p.ViewRect, dx, dy), s.transform)
	}

	now := s.opts.clock()
	s.setViewport(p.Viewport, p.Scale)
	return now
}

// setViewport publishes the tile texture budget and records the viewport.
// The budget is published even when the viewport did not change.
func (s *State) setViewport(rect Rect, scale float32) {
	budget := TextureBudget(rect, scale, s.opts.tileWidth, s.opts.tileHeight, s.opts.highEndGfx)
	s.tiles.SetMaxTextureCount(budget)

	if !s.viewport.Update(rect, scale) {
		return
	}
	Logger().Debug("compositor: new viewport",
		"rect", rect, "width", rect.Width(), "height", rect.Height(),
		"scale", scale, "budget", budget, "scrolling", s.viewport.Scrolling())
}

// setLayersRenderingMode sizes the layer texture pool for the demand and
// selects the rendering mode. It returns true when the base surface must be
// redrawn.
func (s *State) setLayersRenderingMode(needed TexturesNeeded) bool {
	s.tiles.SetMaxLayerTextureCount(LayerTextureRequest(needed))

	d := SelectRenderingMode(needed, s.tiles.MaxLayerTextureCount(), s.mode)
	if d.Evaluated != d.Previous {
		Logger().Debug("compositor: rendering mode change",
			"from", d.Previous, "to", d.Evaluated, "effective", d.Mode,
			"fixed", needed.Fixed, "scrollable", needed.Scrollable,
			"clipped", needed.Clipped, "full", needed.Full,
			"max", d.Ceiling)
	}
	s.mode = d.Mode
	return d.NeedsRedraw()
}
