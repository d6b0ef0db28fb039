package compositor

import (
	"image"
	"image/color"
	"time"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f64"
)

// TileTextureManager owns the tile textures and the GPU resources used to
// upload and draw them. Tile content is produced on background workers;
// the manager hands ready content to the rendering thread.
type TileTextureManager interface {
	// SetMaxTextureCount publishes the tile texture budget for the viewport.
	SetMaxTextureCount(n int)

	// SetMaxLayerTextureCount requests a layer texture pool size.
	SetMaxLayerTextureCount(n int)

	// MaxLayerTextureCount returns the layer texture pool size actually
	// granted, after the manager applied its device limits.
	MaxLayerTextureCount() int

	// FlushPendingUploads blits tiles with new content from the transfer
	// queue into their textures.
	FlushPendingUploads()

	// GatherAvailableTextures collects the textures usable this frame.
	GatherAvailableTextures()

	// ShaderInitialized reports whether the shader programs exist.
	// It returns false again after the GPU context was lost.
	ShaderInitialized() bool

	// InitShader creates the shader programs.
	InitShader()

	// TransferQueueInitialized reports whether the transfer queue exists.
	TransferQueueInitialized() bool

	// InitTransferQueue creates the transfer queue for tiles of the given
	// size and texture format.
	InitTransferQueue(tileWidth, tileHeight int, format gputypes.TextureFormat)
}

// DirtyAreaReporter receives invalidated screen areas.
// [State] implements it.
type DirtyAreaReporter interface {
	AddDirtyArea(r image.Rectangle)
}

// ImageTextureManager uploads decoded images to GPU textures.
type ImageTextureManager interface {
	// FlushPendingImageUploads uploads pending image textures, reporting the
	// areas they cover to r. It returns true if uploads remain for a later
	// frame.
	FlushPendingImageUploads(r DirtyAreaReporter) (morePending bool)

	// ResidentTextureCount returns the number of image textures on the GPU.
	ResidentTextureCount() int
}

// SceneDrawRequest carries the frame parameters handed to the scene.
type SceneDrawRequest struct {
	// Time is the frame timestamp used for layer animations.
	Time time.Time

	// FrameRect is the view rectangle in window coordinates.
	FrameRect image.Rectangle

	// Viewport is the visible content rectangle.
	Viewport Rect

	// Scale is the content zoom scale.
	Scale float32

	// FastSwap allows swapping in new content without waiting for every
	// tile of the new collection, trading consistency for latency.
	FastSwap bool

	// ShouldDraw is false when the host only wants state updated.
	ShouldDraw bool

	// Dirty collects the screen areas layers changed while drawing. It is
	// resolved into the frame's invalidation once the scene returns.
	Dirty DirtyAreaReporter
}

// SceneDrawResult is what the scene reports back after drawing.
type SceneDrawResult struct {
	// Status holds the scene's own draw requests.
	Status Status

	// Needed is the texture demand of the drawn layers.
	Needed TexturesNeeded

	// CollectionsSwapped reports that a new collection became active.
	CollectionsSwapped bool

	// NewCollectionHasAnimation reports that the active collection animates.
	NewCollectionHasAnimation bool
}

// SceneCollectionManager double-buffers layer trees (collections) and draws
// the active one.
type SceneCollectionManager interface {
	// ReplaceActiveCollection queues a new layer tree, nil for none.
	// It returns true when the upload queue is full.
	ReplaceActiveCollection(layers any, isFirstLayout bool) (queueFull bool)

	// UpdateScrollableLayerOffset scrolls a scrollable layer.
	UpdateScrollableLayerOffset(layerID, x, y int)

	// DrawFrame draws the active collection.
	DrawFrame(req SceneDrawRequest) SceneDrawResult
}

// VideoTextureManager owns the textures of video layers.
type VideoTextureManager interface {
	// ReleaseUnusedTextures deletes textures of videos no longer shown.
	ReleaseUnusedTextures()
}

// DrawSetup describes the geometry of the frame being drawn.
type DrawSetup struct {
	ViewRect       image.Rectangle
	Viewport       Rect
	WebViewRect    image.Rectangle
	TitleBarHeight int
	ScreenClip     image.Rectangle
	Scale          float32
}

// Transformer is implemented by tile texture managers whose shader owns the
// GPU viewport transform. When the manager does not implement it, the
// transform is computed without an animation delta.
type Transformer interface {
	// SetupDrawing configures the shader for the frame.
	SetupDrawing(setup DrawSetup)

	// AnimationDelta returns the current offset of an ongoing transform
	// animation, in window pixels.
	AnimationDelta() (dx, dy float64)

	// SetViewTransform applies the GPU viewport rectangle and the content to
	// window transform.
	SetViewTransform(viewport image.Rectangle, m f64.Aff3)
}

// Overlay draws the frame-info visual indicator.
type Overlay interface {
	// ClearRect fills r with c, ignoring anything drawn there before.
	ClearRect(r image.Rectangle, c color.RGBA)
}
