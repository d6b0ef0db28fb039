package compositor

import (
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Sane scale range. Scales outside it are logged before a frame update and
// treated as corruption after it.
const (
	DefaultMinScale = 0.1
	DefaultMaxScale = 10
)

// DefaultMaxPerfMeasures is the number of frame delays recorded before they
// are dumped to the logger.
const DefaultMaxPerfMeasures = 2000

// Option configures a State during creation.
//
// Example:
//
//	st, err := compositor.New(tiles, scenes,
//	    compositor.WithTileSize(512, 512),
//	    compositor.WithImageManager(images),
//	)
type Option func(*options)

// options holds optional configuration for State creation.
type options struct {
	tileWidth    int
	tileHeight   int
	highEndGfx   bool
	device       gpucontext.DeviceProvider
	images       ImageTextureManager
	videos       VideoTextureManager
	overlay      Overlay
	clock        func() time.Time
	minScale     float32
	maxScale     float32
	faultHandler FaultHandler
	perfMeasures bool
	maxMeasures  int
}

// defaultOptions returns the default State options.
func defaultOptions() options {
	return options{
		tileWidth:    DefaultTileWidth,
		tileHeight:   DefaultTileHeight,
		device:       NullDevice{},
		clock:        time.Now,
		minScale:     DefaultMinScale,
		maxScale:     DefaultMaxScale,
		faultHandler: panicOnFault,
		maxMeasures:  DefaultMaxPerfMeasures,
	}
}

// WithTileSize sets the tile texture size in pixels.
func WithTileSize(width, height int) Option {
	return func(o *options) {
		o.tileWidth = width
		o.tileHeight = height
	}
}

// WithHighEndGfx selects the high-end device tier, which doubles the tile
// texture budget.
func WithHighEndGfx(highEnd bool) Option {
	return func(o *options) {
		o.highEndGfx = highEnd
	}
}

// WithDeviceLimits derives the device tier from the GPU limits.
// See HighEndGfx.
func WithDeviceLimits(limits gputypes.Limits) Option {
	return func(o *options) {
		o.highEndGfx = HighEndGfx(limits)
	}
}

// WithDevice sets the host GPU device. Its surface format is used for tile
// textures. A nil device restores NullDevice.
func WithDevice(device gpucontext.DeviceProvider) Option {
	return func(o *options) {
		if device == nil {
			device = NullDevice{}
		}
		o.device = device
	}
}

// WithImageManager sets the image texture manager.
func WithImageManager(m ImageTextureManager) Option {
	return func(o *options) {
		o.images = m
	}
}

// WithVideoManager sets the video texture manager.
func WithVideoManager(m VideoTextureManager) Option {
	return func(o *options) {
		o.videos = m
	}
}

// WithOverlay sets where the frame-info visual indicator is drawn.
func WithOverlay(ov Overlay) Option {
	return func(o *options) {
		o.overlay = ov
	}
}

// WithClock replaces time.Now as the frame clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithScaleBounds sets the sane scale range.
func WithScaleBounds(lo, hi float32) Option {
	return func(o *options) {
		o.minScale = lo
		o.maxScale = hi
	}
}

// WithFaultHandler sets the handler for unrecoverable faults.
// A nil handler restores the default, which panics.
func WithFaultHandler(h FaultHandler) Option {
	return func(o *options) {
		if h == nil {
			h = panicOnFault
		}
		o.faultHandler = h
	}
}

// WithPerfMeasures records frame delays while the visual indicator is on and
// dumps them to the logger every max frames. A max <= 0 uses
// DefaultMaxPerfMeasures.
func WithPerfMeasures(enabled bool, maxMeasures int) Option {
	return func(o *options) {
		o.perfMeasures = enabled
		if maxMeasures <= 0 {
			maxMeasures = DefaultMaxPerfMeasures
		}
		o.maxMeasures = maxMeasures
	}
}
