// Command compdemo drives the compositor through a simulated scrolling page.
//
// A pool of rasterizer goroutines fills the tile transfer queue, a fake scene reports
// layer texture demand that grows as the page scrolls, and the frame-info
// indicator is painted into an image that is saved at the end.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/internal/tiles"
	"golang.org/x/image/draw"
)

func main() {
	var (
		frames  = flag.Int("frames", 600, "number of frames to draw")
		width   = flag.Int("width", 320, "view width")
		height  = flag.Int("height", 480, "view height")
		scale   = flag.Float64("scale", 1, "content zoom scale")
		speed   = flag.Float64("speed", 12, "scroll speed in pixels per frame")
		highEnd = flag.Bool("highend", false, "use the high-end texture budget")
		layers  = flag.Int("layers", 256, "device layer texture ceiling")
		measure = flag.Bool("measure", false, "record frame delays")
		verbose = flag.Bool("verbose", false, "log every frame decision")
		output  = flag.String("output", "", "save the frame-info indicator to this PNG")
		workers = flag.Int("workers", 0, "rasterizer goroutines (0: GOMAXPROCS)")
		cost    = flag.Duration("cost", 2*time.Millisecond, "simulated rasterization time per tile")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	compositor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	mgr := tiles.NewManager(tiles.Config{MaxLayerTextures: *layers})
	raster := tiles.NewRasterizer(mgr, *workers, func(tiles.Key) {
		time.Sleep(*cost)
	})
	scene := &demoScene{tiles: mgr, raster: raster}
	images := &demoImages{every: 45}
	videos := &demoVideos{}
	indicator := newCanvas(*width, *height)

	st, err := compositor.New(mgr, scene,
		compositor.WithHighEndGfx(*highEnd),
		compositor.WithImageManager(images),
		compositor.WithVideoManager(videos),
		compositor.WithOverlay(indicator),
		compositor.WithPerfMeasures(*measure, 0),
		compositor.WithFaultHandler(func(err error) {
			log.Printf("frame dropped: %v", err)
		}),
	)
	if err != nil {
		log.Fatalf("Failed to create compositor: %v", err)
	}
	st.SetBaseLayer(scene, true, true)

	view := image.Rect(0, 0, *width, *height)
	w, h := float32(*width)/float32(*scale), float32(*height)/float32(*scale)
	var (
		top      float32
		redraws  int
		fullInv  int
		lastMode = st.RenderingMode()
	)
	for i := range *frames {
		switch {
		case i == *frames/2:
			// Jump far down the page, as a find-in-page would.
			top += 20 * h
		case i%120 < 90:
			top += float32(*speed)
		}
		scene.grow(i)

		res := st.DrawFrame(compositor.FrameParams{
			ViewRect:    view,
			Viewport:    compositor.RectXYWH(0, top, w, h),
			WebViewRect: view,
			Clip:        view,
			Scale:       float32(*scale),
			ShouldDraw:  true,
		})
		if res.NeedsInval() {
			redraws++
			if res.FullScreenInval() {
				fullInv++
			}
		}
		if m := st.RenderingMode(); m != lastMode {
			log.Printf("frame %d: rendering mode %v -> %v (status %v)", i, lastMode, m, res.Status)
			lastMode = m
		}
		time.Sleep(time.Millisecond)
	}
	st.SetBaseLayer(nil, false, false)
	raster.Close()

	s := mgr.Stats()
	log.Printf("Drew %d frames: %d redraws (%d full screen), mode %v",
		st.DrawCount(), redraws, fullInv, st.RenderingMode())
	log.Printf("Tiles: %d resident of %d, %d uploads, %d evictions, %d rejected",
		s.Resident, s.MaxTextures, s.Uploads, s.Evictions, s.Rejected)
	log.Printf("Rasterizer: %d workers, %d rendered, %d dropped",
		raster.Workers(), raster.Rendered(), raster.Dropped())
	log.Printf("Video texture sweeps: %d", videos.sweeps)

	if *output != "" {
		if err := indicator.SavePNG(*output); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Indicator saved to %s", *output)
	}
}

// demoScene requests the visible tiles and reports layer demand that grows
// with the number of frames drawn.
type demoScene struct {
	tiles  *tiles.Manager
	raster *tiles.Rasterizer
	layers int
	swaps  int
}

func (s *demoScene) grow(frame int) {
	if frame%60 == 0 {
		s.layers += 4
	}
}

func (s *demoScene) ReplaceActiveCollection(layers any, isFirstLayout bool) bool {
	if layers == nil {
		s.layers = 0
	}
	return s.tiles.QueueFull()
}

func (s *demoScene) UpdateScrollableLayerOffset(layerID, x, y int) {}

func (s *demoScene) DrawFrame(req compositor.SceneDrawRequest) compositor.SceneDrawResult {
	tw, th := s.tiles.TileSize()
	vp := req.Viewport
	sc := req.Scale
	for y := int(vp.Top*sc) / th; y <= int(vp.Bottom*sc)/th; y++ {
		for x := int(vp.Left*sc) / tw; x <= int(vp.Right*sc)/tw; x++ {
			key := tiles.Key{X: x, Y: y, Scale: sc}
			if !s.tiles.Use(key) {
				s.raster.Request(key)
			}
		}
	}

	res := compositor.SceneDrawResult{
		Needed: compositor.TexturesNeeded{
			Fixed:      s.layers / 8,
			Scrollable: s.layers / 4,
			Clipped:    s.layers / 2,
			Full:       s.layers,
		},
	}
	if !req.FastSwap && s.layers%16 == 0 {
		s.swaps++
		res.CollectionsSwapped = true
		res.Status |= compositor.StatusDraw
		req.Dirty.AddDirtyArea(req.FrameRect)
	}
	return res
}

// demoImages decodes one image every few frames.
type demoImages struct {
	every int
	calls int
	count int
}

func (m *demoImages) FlushPendingImageUploads(r compositor.DirtyAreaReporter) bool {
	m.calls++
	if m.calls%m.every != 0 {
		return false
	}
	m.count++
	x := 20 * (m.count % 10)
	r.AddDirtyArea(image.Rect(x, 40, x+64, 104))
	return true
}

func (m *demoImages) ResidentTextureCount() int {
	return min(m.count, 8)
}

type demoVideos struct {
	sweeps int
}

func (v *demoVideos) ReleaseUnusedTextures() { v.sweeps++ }

// canvas is an Overlay backed by an RGBA image.
type canvas struct {
	img *image.RGBA
}

func newCanvas(w, h int) *canvas {
	return &canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (c *canvas) ClearRect(r image.Rectangle, col color.RGBA) {
	draw.Draw(c.img, r, &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func (c *canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, c.img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
