package compositor

import (
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f64"
)

// callLog records collaborator calls in order.
type callLog struct {
	calls []string
}

func (l *callLog) add(name string) {
	if l != nil {
		l.calls = append(l.calls, name)
	}
}

// mockTiles implements TileTextureManager for testing.
// The layer texture pool is clamped to ceiling.
type mockTiles struct {
	log    *callLog
	logger *slog.Logger

	ceiling          int
	maxTextures      int
	maxLayerTextures int
	budgets          []int

	shaderReady bool
	queueReady  bool
	shaderInits int
	queueInits  int
	tileW       int
	tileH       int
	format      gputypes.TextureFormat
}

func newMockTiles(ceiling int) *mockTiles {
	return &mockTiles{ceiling: ceiling}
}

func (m *mockTiles) SetLogger(l *slog.Logger) { m.logger = l }

func (m *mockTiles) SetMaxTextureCount(n int) {
	m.log.add("tiles.SetMaxTextureCount")
	m.maxTextures = n
	m.budgets = append(m.budgets, n)
}

func (m *mockTiles) SetMaxLayerTextureCount(n int) {
	m.log.add("tiles.SetMaxLayerTextureCount")
	m.maxLayerTextures = min(n, m.ceiling)
}

func (m *mockTiles) MaxLayerTextureCount() int {
	m.log.add("tiles.MaxLayerTextureCount")
	return m.maxLayerTextures
}

func (m *mockTiles) FlushPendingUploads()     { m.log.add("tiles.FlushPendingUploads") }
func (m *mockTiles) GatherAvailableTextures() { m.log.add("tiles.GatherAvailableTextures") }
func (m *mockTiles) ShaderInitialized() bool  { return m.shaderReady }

func (m *mockTiles) InitShader() {
	m.log.add("tiles.InitShader")
	m.shaderReady = true
	m.shaderInits++
}

func (m *mockTiles) TransferQueueInitialized() bool { return m.queueReady }

func (m *mockTiles) InitTransferQueue(w, h int, format gputypes.TextureFormat) {
	m.log.add("tiles.InitTransferQueue")
	m.queueReady = true
	m.queueInits++
	m.tileW, m.tileH, m.format = w, h, format
}

// mockTransformTiles is a mockTiles whose shader owns the view transform.
type mockTransformTiles struct {
	*mockTiles
	setup     DrawSetup
	dx, dy    float64
	viewport  image.Rectangle
	transform f64.Aff3
}

func (m *mockTransformTiles) SetupDrawing(setup DrawSetup) {
	m.log.add("shader.SetupDrawing")
	m.setup = setup
}

func (m *mockTransformTiles) AnimationDelta() (float64, float64) { return m.dx, m.dy }

func (m *mockTransformTiles) SetViewTransform(viewport image.Rectangle, t f64.Aff3) {
	m.log.add("shader.SetViewTransform")
	m.viewport = viewport
	m.transform = t
}

// mockScenes implements SceneCollectionManager for testing.
// Each DrawFrame returns the next scripted result, repeating the last one.
type mockScenes struct {
	log     *callLog
	results []SceneDrawResult
	frame   int

	requests  []SceneDrawRequest
	replaced  []any
	firstFlag []bool
	scrolls   [][3]int
	queueFull bool

	// dirty is reported through the request on every DrawFrame.
	dirty []image.Rectangle
}

func (m *mockScenes) ReplaceActiveCollection(layers any, isFirstLayout bool) bool {
	m.log.add("scenes.ReplaceActiveCollection")
	m.replaced = append(m.replaced, layers)
	m.firstFlag = append(m.firstFlag, isFirstLayout)
	return m.queueFull
}

func (m *mockScenes) UpdateScrollableLayerOffset(layerID, x, y int) {
	m.scrolls = append(m.scrolls, [3]int{layerID, x, y})
}

func (m *mockScenes) DrawFrame(req SceneDrawRequest) SceneDrawResult {
	m.log.add("scenes.DrawFrame")
	m.requests = append(m.requests, req)
	for _, r := range m.dirty {
		req.Dirty.AddDirtyArea(r)
	}
	if len(m.results) == 0 {
		return SceneDrawResult{}
	}
	i := min(m.frame, len(m.results)-1)
	m.frame++
	return m.results[i]
}

// mockImages implements ImageTextureManager for testing.
type mockImages struct {
	log      *callLog
	logger   *slog.Logger
	pending  bool
	resident int
	dirty    []image.Rectangle
}

func (m *mockImages) SetLogger(l *slog.Logger) { m.logger = l }

func (m *mockImages) FlushPendingImageUploads(r DirtyAreaReporter) bool {
	m.log.add("images.FlushPendingImageUploads")
	for _, d := range m.dirty {
		r.AddDirtyArea(d)
	}
	return m.pending
}

func (m *mockImages) ResidentTextureCount() int {
	m.log.add("images.ResidentTextureCount")
	return m.resident
}

// mockVideos implements VideoTextureManager for testing.
type mockVideos struct {
	log      *callLog
	releases int
}

func (m *mockVideos) ReleaseUnusedTextures() {
	m.log.add("videos.ReleaseUnusedTextures")
	m.releases++
}

// mockOverlay records ClearRect calls.
type mockOverlay struct {
	rects  []image.Rectangle
	colors []color.RGBA
}

func (m *mockOverlay) ClearRect(r image.Rectangle, c color.RGBA) {
	m.rects = append(m.rects, r)
	m.colors = append(m.colors, c)
}

// fakeClock advances by step on every call.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0), step: step}
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}
