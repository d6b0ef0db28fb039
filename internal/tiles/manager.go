// Package tiles provides a reference tile texture manager for the compositor.
//
// Manager keeps no pixels. It models which tile textures are resident on the
// GPU, the budget they live under, the transfer queue that background
// rasterizers fill, and the lazily created GPU resources. The demo host and
// the compositor tests drive it in place of a real GPU backend.
//
// Rasterizer is the background side: a worker pool that renders requested
// tiles and pushes them into the Manager's transfer queue.
package tiles

import (
	"image"
	"log/slog"
	"sync"

	"github.com/gogpu/compositor"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f64"
)

// Default configuration constants.
const (
	// DefaultMaxLayerTextures is the device ceiling for the layer texture pool.
	DefaultMaxLayerTextures = 256

	// DefaultQueueCapacity is the number of tiles the transfer queue holds.
	DefaultQueueCapacity = 64
)

// Key identifies a tile texture by its column and row in the tile grid at a
// given content scale.
type Key struct {
	X, Y  int
	Scale float32
}

// Config configures a Manager.
type Config struct {
	// MaxLayerTextures caps the layer texture pool. Zero uses
	// DefaultMaxLayerTextures.
	MaxLayerTextures int

	// QueueCapacity caps the transfer queue. Zero uses DefaultQueueCapacity.
	QueueCapacity int
}

// Stats is a snapshot of the manager's bookkeeping.
type Stats struct {
	Resident         int
	Pending          int
	MaxTextures      int
	MaxLayerTextures int
	Uploads          uint64
	Evictions        uint64
	Rejected         uint64
}

// Manager is a reference compositor.TileTextureManager.
//
// Queue may be called from rasterizer goroutines; every other method belongs
// to the rendering thread.
type Manager struct {
	cfg Config
	log *slog.Logger

	// Transfer queue, shared with rasterizer goroutines.
	mu       sync.Mutex
	pending  []Key
	rejected uint64

	resident  map[Key]*residentNode
	lru       residencyList
	uploads   uint64
	evictions uint64

	maxTextures      int
	maxLayerTextures int

	shaderReady bool
	queueReady  bool
	tileWidth   int
	tileHeight  int
	format      gputypes.TextureFormat

	setup     compositor.DrawSetup
	deltaX    float64
	deltaY    float64
	viewport  image.Rectangle
	transform f64.Aff3
}

// NewManager creates a Manager. Zero config fields take their defaults.
func NewManager(cfg Config) *Manager {
	if cfg.MaxLayerTextures <= 0 {
		cfg.MaxLayerTextures = DefaultMaxLayerTextures
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = DefaultQueueCapacity
	}
	return &Manager{
		cfg:      cfg,
		log:      compositor.Logger(),
		pending:  make([]Key, 0, cfg.QueueCapacity),
		resident: make(map[Key]*residentNode),
	}
}

// SetLogger sets the logger used by the manager.
func (m *Manager) SetLogger(l *slog.Logger) {
	if l == nil {
		l = compositor.Logger()
	}
	m.log = l
}

// Queue adds a rasterized tile to the transfer queue.
// It returns false when the queue is full; the caller retries later.
func (m *Manager) Queue(key Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pending) >= m.cfg.QueueCapacity {
		m.rejected++
		return false
	}
	m.pending = append(m.pending, key)
	return true
}

// QueueFull reports whether the transfer queue is at capacity.
func (m *Manager) QueueFull() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending) >= m.cfg.QueueCapacity
}

// SetMaxTextureCount sets the tile texture budget. Excess textures are
// released by the next GatherAvailableTextures.
func (m *Manager) SetMaxTextureCount(n int) {
	if n < 0 {
		n = 0
	}
	if n != m.maxTextures {
		m.log.Debug("tiles: texture budget", "old", m.maxTextures, "new", n)
	}
	m.maxTextures = n
}

// MaxTextureCount returns the tile texture budget.
func (m *Manager) MaxTextureCount() int {
	return m.maxTextures
}

// SetMaxLayerTextureCount sizes the layer texture pool, clamped to the
// device ceiling.
func (m *Manager) SetMaxLayerTextureCount(n int) {
	m.maxLayerTextures = min(max(n, 0), m.cfg.MaxLayerTextures)
}

// MaxLayerTextureCount returns the granted layer texture pool size.
func (m *Manager) MaxLayerTextureCount() int {
	return m.maxLayerTextures
}

// FlushPendingUploads moves queued tiles into resident textures.
func (m *Manager) FlushPendingUploads() {
	m.mu.Lock()
	batch := m.pending
	m.pending = make([]Key, 0, m.cfg.QueueCapacity)
	m.mu.Unlock()

	for _, key := range batch {
		m.touch(key)
		m.uploads++
	}
}

// GatherAvailableTextures releases least recently used textures until the
// resident set fits the texture budget.
func (m *Manager) GatherAvailableTextures() {
	for m.lru.Len() > m.maxTextures {
		key, ok := m.lru.RemoveOldest()
		if !ok {
			return
		}
		delete(m.resident, key)
		m.evictions++
	}
}

// Use marks a resident tile as drawn this frame. It returns false if the
// tile has no texture.
func (m *Manager) Use(key Key) bool {
	node, ok := m.resident[key]
	if !ok {
		return false
	}
	m.lru.MoveToFront(node)
	return true
}

// Resident reports whether the tile has a texture.
func (m *Manager) Resident(key Key) bool {
	_, ok := m.resident[key]
	return ok
}

// ShaderInitialized reports whether the shader programs exist.
func (m *Manager) ShaderInitialized() bool {
	return m.shaderReady
}

// InitShader creates the shader programs.
func (m *Manager) InitShader() {
	m.shaderReady = true
}

// TransferQueueInitialized reports whether the transfer queue exists.
func (m *Manager) TransferQueueInitialized() bool {
	return m.queueReady
}

// InitTransferQueue creates the transfer queue for tiles of the given size.
func (m *Manager) InitTransferQueue(tileWidth, tileHeight int, format gputypes.TextureFormat) {
	m.tileWidth = tileWidth
	m.tileHeight = tileHeight
	m.format = format
	m.queueReady = true
}

// TileSize returns the tile size the transfer queue was created with.
func (m *Manager) TileSize() (width, height int) {
	return m.tileWidth, m.tileHeight
}

// Format returns the tile texture format.
func (m *Manager) Format() gputypes.TextureFormat {
	return m.format
}

// LoseContext simulates GPU context loss: every texture and GPU resource
// is gone and must be recreated.
func (m *Manager) LoseContext() {
	m.shaderReady = false
	m.queueReady = false
	clear(m.resident)
	m.lru.Clear()

	m.mu.Lock()
	m.pending = m.pending[:0]
	m.mu.Unlock()
}

// SetupDrawing records the frame geometry.
func (m *Manager) SetupDrawing(setup compositor.DrawSetup) {
	m.setup = setup
}

// SetAnimationDelta sets the offset of an ongoing transform animation.
func (m *Manager) SetAnimationDelta(dx, dy float64) {
	m.deltaX, m.deltaY = dx, dy
}

// AnimationDelta returns the offset of the ongoing transform animation.
func (m *Manager) AnimationDelta() (dx, dy float64) {
	return m.deltaX, m.deltaY
}

// SetViewTransform records the GPU viewport and view transform.
func (m *Manager) SetViewTransform(viewport image.Rectangle, t f64.Aff3) {
	m.viewport = viewport
	m.transform = t
}

// ViewTransform returns the last GPU viewport and view transform.
func (m *Manager) ViewTransform() (image.Rectangle, f64.Aff3) {
	return m.viewport, m.transform
}

// LastSetup returns the geometry of the last frame.
func (m *Manager) LastSetup() compositor.DrawSetup {
	return m.setup
}

// Stats returns a snapshot of the manager's bookkeeping.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	pending := len(m.pending)
	rejected := m.rejected
	m.mu.Unlock()

	return Stats{
		Resident:         m.lru.Len(),
		Pending:          pending,
		MaxTextures:      m.maxTextures,
		MaxLayerTextures: m.maxLayerTextures,
		Uploads:          m.uploads,
		Evictions:        m.evictions,
		Rejected:         rejected,
	}
}

// touch makes key resident and most recently used.
func (m *Manager) touch(key Key) {
	if node, ok := m.resident[key]; ok {
		m.lru.MoveToFront(node)
		return
	}
	m.resident[key] = m.lru.PushFront(key)
}

// Ensure Manager implements the compositor collaborator interfaces.
var (
	_ compositor.TileTextureManager = (*Manager)(nil)
	_ compositor.Transformer        = (*Manager)(nil)
)
