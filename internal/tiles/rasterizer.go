package tiles

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// RenderFunc produces the content of one tile. It runs on a rasterizer
// worker goroutine.
type RenderFunc func(key Key)

// Rasterizer renders requested tiles on a pool of worker goroutines and
// hands the results to a Manager's transfer queue.
//
// Each worker has its own request queue and steals from the others when it
// runs dry. A tile is rendered at most once while it is in flight.
//
// Thread safety: Rasterizer is safe for concurrent use.
type Rasterizer struct {
	mgr    *Manager
	render RenderFunc

	queues []chan Key
	done   chan struct{}
	wg     sync.WaitGroup

	// mu guards closed and inFlight. Request holds it while sending so no
	// key is queued after the workers drained and exited.
	mu       sync.Mutex
	closed   bool
	inFlight map[Key]struct{}

	rendered atomic.Uint64
	dropped  atomic.Uint64
}

// NewRasterizer starts a rasterizer feeding mgr. If workers is 0 or
// negative, GOMAXPROCS is used. A nil render function only forwards keys.
func NewRasterizer(mgr *Manager, workers int, render RenderFunc) *Rasterizer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	r := &Rasterizer{
		mgr:      mgr,
		render:   render,
		queues:   make([]chan Key, workers),
		done:     make(chan struct{}),
		inFlight: make(map[Key]struct{}),
	}
	for i := range workers {
		r.queues[i] = make(chan Key, queueSize)
	}

	r.wg.Add(workers)
	for i := range workers {
		go r.worker(i)
	}
	return r
}

func (r *Rasterizer) worker(id int) {
	defer r.wg.Done()

	own := r.queues[id]
	for {
		select {
		case <-r.done:
			r.drain(own)
			return
		case key := <-own:
			r.rasterize(key)
		default:
			if key, ok := r.steal(id); ok {
				r.rasterize(key)
				continue
			}
			select {
			case <-r.done:
				r.drain(own)
				return
			case key := <-own:
				r.rasterize(key)
			}
		}
	}
}

func (r *Rasterizer) drain(queue chan Key) {
	for {
		select {
		case key := <-queue:
			r.rasterize(key)
		default:
			return
		}
	}
}

// steal takes a request from another worker's queue.
func (r *Rasterizer) steal(id int) (Key, bool) {
	for i, q := range r.queues {
		if i == id {
			continue
		}
		select {
		case key := <-q:
			return key, true
		default:
		}
	}
	return Key{}, false
}

func (r *Rasterizer) rasterize(key Key) {
	if r.render != nil {
		r.render(key)
	}
	if r.mgr.Queue(key) {
		r.rendered.Add(1)
	} else {
		r.dropped.Add(1)
	}

	r.mu.Lock()
	delete(r.inFlight, key)
	r.mu.Unlock()
}

// Request asks for a tile to be rendered. It never blocks: it returns false
// when the rasterizer is closed, the tile is already in flight, or every
// worker queue is full. A dropped request is simply made again next frame.
func (r *Rasterizer) Request(key Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}
	if _, ok := r.inFlight[key]; ok {
		return false
	}

	// Shortest queue first.
	target := r.queues[0]
	for _, q := range r.queues[1:] {
		if len(q) < len(target) {
			target = q
		}
	}

	select {
	case target <- key:
		r.inFlight[key] = struct{}{}
		return true
	default:
		r.dropped.Add(1)
		return false
	}
}

// InFlight returns the number of tiles requested but not yet handed to the
// transfer queue.
func (r *Rasterizer) InFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inFlight)
}

// Rendered returns the number of tiles handed to the transfer queue.
func (r *Rasterizer) Rendered() uint64 {
	return r.rendered.Load()
}

// Dropped returns the number of requests lost to full queues.
func (r *Rasterizer) Dropped() uint64 {
	return r.dropped.Load()
}

// Workers returns the number of worker goroutines.
func (r *Rasterizer) Workers() int {
	return len(r.queues)
}

// Close stops accepting requests, renders what is queued and waits for the
// workers to exit. Close is safe to call multiple times.
func (r *Rasterizer) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.done)
	r.mu.Unlock()

	r.wg.Wait()
}
