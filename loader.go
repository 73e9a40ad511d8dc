package worldmesh

import (
	"log"
	"runtime"
	"sort"
	"time"

	"golang.org/x/time/rate"
)

// Chunk is a generated, meshed region of the world. It is immutable once the
// loader inserts it; adjacency is baked into the terrain halo at generation
// time, so chunks never reference each other.
type Chunk struct {
	Coord   Coord
	Terrain *Terrain
	Mesh    *Mesh

	// loader-monotonic LRU stamp, touched only by the control goroutine
	used uint64
}

// LoaderConfig carries the loader's capacities and collaborator wiring. All
// of it is constructor state; the loader keeps no globals.
type LoaderConfig struct {
	Seed        int64
	MaxChunks   int
	MaxInflight int
	// Concurrency is the worker count; defaults to GOMAXPROCS.
	Concurrency int
	MaxLOD      uint8

	// Uploader receives finished meshes; nil runs headless.
	Uploader Uploader
	// OnEvict observes chunks leaving the cache so the render side can
	// release the matching GPU buffers.
	OnEvict func(*Chunk)
}

type worker struct {
	jobs    chan Coord
	results chan *Chunk
}

// Loader owns the coordinate→chunk cache, the in-flight set and the pending
// queue. All three are mutated only by the goroutine calling Request/Tick;
// the per-worker channel pair is the only cross-goroutine hand-off, so none
// of this state needs a lock.
type Loader struct {
	cfg LoaderConfig
	gen *Generator

	cache    map[Coord]*Chunk
	inflight map[Coord]struct{}
	pending  []Coord
	workers  []worker

	clock       uint64
	limiter     *rate.Limiter
	loadCounter int
}

func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.GOMAXPROCS(0)
	}
	if cfg.MaxChunks <= 0 {
		cfg.MaxChunks = 1024
	}
	if cfg.MaxInflight <= 0 {
		cfg.MaxInflight = 32
	}

	l := &Loader{
		cfg:      cfg,
		gen:      NewGenerator(cfg.Seed),
		cache:    make(map[Coord]*Chunk),
		inflight: make(map[Coord]struct{}),
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for i := 0; i < cfg.Concurrency; i++ {
		l.workers = append(l.workers, l.spawnWorker())
	}
	return l
}

// spawnWorker starts one stateless generation worker. Workers block on their
// own job channel, process jobs strictly in send order and never touch
// loader state.
func (l *Loader) spawnWorker() worker {
	w := worker{
		// in-flight work is bounded by MaxInflight, so sized this way the
		// dispatch send can never block
		jobs:    make(chan Coord, l.cfg.MaxInflight),
		results: make(chan *Chunk, l.cfg.MaxInflight),
	}
	go func() {
		for c := range w.jobs {
			t := l.gen.Generate(c)
			w.results <- &Chunk{Coord: c, Terrain: t, Mesh: BuildMesh(t)}
		}
	}()
	return w
}

func (l *Loader) touch(ch *Chunk) {
	l.clock++
	ch.used = l.clock
}

// Request reconciles the wanted set against cache and in-flight state. The
// pending queue is rebuilt from scratch every call: the view recomputes the
// full wanted set each tick, so stale entries are dropped, not aged out.
// Wanted order is preserved, which keeps the queue nearest-first.
func (l *Loader) Request(coords []Coord) {
	l.pending = l.pending[:0]
	queued := make(map[Coord]struct{}, len(coords))
	for _, c := range coords {
		if _, ok := l.inflight[c]; ok {
			continue
		}
		if ch, ok := l.cache[c]; ok {
			l.touch(ch)
			continue
		}
		if _, ok := queued[c]; ok {
			continue
		}
		queued[c] = struct{}{}
		l.pending = append(l.pending, c)
	}
}

// Tick runs one harvest/evict/dispatch cycle. It never blocks on the
// workers: completed chunks are drained with non-blocking receives and
// anything still cooking is picked up on a later tick.
func (l *Loader) Tick() {
	for _, w := range l.workers {
	drain:
		for {
			select {
			case ch := <-w.results:
				l.touch(ch)
				ch.Mesh.Finish(l.cfg.Uploader)
				l.cache[ch.Coord] = ch
				delete(l.inflight, ch.Coord)
				l.loadCounter++
			default:
				break drain
			}
		}
	}

	// Evict least-recently-used entries above capacity, ties broken by
	// coordinate order.
	for len(l.cache) > l.cfg.MaxChunks {
		var victim *Chunk
		for _, ch := range l.cache {
			if victim == nil || ch.used < victim.used ||
				(ch.used == victim.used && ch.Coord.Less(victim.Coord)) {
				victim = ch
			}
		}
		delete(l.cache, victim.Coord)
		if l.cfg.OnEvict != nil {
			l.cfg.OnEvict(victim)
		}
	}

	// Dispatch pending work into worker slack, nearest first. Sticky
	// routing: the coordinate hash picks the worker, so a coordinate always
	// lands on the same queue.
	for len(l.inflight) < l.cfg.MaxInflight && len(l.pending) > 0 {
		c := l.pending[0]
		l.pending = l.pending[1:]
		l.inflight[c] = struct{}{}
		l.workers[c.hash()%uint64(len(l.workers))].jobs <- c
	}

	if l.loadCounter > 0 && l.limiter.Allow() {
		log.Printf("[loader] loaded %d chunks", l.loadCounter)
		l.loadCounter = 0
	}
}

// Get returns the cached chunk for an exact coordinate. Read-only: lookups
// from the render side never mutate loader state.
func (l *Loader) Get(c Coord) (*Chunk, bool) {
	ch, ok := l.cache[c]
	return ch, ok
}

// GetLOD returns the chunk for c, falling back to the nearest resident
// coarser level covering the same region when the exact entry is absent.
// Read-only, like Get.
func (l *Loader) GetLOD(c Coord) (*Chunk, bool) {
	if ch, ok := l.cache[c]; ok {
		return ch, true
	}
	for c.LOD < l.cfg.MaxLOD {
		c = c.Parent()
		if ch, ok := l.cache[c]; ok {
			return ch, true
		}
	}
	return nil, false
}

// Resident returns the cached chunks in coordinate order.
func (l *Loader) Resident() []*Chunk {
	out := make([]*Chunk, 0, len(l.cache))
	for _, ch := range l.cache {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Coord.Less(out[j].Coord)
	})
	return out
}

// Stats reports cache, in-flight and pending sizes.
func (l *Loader) Stats() (resident, inflight, pending int) {
	return len(l.cache), len(l.inflight), len(l.pending)
}

// Close stops the workers. Results still in flight are abandoned; there is
// no cancellation of a job already picked up, it simply completes into a
// buffered channel nobody drains.
func (l *Loader) Close() {
	for _, w := range l.workers {
		close(w.jobs)
	}
}
