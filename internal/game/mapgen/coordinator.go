package mapgen

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// State is the progress of one generation request.
type State int32

const (
	StateRequested State = iota
	StateComputing
	StateQueued    // result waiting for Drain
	StateCompleted // callback has run
	StateFailed    // worker or callback panicked; nothing more happens
)

func (s State) String() string {
	switch s {
	case StateRequested:
		return "requested"
	case StateComputing:
		return "computing"
	case StateQueued:
		return "queued"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Ticket tracks a single request. It is safe to read from any goroutine.
type Ticket struct {
	state atomic.Int32
}

// State returns the request's current state.
func (t *Ticket) State() State {
	return State(t.state.Load())
}

func (t *Ticket) set(s State) {
	t.state.Store(int32(s))
}

// Stats counts requests by outcome.
type Stats struct {
	Requested int64
	Completed int64
	Failed    int64
}

// Pending returns the number of requests that have neither completed nor
// failed.
func (s Stats) Pending() int64 {
	return s.Requested - s.Completed - s.Failed
}

type completion struct {
	ticket  *Ticket
	fields  []zap.Field
	deliver func()
}

// Coordinator runs height map and mesh generation on one goroutine per
// request and hands the results back to a single consumer through Drain.
//
// Workers share nothing but the result channel. Callbacks only ever run
// inside Drain, on the caller's goroutine, so they may touch state owned by
// the main loop without locking.
type Coordinator struct {
	settings Settings
	builder  *terrain.Builder
	log      *zap.Logger

	results chan completion
	wg      sync.WaitGroup
	closed  atomic.Bool

	requested atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64

	// replaced in tests
	buildHeight func(center math.Vec2) *terrain.HeightMap
	tessellate  func(hm *terrain.HeightMap, lod int) *terrain.Mesh
}

// NewCoordinator returns a Coordinator generating terrain with s.
func NewCoordinator(s Settings, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Coordinator{
		settings: s,
		builder:  terrain.NewBuilder(s.Terrain),
		log:      log,
		results:  make(chan completion, max(s.QueueCapacity, 1)),
	}
	c.buildHeight = c.builder.Build
	c.tessellate = func(hm *terrain.HeightMap, lod int) *terrain.Mesh {
		return terrain.Tessellate(hm, s.HeightMultiplier, s.HeightCurve, lod, s.FlatShading)
	}
	return c
}

// Settings returns the generation settings.
func (c *Coordinator) Settings() Settings {
	return c.settings
}

// RequestHeightData builds the height map of the chunk centred at center on
// a new goroutine. callback receives it during a later Drain.
func (c *Coordinator) RequestHeightData(center math.Vec2, callback func(*terrain.HeightMap)) *Ticket {
	fields := []zap.Field{
		zap.String("kind", "height"),
		zap.Float32("x", center.X),
		zap.Float32("y", center.Y),
	}
	return c.dispatch(fields, func() func() {
		hm := c.buildHeight(center)
		return func() { callback(hm) }
	})
}

// RequestMeshData tessellates hm at lod on a new goroutine. callback
// receives the mesh during a later Drain. hm is only read.
func (c *Coordinator) RequestMeshData(hm *terrain.HeightMap, lod int, callback func(*terrain.Mesh)) *Ticket {
	fields := []zap.Field{
		zap.String("kind", "mesh"),
		zap.Int("lod", lod),
	}
	return c.dispatch(fields, func() func() {
		mesh := c.tessellate(hm, lod)
		return func() { callback(mesh) }
	})
}

func (c *Coordinator) dispatch(fields []zap.Field, work func() func()) *Ticket {
	t := &Ticket{}
	c.requested.Add(1)

	if c.closed.Load() {
		c.log.Warn("request after close dropped", fields...)
		t.set(StateFailed)
		c.failed.Add(1)
		return t
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		deliver, ok := c.compute(t, fields, work)
		if !ok {
			return
		}
		t.set(StateQueued)
		c.results <- completion{ticket: t, fields: fields, deliver: deliver}
	}()
	return t
}

// compute runs work, converting a panic into a failed ticket.
func (c *Coordinator) compute(t *Ticket, fields []zap.Field, work func() func()) (deliver func(), ok bool) {
	defer func() {
		if r := recover(); r != nil {
			t.set(StateFailed)
			c.failed.Add(1)
			c.log.Error("terrain worker panicked", append(fields, zap.Any("panic", r), zap.StackSkip("stack", 2))...)
			deliver, ok = nil, false
		}
	}()

	t.set(StateComputing)
	return work(), true
}

// Drain runs the callbacks of every result that was queued when Drain
// started and returns how many it ran. Results that arrive meanwhile wait for
// the next call. Drain never blocks on workers.
func (c *Coordinator) Drain() int {
	n := len(c.results)
	for i := 0; i < n; i++ {
		c.deliver(<-c.results)
	}
	return n
}

func (c *Coordinator) deliver(r completion) {
	defer func() {
		if p := recover(); p != nil {
			r.ticket.set(StateFailed)
			c.failed.Add(1)
			c.log.Error("terrain callback panicked", append(r.fields, zap.Any("panic", p))...)
		}
	}()

	r.deliver()
	r.ticket.set(StateCompleted)
	c.completed.Add(1)
}

// Wait blocks until every dispatched worker has queued its result or failed.
// The queue must have room for all outstanding results.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Stats returns request counters.
func (c *Coordinator) Stats() Stats {
	return Stats{
		Requested: c.requested.Load(),
		Completed: c.completed.Load(),
		Failed:    c.failed.Load(),
	}
}

// Close rejects further requests and waits for running workers, discarding
// their results.
func (c *Coordinator) Close() {
	if c.closed.Swap(true) {
		return
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	for {
		select {
		case <-done:
			return
		case <-c.results:
		}
	}
}
