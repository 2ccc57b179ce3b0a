package dreamtable

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// debugLogInterval is how many frames pass between timing summaries in
// debug mode.
const debugLogInterval = 300

// World owns every entity, component store and system, and the shared
// Context. It is not safe for concurrent use.
type World struct {
	C   *Components
	Ctx *Context

	pool      *entityPool
	systems   []registeredSystem
	lastPhase Phase

	log *zap.Logger
	rng *rand.Rand
	now func() time.Time

	// FrameTime is the duration of one frame in seconds, used by tweens.
	FrameTime float32

	frame   uint64
	debug   bool
	timings []time.Duration
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used by the world and its systems.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithSeed makes the world's random source deterministic.
func WithSeed(seed uint64) Option {
	return func(w *World) { w.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithClock replaces time.Now for timestamped output such as exports.
func WithClock(now func() time.Time) Option {
	return func(w *World) { w.now = now }
}

// NewWorld creates an empty world with a default Context.
func NewWorld(opts ...Option) *World {
	w := &World{
		C:         newComponents(),
		Ctx:       NewContext(),
		pool:      newEntityPool(),
		lastPhase: PhaseContext,
		log:       zap.NewNop(),
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		now:       time.Now,
		FrameTime: 1.0 / 60,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) Log() *zap.Logger { return w.log }
func (w *World) Rand() *rand.Rand { return w.rng }
func (w *World) Now() time.Time   { return w.now() }
func (w *World) Frame() uint64    { return w.frame }

// CreateEntity allocates an entity and attaches the given components.
func (w *World) CreateEntity(components ...Component) Entity {
	e := w.pool.create()
	for _, c := range components {
		c.attach(w.C, e)
	}
	return e
}

// AddComponent attaches components to a live entity, replacing existing
// values of the same type. It reports false for dead entities.
func (w *World) AddComponent(e Entity, components ...Component) bool {
	if !w.pool.alive(e) {
		w.log.Warn("add component to dead entity", zap.Uint64("entity", uint64(e)))
		return false
	}
	for _, c := range components {
		c.attach(w.C, e)
	}
	return true
}

// Alive reports whether e is a live entity.
func (w *World) Alive(e Entity) bool { return w.pool.alive(e) }

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int { return w.pool.live }

// DeleteEntity removes every component of e and retires the id. Resources
// owned by e must already be released by the cleanup systems.
func (w *World) DeleteEntity(e Entity) bool {
	if !w.pool.alive(e) {
		return false
	}
	if img, ok := w.C.Image.Get(e); ok && (img.Raster != nil || img.Texture != nil) {
		w.log.Warn("deleting entity with live image handles",
			zap.Uint64("entity", uint64(e)),
			zap.String("source", img.Source),
			zap.Bool("raster", img.Raster != nil),
			zap.Bool("texture", img.Texture != nil))
	}
	for _, s := range w.C.all {
		s.Remove(e)
	}
	return w.pool.destroy(e)
}

// AddSystem appends a system to the pipeline. Phases must be registered in
// ascending order; the pipeline is never reordered afterwards.
func (w *World) AddSystem(phase Phase, name string, s System) error {
	if phase < w.lastPhase {
		return fmt.Errorf("add system %q: phase %s registered after %s", name, phase, w.lastPhase)
	}
	w.lastPhase = phase
	w.systems = append(w.systems, registeredSystem{name: name, phase: phase, system: s})
	w.timings = append(w.timings, 0)
	return nil
}

// Systems returns the registered system names in execution order.
func (w *World) Systems() []string {
	out := make([]string, len(w.systems))
	for i, s := range w.systems {
		out[i] = s.name
	}
	return out
}

// SetDebugMode enables per-system timing. A summary is logged every
// debugLogInterval frames.
func (w *World) SetDebugMode(enabled bool) {
	w.debug = enabled
}

// Process runs every system once, in order.
func (w *World) Process(hal HAL) {
	w.frame++
	if !w.debug {
		for _, s := range w.systems {
			s.system.Process(w, w.Ctx, hal)
		}
		return
	}
	for i, s := range w.systems {
		start := time.Now()
		s.system.Process(w, w.Ctx, hal)
		w.timings[i] += time.Since(start)
	}
	if w.frame%debugLogInterval == 0 {
		w.debugLog()
	}
}

// debugLog logs the average per-system time since the last summary and
// resets the counters.
func (w *World) debugLog() {
	var total time.Duration
	fields := make([]zap.Field, 0, len(w.systems)+3)
	for i, s := range w.systems {
		avg := w.timings[i] / debugLogInterval
		total += avg
		fields = append(fields, zap.Duration(s.name, avg))
		w.timings[i] = 0
	}
	fields = append(fields,
		zap.Uint64("frame", w.frame),
		zap.Int("entities", w.pool.live),
		zap.Duration("total", total))
	w.log.Debug("frame timing", fields...)
}
