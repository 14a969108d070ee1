package fx

import (
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/petal-overlay/internal/config"
)

// Surface is the drawable the engine renders onto.
type Surface interface {
	// Resize sets the backing size in pixels and the scale from viewport
	// units to pixels.
	Resize(width, height int, scale float64)
	Clear()
	DrawParticle(p *Particle)
}

// Viewport is the visible area in viewport units plus its device scale.
type Viewport struct {
	Width, Height float64
	Scale         float64
}

// Engine owns the particle pool and advances it once per frame.
// It is not safe for concurrent use; the host calls it from one goroutine.
type Engine struct {
	surface Surface
	pool    *Pool
	rng     *rand.Rand
	view    Viewport
}

type Option func(*Engine)

// WithCapacity overrides the pool capacity.
func WithCapacity(n int) Option {
	return func(e *Engine) { e.pool = NewPool(n) }
}

// WithRand sets the random source. Tests use it for repeatable runs.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

func New(surface Surface, opts ...Option) *Engine {
	e := &Engine{
		surface: surface,
		pool:    NewPool(config.MaxParticles),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		view:    Viewport{Scale: 1},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Configure recomputes the surface resolution for a viewport of the given
// size. The device scale is clamped to [1, 2]. Particles are not touched.
func (e *Engine) Configure(width, height, deviceScale float64) {
	scale := clampScale(deviceScale)
	e.view = Viewport{Width: math.Max(0, width), Height: math.Max(0, height), Scale: scale}
	e.surface.Resize(int(math.Floor(e.view.Width*scale)), int(math.Floor(e.view.Height*scale)), scale)
}

func (e *Engine) Viewport() Viewport { return e.view }
func (e *Engine) Len() int           { return e.pool.Len() }
func (e *Engine) Cap() int           { return e.pool.Cap() }

// Each calls fn for every live particle, oldest first.
func (e *Engine) Each(fn func(*Particle)) { e.pool.Each(fn) }

// Spawn adds count particles just above the top edge. speedBoost scales
// their fall speed.
func (e *Engine) Spawn(count int, speedBoost float64) {
	for i := 0; i < count; i++ {
		kind := KindDot
		if e.rng.Float64() < heartChance {
			kind = KindHeart
		}
		e.pool.Push(Particle{
			X:        e.between(0, e.view.Width),
			Y:        e.between(-80, -10),
			VX:       e.between(-0.25, 0.25),
			VY:       e.between(0.8, 2.2) * speedBoost,
			Radius:   e.between(6, 13),
			Rotation: e.between(0, 2*math.Pi),
			Spin:     e.between(-0.015, 0.015),
			Alpha:    e.between(0.25, 0.55),
			Color:    Palette[e.rng.IntN(len(Palette))],
			Kind:     kind,
		})
	}
}

// Ambient emits the steady background batch.
func (e *Engine) Ambient() {
	e.Spawn(config.AmbientBatch, 1)
}

// Boost emits a burst of faster particles. The pool bound still holds, so a
// boost mostly replaces ambient particles.
func (e *Engine) Boost() {
	for k := 0; k < config.BoostRounds; k++ {
		e.Spawn(config.BoostBatch, config.BoostSpeed)
	}
}

// Step advances every particle by one frame and wraps the ones that left the
// viewport.
func (e *Engine) Step() {
	w, h := e.view.Width, e.view.Height
	e.pool.Each(func(p *Particle) {
		p.X += p.VX
		p.Y += p.VY
		p.Rotation += p.Spin

		if p.Y > h+config.WrapMargin {
			p.Y = e.between(-120, -20)
			p.X = e.between(0, w)
		}
		if p.X < -config.WrapMargin {
			p.X = w + config.WrapMargin
		} else if p.X > w+config.WrapMargin {
			p.X = -config.WrapMargin
		}
	})
}

// Draw clears the surface and renders every particle.
func (e *Engine) Draw() {
	e.surface.Clear()
	e.pool.Each(e.surface.DrawParticle)
}

// Frame is one full tick: step, then draw.
func (e *Engine) Frame() {
	e.Step()
	e.Draw()
}

func (e *Engine) between(a, b float64) float64 {
	return a + e.rng.Float64()*(b-a)
}

func clampScale(s float64) float64 {
	if math.IsNaN(s) || s < 1 {
		return 1
	}
	if s > 2 {
		return 2
	}
	return s
}
