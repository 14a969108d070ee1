package fx

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/iburimskiy/petal-overlay/internal/config"
)

type resizeCall struct {
	w, h  int
	scale float64
}

type fakeSurface struct {
	resizes []resizeCall
	clears  int
	drawn   []Particle
}

func (s *fakeSurface) Resize(w, h int, scale float64) {
	s.resizes = append(s.resizes, resizeCall{w, h, scale})
}
func (s *fakeSurface) Clear()                   { s.clears++; s.drawn = s.drawn[:0] }
func (s *fakeSurface) DrawParticle(p *Particle) { s.drawn = append(s.drawn, *p) }

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *fakeSurface) {
	t.Helper()
	s := &fakeSurface{}
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	e := New(s, opts...)
	e.Configure(800, 600, 1)
	return e, s
}

func snapshot(e *Engine) []Particle {
	var out []Particle
	e.Each(func(p *Particle) { out = append(out, *p) })
	return out
}

func TestConfigureClampsScale(t *testing.T) {
	tests := []struct {
		scale float64
		want  resizeCall
	}{
		{0.5, resizeCall{1000, 600, 1}},
		{1.5, resizeCall{1500, 900, 1.5}},
		{3, resizeCall{2000, 1200, 2}},
		{math.NaN(), resizeCall{1000, 600, 1}},
	}
	for _, tt := range tests {
		s := &fakeSurface{}
		e := New(s)
		e.Configure(1000, 600, tt.scale)
		if got := s.resizes[len(s.resizes)-1]; got != tt.want {
			t.Errorf("scale %v: Resize%v, want %v", tt.scale, got, tt.want)
		}
	}
}

func TestConfigureLeavesParticlesAlone(t *testing.T) {
	e, s := newTestEngine(t)
	e.Spawn(20, 1)
	before := snapshot(e)
	e.Configure(400, 300, 2)
	e.Configure(400, 300, 2)
	after := snapshot(e)
	if len(before) != len(after) {
		t.Fatalf("Len changed %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("particle %d changed", i)
		}
	}
	if s.resizes[1] != s.resizes[2] {
		t.Errorf("repeated Configure differs: %v vs %v", s.resizes[1], s.resizes[2])
	}
}

func TestSpawnRanges(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Spawn(100, 1.8)
	hearts := 0
	e.Each(func(p *Particle) {
		if p.X < 0 || p.X >= 800 {
			t.Errorf("x = %v outside viewport", p.X)
		}
		if p.Y < -80 || p.Y >= -10 {
			t.Errorf("y = %v outside spawn band", p.Y)
		}
		if p.VY < 0.8*1.8 || p.VY >= 2.2*1.8 {
			t.Errorf("vy = %v not scaled by boost", p.VY)
		}
		if math.Abs(p.VX) > 0.25 {
			t.Errorf("vx = %v", p.VX)
		}
		if p.Radius < 6 || p.Radius >= 13 {
			t.Errorf("radius = %v", p.Radius)
		}
		if p.Alpha <= 0 || p.Alpha >= 1 {
			t.Errorf("alpha = %v", p.Alpha)
		}
		if p.Kind == KindHeart {
			hearts++
		}
	})
	if hearts == 0 || hearts == 100 {
		t.Errorf("hearts = %d of 100, expected a mix", hearts)
	}
}

func TestSpawnEvictsOldestFirst(t *testing.T) {
	e, _ := newTestEngine(t, WithCapacity(5))
	e.Spawn(3, 1)
	i := 0
	e.Each(func(p *Particle) {
		p.Alpha = float64(100 + i)
		i++
	})
	e.Spawn(2, 1)
	if e.Len() != 5 {
		t.Fatalf("Len = %d, want 5", e.Len())
	}
	e.Spawn(1, 1)
	if e.Len() != 5 {
		t.Fatalf("Len = %d, want 5", e.Len())
	}
	got := snapshot(e)
	if got[0].Alpha != 101 || got[1].Alpha != 102 {
		t.Errorf("oldest after eviction = %v, %v; want 101, 102", got[0].Alpha, got[1].Alpha)
	}
}

func TestBoostIsBounded(t *testing.T) {
	e, s := newTestEngine(t)
	for i := 0; i < 3; i++ {
		e.Boost()
		if e.Len() > config.MaxParticles {
			t.Fatalf("Len = %d > %d", e.Len(), config.MaxParticles)
		}
		e.Frame()
	}
	if e.Len() != config.MaxParticles {
		t.Errorf("Len = %d, want %d", e.Len(), config.MaxParticles)
	}
	if len(s.drawn) != e.Len() {
		t.Errorf("drew %d particles, want %d", len(s.drawn), e.Len())
	}
}

func TestAmbientAddsBatch(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Ambient()
	e.Ambient()
	if e.Len() != 2*config.AmbientBatch {
		t.Errorf("Len = %d", e.Len())
	}
}

func TestStepWrapsBelowBottom(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Spawn(1, 1)
	p := e.pool.At(0)
	p.X, p.Y, p.VY = 100, 600+config.WrapMargin, 1
	before := *p

	e.Step()

	if p.Y < -120 || p.Y >= -20 {
		t.Errorf("y = %v, want above the top", p.Y)
	}
	if p.X < 0 || p.X >= 800 {
		t.Errorf("x = %v, want inside the viewport", p.X)
	}
	if p.Radius != before.Radius || p.Color != before.Color || p.Kind != before.Kind || p.Alpha != before.Alpha {
		t.Error("respawn changed fixed attributes")
	}
	if p.VX != before.VX || p.VY != before.VY {
		t.Error("respawn changed velocity")
	}
}

func TestStepWrapsHorizontally(t *testing.T) {
	tests := []struct {
		name  string
		x, vx float64
		wantX float64
	}{
		{"left edge", -config.WrapMargin, -0.2, 800 + config.WrapMargin},
		{"right edge", 800 + config.WrapMargin, 0.2, -config.WrapMargin},
		{"inside", 400, 0.2, 400.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			e.Spawn(1, 1)
			p := e.pool.At(0)
			p.X, p.VX, p.Y, p.VY = tt.x, tt.vx, 300, 0
			e.Step()
			if math.Abs(p.X-tt.wantX) > 1e-9 {
				t.Errorf("x = %v, want %v", p.X, tt.wantX)
			}
			if p.VX != tt.vx {
				t.Errorf("vx = %v, want %v", p.VX, tt.vx)
			}
		})
	}
}

func TestStepAdvancesRotation(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Spawn(1, 1)
	p := e.pool.At(0)
	p.Rotation, p.Spin = 1, 0.01
	e.Step()
	if math.Abs(p.Rotation-1.01) > 1e-12 {
		t.Errorf("rotation = %v", p.Rotation)
	}
}

func TestZeroViewportDoesNotFail(t *testing.T) {
	s := &fakeSurface{}
	e := New(s)
	e.Configure(0, 0, 1)
	e.Boost()
	for i := 0; i < 200; i++ {
		e.Frame()
	}
	if s.resizes[0] != (resizeCall{0, 0, 1}) {
		t.Errorf("Resize%v", s.resizes[0])
	}
}

func TestDrawClearsFirst(t *testing.T) {
	e, s := newTestEngine(t)
	e.Spawn(4, 1)
	e.Draw()
	e.Draw()
	if s.clears != 2 || len(s.drawn) != 4 {
		t.Errorf("clears = %d drawn = %d", s.clears, len(s.drawn))
	}
}

func TestHeartOutlineTransform(t *testing.T) {
	o := HeartOutline(10)
	if o.Start != (Point{0, 3}) || o.Curves[1].End != (Point{0, 12}) {
		t.Fatalf("unexpected outline %+v", o)
	}
	if o.Curves[3].End != o.Start {
		t.Error("outline is not closed")
	}
	m := o.Transform(math.Pi/2, 5, 5, 2)
	// (0, 12) rotated a quarter turn is (-12, 0); moved to (-7, 5); scaled (-14, 10).
	got := m.Curves[1].End
	if math.Abs(got.X+14) > 1e-9 || math.Abs(got.Y-10) > 1e-9 {
		t.Errorf("transformed tip = %+v", got)
	}
}
