package particle

import (
	"math"
	"math/rand"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/pendulums/internal/dynamo"
)

var wide = dynamo.Bounds{Width: 1e9, Height: 1e9}

func pinned(lifespan, decay float64) Config {
	cfg := DefaultConfig()
	cfg.LifespanMin, cfg.LifespanMax = lifespan, lifespan
	cfg.DecayMin, cfg.DecayMax = decay, decay
	return cfg
}

func TestNewDrawsWithinRanges(t *testing.T) {
	g := NewWithT(t)
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		p := New(dynamo.V(10, 20), 42, Square, cfg, rng)

		g.Expect(p.Pos).To(Equal(dynamo.V(10, 20)))
		g.Expect(p.Lifespan).To(BeNumerically(">=", 150))
		g.Expect(p.Lifespan).To(BeNumerically("<=", 300))
		g.Expect(p.DecayRate).To(BeNumerically(">=", 1))
		g.Expect(p.DecayRate).To(BeNumerically("<=", 3))
		// |vx| <= speed <= 2, vy in [-speed, 0]
		g.Expect(math.Abs(p.Vel.X)).To(BeNumerically("<=", 2))
		g.Expect(p.Vel.Y).To(BeNumerically("<=", 0))
		g.Expect(p.Vel.Y).To(BeNumerically(">=", -2))
		g.Expect(p.Acc).To(Equal(dynamo.Vec2{}))
		g.Expect(p.Hue).To(Equal(42.0))
		g.Expect(p.Shape).To(Equal(Square))
		g.Expect(p.MaxSize).To(Equal(8.0))
	}
}

func TestAdvanceAppliesGravityAndWind(t *testing.T) {
	p := Particle{
		Pos:       dynamo.V(100, 100),
		Vel:       dynamo.V(1, -1),
		Lifespan:  200,
		DecayRate: 2,
		MaxSize:   8,
	}

	p.Advance(DefaultConfig())

	wantVel := dynamo.V(1-0.02, -1+0.05)
	if math.Abs(p.Vel.X-wantVel.X) > 1e-12 || math.Abs(p.Vel.Y-wantVel.Y) > 1e-12 {
		t.Errorf("velocity = %v, want %v", p.Vel, wantVel)
	}
	wantPos := dynamo.V(100, 100).Add(wantVel)
	if math.Abs(p.Pos.X-wantPos.X) > 1e-12 || math.Abs(p.Pos.Y-wantPos.Y) > 1e-12 {
		t.Errorf("position = %v, want %v", p.Pos, wantPos)
	}
	if p.Acc != (dynamo.Vec2{}) {
		t.Errorf("acceleration not cleared: %v", p.Acc)
	}
	if p.Lifespan != 198 {
		t.Errorf("lifespan = %v, want 198", p.Lifespan)
	}
}

func TestLifespanStrictlyDecreases(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := New(dynamo.V(5e8, 5e8), 0, Disc, DefaultConfig(), rng)

	prev := p.Lifespan
	for !p.IsDead(wide) {
		p.Advance(DefaultConfig())
		if p.Lifespan >= prev {
			t.Fatalf("lifespan did not decrease: %v -> %v", prev, p.Lifespan)
		}
		prev = p.Lifespan
	}
	if p.Lifespan >= 0 {
		t.Errorf("expected death by lifespan, got %v", p.Lifespan)
	}
}

func TestDeathAfterLifespan(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := New(dynamo.V(5e8, 5e8), 0, Disc, pinned(200, 1), rng)

	for i := 0; i < 200; i++ {
		p.Advance(pinned(200, 1))
	}
	if p.IsDead(wide) {
		t.Fatalf("dead at lifespan %v, expected alive at exactly zero", p.Lifespan)
	}

	p.Advance(pinned(200, 1))
	if !p.IsDead(wide) {
		t.Errorf("expected dead after 201 ticks, lifespan %v", p.Lifespan)
	}
}

func TestDeathByBounds(t *testing.T) {
	b := dynamo.Bounds{Width: 100, Height: 100}

	tests := []struct {
		name string
		pos  dynamo.Vec2
		dead bool
	}{
		{"inside", dynamo.V(50, 50), false},
		{"left", dynamo.V(-1, 50), true},
		{"right", dynamo.V(101, 50), true},
		{"top", dynamo.V(50, -1), true},
		{"bottom", dynamo.V(50, 101), true},
		{"nan", dynamo.V(math.NaN(), 50), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Particle{Pos: tt.pos, Lifespan: 100}
			if got := p.IsDead(b); got != tt.dead {
				t.Errorf("IsDead() = %v, want %v", got, tt.dead)
			}
		})
	}
}

func TestSizeAndAlpha(t *testing.T) {
	tests := []struct {
		lifespan float64
		size     float64
		alpha    float64
	}{
		{300, 8, 1},
		{150, 4, 150.0 / 255},
		{0, 0, 0},
		{-30, -0.8, 0},
	}

	for _, tt := range tests {
		p := Particle{Lifespan: tt.lifespan, MaxSize: 8, SizeRange: 300}
		if got := p.Size(); math.Abs(got-tt.size) > 1e-12 {
			t.Errorf("Size(lifespan=%v) = %v, want %v", tt.lifespan, got, tt.size)
		}
		if got := p.Alpha(); math.Abs(got-tt.alpha) > 1e-12 {
			t.Errorf("Alpha(lifespan=%v) = %v, want %v", tt.lifespan, got, tt.alpha)
		}
	}
}

func TestShapeFromIndex(t *testing.T) {
	tests := []struct {
		in   int
		want Shape
	}{
		{0, Disc},
		{1, Triangle},
		{2, Square},
		{5, Disc},
		{-1, Disc},
	}

	for _, tt := range tests {
		if got := ShapeFromIndex(tt.in); got != tt.want {
			t.Errorf("ShapeFromIndex(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if ParseShape("triangle") != Triangle || ParseShape("square") != Square || ParseShape("hexagon") != Disc {
		t.Error("ParseShape mismatch")
	}
	if Shape(9).String() != "disc" || Triangle.String() != "triangle" {
		t.Error("String mismatch")
	}
}

func TestFootprint(t *testing.T) {
	g := NewWithT(t)

	disc := Particle{Pos: dynamo.V(10, 10), Lifespan: 300, MaxSize: 8, SizeRange: 300, Shape: Disc}
	f := disc.Footprint()
	g.Expect(f.Vertices).To(BeEmpty())
	g.Expect(f.Size).To(BeNumerically("~", 8, 1e-12))
	g.Expect(f.Radius()).To(BeNumerically("~", 4, 1e-12))

	tri := disc
	tri.Shape = Triangle
	f = tri.Footprint()
	g.Expect(f.Vertices).To(HaveLen(3))
	h := math.Sqrt(3) / 2 * 8
	g.Expect(f.Vertices[0].Y).To(BeNumerically("~", 10-h/2, 1e-12))
	g.Expect(f.Vertices[1].X).To(BeNumerically("~", 6, 1e-12))
	g.Expect(f.Vertices[2].X).To(BeNumerically("~", 14, 1e-12))
	g.Expect(f.Vertices[2].Y - f.Vertices[0].Y).To(BeNumerically("~", h, 1e-12))

	sq := disc
	sq.Shape = Square
	f = sq.Footprint()
	g.Expect(f.Vertices).To(HaveLen(4))
	g.Expect(f.Vertices[2].X - f.Vertices[0].X).To(BeNumerically("~", 8, 1e-12))
	g.Expect(f.Vertices[2].Y - f.Vertices[0].Y).To(BeNumerically("~", 8, 1e-12))

	dead := Particle{Lifespan: -10, MaxSize: 8, SizeRange: 300}
	g.Expect(dead.Footprint().Radius()).To(Equal(0.0))
}
