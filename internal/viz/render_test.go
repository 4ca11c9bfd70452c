package viz

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/pendulums/internal/config"
	"github.com/san-kum/pendulums/internal/dynamo"
	"github.com/san-kum/pendulums/internal/ensemble"
	"github.com/san-kum/pendulums/internal/palette"
	"github.com/san-kum/pendulums/internal/particle"
)

func TestAutoScale(t *testing.T) {
	tests := []struct {
		name       string
		reach      float64
		subW, subH int
		want       float64
	}{
		{"height bound", 200, 200, 88, 2.2 * 200 / 88},
		{"width bound", 200, 60, 88, 2.2 * 200 / 60},
		{"empty canvas", 200, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AutoScale(tt.reach, tt.subW, tt.subH); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("AutoScale = %v, want %v", got, tt.want)
			}
		})
	}
}

func testEnsemble(t *testing.T, c *Canvas, scale float64, edit func(*config.Config)) *ensemble.Ensemble {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Ensemble.Count = 2
	if edit != nil {
		edit(cfg)
	}
	e, err := ensemble.New(cfg.EnsembleConfig(), Viewport(c, scale))
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestRendererDraw(t *testing.T) {
	c := NewCanvas(40, 20)
	scale := AutoScale(200, c.SubWidth(), c.SubHeight())

	hidden := testEnsemble(t, c, scale, func(cfg *config.Config) { cfg.Pendulum.Visible = false })
	Renderer{Canvas: c, Scale: scale}.Draw(hidden)
	if lit(c) != 0 {
		t.Errorf("fresh hidden ensemble drew %d cells", lit(c))
	}

	hidden.AdvanceAll()
	Renderer{Canvas: c, Scale: scale}.Draw(hidden)
	if lit(c) == 0 {
		t.Error("particles not drawn")
	}

	shown := testEnsemble(t, c, scale, nil)
	Renderer{Canvas: c, Scale: scale}.Draw(shown)
	if lit(c) == 0 {
		t.Error("arms not drawn")
	}
}

func TestRendererShapes(t *testing.T) {
	for _, v := range []int{0, 1, 2} {
		c := NewCanvas(40, 20)
		e := testEnsemble(t, c, 6, func(cfg *config.Config) { cfg.Pendulum.Visible = false })
		e.SetVariant(v)
		for i := 0; i < 5; i++ {
			e.AdvanceAll()
		}
		Renderer{Canvas: c, Scale: 6}.Draw(e)
		if lit(c) == 0 {
			t.Errorf("variant %d drew nothing", v)
		}
	}
}

func TestParticleFadesToBackdrop(t *testing.T) {
	pt := particle.Particle{
		Pos:       dynamo.V(60, 60),
		Lifespan:  120,
		MaxSize:   8,
		SizeRange: 300,
		Shape:     particle.Square,
	}
	backdrops := []colorful.Color{
		{},
		{R: 0.1, G: 0.05, B: 0.15},
		{R: 1, G: 1, B: 1},
	}
	for _, bg := range backdrops {
		c := NewCanvas(40, 20)
		Renderer{Canvas: c, Scale: 1, Backdrop: bg}.drawParticle(&pt)

		want := palette.Fade(palette.Particle(pt.Hue), bg, pt.Alpha())
		if got := c.Colors[60/4][60/2]; got != want {
			t.Errorf("backdrop %s: cell %s, want %s", bg.Hex(), got.Hex(), want.Hex())
		}
	}
}

func TestRecorderSave(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19, red)

	r := NewRecorder(60)
	r.Capture(c)
	r.Capture(c)
	if r.Len() != 2 {
		t.Fatalf("frames = %d", r.Len())
	}
	if r.frames[0].ColorIndexAt(0, 0) == 0 {
		t.Error("lit dot rasterised as background")
	}

	path := filepath.Join(t.TempDir(), "out.gif")
	if err := r.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
}
