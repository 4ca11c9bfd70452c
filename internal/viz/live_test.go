package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/pendulums/internal/config"
	"github.com/san-kum/pendulums/internal/particle"
)

func newTestModel(t *testing.T, edit func(c *config.Config)) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Ensemble.Count = 3
	if edit != nil {
		edit(cfg)
	}
	m, err := NewModel("test", cfg)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func press(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func tick(m Model, at time.Time) Model {
	next, _ := m.Update(TickMsg(at))
	return next.(Model)
}

func TestModelVariantKeys(t *testing.T) {
	m := newTestModel(t, nil)

	tests := []struct {
		key  string
		want particle.Shape
	}{
		{"2", particle.Triangle},
		{"3", particle.Square},
		{"1", particle.Disc},
	}
	for _, tt := range tests {
		m = press(m, tt.key)
		if got := m.Ensemble().Variant(); got != tt.want {
			t.Errorf("key %s: variant = %v, want %v", tt.key, got, tt.want)
		}
		if got := m.Ensemble().Pendulum(0).Emitter().Shape(); got != tt.want {
			t.Errorf("key %s: emitter shape = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestModelInitialVariant(t *testing.T) {
	m := newTestModel(t, func(c *config.Config) { c.Particle.Variant = "square" })
	if m.Ensemble().Variant() != particle.Square {
		t.Errorf("initial variant = %v", m.Ensemble().Variant())
	}
}

func TestModelTickAndPause(t *testing.T) {
	m := newTestModel(t, nil)
	t0 := time.Unix(0, 0)

	m = tick(m, t0)
	m = tick(m, t0.Add(16*time.Millisecond))
	if m.Ensemble().Ticks() != 2 {
		t.Fatalf("ticks = %d, want 2", m.Ensemble().Ticks())
	}
	if m.Ensemble().ParticleCount() == 0 {
		t.Error("no particles spawned")
	}

	m = press(m, " ")
	m = tick(m, t0.Add(32*time.Millisecond))
	if m.Ensemble().Ticks() != 2 {
		t.Errorf("paused model advanced to %d ticks", m.Ensemble().Ticks())
	}

	m = press(m, " ")
	m = tick(m, t0.Add(48*time.Millisecond))
	if m.Ensemble().Ticks() != 3 {
		t.Errorf("resumed model at %d ticks, want 3", m.Ensemble().Ticks())
	}
}

func TestModelResetTimer(t *testing.T) {
	m := newTestModel(t, func(c *config.Config) { c.Ensemble.ResetIntervalMs = 100 })
	t0 := time.Unix(0, 0)

	m = tick(m, t0)
	m = tick(m, t0.Add(60*time.Millisecond))
	if m.Ensemble().Generation() != 1 {
		t.Fatalf("reset too early: generation %d", m.Ensemble().Generation())
	}

	m = tick(m, t0.Add(120*time.Millisecond))
	if m.Ensemble().Generation() != 2 {
		t.Fatalf("generation = %d, want 2", m.Ensemble().Generation())
	}
	if m.Ensemble().Ticks() != 1 {
		t.Errorf("ticks after reset = %d, want 1", m.Ensemble().Ticks())
	}
	if m.resetFraction() != 0 {
		t.Errorf("timer not restarted: %v", m.resetFraction())
	}
}

func TestModelManualResetKeepsVariant(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(m, "2")
	m = press(m, "r")
	if m.Ensemble().Generation() != 2 {
		t.Errorf("generation = %d, want 2", m.Ensemble().Generation())
	}
	if m.Ensemble().Pendulum(0).Emitter().Shape() != particle.Triangle {
		t.Error("variant lost across reset")
	}
}

func TestModelToggleVisible(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(m, "v")
	for _, p := range m.Ensemble().Pendulums() {
		if p.Visible() {
			t.Fatal("pendulum still visible")
		}
	}
	m = press(m, "r")
	if m.Ensemble().Pendulum(0).Visible() {
		t.Error("visibility not kept across reset")
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 200, Height: 50})
	m = next.(Model)

	if m.canvas.Width != 200-statsWidth-6 || m.canvas.Height != 48 {
		t.Errorf("canvas = %dx%d", m.canvas.Width, m.canvas.Height)
	}
	vp := m.Ensemble().Viewport()
	if vp.Width != float64(m.canvas.SubWidth())*m.scale {
		t.Errorf("viewport width = %v", vp.Width)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("no command on quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key did not quit")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, nil)
	m = tick(m, time.Unix(0, 0))
	m = tick(m, time.Unix(0, int64(16*time.Millisecond)))
	view := m.View()
	for _, want := range []string{"Generation", "Particles", "next reset"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestNextThemeCycles(t *testing.T) {
	th := Themes[0]
	for range Themes {
		th = NextTheme(th)
	}
	if th.Name != Themes[0].Name {
		t.Errorf("cycle ended at %s", th.Name)
	}
	if GetTheme("nope").Name != Themes[0].Name {
		t.Errorf("unknown theme gave %s", GetTheme("nope").Name)
	}
	for _, th := range Themes {
		if _, err := colorful.Hex(string(th.Backdrop)); err != nil {
			t.Errorf("theme %s backdrop: %v", th.Name, err)
		}
	}
}

func TestModelThemeKeySwitchesBackdrop(t *testing.T) {
	m := newTestModel(t, func(c *config.Config) { c.View.Theme = "dusk" })
	if m.theme.Name != "dusk" {
		t.Fatalf("theme = %s", m.theme.Name)
	}
	want, _ := colorful.Hex("#1c1026")
	if m.theme.BackdropColor() != want {
		t.Errorf("backdrop = %s", m.theme.BackdropColor().Hex())
	}

	m = press(m, "t")
	if m.theme.Name != NextTheme(GetTheme("dusk")).Name {
		t.Errorf("theme after t = %s", m.theme.Name)
	}
	if m.cfg.View.Theme != "dusk" {
		t.Error("theme key rewrote the config")
	}
}
