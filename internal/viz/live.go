package viz

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pendulums/internal/config"
	"github.com/san-kum/pendulums/internal/ensemble"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 44
	historyCapacity = 240
)

type TickMsg time.Time

// Model hosts an ensemble in the terminal: it owns the frame clock, the
// reset timer and the keyboard.
type Model struct {
	cfg    *config.Config
	name   string
	ens    *ensemble.Ensemble
	canvas *Canvas
	scale  float64
	fps    int

	running    bool
	showHelp   bool
	recording  bool
	recorder   *Recorder
	gifPath    string
	theme      Theme
	interval   time.Duration
	sinceReset time.Duration
	lastTick   time.Time

	particleHistory []float64
	spring          harmonica.Spring
	spread, spreadV float64

	keys     keyMap
	help     help.Model
	progress progress.Model
}

// NewModel builds the ensemble described by cfg on a default-sized canvas.
// The canvas and viewport follow the terminal once a WindowSizeMsg arrives.
func NewModel(name string, cfg *config.Config) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	canvas := NewCanvas(width-statsWidth-4, height-2)
	scale := worldScale(cfg, canvas)

	ens, err := ensemble.New(cfg.EnsembleConfig(), Viewport(canvas, scale))
	if err != nil {
		return Model{}, err
	}
	ens.SetVariant(int(cfg.Variant()))

	fps := cfg.View.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}

	m := Model{
		cfg:             cfg,
		name:            name,
		ens:             ens,
		canvas:          canvas,
		scale:           scale,
		fps:             fps,
		running:         true,
		gifPath:         "pendulums.gif",
		theme:           GetTheme(cfg.View.Theme),
		interval:        cfg.ResetInterval(),
		particleHistory: make([]float64, 0, historyCapacity),
		spring:          harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		keys:            defaultKeyMap(),
		help:            help.New(),
	}
	m.progress = newProgress(m.theme)
	m.draw()
	return m, nil
}

func newProgress(t Theme) progress.Model {
	return progress.New(
		progress.WithGradient(string(t.Frame), string(t.Title)),
		progress.WithWidth(statsWidth-4),
		progress.WithoutPercentage(),
	)
}

// worldScale is the configured world units per dot, or a fit-to-canvas
// scale when none is configured.
func worldScale(cfg *config.Config, c *Canvas) float64 {
	if cfg.View.WorldScale > 0 {
		return cfg.View.WorldScale
	}
	return AutoScale(cfg.Pendulum.R1+cfg.Pendulum.R2, c.SubWidth(), c.SubHeight())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the ensemble one frame per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		now := time.Time(msg)
		if m.running {
			if !m.lastTick.IsZero() {
				m.sinceReset += now.Sub(m.lastTick)
			}
			if m.interval > 0 && m.sinceReset >= m.interval {
				m.reset("timer")
			}
			m.step()
		}
		m.lastTick = now
		m.draw()
		if m.recording {
			m.recorder.Capture(m.canvas)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.recording {
			m.stopRecording()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Disc):
		m.ens.SetVariant(0)
	case key.Matches(msg, m.keys.Triangle):
		m.ens.SetVariant(1)
	case key.Matches(msg, m.keys.Square):
		m.ens.SetVariant(2)
	case key.Matches(msg, m.keys.Reset):
		m.reset("key")
		m.draw()
	case key.Matches(msg, m.keys.Visible):
		m.ens.ToggleVisible()
		m.draw()
	case key.Matches(msg, m.keys.Pause):
		m.running = !m.running
	case key.Matches(msg, m.keys.Theme):
		m.theme = NextTheme(m.theme)
		m.progress = newProgress(m.theme)
		m.draw()
	case key.Matches(msg, m.keys.Record):
		if m.recording {
			m.stopRecording()
		} else {
			m.recording = true
			m.recorder = NewRecorder(m.fps)
		}
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return m, nil
}

func (m *Model) stopRecording() {
	m.recording = false
	if m.recorder == nil || m.recorder.Len() == 0 {
		return
	}
	if err := m.recorder.Save(m.gifPath); err != nil {
		log.Printf("gif: %v", err)
	} else {
		log.Printf("gif: wrote %d frames to %s", m.recorder.Len(), m.gifPath)
	}
	m.recorder = nil
}

func (m *Model) step() {
	m.ens.AdvanceAll()

	m.particleHistory = append(m.particleHistory, float64(m.ens.ParticleCount()))
	if len(m.particleHistory) > historyCapacity {
		m.particleHistory = m.particleHistory[len(m.particleHistory)-historyCapacity:]
	}

	if s := m.ens.Spread(); !math.IsNaN(s) && !math.IsInf(s, 0) {
		m.spread, m.spreadV = m.spring.Update(m.spread, m.spreadV, s)
	}
}

func (m *Model) reset(reason string) {
	m.sinceReset = 0
	if err := m.ens.Reset(); err != nil {
		log.Printf("reset (%s): %v", reason, err)
		return
	}
	m.particleHistory = m.particleHistory[:0]
	m.spread, m.spreadV = 0, 0
	log.Printf("reset (%s): generation %d", reason, m.ens.Generation())
}

// resize fits the canvas to the terminal beside the stats panel. Particles
// die against the new viewport at once; pivots move on the next reset.
func (m *Model) resize(w, h int) {
	cw := w - statsWidth - 6
	ch := h - 2
	if cw < 10 {
		cw = 10
	}
	if ch < 5 {
		ch = 5
	}
	m.canvas = NewCanvas(cw, ch)
	m.scale = worldScale(m.cfg, m.canvas)
	m.ens.SetViewport(Viewport(m.canvas, m.scale))
	m.help.Width = statsWidth
	m.draw()
}

func (m *Model) draw() {
	Renderer{Canvas: m.canvas, Scale: m.scale, Backdrop: m.theme.BackdropColor()}.Draw(m.ens)
}

func (m Model) status(st styles) string {
	switch {
	case m.recording:
		return st.recording.Render("● REC")
	case !m.running:
		return st.paused.Render("PAUSED")
	default:
		return st.running.Render("RUNNING")
	}
}

// resetFraction is how far the reset timer has run, in [0, 1].
func (m Model) resetFraction() float64 {
	if m.interval <= 0 {
		return 0
	}
	return math.Min(1, float64(m.sinceReset)/float64(m.interval))
}

func (m Model) View() string {
	st := newStyles(m.theme)
	canvasView := st.canvas.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.name), m.theme.Title, m.theme.Frame))
	s.WriteString("  " + m.status(st) + "\n")
	s.WriteString(Separator(statsWidth-4, st.label) + "\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(fmt.Sprintf("%-11s", label)) + st.value.Render(value) + "\n")
	}
	row("Generation", fmt.Sprintf("%d", m.ens.Generation()))
	row("Tick", fmt.Sprintf("%d", m.ens.Ticks()))
	row("Pendulums", fmt.Sprintf("%d (δ %g)", m.ens.Len(), m.cfg.Ensemble.Delta))
	row("Particles", fmt.Sprintf("%d", m.ens.ParticleCount()))
	row("Variant", m.ens.Variant().String())
	row("Spread", fmt.Sprintf("%.2f", m.spread))
	row("Energy", fmt.Sprintf("%.2f", m.ens.Energy()))

	if m.ens.Len() > 0 {
		params := m.ens.Pendulum(0).GetParams()
		s.WriteString("\n" + st.title.Render("PENDULUM 0") + "\n")
		for _, k := range []string{"a1", "a2", "a1v", "a2v", "hue"} {
			row(k, fmt.Sprintf("%.3f", params[k]))
		}
	}

	if len(m.particleHistory) > 1 {
		chart := asciigraph.Plot(m.particleHistory,
			asciigraph.Height(5),
			asciigraph.Width(statsWidth-14),
			asciigraph.Caption("live particles"))
		s.WriteString("\n" + chart + "\n")
	}

	if m.interval > 0 {
		left := m.interval - m.sinceReset
		if left < 0 {
			left = 0
		}
		s.WriteString("\n" + st.label.Render(fmt.Sprintf("next reset in %s", left.Truncate(time.Second))) + "\n")
		s.WriteString(m.progress.ViewAs(m.resetFraction()) + "\n")
	}

	s.WriteString("\n" + m.help.View(m.keys))

	statsView := st.panel.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Ensemble exposes the hosted ensemble.
func (m Model) Ensemble() *ensemble.Ensemble { return m.ens }

// Run starts the terminal host on the alternate screen.
func Run(name string, cfg *config.Config) error {
	m, err := NewModel(name, cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
