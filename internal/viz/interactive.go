package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/pendulums/internal/config"
)

var presetInfo = map[string]string{
	"default":  "25 arms, trails on",
	"original": "particles only",
	"swarm":    "100 hidden arms",
	"calm":     "small swings",
	"wide":     "δ = 0.01",
	"chaos":    "near inverted start",
}

// field is one editable config value and its h/l step.
type field struct {
	key  string
	step float64
}

var fields = []field{
	{"ensemble.count", 1},
	{"ensemble.delta", 0.0001},
	{"ensemble.reset_interval_ms", 5000},
	{"pendulum.a1", 0.1},
	{"pendulum.a2", 0.1},
	{"pendulum.r1", 5},
	{"pendulum.r2", 5},
	{"pendulum.g", 0.1},
	{"pendulum.trail_length", 10},
	{"pendulum.visible", 1},
	{"particle.gravity_y", 0.01},
	{"particle.wind_x", 0.01},
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

type model struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	fieldCursor   int
	editing       bool
	editBuf       string
	err           error
	width, height int
	liveModel     Model
}

func NewInteractiveApp(base *config.Config) *model {
	return &model{
		state:   stateMenu,
		presets: config.ListPresets(),
		cfg:     base,
		width:   width, height: height,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateSim {
			return m.forward(msg)
		}
		return m, nil
	default:
		if m.state == stateSim {
			return m.forward(msg)
		}
	}
	return m, nil
}

func (m model) forward(msg tea.Msg) (model, tea.Cmd) {
	newLive, cmd := m.liveModel.Update(msg)
	m.liveModel = newLive.(Model)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		return m.forward(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		cfg, err := config.MustPreset(m.selected)
		if err != nil {
			m.err = err
			return m, nil
		}
		// keep view settings from the base config
		if m.cfg != nil {
			cfg.View = m.cfg.View
		}
		m.cfg = cfg
		m.state, m.fieldCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	key := fields[m.fieldCursor].key
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.err = m.cfg.Set(key, v)
			} else {
				m.err = err
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-e") {
				m.editBuf += s
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(fields)-1 {
			m.fieldCursor++
		}
	case "enter", " ":
		v, _ := m.cfg.Get(key)
		m.editing, m.editBuf = true, strconv.FormatFloat(v, 'g', -1, 64)
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m *model) nudge(dir float64) {
	f := fields[m.fieldCursor]
	v, err := m.cfg.Get(f.key)
	if err != nil {
		m.err = err
		return
	}
	if f.key == "pendulum.visible" {
		m.err = m.cfg.Set(f.key, 1-v)
		return
	}
	m.err = m.cfg.Set(f.key, v+dir*f.step)
}

func (m model) start() (model, tea.Cmd) {
	live, err := NewModel(m.selected, m.cfg)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.liveModel = live
	m.state = stateSim
	resize := func() tea.Msg { return tea.WindowSizeMsg{Width: m.width, Height: m.height} }
	return m, tea.Batch(resize, m.liveModel.Init())
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

var (
	headStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyStyle.Render(pairs[i]) + idleStyle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + headStyle.Render("PENDULUMS") + "\n    " + subStyle.Render("double pendulum ensembles") + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), activeStyle.Render(fmt.Sprintf("%-12s", name)), descStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", idleStyle.Render(fmt.Sprintf("  %-12s", name)), subStyle.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	if m.err != nil {
		b.WriteString("\n    " + errStyle.Render(m.err.Error()) + "\n")
	}
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + headStyle.Render(strings.ToUpper(m.selected)) + "\n    " + subStyle.Render(presetInfo[m.selected]) + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, f := range fields {
		v, _ := m.cfg.Get(f.key)
		valStr := fmt.Sprintf("%10.4g", v)
		if m.editing && i == m.fieldCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorStyle.Render("▸"), activeStyle.Render(fmt.Sprintf("%-28s", f.key)), descStyle.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", idleStyle.Render(fmt.Sprintf("  %-28s", f.key)), subStyle.Render(valStr)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "enter", "edit", "s", "start", "esc", "back") + "\n")
	if m.err != nil {
		b.WriteString("\n    " + errStyle.Render(m.err.Error()) + "\n")
	}
	return b.String()
}

// RunInteractive opens the preset picker; base supplies the view settings.
func RunInteractive(base *config.Config) error {
	_, err := tea.NewProgram(NewInteractiveApp(base), tea.WithAltScreen()).Run()
	return err
}
