package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// styles are the panel styles derived from a theme.
type styles struct {
	panel     lipgloss.Style
	title     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	subtle    lipgloss.Style
	running   lipgloss.Style
	paused    lipgloss.Style
	recording lipgloss.Style
	canvas    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1).
			Width(statsWidth),
		title:  lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		label:  lipgloss.NewStyle().Foreground(t.Muted),
		value:  lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		subtle: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		running: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Running),
		paused: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Paused),
		recording: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Rec).
			Blink(true),
		canvas: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Frame),
	}
}

// GradientText colours each rune of text along a blend from start to end.
// Colours that are not valid hex fall back to white.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	from := hexOrWhite(string(start))
	to := hexOrWhite(string(end))

	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		col := from.BlendLab(to, t).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(col.Hex())).Render(string(r)))
	}
	return b.String()
}

func hexOrWhite(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}

// Separator is a muted horizontal rule with a centre mark.
func Separator(width int, s lipgloss.Style) string {
	if width < 8 {
		return s.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return s.Render(strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-1))
}
