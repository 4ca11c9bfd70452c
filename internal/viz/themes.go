package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme colours the terminal host. Backdrop is the colour dying particles
// fade into; pendulum hues themselves never change with the theme.
type Theme struct {
	Name     string
	Frame    lipgloss.Color
	Title    lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Running  lipgloss.Color
	Paused   lipgloss.Color
	Rec      lipgloss.Color
	Backdrop lipgloss.Color
}

var Themes = []Theme{
	{
		Name:     "night",
		Frame:    "#5f5fff",
		Title:    "#ff5fd7",
		Text:     "#eeeeee",
		Muted:    "#6c6c6c",
		Running:  "#5fff87",
		Paused:   "#ffaf00",
		Rec:      "#ff005f",
		Backdrop: "#000000",
	},
	{
		Name:     "dusk",
		Frame:    "#af5fd7",
		Title:    "#ffaf87",
		Text:     "#ffeedd",
		Muted:    "#8a6d8b",
		Running:  "#87d787",
		Paused:   "#ffd75f",
		Rec:      "#ff5f5f",
		Backdrop: "#1c1026",
	},
	{
		Name:     "deep",
		Frame:    "#0087af",
		Title:    "#5fd7ff",
		Text:     "#dff3ff",
		Muted:    "#4a7a94",
		Running:  "#5fffaf",
		Paused:   "#ffd700",
		Rec:      "#ff5f5f",
		Backdrop: "#00121f",
	},
	{
		Name:     "phosphor",
		Frame:    "#00af00",
		Title:    "#5fff5f",
		Text:     "#afffaf",
		Muted:    "#005f00",
		Running:  "#87ff87",
		Paused:   "#d7ff00",
		Rec:      "#ff0000",
		Backdrop: "#000d00",
	},
	{
		Name:     "ember",
		Frame:    "#d75f00",
		Title:    "#ffaf00",
		Text:     "#fff0e0",
		Muted:    "#875f3f",
		Running:  "#afd75f",
		Paused:   "#ffd787",
		Rec:      "#ff3f3f",
		Backdrop: "#140800",
	},
}

// GetTheme returns the named theme, or the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// BackdropColor is the fade target for particles; black when unparseable.
func (t Theme) BackdropColor() colorful.Color {
	c, err := colorful.Hex(string(t.Backdrop))
	if err != nil {
		return colorful.Color{}
	}
	return c
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
