package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the color scheme of the walk view.
type Theme struct {
	Name    string
	Path    lipgloss.Color
	Bars    lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
	Error   lipgloss.Color
}

var Themes = []Theme{
	{
		Name:    "cyberpunk",
		Path:    "#00ffff",
		Bars:    "#ff00ff",
		Accent:  "#ffff00",
		Text:    "#ffffff",
		Muted:   "#666666",
		Running: "#00ff00",
		Paused:  "#ff8800",
		Error:   "#ff0000",
	},
	{
		Name:    "retro",
		Path:    "#00ff00",
		Bars:    "#00cc00",
		Accent:  "#88ff88",
		Text:    "#00ff00",
		Muted:   "#005500",
		Running: "#88ff88",
		Paused:  "#ffff00",
		Error:   "#ff0000",
	},
	{
		Name:    "minimal",
		Path:    "#ffffff",
		Bars:    "#cccccc",
		Accent:  "#0088ff",
		Text:    "#ffffff",
		Muted:   "#888888",
		Running: "#00ff00",
		Paused:  "#ffaa00",
		Error:   "#ff0000",
	},
	{
		Name:    "ocean",
		Path:    "#00a8cc",
		Bars:    "#0077be",
		Accent:  "#ffd700",
		Text:    "#e0f0ff",
		Muted:   "#4488aa",
		Running: "#00ff88",
		Paused:  "#ffcc00",
		Error:   "#ff4444",
	},
	{
		Name:    "sunset",
		Path:    "#feca57",
		Bars:    "#ff6b6b",
		Accent:  "#ff9ff3",
		Text:    "#fff5f5",
		Muted:   "#8b6b8c",
		Running: "#5fd068",
		Paused:  "#ffc048",
		Error:   "#ff4757",
	},
}

// LookupTheme finds a theme by name.
func LookupTheme(name string) (Theme, error) {
	for _, t := range Themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Themes[0], fmt.Errorf("unknown theme: %q", name)
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
