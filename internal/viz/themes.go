package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Ramp      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Faint     lipgloss.Color
	Warning   lipgloss.Color
}

// Available themes
var (
	ThemeViridis = Theme{
		Name:      "viridis",
		Ramp:      "viridis",
		Primary:   lipgloss.Color("#21918c"),
		Secondary: lipgloss.Color("#5ec962"),
		Accent:    lipgloss.Color("#fde725"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888899"),
		Faint:     lipgloss.Color("#3a3a44"),
		Warning:   lipgloss.Color("#ffaa00"),
	}

	ThemeMagma = Theme{
		Name:      "magma",
		Ramp:      "magma",
		Primary:   lipgloss.Color("#de4968"),
		Secondary: lipgloss.Color("#fe9f6d"),
		Accent:    lipgloss.Color("#fcfdbf"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Faint:     lipgloss.Color("#2d1b2e"),
		Warning:   lipgloss.Color("#ffc048"),
	}

	ThemePlasma = Theme{
		Name:      "plasma",
		Ramp:      "plasma",
		Primary:   lipgloss.Color("#cc4778"),
		Secondary: lipgloss.Color("#f89540"),
		Accent:    lipgloss.Color("#f0f921"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#7a6a99"),
		Faint:     lipgloss.Color("#241a3a"),
		Warning:   lipgloss.Color("#ff8800"),
	}

	ThemeCividis = Theme{
		Name:      "cividis",
		Ramp:      "cividis",
		Primary:   lipgloss.Color("#575d6d"),
		Secondary: lipgloss.Color("#a69d75"),
		Accent:    lipgloss.Color("#fee838"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#707173"),
		Faint:     lipgloss.Color("#00224e"),
		Warning:   lipgloss.Color("#ffcc00"),
	}

	// All available themes
	Themes = []Theme{
		ThemeViridis,
		ThemeMagma,
		ThemePlasma,
		ThemeCividis,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeViridis
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeViridis
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
