package viz

import "github.com/charmbracelet/lipgloss"

// Theme is one color scheme: four particle classes dark to bright plus
// the panel colors around them.
type Theme struct {
	Name string

	Dim  lipgloss.Color
	Cool lipgloss.Color
	Warm lipgloss.Color
	Hot  lipgloss.Color

	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Danger lipgloss.Color
}

// Palette folds the particle colors into canvas styles.
func (t Theme) Palette() Palette {
	return Palette{
		lipgloss.NewStyle(),
		lipgloss.NewStyle().Foreground(t.Dim),
		lipgloss.NewStyle().Foreground(t.Cool),
		lipgloss.NewStyle().Foreground(t.Warm),
		lipgloss.NewStyle().Foreground(t.Hot).Bold(true),
	}
}

var (
	ThemeDeepSpace = Theme{
		Name:   "deepspace",
		Dim:    lipgloss.Color("#3b4261"),
		Cool:   lipgloss.Color("#7aa2f7"),
		Warm:   lipgloss.Color("#ff9e64"),
		Hot:    lipgloss.Color("#ffd27f"),
		Accent: lipgloss.Color("#bb9af7"),
		Text:   lipgloss.Color("#c0caf5"),
		Muted:  lipgloss.Color("#565f89"),
		Danger: lipgloss.Color("#f7768e"),
	}

	ThemeEmber = Theme{
		Name:   "ember",
		Dim:    lipgloss.Color("#4a2c2a"),
		Cool:   lipgloss.Color("#c96342"),
		Warm:   lipgloss.Color("#ff8c42"),
		Hot:    lipgloss.Color("#ffd166"),
		Accent: lipgloss.Color("#ff6b35"),
		Text:   lipgloss.Color("#ffe8d6"),
		Muted:  lipgloss.Color("#7f5539"),
		Danger: lipgloss.Color("#e63946"),
	}

	ThemeMono = Theme{
		Name:   "mono",
		Dim:    lipgloss.Color("#444444"),
		Cool:   lipgloss.Color("#888888"),
		Warm:   lipgloss.Color("#cccccc"),
		Hot:    lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#dddddd"),
		Muted:  lipgloss.Color("#666666"),
		Danger: lipgloss.Color("#ffffff"),
	}

	ThemeAurora = Theme{
		Name:   "aurora",
		Dim:    lipgloss.Color("#2a4d3e"),
		Cool:   lipgloss.Color("#4ecdc4"),
		Warm:   lipgloss.Color("#95e214"),
		Hot:    lipgloss.Color("#eaffc4"),
		Accent: lipgloss.Color("#b388eb"),
		Text:   lipgloss.Color("#e0fff4"),
		Muted:  lipgloss.Color("#52796f"),
		Danger: lipgloss.Color("#ff5d8f"),
	}

	ThemePulsar = Theme{
		Name:   "pulsar",
		Dim:    lipgloss.Color("#1d3557"),
		Cool:   lipgloss.Color("#457b9d"),
		Warm:   lipgloss.Color("#a8dadc"),
		Hot:    lipgloss.Color("#f1faee"),
		Accent: lipgloss.Color("#48cae4"),
		Text:   lipgloss.Color("#caf0f8"),
		Muted:  lipgloss.Color("#3d5a80"),
		Danger: lipgloss.Color("#e63946"),
	}

	CurrentTheme = ThemeDeepSpace

	Themes = []Theme{
		ThemeDeepSpace,
		ThemeEmber,
		ThemeMono,
		ThemeAurora,
		ThemePulsar,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDeepSpace
}

// SetTheme changes the current theme.
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns the available theme names.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
