// Package styles defines the color palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the viewer.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // teal - filenames, active states
	Secondary lipgloss.Color // amber - zoom and rotation indicators

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color // primary text
	FgMuted  lipgloss.Color // secondary text
	FgSubtle lipgloss.Color // tertiary text

	// Backgrounds
	BgBase lipgloss.Color // status bar background

	// Borders
	Border lipgloss.Color // panel borders

	// Status colors
	Success lipgloss.Color // decode finished
	Error   lipgloss.Color // decode failures
	Warning lipgloss.Color // pending, degraded

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base     lipgloss.Style // default text
	Muted    lipgloss.Style // dimmed text
	Subtle   lipgloss.Style // very dim text
	Title    lipgloss.Style // bold, bright
	Filename lipgloss.Style // current image name in the status bar
	Position lipgloss.Style // index/total indicator
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Bar      lipgloss.Style // status bar container
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#4ec9b0"),
	Secondary: lipgloss.Color("#e5c07b"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgBase: lipgloss.Color("#1a1a1a"),

	Border: lipgloss.Color("#585858"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#e5c07b"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Filename: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Position: lipgloss.NewStyle().Foreground(t.Secondary),
		Success:  lipgloss.NewStyle().Foreground(t.Success),
		Error:    lipgloss.NewStyle().Foreground(t.Error),
		Warning:  lipgloss.NewStyle().Foreground(t.Warning),
		Bar: lipgloss.NewStyle().
			Background(t.BgBase).
			Foreground(t.FgBase),
	}
}
