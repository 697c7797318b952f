// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"sort"

	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/redguard/internal/core/contract"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
	"redguard": {
		Primary:    lipgloss.Color("#FF3B3B"),
		Secondary:  lipgloss.Color("#FF6666"),
		Foreground: lipgloss.Color("#D4D4DD"),
		Muted:      lipgloss.Color("#9A9AA2"),
		Background: lipgloss.Color("#050509"),
		Surface:    lipgloss.Color("#1a1a1a"),
		Success:    lipgloss.Color("#22C55E"),
		Warning:    lipgloss.Color("#F59E0B"),
		Error:      lipgloss.Color("#EF4444"),
	},
}

// Highlight colours per severity. These are fixed across themes so the legend
// always means the same thing.
var severityColors = map[contract.Severity]lipgloss.Color{
	contract.SeverityHigh:    lipgloss.Color("#FF3B3B"),
	contract.SeverityMedium:  lipgloss.Color("#FFB547"),
	contract.SeverityLow:     lipgloss.Color("#FFF86A"),
	contract.SeverityUnknown: lipgloss.Color("#6B7280"),
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	HeaderStyle  lipgloss.Style
	DividerStyle lipgloss.Style
	MutedStyle   lipgloss.Style
	ErrorStyle   lipgloss.Style

	// Document panel.
	DocumentTextStyle lipgloss.Style
	PanelStyle        lipgloss.Style
	PanelTitleStyle   lipgloss.Style
	ScannerStyle      lipgloss.Style
	ScannerTrailStyle lipgloss.Style

	// Detail panel.
	DetailHeadingStyle lipgloss.Style
	DetailLabelStyle   lipgloss.Style
	FixBoxStyle        lipgloss.Style
	HelpStyle          lipgloss.Style
	HelpKeyStyle       lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error)

	DocumentTextStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)
	PanelTitleStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	ScannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF2D2D")).
		Bold(true)
	ScannerTrailStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7f1d1d"))

	DetailHeadingStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	DetailLabelStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	FixBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

// SeverityColor returns the highlight colour for a severity.
func SeverityColor(s contract.Severity) lipgloss.Color {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return severityColors[contract.SeverityUnknown]
}

// HighlightStyle returns the style of a highlighted run. Inactive highlights
// render as plain document text until the scan reveals them.
func HighlightStyle(s contract.Severity, active, selected bool) lipgloss.Style {
	if !active {
		st := DocumentTextStyle
		if selected {
			st = st.Underline(true)
		}
		return st
	}

	st := lipgloss.NewStyle().
		Background(SeverityColor(s)).
		Foreground(lipgloss.Color("#111111"))
	if selected {
		st = st.Bold(true).Underline(true)
	}
	return st
}

// BadgeStyle returns the severity badge style used by the detail panel.
func BadgeStyle(s contract.Severity) lipgloss.Style {
	fg := lipgloss.Color("#FFFFFF")
	if s == contract.SeverityLow {
		fg = lipgloss.Color("#000000")
	}
	return lipgloss.NewStyle().
		Background(SeverityColor(s)).
		Foreground(fg).
		Bold(true).
		Padding(0, 1)
}

func hexPtr(c lipgloss.Color) *string {
	s := string(c)
	return &s
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := hexPtr(CurrentPalette.Foreground)
	primary := hexPtr(CurrentPalette.Primary)
	secondary := hexPtr(CurrentPalette.Secondary)
	muted := hexPtr(CurrentPalette.Muted)

	var zero uint
	cfg.Document.Color = fg
	cfg.Document.Margin = &zero
	cfg.Paragraph.Color = fg
	cfg.Heading.Color = primary
	cfg.BlockQuote.Color = muted
	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary
	cfg.Code.Color = secondary

	return cfg
}
