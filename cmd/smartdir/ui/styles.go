// Package ui provides the visual styling for the smartdir terminal dashboard.
// Uses the Smart Directory brand palette with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Brand palette
var (
	Violet = lipgloss.Color("#5C14EC")
	Navy   = lipgloss.Color("#14044C")
	Pearl  = lipgloss.Color("#FCFBFC")
	Forest = lipgloss.Color("#417B5A")
	Dark   = lipgloss.Color("#1F271B")

	// Light Mode Colors (Default)
	LightBackground = Pearl
	LightForeground = Dark
	LightMuted      = lipgloss.Color("#8A8F88") // dark at 40%
	LightBorder     = lipgloss.Color("#DAD6E6") // navy at 10%

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#120A2E")
	DarkForeground = Pearl
	DarkMuted      = lipgloss.Color("#7E7A93")
	DarkBorder     = lipgloss.Color("#2C2452")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#E53935")
	Success     = Forest
	Warning     = lipgloss.Color("#CA8A04")
	Info        = lipgloss.Color("#2196F3")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Heading    lipgloss.Color
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Heading:    Navy,
		Primary:    Violet,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Heading:    Pearl,
		Primary:    Violet,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme picks dark mode from SMARTDIR_DARK_MODE or a dark COLORFGBG
// background, and light mode otherwise.
func DetectTheme() Theme {
	if v := os.Getenv("SMARTDIR_DARK_MODE"); v != "" {
		if dark, err := strconv.ParseBool(v); err == nil {
			if dark {
				return DarkTheme()
			}
			return LightTheme()
		}
	}

	// Format is usually "foreground;background"
	parts := strings.Split(os.Getenv("COLORFGBG"), ";")
	if len(parts) == 2 {
		if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
		}
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header lipgloss.Style
	Footer lipgloss.Style

	// Tabs
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Text
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Spinner     lipgloss.Style
	Divider     lipgloss.Style
	Badge       lipgloss.Style
	Modal       lipgloss.Style
	Placeholder lipgloss.Style
	Selected    lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Heading).
			Bold(true).
			Padding(0, 2),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		TabActive: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(Pearl).
			Padding(0, 2).
			Bold(true),

		TabInactive: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 2),

		Placeholder: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(1, 0),

		Selected: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// StatusBadge renders a small uppercase badge colored by tone.
func (s Styles) StatusBadge(label string, tone Tone) string {
	style := s.Badge
	switch tone {
	case ToneGood:
		style = style.Foreground(Success)
	case ToneBad:
		style = style.Foreground(Destructive)
	case ToneWarn:
		style = style.Foreground(Warning)
	default:
		style = style.Foreground(s.Theme.Muted)
	}
	return style.Render(strings.ToUpper(label))
}

// Tone selects a badge color.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGood
	ToneWarn
	ToneBad
)

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
