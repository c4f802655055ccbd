package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/farewell/pkg/content"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals keep their own
// background instead of a down-converted approximation.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Gold      lipgloss.AdaptiveColor
	Rose      lipgloss.AdaptiveColor

	// Background variants
	Institutional lipgloss.AdaptiveColor
	Timeline      lipgloss.AdaptiveColor
	Closing       lipgloss.AdaptiveColor
	Footer        lipgloss.AdaptiveColor

	// UI Elements
	Border lipgloss.AdaptiveColor
	Muted  lipgloss.AdaptiveColor

	// Styles
	Base    lipgloss.Style
	Title   lipgloss.Style
	Heading lipgloss.Style
	Header  lipgloss.Style

	// Pre-computed per-frame styles
	MutedText   lipgloss.Style
	FadingText  lipgloss.Style
	GoldBold    lipgloss.Style
	Cursor      lipgloss.Style
	Button      lipgloss.Style
	ButtonHover lipgloss.Style
	ButtonPress lipgloss.Style
	Card        lipgloss.Style
	Star        lipgloss.Style
	StarDim     lipgloss.Style
	Status      lipgloss.Style
}

// DefaultTheme returns the farewell theme: deep purple and gold (adaptive).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim
		Gold:      lipgloss.AdaptiveColor{Light: "#9A6B00", Dark: "#F1C40F"}, // Warm gold
		Rose:      lipgloss.AdaptiveColor{Light: "#B0305A", Dark: "#FF79C6"}, // Closing letter

		Institutional: lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#8BE9FD"},
		Timeline:      lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Closing:       lipgloss.AdaptiveColor{Light: "#B0305A", Dark: "#FF79C6"},
		Footer:        lipgloss.AdaptiveColor{Light: "#9A6B00", Dark: "#F1C40F"},

		Border: lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Muted:  lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Title = r.NewStyle().
		Foreground(t.Gold).
		Bold(true)

	t.Heading = r.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.FadingText = r.NewStyle().Foreground(t.Muted).Faint(true)
	t.GoldBold = r.NewStyle().Foreground(t.Gold).Bold(true)
	t.Cursor = r.NewStyle().Foreground(t.Gold).Blink(true)

	t.Button = r.NewStyle().
		Foreground(t.Subtext).
		Padding(0, 2)
	t.ButtonHover = t.Button.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Background(t.Primary).
		Bold(true)
	t.ButtonPress = t.ButtonHover.Background(t.Gold)

	t.Card = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Gold).
		Padding(1, 2)

	t.Star = r.NewStyle().Foreground(ThemeFg("#FFD700")).Bold(true)
	t.StarDim = r.NewStyle().Foreground(ThemeFg("#B8860B"))
	t.Status = r.NewStyle().Foreground(t.Secondary).Italic(true)

	return t
}

// VariantColor returns the accent used for a background variant's drops.
func (t Theme) VariantColor(v content.Variant) lipgloss.AdaptiveColor {
	switch v {
	case content.VariantInstitutional:
		return t.Institutional
	case content.VariantTimeline:
		return t.Timeline
	case content.VariantClosing:
		return t.Closing
	case content.VariantFooter:
		return t.Footer
	default:
		return t.Muted
	}
}

// NewRenderer returns a renderer honouring a theme name: "dark" and "light"
// force the adaptive palette, anything else detects from the terminal.
func NewRenderer(name string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(os.Stdout)
	switch name {
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	}
	return r
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
