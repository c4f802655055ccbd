package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
)

// Layout rows outside the section body.
const (
	headerRows = 2 // progress bar + blank
	footerRows = 3 // blank + buttons + help
	maxBody    = 76
)

// Glyphs shared by the sections.
const (
	glyphLogo      = "✦"
	glyphHeart     = "♥"
	glyphStar      = "★"
	glyphTyping    = "▌"
	glyphDotOn     = "●"
	glyphDotOff    = "○"
	glyphCursor    = "◦"
	glyphCursorHov = "◎"
	glyphCursorHit = "✸"
	glyphImage     = "▣"
	glyphVideo     = "▶"
)

// RenderButton renders a clickable label in its idle, hover or pressed
// state. All three have the same width so hit zones stay put.
func (t Theme) RenderButton(label string, hovered, pressed bool) string {
	switch {
	case hovered && pressed:
		return t.ButtonPress.Render(label)
	case hovered:
		return t.ButtonHover.Render(label)
	default:
		return t.Button.Render(label)
	}
}

// RenderDots renders the carousel dot indicators.
func (t Theme) RenderDots(n, current int) string {
	parts := make([]string, n)
	for i := range parts {
		if i == current {
			parts[i] = t.GoldBold.Render(glyphDotOn)
		} else {
			parts[i] = t.MutedText.Render(glyphDotOff)
		}
	}
	return strings.Join(parts, " ")
}

// RenderStars renders count applause stars; lit alternates with the frame
// counter so the row pulses.
func (t Theme) RenderStars(count, frame int) string {
	parts := make([]string, count)
	for i := range parts {
		if (frame/15+i)%2 == 0 {
			parts[i] = t.Star.Render(glyphStar)
		} else {
			parts[i] = t.StarDim.Render(glyphStar)
		}
	}
	return strings.Join(parts, " ")
}

// block stacks lines centered on each other. The root model centers the
// block on screen and fills the margins with particles.
func block(lines ...string) string {
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
