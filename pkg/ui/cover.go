package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/farewell/pkg/content"
	"github.com/vanderheijden86/farewell/pkg/deck"
	"github.com/vanderheijden86/farewell/pkg/reveal"
)

// coverFade is how long a letter takes to go from faint to full.
const coverFade = 300 * time.Millisecond

// CoverModel is section 0: logo, portrait and the honoree's name spelled
// out letter by letter. It holds no timers; the root's frame ticks re-render
// it and the elapsed time decides what is visible.
type CoverModel struct {
	id           int
	organization string
	honoree      string
	lead         reveal.Schedule
	name         reveal.Schedule
}

// NewCoverModel builds the cover from the deck.
func NewCoverModel(d content.Deck) CoverModel {
	step := d.Cover.Step
	if step <= 0 {
		step = reveal.DefaultLetterStep
	}
	return CoverModel{
		id:           nextComponentID(),
		organization: d.Organization,
		honoree:      d.Honoree,
		lead:         reveal.NewSchedule(d.Cover.Lead, d.Cover.LeadDelay, step),
		name:         reveal.NewSchedule(d.Honoree, d.Cover.NameDelay, step),
	}
}

func (m CoverModel) ID() int         { return m.id }
func (m CoverModel) Kind() deck.Kind { return deck.KindCover }
func (m CoverModel) Init() tea.Cmd   { return nil }

func (m CoverModel) Update(tea.Msg) (sectionModel, tea.Cmd) { return m, nil }

// Revealed reports whether both lines are fully visible after elapsed.
func (m CoverModel) Revealed(elapsed time.Duration) bool {
	return m.lead.Count(elapsed) == m.lead.Len() && m.name.Count(elapsed) == m.name.Len()
}

func (m CoverModel) View(ctx viewContext) string {
	t := ctx.theme
	logo := t.GoldBold.Render(glyphLogo + " " + m.organization + " " + glyphLogo)

	portrait := t.Card.
		Width(12).
		Align(lipgloss.Center).
		Render(t.Title.Render(initials(m.honoree)))

	lines := []string{
		logo,
		"",
		portrait,
		"",
		renderSchedule(t, m.lead, ctx.elapsed, t.MutedText),
		renderSchedule(t, m.name, ctx.elapsed, t.Title),
	}
	return block(lines...)
}

// renderSchedule draws the visible prefix of s, fading the newest letters,
// padded with spaces so the centered line does not shift as it grows.
func renderSchedule(t Theme, s reveal.Schedule, elapsed time.Duration, full lipgloss.Style) string {
	var b strings.Builder
	n := s.Count(elapsed)
	for i := 0; i < n; i++ {
		ch := string(s.Rune(i))
		switch o := s.Opacity(i, elapsed, coverFade); {
		case o >= 1:
			b.WriteString(full.Render(ch))
		case o >= 0.5:
			b.WriteString(t.MutedText.Render(ch))
		default:
			b.WriteString(t.FadingText.Render(ch))
		}
	}
	for i := n; i < s.Len(); i++ {
		b.WriteByte(' ')
	}
	return b.String()
}
