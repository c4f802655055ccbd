package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/farewell/pkg/content"
	"github.com/vanderheijden86/farewell/pkg/deck"
)

// TimelineModel is section 2: milestones that appear one by one on
// alternating sides of a vertical rule.
type TimelineModel struct {
	id         int
	heading    string
	milestones []content.Milestone
}

// NewTimelineModel builds the timeline from the deck.
func NewTimelineModel(d content.Deck) TimelineModel {
	return TimelineModel{
		id:         nextComponentID(),
		heading:    d.Timeline.Heading,
		milestones: d.Timeline.Milestones,
	}
}

func (m TimelineModel) ID() int                                 { return m.id }
func (m TimelineModel) Kind() deck.Kind                         { return deck.KindTimeline }
func (m TimelineModel) Init() tea.Cmd                           { return nil }
func (m TimelineModel) Update(tea.Msg) (sectionModel, tea.Cmd) { return m, nil }

// Visible returns how many milestones are shown at ctx.elapsed.
func (m TimelineModel) Visible(ctx viewContext) int {
	n := 0
	for _, ms := range m.milestones {
		if ctx.elapsed >= ms.Delay {
			n++
		}
	}
	return n
}

func (m TimelineModel) View(ctx viewContext) string {
	t := ctx.theme
	half := bodyWidth(ctx.width)/2 - 2

	lines := []string{t.Heading.Render(m.heading), ""}
	blank := strings.Repeat(" ", half)
	rule := blank + " " + t.MutedText.Render("│") + " " + blank
	for _, ms := range m.milestones {
		if ctx.elapsed < ms.Delay {
			lines = append(lines, rule, rule)
			continue
		}
		label := truncate(ms.Icon+" "+ms.Title, half)
		pad := strings.Repeat(" ", half-runewidth.StringWidth(label))
		dot := t.GoldBold.Render(glyphDotOn)
		if ms.Side == "left" {
			lines = append(lines, pad+t.Base.Render(label)+" "+dot+" "+blank)
		} else {
			lines = append(lines, blank+" "+dot+" "+t.Base.Render(label)+pad)
		}
		lines = append(lines, rule)
	}
	return block(lines...)
}
