package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/farewell/pkg/content"
	"github.com/vanderheijden86/farewell/pkg/deck"
	"github.com/vanderheijden86/farewell/pkg/reveal"
)

// TypewriterModel is section 1: the company message typed out at a fixed
// interval, followed by applause once the root flags it.
type TypewriterModel struct {
	driver  revealDriver
	tw      *reveal.Typewriter
	heading string
	stars   int
}

// NewTypewriterModel builds the institutional section from the deck.
func NewTypewriterModel(d content.Deck) TypewriterModel {
	tw := reveal.NewTypewriter(d.Institutional.Message,
		reveal.WithStartDelay(d.Institutional.StartDelay),
		reveal.WithInterval(d.Timings.TypewriterInterval),
	)
	stars := d.Institutional.ApplauseStars
	if stars <= 0 {
		stars = 5
	}
	return TypewriterModel{
		driver:  newRevealDriver(tw, deck.TypingComplete),
		tw:      tw,
		heading: d.Institutional.Heading,
		stars:   stars,
	}
}

func (m TypewriterModel) ID() int         { return m.driver.id }
func (m TypewriterModel) Kind() deck.Kind { return deck.KindInstitutional }

func (m TypewriterModel) Init() tea.Cmd {
	_, cmd := m.driver.start()
	return cmd
}

func (m TypewriterModel) Update(msg tea.Msg) (sectionModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case revealTickMsg:
		m.driver, cmd, _ = m.driver.step(msg)
	case skipMsg:
		m.driver, cmd = m.driver.skip()
	}
	return m, cmd
}

// Text returns the typed prefix.
func (m TypewriterModel) Text() string { return m.tw.Text() }

// Done reports whether the message is fully typed.
func (m TypewriterModel) Done() bool { return m.tw.Done() }

func (m TypewriterModel) View(ctx viewContext) string {
	t := ctx.theme
	w := bodyWidth(ctx.width)

	lines := []string{t.Heading.Render(m.heading), ""}
	typed := wrapText(m.tw.Text(), w)
	if !m.tw.Done() {
		if len(typed) == 0 {
			typed = []string{""}
		}
		typed[len(typed)-1] += t.Cursor.Render(glyphTyping)
	}
	for _, l := range typed {
		lines = append(lines, t.Base.Render(l))
	}

	lines = append(lines, "")
	if ctx.flag(deck.ApplauseVisible) {
		lines = append(lines, t.RenderStars(m.stars, ctx.frame))
	}
	return block(lines...)
}
