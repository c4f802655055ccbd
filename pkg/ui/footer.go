package ui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/farewell/pkg/content"
	"github.com/vanderheijden86/farewell/pkg/deck"
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// copyMsg asks the footer to copy the letter.
type copyMsg struct{}

// copyResultMsg reports the clipboard outcome back to the footer.
type copyResultMsg struct {
	id  int
	err error
}

// FooterModel is section 5: heart, organiser line, today's date and the
// restart button. y copies the letter to the clipboard.
type FooterModel struct {
	id        int
	organizer string
	letter    string
	status    string
	today     func() time.Time
}

// NewFooterModel builds the footer from the deck.
func NewFooterModel(d content.Deck, today func() time.Time) FooterModel {
	return FooterModel{
		id:        nextComponentID(),
		organizer: d.Footer.Organizer,
		letter:    d.LetterText(),
		today:     today,
	}
}

func (m FooterModel) ID() int         { return m.id }
func (m FooterModel) Kind() deck.Kind { return deck.KindFooter }
func (m FooterModel) Init() tea.Cmd   { return nil }

// Status returns the last clipboard status line.
func (m FooterModel) Status() string { return m.status }

func (m FooterModel) Update(msg tea.Msg) (sectionModel, tea.Cmd) {
	switch msg := msg.(type) {
	case copyMsg:
		id, text := m.id, m.letter
		return m, func() tea.Msg {
			return copyResultMsg{id: id, err: writeClipboard(text)}
		}
	case copyResultMsg:
		if msg.id != m.id {
			return m, nil
		}
		if msg.err != nil {
			m.status = "No se pudo copiar la carta: " + msg.err.Error()
		} else {
			m.status = "Carta copiada al portapapeles"
		}
	}
	return m, nil
}

func (m FooterModel) View(ctx viewContext) string {
	t := ctx.theme
	heart := t.Renderer.NewStyle().Foreground(t.Rose).Bold(true)
	if (ctx.frame/30)%2 == 1 {
		heart = heart.Faint(true)
	}
	lines := []string{
		heart.Render(glyphHeart),
		"",
		t.Base.Render(m.organizer),
		t.MutedText.Render(FormatSpanishDate(m.today())),
	}
	if m.status != "" {
		lines = append(lines, "", t.Status.Render(m.status))
	}
	return block(lines...)
}
