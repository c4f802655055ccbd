package ui

import (
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/farewell/pkg/content"
	"github.com/vanderheijden86/farewell/pkg/deck"
	"github.com/vanderheijden86/farewell/pkg/reveal"
)

// LetterModel is section 4: the closing letter typed paragraph by
// paragraph inside a scrollable viewport that follows the cursor until the
// reader scrolls.
type LetterModel struct {
	driver  revealDriver
	letter  *reveal.Letter
	title   string
	closing string
	theme   Theme
	vp      viewport.Model
	follow  bool
}

// NewLetterModel builds the letter from the deck. rng drives the per-rune
// jitter; nil seeds randomly.
func NewLetterModel(d content.Deck, theme Theme, rng *rand.Rand, width, height int) LetterModel {
	letter := reveal.NewLetter(d.Letter.Paragraphs, d.Letter.Signature,
		reveal.WithCharDelay(reveal.Jitter(rng, d.Timings.CharDelay, d.Timings.CharJitter)),
		reveal.WithParagraphPause(d.Timings.ParagraphPause),
		reveal.WithSignaturePause(d.Timings.SignaturePause),
	)
	m := LetterModel{
		driver:  newRevealDriver(letter, deck.LetterComplete),
		letter:  letter,
		title:   d.Letter.Title,
		closing: d.Letter.Closing,
		theme:   theme,
		follow:  true,
	}
	m.vp = viewport.New(bodyWidth(width), letterHeight(height))
	m.refresh()
	return m
}

func letterHeight(termHeight int) int {
	return max(termHeight-headerRows-footerRows-2, 3)
}

func (m LetterModel) ID() int         { return m.driver.id }
func (m LetterModel) Kind() deck.Kind { return deck.KindClosing }

// Letter exposes the revealer for inspection.
func (m LetterModel) Letter() *reveal.Letter { return m.letter }

func (m LetterModel) Init() tea.Cmd {
	_, cmd := m.driver.start()
	return cmd
}

func (m LetterModel) Update(msg tea.Msg) (sectionModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case revealTickMsg:
		var handled bool
		m.driver, cmd, handled = m.driver.step(msg)
		if !handled {
			return m, nil
		}
	case skipMsg:
		m.driver, cmd = m.driver.skip()
	case tea.WindowSizeMsg:
		m.vp.Width = bodyWidth(msg.Width)
		m.vp.Height = letterHeight(msg.Height)
	case tea.KeyMsg, tea.MouseMsg:
		m.vp, cmd = m.vp.Update(msg)
		m.follow = m.vp.AtBottom()
		return m, cmd
	default:
		return m, nil
	}
	m.refresh()
	return m, cmd
}

// refresh re-renders the letter text into the viewport.
func (m *LetterModel) refresh() {
	t := m.theme
	w := m.vp.Width
	var lines []string
	paras := m.letter.Paragraphs()
	for i, p := range paras {
		wrapped := wrapText(p, w)
		if len(wrapped) == 0 {
			wrapped = []string{""}
		}
		if i == len(paras)-1 && m.letter.Cursor() {
			wrapped[len(wrapped)-1] += t.Cursor.Render(glyphTyping)
		}
		for _, l := range wrapped {
			lines = append(lines, t.Base.Render(l))
		}
	}
	if m.letter.Signed() {
		lines = append(lines, "")
		if m.closing != "" {
			lines = append(lines, t.MutedText.Render(m.closing))
		}
		lines = append(lines, t.Title.Render(m.letter.Signature()))
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.follow {
		m.vp.GotoBottom()
	}
}

func (m LetterModel) View(ctx viewContext) string {
	t := ctx.theme
	head := t.Heading.Render(glyphHeart + " " + m.title + " " + glyphHeart)
	return block(head, "", m.vp.View())
}
