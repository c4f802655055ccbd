package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/farewell/pkg/carousel"
	"github.com/vanderheijden86/farewell/pkg/content"
	"github.com/vanderheijden86/farewell/pkg/debug"
	"github.com/vanderheijden86/farewell/pkg/deck"
)

// CarouselModel is section 3: the memories slideshow. Auto-advance ticks on
// a fixed cadence; manual moves leave the pending tick alone.
type CarouselModel struct {
	id     int
	tag    int
	badge  string
	slides []content.Slide
	c      *carousel.Carousel
	now    func() time.Time
}

// NewCarouselModel builds the slideshow from the deck. now is the clock the
// transition guard and auto-advance are measured on.
func NewCarouselModel(d content.Deck, now func() time.Time) CarouselModel {
	var opts []carousel.Option
	if d.Timings.CarouselTransition > 0 {
		opts = append(opts, carousel.WithTransition(d.Timings.CarouselTransition))
	}
	if d.Timings.CarouselAutoAdvance > 0 {
		opts = append(opts, carousel.WithAutoAdvance(d.Timings.CarouselAutoAdvance))
	}
	return CarouselModel{
		id:     nextComponentID(),
		badge:  d.Carousel.Badge,
		slides: d.Carousel.Slides,
		c:      carousel.New(len(d.Carousel.Slides), now(), opts...),
		now:    now,
	}
}

func (m CarouselModel) ID() int         { return m.id }
func (m CarouselModel) Kind() deck.Kind { return deck.KindCarousel }

// Index returns the current slide.
func (m CarouselModel) Index() int { return m.c.Index() }

func (m CarouselModel) Init() tea.Cmd {
	return m.scheduleAutoAdvance()
}

func (m CarouselModel) scheduleAutoAdvance() tea.Cmd {
	period := m.c.AutoAdvancePeriod()
	if period <= 0 || m.c.Len() < 2 {
		return nil
	}
	id, tag := m.id, m.tag
	return tea.Tick(period, func(time.Time) tea.Msg {
		return autoAdvanceMsg{id: id, tag: tag}
	})
}

func (m CarouselModel) Update(msg tea.Msg) (sectionModel, tea.Cmd) {
	switch msg := msg.(type) {
	case autoAdvanceMsg:
		if msg.id != m.id || msg.tag != m.tag {
			return m, nil
		}
		m.c.AutoAdvance(m.now())
		m.tag++
		return m, m.scheduleAutoAdvance()

	case slideMsg:
		now := m.now()
		var moved bool
		if msg.jump >= 0 {
			var err error
			moved, err = m.c.Jump(msg.jump, now)
			if err != nil {
				debug.Log("carousel: %v", err)
				return m, nil
			}
		} else if msg.delta > 0 {
			moved = m.c.Next(now)
		} else if msg.delta < 0 {
			moved = m.c.Prev(now)
		}
		if moved {
			debug.Log("carousel: slide %d", m.c.Index())
		}
		return m, nil

	case frameMsg:
		m.c.Animate()
	}
	return m, nil
}

func (m CarouselModel) View(ctx viewContext) string {
	t := ctx.theme
	if len(m.slides) == 0 {
		return t.GoldBold.Render(m.badge)
	}
	w := bodyWidth(ctx.width)
	cardWidth := min(w-4, 56)
	s := m.slides[m.c.Index()]

	icon := glyphImage
	if s.Media == content.MediaVideo {
		icon = glyphVideo
	}
	desc := wrapText(s.Description, cardWidth-6)
	body := []string{
		t.MutedText.Render(icon + "  " + truncate(s.Path, cardWidth-10)),
		"",
		t.Title.Render(s.Title),
		"",
	}
	for _, l := range desc {
		body = append(body, t.Base.Render(l))
	}
	card := t.Card.Width(cardWidth).Render(strings.Join(body, "\n"))

	// Shift the card while the spring settles.
	if off := m.c.Offset(); off != 0 {
		card = shiftBlock(card, off)
	}

	lines := []string{
		t.GoldBold.Render(m.badge),
		t.MutedText.Render(fmt.Sprintf("%d / %d", m.c.Index()+1, m.c.Len())),
		"",
		card,
		"",
		t.RenderDots(m.c.Len(), m.c.Index()),
	}
	return block(lines...)
}

// shiftBlock moves every line of block right (off > 0) or left (off < 0)
// by padding the opposite side, keeping the block's width balanced.
func shiftBlock(block string, off int) string {
	pad := strings.Repeat(" ", abs(off))
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		if off > 0 {
			lines[i] = pad + l
		} else {
			lines[i] = l + pad
		}
	}
	return strings.Join(lines, "\n")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
