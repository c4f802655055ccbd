package ui

import (
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/farewell/pkg/content"
	"github.com/vanderheijden86/farewell/pkg/particles"
)

// layer is a sparse grid of pre-styled glyphs keyed by row then column.
type layer map[int]map[int]string

func (l layer) set(row, col int, glyph string) {
	cols, ok := l[row]
	if !ok {
		cols = make(map[int]string)
		l[row] = cols
	}
	cols[col] = glyph
}

// backdrop is the ambient decoration of one section: one particle field
// per configured direction, tinted by the section variant.
type backdrop struct {
	variant content.Variant
	fields  []*particles.Ambient
}

func newBackdrop(bg content.Background, width, height int, rng *rand.Rand) backdrop {
	b := backdrop{variant: bg.Variant}
	for _, spec := range bg.Ambient {
		b.fields = append(b.fields,
			particles.NewAmbient(particles.ParseDirection(spec.Direction), spec.Count, width, height, rng))
	}
	return b
}

func (b backdrop) resize(width, height int) {
	for _, f := range b.fields {
		f.Resize(width, height)
	}
}

func (b backdrop) tick() {
	for _, f := range b.fields {
		f.Tick()
	}
}

// Len returns the total number of drops.
func (b backdrop) Len() int {
	n := 0
	for _, f := range b.fields {
		n += f.Len()
	}
	return n
}

// paint draws the drops into l.
func (b backdrop) paint(l layer, t Theme) {
	style := t.Renderer.NewStyle().Foreground(t.VariantColor(b.variant)).Faint(true)
	for _, f := range b.fields {
		for _, d := range f.Drops() {
			l.set(int(d.Row), d.Col, style.Render(string(d.Glyph)))
		}
	}
}

// paintTrail draws pointer trail particles into l, brighter while fresh.
func paintTrail(l layer, t Theme, ps []particles.Particle) {
	for _, p := range ps {
		glyph := "·"
		style := t.FadingText
		switch {
		case p.Opacity > 0.6:
			glyph, style = "●", t.GoldBold
		case p.Opacity > 0.3:
			glyph, style = "•", t.Title
		}
		l.set(int(p.Y+0.5), int(p.X+0.5), style.Render(glyph))
	}
}

// composite centers line within width and fills both margins from the
// layer's row.
func composite(line string, row, width int, l layer) string {
	w := lipgloss.Width(line)
	if w >= width {
		return line
	}
	left := (width - w) / 2
	cols := l[row]
	return fill(cols, 0, left) + line + fill(cols, left+w, width)
}

func fill(cols map[int]string, from, to int) string {
	if len(cols) == 0 {
		return strings.Repeat(" ", to-from)
	}
	var b strings.Builder
	for c := from; c < to; c++ {
		if g, ok := cols[c]; ok {
			b.WriteString(g)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
