package particles

import "math/rand/v2"

// Direction is which way ambient drops travel.
type Direction int

const (
	Falling Direction = iota
	Rising
)

// String returns the name used in deck files.
func (d Direction) String() string {
	if d == Rising {
		return "rising"
	}
	return "falling"
}

// ParseDirection maps a deck name to a Direction; unknown names fall.
func ParseDirection(s string) Direction {
	if s == "rising" {
		return Rising
	}
	return Falling
}

var dropGlyphs = []rune{'·', '•', '∙', '˚', '✦'}

// Drop is one ambient particle, positioned in cells.
type Drop struct {
	Col   int
	Row   float64
	Speed float64 // rows per tick
	Glyph rune
	Delay int // ticks before the drop starts moving
}

// Ambient is a fixed-size field of drops that wrap vertically.
type Ambient struct {
	dir    Direction
	width  int
	height int
	rng    *rand.Rand
	drops  []Drop
}

// NewAmbient scatters count drops over a width x height area.
func NewAmbient(dir Direction, count, width, height int, rng *rand.Rand) *Ambient {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	a := &Ambient{dir: dir, rng: rng}
	a.drops = make([]Drop, max(count, 0))
	a.Resize(width, height)
	for i := range a.drops {
		a.drops[i] = a.newDrop(true)
	}
	return a
}

func (a *Ambient) newDrop(anywhere bool) Drop {
	d := Drop{
		Col:   a.rng.IntN(a.width),
		Speed: 0.15 + a.rng.Float64()*0.35,
		Glyph: dropGlyphs[a.rng.IntN(len(dropGlyphs))],
		Delay: a.rng.IntN(120),
	}
	switch {
	case anywhere:
		d.Row = a.rng.Float64() * float64(a.height)
	case a.dir == Rising:
		d.Row = float64(a.height - 1)
	default:
		d.Row = 0
	}
	return d
}

// Resize adapts the field to a new screen size, pulling drops back inside.
func (a *Ambient) Resize(width, height int) {
	a.width = max(width, 1)
	a.height = max(height, 1)
	for i := range a.drops {
		if a.drops[i].Col >= a.width {
			a.drops[i].Col = a.rng.IntN(a.width)
		}
		if a.drops[i].Row >= float64(a.height) {
			a.drops[i].Row = a.rng.Float64() * float64(a.height)
		}
	}
}

// Tick moves every drop; drops leaving the screen re-enter on the other side.
func (a *Ambient) Tick() {
	for i := range a.drops {
		d := &a.drops[i]
		if d.Delay > 0 {
			d.Delay--
			continue
		}
		if a.dir == Rising {
			d.Row -= d.Speed
		} else {
			d.Row += d.Speed
		}
		if d.Row < 0 || d.Row >= float64(a.height) {
			*d = a.newDrop(false)
			d.Delay = 0
		}
	}
}

// Drops returns a copy of the field.
func (a *Ambient) Drops() []Drop {
	out := make([]Drop, len(a.drops))
	copy(out, a.drops)
	return out
}

// Direction returns the travel direction.
func (a *Ambient) Direction() Direction { return a.dir }

// Len returns the number of drops.
func (a *Ambient) Len() int { return len(a.drops) }
