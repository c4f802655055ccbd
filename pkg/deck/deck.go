// Package deck holds the presentation state machine: an ordered list of
// sections, the index of the visible one, and the per-section completion
// flags that unlock "continue" affordances.
//
// Navigation clamps at both ends instead of wrapping. Every change of the
// current section resets all flags, which forces whatever was mounted for
// the previous section to be rebuilt from scratch on a revisit.
package deck

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned by JumpTo for an index outside the deck.
var ErrOutOfRange = errors.New("section index out of range")

// Kind identifies what a section renders.
type Kind string

const (
	KindCover         Kind = "cover"
	KindInstitutional Kind = "institutional"
	KindTimeline      Kind = "timeline"
	KindCarousel      Kind = "carousel"
	KindClosing       Kind = "closing"
	KindFooter        Kind = "footer"
)

// DefaultKinds is the order of the stock farewell deck.
var DefaultKinds = []Kind{
	KindCover,
	KindInstitutional,
	KindTimeline,
	KindCarousel,
	KindClosing,
	KindFooter,
}

// Section is one full-screen stop in the presentation.
type Section struct {
	Index int
	Name  string // cosmetic label
	Kind  Kind
}

// Flag is a transient, per-section completion marker.
type Flag int

const (
	TypingComplete  Flag = iota // institutional typewriter finished
	ApplauseVisible             // applause shown after the typewriter
	LetterComplete              // closing letter finished or skipped
	numFlags
)

// String returns a human-readable label for the flag.
func (f Flag) String() string {
	switch f {
	case TypingComplete:
		return "typing_complete"
	case ApplauseVisible:
		return "applause_visible"
	case LetterComplete:
		return "letter_complete"
	default:
		return "unknown"
	}
}

// ChangeFunc observes a section change. Flags are already reset when it runs.
type ChangeFunc func(from, to Section)

// Controller owns the current section index. Nothing else mutates it.
type Controller struct {
	sections  []Section
	current   int
	flags     [numFlags]bool
	observers []ChangeFunc
}

// New creates a controller positioned on the first section. Names are used
// for both the label and the kind; an empty deck gets the default kinds.
func New(kinds ...Kind) *Controller {
	if len(kinds) == 0 {
		kinds = DefaultKinds
	}
	sections := make([]Section, len(kinds))
	for i, k := range kinds {
		sections[i] = Section{Index: i, Name: string(k), Kind: k}
	}
	return &Controller{sections: sections}
}

// Sections returns a copy of the ordered section list.
func (c *Controller) Sections() []Section {
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// Len returns the number of sections.
func (c *Controller) Len() int { return len(c.sections) }

// Index returns the current section index.
func (c *Controller) Index() int { return c.current }

// Current returns the visible section.
func (c *Controller) Current() Section { return c.sections[c.current] }

// IsFirst reports whether the first section is visible.
func (c *Controller) IsFirst() bool { return c.current == 0 }

// IsLast reports whether the last section is visible.
func (c *Controller) IsLast() bool { return c.current == len(c.sections)-1 }

// Progress returns how far through the deck we are, in [0, 1].
func (c *Controller) Progress() float64 {
	if len(c.sections) <= 1 {
		return 1
	}
	return float64(c.current) / float64(len(c.sections)-1)
}

// Advance moves to the next section, saturating at the last one.
func (c *Controller) Advance() {
	c.set(min(c.current+1, len(c.sections)-1))
}

// Retreat moves to the previous section, saturating at the first one.
func (c *Controller) Retreat() {
	c.set(max(c.current-1, 0))
}

// JumpTo moves to an arbitrary section. In practice only 0 is ever passed;
// an invalid index is a programming error and leaves the state untouched.
func (c *Controller) JumpTo(index int) error {
	if index < 0 || index >= len(c.sections) {
		return fmt.Errorf("jump to %d of %d: %w", index, len(c.sections), ErrOutOfRange)
	}
	c.set(index)
	return nil
}

// Restart returns to the first section (the footer's "return to start").
func (c *Controller) Restart() {
	_ = c.JumpTo(0)
}

// Complete sets a flag on the current section.
func (c *Controller) Complete(f Flag) {
	if f < 0 || f >= numFlags {
		return
	}
	c.flags[f] = true
}

// Flag reports whether a flag is set on the current section.
func (c *Controller) Flag(f Flag) bool {
	if f < 0 || f >= numFlags {
		return false
	}
	return c.flags[f]
}

// ResetFlags clears every flag without moving. Used when the current
// section is remounted in place.
func (c *Controller) ResetFlags() {
	c.flags = [numFlags]bool{}
}

// AnyFlag reports whether any flag is set.
func (c *Controller) AnyFlag() bool {
	for _, v := range c.flags {
		if v {
			return true
		}
	}
	return false
}

// OnChange registers an observer for section changes.
func (c *Controller) OnChange(fn ChangeFunc) {
	if fn != nil {
		c.observers = append(c.observers, fn)
	}
}

func (c *Controller) set(index int) {
	if index == c.current {
		return
	}
	from := c.sections[c.current]
	c.current = index
	c.flags = [numFlags]bool{}
	to := c.sections[c.current]
	for _, fn := range c.observers {
		fn(from, to)
	}
}
