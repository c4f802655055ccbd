// Package carousel implements the memories slideshow state: an index that
// wraps around, a transition guard that swallows input while a slide change
// is animating, and a fixed auto-advance cadence. Time is passed in explicitly so
// the owner decides which clock drives it.
package carousel

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Stock slideshow pacing.
const (
	DefaultTransition  = 600 * time.Millisecond
	DefaultAutoAdvance = 4 * time.Second
)

// ErrOutOfRange is returned by Jump for an invalid slide index.
var ErrOutOfRange = errors.New("slide index out of range")

// Carousel is the slideshow state machine. The zero value is not usable;
// build one with New.
type Carousel struct {
	count       int
	index       int
	transition  time.Duration
	autoAdvance time.Duration

	busyUntil time.Time
	// Auto-advance runs on a fixed cadence from construction; manual moves
	// do not shift it.
	nextAuto time.Time

	// Spring-animated horizontal offset of the incoming slide, in cells.
	spring   harmonica.Spring
	offset   float64
	velocity float64
}

// Option configures a Carousel.
type Option func(*Carousel)

// WithTransition sets how long input is ignored after a move.
func WithTransition(d time.Duration) Option {
	return func(c *Carousel) {
		c.transition = d
	}
}

// WithAutoAdvance sets the auto-advance period. Zero disables it.
func WithAutoAdvance(d time.Duration) Option {
	return func(c *Carousel) {
		c.autoAdvance = d
	}
}

// New creates a carousel over count slides, starting at slide 0.
func New(count int, now time.Time, opts ...Option) *Carousel {
	c := &Carousel{
		count:       max(count, 0),
		transition:  DefaultTransition,
		autoAdvance: DefaultAutoAdvance,
		spring:      harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.5),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.nextAuto = now.Add(c.autoAdvance)
	return c
}

// Len returns the slide count.
func (c *Carousel) Len() int { return c.count }

// Index returns the current slide.
func (c *Carousel) Index() int { return c.index }

// Transitioning reports whether a move is still animating at now.
func (c *Carousel) Transitioning(now time.Time) bool {
	return now.Before(c.busyUntil)
}

// Next moves forward, wrapping to the first slide. It reports whether the
// move happened; moves during a transition are dropped.
func (c *Carousel) Next(now time.Time) bool {
	if c.count == 0 {
		return false
	}
	return c.move((c.index+1)%c.count, now, 1)
}

// Prev moves backward, wrapping to the last slide.
func (c *Carousel) Prev(now time.Time) bool {
	if c.count == 0 {
		return false
	}
	return c.move((c.index-1+c.count)%c.count, now, -1)
}

// Jump moves to a specific slide (dot indicator). An invalid index is an
// error; a jump during a transition is dropped and reports false.
func (c *Carousel) Jump(index int, now time.Time) (bool, error) {
	if index < 0 || index >= c.count {
		return false, fmt.Errorf("jump to slide %d of %d: %w", index, c.count, ErrOutOfRange)
	}
	dir := 1
	if index < c.index {
		dir = -1
	}
	return c.move(index, now, dir), nil
}

// AutoAdvanceDue reports whether the next auto-advance beat has been reached.
func (c *Carousel) AutoAdvanceDue(now time.Time) bool {
	if c.autoAdvance <= 0 || c.count < 2 {
		return false
	}
	return !now.Before(c.nextAuto)
}

// AutoAdvance consumes a due beat and moves forward. A beat that lands in a
// transition is spent without moving, like a manual press would be.
func (c *Carousel) AutoAdvance(now time.Time) bool {
	if !c.AutoAdvanceDue(now) {
		return false
	}
	for !now.Before(c.nextAuto) {
		c.nextAuto = c.nextAuto.Add(c.autoAdvance)
	}
	return c.Next(now)
}

// AutoAdvancePeriod returns the configured period.
func (c *Carousel) AutoAdvancePeriod() time.Duration { return c.autoAdvance }

func (c *Carousel) move(to int, now time.Time, dir int) bool {
	if c.Transitioning(now) {
		return false
	}
	if to != c.index {
		// Start the incoming slide off to the side and let the spring settle it.
		c.offset = float64(dir) * 12
		c.velocity = 0
	}
	c.index = to
	c.busyUntil = now.Add(c.transition)
	return true
}

// Animate steps the transition spring one frame toward rest.
func (c *Carousel) Animate() {
	c.offset, c.velocity = c.spring.Update(c.offset, c.velocity, 0)
	if abs(c.offset) < 0.05 && abs(c.velocity) < 0.05 {
		c.offset, c.velocity = 0, 0
	}
}

// Offset returns the current animated offset in whole cells.
func (c *Carousel) Offset() int {
	return int(c.offset + 0.5*sign(c.offset))
}

// Settled reports whether the spring is at rest.
func (c *Carousel) Settled() bool {
	return c.offset == 0 && c.velocity == 0
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}
