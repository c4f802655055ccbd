package reveal

import "time"

// Typewriter reveals a single string one rune per interval after a start
// delay. Completion fires one interval after the last rune, like a
// repeating timer that notices it has nothing left to type.
type Typewriter struct {
	runes    []rune
	offset   int
	started  bool
	opts     options
	complete once
}

var _ Revealer = (*Typewriter)(nil)

// NewTypewriter creates a typewriter for text.
func NewTypewriter(text string, opts ...Option) *Typewriter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Typewriter{
		runes:    []rune(text),
		opts:     o,
		complete: once{fn: o.onComplete},
	}
}

// Start implements Revealer. Empty text completes immediately.
func (t *Typewriter) Start() (time.Duration, bool) {
	if t.complete.fired {
		return 0, false
	}
	if len(t.runes) == 0 {
		t.complete.fire()
		return 0, false
	}
	t.started = true
	return t.opts.startDelay + t.opts.interval, true
}

// Step implements Revealer.
func (t *Typewriter) Step() (time.Duration, bool) {
	if t.complete.fired || !t.started {
		return 0, false
	}
	if t.offset < len(t.runes) {
		t.offset++
		return t.opts.interval, true
	}
	t.complete.fire()
	return 0, false
}

// SkipToEnd implements Revealer.
func (t *Typewriter) SkipToEnd() {
	t.offset = len(t.runes)
	t.complete.fire()
}

// Text implements Revealer.
func (t *Typewriter) Text() string { return string(t.runes[:t.offset]) }

// Done implements Revealer.
func (t *Typewriter) Done() bool { return t.complete.fired }

// Offset returns how many runes are visible.
func (t *Typewriter) Offset() int { return t.offset }

// Len returns the total rune count.
func (t *Typewriter) Len() int { return len(t.runes) }
