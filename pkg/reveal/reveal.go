// Package reveal implements progressive text disclosure as explicit state
// machines. A Revealer never owns a timer: it reports the delay until its
// next step and the caller decides how to wait. That keeps cancellation in
// the caller's hands (stop scheduling and the machine simply stops) and makes
// every variant deterministic under test.
package reveal

import (
	"math/rand/v2"
	"time"
)

// Revealer is the contract shared by the timed variants.
type Revealer interface {
	// Start returns the delay before the first step. ok is false when there
	// is nothing to schedule, in which case the revealer is already done.
	Start() (delay time.Duration, ok bool)
	// Step applies one timer firing and returns the delay to the next one.
	Step() (delay time.Duration, ok bool)
	// Text returns the revealed prefix.
	Text() string
	// Done reports whether the reveal has completed.
	Done() bool
	// SkipToEnd reveals everything and completes. Idempotent.
	SkipToEnd()
}

// DelayFunc returns the delay before the next character.
type DelayFunc func() time.Duration

// Fixed returns a DelayFunc that always waits d.
func Fixed(d time.Duration) DelayFunc {
	return func() time.Duration { return d }
}

// Jitter returns a DelayFunc drawing uniformly from [base, base+spread).
// A nil source uses a randomly seeded one.
func Jitter(src *rand.Rand, base, spread time.Duration) DelayFunc {
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if spread <= 0 {
		return Fixed(base)
	}
	return func() time.Duration {
		return base + time.Duration(src.Int64N(int64(spread)))
	}
}

// Seeded returns a deterministic random source for Jitter.
func Seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Defaults mirror the pacing of the stock presentation.
const (
	DefaultTypewriterInterval = 50 * time.Millisecond
	DefaultCharBase           = 80 * time.Millisecond
	DefaultCharSpread         = 40 * time.Millisecond
	DefaultParagraphPause     = 800 * time.Millisecond
	DefaultSignaturePause     = 1000 * time.Millisecond
	DefaultLetterStep         = 50 * time.Millisecond
)

// Option configures a Typewriter or a Letter.
type Option func(*options)

type options struct {
	onComplete     func()
	startDelay     time.Duration
	interval       time.Duration
	charDelay      DelayFunc
	paragraphPause time.Duration
	signaturePause time.Duration
}

func defaultOptions() options {
	return options{
		interval:       DefaultTypewriterInterval,
		paragraphPause: DefaultParagraphPause,
		signaturePause: DefaultSignaturePause,
	}
}

// WithOnComplete sets the callback invoked exactly once on completion.
func WithOnComplete(fn func()) Option {
	return func(o *options) {
		o.onComplete = fn
	}
}

// WithStartDelay sets the typewriter's delay before typing begins.
func WithStartDelay(d time.Duration) Option {
	return func(o *options) {
		o.startDelay = d
	}
}

// WithInterval sets the typewriter's per-character interval.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithCharDelay sets the letter's per-character delay function.
func WithCharDelay(fn DelayFunc) Option {
	return func(o *options) {
		o.charDelay = fn
	}
}

// WithParagraphPause sets the letter's pause between paragraphs.
func WithParagraphPause(d time.Duration) Option {
	return func(o *options) {
		o.paragraphPause = d
	}
}

// WithSignaturePause sets the letter's pause before the signature shows.
func WithSignaturePause(d time.Duration) Option {
	return func(o *options) {
		o.signaturePause = d
	}
}

// once wraps a completion callback so it can only ever fire one time.
type once struct {
	fired bool
	fn    func()
}

func (o *once) fire() {
	if o.fired {
		return
	}
	o.fired = true
	if o.fn != nil {
		o.fn()
	}
}
