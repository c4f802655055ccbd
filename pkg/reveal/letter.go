package reveal

import (
	"strings"
	"time"
)

// Phase describes what a Letter is waiting for.
type Phase int

const (
	PhaseIdle      Phase = iota // not started
	PhaseTyping                 // revealing runes of the current paragraph
	PhasePausing                // paragraph finished, waiting to move on
	PhaseSigning                // all paragraphs shown, waiting for the signature
	PhaseDone                   // signature visible, completion fired
)

// String returns a human-readable label for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTyping:
		return "typing"
	case PhasePausing:
		return "pausing"
	case PhaseSigning:
		return "signing"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Letter is the paragraph typewriter used by the closing letter. It walks
// paragraphs in order, reveals each one rune at a time with a per-rune delay,
// pauses between paragraphs, and shows the signature after a final pause.
type Letter struct {
	paragraphs [][]rune
	signature  string
	paragraph  int
	offset     int
	started    bool
	signed     bool
	opts       options
	complete   once
}

var _ Revealer = (*Letter)(nil)

// NewLetter creates a paragraph typewriter. Without WithCharDelay the
// per-rune delay is jittered over [80ms, 120ms).
func NewLetter(paragraphs []string, signature string, opts ...Option) *Letter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.charDelay == nil {
		o.charDelay = Jitter(nil, DefaultCharBase, DefaultCharSpread)
	}
	runes := make([][]rune, len(paragraphs))
	for i, p := range paragraphs {
		runes[i] = []rune(p)
	}
	return &Letter{
		paragraphs: runes,
		signature:  signature,
		opts:       o,
		complete:   once{fn: o.onComplete},
	}
}

// Start implements Revealer. A letter without paragraphs signs immediately.
func (l *Letter) Start() (time.Duration, bool) {
	if l.complete.fired {
		return 0, false
	}
	if len(l.paragraphs) == 0 {
		l.finish()
		return 0, false
	}
	l.started = true
	return l.nextDelay(), true
}

// Step implements Revealer.
func (l *Letter) Step() (time.Duration, bool) {
	if l.complete.fired || !l.started {
		return 0, false
	}
	switch {
	case l.paragraph >= len(l.paragraphs):
		l.finish()
		return 0, false
	case l.offset < len(l.paragraphs[l.paragraph]):
		l.offset++
	default:
		l.paragraph++
		l.offset = 0
	}
	return l.nextDelay(), true
}

// SkipToEnd implements Revealer. Later calls and later steps are no-ops.
func (l *Letter) SkipToEnd() {
	if l.complete.fired {
		return
	}
	l.paragraph = len(l.paragraphs)
	l.offset = 0
	l.finish()
}

func (l *Letter) finish() {
	l.signed = true
	l.complete.fire()
}

func (l *Letter) nextDelay() time.Duration {
	switch l.Phase() {
	case PhaseSigning:
		return l.opts.signaturePause
	case PhasePausing:
		return l.opts.paragraphPause
	default:
		return l.opts.charDelay()
	}
}

// Phase returns what the letter is currently waiting for.
func (l *Letter) Phase() Phase {
	switch {
	case l.complete.fired:
		return PhaseDone
	case !l.started:
		return PhaseIdle
	case l.paragraph >= len(l.paragraphs):
		return PhaseSigning
	case l.offset < len(l.paragraphs[l.paragraph]):
		return PhaseTyping
	default:
		return PhasePausing
	}
}

// Paragraphs returns the visible paragraphs: every finished one plus the
// partial current one.
func (l *Letter) Paragraphs() []string {
	n := min(l.paragraph+1, len(l.paragraphs))
	if !l.started && !l.complete.fired {
		n = min(1, len(l.paragraphs))
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if i == l.paragraph {
			out = append(out, string(l.paragraphs[i][:l.offset]))
			continue
		}
		out = append(out, string(l.paragraphs[i]))
	}
	return out
}

// Text implements Revealer. Paragraphs are joined with newlines.
func (l *Letter) Text() string {
	return strings.Join(l.Paragraphs(), "\n")
}

// Position returns the current paragraph index and rune offset.
func (l *Letter) Position() (paragraph, offset int) {
	return l.paragraph, l.offset
}

// Cursor reports whether the typing cursor should be drawn, which is while
// the current paragraph is still being typed.
func (l *Letter) Cursor() bool {
	return l.Phase() == PhaseTyping
}

// Signed reports whether the signature is visible.
func (l *Letter) Signed() bool { return l.signed }

// Signature returns the signature text.
func (l *Letter) Signature() string { return l.signature }

// Done implements Revealer.
func (l *Letter) Done() bool { return l.complete.fired }

// Len returns the paragraph count.
func (l *Letter) Len() int { return len(l.paragraphs) }
