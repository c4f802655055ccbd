package reveal

import (
	"time"
	"unicode/utf8"
)

// Schedule is the letter-by-letter variant: rune i starts fading in at
// delay + i*step. It is a pure function of the index and elapsed time, with
// no timer chain and no completion signal.
type Schedule struct {
	runes []rune
	delay time.Duration
	step  time.Duration
}

// NewSchedule builds a letter-by-letter schedule.
func NewSchedule(text string, delay, step time.Duration) Schedule {
	if step < 0 {
		step = 0
	}
	return Schedule{runes: []rune(text), delay: delay, step: step}
}

// Len returns the number of runes scheduled.
func (s Schedule) Len() int { return len(s.runes) }

// At returns when rune i starts to appear.
func (s Schedule) At(i int) time.Duration {
	return s.delay + time.Duration(i)*s.step
}

// End returns when the last rune starts to appear.
func (s Schedule) End() time.Duration {
	if len(s.runes) == 0 {
		return s.delay
	}
	return s.At(len(s.runes) - 1)
}

// Count returns how many runes have started appearing after elapsed.
func (s Schedule) Count(elapsed time.Duration) int {
	if elapsed < s.delay || len(s.runes) == 0 {
		return 0
	}
	if s.step == 0 {
		return len(s.runes)
	}
	n := int((elapsed-s.delay)/s.step) + 1
	return min(n, len(s.runes))
}

// Visible returns the prefix that has started appearing after elapsed.
func (s Schedule) Visible(elapsed time.Duration) string {
	return string(s.runes[:s.Count(elapsed)])
}

// Opacity returns the fade level of rune i in [0, 1] given a fade duration.
func (s Schedule) Opacity(i int, elapsed, fade time.Duration) float64 {
	if i < 0 || i >= len(s.runes) {
		return 0
	}
	since := elapsed - s.At(i)
	switch {
	case since < 0:
		return 0
	case fade <= 0 || since >= fade:
		return 1
	default:
		return float64(since) / float64(fade)
	}
}

// Rune returns rune i of the scheduled text.
func (s Schedule) Rune(i int) rune {
	if i < 0 || i >= len(s.runes) {
		return utf8.RuneError
	}
	return s.runes[i]
}
