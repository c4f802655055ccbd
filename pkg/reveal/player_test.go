package reveal

import (
	"testing"
	"time"

	"github.com/vanderheijden86/farewell/pkg/clock"

	"go.uber.org/goleak"
)

func newFakeLetter(completions *int, paragraphs ...string) *Letter {
	return NewLetter(paragraphs, "Biox",
		WithCharDelay(Fixed(100*time.Millisecond)),
		WithParagraphPause(800*time.Millisecond),
		WithSignaturePause(time.Second),
		WithOnComplete(func() { *completions++ }),
	)
}

func TestPlayerRunsToCompletion(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	completions := 0
	var last string
	p := NewPlayer(newFakeLetter(&completions, "Hi,", "", "Bye."), fake, func(s string) { last = s })

	p.Mount()
	fake.Advance(time.Minute)

	if last != "Hi,\n\nBye." {
		t.Errorf("expected full letter, got %q", last)
	}
	if completions != 1 {
		t.Errorf("expected one completion, got %d", completions)
	}
	if p.Active() || fake.Pending() != 0 {
		t.Error("expected no pending ticks after completion")
	}
}

func TestPlayerUnmountPreventsPosthumousCompletion(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	completions := 0
	updates := 0
	p := NewPlayer(newFakeLetter(&completions, "Querido Herbert,"), fake, func(string) { updates++ })

	p.Mount()
	fake.Advance(350 * time.Millisecond)
	before := updates

	p.Unmount()
	fake.Advance(time.Hour)

	if completions != 0 {
		t.Errorf("completion fired after unmount (%d)", completions)
	}
	if updates != before {
		t.Errorf("updates continued after unmount: %d -> %d", before, updates)
	}
	if fake.Pending() != 0 {
		t.Errorf("expected no pending timers, got %d", fake.Pending())
	}
}

func TestPlayerRemountDoesNotShareState(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	oldDone, newDone := 0, 0
	var oldText, newText string

	first := NewPlayer(newFakeLetter(&oldDone, "uno", "dos"), fake, func(s string) { oldText = s })
	first.Mount()
	fake.Advance(250 * time.Millisecond)
	first.Unmount()
	frozen := oldText

	second := NewPlayer(newFakeLetter(&newDone, "tres"), fake, func(s string) { newText = s })
	second.Mount()
	fake.Advance(time.Minute)

	if oldText != frozen || oldDone != 0 {
		t.Errorf("unmounted player changed: %q -> %q, completions=%d", frozen, oldText, oldDone)
	}
	if newText != "tres" || newDone != 1 {
		t.Errorf("fresh player did not complete: %q, completions=%d", newText, newDone)
	}
}

func TestPlayerSkipCancelsPendingTick(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	completions := 0
	updates := 0
	var last string
	p := NewPlayer(newFakeLetter(&completions, "Hasta pronto"), fake, func(s string) {
		updates++
		last = s
	})

	p.Mount()
	fake.Advance(150 * time.Millisecond)
	p.Skip()
	if last != "Hasta pronto" || completions != 1 {
		t.Fatalf("skip did not finish the letter: %q / %d", last, completions)
	}
	if fake.Pending() != 0 {
		t.Errorf("expected pending tick to be cancelled, got %d", fake.Pending())
	}

	after := updates
	fake.Advance(time.Hour)
	p.Skip()
	if updates != after || completions != 1 {
		t.Errorf("state changed after skip: updates %d -> %d, completions %d", after, updates, completions)
	}
}

func TestPlayerMountOnce(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	completions := 0
	p := NewPlayer(NewTypewriter("ab", WithOnComplete(func() { completions++ })), fake, nil)
	p.Mount()
	p.Mount()
	if fake.Pending() != 1 {
		t.Errorf("expected a single pending tick, got %d", fake.Pending())
	}
	p.Unmount()
	p.Mount()
	if fake.Pending() != 0 {
		t.Error("mount after unmount must not schedule")
	}
}

func TestPlayerRealClockCompletes(t *testing.T) {
	defer goleak.VerifyNone(t)

	done := make(chan struct{})
	l := NewLetter([]string{"ok", "", "fin"}, "Biox",
		WithCharDelay(Fixed(time.Millisecond)),
		WithParagraphPause(time.Millisecond),
		WithSignaturePause(time.Millisecond),
		WithOnComplete(func() { close(done) }),
	)
	p := NewPlayer(l, clock.Real{}, nil)
	p.Mount()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("letter did not complete on the real clock")
	}
	p.Unmount()
}

// Zero delays let the timer callback run before AfterFunc returns.
func TestPlayerRealClockZeroDelays(t *testing.T) {
	defer goleak.VerifyNone(t)

	for i := 0; i < 200; i++ {
		done := make(chan struct{})
		l := NewLetter([]string{"abc", "de"}, "Biox",
			WithCharDelay(Fixed(0)),
			WithParagraphPause(0),
			WithSignaturePause(0),
			WithOnComplete(func() { close(done) }),
		)
		p := NewPlayer(l, clock.Real{}, nil)
		p.Mount()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("run %d: letter stalled with zero delays", i)
		}
		p.Unmount()
	}
}

func TestPlayerRealClockUnmountLeavesNothingRunning(t *testing.T) {
	defer goleak.VerifyNone(t)

	fired := make(chan struct{}, 1)
	tw := NewTypewriter("never finishes",
		WithStartDelay(time.Hour),
		WithOnComplete(func() { fired <- struct{}{} }),
	)
	p := NewPlayer(tw, clock.Real{}, nil)
	p.Mount()
	p.Unmount()

	select {
	case <-fired:
		t.Fatal("completion after unmount")
	case <-time.After(20 * time.Millisecond):
	}
	if p.Active() {
		t.Error("expected no pending timer after unmount")
	}
}
