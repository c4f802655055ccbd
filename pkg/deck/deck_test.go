package deck

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func TestNewDefaults(t *testing.T) {
	c := New()
	if c.Len() != len(DefaultKinds) {
		t.Fatalf("expected %d sections, got %d", len(DefaultKinds), c.Len())
	}
	if c.Index() != 0 {
		t.Errorf("expected to start at 0, got %d", c.Index())
	}
	if c.Current().Kind != KindCover {
		t.Errorf("expected cover first, got %q", c.Current().Kind)
	}
	if c.AnyFlag() {
		t.Error("expected no flags set initially")
	}
}

func TestAdvanceClampsAtLast(t *testing.T) {
	c := New()
	for i := 0; i < 5; i++ {
		c.Advance()
	}
	if !c.IsLast() {
		t.Fatalf("expected last section after 5 advances, got %d", c.Index())
	}
	c.Advance()
	if c.Index() != c.Len()-1 {
		t.Errorf("expected 6th advance to stay on %d, got %d", c.Len()-1, c.Index())
	}
}

func TestRetreatClampsAtFirst(t *testing.T) {
	c := New()
	c.Retreat()
	if c.Index() != 0 {
		t.Errorf("expected retreat at 0 to be a no-op, got %d", c.Index())
	}
}

func TestSectionChangeResetsFlags(t *testing.T) {
	c := New()
	c.Advance()
	c.Complete(TypingComplete)
	c.Complete(ApplauseVisible)
	if !c.Flag(TypingComplete) || !c.Flag(ApplauseVisible) {
		t.Fatal("expected flags to be set")
	}

	c.Advance()
	if c.AnyFlag() {
		t.Error("expected flags cleared after advance")
	}

	c.Complete(LetterComplete)
	c.Retreat()
	if c.Flag(LetterComplete) {
		t.Error("expected flags cleared after retreat")
	}
}

func TestClampedNoOpKeepsFlags(t *testing.T) {
	c := New()
	c.Complete(TypingComplete)
	c.Retreat()
	if !c.Flag(TypingComplete) {
		t.Error("a clamped retreat is not a section change and must keep flags")
	}
}

func TestJumpTo(t *testing.T) {
	c := New()
	if err := c.JumpTo(3); err != nil {
		t.Fatalf("JumpTo(3): %v", err)
	}
	if c.Current().Kind != KindCarousel {
		t.Errorf("expected carousel, got %q", c.Current().Kind)
	}

	for _, idx := range []int{-1, c.Len(), 99} {
		err := c.JumpTo(idx)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("JumpTo(%d): expected ErrOutOfRange, got %v", idx, err)
		}
		if c.Index() != 3 {
			t.Errorf("JumpTo(%d) moved the deck to %d", idx, c.Index())
		}
	}
}

func TestRestartFromFooterClearsFlags(t *testing.T) {
	c := New()
	for !c.IsLast() {
		c.Advance()
	}
	c.Complete(LetterComplete)
	c.Restart()
	if c.Index() != 0 {
		t.Errorf("expected restart to land on 0, got %d", c.Index())
	}
	if c.AnyFlag() {
		t.Error("expected restart to clear flags")
	}
}

func TestResetFlagsKeepsSection(t *testing.T) {
	c := New()
	c.Advance()
	c.Complete(TypingComplete)
	c.Complete(ApplauseVisible)
	notified := false
	c.OnChange(func(from, to Section) { notified = true })

	c.ResetFlags()
	if c.AnyFlag() {
		t.Error("expected flags cleared")
	}
	if c.Index() != 1 {
		t.Errorf("expected to stay on 1, got %d", c.Index())
	}
	if notified {
		t.Error("expected no change notification")
	}
}

func TestOnChangeObservers(t *testing.T) {
	c := New()
	var calls [][2]int
	c.OnChange(func(from, to Section) {
		if c.AnyFlag() {
			t.Error("flags must be reset before observers run")
		}
		calls = append(calls, [2]int{from.Index, to.Index})
	})

	c.Complete(TypingComplete)
	c.Advance()
	c.Retreat()
	c.Retreat() // clamped, no notification

	want := [][2]int{{0, 1}, {1, 0}}
	if len(calls) != len(want) {
		t.Fatalf("expected %d notifications, got %d (%v)", len(want), len(calls), calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("notification %d: expected %v, got %v", i, want[i], calls[i])
		}
	}
}

func TestProgress(t *testing.T) {
	c := New()
	if c.Progress() != 0 {
		t.Errorf("expected 0 progress, got %f", c.Progress())
	}
	_ = c.JumpTo(c.Len() - 1)
	if c.Progress() != 1 {
		t.Errorf("expected full progress, got %f", c.Progress())
	}
	if New(KindCover).Progress() != 1 {
		t.Error("single-section deck should report full progress")
	}
}

func TestFlagString(t *testing.T) {
	tests := []struct {
		flag Flag
		want string
	}{
		{TypingComplete, "typing_complete"},
		{ApplauseVisible, "applause_visible"},
		{LetterComplete, "letter_complete"},
		{Flag(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.flag.String(); got != tt.want {
			t.Errorf("Flag(%d).String() = %q, want %q", tt.flag, got, tt.want)
		}
	}
}

func TestNavigationStaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "sections")
		kinds := make([]Kind, n)
		for i := range kinds {
			kinds[i] = KindCover
		}
		c := New(kinds...)

		ops := rapid.SliceOf(rapid.IntRange(0, 3)).Draw(t, "ops")
		for _, op := range ops {
			before := c.Index()
			switch op {
			case 0:
				c.Advance()
			case 1:
				c.Retreat()
			case 2:
				c.Complete(TypingComplete)
			case 3:
				c.Complete(LetterComplete)
			}
			if c.Index() < 0 || c.Index() > n-1 {
				t.Fatalf("index %d escaped [0, %d]", c.Index(), n-1)
			}
			if c.Index() != before && c.AnyFlag() {
				t.Fatalf("section changed %d -> %d without resetting flags", before, c.Index())
			}
		}
	})
}
