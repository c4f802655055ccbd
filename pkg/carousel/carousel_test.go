package carousel

import (
	"errors"
	"testing"
	"time"

	"pgregory.net/rapid"
)

var t0 = time.Unix(1_700_000_000, 0)

func TestNextAndPrevWrap(t *testing.T) {
	c := New(5, t0)
	now := t0

	if !c.Prev(now) || c.Index() != 4 {
		t.Fatalf("expected prev from 0 to wrap to 4, got %d", c.Index())
	}
	now = now.Add(time.Second)
	if !c.Next(now) || c.Index() != 0 {
		t.Fatalf("expected next from 4 to wrap to 0, got %d", c.Index())
	}
}

func TestTransitionGuard(t *testing.T) {
	c := New(3, t0)
	if !c.Next(t0) {
		t.Fatal("expected first move to succeed")
	}
	if c.Next(t0.Add(100 * time.Millisecond)) {
		t.Error("expected move during transition to be dropped")
	}
	if ok, err := c.Jump(0, t0.Add(200*time.Millisecond)); ok || err != nil {
		t.Errorf("expected jump during transition to be dropped, got %v, %v", ok, err)
	}
	if c.Index() != 1 {
		t.Errorf("expected to stay on 1, got %d", c.Index())
	}
	if !c.Next(t0.Add(DefaultTransition)) || c.Index() != 2 {
		t.Errorf("expected move after the transition, got %d", c.Index())
	}
}

func TestJumpOutOfRange(t *testing.T) {
	c := New(3, t0)
	for _, idx := range []int{-1, 3} {
		if _, err := c.Jump(idx, t0); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Jump(%d): expected ErrOutOfRange, got %v", idx, err)
		}
	}
}

func TestAutoAdvance(t *testing.T) {
	c := New(3, t0)
	if c.AutoAdvance(t0.Add(3 * time.Second)) {
		t.Error("auto-advance fired early")
	}
	if !c.AutoAdvance(t0.Add(4*time.Second)) || c.Index() != 1 {
		t.Fatalf("expected auto-advance at 4s, index %d", c.Index())
	}
	if c.AutoAdvanceDue(t0.Add(4 * time.Second)) {
		t.Error("expected the 4s beat to be consumed")
	}

	off := New(3, t0, WithAutoAdvance(0))
	if off.AutoAdvance(t0.Add(time.Hour)) {
		t.Error("auto-advance should be disabled")
	}
}

func TestManualMoveKeepsAutoAdvanceCadence(t *testing.T) {
	c := New(5, t0)
	c.Next(t0.Add(3 * time.Second))
	if c.Index() != 1 {
		t.Fatalf("expected manual move to slide 1, got %d", c.Index())
	}
	// The beat stays at 4s even though the last move was at 3s.
	if !c.AutoAdvance(t0.Add(4 * time.Second)) || c.Index() != 2 {
		t.Fatalf("expected auto-advance on the 4s beat, index %d", c.Index())
	}
	c.Prev(t0.Add(7500 * time.Millisecond))
	if !c.AutoAdvanceDue(t0.Add(8 * time.Second)) {
		t.Error("expected the 8s beat to be due despite the move at 7.5s")
	}
}

func TestAutoAdvanceBeatDuringTransitionIsSpent(t *testing.T) {
	c := New(3, t0)
	c.Next(t0.Add(3800 * time.Millisecond))
	if c.AutoAdvance(t0.Add(4 * time.Second)) {
		t.Error("expected the beat inside the transition not to move")
	}
	if c.Index() != 1 {
		t.Errorf("expected to stay on slide 1, got %d", c.Index())
	}
	if c.AutoAdvanceDue(t0.Add(5 * time.Second)) {
		t.Error("expected the spent beat not to fire again before 8s")
	}
}

func TestEmptyCarousel(t *testing.T) {
	c := New(0, t0)
	if c.Next(t0) || c.Prev(t0) || c.AutoAdvance(t0.Add(time.Hour)) {
		t.Error("empty carousel must not move")
	}
}

func TestSpringSettles(t *testing.T) {
	c := New(4, t0)
	c.Next(t0)
	if c.Settled() || c.Offset() == 0 {
		t.Fatal("expected an offset right after a move")
	}
	for i := 0; i < 600 && !c.Settled(); i++ {
		c.Animate()
	}
	if !c.Settled() || c.Offset() != 0 {
		t.Errorf("spring did not settle, offset %d", c.Offset())
	}
}

func TestIndexAlwaysValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 10).Draw(t, "slides")
		c := New(n, t0, WithTransition(rapid.SampledFrom([]time.Duration{0, DefaultTransition}).Draw(t, "transition")))
		now := t0
		for _, op := range rapid.SliceOf(rapid.IntRange(0, 3)).Draw(t, "ops") {
			now = now.Add(time.Duration(rapid.IntRange(0, 1000).Draw(t, "ms")) * time.Millisecond)
			switch op {
			case 0:
				c.Next(now)
			case 1:
				c.Prev(now)
			case 2:
				_, _ = c.Jump(rapid.IntRange(0, n-1).Draw(t, "target"), now)
			case 3:
				c.AutoAdvance(now)
			}
			if c.Index() < 0 || c.Index() >= n {
				t.Fatalf("index %d outside [0, %d)", c.Index(), n)
			}
		}
	})
}
