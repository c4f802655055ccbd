package clock

import (
	"testing"
	"time"
)

func TestFakeFiresInOrder(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	var got []int
	c.AfterFunc(30*time.Millisecond, func() { got = append(got, 3) })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, 1) })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, 2) })

	c.Advance(20 * time.Millisecond)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected [1 2] after 20ms, got %v", got)
	}
	if c.Pending() != 1 {
		t.Errorf("expected 1 pending timer, got %d", c.Pending())
	}

	c.Advance(10 * time.Millisecond)
	if len(got) != 3 || got[2] != 3 {
		t.Fatalf("expected [1 2 3], got %v", got)
	}
}

func TestFakeStop(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("expected first Stop to report true")
	}
	if timer.Stop() {
		t.Error("expected second Stop to report false")
	}
	c.Advance(time.Hour)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestFakeChainedTimers(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 5 {
			c.AfterFunc(10*time.Millisecond, tick)
		}
	}
	c.AfterFunc(10*time.Millisecond, tick)

	c.Advance(35 * time.Millisecond)
	if count != 3 {
		t.Errorf("expected 3 ticks within 35ms, got %d", count)
	}
	c.Advance(time.Second)
	if count != 5 {
		t.Errorf("expected chain to stop at 5, got %d", count)
	}
	if got := c.Now(); !got.Equal(time.Unix(0, 0).Add(35*time.Millisecond + time.Second)) {
		t.Errorf("unexpected clock time %v", got)
	}
}

func TestFakeNowDuringCallback(t *testing.T) {
	start := time.Unix(100, 0)
	c := NewFake(start)
	var seen time.Time
	c.AfterFunc(250*time.Millisecond, func() { seen = c.Now() })
	c.Advance(time.Second)
	if !seen.Equal(start.Add(250 * time.Millisecond)) {
		t.Errorf("callback saw %v, want due time", seen)
	}
}
