package reveal

import (
	"sync"
	"time"

	"github.com/vanderheijden86/farewell/pkg/clock"
)

// Player drives a Revealer on a clock outside of the TUI. Scheduling and
// cancellation live in the same place: Unmount stops the pending timer and
// any callback already racing for the lock finds the player stopped, so
// nothing fires after teardown.
//
// Callbacks (the update hook and the revealer's completion) run with the
// player's lock held and must not call back into the player.
type Player struct {
	mu       sync.Mutex
	r        Revealer
	clock    clock.Clock
	onUpdate func(text string)

	timer   clock.Timer
	gen     uint64
	mounted bool
	stopped bool
}

// NewPlayer binds r to c. onUpdate may be nil.
func NewPlayer(r Revealer, c clock.Clock, onUpdate func(text string)) *Player {
	if c == nil {
		c = clock.Real{}
	}
	if onUpdate == nil {
		onUpdate = func(string) {}
	}
	return &Player{r: r, clock: c, onUpdate: onUpdate}
}

// Mount starts the reveal. A player mounts once; remounting means building
// a fresh player around a fresh revealer.
func (p *Player) Mount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mounted || p.stopped {
		return
	}
	p.mounted = true
	d, ok := p.r.Start()
	p.onUpdate(p.r.Text())
	if ok {
		p.schedule(d)
	}
}

// Skip reveals everything now and cancels the pending tick.
func (p *Player) Skip() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || !p.mounted {
		return
	}
	p.cancel()
	if p.r.Done() {
		return
	}
	p.r.SkipToEnd()
	p.onUpdate(p.r.Text())
}

// Unmount tears the player down. Safe to call more than once.
func (p *Player) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	p.cancel()
}

// Active reports whether a tick is pending.
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.timer != nil
}

// schedule must be called with the lock held. Each timer carries its own
// generation so a callback can tell whether it is still current without
// reading the timer handle, which may not be assigned yet.
func (p *Player) schedule(d time.Duration) {
	p.gen++
	gen := p.gen
	p.timer = p.clock.AfterFunc(d, func() { p.fire(gen) })
}

func (p *Player) fire(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// A stale timer (skipped or replaced) or a stopped player is ignored.
	if p.stopped || p.gen != gen {
		return
	}
	p.timer = nil
	d, ok := p.r.Step()
	p.onUpdate(p.r.Text())
	if ok {
		p.schedule(d)
	}
}

func (p *Player) cancel() {
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
