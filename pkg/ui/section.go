package ui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/farewell/pkg/deck"
	"github.com/vanderheijden86/farewell/pkg/reveal"
)

// RevealCompleteMsg reports that the revealer of component ID finished.
// The root model drops it unless ID belongs to the mounted section.
type RevealCompleteMsg struct {
	ID   int
	Flag deck.Flag
}

// revealTickMsg is one scheduled step of a revealer. Ticks whose id or tag
// no longer match the receiving component are stale and ignored.
type revealTickMsg struct {
	id  int
	tag int
}

// applauseMsg fires ApplauseVisible for the institutional section.
type applauseMsg struct {
	id int
}

// autoAdvanceMsg is a carousel auto-advance tick.
type autoAdvanceMsg struct {
	id  int
	tag int
}

// frameMsg drives particles, springs and other per-frame animation.
type frameMsg time.Time

// skipMsg asks the mounted section to jump its reveal to the end.
type skipMsg struct{}

// slideMsg asks the carousel to move by delta, or to jump when jump >= 0.
type slideMsg struct {
	delta int
	jump  int
}

// viewContext carries what a section needs from the root to render.
type viewContext struct {
	theme   Theme
	width   int
	height  int
	now     time.Time
	elapsed time.Duration // since the section was mounted
	frame   int
	flag    func(deck.Flag) bool
}

// sectionModel is the component mounted for the current section.
type sectionModel interface {
	ID() int
	Kind() deck.Kind
	Init() tea.Cmd
	Update(msg tea.Msg) (sectionModel, tea.Cmd)
	View(ctx viewContext) string
}

var lastComponentID atomic.Int64

// nextComponentID returns a process-unique component id.
func nextComponentID() int {
	return int(lastComponentID.Add(1))
}

// revealDriver schedules a Revealer through tea.Tick with tag-based
// cancellation and reports completion once.
type revealDriver struct {
	id       int
	tag      int
	r        reveal.Revealer
	flag     deck.Flag
	reported bool
}

func newRevealDriver(r reveal.Revealer, flag deck.Flag) revealDriver {
	return revealDriver{id: nextComponentID(), r: r, flag: flag}
}

func (d revealDriver) tick(delay time.Duration) tea.Cmd {
	id, tag := d.id, d.tag
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return revealTickMsg{id: id, tag: tag}
	})
}

// start returns the first tick, or the completion for an empty reveal.
func (d revealDriver) start() (revealDriver, tea.Cmd) {
	delay, ok := d.r.Start()
	if !ok {
		return d.finish()
	}
	return d, d.tick(delay)
}

// step handles a tick; stale ticks return handled=false.
func (d revealDriver) step(msg revealTickMsg) (revealDriver, tea.Cmd, bool) {
	if msg.id != d.id || msg.tag != d.tag {
		return d, nil, false
	}
	delay, ok := d.r.Step()
	if ok {
		return d, d.tick(delay), true
	}
	d, cmd := d.finish()
	return d, cmd, true
}

// skip cancels the pending tick and completes.
func (d revealDriver) skip() (revealDriver, tea.Cmd) {
	d.tag++
	d.r.SkipToEnd()
	return d.finish()
}

func (d revealDriver) finish() (revealDriver, tea.Cmd) {
	if d.reported || !d.r.Done() {
		return d, nil
	}
	d.reported = true
	id, flag := d.id, d.flag
	return d, func() tea.Msg {
		return RevealCompleteMsg{ID: id, Flag: flag}
	}
}
