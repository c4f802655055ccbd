package watcher

import (
	"context"
	"errors"

	"github.com/vanderheijden86/farewell/pkg/content"
)

// Reload is the outcome of re-reading a deck after a change. Err is set
// when the new file failed to load; callers keep their previous deck.
type Reload struct {
	Deck content.Deck
	Err  error
}

// DeckReloader watches a deck file and delivers a Reload per debounced
// change.
type DeckReloader struct {
	w   *Watcher
	out chan Reload
}

// NewDeckReloader prepares a reloader for path. Options are passed to the
// underlying Watcher; WithOnChange and WithOnError are overridden.
func NewDeckReloader(path string, opts ...WatcherOption) (*DeckReloader, error) {
	r := &DeckReloader{out: make(chan Reload, 1)}
	opts = append(opts,
		WithOnChange(func() { r.send(r.load()) }),
		WithOnError(func(err error) {
			if errors.Is(err, ErrFileRemoved) {
				r.send(Reload{Err: err})
			}
		}),
	)
	w, err := NewWatcher(path, opts...)
	if err != nil {
		return nil, err
	}
	r.w = w
	return r, nil
}

func (r *DeckReloader) load() Reload {
	d, err := content.Load(r.w.Path())
	return Reload{Deck: d, Err: err}
}

// send keeps only the newest result when the reader falls behind.
func (r *DeckReloader) send(rl Reload) {
	for {
		select {
		case r.out <- rl:
			return
		default:
		}
		select {
		case <-r.out:
		default:
		}
	}
}

// Start begins watching.
func (r *DeckReloader) Start() error {
	return r.w.Start()
}

// Stop stops watching.
func (r *DeckReloader) Stop() {
	r.w.Stop()
}

// Path returns the watched deck path.
func (r *DeckReloader) Path() string {
	return r.w.Path()
}

// Next blocks until the next reload or until ctx is done.
func (r *DeckReloader) Next(ctx context.Context) (Reload, error) {
	select {
	case rl := <-r.out:
		return rl, nil
	case <-ctx.Done():
		return Reload{}, ctx.Err()
	}
}
