// Package controller holds the per-resource list state the views render.
//
// Every controller follows one lifecycle: Idle, then Loading, then Loaded or
// Errored. Mutations never patch the list locally; a successful create,
// update or delete is followed by a full re-list, so what the view shows is
// always one server response.
package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/theirongolddev/paisa/internal/session"
)

// State is the lifecycle position of a controller.
type State int

// Controller states.
const (
	Idle State = iota
	Loading
	Loaded
	Errored
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	default:
		return "idle"
	}
}

// List is a server-authoritative ordered collection plus its load state.
// The zero value is Idle with no items.
type List[T any] struct {
	mu       sync.Mutex
	items    []T
	state    State
	err      error
	gen      uint64
	onChange func()
}

// Items returns a copy of the records from the last successful fetch.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of records held.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// State returns the current lifecycle state.
func (l *List[T]) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Loading reports whether a fetch is in flight.
func (l *List[T]) Loading() bool {
	return l.State() == Loading
}

// Err returns the last failure, or nil after a successful fetch.
func (l *List[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// OnChange registers fn to be called after every state transition.
// fn runs without the list lock held.
func (l *List[T]) OnChange(fn func()) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

// Reset drops every record and returns to Idle. A fetch still in flight is
// superseded and its result discarded.
func (l *List[T]) Reset() {
	l.reset(nil)
}

// reset is Reset with clear run under the lock for side collections.
func (l *List[T]) reset(clear func()) {
	l.mu.Lock()
	l.gen++
	l.items = nil
	l.state = Idle
	l.err = nil
	if clear != nil {
		clear()
	}
	notify := l.onChange
	l.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Resetter is anything holding data that belongs to one signed-in user.
type Resetter interface {
	Reset()
}

// FollowSession resets every rs whenever sess signs in, signs out or is
// restored, so no list outlives the user it was fetched for.
func FollowSession(sess *session.Store, rs ...Resetter) {
	sess.OnChange(func() {
		for _, r := range rs {
			r.Reset()
		}
	})
}

// begin enters Loading and returns the generation that owns the fetch.
func (l *List[T]) begin() uint64 {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.state = Loading
	notify := l.onChange
	l.mu.Unlock()

	if notify != nil {
		notify()
	}
	return gen
}

// finish commits the outcome of fetch gen. Results from a superseded
// generation or a cancelled context are dropped. commit, when non-nil, runs
// under the lock on success so side collections change in the same step.
// It reports whether the outcome was applied.
func (l *List[T]) finish(ctx context.Context, gen uint64, items []T, err error, commit func()) bool {
	l.mu.Lock()
	if gen != l.gen {
		l.mu.Unlock()
		return false
	}
	if ctx.Err() != nil && (err == nil || errors.Is(err, ctx.Err())) {
		// Abandoned: fall back to whatever the previous fetch established.
		if l.err != nil {
			l.state = Errored
		} else if l.items != nil {
			l.state = Loaded
		} else {
			l.state = Idle
		}
		notify := l.onChange
		l.mu.Unlock()
		if notify != nil {
			notify()
		}
		return false
	}

	if err != nil {
		l.state = Errored
		l.err = err
	} else {
		if items == nil {
			items = []T{}
		}
		l.items = items
		l.state = Loaded
		l.err = nil
		if commit != nil {
			commit()
		}
	}
	notify := l.onChange
	l.mu.Unlock()

	if notify != nil {
		notify()
	}
	return true
}

// fail records a mutation or validation failure. Items are left as they were.
func (l *List[T]) fail(err error) {
	l.mu.Lock()
	l.state = Errored
	l.err = err
	notify := l.onChange
	l.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// load runs one fetch through begin/finish. A nil result means the fetch
// was either committed or superseded by a newer one; in the latter case the
// caller's own result was never applied.
func (l *List[T]) load(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	gen := l.begin()
	items, err := fetch(ctx)
	if !l.finish(ctx, gen, items, err, nil) {
		return ctx.Err()
	}
	return err
}
