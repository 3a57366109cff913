package api

import (
	"context"
	"sync"
)

// Phase is the lifecycle position of an operation
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the visible status of one operation site. Data and Err belong to
// the most recently applied call, Seq is that call's sequence number.
type State struct {
	Phase Phase
	Data  *Response
	Err   error
	Seq   uint64
}

// Loading reports whether a call is outstanding.
func (s State) Loading() bool {
	return s.Phase == PhasePending
}

// Tracker holds the state of a single logical call stream, such as
// "balance shown on screen". Each call gets a sequence number; a result is
// only applied if it is newer than the last applied one, so a slow stale
// response cannot overwrite a fresher one.
type Tracker struct {
	mu       sync.Mutex
	state    State
	issued   uint64
	applied  uint64
	pending  int
	onChange func(State)
}

// NewTracker creates an idle tracker. onChange, if not nil, is invoked with
// the new state after every transition while the tracker lock is held; it
// must not call back into the tracker.
func NewTracker(onChange func(State)) *Tracker {
	return &Tracker{onChange: onChange}
}

// State returns a snapshot of the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Begin registers a new call and returns its sequence number.
func (t *Tracker) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.issued++
	t.pending++
	t.state.Phase = PhasePending
	t.notify()
	return t.issued
}

// Finish records the outcome of call seq. When the outcome is newer than
// the last applied one and err is nil, apply (if not nil) runs under the
// tracker lock so callers can publish derived display values without racing
// other calls; an error from apply marks the call failed. The bool result is
// false when the outcome was discarded as stale.
func (t *Tracker) Finish(seq uint64, resp *Response, err error, apply func(*Response) error) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending > 0 {
		t.pending--
	}

	applied := seq > t.applied
	if applied {
		if err == nil && apply != nil {
			err = apply(resp)
		}
		t.applied = seq
		t.state.Seq = seq
		t.state.Data = resp
		t.state.Err = err
	}

	switch {
	case t.pending > 0:
		t.state.Phase = PhasePending
	case t.state.Err != nil:
		t.state.Phase = PhaseFailed
	case t.applied > 0:
		t.state.Phase = PhaseSucceeded
	default:
		t.state.Phase = PhaseIdle
	}
	t.notify()
	return applied, err
}

// Do runs fn as one tracked call and finishes it with apply.
func (t *Tracker) Do(ctx context.Context, fn func(context.Context) (*Response, error), apply func(*Response) error) (*Response, bool, error) {
	seq := t.Begin()
	resp, err := fn(ctx)
	applied, err := t.Finish(seq, resp, err, apply)
	return resp, applied, err
}

func (t *Tracker) notify() {
	if t.onChange != nil {
		t.onChange(t.state)
	}
}
