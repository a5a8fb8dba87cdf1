package attestation

import (
	"errors"
	"fmt"
	"sync"
)

// Status is the advisory progress state of one attestation attempt.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusPreparing  Status = "preparing"
	StatusSigning    Status = "signing"
	StatusConfirming Status = "confirming"
	StatusConfirmed  Status = "confirmed"
	StatusFailed     Status = "failed"
)

// ErrInvalidTransition is returned by Tracker.Transition for moves the
// lifecycle does not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

var nextStatus = map[Status]Status{
	StatusIdle:       StatusPreparing,
	StatusPreparing:  StatusSigning,
	StatusSigning:    StatusConfirming,
	StatusConfirming: StatusConfirmed,
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusFailed
}

// CanTransition reports whether s may move to next. Failure is reachable from
// every non-terminal state once preparation started.
func (s Status) CanTransition(next Status) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusFailed {
		return s != StatusIdle
	}
	return nextStatus[s] == next
}

// Observer receives every status change of an attempt.
type Observer func(attemptID string, from, to Status)

// Tracker follows a single attempt through the lifecycle.
type Tracker struct {
	mu       sync.Mutex
	id       string
	status   Status
	observer Observer
}

// NewTracker returns an idle tracker. observer may be nil.
func NewTracker(attemptID string, observer Observer) *Tracker {
	return &Tracker{
		id:       attemptID,
		status:   StatusIdle,
		observer: observer,
	}
}

// ID returns the attempt id the tracker reports under.
func (t *Tracker) ID() string {
	return t.id
}

// Status returns the current state.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Transition moves the attempt to next and notifies the observer.
func (t *Tracker) Transition(next Status) error {
	t.mu.Lock()
	prev := t.status
	if !prev.CanTransition(next) {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, prev, next)
	}
	t.status = next
	t.mu.Unlock()

	if t.observer != nil {
		t.observer(t.id, prev, next)
	}
	return nil
}
