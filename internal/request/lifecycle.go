// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package request

import "log"

// Lifecycle is the visible state of one operation. It reports InFlight while
// any request for the operation is pending and the latest applied outcome
// otherwise.
type Lifecycle struct {
	op      Op
	tracker *Tracker
	settled State
}

// NewLifecycle creates an idle lifecycle for op backed by tracker.
func NewLifecycle(op Op, tracker *Tracker) *Lifecycle {
	if tracker == nil {
		tracker = NewTracker()
	}
	return &Lifecycle{op: op, tracker: tracker, settled: Idle()}
}

// Op returns the operation this lifecycle follows.
func (l *Lifecycle) Op() Op {
	return l.op
}

// State returns the visible state.
func (l *Lifecycle) State() State {
	if l.tracker.InFlight(l.op) {
		return InFlight()
	}
	return l.settled
}

// Outcome returns the latest applied outcome, ignoring pending requests.
func (l *Lifecycle) Outcome() State {
	return l.settled
}

// Begin clears any previous outcome and issues a token for a new request.
func (l *Lifecycle) Begin() Token {
	l.move(Idle())
	return l.tracker.Issue(l.op)
}

// Reject records a failure that happened before any request was issued.
func (l *Lifecycle) Reject(msg string) {
	l.move(Failed(msg))
}

// Finish records the response for tok. The outcome is applied only when tok
// is the newest completion so far; the return value reports whether it was.
func (l *Lifecycle) Finish(tok Token, outcome State) bool {
	if !outcome.Settled() {
		log.Printf("LIFECYCLE_INVALID | op=%s outcome=%s", l.op, outcome.Phase)
		l.tracker.Complete(tok)
		return false
	}
	if !l.tracker.Complete(tok) {
		return false
	}
	l.settled = outcome
	return true
}

// Reset returns the lifecycle to Idle unless a request is pending.
func (l *Lifecycle) Reset() {
	l.move(Idle())
}

// move replaces the settled outcome, refusing transitions the visible state
// does not allow.
func (l *Lifecycle) move(next State) {
	from := l.settled.Phase
	if !ValidTransition(from, next.Phase) && from != next.Phase {
		log.Printf("LIFECYCLE_INVALID | op=%s from=%s to=%s", l.op, from, next.Phase)
		return
	}
	l.settled = next
}
