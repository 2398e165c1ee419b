// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package request

import "fmt"

// =============================================================================
// OPERATIONS
// =============================================================================

// Op identifies a kind of remote operation.
type Op string

const (
	OpListLeads   Op = "list_leads"
	OpCreateLead  Op = "create_lead"
	OpAnalyzeWord Op = "analyze_word"
)

// String returns the string representation of the operation.
func (o Op) String() string {
	return string(o)
}

// =============================================================================
// LIFECYCLE STATE
// =============================================================================

// Phase is the tag of a lifecycle State.
type Phase string

const (
	// PhaseIdle means nothing has been attempted since the last reset
	PhaseIdle Phase = "Idle"

	// PhaseInFlight means at least one request is awaiting its response
	PhaseInFlight Phase = "InFlight"

	// PhaseSucceeded means the latest applied outcome was a success
	PhaseSucceeded Phase = "Succeeded"

	// PhaseFailed means the latest applied outcome was a failure
	PhaseFailed Phase = "Failed"
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// State is a tagged lifecycle value. Message is only meaningful for
// Succeeded and Failed.
type State struct {
	Phase   Phase
	Message string
}

// Idle returns the idle state.
func Idle() State { return State{Phase: PhaseIdle} }

// InFlight returns the in-flight state.
func InFlight() State { return State{Phase: PhaseInFlight} }

// Succeeded returns a success state carrying msg.
func Succeeded(msg string) State { return State{Phase: PhaseSucceeded, Message: msg} }

// Failed returns a failure state carrying msg.
func Failed(msg string) State { return State{Phase: PhaseFailed, Message: msg} }

// IsIdle reports whether the state is Idle.
func (s State) IsIdle() bool { return s.Phase == PhaseIdle }

// IsInFlight reports whether the state is InFlight.
func (s State) IsInFlight() bool { return s.Phase == PhaseInFlight }

// IsSucceeded reports whether the state is Succeeded.
func (s State) IsSucceeded() bool { return s.Phase == PhaseSucceeded }

// IsFailed reports whether the state is Failed.
func (s State) IsFailed() bool { return s.Phase == PhaseFailed }

// Settled reports whether the state is a terminal outcome.
func (s State) Settled() bool {
	return s.Phase == PhaseSucceeded || s.Phase == PhaseFailed
}

func (s State) String() string {
	if s.Message == "" {
		return s.Phase.String()
	}
	return fmt.Sprintf("%s(%s)", s.Phase, s.Message)
}

// ValidTransition reports whether a visible lifecycle may move from one
// phase to another.
//
// Valid transitions:
//
//	Idle      -> InFlight | Failed (rejected locally)
//	InFlight  -> InFlight | Succeeded | Failed
//	Succeeded -> InFlight | Idle | Failed (rejected locally)
//	Failed    -> InFlight | Idle | Failed
func ValidTransition(from, to Phase) bool {
	switch from {
	case PhaseIdle:
		return to == PhaseIdle || to == PhaseInFlight || to == PhaseFailed
	case PhaseInFlight:
		return to == PhaseInFlight || to == PhaseSucceeded || to == PhaseFailed
	case PhaseSucceeded, PhaseFailed:
		return to == PhaseInFlight || to == PhaseIdle || to == PhaseFailed
	default:
		return false
	}
}
