// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// =============================================================================
// STATE TESTS
// =============================================================================

func TestState_Constructors(t *testing.T) {
	assert.True(t, Idle().IsIdle())
	assert.True(t, InFlight().IsInFlight())
	assert.True(t, Succeeded("ok").IsSucceeded())
	assert.True(t, Failed("boom").IsFailed())

	assert.False(t, Idle().Settled())
	assert.False(t, InFlight().Settled())
	assert.True(t, Succeeded("").Settled())
	assert.True(t, Failed("x").Settled())

	assert.Equal(t, "Failed(boom)", Failed("boom").String())
	assert.Equal(t, "Idle", Idle().String())
}

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to Phase
		want     bool
	}{
		{PhaseIdle, PhaseInFlight, true},
		{PhaseIdle, PhaseFailed, true},
		{PhaseIdle, PhaseSucceeded, false},
		{PhaseInFlight, PhaseSucceeded, true},
		{PhaseInFlight, PhaseFailed, true},
		{PhaseInFlight, PhaseInFlight, true},
		{PhaseInFlight, PhaseIdle, false},
		{PhaseSucceeded, PhaseInFlight, true},
		{PhaseSucceeded, PhaseIdle, true},
		{PhaseSucceeded, PhaseSucceeded, false},
		{PhaseFailed, PhaseInFlight, true},
		{PhaseFailed, PhaseFailed, true},
		{Phase("bogus"), PhaseIdle, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.want, ValidTransition(tc.from, tc.to))
		})
	}
}

// =============================================================================
// TRACKER TESTS
// =============================================================================

func TestTracker_IssueIncrementsPerOp(t *testing.T) {
	tr := NewTracker()

	a := tr.Issue(OpListLeads)
	b := tr.Issue(OpListLeads)
	c := tr.Issue(OpCreateLead)

	assert.Equal(t, uint64(1), a.Gen)
	assert.Equal(t, uint64(2), b.Gen)
	assert.Equal(t, uint64(1), c.Gen, "generations are independent per operation")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, tr.Pending(OpListLeads))
	assert.Equal(t, uint64(2), tr.Latest(OpListLeads))
	assert.Equal(t, "list_leads#2", b.String())
}

func TestTracker_InOrderCompletion(t *testing.T) {
	tr := NewTracker()
	first := tr.Issue(OpListLeads)
	second := tr.Issue(OpListLeads)

	assert.True(t, tr.Complete(first))
	assert.True(t, tr.InFlight(OpListLeads))
	assert.True(t, tr.Complete(second))
	assert.False(t, tr.InFlight(OpListLeads))
	assert.Equal(t, uint64(2), tr.Applied(OpListLeads))
}

func TestTracker_StaleCompletionDiscarded(t *testing.T) {
	tr := NewTracker()
	older := tr.Issue(OpListLeads)
	newer := tr.Issue(OpListLeads)

	// The newer response overtakes the older one.
	require.True(t, tr.Complete(newer))
	assert.False(t, tr.Complete(older), "older response must not overwrite newer state")
	assert.Equal(t, 0, tr.Pending(OpListLeads))
	assert.Equal(t, uint64(2), tr.Applied(OpListLeads))
}

func TestTracker_CompleteNeverGoesNegative(t *testing.T) {
	tr := NewTracker()
	tok := tr.Issue(OpAnalyzeWord)
	tr.Complete(tok)
	tr.Complete(tok)
	assert.Equal(t, 0, tr.Pending(OpAnalyzeWord))
}

func TestToken_Age(t *testing.T) {
	tr := NewTracker()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return base }

	tok := tr.Issue(OpCreateLead)
	assert.Equal(t, 3*time.Second, tok.Age(base.Add(3*time.Second)))
}

// =============================================================================
// LIFECYCLE TESTS
// =============================================================================

func TestLifecycle_SuccessFlow(t *testing.T) {
	l := NewLifecycle(OpCreateLead, NewTracker())
	assert.True(t, l.State().IsIdle())

	tok := l.Begin()
	assert.True(t, l.State().IsInFlight())

	require.True(t, l.Finish(tok, Succeeded("done")))
	assert.Equal(t, Succeeded("done"), l.State())
}

func TestLifecycle_BeginClearsPreviousOutcome(t *testing.T) {
	l := NewLifecycle(OpAnalyzeWord, nil)
	tok := l.Begin()
	l.Finish(tok, Failed("nope"))
	require.True(t, l.State().IsFailed())

	l.Begin()
	assert.True(t, l.State().IsInFlight())
	assert.True(t, l.Outcome().IsIdle())
}

func TestLifecycle_OverlappingRequests(t *testing.T) {
	l := NewLifecycle(OpCreateLead, NewTracker())
	first := l.Begin()
	second := l.Begin()

	// Second resolves first; the view stays in flight until both are back.
	require.True(t, l.Finish(second, Failed("duplicate email")))
	assert.True(t, l.State().IsInFlight())
	assert.Equal(t, Failed("duplicate email"), l.Outcome())

	assert.False(t, l.Finish(first, Succeeded("ok")), "stale outcome must be discarded")
	assert.Equal(t, Failed("duplicate email"), l.State())
}

func TestLifecycle_RejectWithoutRequest(t *testing.T) {
	tr := NewTracker()
	l := NewLifecycle(OpAnalyzeWord, tr)

	l.Reject("word required")
	assert.Equal(t, Failed("word required"), l.State())
	assert.Equal(t, uint64(0), tr.Latest(OpAnalyzeWord))
}

func TestLifecycle_FinishRequiresSettledOutcome(t *testing.T) {
	l := NewLifecycle(OpListLeads, nil)
	tok := l.Begin()

	assert.False(t, l.Finish(tok, InFlight()))
	assert.True(t, l.State().IsIdle())
}

func TestLifecycle_VisibleTransitionsAreValid(t *testing.T) {
	l := NewLifecycle(OpCreateLead, nil)
	prev := l.State().Phase
	check := func() {
		t.Helper()
		cur := l.State().Phase
		assert.True(t, ValidTransition(prev, cur) || prev == cur, "%s -> %s", prev, cur)
		prev = cur
	}

	l.Reject("missing")
	check()
	a := l.Begin()
	check()
	b := l.Begin()
	check()
	l.Finish(a, Succeeded("a"))
	check()
	l.Finish(b, Failed("b"))
	check()
	l.Reset()
	check()
}

// =============================================================================
// CONTEXT TESTS
// =============================================================================

func TestContext_NoTimeout(t *testing.T) {
	ctx, cancel := Context(context.Background(), 0)
	defer cancel()

	_, ok := ctx.Deadline()
	assert.False(t, ok)
}

func TestContext_WithTimeout(t *testing.T) {
	ctx, cancel := Context(context.TODO(), 50*time.Millisecond)
	defer cancel()

	_, ok := ctx.Deadline()
	assert.True(t, ok)
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}
