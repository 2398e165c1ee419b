// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package board

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/leaddesk-tui/internal/leads"
	"github.com/jeranaias/leaddesk-tui/internal/model"
	"github.com/jeranaias/leaddesk-tui/internal/remote"
	"github.com/jeranaias/leaddesk-tui/internal/request"
	"github.com/jeranaias/leaddesk-tui/internal/sentiment"
	"github.com/jeranaias/leaddesk-tui/internal/testutil/fakesvc"
	"github.com/jeranaias/leaddesk-tui/internal/ui/components"
	"github.com/jeranaias/leaddesk-tui/internal/ui/forms"
)

// =============================================================================
// HELPERS
// =============================================================================

type memStore struct {
	mu        sync.Mutex
	snapshots [][]model.Lead
	words     []string
}

func (s *memStore) SaveSnapshot(_ context.Context, l []model.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, l)
	return nil
}

func (s *memStore) RecordAnalysis(_ context.Context, word, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = append(s.words, word)
	return nil
}

func newBoard(t *testing.T, svc *fakesvc.Service, store Store) Model {
	t.Helper()
	cfg := &remote.Config{BaseURL: svc.URL()}
	return New(Options{
		Lister:    leads.NewClient(cfg),
		Creator:   leads.NewClient(cfg),
		Analyzer:  sentiment.NewClient(cfg),
		Store:     store,
		PageSize:  5,
		ShowStats: true,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// drain runs cmd and feeds every resulting message back into the board
// until no commands remain. Ticks and blinks are skipped.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case LeadsFetchedMsg, forms.LeadCreatedMsg, forms.WordAnalyzedMsg, forms.RefreshRequestedMsg:
			var next tea.Cmd
			m, next = update(t, m, msg)
			queue = append(queue, next)
		}
	}
	return m
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func focusTableKeys(t *testing.T, m Model) Model {
	t.Helper()
	for m.focus != focusTable {
		m, _ = update(t, m, keyMsg(tea.KeyTab))
	}
	return m
}

func ids(l []model.Lead) []string {
	out := make([]string, len(l))
	for i, lead := range l {
		out[i] = lead.ID
	}
	return out
}

// =============================================================================
// INITIAL LOAD
// =============================================================================

func TestInit_IssuesExactlyOneFetch(t *testing.T) {
	svc := fakesvc.New(t)
	svc.SeedLeads(12)
	m := newBoard(t, svc, nil)

	assert.True(t, m.ListState().IsIdle())
	m = drain(t, m, m.Init())

	assert.Equal(t, 1, svc.Hits(fakesvc.PathListLeads))
	assert.True(t, m.Loaded())
	assert.Equal(t, ids(svc.Leads()), ids(m.Leads()))
	assert.Equal(t, 1, m.Page().Current)
	assert.Equal(t, 3, m.Page().Total)
	assert.Len(t, m.VisibleLeads(), 5)
}

func TestInit_ShowsSpinnerUntilFirstLoad(t *testing.T) {
	svc := fakesvc.New(t)
	m := newBoard(t, svc, nil)

	cmd := m.Refresh()
	assert.Contains(t, m.View(), "Loading leads")
	assert.Contains(t, m.View(), "Refreshing...")

	m = drain(t, m, cmd)
	assert.NotContains(t, m.View(), "Loading leads")
	assert.Contains(t, m.View(), components.EmptyLeadsText)
}

// =============================================================================
// CREATE THEN REFRESH
// =============================================================================

func TestCreate_RefreshYieldsServerCollection(t *testing.T) {
	svc := fakesvc.New(t)
	svc.SeedLeads(12)
	store := &memStore{}
	m := newBoard(t, svc, store)
	m = drain(t, m, m.Init())

	m.LeadForm().SetDraft(model.LeadDraft{Name: "Grace", Email: "grace@example.com", CampaignID: "navy"})
	m, cmd := update(t, m, keyMsg(tea.KeyEnter))
	require.NotNil(t, cmd)
	m = drain(t, m, cmd)

	assert.Equal(t, 2, svc.Hits(fakesvc.PathListLeads), "create triggers exactly one refresh")
	assert.Equal(t, ids(svc.Leads()), ids(m.Leads()))
	assert.Len(t, m.Leads(), 13)
	assert.Equal(t, 3, m.Page().Total)
	assert.Equal(t, request.Succeeded(forms.CreateSuccessMessage), m.LeadForm().State())
	assert.True(t, m.LeadForm().Draft().IsZero())
	assert.Len(t, store.snapshots, 2)
}

func TestCreate_FailureLeavesCacheUntouched(t *testing.T) {
	svc := fakesvc.New(t)
	svc.SeedLeads(7)
	m := newBoard(t, svc, nil)
	m = drain(t, m, m.Init())
	before := m.Leads()

	svc.Fail(fakesvc.PathCreateLead, fakesvc.Failure{HTTPStatus: 400, Message: "Invalid email"})
	draft := model.LeadDraft{Name: "Bad", Email: "nope", CampaignID: "c"}
	m.LeadForm().SetDraft(draft)
	m, cmd := update(t, m, keyMsg(tea.KeyEnter))
	m = drain(t, m, cmd)

	assert.Equal(t, 1, svc.Hits(fakesvc.PathListLeads), "failed create must not refresh")
	assert.Equal(t, before, m.Leads())
	assert.Equal(t, draft, m.LeadForm().Draft())
	assert.Equal(t, request.Failed("Error: Invalid email"), m.LeadForm().State())
	assert.Contains(t, m.View(), "Invalid email")
}

func TestCreate_EnterIgnoredWhileInFlight(t *testing.T) {
	svc := fakesvc.New(t)
	m := newBoard(t, svc, nil)
	m.LeadForm().SetDraft(model.LeadDraft{Name: "A", Email: "a@x", CampaignID: "c"})

	m, first := update(t, m, keyMsg(tea.KeyEnter))
	require.NotNil(t, first)
	m, second := update(t, m, keyMsg(tea.KeyEnter))
	assert.Nil(t, second, "disabled control ignores Enter")
	assert.Contains(t, m.View(), "Creating...")
}

// =============================================================================
// OVERLAPPING FETCHES
// =============================================================================

func TestFetch_StaleResponseDiscarded(t *testing.T) {
	svc := fakesvc.New(t)
	m := newBoard(t, svc, nil)

	svc.SeedLeads(3)
	older := m.Refresh()
	olderMsg := older()

	svc.SeedLeads(8)
	newer := m.Refresh()
	newerMsg := newer()

	m, _ = update(t, m, newerMsg)
	m, _ = update(t, m, olderMsg)

	assert.Len(t, m.Leads(), 8, "older response must not overwrite newer data")
	assert.Equal(t, 2, m.Page().Total)
	assert.False(t, m.ListState().IsInFlight())
}

func TestFetch_StaleFailureIgnored(t *testing.T) {
	svc := fakesvc.New(t)
	svc.SeedLeads(4)
	m := newBoard(t, svc, nil)

	older := m.Refresh()
	newer := m.Refresh()

	m, _ = update(t, m, newer())
	m, cmd := update(t, m, LeadsFetchedMsg{Token: older().(LeadsFetchedMsg).Token, Err: errors.New("late failure")})

	assert.Nil(t, cmd)
	assert.Len(t, m.Leads(), 4)
	assert.Empty(t, m.Toasts())
	assert.True(t, m.ListState().IsSucceeded())
}

// =============================================================================
// FETCH FAILURES
// =============================================================================

func TestFetch_FailureKeepsCacheAndToasts(t *testing.T) {
	svc := fakesvc.New(t)
	svc.SeedLeads(6)
	m := newBoard(t, svc, nil)
	m = drain(t, m, m.Init())

	svc.Fail(fakesvc.PathListLeads, fakesvc.Failure{Status: 500, Message: "database offline"})
	m, cmd := update(t, m, keyMsg(tea.KeyCtrlR))
	require.NotNil(t, cmd)
	m, tick := update(t, m, cmd())

	assert.NotNil(t, tick, "toast ticker starts")
	assert.Len(t, m.Leads(), 6)
	assert.Equal(t, request.Failed("database offline"), m.ListState())
	toasts := m.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "database offline", toasts[0].Message)
	assert.Contains(t, m.View(), "stale")
}

func TestFetch_NetworkFailureMessage(t *testing.T) {
	svc := fakesvc.New(t)
	m := newBoard(t, svc, nil)
	svc.Close()

	m = drain(t, m, m.Refresh())
	assert.Equal(t, request.Failed(remote.NetworkErrorMessage), m.ListState())
	assert.False(t, m.Loaded())
}

func TestRefreshKey_DisabledWhileInFlight(t *testing.T) {
	svc := fakesvc.New(t)
	m := newBoard(t, svc, nil)

	_ = m.Refresh()
	_, cmd := update(t, m, keyMsg(tea.KeyCtrlR))
	assert.Nil(t, cmd)
}

// =============================================================================
// PAGINATION
// =============================================================================

func TestPaging_KeysMoveBetweenPages(t *testing.T) {
	svc := fakesvc.New(t)
	svc.SeedLeads(12)
	m := newBoard(t, svc, nil)
	m = drain(t, m, m.Init())
	m = focusTableKeys(t, m)

	m, _ = update(t, m, keyMsg(tea.KeyRight))
	assert.Equal(t, 2, m.Page().Current)
	assert.Equal(t, "lead-6", m.VisibleLeads()[0].ID)

	m, _ = update(t, m, runes("9"))
	assert.Equal(t, 2, m.Page().Current, "out-of-range page is a no-op")

	m, _ = update(t, m, runes("3"))
	assert.Equal(t, 3, m.Page().Current)
	assert.Len(t, m.VisibleLeads(), 2)
	assert.Contains(t, m.View(), "Showing 11 to 12 of 12 leads")

	m, _ = update(t, m, keyMsg(tea.KeyRight))
	assert.Equal(t, 3, m.Page().Current)

	m, _ = update(t, m, runes("h"))
	assert.Equal(t, 2, m.Page().Current)
}

func TestPaging_DigitsTypeIntoFormsWhenFocused(t *testing.T) {
	svc := fakesvc.New(t)
	svc.SeedLeads(12)
	m := newBoard(t, svc, nil)
	m = drain(t, m, m.Init())

	m, _ = update(t, m, runes("3"))
	assert.Equal(t, 1, m.Page().Current)
	assert.Equal(t, "3", m.LeadForm().Draft().Name)
}

func TestPaging_ClampsWhenCollectionShrinks(t *testing.T) {
	svc := fakesvc.New(t)
	svc.SeedLeads(12)
	m := newBoard(t, svc, nil)
	m = drain(t, m, m.Init())
	require.True(t, m.ChangePage(3))

	svc.SeedLeads(4)
	m = drain(t, m, m.Refresh())

	assert.Equal(t, 1, m.Page().Total)
	assert.Equal(t, 1, m.Page().Current)
	assert.Len(t, m.VisibleLeads(), 4)
}

func TestPaging_EmptyCollection(t *testing.T) {
	svc := fakesvc.New(t)
	m := newBoard(t, svc, nil)
	m = drain(t, m, m.Init())

	assert.Equal(t, 1, m.Page().Total)
	assert.Empty(t, m.VisibleLeads())
	assert.False(t, m.ChangePage(2))
	assert.Contains(t, m.View(), components.EmptyLeadsText)
}

// =============================================================================
// WORD FORM, FOCUS AND HELP
// =============================================================================

func TestAnalyze_ThroughBoard(t *testing.T) {
	svc := fakesvc.New(t)
	svc.SetSentiment("great", "positive")
	store := &memStore{}
	m := newBoard(t, svc, store)

	for m.focus != focusWord {
		m, _ = update(t, m, keyMsg(tea.KeyTab))
	}
	m.WordForm().SetWord("great")
	m, cmd := update(t, m, keyMsg(tea.KeyEnter))
	m = drain(t, m, cmd)

	assert.Equal(t, "positive", m.WordForm().Sentiment())
	assert.Empty(t, m.WordForm().Word())
	assert.Equal(t, []string{"great"}, store.words)
	assert.Zero(t, svc.Hits(fakesvc.PathListLeads), "analysis never touches the lead list")
}

func TestFocus_CyclesBothWays(t *testing.T) {
	svc := fakesvc.New(t)
	m := newBoard(t, svc, nil)
	assert.Equal(t, focusName, m.focus)

	m, _ = update(t, m, keyMsg(tea.KeyShiftTab))
	assert.Equal(t, focusTable, m.focus)

	m, _ = update(t, m, keyMsg(tea.KeyTab))
	assert.Equal(t, focusName, m.focus)
}

func TestHelp_Overlay(t *testing.T) {
	svc := fakesvc.New(t)
	m := newBoard(t, svc, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = focusTableKeys(t, m)

	m, _ = update(t, m, runes("?"))
	require.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Quit")

	m, _ = update(t, m, keyMsg(tea.KeyEsc))
	assert.False(t, m.showHelp)
}

func TestQuit(t *testing.T) {
	svc := fakesvc.New(t)
	m := newBoard(t, svc, nil)

	_, cmd := update(t, m, keyMsg(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSnapshot_LateWriteOfOlderFetchIsSkipped(t *testing.T) {
	svc := fakesvc.New(t)
	store := &memStore{}
	m := newBoard(t, svc, store)

	first := m.Refresh()
	second := m.Refresh()

	svc.SeedLeads(2)
	older := first().(LeadsFetchedMsg)
	svc.SeedLeads(4)
	newer := second().(LeadsFetchedMsg)

	m, saveOlder := update(t, m, older)
	require.NotNil(t, saveOlder)
	m, saveNewer := update(t, m, newer)
	require.NotNil(t, saveNewer)
	assert.Len(t, m.Leads(), 4)

	// The newer write commits before the older one runs.
	assert.Nil(t, saveNewer())
	assert.Nil(t, saveOlder())

	require.Len(t, store.snapshots, 1)
	assert.Equal(t, ids(m.Leads()), ids(store.snapshots[0]))
}

func TestSnapshotWriter_RetriesAfterFailure(t *testing.T) {
	store := &flakyStore{failures: 1}
	w := newSnapshotWriter(store)

	assert.True(t, w.write(context.Background(), 1, []model.Lead{{ID: "a"}}))
	assert.Zero(t, w.written, "a failed write does not advance the mark")
	assert.True(t, w.write(context.Background(), 1, []model.Lead{{ID: "a"}}))
	assert.Equal(t, uint64(1), w.written)
	assert.False(t, w.write(context.Background(), 1, nil))
	assert.Equal(t, 2, store.calls)
}

type flakyStore struct {
	failures int
	calls    int
}

func (s *flakyStore) SaveSnapshot(context.Context, []model.Lead) error {
	s.calls++
	if s.failures > 0 {
		s.failures--
		return errors.New("disk full")
	}
	return nil
}

func (s *flakyStore) RecordAnalysis(context.Context, string, string) error { return nil }
