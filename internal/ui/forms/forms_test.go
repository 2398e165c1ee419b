// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package forms

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/leaddesk-tui/internal/leads"
	"github.com/jeranaias/leaddesk-tui/internal/model"
	"github.com/jeranaias/leaddesk-tui/internal/remote"
	"github.com/jeranaias/leaddesk-tui/internal/request"
	"github.com/jeranaias/leaddesk-tui/internal/sentiment"
	"github.com/jeranaias/leaddesk-tui/internal/testutil/fakesvc"
	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
)

var validDraft = model.LeadDraft{Name: "Ada Lovelace", Email: "ada@example.com", CampaignID: "launch"}

type stubCreator struct {
	mu    sync.Mutex
	calls []model.LeadDraft
	err   error
}

func (s *stubCreator) CreateLead(_ context.Context, d model.LeadDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, d)
	return s.err
}

type stubRecorder struct {
	words, labels []string
}

func (r *stubRecorder) RecordAnalysis(_ context.Context, word, label string) error {
	r.words = append(r.words, word)
	r.labels = append(r.labels, label)
	return nil
}

func submitLead(t *testing.T, f *LeadForm) LeadCreatedMsg {
	t.Helper()
	cmd := f.Submit()
	require.NotNil(t, cmd)
	msg, ok := cmd().(LeadCreatedMsg)
	require.True(t, ok)
	return msg
}

// =============================================================================
// LEAD FORM TESTS
// =============================================================================

func TestLeadForm_SuccessClearsDraftAndRequestsRefresh(t *testing.T) {
	svc := fakesvc.New(t)
	f := NewLeadForm(styles.NewTheme(), leads.NewClient(&remote.Config{BaseURL: svc.URL()}), request.NewTracker(), 0)
	f.SetDraft(validDraft)

	msg := submitLead(t, f)
	require.NoError(t, msg.Err)

	refresh := f.Resolve(msg)
	require.NotNil(t, refresh)
	assert.IsType(t, RefreshRequestedMsg{}, refresh())

	assert.True(t, f.Draft().IsZero())
	assert.Equal(t, request.Succeeded(CreateSuccessMessage), f.State())
	assert.Equal(t, []model.LeadDraft{validDraft}, svc.Created())
}

func TestLeadForm_FailureKeepsDraft(t *testing.T) {
	svc := fakesvc.New(t)
	svc.Fail(fakesvc.PathCreateLead, fakesvc.Failure{HTTPStatus: 409, Message: "Email already exists"})
	f := NewLeadForm(styles.NewTheme(), leads.NewClient(&remote.Config{BaseURL: svc.URL()}), request.NewTracker(), 0)
	f.SetDraft(validDraft)

	msg := submitLead(t, f)
	assert.Nil(t, f.Resolve(msg), "failed create must not trigger a refresh")

	assert.Equal(t, validDraft, f.Draft())
	assert.Equal(t, request.Failed("Error: Email already exists"), f.State())
	assert.True(t, f.CanSubmit())
}

func TestLeadForm_FailureFallbackAndNetworkMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"service without message", remote.Service("create lead", 500, "", leads.CreateFailedMessage), "Error: Failed to create lead"},
		{"transport", remote.Transport("create lead", errors.New("dial tcp: refused")), remote.NetworkErrorMessage},
		{"unknown", errors.New("boom"), "Error: " + CreateFailedFallback},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewLeadForm(styles.NewTheme(), &stubCreator{err: tc.err}, request.NewTracker(), 0)
			f.SetDraft(validDraft)

			f.Resolve(submitLead(t, f))
			assert.Equal(t, request.Failed(tc.want), f.State())
			assert.Equal(t, validDraft, f.Draft())
		})
	}
}

func TestLeadForm_IncompleteDraftRejectedLocally(t *testing.T) {
	creator := &stubCreator{}
	f := NewLeadForm(styles.NewTheme(), creator, request.NewTracker(), 0)
	f.SetDraft(model.LeadDraft{Name: "  ", Email: "a@b.c"})

	assert.Nil(t, f.Submit())
	assert.Empty(t, creator.calls)
	assert.True(t, f.State().IsFailed())
	assert.Contains(t, f.State().Message, "name")
	assert.Contains(t, f.State().Message, "campaignId")
	assert.Equal(t, "a@b.c", f.Draft().Email, "draft is kept")
}

func TestLeadForm_SubmitNormalizesDraft(t *testing.T) {
	creator := &stubCreator{}
	f := NewLeadForm(styles.NewTheme(), creator, request.NewTracker(), 0)
	f.SetDraft(model.LeadDraft{Name: "  Ada ", Email: " ada@example.com", CampaignID: "launch  "})

	msg := submitLead(t, f)
	assert.Equal(t, validDraft.Email, msg.Draft.Email)
	require.Len(t, creator.calls, 1)
	assert.Equal(t, "Ada", creator.calls[0].Name)
}

func TestLeadForm_InFlightDisablesButStillSubmits(t *testing.T) {
	creator := &stubCreator{}
	f := NewLeadForm(styles.NewTheme(), creator, request.NewTracker(), 0)
	f.SetDraft(validDraft)

	first := f.Submit()
	require.NotNil(t, first)
	assert.False(t, f.CanSubmit())
	assert.True(t, f.State().IsInFlight())
	assert.Contains(t, f.View(), "Creating...")

	second := f.Submit()
	assert.NotNil(t, second, "double submit issues a second request")
}

func TestLeadForm_StaleSuccessStillRefreshes(t *testing.T) {
	creator := &stubCreator{}
	f := NewLeadForm(styles.NewTheme(), creator, request.NewTracker(), 0)
	f.SetDraft(validDraft)

	older := f.Submit()().(LeadCreatedMsg)
	f.SetDraft(model.LeadDraft{Name: "Bob", Email: "bob@example.com", CampaignID: "x"})
	newer := f.Submit()().(LeadCreatedMsg)

	// The newer request fails first and settles the form.
	newer.Err = remote.Service("create lead", 400, "Bad email", "")
	f.Resolve(newer)

	refresh := f.Resolve(older)
	require.NotNil(t, refresh, "a successful create must still be observed")
	assert.Equal(t, request.Failed("Error: Bad email"), f.State(), "stale success must not replace newer feedback")
	assert.Equal(t, "Bob", f.Draft().Name, "stale success must not clear the newer draft")
}

func TestLeadForm_Focus(t *testing.T) {
	f := NewLeadForm(styles.NewTheme(), &stubCreator{}, request.NewTracker(), 0)
	assert.Equal(t, -1, f.Focused())

	f.Focus(FieldEmail)
	assert.Equal(t, FieldEmail, f.Focused())
	assert.Equal(t, 3, f.FieldCount())

	f.Focus(99)
	assert.Equal(t, -1, f.Focused())
}

// =============================================================================
// WORD FORM TESTS
// =============================================================================

func TestWordForm_AnalyzeGreat(t *testing.T) {
	svc := fakesvc.New(t)
	svc.SetSentiment("great", "positive")
	f := NewWordForm(styles.NewTheme(), sentiment.NewClient(&remote.Config{BaseURL: svc.URL()}), request.NewTracker(), 0)
	rec := &stubRecorder{}
	f.SetRecorder(rec)
	f.SetWord("great")

	cmd := f.Submit()
	require.NotNil(t, cmd)
	assert.True(t, f.State().IsInFlight())

	record := f.Resolve(cmd().(WordAnalyzedMsg))
	require.NotNil(t, record)
	assert.Empty(t, rec.words, "history is written by the returned command")
	assert.Nil(t, record())

	assert.Equal(t, "positive", f.Sentiment())
	assert.Equal(t, request.Succeeded("positive"), f.State())
	assert.Empty(t, f.Word())
	assert.Equal(t, []string{"great"}, rec.words)
	assert.Equal(t, []string{"positive"}, rec.labels)
	assert.Contains(t, f.View(), "positive")
}

func TestWordForm_EmptyWordNeverSent(t *testing.T) {
	svc := fakesvc.New(t)
	f := NewWordForm(styles.NewTheme(), sentiment.NewClient(&remote.Config{BaseURL: svc.URL()}), request.NewTracker(), 0)
	f.SetWord("   ")

	assert.Nil(t, f.Submit())
	assert.Equal(t, request.Failed(EmptyWordMessage), f.State())
	assert.Zero(t, svc.Hits(fakesvc.PathAnalyzeWord))
}

func TestWordForm_FailureKeepsWord(t *testing.T) {
	svc := fakesvc.New(t)
	svc.Fail(fakesvc.PathAnalyzeWord, fakesvc.Failure{Status: 503, Message: "Model warming up"})
	f := NewWordForm(styles.NewTheme(), sentiment.NewClient(&remote.Config{BaseURL: svc.URL()}), request.NewTracker(), 0)
	rec := &stubRecorder{}
	f.SetRecorder(rec)
	f.SetWord("great")

	assert.Nil(t, f.Resolve(f.Submit()().(WordAnalyzedMsg)))

	assert.Equal(t, "great", f.Word())
	assert.Equal(t, request.Failed("Error: Model warming up"), f.State())
	assert.Empty(t, f.Sentiment())
	assert.Empty(t, rec.words, "failed analyses are not recorded")
}

func TestWordForm_IndependentOfLeadForm(t *testing.T) {
	tracker := request.NewTracker()
	lf := NewLeadForm(styles.NewTheme(), &stubCreator{}, tracker, 0)
	wf := NewWordForm(styles.NewTheme(), sentiment.NewClient(nil), tracker, 0)

	lf.SetDraft(validDraft)
	require.NotNil(t, lf.Submit())

	assert.True(t, lf.State().IsInFlight())
	assert.True(t, wf.State().IsIdle())
	assert.True(t, wf.CanSubmit())
}

func TestWordForm_OnlyAppliedAnalysisIsRecorded(t *testing.T) {
	svc := fakesvc.New(t)
	svc.SetSentiment("good", "positive")
	svc.SetSentiment("bad", "negative")
	f := NewWordForm(styles.NewTheme(), sentiment.NewClient(&remote.Config{BaseURL: svc.URL()}), request.NewTracker(), 0)
	rec := &stubRecorder{}
	f.SetRecorder(rec)

	f.SetWord("good")
	older := f.Submit()
	require.NotNil(t, older)
	f.SetWord("bad")
	newer := f.Submit()
	require.NotNil(t, newer)

	// The newer request completes first; the older one arrives late.
	if record := f.Resolve(newer().(WordAnalyzedMsg)); record != nil {
		record()
	}
	assert.Nil(t, f.Resolve(older().(WordAnalyzedMsg)), "stale success must not be recorded")

	assert.Equal(t, []string{"bad"}, rec.words)
	assert.Equal(t, []string{"negative"}, rec.labels)
	assert.Equal(t, "negative", f.Sentiment())
	assert.Equal(t, []string{"good", "bad"}, svc.Analyzed())
}
