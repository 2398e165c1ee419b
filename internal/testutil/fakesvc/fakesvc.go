// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fakesvc runs an in-process Lead Service and Sentiment Service for tests.
//
// The fake serves the same three endpoints as the real services, keeps its
// lead collection in memory, and can be told to fail any endpoint with a
// chosen HTTP status, envelope status, message or raw body.
package fakesvc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/jeranaias/leaddesk-tui/internal/model"
)

// Endpoint paths served by the fake.
const (
	PathListLeads   = "/leads/getLeads"
	PathCreateLead  = "/leads/createLeads"
	PathAnalyzeWord = "/leads/checkWord"
)

// Failure describes how an endpoint should fail.
type Failure struct {
	// HTTPStatus is the response status code (default 200 for enveloped
	// endpoints, 500 for create).
	HTTPStatus int
	// Status is the envelope status (default 500).
	Status int
	// Message is the envelope/body message; empty omits it.
	Message string
	// RawBody, when set, is written verbatim instead of a JSON envelope.
	RawBody string
}

// Service is an in-memory fake of the remote services.
type Service struct {
	mu         sync.Mutex
	leads      []model.Lead
	sentiments map[string]string
	failures   map[string]*Failure
	hits       map[string]int
	created    []model.LeadDraft
	analyzed   []string
	nextID     int
	now        func() time.Time

	router *mux.Router
	server *httptest.Server
}

// New starts a fake service that is closed when the test ends.
func New(t testing.TB) *Service {
	t.Helper()
	s := NewUnstarted()
	s.server = httptest.NewServer(s.router)
	t.Cleanup(s.server.Close)
	return s
}

// NewUnstarted builds the fake without a listener; use Router to mount it.
func NewUnstarted() *Service {
	s := &Service{
		sentiments: make(map[string]string),
		failures:   make(map[string]*Failure),
		hits:       make(map[string]int),
		nextID:     1,
		now:        time.Now,
	}

	r := mux.NewRouter()
	r.HandleFunc(PathListLeads, s.handleList).Methods(http.MethodGet)
	r.HandleFunc(PathCreateLead, s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc(PathAnalyzeWord, s.handleAnalyze).Methods(http.MethodPost)
	s.router = r
	return s
}

// URL returns the base URL of the running fake.
func (s *Service) URL() string {
	return s.server.URL
}

// Close shuts the listener down; later requests fail as unreachable.
func (s *Service) Close() {
	s.server.Close()
}

// Router returns the request router.
func (s *Service) Router() http.Handler {
	return s.router
}

// =============================================================================
// STATE
// =============================================================================

// SeedLeads replaces the collection with n generated leads and returns them.
func (s *Service) SeedLeads(n int) []model.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.leads = s.leads[:0]
	for i := 0; i < n; i++ {
		s.leads = append(s.leads, s.newLeadLocked(model.LeadDraft{
			Name:       fmt.Sprintf("Lead %d", i+1),
			Email:      fmt.Sprintf("lead%d@example.com", i+1),
			CampaignID: "seed",
		}))
	}
	return model.CloneLeads(s.leads)
}

// SetLeads replaces the collection.
func (s *Service) SetLeads(leads []model.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = model.CloneLeads(leads)
}

// Leads returns a copy of the collection.
func (s *Service) Leads() []model.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneLeads(s.leads)
}

// Created returns every draft the create endpoint accepted.
func (s *Service) Created() []model.LeadDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.LeadDraft, len(s.created))
	copy(out, s.created)
	return out
}

// Analyzed returns every word the analyze endpoint received.
func (s *Service) Analyzed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.analyzed))
	copy(out, s.analyzed)
	return out
}

// SetSentiment fixes the label returned for word. Unknown words are "neutral".
func (s *Service) SetSentiment(word, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sentiments[word] = label
}

// Fail makes the endpoint at path fail until Recover is called.
func (s *Service) Fail(path string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = &f
}

// Recover clears any failure configured for path.
func (s *Service) Recover(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, path)
}

// Hits returns how many requests reached path.
func (s *Service) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *Service) newLeadLocked(d model.LeadDraft) model.Lead {
	ts := s.now().UTC().Truncate(time.Millisecond)
	lead := model.Lead{
		ID:         fmt.Sprintf("lead-%d", s.nextID),
		Name:       d.Name,
		Email:      d.Email,
		CampaignID: d.CampaignID,
		CreatedAt:  model.NewTimestamp(ts),
		UpdatedAt:  model.NewTimestamp(ts),
	}
	s.nextID++
	return lead
}

// hit records a request and returns the failure configured for path, if any.
func (s *Service) hit(path string) *Failure {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits[path]++
	return s.failures[path]
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	if f := s.hit(PathListLeads); f != nil {
		writeFailure(w, f, http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": http.StatusOK,
		"data":   s.Leads(),
	})
}

func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request) {
	if f := s.hit(PathCreateLead); f != nil {
		writeFailure(w, f, http.StatusInternalServerError)
		return
	}

	var draft model.LeadDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid JSON body"})
		return
	}

	s.mu.Lock()
	lead := s.newLeadLocked(draft)
	s.leads = append(s.leads, lead)
	s.created = append(s.created, draft)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":  http.StatusCreated,
		"message": "Lead created",
		"data":    lead,
	})
}

func (s *Service) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if f := s.hit(PathAnalyzeWord); f != nil {
		writeFailure(w, f, http.StatusOK)
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": http.StatusBadRequest, "message": "invalid JSON body"})
		return
	}

	s.mu.Lock()
	s.analyzed = append(s.analyzed, body.Text)
	label, ok := s.sentiments[body.Text]
	s.mu.Unlock()
	if !ok {
		label = "neutral"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": http.StatusOK,
		"data":   map[string]string{"sentiment": label},
	})
}

func writeFailure(w http.ResponseWriter, f *Failure, defaultHTTP int) {
	code := f.HTTPStatus
	if code == 0 {
		code = defaultHTTP
	}
	if f.RawBody != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(f.RawBody))
		return
	}

	status := f.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	body := map[string]any{"status": status}
	if f.Message != "" {
		body["message"] = f.Message
	}
	writeJSON(w, code, body)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
