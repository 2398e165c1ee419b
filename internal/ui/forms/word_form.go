// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package forms

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/leaddesk-tui/internal/model"
	"github.com/jeranaias/leaddesk-tui/internal/remote"
	"github.com/jeranaias/leaddesk-tui/internal/request"
	"github.com/jeranaias/leaddesk-tui/internal/ui/components"
	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
)

// EmptyWordMessage is shown when Analyze is pressed with no word.
const EmptyWordMessage = "Error: please enter a word"

// WordForm owns the word draft and the analyze lifecycle. It is independent
// of the lead form; both may be in flight at once.
type WordForm struct {
	field    components.Field
	analyzer WordAnalyzer
	recorder AnalysisRecorder
	life     *request.Lifecycle
	timeout  time.Duration
	theme    *styles.Theme
}

// NewWordForm creates an idle word form.
func NewWordForm(theme *styles.Theme, analyzer WordAnalyzer, tracker *request.Tracker, timeout time.Duration) *WordForm {
	return &WordForm{
		field:    components.NewField(theme, "Word", "great"),
		analyzer: analyzer,
		life:     request.NewLifecycle(request.OpAnalyzeWord, tracker),
		timeout:  timeout,
		theme:    theme,
	}
}

// SetRecorder stores successful analyses in r. A nil r disables history.
func (f *WordForm) SetRecorder(r AnalysisRecorder) {
	f.recorder = r
}

// Word returns the word as typed.
func (f *WordForm) Word() string {
	return f.field.Value()
}

// SetWord replaces the word.
func (f *WordForm) SetWord(w string) {
	f.field.SetValue(w)
}

// State returns the visible analyze lifecycle.
func (f *WordForm) State() request.State {
	return f.life.State()
}

// Sentiment returns the label of the latest applied successful analysis.
func (f *WordForm) Sentiment() string {
	if out := f.life.Outcome(); out.IsSucceeded() {
		return out.Message
	}
	return ""
}

// CanSubmit reports whether the analyze control should be enabled.
func (f *WordForm) CanSubmit() bool {
	return !f.life.State().IsInFlight()
}

// Submit starts an analyze request for the current word. A blank word is
// rejected locally and nothing is sent.
func (f *WordForm) Submit() tea.Cmd {
	word := model.NormalizeText(f.field.Value())
	if word == "" {
		f.life.Reject(EmptyWordMessage)
		return nil
	}

	tok := f.life.Begin()
	analyzer, timeout := f.analyzer, f.timeout
	return func() tea.Msg {
		ctx, cancel := request.Context(context.Background(), timeout)
		defer cancel()

		label, err := analyzer.AnalyzeWord(ctx, word)
		return WordAnalyzedMsg{Token: tok, Word: word, Sentiment: label, Err: err}
	}
}

// Resolve applies an analyze outcome. On success the word is cleared and
// the returned command records the analysis; on failure the word is kept.
// Stale outcomes change nothing and are not recorded.
func (f *WordForm) Resolve(msg WordAnalyzedMsg) tea.Cmd {
	if msg.Err != nil {
		f.life.Finish(msg.Token, request.Failed(analyzeFailureText(msg.Err)))
		return nil
	}
	if !f.life.Finish(msg.Token, request.Succeeded(msg.Sentiment)) {
		return nil
	}
	f.field.Reset()
	return f.record(msg.Word, msg.Sentiment)
}

// record appends an applied analysis to the history.
func (f *WordForm) record(word, label string) tea.Cmd {
	recorder := f.recorder
	if recorder == nil {
		return nil
	}
	return func() tea.Msg {
		if err := recorder.RecordAnalysis(context.Background(), word, label); err != nil {
			log.Printf("HISTORY_WRITE_FAILED | word=%q error=%v", word, err)
		}
		return nil
	}
}

func analyzeFailureText(err error) string {
	if remote.IsTransport(err) {
		return remote.NetworkErrorMessage
	}
	return "Error: " + remote.UserMessage(err, AnalyzeFailedFallback)
}

// Focus focuses the word field.
func (f *WordForm) Focus() tea.Cmd {
	return f.field.Focus()
}

// Blur removes focus from the word field.
func (f *WordForm) Blur() {
	f.field.Blur()
}

// Focused reports whether the word field has focus.
func (f *WordForm) Focused() bool {
	return f.field.Focused()
}

// Update forwards input to the word field when focused.
func (f *WordForm) Update(msg tea.Msg) tea.Cmd {
	if !f.field.Focused() {
		return nil
	}
	var cmd tea.Cmd
	f.field, cmd = f.field.Update(msg)
	return cmd
}

// View renders the form.
func (f *WordForm) View() string {
	t := f.theme
	lines := []string{t.PanelTitle.Render("Sentiment Analysis"), f.field.View()}

	button := t.Button.Render("Analyze")
	if !f.CanSubmit() {
		button = t.ButtonDisabled.Render("Analyzing...")
	}
	lines = append(lines, "", button)

	out := f.life.Outcome()
	switch {
	case out.IsSucceeded():
		lines = append(lines, "", t.StatsLabel.Render("Sentiment: ")+components.RenderSentiment(out.Message))
	case out.IsFailed():
		lines = append(lines, "", components.RenderFlash(t, out))
	}

	panel := t.Panel
	if f.field.Focused() {
		panel = t.PanelActive
	}
	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
