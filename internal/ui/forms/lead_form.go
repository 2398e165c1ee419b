// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package forms

import (
	"context"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/leaddesk-tui/internal/model"
	"github.com/jeranaias/leaddesk-tui/internal/remote"
	"github.com/jeranaias/leaddesk-tui/internal/request"
	"github.com/jeranaias/leaddesk-tui/internal/ui/components"
	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
)

// Lead form field indexes, in focus order.
const (
	FieldName = iota
	FieldEmail
	FieldCampaign
	leadFieldCount
)

// LeadForm owns the create-lead draft and the create lifecycle.
//
// A submission with an empty field is rejected locally. Otherwise the form
// goes in flight and the returned command performs the create. On success
// the draft is cleared and a refresh is requested; on failure the draft is
// kept so the operator can retry.
type LeadForm struct {
	fields  [leadFieldCount]components.Field
	focus   int
	creator LeadCreator
	life    *request.Lifecycle
	timeout time.Duration
	theme   *styles.Theme
}

// NewLeadForm creates an idle lead form. Requests are tagged by tracker and
// cut short after timeout when it is positive.
func NewLeadForm(theme *styles.Theme, creator LeadCreator, tracker *request.Tracker, timeout time.Duration) *LeadForm {
	f := &LeadForm{
		focus:   -1,
		creator: creator,
		life:    request.NewLifecycle(request.OpCreateLead, tracker),
		timeout: timeout,
		theme:   theme,
	}
	f.fields[FieldName] = components.NewField(theme, "Name", "Jane Doe")
	f.fields[FieldEmail] = components.NewField(theme, "Email", "jane@example.com")
	f.fields[FieldCampaign] = components.NewField(theme, "Campaign ID", "spring-2025")
	return f
}

// =============================================================================
// DRAFT
// =============================================================================

// Draft returns the current field values as typed.
func (f *LeadForm) Draft() model.LeadDraft {
	return model.LeadDraft{
		Name:       f.fields[FieldName].Value(),
		Email:      f.fields[FieldEmail].Value(),
		CampaignID: f.fields[FieldCampaign].Value(),
	}
}

// SetDraft replaces the field values.
func (f *LeadForm) SetDraft(d model.LeadDraft) {
	f.fields[FieldName].SetValue(d.Name)
	f.fields[FieldEmail].SetValue(d.Email)
	f.fields[FieldCampaign].SetValue(d.CampaignID)
}

func (f *LeadForm) clear() {
	for i := range f.fields {
		f.fields[i].Reset()
	}
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// State returns the visible create lifecycle.
func (f *LeadForm) State() request.State {
	return f.life.State()
}

// CanSubmit reports whether the submit control should be enabled.
func (f *LeadForm) CanSubmit() bool {
	return !f.life.State().IsInFlight()
}

// Submit validates the draft and starts a create request. It returns nil
// when the draft is rejected locally. Submitting while a create is already
// in flight issues another request; disabling the control is the view's job.
func (f *LeadForm) Submit() tea.Cmd {
	draft := f.Draft().Normalize()
	if missing := draft.Missing(); len(missing) > 0 {
		msg := "Error: please fill in " + strings.Join(missing, ", ")
		log.Printf("LEAD_DRAFT_REJECTED | missing=%s", strings.Join(missing, ","))
		f.life.Reject(msg)
		return nil
	}

	tok := f.life.Begin()
	creator, timeout := f.creator, f.timeout
	return func() tea.Msg {
		ctx, cancel := request.Context(context.Background(), timeout)
		defer cancel()
		err := creator.CreateLead(ctx, draft)
		return LeadCreatedMsg{Token: tok, Draft: draft, Err: err}
	}
}

// Resolve applies a create outcome. A successful create always requests a
// refresh, even when a newer submission has already settled the form.
func (f *LeadForm) Resolve(msg LeadCreatedMsg) tea.Cmd {
	if msg.Err != nil {
		f.life.Finish(msg.Token, request.Failed(createFailureText(msg.Err)))
		return nil
	}

	if f.life.Finish(msg.Token, request.Succeeded(CreateSuccessMessage)) {
		f.clear()
	}
	return func() tea.Msg {
		return RefreshRequestedMsg{Cause: "lead created"}
	}
}

func createFailureText(err error) string {
	if remote.IsTransport(err) {
		return remote.NetworkErrorMessage
	}
	return "Error: " + remote.UserMessage(err, CreateFailedFallback)
}

// =============================================================================
// FOCUS AND INPUT
// =============================================================================

// Focus focuses field i.
func (f *LeadForm) Focus(i int) tea.Cmd {
	f.Blur()
	if i < 0 || i >= leadFieldCount {
		return nil
	}
	f.focus = i
	return f.fields[i].Focus()
}

// Blur removes focus from every field.
func (f *LeadForm) Blur() {
	for i := range f.fields {
		f.fields[i].Blur()
	}
	f.focus = -1
}

// Focused returns the focused field index, or -1.
func (f *LeadForm) Focused() int {
	return f.focus
}

// FieldCount returns the number of focusable fields.
func (f *LeadForm) FieldCount() int {
	return leadFieldCount
}

// Update forwards input to the focused field.
func (f *LeadForm) Update(msg tea.Msg) tea.Cmd {
	if f.focus < 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return cmd
}

// View renders the form.
func (f *LeadForm) View() string {
	t := f.theme
	lines := []string{t.PanelTitle.Render("Create Lead")}
	for _, field := range f.fields {
		lines = append(lines, field.View())
	}

	button := t.Button.Render("Create Lead")
	if !f.CanSubmit() {
		button = t.ButtonDisabled.Render("Creating...")
	}
	lines = append(lines, "", button)

	if flash := components.RenderFlash(t, f.life.Outcome()); flash != "" {
		lines = append(lines, "", flash)
	}

	panel := t.Panel
	if f.focus >= 0 {
		panel = t.PanelActive
	}
	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
