// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package board

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/leaddesk-tui/internal/ui/components"
	"github.com/jeranaias/leaddesk-tui/internal/ui/forms"
)

// Update handles messages and returns the updated board.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case LeadsFetchedMsg:
		return m, m.applyFetch(msg)

	case forms.LeadCreatedMsg:
		return m, m.leadForm.Resolve(msg)

	case forms.WordAnalyzedMsg:
		return m, m.wordForm.Resolve(msg)

	case forms.RefreshRequestedMsg:
		log.Printf("REFRESH_REQUESTED | cause=%s", msg.Cause)
		return m, m.Refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.ToastTickMsg:
		if m.toasts.Tick() {
			return m, components.ToastTickCmd()
		}
		m.ticking = false
		return m, nil
	}

	// Cursor blink and anything else goes to the focused input.
	return m, m.forwardToFocus(msg)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Close) || key.Matches(msg, m.keys.Help) {
			m.showHelp = false
		}
		return m, nil
	}

	typing := m.focus != focusTable

	switch {
	case msg.String() == "f1" || (!typing && key.Matches(msg, m.keys.Help)):
		m.openHelp()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		return m, m.setFocus((m.focus + 1) % focusCount)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)

	case key.Matches(msg, m.keys.Refresh):
		// The refresh control is disabled while a fetch is in flight.
		if m.list.State().IsInFlight() {
			return m, nil
		}
		return m, m.Refresh()

	case key.Matches(msg, m.keys.Submit):
		return m, m.submitFocused()
	}

	if !typing {
		switch {
		case key.Matches(msg, m.keys.PrevPage):
			m.ChangePage(m.pages.Current - 1)
			return m, nil
		case key.Matches(msg, m.keys.NextPage):
			m.ChangePage(m.pages.Current + 1)
			return m, nil
		case key.Matches(msg, m.keys.JumpPage):
			m.ChangePage(int(msg.Runes[0] - '0'))
			return m, nil
		}
	}

	return m, m.forwardToFocus(msg)
}

// submitFocused submits the form that owns the focused field. A form whose
// request is in flight shows a disabled control and ignores Enter.
func (m *Model) submitFocused() tea.Cmd {
	switch m.focus {
	case focusName, focusEmail, focusCampaign:
		if !m.leadForm.CanSubmit() {
			return nil
		}
		return m.leadForm.Submit()
	case focusWord:
		if !m.wordForm.CanSubmit() {
			return nil
		}
		return m.wordForm.Submit()
	default:
		return nil
	}
}

func (m *Model) setFocus(target focusTarget) tea.Cmd {
	m.focus = target
	m.leadForm.Blur()
	m.wordForm.Blur()
	m.table.Blur()

	switch target {
	case focusName:
		return m.leadForm.Focus(forms.FieldName)
	case focusEmail:
		return m.leadForm.Focus(forms.FieldEmail)
	case focusCampaign:
		return m.leadForm.Focus(forms.FieldCampaign)
	case focusWord:
		return m.wordForm.Focus()
	default:
		m.table.Focus()
		return nil
	}
}

func (m *Model) forwardToFocus(msg tea.Msg) tea.Cmd {
	switch m.focus {
	case focusName, focusEmail, focusCampaign:
		return m.leadForm.Update(msg)
	case focusWord:
		return m.wordForm.Update(msg)
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return cmd
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.help.Width = width
	if m.showHelp {
		m.helpDoc = renderHelp(m.theme, width)
	}
}

func (m *Model) openHelp() {
	m.showHelp = true
	m.helpDoc = renderHelp(m.theme, m.width)
}
