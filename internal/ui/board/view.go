// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package board

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/leaddesk-tui/internal/ui/components"
	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
)

// View renders the board.
func (m Model) View() string {
	t := m.theme

	if m.showHelp {
		return t.App.Render(t.HelpOverlay.Render(m.helpDoc))
	}

	sections := []string{m.viewHeader(), m.viewForms(), m.viewLeads()}
	if m.opts.ShowStats {
		sections = append(sections, components.RenderStats(t, components.Stats{
			TotalLeads:  len(m.cache),
			CurrentPage: m.pages.Current,
			TotalPages:  m.pages.Total,
			Stale:       m.loaded && m.list.Outcome().IsFailed(),
		}))
	}
	sections = append(sections, m.help.View(m.keys))

	if toasts := m.toasts.Toasts(); len(toasts) > 0 {
		sections = append(sections, components.RenderToastStack(toasts, m.width, time.Now()))
	}

	return t.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewHeader() string {
	t := m.theme
	header := t.Title.Render(m.opts.Title)
	if m.opts.BaseURL != "" {
		header += "  " + t.Subtitle.Render(m.opts.BaseURL)
	}
	return header
}

func (m Model) viewForms() string {
	lead := m.leadForm.View()
	word := m.wordForm.View()
	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		return lipgloss.JoinVertical(lipgloss.Left, lead, word)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, lead, " ", word)
}

func (m Model) viewLeads() string {
	t := m.theme

	refresh := t.Button.Render("Refresh")
	if m.list.State().IsInFlight() {
		refresh = t.ButtonDisabled.Render("Refreshing...")
	}
	title := t.PanelTitle.Render("Leads") + "  " + refresh

	var body string
	if m.list.State().IsInFlight() && !m.loaded {
		sp := m.spinner
		sp.SetActive(true)
		body = t.LoadingText.Render(sp.View())
	} else {
		body = m.table.View()
	}

	lines := []string{title, body}
	if bar := m.bar.View(); bar != "" {
		lines = append(lines, bar)
	}

	panel := t.Panel
	if m.focus == focusTable {
		panel = t.PanelActive
	}
	return panel.Render(strings.Join(lines, "\n"))
}
