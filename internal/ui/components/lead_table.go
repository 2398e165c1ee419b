// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/leaddesk-tui/internal/model"
	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
	"github.com/jeranaias/leaddesk-tui/internal/util"
)

// EmptyLeadsText is shown instead of the table when there are no leads.
const EmptyLeadsText = "No leads found. Create your first lead!"

// Column widths, narrowest layout first.
const (
	colNo       = 4
	colName     = 20
	colEmail    = 28
	colCampaign = 14
	colCreated  = 17
)

// LeadTable renders one page of leads.
type LeadTable struct {
	table      table.Model
	theme      *styles.Theme
	dateFormat string
	empty      bool
}

// NewLeadTable creates a table with the No, Name, Email, Campaign ID and
// Created At columns.
func NewLeadTable(theme *styles.Theme, dateFormat string, pageSize int) LeadTable {
	t := table.New(
		table.WithColumns(LeadColumns()),
		table.WithHeight(pageSize+1),
		table.WithStyles(theme.TableStyles()),
	)
	return LeadTable{table: t, theme: theme, dateFormat: dateFormat, empty: true}
}

// LeadColumns returns the table columns.
func LeadColumns() []table.Column {
	return []table.Column{
		{Title: "No", Width: colNo},
		{Title: "Name", Width: colName},
		{Title: "Email", Width: colEmail},
		{Title: "Campaign ID", Width: colCampaign},
		{Title: "Created At", Width: colCreated},
	}
}

// LeadRows converts a page of leads to rows. Rows are numbered from
// offset+1 so numbering continues across pages.
func LeadRows(page []model.Lead, offset int, dateFormat string) []table.Row {
	rows := make([]table.Row, 0, len(page))
	for i, lead := range page {
		rows = append(rows, table.Row{
			strconv.Itoa(offset + i + 1),
			util.Truncate(lead.Name, colName),
			util.Truncate(lead.Email, colEmail),
			util.Truncate(lead.CampaignID, colCampaign),
			lead.FormatCreated(dateFormat),
		})
	}
	return rows
}

// SetPage replaces the visible rows.
func (t *LeadTable) SetPage(page []model.Lead, offset int) {
	t.empty = len(page) == 0
	t.table.SetRows(LeadRows(page, offset, t.dateFormat))
	t.table.SetCursor(0)
}

// Rows returns the visible rows.
func (t LeadTable) Rows() []table.Row {
	return t.table.Rows()
}

// Focus lets the table take row navigation keys.
func (t *LeadTable) Focus() { t.table.Focus() }

// Blur stops the table from taking keys.
func (t *LeadTable) Blur() { t.table.Blur() }

// Focused reports whether the table has focus.
func (t LeadTable) Focused() bool { return t.table.Focused() }

// Update forwards navigation keys to the table.
func (t LeadTable) Update(msg tea.Msg) (LeadTable, tea.Cmd) {
	var cmd tea.Cmd
	t.table, cmd = t.table.Update(msg)
	return t, cmd
}

// View renders the table or the empty state.
func (t LeadTable) View() string {
	if t.empty {
		return t.theme.EmptyState.Render(EmptyLeadsText)
	}
	return t.table.View()
}
