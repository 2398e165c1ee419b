// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/leaddesk-tui/internal/request"
	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
	"github.com/jeranaias/leaddesk-tui/internal/util"
)

// =============================================================================
// FLASH MESSAGES
// =============================================================================

// RenderFlash renders the outcome message of a form lifecycle. Success is
// green, failure red; other states render nothing.
func RenderFlash(theme *styles.Theme, state request.State) string {
	if state.Message == "" {
		return ""
	}
	switch state.Phase {
	case request.PhaseSucceeded:
		return theme.Status(true, state.Message)
	case request.PhaseFailed:
		return theme.Status(false, state.Message)
	default:
		return ""
	}
}

// RenderSentiment renders a sentiment label in its color.
func RenderSentiment(label string) string {
	return lipgloss.NewStyle().
		Foreground(styles.SentimentColor(label)).
		Bold(true).
		Render(label)
}

// =============================================================================
// STATS
// =============================================================================

// Stats summarizes the lead collection.
type Stats struct {
	TotalLeads  int
	CurrentPage int
	TotalPages  int
	// Stale is set when the last refresh failed and the rows may be old.
	Stale bool
}

// RenderStats renders the stats bar.
func RenderStats(theme *styles.Theme, s Stats) string {
	item := func(label, value string) string {
		return theme.StatsLabel.Render(label+" ") + theme.StatsValue.Render(value)
	}

	line := item("Total leads", util.FormatCount(s.TotalLeads)) + "   " +
		item("Page", strconv.Itoa(s.CurrentPage)+" / "+strconv.Itoa(s.TotalPages))
	if s.Stale {
		line += "   " + theme.WarningStyle.Render(styles.StatusIndicators.Warning+" stale")
	}
	return theme.StatsBar.Render(line)
}
