// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
	"github.com/jeranaias/leaddesk-tui/internal/util"
)

// init configures lipgloss for the terminal, honouring NO_COLOR and
// FORCE_COLOR.
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// labelWidth is the column width of RenderLabel.
const labelWidth = 14

// =============================================================================
// SHARED STYLES FOR ALL CLI COMMANDS
// =============================================================================
//
// Status lines use styles.RenderSuccess and friends so the CLI and the board
// share indicators.

var (
	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	// DimStyle is used for secondary information and hints
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// HeaderStyle is used for table headers
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Purple).
			Padding(0, 1)

	// CellStyle is used for table cells
	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// RenderLabel renders a fixed-width field label.
func RenderLabel(label string) string {
	return LabelStyle.Render(util.PadRight(label, labelWidth))
}

// RenderSentiment renders a sentiment label in its color.
func RenderSentiment(label string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(styles.SentimentColor(label)).Render(label)
}
