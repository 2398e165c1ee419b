// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package board

import (
	"log"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
)

const helpMarkdown = `# Lead board

## Forms

| Key | Action |
|-----|--------|
| Tab / Shift+Tab | Move between fields and the lead table |
| Enter | Submit the focused form |

A form keeps your input when a request fails, and clears it on success.
Buttons read *Creating...* or *Analyzing...* while a request is pending.

## Leads

| Key | Action |
|-----|--------|
| Ctrl+R | Refresh the list |
| Left / h, Right / l | Previous / next page |
| 1-9 | Jump to a page |

Page keys work while the table has focus. Creating a lead refreshes the
list automatically.

## General

| Key | Action |
|-----|--------|
| ? or F1 | Toggle this help |
| Esc | Close this help |
| Ctrl+C | Quit |
`

// renderHelp renders the help document for width columns, falling back to
// the raw markdown if rendering fails.
func renderHelp(theme *styles.Theme, width int) string {
	wrap := width - 8
	if wrap < 40 {
		wrap = 40
	}

	style := "dark"
	if !theme.IsDark {
		style = "light"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithColorProfile(theme.ColorProfile),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		log.Printf("HELP_RENDER_FAILED | error=%v", err)
		return helpMarkdown
	}

	out, err := r.Render(helpMarkdown)
	if err != nil {
		log.Printf("HELP_RENDER_FAILED | error=%v", err)
		return helpMarkdown
	}
	return out
}
