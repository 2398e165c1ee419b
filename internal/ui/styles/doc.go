// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the leaddesk TUI.

# Color System (colors.go)

  - Purple - focus and selection
  - Cyan - titles and key hints
  - Emerald - success and positive sentiment
  - Rose - errors and negative sentiment
  - Amber - warnings and neutral sentiment

Status text never relies on color alone: RenderSuccess, RenderError and the
Theme's Status helper prefix an ASCII indicator such as [OK] or [X].

# Theme (theme.go)

NewTheme detects the terminal color profile with termenv and builds every
lipgloss style the board uses. TableStyles adapts the palette to the bubbles
table component.

	theme := styles.NewTheme()
	theme.SetSize(msg.Width, msg.Height)
	view := theme.Status(ok, "Lead created successfully!")
*/
package styles
