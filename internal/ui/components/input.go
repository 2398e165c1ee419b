// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
)

// =============================================================================
// FIELD COMPONENT - Labeled single-line text input
// =============================================================================

// DefaultFieldLimit caps the characters a field accepts.
const DefaultFieldLimit = 256

// Field is a labeled text input used by the forms.
type Field struct {
	Label string
	input textinput.Model
	theme *styles.Theme
}

// NewField creates a field with label and placeholder.
func NewField(theme *styles.Theme, label, placeholder string) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = DefaultFieldLimit
	ti.Width = 32
	ti.Prompt = "> "

	ti.PromptStyle = lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	ti.TextStyle = lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	ti.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	ti.Cursor.Style = lipgloss.NewStyle().
		Foreground(styles.Cyan)

	return Field{Label: label, input: ti, theme: theme}
}

// Focus focuses the field and returns the cursor blink command.
func (f *Field) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes focus from the field.
func (f *Field) Blur() {
	f.input.Blur()
}

// Focused reports whether the field has focus.
func (f Field) Focused() bool {
	return f.input.Focused()
}

// SetWidth sets the visible input width.
func (f *Field) SetWidth(width int) {
	if width < 12 {
		width = 12
	}
	f.input.Width = width
}

// Value returns the raw text.
func (f Field) Value() string {
	return f.input.Value()
}

// SetValue replaces the text.
func (f *Field) SetValue(value string) {
	f.input.SetValue(value)
}

// Reset clears the text.
func (f *Field) Reset() {
	f.input.Reset()
}

// Update forwards keystrokes to the input.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// View renders the label and the input on one line.
func (f Field) View() string {
	label := f.theme.FieldLabel.Render(f.Label)
	if f.input.Focused() {
		label = f.theme.FieldLabelActive.Render(f.Label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, label, f.input.View())
}
