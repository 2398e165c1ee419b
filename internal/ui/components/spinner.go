// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is a labeled ASCII loading indicator. It keeps ticking while
// hidden so showing it again needs no new command.
type Spinner struct {
	spinner spinner.Model
	message string
	active  bool
}

// NewSpinner creates a spinner showing message while active.
func NewSpinner(message string) Spinner {
	s := spinner.New(
		spinner.WithSpinner(spinner.Spinner{
			Frames: []string{"|", "/", "-", "\\"},
			FPS:    time.Second / 10,
		}),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Purple)),
	)
	return Spinner{spinner: s, message: message}
}

// SetMessage sets the text displayed next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// SetActive shows or hides the spinner.
func (s *Spinner) SetActive(active bool) {
	s.active = active
}

// IsActive reports whether the spinner is shown.
func (s Spinner) IsActive() bool {
	return s.active
}

// Tick returns the command that starts the animation.
func (s Spinner) Tick() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner, or nothing while inactive.
func (s Spinner) View() string {
	if !s.active {
		return ""
	}
	label := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Italic(true).
		Render(s.message)
	return s.spinner.View() + " " + label
}
