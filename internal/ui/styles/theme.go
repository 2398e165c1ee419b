// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// LAYOUT
	// ==========================================================================

	App         lipgloss.Style
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Panel       lipgloss.Style
	PanelActive lipgloss.Style
	PanelTitle  lipgloss.Style

	// ==========================================================================
	// FORMS
	// ==========================================================================

	FieldLabel       lipgloss.Style
	FieldLabelActive lipgloss.Style
	Button           lipgloss.Style
	ButtonDisabled   lipgloss.Style

	// ==========================================================================
	// TABLE AND PAGINATION
	// ==========================================================================

	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	TableSelected lipgloss.Style
	EmptyState    lipgloss.Style
	PageInfo      lipgloss.Style
	PageCurrent   lipgloss.Style
	PageOther     lipgloss.Style

	// ==========================================================================
	// FEEDBACK
	// ==========================================================================

	Spinner     lipgloss.Style
	LoadingText lipgloss.Style
	StatsBar    lipgloss.Style
	StatsLabel  lipgloss.Style
	StatsValue  lipgloss.Style
	HelpOverlay lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.PanelActive = t.Panel.
		BorderForeground(Purple)

	t.PanelTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		MarginBottom(1)

	// Forms
	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Width(13)

	t.FieldLabelActive = t.FieldLabel.
		Foreground(Purple).
		Bold(true)

	t.Button = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 2)

	t.ButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(OverlayDim).
		Padding(0, 2)

	// Table and pagination
	t.TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.TableCell = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.TableSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true)

	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(1, 2)

	t.PageInfo = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.PageCurrent = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	t.PageOther = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	// Feedback
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.LoadingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.StatsBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatsLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatsValue = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.HelpOverlay = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Cyan).
		Padding(1, 2)

	// Status text always pairs a shape with its color.
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(InfoHighContrast).
		Bold(true)
}

// TableStyles returns the styles for the bubbles table component.
func (t *Theme) TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = t.TableHeader
	s.Cell = t.TableCell
	s.Selected = t.TableSelected
	return s
}

// Status renders message in the success or error style with its indicator.
func (t *Theme) Status(success bool, message string) string {
	if success {
		return t.SuccessStyle.Render(StatusIndicators.Success + " " + message)
	}
	return t.ErrorStyle.Render(StatusIndicators.Error + " " + message)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 80 {
		return LayoutNarrow
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	// LayoutNarrow stacks the forms above the table (< 80 columns)
	LayoutNarrow LayoutMode = iota
	// LayoutWide puts the forms beside each other
	LayoutWide
)
