// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Title", theme.Title},
		{"Panel", theme.Panel},
		{"Button", theme.Button},
		{"TableHeader", theme.TableHeader},
		{"EmptyState", theme.EmptyState},
		{"StatsBar", theme.StatsBar},
	}

	for _, s := range styles {
		if rendered := s.style.Render("test"); !strings.Contains(rendered, "test") {
			t.Errorf("%s style lost its content: %q", s.name, rendered)
		}
	}
}

func TestTheme_Status(t *testing.T) {
	theme := NewTheme()

	ok := theme.Status(true, "saved")
	if !strings.Contains(ok, StatusIndicators.Success) || !strings.Contains(ok, "saved") {
		t.Errorf("Status(true) = %q", ok)
	}

	bad := theme.Status(false, "broken")
	if !strings.Contains(bad, StatusIndicators.Error) || !strings.Contains(bad, "broken") {
		t.Errorf("Status(false) = %q", bad)
	}
}

func TestTheme_LayoutMode(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{79, LayoutNarrow},
		{80, LayoutWide},
		{200, LayoutWide},
	}

	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("width %d: GetLayoutMode() = %v, want %v", tt.width, got, tt.want)
		}
	}
}

// =============================================================================
// RENDER HELPER TESTS
// =============================================================================

func TestRenderHelpers(t *testing.T) {
	tests := []struct {
		name      string
		render    func(string) string
		indicator string
	}{
		{"success", RenderSuccess, StatusIndicators.Success},
		{"error", RenderError, StatusIndicators.Error},
		{"warning", RenderWarning, StatusIndicators.Warning},
		{"info", RenderInfo, StatusIndicators.Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.render("hello")
			if !strings.Contains(got, tt.indicator) || !strings.Contains(got, "hello") {
				t.Errorf("render = %q", got)
			}
		})
	}
}

func TestSentimentColor(t *testing.T) {
	if SentimentColor("positive") != Emerald {
		t.Error("positive should be Emerald")
	}
	if SentimentColor("NEGATIVE") != Rose {
		t.Error("NEGATIVE should be Rose")
	}
	if SentimentColor("Neutral") != Amber {
		t.Error("Neutral should be Amber")
	}
	if SentimentColor("mixed") != Cyan {
		t.Error("unknown labels should be Cyan")
	}
}
