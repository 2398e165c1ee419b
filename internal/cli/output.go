// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/leaddesk-tui/internal/model"
	"github.com/jeranaias/leaddesk-tui/internal/ui/components"
	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
)

// =============================================================================
// OUTPUT FORMATS
// =============================================================================

// Format selects how a command prints its result.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates an --output value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q, must be one of: table, json, yaml", s)
	}
}

// writeStructured prints v as indented JSON or YAML.
func writeStructured(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not structured", format)
	}
}

// =============================================================================
// TABLES
// =============================================================================

// renderTable draws a bordered table.
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Overlay)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			return CellStyle
		})
	return t.Render()
}

// renderLeadTable draws a page of leads numbered from offset+1.
func renderLeadTable(page []model.Lead, offset int, dateFormat string) string {
	columns := components.LeadColumns()
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Title
	}

	rows := make([][]string, 0, len(page))
	for _, r := range components.LeadRows(page, offset, dateFormat) {
		rows = append(rows, []string(r))
	}
	return renderTable(headers, rows)
}

// renderHistoryTable draws sentiment history rows.
func renderHistoryTable(history []model.Analysis, dateFormat string) string {
	rows := make([][]string, 0, len(history))
	for i, a := range history {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			a.Word,
			RenderSentiment(a.Sentiment),
			a.At.Local().Format(dateFormat),
		})
	}
	return renderTable([]string{"No", "Word", "Sentiment", "Analyzed At"}, rows)
}
