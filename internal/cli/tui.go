// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jeranaias/leaddesk-tui/internal/config"
	"github.com/jeranaias/leaddesk-tui/internal/leads"
	"github.com/jeranaias/leaddesk-tui/internal/remote"
	"github.com/jeranaias/leaddesk-tui/internal/sentiment"
	"github.com/jeranaias/leaddesk-tui/internal/ui/board"
	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
)

// runBoard starts the interactive lead board.
func (a *app) runBoard(cmd *cobra.Command) error {
	if !IsTTY() || !IsStdoutTTY() {
		return usageErrorf("", "the lead board needs a terminal; see 'leaddesk --help' for scriptable commands")
	}

	// The board owns the screen, so diagnostics always go to the log file.
	if path := a.cfg.Log.Path; path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err == nil {
			if f, err := tea.LogToFile(path, "leaddesk"); err == nil {
				defer f.Close()
			}
		}
	}

	opts := a.boardOptions()
	store, err := a.openStore()
	if err != nil {
		log.Printf("STORE_UNAVAILABLE | path=%s error=%v", a.cfg.Storage.Path, err)
	} else if store != nil {
		defer store.Close()
		opts.Store = store
	}

	log.Printf("BOARD_START | base_url=%s page_size=%d", opts.BaseURL, opts.PageSize)
	p := tea.NewProgram(board.New(opts), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return &CommandError{Reason: err.Error(), Err: err}
	}
	return nil
}

// boardOptions builds the board configuration without a store.
func (a *app) boardOptions() board.Options {
	rc := remote.NewClient(a.remoteConfig())
	return board.Options{
		Lister:     leads.NewClientFrom(rc),
		Creator:    leads.NewClientFrom(rc),
		Analyzer:   sentiment.NewClientFrom(rc),
		PageSize:   a.cfg.UI.PageSize,
		DateFormat: a.cfg.UI.DateFormat,
		ShowStats:  a.cfg.UI.ShowStats,
		Timeout:    a.cfg.Timeout(),
		BaseURL:    a.cfg.Service.BaseURL,
		Theme:      themeFor(a.cfg),
	}
}

func themeFor(cfg *config.Config) *styles.Theme {
	switch cfg.UI.Theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
	theme := styles.NewTheme()
	if cfg.UI.Theme != "auto" {
		theme.IsDark = cfg.UI.Theme == "dark"
	}
	return theme
}
