// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/leaddesk-tui/internal/model"
)

const defaultHistoryLimit = 20

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sentiment checks",
		Long: `Show the words checked from this machine, newest first.

History is kept in the local database; nothing is stored on the service.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			const command = "history"

			format, err := ParseFormat(output)
			if err != nil {
				return usageErrorf(command, "%v", err)
			}
			if limit < 0 {
				return usageErrorf(command, "--limit must not be negative")
			}

			store, err := a.requireStore(command)
			if err != nil {
				return err
			}
			defer store.Close()

			history, err := store.RecentAnalyses(cmd.Context(), limit)
			if err != nil {
				return &CommandError{Command: command, Reason: err.Error(), Err: err}
			}

			if format != FormatTable {
				if history == nil {
					history = []model.Analysis{}
				}
				return writeStructured(cmd.OutOrStdout(), format, history)
			}
			if len(history) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), DimStyle.Render("No words checked yet."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHistoryTable(history, a.cfg.UI.DateFormat))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "number of entries to show (0 for all)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	return cmd
}
