// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/leaddesk-tui/internal/model"
	"github.com/jeranaias/leaddesk-tui/internal/sentiment"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "analyze WORD",
		Short: "Check the sentiment of a word",
		Example: `  leaddesk analyze excellent
  leaddesk analyze "not great" --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			const command = "analyze"

			format, err := ParseFormat(output)
			if err != nil {
				return usageErrorf(command, "%v", err)
			}

			word := model.NormalizeText(args[0])
			label, err := sentiment.NewClient(a.remoteConfig()).AnalyzeWord(cmd.Context(), word)
			if errors.Is(err, sentiment.ErrEmptyWord) {
				return usageErrorf(command, "please enter a word")
			}
			if err != nil {
				return serviceError(command, err, sentiment.FailedMessage)
			}

			a.recordAnalysis(cmd, word, label)

			if format != FormatTable {
				return writeStructured(cmd.OutOrStdout(), format, model.Analysis{
					Word:      word,
					Sentiment: label,
					At:        time.Now().UTC(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", RenderLabel(word), RenderSentiment(label))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	return cmd
}

func (a *app) recordAnalysis(cmd *cobra.Command, word, label string) {
	store, err := a.openStore()
	if err != nil {
		log.Printf("ANALYSIS_WRITE_FAILED | word=%q error=%v", word, err)
		return
	}
	if store == nil {
		return
	}
	defer store.Close()
	if err := store.RecordAnalysis(cmd.Context(), word, label); err != nil {
		log.Printf("ANALYSIS_WRITE_FAILED | word=%q error=%v", word, err)
	}
}
