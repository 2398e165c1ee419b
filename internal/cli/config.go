// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jeranaias/leaddesk-tui/internal/config"
	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize the configuration",
	}
	cmd.AddCommand(
		newConfigShowCmd(a),
		newConfigPathCmd(a),
		newConfigInitCmd(a),
		newConfigGetCmd(a),
	)
	return cmd
}

// =============================================================================
// CONFIG SHOW
// =============================================================================

func newConfigShowCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after files, environment and flags are applied.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := strings.ToLower(strings.TrimSpace(output))
			switch format {
			case "toml", "json", "yaml":
			default:
				return usageErrorf("config show", "unknown format %q (want toml, json or yaml)", output)
			}
			data, err := config.Encode(a.cfg, format)
			if err != nil {
				return &CommandError{Command: "config show", Reason: err.Error(), Err: err}
			}
			return writeConfig(cmd.OutOrStdout(), data, format, ColorsEnabled())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "toml", "output format: toml, json or yaml")
	return cmd
}

// writeConfig writes encoded config, syntax highlighted when color is on.
func writeConfig(w io.Writer, data []byte, format string, color bool) error {
	if color {
		if err := quick.Highlight(w, string(data), format, "terminal256", "monokai"); err == nil {
			return nil
		}
	}
	_, err := w.Write(data)
	return err
}

// =============================================================================
// CONFIG PATH
// =============================================================================

func newConfigPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if a.configPath != "" {
				fmt.Fprintln(out, a.configPath)
				return nil
			}
			if active := a.loader.Active(); active != "" {
				fmt.Fprintln(out, active)
				return nil
			}
			fmt.Fprintf(out, "%s %s\n", a.loader.PathTOML(), DimStyle.Render("(not created)"))
			return nil
		},
	}
}

// =============================================================================
// CONFIG INIT
// =============================================================================

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			const command = "config init"

			path := a.loader.PathTOML()
			exists, err := afero.Exists(a.deps.Fs, path)
			if err != nil {
				return &CommandError{Command: command, Reason: err.Error(), Err: err}
			}
			if exists && !force {
				return usageErrorf(command, "%s already exists (use --force to overwrite)", path)
			}

			cfg := config.Default()
			cfg.SetDefaults(a.loader.Dir())
			if err := a.loader.Save(cfg); err != nil {
				return &CommandError{Command: command, Reason: err.Error(), Code: ExitConfigError, Err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess("Wrote "+path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// =============================================================================
// CONFIG GET
// =============================================================================

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print one configuration value",
		Long:  "Print one configuration value. Keys: " + strings.Join(config.Keys(), ", "),
		Example: `  leaddesk config get service.base_url
  leaddesk config get ui.page_size`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.cfg.Get(args[0])
			if err != nil {
				return usageErrorf("config get", "%v", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}
