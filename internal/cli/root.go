// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jeranaias/leaddesk-tui/internal/config"
	"github.com/jeranaias/leaddesk-tui/internal/model"
	"github.com/jeranaias/leaddesk-tui/internal/remote"
	"github.com/jeranaias/leaddesk-tui/internal/storage"
	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Deps are the outside-world hooks the commands use. Zero fields select the
// real terminal and filesystem.
type Deps struct {
	// Fs holds the config files.
	Fs afero.Fs
	// ConfigDir overrides ~/.leaddesk.
	ConfigDir string
	// Interactive reports whether prompting is possible.
	Interactive func() bool
	// NewPrompter opens a line prompter.
	NewPrompter func() (Prompter, error)
}

type app struct {
	deps Deps

	// flags
	configPath string
	verbose    bool
	baseURL    string
	noStorage  bool

	loader *config.Loader
	cfg    *config.Config
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRoot builds the leaddesk command tree.
func NewRoot() *cobra.Command {
	return NewRootWith(Deps{})
}

// NewRootWith builds the command tree with custom dependencies.
func NewRootWith(deps Deps) *cobra.Command {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Interactive == nil {
		deps.Interactive = CanPrompt
	}
	if deps.NewPrompter == nil {
		deps.NewPrompter = newLinePrompter
	}
	a := &app{deps: deps}

	cmd := &cobra.Command{
		Use:   "leaddesk",
		Short: "Terminal client for the lead service",
		Long: `leaddesk manages sales leads from the terminal.

Run without a subcommand to open the lead board: create leads, check the
sentiment of a word and page through the lead list. The subcommands do the
same things non-interactively.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBoard(cmd)
		},
	}
	cmd.SetVersionTemplate(versionLine() + "\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.leaddesk/config.toml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log diagnostics to stderr")
	flags.StringVar(&a.baseURL, "base-url", "", "lead service URL (overrides config)")
	flags.BoolVar(&a.noStorage, "no-storage", false, "do not read or write the local database")

	cmd.AddCommand(
		newLeadsCmd(a),
		newAnalyzeCmd(a),
		newHistoryCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	root := NewRoot()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return ExitCodeFor(err)
	}
	return ExitSuccess
}

// setup configures logging and loads the configuration before any command.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.verbose {
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(io.Discard)
	}

	loader, err := config.NewLoader(a.deps.Fs, a.deps.ConfigDir)
	if err != nil {
		return &CommandError{Reason: err.Error(), Code: ExitConfigError, Err: err}
	}

	var cfg *config.Config
	if a.configPath != "" {
		cfg, err = loader.LoadFromPath(a.configPath)
		if err != nil {
			return &CommandError{Reason: err.Error(), Code: ExitConfigError, Err: err}
		}
	} else {
		cfg, err = loader.Load()
		if err != nil {
			if cfg == nil {
				return &CommandError{Reason: err.Error(), Code: ExitConfigError, Err: err}
			}
			fmt.Fprintln(cmd.ErrOrStderr(), styles.RenderWarning(fmt.Sprintf("%v (using defaults)", err)))
		}
	}

	if a.baseURL != "" {
		cfg.Service.BaseURL = strings.TrimRight(a.baseURL, "/")
		if err := cfg.Validate(); err != nil {
			return &CommandError{Reason: "invalid --base-url: " + err.Error(), Code: ExitUsageError, Err: err}
		}
	}
	if a.noStorage {
		cfg.Storage.Enabled = false
	}

	a.loader = loader
	a.cfg = cfg
	config.SetGlobal(cfg)
	log.Printf("CONFIG_LOADED | base_url=%s page_size=%d storage=%t", cfg.Service.BaseURL, cfg.UI.PageSize, cfg.Storage.Enabled)
	return nil
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

func (a *app) remoteConfig() *remote.Config {
	return &remote.Config{
		BaseURL:   a.cfg.Service.BaseURL,
		Timeout:   a.cfg.Timeout(),
		UserAgent: a.cfg.Service.UserAgent,
	}
}

// openStore opens the local database, or returns nil when storage is off.
func (a *app) openStore() (*storage.Store, error) {
	if !a.cfg.Storage.Enabled {
		return nil, nil
	}
	return storage.Open(a.cfg.Storage.Path)
}

// requireStore is openStore for commands that cannot run without storage.
func (a *app) requireStore(command string) (*storage.Store, error) {
	if !a.cfg.Storage.Enabled {
		return nil, usageErrorf(command, "local storage is disabled")
	}
	store, err := a.openStore()
	if err != nil {
		return nil, &CommandError{Command: command, Reason: err.Error(), Err: err}
	}
	return store, nil
}

// saveSnapshot records leads locally. Failures are logged only.
func (a *app) saveSnapshot(ctx context.Context, leads []model.Lead) {
	store, err := a.openStore()
	if err != nil {
		log.Printf("SNAPSHOT_WRITE_FAILED | error=%v", err)
		return
	}
	if store == nil {
		return
	}
	defer store.Close()
	if err := store.SaveSnapshot(ctx, leads); err != nil {
		log.Printf("SNAPSHOT_WRITE_FAILED | count=%d error=%v", len(leads), err)
	}
}
