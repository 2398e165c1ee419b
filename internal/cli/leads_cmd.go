// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/leaddesk-tui/internal/leads"
	"github.com/jeranaias/leaddesk-tui/internal/model"
	"github.com/jeranaias/leaddesk-tui/internal/paging"
	"github.com/jeranaias/leaddesk-tui/internal/storage"
	"github.com/jeranaias/leaddesk-tui/internal/ui/components"
	"github.com/jeranaias/leaddesk-tui/internal/ui/forms"
	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
	"github.com/jeranaias/leaddesk-tui/internal/util"
)

func newLeadsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "List and create leads",
	}
	cmd.AddCommand(newLeadsListCmd(a), newLeadsCreateCmd(a))
	return cmd
}

// =============================================================================
// LEADS LIST
// =============================================================================

type listOptions struct {
	page    int
	all     bool
	output  string
	offline bool
}

// LeadPage is the structured form of "leads list".
type LeadPage struct {
	Page       int          `json:"page" yaml:"page"`
	TotalPages int          `json:"totalPages" yaml:"total_pages"`
	Total      int          `json:"total" yaml:"total"`
	Offline    bool         `json:"offline,omitempty" yaml:"offline,omitempty"`
	SavedAt    *time.Time   `json:"savedAt,omitempty" yaml:"saved_at,omitempty"`
	Leads      []model.Lead `json:"leads" yaml:"leads"`
}

func newLeadsListCmd(a *app) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List leads one page at a time",
		Example: `  leaddesk leads list
  leaddesk leads list --page 3
  leaddesk leads list --all --output json
  leaddesk leads list --offline`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.listLeads(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.page, "page", "p", 1, "page to show")
	f.BoolVar(&opts.all, "all", false, "show every lead on one page")
	f.StringVarP(&opts.output, "output", "o", "table", "output format: table, json or yaml")
	f.BoolVar(&opts.offline, "offline", false, "show the last saved snapshot instead of asking the service")
	return cmd
}

func (a *app) listLeads(cmd *cobra.Command, opts listOptions) error {
	const command = "leads list"

	format, err := ParseFormat(opts.output)
	if err != nil {
		return usageErrorf(command, "%v", err)
	}

	all, savedAt, err := a.fetchLeads(cmd.Context(), command, opts.offline)
	if err != nil {
		return err
	}

	size := a.cfg.UI.PageSize
	if opts.all && len(all) > 0 {
		size = len(all)
	}
	state, ok := paging.New(size, len(all)).ChangePage(opts.page)
	if !ok {
		return usageErrorf(command, "page %d out of range (1-%d)", opts.page, paging.TotalPages(len(all), size))
	}
	visible := paging.Slice(all, state.Current, state.Size)

	if format != FormatTable {
		return writeStructured(cmd.OutOrStdout(), format, LeadPage{
			Page:       state.Current,
			TotalPages: state.Total,
			Total:      len(all),
			Offline:    opts.offline,
			SavedAt:    savedAt,
			Leads:      model.CloneLeads(visible),
		})
	}

	out := cmd.OutOrStdout()
	if len(all) == 0 {
		fmt.Fprintln(out, DimStyle.Render(components.EmptyLeadsText))
	} else {
		fmt.Fprintln(out, renderLeadTable(visible, state.Offset(), a.cfg.UI.DateFormat))
		w := state.Window(len(all))
		summary := fmt.Sprintf("Showing %d to %d of %s leads", w.From, w.To, util.FormatCount(w.Total))
		if state.Total > 1 {
			summary += fmt.Sprintf("  (page %d of %d)", state.Current, state.Total)
		}
		fmt.Fprintln(out, summary)
	}
	if savedAt != nil {
		fmt.Fprintln(out, styles.RenderInfo("Offline snapshot saved "+savedAt.Local().Format(a.cfg.UI.DateFormat)))
	}
	return nil
}

// fetchLeads returns the whole collection from the service, or from the
// local snapshot when offline. The time is set only for snapshots.
func (a *app) fetchLeads(ctx context.Context, command string, offline bool) ([]model.Lead, *time.Time, error) {
	if offline {
		store, err := a.requireStore(command)
		if err != nil {
			return nil, nil, err
		}
		defer store.Close()

		snap, err := store.LoadSnapshot(ctx)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, &CommandError{
				Command: command,
				Reason:  "no snapshot saved yet; run 'leaddesk leads list' while the service is reachable",
				Err:     err,
			}
		}
		if err != nil {
			return nil, nil, &CommandError{Command: command, Reason: err.Error(), Err: err}
		}
		return snap.Leads, &snap.SavedAt, nil
	}

	got, err := leads.NewClient(a.remoteConfig()).ListLeads(ctx)
	if err != nil {
		return nil, nil, serviceError(command, err, leads.ListFailedMessage)
	}
	a.saveSnapshot(ctx, got)
	return got, nil, nil
}

// =============================================================================
// LEADS CREATE
// =============================================================================

var fieldLabels = map[string]string{
	model.FieldName:       "Name",
	model.FieldEmail:      "Email",
	model.FieldCampaignID: "Campaign ID",
}

func newLeadsCreateCmd(a *app) *cobra.Command {
	var draft model.LeadDraft

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a lead",
		Long: `Create a lead on the service.

Missing fields are prompted for when running in a terminal. After a
successful create the list is fetched again so the local snapshot matches
the service.`,
		Example: `  leaddesk leads create --name "Ada Lovelace" --email ada@example.com --campaign spring`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.createLead(cmd, draft)
		},
	}

	f := cmd.Flags()
	f.StringVar(&draft.Name, "name", "", "lead name")
	f.StringVar(&draft.Email, "email", "", "lead email")
	f.StringVar(&draft.CampaignID, "campaign", "", "campaign id")
	return cmd
}

func (a *app) createLead(cmd *cobra.Command, draft model.LeadDraft) error {
	const command = "leads create"

	draft = draft.Normalize()
	if len(draft.Missing()) > 0 && a.deps.Interactive() {
		filled, err := a.promptMissing(draft)
		if err != nil {
			return &CommandError{Command: command, Reason: err.Error(), Code: ExitUsageError, Err: err}
		}
		draft = filled.Normalize()
	}
	if missing := draft.Missing(); len(missing) > 0 {
		return &CommandError{
			Command: command,
			Reason:  "please fill in " + strings.Join(missing, ", "),
			Code:    ExitUsageError,
			Err:     draft.Validate(),
		}
	}

	ctx := cmd.Context()
	client := leads.NewClient(a.remoteConfig())
	if err := client.CreateLead(ctx, draft); err != nil {
		return serviceError(command, err, leads.CreateFailedMessage)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styles.RenderSuccess(forms.CreateSuccessMessage))

	// Refresh from the service, as the board does after a create.
	got, err := client.ListLeads(ctx)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), styles.RenderWarning("could not refresh the lead list: "+
			serviceError(command, err, leads.ListFailedMessage).Reason))
		return nil
	}
	a.saveSnapshot(ctx, got)
	fmt.Fprintf(out, "%s %s\n", RenderLabel("Total leads"), util.FormatCount(len(got)))
	return nil
}

// promptMissing asks for every empty field in form order.
func (a *app) promptMissing(draft model.LeadDraft) (model.LeadDraft, error) {
	p, err := a.deps.NewPrompter()
	if err != nil {
		return draft, err
	}
	defer p.Close()

	for _, field := range draft.Missing() {
		value, err := p.Prompt(fieldLabels[field] + ": ")
		if err != nil {
			return draft, err
		}
		switch field {
		case model.FieldName:
			draft.Name = value
		case model.FieldEmail:
			draft.Email = value
		case model.FieldCampaignID:
			draft.CampaignID = value
		}
	}
	return draft, nil
}
