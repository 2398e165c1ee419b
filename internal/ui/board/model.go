// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package board

import (
	"context"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/leaddesk-tui/internal/leads"
	"github.com/jeranaias/leaddesk-tui/internal/model"
	"github.com/jeranaias/leaddesk-tui/internal/paging"
	"github.com/jeranaias/leaddesk-tui/internal/remote"
	"github.com/jeranaias/leaddesk-tui/internal/request"
	"github.com/jeranaias/leaddesk-tui/internal/ui/components"
	"github.com/jeranaias/leaddesk-tui/internal/ui/forms"
	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
)

// DefaultDateFormat renders creation times as day/month/year hour:minute.
const DefaultDateFormat = "02/01/2006 15:04"

// =============================================================================
// OPTIONS
// =============================================================================

// Options wires the board to its services.
type Options struct {
	Lister   LeadLister
	Creator  forms.LeadCreator
	Analyzer forms.WordAnalyzer

	// Store is optional.
	Store Store

	PageSize   int
	DateFormat string
	ShowStats  bool

	// Timeout bounds each request; zero means none.
	Timeout time.Duration

	// Title is shown in the header; BaseURL below it.
	Title   string
	BaseURL string

	Theme *styles.Theme
}

// =============================================================================
// FOCUS
// =============================================================================

type focusTarget int

const (
	focusName focusTarget = iota
	focusEmail
	focusCampaign
	focusWord
	focusTable
	focusCount
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the lead board. It owns the lead cache, the pagination state, the
// list lifecycle and both forms. All state changes happen in Update.
type Model struct {
	opts  Options
	theme *styles.Theme

	tracker *request.Tracker
	list    *request.Lifecycle

	// snapshots is nil without a store.
	snapshots *snapshotWriter

	// cache is the result of the most recently applied successful fetch.
	cache  []model.Lead
	loaded bool
	pages  paging.State

	leadForm *forms.LeadForm
	wordForm *forms.WordForm

	table   components.LeadTable
	bar     components.PaginationBar
	spinner components.Spinner
	toasts  *components.ToastManager
	ticking bool

	keys     KeyMap
	help     help.Model
	focus    focusTarget
	showHelp bool
	helpDoc  string

	width  int
	height int
}

// New creates a board. Nothing is fetched until Init runs.
func New(opts Options) Model {
	if opts.PageSize <= 0 {
		opts.PageSize = paging.DefaultPageSize
	}
	if opts.DateFormat == "" {
		opts.DateFormat = DefaultDateFormat
	}
	if opts.Title == "" {
		opts.Title = "Lead Management"
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}

	tracker := request.NewTracker()
	m := Model{
		opts:     opts,
		theme:    theme,
		tracker:  tracker,
		list:     request.NewLifecycle(request.OpListLeads, tracker),
		cache:    []model.Lead{},
		pages:    paging.New(opts.PageSize, 0),
		leadForm: forms.NewLeadForm(theme, opts.Creator, tracker, opts.Timeout),
		wordForm: forms.NewWordForm(theme, opts.Analyzer, tracker, opts.Timeout),
		table:    components.NewLeadTable(theme, opts.DateFormat, opts.PageSize),
		bar:      components.NewPaginationBar(theme),
		spinner:  components.NewSpinner("Loading leads..."),
		toasts:   components.NewToastManager(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
	if opts.Store != nil {
		m.wordForm.SetRecorder(opts.Store)
		m.snapshots = newSnapshotWriter(opts.Store)
	}
	m.leadForm.Focus(forms.FieldName)
	m.syncPage()
	return m
}

// Init issues the initial list fetch and starts the animations.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick(), textinput.Blink)
}

// =============================================================================
// LIST FETCHING
// =============================================================================

// Refresh issues a list request. Calling it while a fetch is in flight
// issues another; only the newest completion is applied.
func (m Model) Refresh() tea.Cmd {
	tok := m.list.Begin()
	lister, timeout := m.opts.Lister, m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := request.Context(context.Background(), timeout)
		defer cancel()
		got, err := lister.ListLeads(ctx)
		return LeadsFetchedMsg{Token: tok, Leads: got, Err: err}
	}
}

// applyFetch handles a list completion and returns any follow-up command.
func (m *Model) applyFetch(msg LeadsFetchedMsg) tea.Cmd {
	if msg.Err != nil {
		text := remote.UserMessage(msg.Err, leads.ListFailedMessage)
		if !m.list.Finish(msg.Token, request.Failed(text)) {
			return nil
		}
		log.Printf("LEADS_FETCH_FAILED | gen=%d error=%v", msg.Token.Gen, msg.Err)
		m.toasts.AddError(text)
		return m.startToastTicker()
	}

	if !m.list.Finish(msg.Token, request.Succeeded("")) {
		return nil
	}

	m.cache = model.CloneLeads(msg.Leads)
	m.loaded = true
	m.pages = m.pages.Resize(len(m.cache))
	m.syncPage()
	log.Printf("LEADS_FETCHED | count=%d gen=%d page=%d/%d", len(m.cache), msg.Token.Gen, m.pages.Current, m.pages.Total)

	return m.saveSnapshot(msg.Token.Gen)
}

func (m *Model) saveSnapshot(gen uint64) tea.Cmd {
	w := m.snapshots
	if w == nil {
		return nil
	}
	snapshot := model.CloneLeads(m.cache)
	return func() tea.Msg {
		w.write(context.Background(), gen, snapshot)
		return nil
	}
}

func (m *Model) startToastTicker() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return components.ToastTickCmd()
}

// =============================================================================
// PAGINATION
// =============================================================================

// ChangePage moves to page when it exists and reports whether it did.
func (m *Model) ChangePage(page int) bool {
	next, ok := m.pages.ChangePage(page)
	if !ok {
		return false
	}
	m.pages = next
	m.syncPage()
	return true
}

func (m *Model) syncPage() {
	m.table.SetPage(paging.Slice(m.cache, m.pages.Current, m.pages.Size), m.pages.Offset())
	m.bar.Sync(m.pages, len(m.cache))
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Leads returns a copy of the cached collection.
func (m Model) Leads() []model.Lead {
	return model.CloneLeads(m.cache)
}

// VisibleLeads returns the leads on the current page.
func (m Model) VisibleLeads() []model.Lead {
	return model.CloneLeads(paging.Slice(m.cache, m.pages.Current, m.pages.Size))
}

// Page returns the pagination state.
func (m Model) Page() paging.State {
	return m.pages
}

// ListState returns the list-fetch lifecycle.
func (m Model) ListState() request.State {
	return m.list.State()
}

// Loaded reports whether any fetch has succeeded.
func (m Model) Loaded() bool {
	return m.loaded
}

// LeadForm returns the create-lead form.
func (m Model) LeadForm() *forms.LeadForm {
	return m.leadForm
}

// WordForm returns the sentiment form.
func (m Model) WordForm() *forms.WordForm {
	return m.wordForm
}

// Toasts returns the active notifications.
func (m Model) Toasts() []components.Toast {
	return m.toasts.Toasts()
}
