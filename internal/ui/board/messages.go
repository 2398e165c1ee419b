// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package board

import (
	"context"

	"github.com/jeranaias/leaddesk-tui/internal/model"
	"github.com/jeranaias/leaddesk-tui/internal/request"
)

// LeadLister fetches the whole lead collection.
type LeadLister interface {
	ListLeads(ctx context.Context) ([]model.Lead, error)
}

// Store persists what the board observes. Failures are logged and never
// change what is shown.
type Store interface {
	SaveSnapshot(ctx context.Context, leads []model.Lead) error
	RecordAnalysis(ctx context.Context, word, sentiment string) error
}

// LeadsFetchedMsg carries the outcome of a list request.
type LeadsFetchedMsg struct {
	Token request.Token
	Leads []model.Lead
	Err   error
}
