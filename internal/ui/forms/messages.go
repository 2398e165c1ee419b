// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package forms

import (
	"context"

	"github.com/jeranaias/leaddesk-tui/internal/model"
	"github.com/jeranaias/leaddesk-tui/internal/request"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// LeadCreator submits new leads.
type LeadCreator interface {
	CreateLead(ctx context.Context, draft model.LeadDraft) error
}

// WordAnalyzer classifies a word.
type WordAnalyzer interface {
	AnalyzeWord(ctx context.Context, word string) (string, error)
}

// AnalysisRecorder keeps a history of successful analyses.
type AnalysisRecorder interface {
	RecordAnalysis(ctx context.Context, word, sentiment string) error
}

// =============================================================================
// MESSAGES
// =============================================================================

// LeadCreatedMsg carries the outcome of a create request.
type LeadCreatedMsg struct {
	Token request.Token
	Draft model.LeadDraft
	Err   error
}

// WordAnalyzedMsg carries the outcome of an analyze request.
type WordAnalyzedMsg struct {
	Token     request.Token
	Word      string
	Sentiment string
	Err       error
}

// RefreshRequestedMsg asks the owner of the lead list to fetch it again.
type RefreshRequestedMsg struct {
	// Cause names what triggered the refresh, for logs.
	Cause string
}

// =============================================================================
// USER-FACING TEXT
// =============================================================================

const (
	CreateSuccessMessage  = "Lead created successfully!"
	CreateFailedFallback  = "Failed to create lead"
	AnalyzeFailedFallback = "Failed to analyze word"
)
