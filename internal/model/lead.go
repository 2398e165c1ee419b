// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"
)

// =============================================================================
// LEAD TYPE
// =============================================================================

// Lead is a contact record stored by the remote Lead Service.
// ID, CreatedAt and UpdatedAt are assigned by the service.
type Lead struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Email      string    `json:"email" yaml:"email"`
	CampaignID string    `json:"campaignId" yaml:"campaign_id"`
	CreatedAt  Timestamp `json:"createdAt" yaml:"created_at"`
	UpdatedAt  Timestamp `json:"updatedAt" yaml:"updated_at"`
}

// FormatCreated renders CreatedAt with the given Go time layout in local time.
// Unparsed values render verbatim and a missing timestamp renders as "-".
func (l Lead) FormatCreated(layout string) string {
	return l.CreatedAt.Format(layout)
}

// CloneLeads returns a copy of leads that shares no backing array with the input.
// A nil input yields an empty, non-nil slice.
func CloneLeads(leads []Lead) []Lead {
	out := make([]Lead, len(leads))
	copy(out, leads)
	return out
}

// =============================================================================
// ANALYSIS TYPE
// =============================================================================

// Analysis records a word and the sentiment label returned for it.
// The label is the service's free-form string and is never interpreted locally.
type Analysis struct {
	ID        string    `json:"id" yaml:"id"`
	Word      string    `json:"word" yaml:"word"`
	Sentiment string    `json:"sentiment" yaml:"sentiment"`
	At        time.Time `json:"at" yaml:"at"`
}
