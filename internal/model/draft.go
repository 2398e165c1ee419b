// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrIncompleteDraft is returned when a required draft field is empty.
var ErrIncompleteDraft = errors.New("incomplete draft")

// Field names as they appear in the create-lead payload.
const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldCampaignID = "campaignId"
)

// LeadDraft is the uncommitted create-lead form input.
// It doubles as the create request payload.
type LeadDraft struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	CampaignID string `json:"campaignId"`
}

// Normalize trims surrounding whitespace and applies NFC normalization to
// every field so visually identical input produces identical payloads.
func (d LeadDraft) Normalize() LeadDraft {
	return LeadDraft{
		Name:       NormalizeText(d.Name),
		Email:      NormalizeText(d.Email),
		CampaignID: NormalizeText(d.CampaignID),
	}
}

// Missing returns the payload names of the empty fields, in form order.
func (d LeadDraft) Missing() []string {
	var missing []string
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, FieldName)
	}
	if strings.TrimSpace(d.Email) == "" {
		missing = append(missing, FieldEmail)
	}
	if strings.TrimSpace(d.CampaignID) == "" {
		missing = append(missing, FieldCampaignID)
	}
	return missing
}

// Validate reports ErrIncompleteDraft (wrapped with the missing field names)
// when any required field is empty.
func (d LeadDraft) Validate() error {
	if missing := d.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrIncompleteDraft, strings.Join(missing, ", "))
	}
	return nil
}

// IsZero reports whether every field is empty.
func (d LeadDraft) IsZero() bool {
	return d == LeadDraft{}
}

// NormalizeText trims whitespace and returns the NFC form of s.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
