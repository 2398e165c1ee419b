// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for leads, drafts and
// sentiment analyses.
//
// This package defines the core domain types shared by the remote clients,
// the local store and the TUI. Leads are immutable from the client's point
// of view: they are created by the Lead Service and only ever replaced as a
// whole collection.
//
// # Key Types
//
//   - Lead: A contact record returned by the Lead Service
//   - LeadDraft: Uncommitted create-lead input (name, email, campaign ID)
//   - Analysis: A word and the sentiment label the service assigned to it
//
// # Usage
//
// Validate a draft before sending it:
//
//	draft := model.LeadDraft{Name: "Ana", Email: "ana@example.com", CampaignID: "spring"}
//	if err := draft.Normalize().Validate(); err != nil {
//	    return err
//	}
package model
