// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package leads is the client for the remote Lead Service.
//
// The service exposes two endpoints:
//
//	GET  /leads/getLeads     -> {status: 200, data: [Lead]}
//	POST /leads/createLeads  <- {name, email, campaignId}
//
// Listing returns the whole collection; there is no server-side paging.
// Creating returns nothing useful to the caller, who must list again to see
// the new record.
package leads
