// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package remote provides the shared HTTP/JSON plumbing for the Lead Service
// and Sentiment Service clients.
//
// Every failure is reported as a *ClientError whose Kind separates transport
// problems (unreachable service, malformed body) from service-reported
// failures (well-formed envelope with a non-success status). Callers turn an
// error into user-facing text with UserMessage.
//
// # Usage
//
//	c := remote.NewClient(&remote.Config{BaseURL: "http://localhost:3001"})
//	resp, err := c.Do(ctx, http.MethodGet, "/leads/getLeads", nil)
//	if err != nil {
//	    return remote.UserMessage(err, "Failed to fetch leads")
//	}
//	env, err := remote.DecodeEnvelope[[]model.Lead](resp.Body)
package remote
