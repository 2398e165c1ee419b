// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package leads

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/jeranaias/leaddesk-tui/internal/model"
	"github.com/jeranaias/leaddesk-tui/internal/remote"
)

// Service endpoints.
const (
	PathList   = "/leads/getLeads"
	PathCreate = "/leads/createLeads"
)

// Fallback messages used when the service gives no message of its own.
const (
	ListFailedMessage   = "Failed to fetch leads"
	CreateFailedMessage = "Failed to create lead"
)

const (
	opList   = "list leads"
	opCreate = "create lead"
)

var errMalformedBody = errors.New("malformed response body")

// Client talks to the Lead Service.
type Client struct {
	remote *remote.Client
}

// NewClient creates a Lead Service client. A nil config uses remote.DefaultConfig.
func NewClient(config *remote.Config) *Client {
	return &Client{remote: remote.NewClient(config)}
}

// NewClientFrom wraps an existing transport client.
func NewClientFrom(rc *remote.Client) *Client {
	return &Client{remote: rc}
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string {
	return c.remote.BaseURL()
}

// =============================================================================
// OPERATIONS
// =============================================================================

// ListLeads fetches the full lead collection in service order.
//
// The envelope status must be 200. Any other status is a service error
// carrying the envelope message; an unreachable service or a body that is
// not an envelope is a transport error.
func (c *Client) ListLeads(ctx context.Context) ([]model.Lead, error) {
	resp, err := c.remote.Do(ctx, opList, http.MethodGet, PathList, nil)
	if err != nil {
		return nil, err
	}

	env, err := remote.DecodeEnvelope[[]model.Lead](resp.Body)
	if err != nil {
		log.Printf("LEADS_DECODE_FAILED | status=%d error=%v", resp.StatusCode, err)
		return nil, remote.Transport(opList, err)
	}
	if !env.OK() {
		log.Printf("LEADS_FETCH_FAILED | status=%d message=%q", env.Status, env.Message)
		return nil, remote.Service(opList, env.Status, env.Message, ListFailedMessage)
	}

	if env.Data == nil {
		return []model.Lead{}, nil
	}
	return env.Data, nil
}

// CreateLead submits draft as a new lead. Success is any 2xx status; the
// created record is not returned, callers list again to observe it.
func (c *Client) CreateLead(ctx context.Context, draft model.LeadDraft) error {
	resp, err := c.remote.Do(ctx, opCreate, http.MethodPost, PathCreate, draft)
	if err != nil {
		return err
	}

	if resp.OK() {
		if !remote.ValidJSON(resp.Body) {
			log.Printf("LEAD_CREATE_BAD_BODY | status=%d", resp.StatusCode)
			return remote.Transport(opCreate, errMalformedBody)
		}
		log.Printf("LEAD_CREATED | status=%d", resp.StatusCode)
		return nil
	}

	msg := remote.DecodeMessage(resp.Body)
	log.Printf("LEAD_CREATE_FAILED | status=%d message=%q", resp.StatusCode, msg)
	return remote.Service(opCreate, resp.StatusCode, msg, CreateFailedMessage)
}
