// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sentiment is the client for the remote Sentiment Service.
package sentiment

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/jeranaias/leaddesk-tui/internal/model"
	"github.com/jeranaias/leaddesk-tui/internal/remote"
)

// PathAnalyze is the analysis endpoint.
const PathAnalyze = "/leads/checkWord"

// FailedMessage is shown when the service gives no message of its own.
const FailedMessage = "Failed to analyze word"

const opAnalyze = "analyze word"

// ErrEmptyWord is returned for a blank word; no request is issued.
var ErrEmptyWord = errors.New("word is required")

// Client talks to the Sentiment Service.
type Client struct {
	remote *remote.Client
}

// NewClient creates a Sentiment Service client.
func NewClient(config *remote.Config) *Client {
	return &Client{remote: remote.NewClient(config)}
}

// NewClientFrom wraps an existing transport client.
func NewClientFrom(rc *remote.Client) *Client {
	return &Client{remote: rc}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResult struct {
	Sentiment string `json:"sentiment"`
}

// AnalyzeWord returns the service's sentiment label for word, verbatim.
// The word is normalized before sending and rejected locally when blank.
func (c *Client) AnalyzeWord(ctx context.Context, word string) (string, error) {
	word = model.NormalizeText(word)
	if word == "" {
		return "", remote.Validation(opAnalyze, ErrEmptyWord)
	}

	resp, err := c.remote.Do(ctx, opAnalyze, http.MethodPost, PathAnalyze, analyzeRequest{Text: word})
	if err != nil {
		return "", err
	}

	env, err := remote.DecodeEnvelope[analyzeResult](resp.Body)
	if err != nil {
		log.Printf("SENTIMENT_DECODE_FAILED | status=%d error=%v", resp.StatusCode, err)
		return "", remote.Transport(opAnalyze, err)
	}
	if !env.OK() {
		log.Printf("SENTIMENT_FAILED | status=%d message=%q", env.Status, env.Message)
		return "", remote.Service(opAnalyze, env.Status, env.Message, FailedMessage)
	}

	log.Printf("SENTIMENT_ANALYZED | word=%q sentiment=%s", word, env.Data.Sentiment)
	return env.Data.Sentiment, nil
}
