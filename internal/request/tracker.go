// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package request

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// TOKENS
// =============================================================================

// Token tags one issued request.
type Token struct {
	// Op is the operation the request belongs to
	Op Op

	// Gen is the per-operation generation, starting at 1
	Gen uint64

	// ID correlates log lines for the same request
	ID uuid.UUID

	// IssuedAt is when the request was issued
	IssuedAt time.Time
}

// String returns a compact form used in log lines.
func (t Token) String() string {
	return fmt.Sprintf("%s#%d", t.Op, t.Gen)
}

// Age returns how long ago the token was issued.
func (t Token) Age(now time.Time) time.Duration {
	return now.Sub(t.IssuedAt)
}

// =============================================================================
// TRACKER
// =============================================================================

// Tracker hands out generations per operation and decides which
// completions may be applied.
type Tracker struct {
	issued  map[Op]uint64
	applied map[Op]uint64
	pending map[Op]int
	now     func() time.Time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		issued:  make(map[Op]uint64),
		applied: make(map[Op]uint64),
		pending: make(map[Op]int),
		now:     time.Now,
	}
}

// Issue allocates the next generation for op and marks it pending.
func (t *Tracker) Issue(op Op) Token {
	t.issued[op]++
	t.pending[op]++

	tok := Token{
		Op:       op,
		Gen:      t.issued[op],
		ID:       uuid.New(),
		IssuedAt: t.now(),
	}
	log.Printf("REQUEST_ISSUED | op=%s gen=%d id=%s pending=%d", op, tok.Gen, tok.ID, t.pending[op])
	return tok
}

// Complete records that tok's response arrived and reports whether it may
// be applied. A completion is applicable only if its generation is higher
// than every generation already applied for the same operation.
func (t *Tracker) Complete(tok Token) bool {
	if t.pending[tok.Op] > 0 {
		t.pending[tok.Op]--
	}

	if tok.Gen <= t.applied[tok.Op] {
		log.Printf("STALE_RESPONSE | op=%s gen=%d applied=%d id=%s", tok.Op, tok.Gen, t.applied[tok.Op], tok.ID)
		return false
	}

	t.applied[tok.Op] = tok.Gen
	return true
}

// Pending returns how many requests for op await a response.
func (t *Tracker) Pending(op Op) int {
	return t.pending[op]
}

// InFlight reports whether any request for op awaits a response.
func (t *Tracker) InFlight(op Op) bool {
	return t.pending[op] > 0
}

// Latest returns the most recently issued generation for op (0 if none).
func (t *Tracker) Latest(op Op) uint64 {
	return t.issued[op]
}

// Applied returns the highest applied generation for op (0 if none).
func (t *Tracker) Applied(op Op) uint64 {
	return t.applied[op]
}

// =============================================================================
// CONTEXT
// =============================================================================

// Context derives a request context from parent. A non-positive timeout
// means the request is never cut short.
func Context(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
