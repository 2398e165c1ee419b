// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package board

import (
	"context"
	"log"
	"sync"

	"github.com/jeranaias/leaddesk-tui/internal/model"
)

// snapshotWriter serializes snapshot writes and drops any write older than
// the last one committed, so the store ends on the newest applied fetch.
type snapshotWriter struct {
	mu      sync.Mutex
	store   Store
	written uint64
}

func newSnapshotWriter(store Store) *snapshotWriter {
	return &snapshotWriter{store: store}
}

// write stores leads for fetch generation gen. It reports whether the
// store was called.
func (w *snapshotWriter) write(ctx context.Context, gen uint64, leads []model.Lead) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if gen <= w.written {
		log.Printf("SNAPSHOT_SKIPPED | gen=%d written=%d", gen, w.written)
		return false
	}
	if err := w.store.SaveSnapshot(ctx, leads); err != nil {
		log.Printf("SNAPSHOT_WRITE_FAILED | gen=%d count=%d error=%v", gen, len(leads), err)
		return true
	}
	w.written = gen
	return true
}
