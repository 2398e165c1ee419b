// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 2
)

// Schema creates the snapshot and history tables. Analysis times are Unix
// nanoseconds. Lead times are the text model.Timestamp stores, empty when
// the service sent none.
const Schema = `
-- Metadata table for schema version and snapshot state
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Last successfully fetched lead collection, in service order
CREATE TABLE IF NOT EXISTS lead_snapshot (
    position INTEGER PRIMARY KEY,
    id TEXT NOT NULL,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    campaign_id TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

-- Sentiment history; ULID ids sort by time
CREATE TABLE IF NOT EXISTS analyses (
    id TEXT PRIMARY KEY,
    word TEXT NOT NULL,
    sentiment TEXT NOT NULL,
    analyzed_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_word ON analyses(word);
`

// InitMetadata seeds the metadata table.
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '2');
`

const metaSnapshotAt = "snapshot_saved_at"

// migrations upgrade a database from the version before each key. The
// snapshot is a cache of the service, so version 2 drops the old table
// instead of converting its integer times.
var migrations = map[int]string{
	2: `
DROP TABLE IF EXISTS lead_snapshot;
DELETE FROM metadata WHERE key = 'snapshot_saved_at';
`,
}
