// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/leaddesk-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when no snapshot has been saved yet.
	ErrNotFound = errors.New("no snapshot saved")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store is closed")
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// =============================================================================
// STORE
// =============================================================================

// Store is the local database.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Snapshot is the last saved lead collection.
type Snapshot struct {
	Leads   []model.Lead
	SavedAt time.Time
}

// Open opens or creates the database at path. MemoryPath gives a throwaway
// database for tests and --no-storage style runs.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path cannot be empty")
	}

	memory := path == MemoryPath
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: sqlite has a single writer, and an in-memory
	// database exists per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	if !memory {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL")
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("STORE_OPENED | path=%s", path)
	return &Store{db: db, path: path, now: time.Now}, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// SaveSnapshot replaces the stored collection with leads in one transaction.
func (s *Store) SaveSnapshot(ctx context.Context, leads []model.Lead) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapClosed(fmt.Errorf("failed to begin snapshot: %w", err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lead_snapshot`); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO lead_snapshot (position, id, name, email, campaign_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for i, l := range leads {
		if _, err := stmt.ExecContext(ctx, i, l.ID, l.Name, l.Email, l.CampaignID,
			l.CreatedAt.String(), l.UpdatedAt.String()); err != nil {
			return fmt.Errorf("failed to insert lead %s: %w", l.ID, err)
		}
	}

	savedAt := strconv.FormatInt(s.now().UnixNano(), 10)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, metaSnapshotAt, savedAt); err != nil {
		return fmt.Errorf("failed to stamp snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	log.Printf("SNAPSHOT_SAVED | count=%d", len(leads))
	return nil
}

// LoadSnapshot returns the stored collection in its original order, or
// ErrNotFound if SaveSnapshot has never run.
func (s *Store) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, metaSnapshotAt).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, wrapClosed(fmt.Errorf("failed to read snapshot time: %w", err))
	}
	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Snapshot{}, fmt.Errorf("corrupt snapshot time %q: %w", raw, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, campaign_id, created_at, updated_at
		FROM lead_snapshot ORDER BY position`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	leads := []model.Lead{}
	for rows.Next() {
		var (
			l                model.Lead
			created, updated string
		)
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.CampaignID, &created, &updated); err != nil {
			return Snapshot{}, fmt.Errorf("failed to scan lead: %w", err)
		}
		l.CreatedAt = model.ParseTimestamp(created)
		l.UpdatedAt = model.ParseTimestamp(updated)
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return Snapshot{Leads: leads, SavedAt: fromUnix(nanos)}, nil
}

// =============================================================================
// SENTIMENT HISTORY
// =============================================================================

// RecordAnalysis appends an analysis to the history.
func (s *Store) RecordAnalysis(ctx context.Context, word, sentiment string) error {
	at := s.now()
	id := ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy())

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, word, sentiment, analyzed_at) VALUES (?, ?, ?, ?)`,
		id.String(), word, sentiment, toUnix(at)); err != nil {
		return wrapClosed(fmt.Errorf("failed to record analysis: %w", err))
	}
	log.Printf("ANALYSIS_RECORDED | id=%s word=%q sentiment=%q", id, word, sentiment)
	return nil
}

// RecentAnalyses returns up to limit analyses, newest first. A non-positive
// limit returns everything.
func (s *Store) RecentAnalyses(ctx context.Context, limit int) ([]model.Analysis, error) {
	query := `SELECT id, word, sentiment, analyzed_at FROM analyses ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapClosed(fmt.Errorf("failed to query history: %w", err))
	}
	defer rows.Close()

	out := []model.Analysis{}
	for rows.Next() {
		var (
			a  model.Analysis
			at int64
		)
		if err := rows.Scan(&a.ID, &a.Word, &a.Sentiment, &at); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		a.At = fromUnix(at)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return out, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// migrate brings an existing database up to SchemaVersion. Fresh databases
// are seeded at SchemaVersion and skip every step.
func migrate(db *sql.DB) error {
	var raw string
	if err := db.QueryRow(`SELECT value FROM metadata WHERE key = 'schema_version'`).Scan(&raw); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	version, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("corrupt schema version %q: %w", raw, err)
	}
	if version > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, SchemaVersion)
	}

	for next := version + 1; next <= SchemaVersion; next++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration: %w", err)
		}
		if _, err := tx.Exec(migrations[next]); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to migrate to version %d: %w", next, err)
		}
		if _, err := tx.Exec(Schema); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to migrate to version %d: %w", next, err)
		}
		if _, err := tx.Exec(`UPDATE metadata SET value = ? WHERE key = 'schema_version'`, strconv.Itoa(next)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to migrate to version %d: %w", next, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration: %w", err)
		}
		log.Printf("STORE_MIGRATED | from=%d to=%d", next-1, next)
	}
	return nil
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnix(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

func wrapClosed(err error) error {
	if err != nil && strings.Contains(err.Error(), "database is closed") {
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return err
}
