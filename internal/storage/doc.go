// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for leaddesk.
//
// A single sqlite database (pure Go driver) holds two things:
//
//   - the last successfully fetched lead collection, replaced wholesale on
//     every save
//   - a history of sentiment analyses with time-sortable ULID ids
//
// The board never reads the snapshot back into its cache; the service stays
// the source of truth. The snapshot backs "leads list --offline" and the
// history backs the "history" command.
//
// # Usage
//
//	store, err := storage.Open(cfg.Storage.Path)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	err = store.SaveSnapshot(ctx, leads)
//	snap, err := store.LoadSnapshot(ctx)
//
// # Storage Location
//
// The database lives at ~/.leaddesk/leaddesk.db unless storage.path says
// otherwise.
package storage
