// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package board is the lead board: the Bubble Tea model that ties the lead
// list, the pagination engine and the two forms together.
//
// Every network call runs inside a tea.Cmd and reports back as a message, so
// Update is the only place state changes. List, create and analyze requests
// each carry a generation token; completions older than one already applied
// for the same operation are dropped. A successful create always triggers a
// fresh list fetch so the new lead is observed from the service, never
// inserted locally.
package board
