// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the lead board.
//
// Components are plain values that render from state handed to them; none of
// them issue requests. LeadTable and PaginationBar wrap the bubbles table and
// paginator, Spinner wraps the bubbles spinner, and ToastManager keeps the
// non-blocking notifications used for list fetch failures.
package components
