// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the TUI, the CLI and config.
//
// # Key Functions
//
// String Utilities:
//   - Truncate: display-width aware truncation with ellipsis
//   - PadRight: pad to a display width
//   - WrapText: greedy word wrap by display width
//
// Formatting:
//   - FormatCount: integers with thousands separators
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing through an afero.Fs
//
// # Usage
//
//	cell := util.Truncate(lead.Email, 28)
//	err := util.AtomicWriteFile(afero.NewOsFs(), path, data, 0600)
package util
