// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli is the leaddesk command tree.
//
// Running leaddesk with no subcommand opens the lead board. The
// subcommands cover the same operations for scripts:
//
//	leaddesk leads list [--page N] [--all] [--offline] [-o table|json|yaml]
//	leaddesk leads create --name NAME --email EMAIL --campaign ID
//	leaddesk analyze WORD
//	leaddesk history [--limit N]
//	leaddesk config show|path|init|get
//	leaddesk version
//
// Errors carry an exit code; see ExitCodeFor.
package cli
