// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package request tracks the lifecycle of outbound remote operations.
//
// Each operation (list, create, analyze) has a Lifecycle whose visible state
// is one of Idle, InFlight, Succeeded or Failed. Requests are tagged with a
// Token from a Tracker; a completion only reaches shared state when its
// generation is newer than every completion already applied for the same
// operation, so a slow response can never overwrite a fresher one.
//
// The Tracker and Lifecycle are not synchronized. They belong to the owner
// of the Bubble Tea Update loop and must only be touched from there.
package request
