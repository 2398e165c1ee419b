// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"

	"github.com/jeranaias/leaddesk-tui/internal/config"
	"github.com/jeranaias/leaddesk-tui/internal/remote"
	"github.com/jeranaias/leaddesk-tui/internal/storage"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general or service-reported error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNetworkError indicates the service could not be reached
	ExitNetworkError = 5
	// ExitNotFoundError indicates a resource was not found
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError is a failed command with a user-facing reason.
type CommandError struct {
	Command string // e.g. "leads list"
	Reason  string // shown to the user
	Code    int    // exit code; 0 means derive from Err
	Err     error
}

func (e *CommandError) Error() string {
	if e.Command == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// usageErrorf builds a CommandError for bad arguments.
func usageErrorf(command, format string, args ...any) *CommandError {
	return &CommandError{Command: command, Reason: fmt.Sprintf(format, args...), Code: ExitUsageError}
}

// serviceError wraps a client failure with its most specific message.
func serviceError(command string, err error, fallback string) *CommandError {
	return &CommandError{Command: command, Reason: remote.UserMessage(err, fallback), Err: err}
}

// ExitCodeFor maps an error to a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ce *CommandError
	if errors.As(err, &ce) && ce.Code != 0 {
		return ce.Code
	}

	var verrs config.ValidateErrors
	switch {
	case errors.As(err, &verrs):
		return ExitConfigError
	case errors.Is(err, storage.ErrNotFound):
		return ExitNotFoundError
	}

	switch remote.KindOf(err) {
	case remote.KindTransport:
		return ExitNetworkError
	case remote.KindValidation:
		return ExitUsageError
	}
	return ExitGeneralError
}
