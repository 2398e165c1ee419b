// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package remote

import (
	"errors"
	"strings"
)

// NetworkErrorMessage is the generic text shown for every transport failure.
const NetworkErrorMessage = "A network error occurred. Please try again."

// =============================================================================
// ERROR TYPES
// =============================================================================

// Kind categorizes client errors for handling.
type Kind int

const (
	KindUnknown Kind = iota
	// KindTransport covers unreachable services and malformed responses.
	KindTransport
	// KindService covers well-formed responses reporting a failure status.
	KindService
	// KindValidation covers input rejected locally before any request.
	KindValidation
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindService:
		return "service"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// ClientError represents a failed remote operation.
type ClientError struct {
	Kind Kind
	// Op names the operation, e.g. "list leads".
	Op string
	// Message is the most specific user-presentable text available.
	Message string
	// Status is the envelope or HTTP status for service errors, 0 otherwise.
	Status int
	Cause  error
}

func (e *ClientError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Transport builds a transport error with the generic network message.
func Transport(op string, cause error) *ClientError {
	return &ClientError{Kind: KindTransport, Op: op, Message: NetworkErrorMessage, Cause: cause}
}

// Service builds a service error. An empty message is replaced by fallback.
func Service(op string, status int, message, fallback string) *ClientError {
	message = strings.TrimSpace(message)
	if message == "" {
		message = fallback
	}
	return &ClientError{Kind: KindService, Op: op, Message: message, Status: status}
}

// Validation builds an error for input rejected before any request is issued.
func Validation(op string, cause error) *ClientError {
	return &ClientError{Kind: KindValidation, Op: op, Message: cause.Error(), Cause: cause}
}

// =============================================================================
// CLASSIFICATION HELPERS
// =============================================================================

// KindOf returns the Kind of err, or KindUnknown if err is not a *ClientError.
func KindOf(err error) Kind {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	return KindOf(err) == KindTransport
}

// IsService reports whether err is a service-reported failure.
func IsService(err error) bool {
	return KindOf(err) == KindService
}

// UserMessage returns the most specific user-facing text for err.
// Client errors yield their Message; anything else yields fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ce *ClientError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
