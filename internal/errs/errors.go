// Package errs provides the unified error type used across all of tablegen.
//
// Every subsystem (config, database drivers, the generator pipeline) wraps
// its native errors into *errs.Error before returning them to callers.
// Callers use the Is* predicates to handle errors without importing
// driver-specific packages.
//
// Usage:
//
//	// In a driver — wrap native errors:
//	return errs.Wrap(errs.ErrKindQueryFailed, "list tables", sqlErr)
//
//	// At the top level — decide the exit message:
//	if errs.IsConnectionFailed(err) {
//	    log.Error("database unreachable")
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing subsystem-specific codes.
// All backends (MySQL, Postgres) and pipeline stages map their native
// errors to one of these kinds, giving callers a single consistent API.
type ErrKind int

const (
	ErrKindUnknown          ErrKind = iota
	ErrKindConfig                   // config file missing or malformed
	ErrKindConnectionFailed         // cannot reach the database
	ErrKindTimeout                  // context deadline / cancellation
	ErrKindQueryFailed              // metadata or introspection query error
	ErrKindRenderFailed             // artifact rendering error
	ErrKindWriteFailed              // artifact file write error
	ErrKindInvalidInput             // bad arguments from the caller
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindConfig:
		return "config"
	case ErrKindConnectionFailed:
		return "connection_failed"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindQueryFailed:
		return "query_failed"
	case ErrKindRenderFailed:
		return "render_failed"
	case ErrKindWriteFailed:
		return "write_failed"
	case ErrKindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all tablegen subsystems.
// Drivers and pipeline stages produce it; callers inspect it via the
// Is* predicates below.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original subsystem-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsConfig reports whether err was caused by a missing or malformed
// configuration file.
func IsConfig(err error) bool {
	return kindOf(err) == ErrKindConfig
}

// IsConnectionFailed reports whether err is a connectivity or auth failure.
func IsConnectionFailed(err error) bool {
	return kindOf(err) == ErrKindConnectionFailed
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return kindOf(err) == ErrKindTimeout
}

// IsQueryFailed reports whether err is a database operation failure
// (metadata query, column introspection, …).
func IsQueryFailed(err error) bool {
	return kindOf(err) == ErrKindQueryFailed
}

// IsRenderFailed reports whether err occurred while rendering an artifact.
func IsRenderFailed(err error) bool {
	return kindOf(err) == ErrKindRenderFailed
}

// IsWriteFailed reports whether err occurred while persisting an artifact.
func IsWriteFailed(err error) bool {
	return kindOf(err) == ErrKindWriteFailed
}

// IsInvalidInput reports whether err was caused by bad input from the caller.
func IsInvalidInput(err error) bool {
	return kindOf(err) == ErrKindInvalidInput
}

// kindOf extracts the ErrKind from any error in the chain.
func kindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
