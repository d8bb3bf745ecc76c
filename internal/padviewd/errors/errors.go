// Package errors provides standardized error handling for the padview daemon
package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors that can be used across the application
var (
	// ErrFetchFailed indicates the upstream launch API could not be reached
	// or returned an unusable response. Fetch failures are retried.
	ErrFetchFailed = errors.New("launch fetch failed")

	// ErrNoUpcoming indicates the launch API answered but knows of no
	// upcoming event inside the query window.
	ErrNoUpcoming = errors.New("no upcoming launch")

	// ErrAssetUnavailable indicates an image could not be downloaded or
	// decoded. Sessions proceed without a background image.
	ErrAssetUnavailable = errors.New("image asset unavailable")

	// ErrUnsupportedFormat indicates an image format other than JPEG or PNG,
	// or a malformed event record.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrRenderFailed indicates a draw or present operation failed. Fatal
	// only to the current frame, never to the process.
	ErrRenderFailed = errors.New("render failed")
)

// Error represents a domain error with additional context
type Error struct {
	// Code is a machine-readable error code
	Code string
	// Message is a human-readable error description
	Message string
	// Op describes the operation that failed
	Op string
	// Err is the underlying error
	Err error
}

// Error implements the error interface with a formatted message
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain handling
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the given details
func NewError(code string, message string, op string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// IsFetchFailed returns true if err represents an upstream fetch failure
func IsFetchFailed(err error) bool {
	return errors.Is(err, ErrFetchFailed)
}

// IsNoUpcoming returns true if err indicates an empty launch window
func IsNoUpcoming(err error) bool {
	return errors.Is(err, ErrNoUpcoming)
}

// IsAssetUnavailable returns true if err represents an image acquisition failure
func IsAssetUnavailable(err error) bool {
	return errors.Is(err, ErrAssetUnavailable)
}

// IsUnsupportedFormat returns true if err represents an unsupported image or record format
func IsUnsupportedFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}
