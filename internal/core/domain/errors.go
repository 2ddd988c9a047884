// Package domain defines the core domain models for FolderShare.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
// Codes have the form FS-<AREA>-<NNNN>, where the number mirrors the closest
// HTTP status.
type DomainError struct {
	Code    string // Error code (e.g., "FS-FILE-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Authentication and protocol errors
// ============================================================================

var (
	// ErrAuthFailed indicates the request password did not match.
	ErrAuthFailed = NewDomainError("FS-AUTH-4010", "authentication failed")

	// ErrInvalidPasswordHash indicates a configured password hash could not be parsed.
	ErrInvalidPasswordHash = NewDomainError("FS-AUTH-5000", "invalid password hash")

	// ErrMalformedRequest indicates the request payload could not be decoded.
	ErrMalformedRequest = NewDomainError("FS-PROTO-4000", "malformed request")

	// ErrMalformedReply indicates a reply payload could not be decoded.
	ErrMalformedReply = NewDomainError("FS-PROTO-5020", "malformed reply")

	// ErrRateLimited indicates the peer exceeded its request budget.
	ErrRateLimited = NewDomainError("FS-RATE-4290", "too many requests")
)

// ============================================================================
// File access errors
//
// These travel inside a successful file reply; the request itself was valid.
// ============================================================================

var (
	// ErrFileNotFound indicates the file does not exist or is not shared.
	ErrFileNotFound = NewDomainError("FS-FILE-4040", "file not found")

	// ErrFilePermission indicates the host may not read the file.
	ErrFilePermission = NewDomainError("FS-FILE-4030", "permission denied")

	// ErrNotRegularFile indicates the path names a directory or device.
	ErrNotRegularFile = NewDomainError("FS-FILE-4000", "not a regular file")

	// ErrFileTooLarge indicates the file exceeds the configured size limit.
	ErrFileTooLarge = NewDomainError("FS-FILE-4130", "file too large")

	// ErrFileRead indicates an unexpected I/O failure while reading.
	ErrFileRead = NewDomainError("FS-FILE-5000", "file read failed")
)

// ============================================================================
// Snapshot and connection errors
// ============================================================================

var (
	// ErrSnapshot indicates a shared root could not be walked.
	ErrSnapshot = NewDomainError("FS-SNAP-5000", "snapshot failed")

	// ErrConnectionLost indicates the transport to the host failed.
	ErrConnectionLost = NewDomainError("FS-CONN-5030", "connection lost")

	// ErrBridgeClosed indicates a command was submitted to a terminated session.
	ErrBridgeClosed = NewDomainError("FS-CONN-4990", "session closed")

	// ErrNotConnected indicates no session is active.
	ErrNotConnected = NewDomainError("FS-CONN-4000", "not connected")
)
