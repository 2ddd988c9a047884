package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("FS-TEST-1000", "test message"),
			expected: "[FS-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("FS-TEST-1001", "test message").WithDetails("extra info"),
			expected: "[FS-TEST-1001] test message: extra info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("FS-TEST-1000", "message 1")
	err2 := NewDomainError("FS-TEST-1000", "message 2")
	err3 := NewDomainError("FS-TEST-1001", "message 1")

	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := NewDomainError("FS-TEST-1000", "wrapper").WithCause(cause)

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	errNoCause := NewDomainError("FS-TEST-1000", "no cause")
	if errors.Unwrap(errNoCause) != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestDomainError_WithDetails(t *testing.T) {
	original := NewDomainError("FS-TEST-1000", "original message")
	withDetails := original.WithDetails("additional details")

	if original.Details != "" {
		t.Error("WithDetails should not modify original error")
	}
	if withDetails.Details != "additional details" {
		t.Errorf("Details = %q, want %q", withDetails.Details, "additional details")
	}
	if withDetails.Code != original.Code {
		t.Errorf("Code = %q, want %q", withDetails.Code, original.Code)
	}
}

func TestIsDomainError(t *testing.T) {
	if !IsDomainError(ErrFileNotFound, "FS-FILE-4040") {
		t.Error("IsDomainError should return true for matching code")
	}
	if IsDomainError(ErrFileNotFound, "FS-FILE-9999") {
		t.Error("IsDomainError should return false for non-matching code")
	}
	if IsDomainError(fmt.Errorf("regular error"), "FS-FILE-4040") {
		t.Error("IsDomainError should return false for non-DomainError")
	}
	if !IsDomainError(ErrAuthFailed, "") {
		t.Error("IsDomainError with empty code should match any DomainError")
	}

	wrapped := fmt.Errorf("wrapped: %w", ErrConnectionLost)
	if !IsDomainError(wrapped, "FS-CONN-5030") {
		t.Error("IsDomainError should work with wrapped errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"domain error", ErrFilePermission, "FS-FILE-4030"},
		{"wrapped domain error", fmt.Errorf("wrapped: %w", ErrMalformedRequest), "FS-PROTO-4000"},
		{"regular error", fmt.Errorf("regular error"), ""},
		{"nil error", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err  *DomainError
		code string
	}{
		{ErrAuthFailed, "FS-AUTH-4010"},
		{ErrInvalidPasswordHash, "FS-AUTH-5000"},
		{ErrMalformedRequest, "FS-PROTO-4000"},
		{ErrMalformedReply, "FS-PROTO-5020"},
		{ErrRateLimited, "FS-RATE-4290"},
		{ErrFileNotFound, "FS-FILE-4040"},
		{ErrFilePermission, "FS-FILE-4030"},
		{ErrNotRegularFile, "FS-FILE-4000"},
		{ErrFileTooLarge, "FS-FILE-4130"},
		{ErrFileRead, "FS-FILE-5000"},
		{ErrSnapshot, "FS-SNAP-5000"},
		{ErrConnectionLost, "FS-CONN-5030"},
		{ErrBridgeClosed, "FS-CONN-4990"},
		{ErrNotConnected, "FS-CONN-4000"},
	}

	seen := make(map[string]bool)
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Error code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.Message == "" {
				t.Error("Error message should not be empty")
			}
			if seen[tt.code] {
				t.Errorf("duplicate error code %q", tt.code)
			}
			seen[tt.code] = true
		})
	}
}

func TestErrorChaining(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := ErrFileNotFound.
		WithDetails("/srv/share/a.txt").
		WithCause(cause)

	if err.Code != "FS-FILE-4040" {
		t.Errorf("Code = %q, want %q", err.Code, "FS-FILE-4040")
	}
	if err.Details != "/srv/share/a.txt" {
		t.Errorf("Details = %q", err.Details)
	}
	if err.Cause != cause {
		t.Error("Cause should be preserved")
	}
	if !errors.Is(err, ErrFileNotFound) {
		t.Error("errors.Is should work after chaining")
	}
}
