package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Pipeline errors
	ErrExtractionFailed   ErrorCode = "EXTRACTION_FAILED"
	ErrMalformedSource    ErrorCode = "MALFORMED_SOURCE"
	ErrUnsupportedFormat  ErrorCode = "UNSUPPORTED_FORMAT"
	ErrIntegrityViolation ErrorCode = "INTEGRITY_VIOLATION"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsCode reports whether err wraps a DomainError with the given code
func IsCode(err error, code ErrorCode) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewExtractionError(path string, err error) *DomainError {
	return NewError(ErrExtractionFailed, fmt.Sprintf("failed to extract resources from %s", path), err)
}

func NewMalformedSourceError(path, reason string) *DomainError {
	return NewError(ErrMalformedSource, fmt.Sprintf("malformed source %s: %s", path, reason), nil)
}

func NewUnsupportedFormatError(path string) *DomainError {
	return NewError(ErrUnsupportedFormat, fmt.Sprintf("unsupported source format: %s", path), nil)
}

func NewIntegrityViolationError(err error) *DomainError {
	return NewError(ErrIntegrityViolation, "database integrity violation", err)
}
