package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
	CodeValidation       ErrorCode = "VALIDATION_ERROR"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeUnauthenticated  ErrorCode = "UNAUTHENTICATED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"

	// Progression specific errors
	CodeProfileNotFound  ErrorCode = "PROFILE_NOT_FOUND"
	CodeEventNotFound    ErrorCode = "EVENT_NOT_FOUND"
	CodeAlreadyCompleted ErrorCode = "EVENT_ALREADY_COMPLETED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewUnauthenticatedError(message string) *DomainError {
	return NewError(CodeUnauthenticated, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewConflictError(message string) *DomainError {
	return NewError(CodeConflict, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// NewProfileNotFoundError reports an absent profile for a verified identity.
func NewProfileNotFoundError() *DomainError {
	return NewError(CodeProfileNotFound, "User profile not found.", nil)
}

// NewEventNotFoundError covers absent, inactive and expired events alike so
// callers cannot distinguish expired from missing.
func NewEventNotFoundError() *DomainError {
	return NewError(CodeEventNotFound, "Event not found or not active.", nil)
}

// NewAlreadyCompletedError reports the event idempotence guard firing. It is
// a final outcome for the caller, not a system fault.
func NewAlreadyCompletedError() *DomainError {
	return NewError(CodeAlreadyCompleted, "You have already completed this event.", nil)
}

// NewStoreUnavailableError wraps a transient backend failure. This is the
// only error class callers may safely retry, and only on idempotent paths.
func NewStoreUnavailableError(message string, cause error) *DomainError {
	return NewError(CodeStoreUnavailable, message, cause)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level validation failures for one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e[0].Error())
}

func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}
