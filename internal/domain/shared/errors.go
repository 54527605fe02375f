package shared

import (
	"errors"
	"fmt"
)

// Error codes reported to callers. They are stable and safe to match on.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeNoEligibleOrders = "NO_ELIGIBLE_ORDERS"
	CodeMissingTarget    = "MISSING_TARGET"
	CodeInvalidStatus    = "INVALID_STATUS"
	CodeConflict         = "CONFLICT"
	CodeInvalidReference = "INVALID_REFERENCE"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, shared.ErrNotFound) matches any not-found error.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError(CodeNotFound, "Resource not found")
	ErrConflict         = NewDomainError(CodeConflict, "Resource was modified by another process")
	ErrNoEligibleOrders = NewDomainError(CodeNoEligibleOrders, "No eligible orders to invoice")
	ErrMissingTarget    = NewDomainError(CodeMissingTarget, "Either invoice_id or order_id is required")
)

// NewValidationError creates a VALIDATION_ERROR with the given message
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// NewNotFoundError reports that the named resource is absent or archived
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// NewInvalidStatusError reports a status outside the allowed set
func NewInvalidStatusError(status string, allowed ...string) *DomainError {
	return NewDomainError(CodeInvalidStatus, fmt.Sprintf("invalid status %q, allowed: %v", status, allowed))
}

// NewInvalidReferenceError reports a reference to a missing related resource
func NewInvalidReferenceError(resource string) *DomainError {
	return NewDomainError(CodeInvalidReference, fmt.Sprintf("referenced %s does not exist", resource))
}

// NewConflictError creates a CONFLICT error with the given message
func NewConflictError(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}

// IsDomainError reports whether err carries a DomainError with the given code
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
