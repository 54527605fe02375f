package dto

import (
	"net/http"

	"github.com/pressworks/backend/internal/domain/shared"
)

// Error codes returned in the response envelope. Domain codes pass through
// unchanged; ErrCodeInternal replaces anything the domain did not classify.
const (
	ErrCodeValidation       = shared.CodeValidation
	ErrCodeNotFound         = shared.CodeNotFound
	ErrCodeNoEligibleOrders = shared.CodeNoEligibleOrders
	ErrCodeMissingTarget    = shared.CodeMissingTarget
	ErrCodeInvalidStatus    = shared.CodeInvalidStatus
	ErrCodeConflict         = shared.CodeConflict
	ErrCodeInvalidReference = shared.CodeInvalidReference

	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// InternalErrorMessage is the only message clients see for unclassified errors
const InternalErrorMessage = "An unexpected error occurred"

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeMissingTarget:    http.StatusBadRequest,
	ErrCodeInvalidStatus:    http.StatusBadRequest,
	ErrCodeInvalidReference: http.StatusBadRequest,
	ErrCodeBadRequest:       http.StatusBadRequest,

	ErrCodeNotFound: http.StatusNotFound,
	ErrCodeConflict: http.StatusConflict,

	ErrCodeNoEligibleOrders: http.StatusUnprocessableEntity,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsKnownCode reports whether code is part of the public error vocabulary
func IsKnownCode(code string) bool {
	_, ok := ErrorCodeHTTPStatus[code]
	return ok
}
