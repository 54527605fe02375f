package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeMissingTarget, http.StatusBadRequest},
		{ErrCodeInvalidStatus, http.StatusBadRequest},
		{ErrCodeInvalidReference, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeNoEligibleOrders, http.StatusUnprocessableEntity},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestErrorCodes_MatchDomainCodes(t *testing.T) {
	assert.Equal(t, "VALIDATION_ERROR", ErrCodeValidation)
	assert.Equal(t, "NO_ELIGIBLE_ORDERS", ErrCodeNoEligibleOrders)
	assert.True(t, IsKnownCode("MISSING_TARGET"))
	assert.False(t, IsKnownCode("ERR_UNKNOWN"))
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-9", []ValidationDetail{
		{Field: "customer_id", Message: "This field is required"},
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": false,
		"error": {
			"code": "VALIDATION_ERROR",
			"message": "Request validation failed",
			"request_id": "req-9",
			"details": [{"field": "customer_id", "message": "This field is required"}]
		}
	}`, string(raw))
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)

	require.NotNil(t, resp.Meta)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	resp = NewSuccessResponseWithMeta(nil, 5, 1, 0)
	assert.Equal(t, 0, resp.Meta.TotalPages)
}
