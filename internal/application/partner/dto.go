package partner

import (
	"time"

	"github.com/google/uuid"
	appshared "github.com/pressworks/backend/internal/application/shared"
	"github.com/pressworks/backend/internal/domain/partner"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name     string         `json:"name" binding:"required,min=1,max=200"`
	Metadata map[string]any `json:"metadata"`
}

// UpdateCustomerRequest represents a request to update a customer.
// A nil Metadata keeps the stored metadata.
type UpdateCustomerRequest struct {
	Name     *string        `json:"name" binding:"omitempty,min=1,max=200"`
	Metadata map[string]any `json:"metadata"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	appshared.Pagination
	Search          string `form:"search" binding:"max=100"`
	IncludeArchived bool   `form:"include_archived"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Metadata   map[string]any `json:"metadata"`
	IsArchived bool           `json:"is_archived"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         c.ID,
		Name:       c.Name,
		Metadata:   c.Metadata,
		IsArchived: c.IsArchived,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain Customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
