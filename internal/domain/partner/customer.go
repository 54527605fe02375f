package partner

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/shared"
)

// Well-known metadata keys. Metadata is free-form; these are only the keys
// the invoice header reads.
const (
	MetadataEmail   = "email"
	MetadataPhone   = "phone"
	MetadataAddress = "address"
)

// Customer is a buyer that places orders and receives invoices
type Customer struct {
	shared.BaseEntity
	shared.Archivable
	Name     string
	Metadata map[string]any
}

// NewCustomer creates a new customer
func NewCustomer(name string, metadata map[string]any) (*Customer, error) {
	name = strings.TrimSpace(name)
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Metadata:   metadata,
	}, nil
}

// Update replaces the customer's name and metadata
func (c *Customer) Update(name string, metadata map[string]any) error {
	name = strings.TrimSpace(name)
	if err := validateCustomerName(name); err != nil {
		return err
	}
	c.Name = name
	if metadata != nil {
		c.Metadata = metadata
	}
	c.Touch()
	return nil
}

// MetadataString returns a metadata value as a string, or "" when absent
func (c *Customer) MetadataString(key string) string {
	if c.Metadata == nil {
		return ""
	}
	if v, ok := c.Metadata[key].(string); ok {
		return v
	}
	return ""
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewValidationError("customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("customer name cannot exceed 200 characters")
	}
	return nil
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by ID, archived rows included
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindAll lists customers; Filter.Search matches the name
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error
}
