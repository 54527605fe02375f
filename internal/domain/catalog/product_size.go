package catalog

import (
	"strings"

	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductSize is a sellable size of product, priced per kilogram.
// Changing RatePerKg only affects order lines created afterwards; existing
// lines keep the rate captured when they were created.
type ProductSize struct {
	shared.BaseEntity
	shared.Archivable
	Label     string
	RatePerKg decimal.Decimal
}

// NewProductSize creates a new product size
func NewProductSize(label string, ratePerKg decimal.Decimal) (*ProductSize, error) {
	label = strings.TrimSpace(label)
	if err := validateLabel(label); err != nil {
		return nil, err
	}
	if err := validateRate(ratePerKg); err != nil {
		return nil, err
	}
	return &ProductSize{
		BaseEntity: shared.NewBaseEntity(),
		Label:      label,
		RatePerKg:  ratePerKg,
	}, nil
}

// Update changes the label and the current rate
func (p *ProductSize) Update(label string, ratePerKg decimal.Decimal) error {
	label = strings.TrimSpace(label)
	if err := validateLabel(label); err != nil {
		return err
	}
	if err := validateRate(ratePerKg); err != nil {
		return err
	}
	p.Label = label
	p.RatePerKg = ratePerKg
	p.Touch()
	return nil
}

func validateLabel(label string) error {
	if label == "" {
		return shared.NewValidationError("product size label cannot be empty")
	}
	if len(label) > 100 {
		return shared.NewValidationError("product size label cannot exceed 100 characters")
	}
	return nil
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewValidationError("rate per kg cannot be negative")
	}
	return nil
}
