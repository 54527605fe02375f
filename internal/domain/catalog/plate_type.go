package catalog

import (
	"strings"

	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PlateType is a printing plate option. Its Charge is a fixed surcharge
// added once to every order that uses it.
type PlateType struct {
	shared.BaseEntity
	shared.Archivable
	Name   string
	Charge decimal.Decimal
}

// NewPlateType creates a new plate type
func NewPlateType(name string, charge decimal.Decimal) (*PlateType, error) {
	name = strings.TrimSpace(name)
	if err := validatePlateType(name, charge); err != nil {
		return nil, err
	}
	return &PlateType{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Charge:     charge,
	}, nil
}

// Update changes the name and the charge
func (p *PlateType) Update(name string, charge decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if err := validatePlateType(name, charge); err != nil {
		return err
	}
	p.Name = name
	p.Charge = charge
	p.Touch()
	return nil
}

func validatePlateType(name string, charge decimal.Decimal) error {
	if name == "" {
		return shared.NewValidationError("plate type name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewValidationError("plate type name cannot exceed 100 characters")
	}
	if charge.IsNegative() {
		return shared.NewValidationError("plate charge cannot be negative")
	}
	return nil
}
