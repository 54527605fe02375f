package catalog

import (
	"time"

	"github.com/google/uuid"
	appshared "github.com/pressworks/backend/internal/application/shared"
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CatalogListFilter holds the query parameters shared by catalog listings
type CatalogListFilter struct {
	appshared.Pagination
	Search          string `form:"search" binding:"max=100"`
	IncludeArchived bool   `form:"include_archived"`
}

// =============================================================================
// Product size DTOs
// =============================================================================

// CreateProductSizeRequest represents a request to create a product size
type CreateProductSizeRequest struct {
	Label     string           `json:"label" binding:"required,min=1,max=100"`
	RatePerKg *decimal.Decimal `json:"rate_per_kg" binding:"required"`
}

// UpdateProductSizeRequest represents a request to update a product size.
// A new rate only applies to order lines created afterwards.
type UpdateProductSizeRequest struct {
	Label     *string          `json:"label" binding:"omitempty,min=1,max=100"`
	RatePerKg *decimal.Decimal `json:"rate_per_kg"`
}

// ProductSizeResponse represents a product size in API responses
type ProductSizeResponse struct {
	ID         uuid.UUID `json:"id"`
	Label      string    `json:"label"`
	RatePerKg  string    `json:"rate_per_kg"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToProductSizeResponse converts a domain ProductSize
func ToProductSizeResponse(s *catalog.ProductSize) ProductSizeResponse {
	return ProductSizeResponse{
		ID:         s.ID,
		Label:      s.Label,
		RatePerKg:  appshared.Money(s.RatePerKg),
		IsArchived: s.IsArchived,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// =============================================================================
// Plate type DTOs
// =============================================================================

// CreatePlateTypeRequest represents a request to create a plate type
type CreatePlateTypeRequest struct {
	Name   string           `json:"name" binding:"required,min=1,max=100"`
	Charge *decimal.Decimal `json:"charge" binding:"required"`
}

// UpdatePlateTypeRequest represents a request to update a plate type
type UpdatePlateTypeRequest struct {
	Name   *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Charge *decimal.Decimal `json:"charge"`
}

// PlateTypeResponse represents a plate type in API responses
type PlateTypeResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Charge     string    `json:"charge"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToPlateTypeResponse converts a domain PlateType
func ToPlateTypeResponse(p *catalog.PlateType) PlateTypeResponse {
	return PlateTypeResponse{
		ID:         p.ID,
		Name:       p.Name,
		Charge:     appshared.Money(p.Charge),
		IsArchived: p.IsArchived,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
