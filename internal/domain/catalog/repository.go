package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/shared"
)

// ProductSizeRepository defines the interface for product size persistence
type ProductSizeRepository interface {
	// FindByID finds a product size by ID, archived rows included
	FindByID(ctx context.Context, id uuid.UUID) (*ProductSize, error)

	// FindByIDs finds product sizes by IDs, archived rows included
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ProductSize, error)

	// Count counts product sizes matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindAll lists product sizes matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductSize, error)

	// Save creates or updates a product size
	Save(ctx context.Context, size *ProductSize) error
}

// PlateTypeRepository defines the interface for plate type persistence
type PlateTypeRepository interface {
	// FindByID finds a plate type by ID, archived rows included
	FindByID(ctx context.Context, id uuid.UUID) (*PlateType, error)

	// FindByIDs finds plate types by IDs, archived rows included
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]PlateType, error)

	// Count counts plate types matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindAll lists plate types matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]PlateType, error)

	// Save creates or updates a plate type
	Save(ctx context.Context, plateType *PlateType) error
}
