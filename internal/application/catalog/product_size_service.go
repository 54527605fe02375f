package catalog

import (
	"context"

	"github.com/google/uuid"
	appshared "github.com/pressworks/backend/internal/application/shared"
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/samber/lo"
)

// ProductSizeService handles product size operations
type ProductSizeService struct {
	sizeRepo catalog.ProductSizeRepository
}

// NewProductSizeService creates a new ProductSizeService
func NewProductSizeService(sizeRepo catalog.ProductSizeRepository) *ProductSizeService {
	return &ProductSizeService{sizeRepo: sizeRepo}
}

// Create creates a new product size
func (s *ProductSizeService) Create(ctx context.Context, req CreateProductSizeRequest) (*ProductSizeResponse, error) {
	if req.RatePerKg == nil {
		return nil, shared.NewValidationError("rate_per_kg is required")
	}
	size, err := catalog.NewProductSize(req.Label, *req.RatePerKg)
	if err != nil {
		return nil, err
	}
	if err := s.sizeRepo.Save(ctx, size); err != nil {
		return nil, err
	}

	response := ToProductSizeResponse(size)
	return &response, nil
}

// GetByID gets a product size by ID, archived or not
func (s *ProductSizeService) GetByID(ctx context.Context, id uuid.UUID) (*ProductSizeResponse, error) {
	size, err := s.sizeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, appshared.NotFoundAs(err, "product size")
	}

	response := ToProductSizeResponse(size)
	return &response, nil
}

// List lists product sizes
func (s *ProductSizeService) List(ctx context.Context, filter CatalogListFilter) (*appshared.ListResponse[ProductSizeResponse], error) {
	domainFilter := filter.Filter()
	domainFilter.Search = filter.Search
	domainFilter.IncludeArchived = filter.IncludeArchived

	sizes, err := s.sizeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.sizeRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(sizes, func(size catalog.ProductSize, _ int) ProductSizeResponse {
		return ToProductSizeResponse(&size)
	})
	response := appshared.NewListResponse(items, total, domainFilter)
	return &response, nil
}

// Update changes a live product size. Existing order lines keep the rate
// they were created with.
func (s *ProductSizeService) Update(ctx context.Context, id uuid.UUID, req UpdateProductSizeRequest) (*ProductSizeResponse, error) {
	size, err := s.findLive(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := size.Update(lo.FromPtrOr(req.Label, size.Label), lo.FromPtrOr(req.RatePerKg, size.RatePerKg)); err != nil {
		return nil, err
	}
	if err := s.sizeRepo.Save(ctx, size); err != nil {
		return nil, err
	}

	response := ToProductSizeResponse(size)
	return &response, nil
}

// Archive soft-deletes a product size. New order lines can no longer
// reference it.
func (s *ProductSizeService) Archive(ctx context.Context, id uuid.UUID) error {
	size, err := s.findLive(ctx, id)
	if err != nil {
		return err
	}
	size.Archive()
	size.Touch()
	return s.sizeRepo.Save(ctx, size)
}

func (s *ProductSizeService) findLive(ctx context.Context, id uuid.UUID) (*catalog.ProductSize, error) {
	size, err := s.sizeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, appshared.NotFoundAs(err, "product size")
	}
	if size.IsArchived {
		return nil, shared.NewNotFoundError("product size")
	}
	return size, nil
}
