package catalog

import (
	"context"

	"github.com/google/uuid"
	appshared "github.com/pressworks/backend/internal/application/shared"
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/samber/lo"
)

// PlateTypeService handles plate type operations
type PlateTypeService struct {
	plateRepo catalog.PlateTypeRepository
}

// NewPlateTypeService creates a new PlateTypeService
func NewPlateTypeService(plateRepo catalog.PlateTypeRepository) *PlateTypeService {
	return &PlateTypeService{plateRepo: plateRepo}
}

// Create creates a new plate type
func (s *PlateTypeService) Create(ctx context.Context, req CreatePlateTypeRequest) (*PlateTypeResponse, error) {
	if req.Charge == nil {
		return nil, shared.NewValidationError("charge is required")
	}
	plate, err := catalog.NewPlateType(req.Name, *req.Charge)
	if err != nil {
		return nil, err
	}
	if err := s.plateRepo.Save(ctx, plate); err != nil {
		return nil, err
	}

	response := ToPlateTypeResponse(plate)
	return &response, nil
}

// GetByID gets a plate type by ID, archived or not
func (s *PlateTypeService) GetByID(ctx context.Context, id uuid.UUID) (*PlateTypeResponse, error) {
	plate, err := s.plateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, appshared.NotFoundAs(err, "plate type")
	}

	response := ToPlateTypeResponse(plate)
	return &response, nil
}

// List lists plate types
func (s *PlateTypeService) List(ctx context.Context, filter CatalogListFilter) (*appshared.ListResponse[PlateTypeResponse], error) {
	domainFilter := filter.Filter()
	domainFilter.Search = filter.Search
	domainFilter.IncludeArchived = filter.IncludeArchived

	plates, err := s.plateRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.plateRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(plates, func(plate catalog.PlateType, _ int) PlateTypeResponse {
		return ToPlateTypeResponse(&plate)
	})
	response := appshared.NewListResponse(items, total, domainFilter)
	return &response, nil
}

// Update changes a live plate type. Order totals always read the current
// charge; generated invoices keep the amounts they were built with.
func (s *PlateTypeService) Update(ctx context.Context, id uuid.UUID, req UpdatePlateTypeRequest) (*PlateTypeResponse, error) {
	plate, err := s.findLive(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := plate.Update(lo.FromPtrOr(req.Name, plate.Name), lo.FromPtrOr(req.Charge, plate.Charge)); err != nil {
		return nil, err
	}
	if err := s.plateRepo.Save(ctx, plate); err != nil {
		return nil, err
	}

	response := ToPlateTypeResponse(plate)
	return &response, nil
}

// Archive soft-deletes a plate type
func (s *PlateTypeService) Archive(ctx context.Context, id uuid.UUID) error {
	plate, err := s.findLive(ctx, id)
	if err != nil {
		return err
	}
	plate.Archive()
	plate.Touch()
	return s.plateRepo.Save(ctx, plate)
}

func (s *PlateTypeService) findLive(ctx context.Context, id uuid.UUID) (*catalog.PlateType, error) {
	plate, err := s.plateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, appshared.NotFoundAs(err, "plate type")
	}
	if plate.IsArchived {
		return nil, shared.NewNotFoundError("plate type")
	}
	return plate, nil
}
