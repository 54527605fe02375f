package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/pressworks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductSizeRepository implements ProductSizeRepository using GORM
type GormProductSizeRepository struct {
	db *gorm.DB
}

// NewGormProductSizeRepository creates a new GormProductSizeRepository
func NewGormProductSizeRepository(db *gorm.DB) *GormProductSizeRepository {
	return &GormProductSizeRepository{db: db}
}

// FindByID finds a product size by its ID
func (r *GormProductSizeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductSize, error) {
	var model models.ProductSizeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds product sizes by their IDs
func (r *GormProductSizeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.ProductSize, error) {
	if len(ids) == 0 {
		return []catalog.ProductSize{}, nil
	}
	var sizeModels []models.ProductSizeModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&sizeModels).Error; err != nil {
		return nil, err
	}
	sizes := make([]catalog.ProductSize, len(sizeModels))
	for i := range sizeModels {
		sizes[i] = *sizeModels[i].ToDomain()
	}
	return sizes, nil
}

// FindAll lists product sizes matching the filter
func (r *GormProductSizeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductSize, error) {
	var sizeModels []models.ProductSizeModel
	if err := applyPage(r.filtered(ctx, filter), filter, ProductSizeSortFields, "label").Find(&sizeModels).Error; err != nil {
		return nil, err
	}
	sizes := make([]catalog.ProductSize, len(sizeModels))
	for i := range sizeModels {
		sizes[i] = *sizeModels[i].ToDomain()
	}
	return sizes, nil
}

// Count counts product sizes matching the filter
func (r *GormProductSizeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(ctx, filter).Count(&count).Error
	return count, err
}

func (r *GormProductSizeRepository) filtered(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := applyArchived(r.db.WithContext(ctx).Model(&models.ProductSizeModel{}), filter)
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(label) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	return query
}

// Save creates or updates a product size
func (r *GormProductSizeRepository) Save(ctx context.Context, size *catalog.ProductSize) error {
	model := &models.ProductSizeModel{}
	model.FromDomain(size)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// GormPlateTypeRepository implements PlateTypeRepository using GORM
type GormPlateTypeRepository struct {
	db *gorm.DB
}

// NewGormPlateTypeRepository creates a new GormPlateTypeRepository
func NewGormPlateTypeRepository(db *gorm.DB) *GormPlateTypeRepository {
	return &GormPlateTypeRepository{db: db}
}

// FindByID finds a plate type by its ID
func (r *GormPlateTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.PlateType, error) {
	var model models.PlateTypeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds plate types by their IDs
func (r *GormPlateTypeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.PlateType, error) {
	if len(ids) == 0 {
		return []catalog.PlateType{}, nil
	}
	var plateModels []models.PlateTypeModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&plateModels).Error; err != nil {
		return nil, err
	}
	plates := make([]catalog.PlateType, len(plateModels))
	for i := range plateModels {
		plates[i] = *plateModels[i].ToDomain()
	}
	return plates, nil
}

// FindAll lists plate types matching the filter
func (r *GormPlateTypeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.PlateType, error) {
	var plateModels []models.PlateTypeModel
	if err := applyPage(r.filtered(ctx, filter), filter, PlateTypeSortFields, "name").Find(&plateModels).Error; err != nil {
		return nil, err
	}
	plates := make([]catalog.PlateType, len(plateModels))
	for i := range plateModels {
		plates[i] = *plateModels[i].ToDomain()
	}
	return plates, nil
}

// Count counts plate types matching the filter
func (r *GormPlateTypeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(ctx, filter).Count(&count).Error
	return count, err
}

func (r *GormPlateTypeRepository) filtered(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := applyArchived(r.db.WithContext(ctx).Model(&models.PlateTypeModel{}), filter)
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	return query
}

// Save creates or updates a plate type
func (r *GormPlateTypeRepository) Save(ctx context.Context, plateType *catalog.PlateType) error {
	model := &models.PlateTypeModel{}
	model.FromDomain(plateType)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

var (
	_ catalog.ProductSizeRepository = (*GormProductSizeRepository)(nil)
	_ catalog.PlateTypeRepository   = (*GormPlateTypeRepository)(nil)
)
