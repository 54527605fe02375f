package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/billing"
	"github.com/pressworks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func preloadInvoiceItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// FindByID finds an invoice with its items
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := preloadInvoiceItems(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(preloadInvoiceItems(r.db.WithContext(ctx)).Model(&models.InvoiceModel{}), filter)
	if err := applyPage(query, filter.Filter, InvoiceSortFields, "invoice_date").Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]billing.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = *invoiceModels[i].ToDomain()
	}
	return invoices, nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter billing.InvoiceFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter).Count(&count).Error
	return count, err
}

// Create inserts an invoice and its items. The unique index on
// invoice_number turns a concurrent allocation into shared.ErrConflict.
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError(err)
	}
	if len(model.Items) == 0 {
		return nil
	}
	return translateError(db.Create(&model.Items).Error)
}

// Save updates the invoice header
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error)
}

// ListInvoiceNumbers returns every invoice number, archived invoices included
func (r *GormInvoiceRepository) ListInvoiceNumbers(ctx context.Context) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Pluck("invoice_number", &numbers).Error
	return numbers, err
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter billing.InvoiceFilter) *gorm.DB {
	query = applyArchived(query, filter.Filter)
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("invoice_number LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
