package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/pressworks/backend/internal/domain/trade"
	"github.com/pressworks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func preloadLineItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// FindByID finds an order with its line items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := preloadLineItems(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds the orders with the given IDs
func (r *GormOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]trade.Order, error) {
	if len(ids) == 0 {
		return []trade.Order{}, nil
	}
	var orderModels []models.OrderModel
	err := preloadLineItems(r.db.WithContext(ctx)).
		Where("id IN ?", ids).
		Order("order_date ASC, created_at ASC").
		Find(&orderModels).Error
	if err != nil {
		return nil, err
	}
	return toOrders(orderModels), nil
}

// FindByInvoiceID finds the orders linked to an invoice, oldest order date first
func (r *GormOrderRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]trade.Order, error) {
	var orderModels []models.OrderModel
	err := preloadLineItems(r.db.WithContext(ctx)).
		Where("invoice_id = ?", invoiceID).
		Order("order_date ASC, created_at ASC").
		Find(&orderModels).Error
	if err != nil {
		return nil, err
	}
	return toOrders(orderModels), nil
}

// FindAll lists orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter trade.OrderFilter) ([]trade.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(preloadLineItems(r.db.WithContext(ctx)).Model(&models.OrderModel{}), filter)
	if err := applyPage(query, filter.Filter, OrderSortFields, "order_date").Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toOrders(orderModels), nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter trade.OrderFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).Count(&count).Error
	return count, err
}

// Save writes the order header and replaces its line items. When called
// on a transaction handle the replacement joins it through a savepoint.
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return translateError(err)
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderLineItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return translateError(tx.Create(&model.Items).Error)
	})
}

// LinkInvoice sets invoice_id on an order that is not yet invoiced. The
// IS NULL guard makes a concurrent link surface as a conflict.
func (r *GormOrderRepository) LinkInvoice(ctx context.Context, orderID, invoiceID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND invoice_id IS NULL", orderID).
		Updates(map[string]any{
			"invoice_id": invoiceID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewConflictError("order is already invoiced")
	}
	return nil
}

// UnlinkInvoice clears invoice_id on every order linked to the invoice
func (r *GormOrderRepository) UnlinkInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("invoice_id = ?", invoiceID).
		Updates(map[string]any{
			"invoice_id": nil,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter trade.OrderFilter) *gorm.DB {
	query = applyArchived(query, filter.Filter)
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.InvoiceID != nil {
		query = query.Where("invoice_id = ?", *filter.InvoiceID)
	}
	if filter.UninvoicedOnly {
		query = query.Where("invoice_id IS NULL")
	}
	return query
}

func toOrders(orderModels []models.OrderModel) []trade.Order {
	orders := make([]trade.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
