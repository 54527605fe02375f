package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/billing"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/pressworks/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter billing.PaymentFilter) ([]billing.Payment, error) {
	query := r.filtered(ctx, filter)
	return r.find(applyPage(query, filter.Filter, PaymentSortFields, "payment_date"))
}

// Count counts payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter billing.PaymentFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPaymentRepository) filtered(ctx context.Context, filter billing.PaymentFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{})
	if filter.InvoiceID != nil {
		query = query.Where("invoice_id = ?", *filter.InvoiceID)
	}
	if filter.OrderID != nil {
		query = query.Where("order_id = ?", *filter.OrderID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	return query
}

// FindByInvoiceID lists all payments linked to an invoice
func (r *GormPaymentRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]billing.Payment, error) {
	return r.find(r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("payment_date ASC, created_at ASC"))
}

// FindByOrderIDs lists all payments linked to any of the orders
func (r *GormPaymentRepository) FindByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]billing.Payment, error) {
	if len(orderIDs) == 0 {
		return []billing.Payment{}, nil
	}
	return r.find(r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("payment_date ASC, created_at ASC"))
}

// SumByInvoiceID sums the amounts of all payments linked to an invoice.
// Amounts are added in decimal; sqlite stores decimal columns as REAL and
// its SUM() would add them as floats.
func (r *GormPaymentRepository) SumByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("invoice_id = ?", invoiceID).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}

// Create inserts a payment
func (r *GormPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	return translateError(r.db.WithContext(ctx).Create(models.PaymentModelFromDomain(payment)).Error)
}

// Save updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	return translateError(r.db.WithContext(ctx).Save(models.PaymentModelFromDomain(payment)).Error)
}

// Delete removes a payment permanently
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AttachUnlinkedToInvoice links payments of the given orders that have no
// invoice yet to invoiceID
func (r *GormPaymentRepository) AttachUnlinkedToInvoice(ctx context.Context, orderIDs []uuid.UUID, invoiceID uuid.UUID) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("order_id IN ? AND invoice_id IS NULL", orderIDs).
		Updates(map[string]any{
			"invoice_id": invoiceID,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// UnlinkInvoice clears invoice_id on every payment linked to the invoice.
// order_id is left in place.
func (r *GormPaymentRepository) UnlinkInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("invoice_id = ?", invoiceID).
		Updates(map[string]any{
			"invoice_id": nil,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *GormPaymentRepository) find(query *gorm.DB) ([]billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]billing.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments, nil
}

var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
