package persistence

import (
	"context"

	appbilling "github.com/pressworks/backend/internal/application/billing"
	"github.com/pressworks/backend/internal/domain/billing"
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/pressworks/backend/internal/domain/partner"
	"github.com/pressworks/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories builds repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) CustomerRepo() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormTransactionalRepositories) ProductSizeRepo() catalog.ProductSizeRepository {
	return NewGormProductSizeRepository(r.tx)
}

func (r *gormTransactionalRepositories) PlateTypeRepo() catalog.PlateTypeRepository {
	return NewGormPlateTypeRepository(r.tx)
}

func (r *gormTransactionalRepositories) OrderRepo() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) InvoiceRepo() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *gormTransactionalRepositories) PaymentRepo() billing.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

var (
	_ appbilling.TransactionScope          = (*GormTransactionScope)(nil)
	_ appbilling.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)

// NewBillingRepositories builds the non-transactional repositories the
// billing services read through
func NewBillingRepositories(db *gorm.DB) appbilling.Repositories {
	return appbilling.Repositories{
		Customers:    NewGormCustomerRepository(db),
		ProductSizes: NewGormProductSizeRepository(db),
		PlateTypes:   NewGormPlateTypeRepository(db),
		Orders:       NewGormOrderRepository(db),
		Invoices:     NewGormInvoiceRepository(db),
		Payments:     NewGormPaymentRepository(db),
	}
}
