package billing

import (
	"context"

	"github.com/pressworks/backend/internal/domain/billing"
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/pressworks/backend/internal/domain/partner"
	"github.com/pressworks/backend/internal/domain/trade"
)

// TransactionScope runs a unit of work atomically. If fn returns an error
// every write made through the repositories it received is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories of one transaction.
// Repositories obtained outside fn must not be used inside it.
type TransactionalRepositories interface {
	CustomerRepo() partner.CustomerRepository
	ProductSizeRepo() catalog.ProductSizeRepository
	PlateTypeRepo() catalog.PlateTypeRepository
	OrderRepo() trade.OrderRepository
	InvoiceRepo() billing.InvoiceRepository
	PaymentRepo() billing.PaymentRepository
}

// Repositories groups the repositories a NoOpTransactionScope hands out
type Repositories struct {
	Customers    partner.CustomerRepository
	ProductSizes catalog.ProductSizeRepository
	PlateTypes   catalog.PlateTypeRepository
	Orders       trade.OrderRepository
	Invoices     billing.InvoiceRepository
	Payments     billing.PaymentRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
// Used in unit tests with mocked repositories.
type NoOpTransactionScope struct {
	repos Repositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(repos Repositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{repos: repos}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) CustomerRepo() partner.CustomerRepository { return s.repos.Customers }
func (s *NoOpTransactionScope) ProductSizeRepo() catalog.ProductSizeRepository {
	return s.repos.ProductSizes
}
func (s *NoOpTransactionScope) PlateTypeRepo() catalog.PlateTypeRepository { return s.repos.PlateTypes }
func (s *NoOpTransactionScope) OrderRepo() trade.OrderRepository           { return s.repos.Orders }
func (s *NoOpTransactionScope) InvoiceRepo() billing.InvoiceRepository     { return s.repos.Invoices }
func (s *NoOpTransactionScope) PaymentRepo() billing.PaymentRepository     { return s.repos.Payments }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
