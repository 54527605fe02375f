package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/billing"
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/pressworks/backend/internal/domain/partner"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/pressworks/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

type MockProductSizeRepository struct {
	mock.Mock
}

func (m *MockProductSizeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductSize, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductSize), args.Error(1)
}

func (m *MockProductSizeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.ProductSize, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.ProductSize), args.Error(1)
}

func (m *MockProductSizeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductSize, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.ProductSize), args.Error(1)
}

func (m *MockProductSizeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductSizeRepository) Save(ctx context.Context, size *catalog.ProductSize) error {
	return m.Called(ctx, size).Error(0)
}

type MockPlateTypeRepository struct {
	mock.Mock
}

func (m *MockPlateTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.PlateType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.PlateType), args.Error(1)
}

func (m *MockPlateTypeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.PlateType, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.PlateType), args.Error(1)
}

func (m *MockPlateTypeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.PlateType, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.PlateType), args.Error(1)
}

func (m *MockPlateTypeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlateTypeRepository) Save(ctx context.Context, plateType *catalog.PlateType) error {
	return m.Called(ctx, plateType).Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]trade.Order, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]trade.Order, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter trade.OrderFilter) ([]trade.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter trade.OrderFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) LinkInvoice(ctx context.Context, orderID, invoiceID uuid.UUID) error {
	return m.Called(ctx, orderID, invoiceID).Error(0)
}

func (m *MockOrderRepository) UnlinkInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(int64), args.Error(1)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter billing.InvoiceFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) ListInvoiceNumbers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter billing.PaymentFilter) ([]billing.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter billing.PaymentFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, orderIDs)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPaymentRepository) AttachUnlinkedToInvoice(ctx context.Context, orderIDs []uuid.UUID, invoiceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orderIDs, invoiceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) UnlinkInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(int64), args.Error(1)
}

// MockMetrics records billing metrics calls
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordInvoiceGenerated(ctx context.Context, finalAmount decimal.Decimal) {
	m.Called(ctx, finalAmount)
}

func (m *MockMetrics) RecordInvoiceNumberConflict(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockMetrics) RecordInvoiceStatusChange(ctx context.Context, from, to string) {
	m.Called(ctx, from, to)
}

func (m *MockMetrics) RecordInvoiceDeleted(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockMetrics) RecordPayment(ctx context.Context, paymentType, paymentMethod, outcome string) {
	m.Called(ctx, paymentType, paymentMethod, outcome)
}

// testRepos bundles the mocks behind a NoOpTransactionScope
type testRepos struct {
	customers *MockCustomerRepository
	sizes     *MockProductSizeRepository
	plates    *MockPlateTypeRepository
	orders    *MockOrderRepository
	invoices  *MockInvoiceRepository
	payments  *MockPaymentRepository
}

func newTestRepos() *testRepos {
	return &testRepos{
		customers: new(MockCustomerRepository),
		sizes:     new(MockProductSizeRepository),
		plates:    new(MockPlateTypeRepository),
		orders:    new(MockOrderRepository),
		invoices:  new(MockInvoiceRepository),
		payments:  new(MockPaymentRepository),
	}
}

func (r *testRepos) repositories() Repositories {
	return Repositories{
		Customers:    r.customers,
		ProductSizes: r.sizes,
		PlateTypes:   r.plates,
		Orders:       r.orders,
		Invoices:     r.invoices,
		Payments:     r.payments,
	}
}

func (r *testRepos) scope() *NoOpTransactionScope {
	return NewNoOpTransactionScope(r.repositories())
}

func (r *testRepos) assertExpectations(t mock.TestingT) {
	r.customers.AssertExpectations(t)
	r.sizes.AssertExpectations(t)
	r.plates.AssertExpectations(t)
	r.orders.AssertExpectations(t)
	r.invoices.AssertExpectations(t)
	r.payments.AssertExpectations(t)
}
