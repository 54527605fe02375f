package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appbilling "github.com/pressworks/backend/internal/application/billing"
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/pressworks/backend/internal/domain/partner"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/pressworks/backend/internal/domain/trade"
	"github.com/pressworks/backend/internal/infrastructure/config"
	"github.com/pressworks/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type engine struct {
	db       *gorm.DB
	invoices *appbilling.InvoiceService
	payments *appbilling.PaymentService
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(context.Background()))
	t.Cleanup(func() { _ = db.Close() })

	scope := persistence.NewGormTransactionScope(db.DB)
	repos := persistence.NewBillingRepositories(db.DB)
	clock := appbilling.WithClock(func() time.Time {
		return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	})
	return &engine{
		db:       db.DB,
		invoices: appbilling.NewInvoiceService(scope, repos, clock),
		payments: appbilling.NewPaymentService(scope, repos, clock),
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// TestBillingEngine_InvoiceLifecycle walks one customer through generation,
// payment, status recomputation, deletion and regeneration
func TestBillingEngine_InvoiceLifecycle(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	customer, err := partner.NewCustomer("Northwind Packaging", nil)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCustomerRepository(e.db).Save(ctx, customer))

	size, err := catalog.NewProductSize("12 micron", decimal.NewFromInt(50))
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormProductSizeRepository(e.db).Save(ctx, size))
	plate, err := catalog.NewPlateType("Cylinder", decimal.NewFromInt(200))
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormPlateTypeRepository(e.db).Save(ctx, plate))

	orderRepo := persistence.NewGormOrderRepository(e.db)
	orderA, err := trade.NewOrder(customer.ID, mustDate(t, "2024-01-10"), &plate.ID, decimal.NewFromInt(300), "")
	require.NoError(t, err)
	_, err = orderA.AddItem(size, decimal.NewFromInt(20))
	require.NoError(t, err)
	require.NoError(t, orderRepo.Save(ctx, orderA))

	orderB, err := trade.NewOrder(customer.ID, mustDate(t, "2024-01-15"), nil, decimal.Zero, "")
	require.NoError(t, err)
	_, err = orderB.AddItem(size, decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, orderRepo.Save(ctx, orderB))

	// the advance, recorded before the order was billed
	advance, err := e.payments.Record(ctx, appbilling.RecordPaymentRequest{
		OrderID: &orderA.ID,
		Amount:  amount("300"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ADVANCE", advance.PaymentType)
	assert.Nil(t, advance.InvoiceID)

	invoice, err := e.invoices.Generate(ctx, appbilling.GenerateInvoiceRequest{
		CustomerID: customer.ID,
		OrderIDs:   []uuid.UUID{orderA.ID, orderB.ID},
		TaxPercent: amount("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "00000001", invoice.InvoiceNumber)
	assert.Equal(t, "1700.00", invoice.TotalAmount)
	assert.Equal(t, "170.00", invoice.TaxAmount)
	assert.Equal(t, "1870.00", invoice.FinalAmount)
	assert.Equal(t, "2024-01-10", invoice.BillingPeriodStart)
	assert.Equal(t, "PENDING", invoice.Status)
	require.Len(t, invoice.Items, 4)
	assert.Equal(t, "Advance Payment - 2024-01-10", invoice.Items[2].Description)
	assert.Equal(t, "-300.00", invoice.Items[2].TotalPrice)
	require.Len(t, invoice.Payments, 1)
	assert.Equal(t, advance.ID, invoice.Payments[0].ID)
	assert.Equal(t, "300.00", invoice.PaymentSummary.TotalPaid)
	assert.Equal(t, "1570.00", invoice.PaymentSummary.RemainingBalance)

	// a second generation over the same orders finds nothing to bill
	_, err = e.invoices.Generate(ctx, appbilling.GenerateInvoiceRequest{
		CustomerID: customer.ID,
		OrderIDs:   []uuid.UUID{orderA.ID, orderB.ID},
	})
	assert.ErrorIs(t, err, shared.ErrNoEligibleOrders)

	settlement, err := e.payments.Record(ctx, appbilling.RecordPaymentRequest{
		InvoiceID: &invoice.ID,
		Amount:    amount("1570"),
	})
	require.NoError(t, err)
	assert.Equal(t, "PARTIAL", settlement.PaymentType)
	require.NotNil(t, settlement.OrderID)
	assert.Equal(t, orderA.ID, *settlement.OrderID)
	assert.True(t, settlement.PaymentSummary.IsFullyPaid)

	paid, err := e.invoices.Get(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "PAID", paid.Status)

	require.NoError(t, e.payments.Delete(ctx, settlement.ID))
	reopened, err := e.invoices.Get(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", reopened.Status)

	require.NoError(t, e.invoices.Delete(ctx, invoice.ID))
	_, err = e.invoices.Get(ctx, invoice.ID)
	assert.True(t, shared.IsDomainError(err, shared.CodeNotFound))

	unlinked, err := orderRepo.FindByID(ctx, orderA.ID)
	require.NoError(t, err)
	assert.Nil(t, unlinked.InvoiceID)
	kept, err := e.payments.Get(ctx, advance.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.InvoiceID)
	require.NotNil(t, kept.OrderID)
	assert.Equal(t, orderA.ID, *kept.OrderID)

	regenerated, err := e.invoices.Generate(ctx, appbilling.GenerateInvoiceRequest{
		CustomerID: customer.ID,
		OrderIDs:   []uuid.UUID{orderA.ID, orderB.ID},
		TaxPercent: amount("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "00000002", regenerated.InvoiceNumber)
	assert.Equal(t, "1870.00", regenerated.FinalAmount)
	assert.Len(t, regenerated.Payments, 1)
}

func TestBillingEngine_RenderAndArchive(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	customer, err := partner.NewCustomer("Harbor Labels", map[string]any{partner.MetadataEmail: "ap@harbor.test"})
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCustomerRepository(e.db).Save(ctx, customer))
	size, err := catalog.NewProductSize("20 micron", decimal.NewFromInt(80))
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormProductSizeRepository(e.db).Save(ctx, size))
	order, err := trade.NewOrder(customer.ID, mustDate(t, "2024-02-20"), nil, decimal.NewFromInt(100), "")
	require.NoError(t, err)
	_, err = order.AddItem(size, decimal.NewFromInt(5))
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormOrderRepository(e.db).Save(ctx, order))

	invoice, err := e.invoices.Generate(ctx, appbilling.GenerateInvoiceRequest{
		CustomerID: customer.ID,
		OrderIDs:   []uuid.UUID{order.ID},
	})
	require.NoError(t, err)

	renderer := &recordingRenderer{}
	store := &memoryStore{objects: map[string][]byte{}}
	svc := appbilling.NewInvoiceService(
		persistence.NewGormTransactionScope(e.db),
		persistence.NewBillingRepositories(e.db),
		appbilling.WithRenderer(renderer),
		appbilling.WithDocumentStore(store),
	)

	rendered, err := svc.RenderPDF(ctx, invoice.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "invoice-"+invoice.InvoiceNumber+".pdf", rendered.Filename)
	assert.Equal(t, "mem://invoices/"+invoice.InvoiceNumber+".pdf", rendered.ArchiveLocation)
	assert.Equal(t, rendered.Content, store.objects["invoices/"+invoice.InvoiceNumber+".pdf"])
	assert.True(t, renderer.doc.Summary.AdvancePaid.Equal(decimal.NewFromInt(100)))
	assert.True(t, renderer.doc.Summary.TotalPayable.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "ap@harbor.test", renderer.doc.Customer.MetadataString(partner.MetadataEmail))
}

// TestBillingEngine_CentPaymentsSettleInvoice pays the final amount in
// fractional pieces whose float sum falls short of the decimal total
func TestBillingEngine_CentPaymentsSettleInvoice(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	size, err := catalog.NewProductSize("Label stock", decimal.RequireFromString("0.08"))
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormProductSizeRepository(e.db).Save(ctx, size))

	newCentOrder := func(name string) (*partner.Customer, *trade.Order) {
		customer, err := partner.NewCustomer(name, nil)
		require.NoError(t, err)
		require.NoError(t, persistence.NewGormCustomerRepository(e.db).Save(ctx, customer))
		order, err := trade.NewOrder(customer.ID, mustDate(t, "2024-02-01"), nil, decimal.Zero, "")
		require.NoError(t, err)
		_, err = order.AddItem(size, decimal.NewFromInt(10))
		require.NoError(t, err)
		require.NoError(t, persistence.NewGormOrderRepository(e.db).Save(ctx, order))
		return customer, order
	}

	t.Run("payments recorded after generation", func(t *testing.T) {
		customer, order := newCentOrder("Cedar Labels")
		invoice, err := e.invoices.Generate(ctx, appbilling.GenerateInvoiceRequest{
			CustomerID: customer.ID,
			OrderIDs:   []uuid.UUID{order.ID},
		})
		require.NoError(t, err)
		require.Equal(t, "0.80", invoice.FinalAmount)

		for _, piece := range []string{"0.7", "0.1"} {
			_, err := e.payments.Record(ctx, appbilling.RecordPaymentRequest{
				InvoiceID: &invoice.ID,
				Amount:    amount(piece),
			})
			require.NoError(t, err)
		}

		got, err := e.invoices.Get(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, "0.80", got.PaymentSummary.TotalPaid)
		assert.True(t, got.PaymentSummary.IsFullyPaid)
		assert.Equal(t, "PAID", got.Status)
	})

	t.Run("order payments re-associated at generation", func(t *testing.T) {
		customer, order := newCentOrder("Birch Packaging")
		for _, piece := range []string{"0.7", "0.1"} {
			_, err := e.payments.Record(ctx, appbilling.RecordPaymentRequest{
				OrderID: &order.ID,
				Amount:  amount(piece),
			})
			require.NoError(t, err)
		}

		invoice, err := e.invoices.Generate(ctx, appbilling.GenerateInvoiceRequest{
			CustomerID: customer.ID,
			OrderIDs:   []uuid.UUID{order.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, "0.80", invoice.FinalAmount)
		assert.True(t, invoice.PaymentSummary.IsFullyPaid)
		assert.Equal(t, "PAID", invoice.Status)
	})
}

type recordingRenderer struct {
	doc appbilling.InvoiceDocument
}

func (r *recordingRenderer) Render(_ context.Context, doc appbilling.InvoiceDocument) ([]byte, error) {
	r.doc = doc
	return []byte("%PDF-1.4 " + doc.Invoice.InvoiceNumber), nil
}

type memoryStore struct {
	objects map[string][]byte
}

func (s *memoryStore) Put(_ context.Context, key, _ string, body []byte) (string, error) {
	s.objects[key] = body
	return "mem://" + key, nil
}
