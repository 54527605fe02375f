package trade_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	apptrade "github.com/pressworks/backend/internal/application/trade"
	"github.com/pressworks/backend/internal/domain/billing"
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/pressworks/backend/internal/domain/partner"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/pressworks/backend/internal/infrastructure/config"
	"github.com/pressworks/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	svc      *apptrade.OrderService
	customer *partner.Customer
	size     *catalog.ProductSize
	plate    *catalog.PlateType
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	database, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(ctx))
	t.Cleanup(func() { _ = database.Close() })
	db := database.DB

	customer, err := partner.NewCustomer("Riverside Dairy", nil)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCustomerRepository(db).Save(ctx, customer))
	size, err := catalog.NewProductSize("40 micron", decimal.NewFromInt(50))
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormProductSizeRepository(db).Save(ctx, size))
	plate, err := catalog.NewPlateType("Gravure", decimal.NewFromInt(200))
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormPlateTypeRepository(db).Save(ctx, plate))

	svc := apptrade.NewOrderService(
		persistence.NewGormTransactionScope(db),
		persistence.NewBillingRepositories(db),
		nil,
	)
	return &fixture{db: db, svc: svc, customer: customer, size: size, plate: plate}
}

func qty(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func str(s string) *string {
	return &s
}

func (f *fixture) createOrder(t *testing.T, kg string) *apptrade.OrderResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), apptrade.CreateOrderRequest{
		CustomerID:      f.customer.ID,
		OrderDate:       str("2024-01-10"),
		PlateTypeID:     &f.plate.ID,
		AdvanceReceived: qty("300"),
		Items:           []apptrade.OrderItemRequest{{ProductSizeID: f.size.ID, Quantity: qty(kg)}},
	})
	require.NoError(t, err)
	return resp
}

func TestOrderService_Create_SnapshotsRate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created := f.createOrder(t, "20")

	assert.Equal(t, "2024-01-10", created.OrderDate)
	assert.Equal(t, "PENDING", created.Status)
	assert.Equal(t, "Gravure", created.PlateTypeName)
	require.Len(t, created.Items, 1)
	require.NotNil(t, created.Items[0].RatePerKg)
	assert.Equal(t, "50.00", *created.Items[0].RatePerKg)
	assert.Equal(t, "40 micron", created.Items[0].ProductSizeLabel)
	assert.Equal(t, "1000.00", created.Totals.ProductAmount)
	assert.Equal(t, "200.00", created.Totals.PlateCharge)
	assert.Equal(t, "900.00", created.Totals.TotalReceivable)

	// a later rate change does not reach the existing line
	require.NoError(t, f.size.Update(f.size.Label, decimal.NewFromInt(80)))
	require.NoError(t, persistence.NewGormProductSizeRepository(f.db).Save(ctx, f.size))

	reloaded, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", reloaded.Totals.ProductAmount)
}

func TestOrderService_Create_DefaultsOrderDateToToday(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(context.Background(), apptrade.CreateOrderRequest{
		CustomerID: f.customer.ID,
		Items:      []apptrade.OrderItemRequest{{ProductSizeID: f.size.ID, Quantity: qty("1.5")}},
	})

	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), resp.OrderDate)
	assert.Equal(t, "75.00", resp.Totals.TotalReceivable)
}

func TestOrderService_Create_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *fixture, req *apptrade.CreateOrderRequest)
		code   string
	}{
		{
			name:   "no items",
			mutate: func(_ *fixture, req *apptrade.CreateOrderRequest) { req.Items = nil },
			code:   shared.CodeValidation,
		},
		{
			name:   "zero quantity",
			mutate: func(_ *fixture, req *apptrade.CreateOrderRequest) { req.Items[0].Quantity = qty("0") },
			code:   shared.CodeValidation,
		},
		{
			name:   "negative advance",
			mutate: func(_ *fixture, req *apptrade.CreateOrderRequest) { req.AdvanceReceived = qty("-1") },
			code:   shared.CodeValidation,
		},
		{
			name:   "unknown customer",
			mutate: func(_ *fixture, req *apptrade.CreateOrderRequest) { req.CustomerID = uuid.New() },
			code:   shared.CodeInvalidReference,
		},
		{
			name:   "unknown product size",
			mutate: func(_ *fixture, req *apptrade.CreateOrderRequest) { req.Items[0].ProductSizeID = uuid.New() },
			code:   shared.CodeInvalidReference,
		},
		{
			name: "archived product size",
			mutate: func(f *fixture, _ *apptrade.CreateOrderRequest) {
				f.size.Archive()
				_ = persistence.NewGormProductSizeRepository(f.db).Save(context.Background(), f.size)
			},
			code: shared.CodeInvalidReference,
		},
		{
			name: "archived plate type",
			mutate: func(f *fixture, req *apptrade.CreateOrderRequest) {
				f.plate.Archive()
				_ = persistence.NewGormPlateTypeRepository(f.db).Save(context.Background(), f.plate)
				req.PlateTypeID = &f.plate.ID
			},
			code: shared.CodeInvalidReference,
		},
		{
			name:   "unknown status",
			mutate: func(_ *fixture, req *apptrade.CreateOrderRequest) { req.Status = "SHIPPED" },
			code:   shared.CodeInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			req := apptrade.CreateOrderRequest{
				CustomerID: f.customer.ID,
				Items:      []apptrade.OrderItemRequest{{ProductSizeID: f.size.ID, Quantity: qty("10")}},
			}
			tt.mutate(f, &req)

			_, err := f.svc.Create(ctx, req)

			assert.True(t, shared.IsDomainError(err, tt.code), "got %v", err)
			var count int64
			require.NoError(t, f.db.Table("orders").Count(&count).Error)
			assert.Zero(t, count, "nothing is written when the order is rejected")
		})
	}
}

func TestOrderService_Update_ReplacesItemsAtCurrentRate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.createOrder(t, "20")

	require.NoError(t, f.size.Update(f.size.Label, decimal.NewFromInt(60)))
	require.NoError(t, persistence.NewGormProductSizeRepository(f.db).Save(ctx, f.size))
	other, err := catalog.NewProductSize("60 micron", decimal.NewFromInt(90))
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormProductSizeRepository(f.db).Save(ctx, other))

	updated, err := f.svc.Update(ctx, created.ID, apptrade.UpdateOrderRequest{
		Status: "in_progress",
		Notes:  "rush job",
		Items: []apptrade.OrderItemRequest{
			{ProductSizeID: f.size.ID, Quantity: qty("5")},
			{ProductSizeID: other.ID, Quantity: qty("2")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", updated.OrderDate, "an omitted date is kept")
	assert.Nil(t, updated.PlateTypeID, "an omitted plate type is cleared")
	assert.Equal(t, "0.00", updated.AdvanceReceived)
	assert.Equal(t, "IN_PROGRESS", updated.Status)
	assert.Equal(t, "rush job", updated.Notes)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, "480.00", updated.Totals.ProductAmount)
	assert.Equal(t, "480.00", updated.Totals.TotalReceivable)
}

func TestOrderService_Update_RollsBackOnBadReference(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.createOrder(t, "20")

	_, err := f.svc.Update(ctx, created.ID, apptrade.UpdateOrderRequest{
		Items: []apptrade.OrderItemRequest{
			{ProductSizeID: f.size.ID, Quantity: qty("5")},
			{ProductSizeID: uuid.New(), Quantity: qty("2")},
		},
	})
	require.True(t, shared.IsDomainError(err, shared.CodeInvalidReference))

	unchanged, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, unchanged.Items, 1)
	assert.Equal(t, "900.00", unchanged.Totals.TotalReceivable)
}

func TestOrderService_Get_PaymentSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.createOrder(t, "20")

	payments := persistence.NewGormPaymentRepository(f.db)
	for _, p := range []struct {
		kind   billing.PaymentType
		amount int64
	}{
		{billing.PaymentTypeAdvance, 200},
		{billing.PaymentTypePartial, 400},
	} {
		payment, err := billing.NewPayment(billing.PaymentParams{
			OrderID:     &created.ID,
			CustomerID:  f.customer.ID,
			PaymentType: p.kind,
			Amount:      decimal.NewFromInt(p.amount),
			PaymentDate: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.NoError(t, payments.Create(ctx, payment))
	}

	resp, err := f.svc.Get(ctx, created.ID)

	require.NoError(t, err)
	require.NotNil(t, resp.PaymentSummary)
	// the 300 advance on the order outweighs the 200 ADVANCE payment
	assert.Equal(t, "700.00", resp.PaymentSummary.TotalPaid)
	assert.Equal(t, "500.00", resp.PaymentSummary.RemainingBalance)
	assert.False(t, resp.PaymentSummary.IsFullyPaid)
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := f.createOrder(t, "10")
	f.createOrder(t, "5")
	invoiceID := uuid.New()
	require.NoError(t, f.db.Table("orders").Where("id = ?", first.ID).Update("invoice_id", invoiceID).Error)

	all, err := f.svc.List(ctx, apptrade.OrderListFilter{CustomerID: f.customer.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
	for _, item := range all.Items {
		assert.NotNil(t, item.PaymentSummary)
	}

	open, err := f.svc.List(ctx, apptrade.OrderListFilter{UninvoicedOnly: true})
	require.NoError(t, err)
	require.Len(t, open.Items, 1)
	assert.NotEqual(t, first.ID, open.Items[0].ID)

	_, err = f.svc.List(ctx, apptrade.OrderListFilter{Status: "LOST"})
	assert.True(t, shared.IsDomainError(err, shared.CodeInvalidStatus))
}

func TestOrderService_UpdateStatusAndArchive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.createOrder(t, "10")

	_, err := f.svc.UpdateStatus(ctx, created.ID, "teleported")
	assert.True(t, shared.IsDomainError(err, shared.CodeInvalidStatus))

	delivered, err := f.svc.UpdateStatus(ctx, created.ID, "DELIVERED")
	require.NoError(t, err)
	assert.Equal(t, "DELIVERED", delivered.Status)

	require.NoError(t, f.svc.Archive(ctx, created.ID))
	_, err = f.svc.Get(ctx, created.ID)
	assert.True(t, shared.IsDomainError(err, shared.CodeNotFound))
	assert.True(t, shared.IsDomainError(f.svc.Archive(ctx, created.ID), shared.CodeNotFound))
}
