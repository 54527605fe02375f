package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/billing"
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/pressworks/backend/internal/domain/partner"
	"github.com/pressworks/backend/internal/domain/trade"
	"github.com/pressworks/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(context.Background()))
	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(name, map[string]any{partner.MetadataEmail: "billing@example.com"})
	require.NoError(t, err)
	require.NoError(t, NewGormCustomerRepository(db).Save(context.Background(), c))
	return c
}

func seedProductSize(t *testing.T, db *gorm.DB, label, rate string) *catalog.ProductSize {
	t.Helper()
	s, err := catalog.NewProductSize(label, dec(rate))
	require.NoError(t, err)
	require.NoError(t, NewGormProductSizeRepository(db).Save(context.Background(), s))
	return s
}

func seedPlateType(t *testing.T, db *gorm.DB, name, charge string) *catalog.PlateType {
	t.Helper()
	p, err := catalog.NewPlateType(name, dec(charge))
	require.NoError(t, err)
	require.NoError(t, NewGormPlateTypeRepository(db).Save(context.Background(), p))
	return p
}

func seedOrder(t *testing.T, db *gorm.DB, customerID uuid.UUID, date string, size *catalog.ProductSize, qty string) *trade.Order {
	t.Helper()
	o, err := trade.NewOrder(customerID, day(date), nil, decimal.Zero, "")
	require.NoError(t, err)
	_, err = o.AddItem(size, dec(qty))
	require.NoError(t, err)
	require.NoError(t, NewGormOrderRepository(db).Save(context.Background(), o))
	return o
}

func seedInvoice(t *testing.T, db *gorm.DB, customerID uuid.UUID, number, total string) *billing.Invoice {
	t.Helper()
	inv, err := billing.NewInvoice(billing.InvoiceParams{
		CustomerID:         customerID,
		InvoiceNumber:      number,
		InvoiceDate:        day("2024-03-01"),
		BillingPeriodStart: day("2024-02-01"),
		BillingPeriodEnd:   day("2024-02-29"),
		TotalAmount:        dec(total),
		TaxPercent:         decimal.Zero,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormInvoiceRepository(db).Create(context.Background(), inv))
	return inv
}
