package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/pressworks/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestInvoice(t *testing.T, total, taxPercent string) *Invoice {
	t.Helper()
	now := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	inv, err := NewInvoice(InvoiceParams{
		CustomerID:         uuid.New(),
		InvoiceNumber:      "00000001",
		InvoiceDate:        now,
		BillingPeriodStart: now.AddDate(0, -1, 0),
		BillingPeriodEnd:   now,
		TotalAmount:        d(total),
		TaxPercent:         d(taxPercent),
	})
	require.NoError(t, err)
	return inv
}

func TestNewInvoice_DerivesAmounts(t *testing.T) {
	inv := newTestInvoice(t, "1800", "10")
	assert.Equal(t, InvoiceStatusPending, inv.Status)
	assert.Equal(t, "180", inv.TaxAmount.String())
	assert.Equal(t, "1980", inv.FinalAmount.String())
}

func TestNewInvoice_Validation(t *testing.T) {
	now := time.Now()
	base := InvoiceParams{
		CustomerID:         uuid.New(),
		InvoiceNumber:      "00000001",
		InvoiceDate:        now,
		BillingPeriodStart: now,
		BillingPeriodEnd:   now,
	}

	p := base
	p.CustomerID = uuid.Nil
	_, err := NewInvoice(p)
	assert.True(t, shared.IsDomainError(err, shared.CodeValidation))

	p = base
	p.InvoiceNumber = "INV-1"
	_, err = NewInvoice(p)
	assert.Error(t, err)

	p = base
	p.TaxPercent = d("-1")
	_, err = NewInvoice(p)
	assert.Error(t, err)

	p = base
	p.BillingPeriodStart = now.AddDate(0, 0, 1)
	_, err = NewInvoice(p)
	assert.Error(t, err)
}

func TestInvoice_RecomputeAmountsFixesStaleValues(t *testing.T) {
	inv := newTestInvoice(t, "250.50", "18")
	inv.TaxAmount = d("1")
	inv.FinalAmount = d("999999")

	inv.RecomputeAmounts()

	expectedTax := d("250.50").Mul(d("18")).Div(d("100"))
	assert.True(t, inv.TaxAmount.Equal(expectedTax))
	assert.True(t, inv.FinalAmount.Equal(d("250.50").Add(expectedTax)))
}

func TestProjectInvoiceStatus(t *testing.T) {
	final := d("100")
	tests := []struct {
		name    string
		current InvoiceStatus
		paid    string
		want    InvoiceStatus
	}{
		{"pending becomes paid at exact amount", InvoiceStatusPending, "100", InvoiceStatusPaid},
		{"pending becomes paid when overpaid", InvoiceStatusPending, "150", InvoiceStatusPaid},
		{"pending stays pending", InvoiceStatusPending, "99.99", InvoiceStatusPending},
		{"paid reverts when insufficient", InvoiceStatusPaid, "10", InvoiceStatusPending},
		{"paid stays paid", InvoiceStatusPaid, "100", InvoiceStatusPaid},
		{"cancelled is sticky when paid", InvoiceStatusCancelled, "500", InvoiceStatusCancelled},
		{"cancelled is sticky when unpaid", InvoiceStatusCancelled, "0", InvoiceStatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectInvoiceStatus(tt.current, d(tt.paid), final))
		})
	}
}

func TestInvoice_ApplyPaymentTotal(t *testing.T) {
	inv := newTestInvoice(t, "100", "0")
	assert.True(t, inv.ApplyPaymentTotal(d("100")))
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	assert.False(t, inv.ApplyPaymentTotal(d("120")))
	assert.True(t, inv.ApplyPaymentTotal(d("20")))
	assert.Equal(t, InvoiceStatusPending, inv.Status)
}

func TestInvoice_SetStatus(t *testing.T) {
	inv := newTestInvoice(t, "100", "0")
	require.NoError(t, inv.SetStatus(InvoiceStatusCancelled))
	assert.Equal(t, InvoiceStatusCancelled, inv.Status)

	err := inv.SetStatus("VOID")
	assert.True(t, shared.IsDomainError(err, shared.CodeInvalidStatus))
	assert.Equal(t, InvoiceStatusCancelled, inv.Status)
}

func TestParseInvoiceStatus(t *testing.T) {
	s, err := ParseInvoiceStatus(" paid ")
	require.NoError(t, err)
	assert.Equal(t, InvoiceStatusPaid, s)

	_, err = ParseInvoiceStatus("ARCHIVED")
	assert.True(t, shared.IsDomainError(err, shared.CodeInvalidStatus))
}

func TestBuildOrderItems(t *testing.T) {
	size, err := catalog.NewProductSize("12x18", d("10"))
	require.NoError(t, err)
	plate, err := catalog.NewPlateType("Copper", d("200"))
	require.NoError(t, err)

	order, err := trade.NewOrder(uuid.New(), time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC), &plate.ID, d("300"), "")
	require.NoError(t, err)
	_, err = order.AddItem(size, d("100"))
	require.NoError(t, err)

	items := BuildOrderItems(OrderItemsInput{
		Order:  order,
		Plate:  plate,
		Labels: map[uuid.UUID]string{size.ID: size.Label},
	})
	require.Len(t, items, 3)

	assert.Equal(t, "12x18 - 2024-04-02", items[0].Description)
	assert.Equal(t, "1000", items[0].TotalPrice.String())
	assert.Equal(t, order.ID, *items[0].OrderID)

	assert.Equal(t, "Plate Charge: Copper - 2024-04-02", items[1].Description)
	assert.Equal(t, "1", items[1].Quantity.String())
	assert.Equal(t, "200", items[1].UnitPrice.String())

	assert.True(t, items[2].IsAdvance())
	assert.Equal(t, "-300", items[2].UnitPrice.String())
	assert.Equal(t, "-300", items[2].TotalPrice.String())
}

func TestBuildOrderItems_NoPlateNoAdvance(t *testing.T) {
	size, err := catalog.NewProductSize("A4", d("5"))
	require.NoError(t, err)
	order, err := trade.NewOrder(uuid.New(), time.Now(), nil, decimal.Zero, "")
	require.NoError(t, err)
	_, err = order.AddItem(size, d("2"))
	require.NoError(t, err)

	items := BuildOrderItems(OrderItemsInput{Order: order})
	require.Len(t, items, 1)
	assert.False(t, items[0].IsAdvance())
	assert.Contains(t, items[0].Description, "Product - ")
}
