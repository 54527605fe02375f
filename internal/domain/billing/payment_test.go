package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/pressworks/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPaymentParams() PaymentParams {
	orderID := uuid.New()
	return PaymentParams{
		OrderID:     &orderID,
		CustomerID:  uuid.New(),
		PaymentType: PaymentTypeAdvance,
		Amount:      d("100"),
		PaymentDate: time.Now(),
	}
}

func TestNewPayment(t *testing.T) {
	p, err := NewPayment(validPaymentParams())
	require.NoError(t, err)
	assert.Equal(t, DefaultPaymentMethod, p.PaymentMethod)
	assert.True(t, p.IsAdvance())

	params := validPaymentParams()
	params.OrderID = nil
	_, err = NewPayment(params)
	assert.True(t, errors.Is(err, shared.ErrMissingTarget))

	params = validPaymentParams()
	params.Amount = d("-0.01")
	_, err = NewPayment(params)
	assert.True(t, shared.IsDomainError(err, shared.CodeValidation))

	params = validPaymentParams()
	params.PaymentType = "GIFT"
	_, err = NewPayment(params)
	assert.True(t, shared.IsDomainError(err, shared.CodeValidation))

	params = validPaymentParams()
	params.CustomerID = uuid.Nil
	_, err = NewPayment(params)
	assert.Error(t, err)

	params = validPaymentParams()
	params.Amount = decimal.Zero
	_, err = NewPayment(params)
	assert.NoError(t, err, "zero amount is allowed")
}

func TestPayment_UpdateKeepsStateOnError(t *testing.T) {
	p, err := NewPayment(validPaymentParams())
	require.NoError(t, err)

	bad := validPaymentParams()
	bad.Amount = d("-5")
	require.Error(t, p.Update(bad))
	assert.Equal(t, "100", p.Amount.String())

	good := validPaymentParams()
	good.PaymentType = PaymentTypeFinal
	good.PaymentMethod = "UPI"
	require.NoError(t, p.Update(good))
	assert.Equal(t, PaymentTypeFinal, p.PaymentType)
	assert.Equal(t, "UPI", p.PaymentMethod)
}

func TestParsePaymentType(t *testing.T) {
	pt, err := ParsePaymentType("refund")
	require.NoError(t, err)
	assert.Equal(t, PaymentTypeRefund, pt)
	_, err = ParsePaymentType("credit")
	assert.Error(t, err)
}

func payment(typ PaymentType, amount string) Payment {
	return Payment{PaymentType: typ, Amount: d(amount)}
}

func TestSummarizeInvoicePayments(t *testing.T) {
	inv := newTestInvoice(t, "1800", "10")

	s := SummarizeInvoicePayments(inv, []Payment{payment(PaymentTypeAdvance, "300"), payment(PaymentTypePartial, "680")})
	assert.Equal(t, "980", s.TotalPaid.String())
	assert.Equal(t, "1000", s.RemainingBalance.String())
	assert.False(t, s.IsFullyPaid)

	s = SummarizeInvoicePayments(inv, []Payment{payment(PaymentTypeFinal, "1980")})
	assert.True(t, s.RemainingBalance.IsZero())
	assert.True(t, s.IsFullyPaid)

	s = SummarizeInvoicePayments(inv, nil)
	assert.True(t, s.TotalPaid.IsZero())
	assert.Equal(t, "1980", s.RemainingBalance.String())
}

func TestSummarizeOrderPayments(t *testing.T) {
	totals := trade.OrderTotals{
		ProductAmount:   d("1000"),
		PlateCharge:     d("200"),
		AdvanceReceived: d("300"),
	}

	t.Run("advance on order without payment rows", func(t *testing.T) {
		s := SummarizeOrderPayments(totals, nil)
		assert.Equal(t, "300", s.TotalPaid.String())
		assert.Equal(t, "900", s.RemainingBalance.String())
	})

	t.Run("advance recorded in both places counts once", func(t *testing.T) {
		s := SummarizeOrderPayments(totals, []Payment{payment(PaymentTypeAdvance, "300"), payment(PaymentTypePartial, "100")})
		assert.Equal(t, "400", s.TotalPaid.String())
		assert.Equal(t, "800", s.RemainingBalance.String())
	})

	t.Run("fully paid", func(t *testing.T) {
		s := SummarizeOrderPayments(totals, []Payment{payment(PaymentTypeFinal, "900")})
		assert.True(t, s.IsFullyPaid)
	})
}

func TestBuildStatementSummary(t *testing.T) {
	inv := newTestInvoice(t, "1800", "10")
	orderID := uuid.New()
	inv.AddItem(NewInvoiceItem(&orderID, "12x18 - 2024-04-02", d("100"), d("10")))
	inv.AddItem(NewInvoiceItem(&orderID, "Advance Payment - 2024-04-02", d("1"), d("-300")))

	t.Run("advance only", func(t *testing.T) {
		s := BuildStatementSummary(inv, []Payment{payment(PaymentTypeAdvance, "300")})
		assert.Equal(t, "1800", s.Subtotal.String())
		assert.Equal(t, "300", s.AdvancePaid.String())
		assert.True(t, s.ShowAdvance)
		assert.False(t, s.ShowAdditional)
		assert.Equal(t, "1500", s.TotalPayable.String())
		assert.Equal(t, "1980", s.FinalAmount.String(), "final amount keeps tax")
	})

	t.Run("additional payments", func(t *testing.T) {
		s := BuildStatementSummary(inv, []Payment{payment(PaymentTypePartial, "500")})
		assert.True(t, s.ShowAdditional)
		assert.Equal(t, "1000", s.TotalPayable.String())
	})

	t.Run("additional equal to advance is hidden", func(t *testing.T) {
		s := BuildStatementSummary(inv, []Payment{payment(PaymentTypePartial, "300")})
		assert.False(t, s.ShowAdditional)
		assert.Equal(t, "1200", s.TotalPayable.String())
	})

	t.Run("payable never negative", func(t *testing.T) {
		s := BuildStatementSummary(inv, []Payment{payment(PaymentTypeFinal, "5000")})
		assert.True(t, s.TotalPayable.IsZero())
	})
}
