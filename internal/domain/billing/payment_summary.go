package billing

import (
	"github.com/pressworks/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// PaymentSummary is the read-time view of how much has been paid. It is
// never persisted.
type PaymentSummary struct {
	TotalPaid        decimal.Decimal
	RemainingBalance decimal.Decimal
	IsFullyPaid      bool
}

// SumPayments adds up payment amounts
func SumPayments(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// SummarizeInvoicePayments compares the invoice's final amount with the
// payments linked to it
func SummarizeInvoicePayments(inv *Invoice, payments []Payment) PaymentSummary {
	return SummarizeInvoicePaid(inv, SumPayments(payments))
}

// SummarizeInvoicePaid compares the invoice's final amount with an already
// summed payment total
func SummarizeInvoicePaid(inv *Invoice, paid decimal.Decimal) PaymentSummary {
	remaining := inv.FinalAmount.Sub(paid)
	return PaymentSummary{
		TotalPaid:        paid,
		RemainingBalance: remaining,
		IsFullyPaid:      !remaining.IsPositive(),
	}
}

// SummarizeOrderPayments compares the order's gross value with what has
// been paid against it. The advance on the order and ADVANCE payments
// usually record the same money, so only the larger of the two counts.
func SummarizeOrderPayments(totals trade.OrderTotals, payments []Payment) PaymentSummary {
	advancePayments := decimal.Zero
	otherPayments := decimal.Zero
	for _, p := range payments {
		if p.IsAdvance() {
			advancePayments = advancePayments.Add(p.Amount)
		} else {
			otherPayments = otherPayments.Add(p.Amount)
		}
	}

	paid := decimal.Max(totals.AdvanceReceived, advancePayments).Add(otherPayments)
	remaining := totals.Gross().Sub(paid)
	return PaymentSummary{
		TotalPaid:        paid,
		RemainingBalance: remaining,
		IsFullyPaid:      !remaining.IsPositive(),
	}
}

// StatementSummary holds the figures printed at the foot of an invoice
// document. TotalPayable is computed from TotalAmount, not FinalAmount, so it
// ignores tax; both figures are kept.
type StatementSummary struct {
	Subtotal           decimal.Decimal
	AdvancePaid        decimal.Decimal
	ShowAdvance        bool
	AdditionalPayments decimal.Decimal
	ShowAdditional     bool
	TaxPercent         decimal.Decimal
	TaxAmount          decimal.Decimal
	FinalAmount        decimal.Decimal
	TotalPayable       decimal.Decimal
}

// BuildStatementSummary derives the document summary from the invoice items
// and the payments linked to the invoice
func BuildStatementSummary(inv *Invoice, payments []Payment) StatementSummary {
	advance := decimal.Zero
	for _, item := range inv.Items {
		if item.IsAdvance() {
			advance = advance.Add(item.TotalPrice.Abs())
		}
	}

	additional := decimal.Zero
	for _, p := range payments {
		if !p.IsAdvance() {
			additional = additional.Add(p.Amount)
		}
	}

	payable := inv.TotalAmount.Sub(advance.Add(additional))
	if payable.IsNegative() {
		payable = decimal.Zero
	}

	return StatementSummary{
		Subtotal:           inv.TotalAmount,
		AdvancePaid:        advance,
		ShowAdvance:        advance.IsPositive(),
		AdditionalPayments: additional,
		ShowAdditional:     additional.IsPositive() && !additional.Equal(advance),
		TaxPercent:         inv.TaxPercent,
		TaxAmount:          inv.TaxAmount,
		FinalAmount:        inv.FinalAmount,
		TotalPayable:       payable,
	}
}
