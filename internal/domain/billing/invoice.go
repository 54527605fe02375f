package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice.
// PENDING and PAID are a projection of payment sufficiency that the payment
// ledger overwrites after every payment change. CANCELLED is only ever set
// explicitly and the projection never leaves it.
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// AllInvoiceStatuses lists every valid invoice status
func AllInvoiceStatuses() []InvoiceStatus {
	return []InvoiceStatus{InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusCancelled}
}

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// ParseInvoiceStatus validates a caller-supplied status
func ParseInvoiceStatus(raw string) (InvoiceStatus, error) {
	status := InvoiceStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.IsValid() {
		allowed := make([]string, 0, 3)
		for _, st := range AllInvoiceStatuses() {
			allowed = append(allowed, st.String())
		}
		return "", shared.NewInvalidStatusError(raw, allowed...)
	}
	return status, nil
}

var hundred = decimal.NewFromInt(100)

// Invoice bills one customer for one or more orders
type Invoice struct {
	shared.BaseEntity
	shared.Archivable
	CustomerID         uuid.UUID
	InvoiceNumber      string
	InvoiceDate        time.Time
	BillingPeriodStart time.Time
	BillingPeriodEnd   time.Time
	PaymentDueDate     *time.Time
	// TotalAmount is the sum of order values before tax; advances are not deducted
	TotalAmount decimal.Decimal
	TaxPercent  decimal.Decimal
	TaxAmount   decimal.Decimal
	FinalAmount decimal.Decimal
	Status      InvoiceStatus
	Items       []InvoiceItem
}

// InvoiceParams holds the header fields of a new invoice
type InvoiceParams struct {
	CustomerID         uuid.UUID
	InvoiceNumber      string
	InvoiceDate        time.Time
	BillingPeriodStart time.Time
	BillingPeriodEnd   time.Time
	PaymentDueDate     *time.Time
	TotalAmount        decimal.Decimal
	TaxPercent         decimal.Decimal
}

// NewInvoice creates a PENDING invoice and derives its tax and final amounts
func NewInvoice(p InvoiceParams) (*Invoice, error) {
	if p.CustomerID == uuid.Nil {
		return nil, shared.NewValidationError("customer_id is required")
	}
	if !IsInvoiceNumber(p.InvoiceNumber) {
		return nil, shared.NewValidationError("invoice number must be %d digits", InvoiceNumberWidth)
	}
	if p.TaxPercent.IsNegative() {
		return nil, shared.NewValidationError("tax_percent cannot be negative")
	}
	if p.BillingPeriodEnd.Before(p.BillingPeriodStart) {
		return nil, shared.NewValidationError("billing_period_end cannot be before billing_period_start")
	}

	inv := &Invoice{
		BaseEntity:         shared.NewBaseEntity(),
		CustomerID:         p.CustomerID,
		InvoiceNumber:      p.InvoiceNumber,
		InvoiceDate:        p.InvoiceDate,
		BillingPeriodStart: p.BillingPeriodStart,
		BillingPeriodEnd:   p.BillingPeriodEnd,
		PaymentDueDate:     p.PaymentDueDate,
		TotalAmount:        p.TotalAmount,
		TaxPercent:         p.TaxPercent,
		Status:             InvoiceStatusPending,
		Items:              make([]InvoiceItem, 0),
	}
	inv.RecomputeAmounts()
	return inv, nil
}

// RecomputeAmounts derives TaxAmount and FinalAmount from TotalAmount and
// TaxPercent. Stored tax and final amounts are never trusted on their own.
func (i *Invoice) RecomputeAmounts() {
	i.TaxAmount = i.TotalAmount.Mul(i.TaxPercent).Div(hundred)
	i.FinalAmount = i.TotalAmount.Add(i.TaxAmount)
}

// AddItem appends an item to the invoice
func (i *Invoice) AddItem(item InvoiceItem) {
	item.InvoiceID = i.ID
	i.Items = append(i.Items, item)
}

// SetStatus sets the status explicitly
func (i *Invoice) SetStatus(status InvoiceStatus) error {
	if !status.IsValid() {
		return shared.NewInvalidStatusError(string(status),
			InvoiceStatusPending.String(), InvoiceStatusPaid.String(), InvoiceStatusCancelled.String())
	}
	i.Status = status
	i.Touch()
	return nil
}

// ApplyPaymentTotal re-derives PENDING/PAID from the total paid against the
// invoice and reports whether the status changed. Cancelled invoices are left
// alone.
func (i *Invoice) ApplyPaymentTotal(totalPaid decimal.Decimal) bool {
	next := ProjectInvoiceStatus(i.Status, totalPaid, i.FinalAmount)
	if next == i.Status {
		return false
	}
	i.Status = next
	i.Touch()
	return true
}

// ProjectInvoiceStatus returns the status an invoice should have given the
// sum of its payments
func ProjectInvoiceStatus(current InvoiceStatus, totalPaid, finalAmount decimal.Decimal) InvoiceStatus {
	if current == InvoiceStatusCancelled {
		return current
	}
	if totalPaid.GreaterThanOrEqual(finalAmount) {
		return InvoiceStatusPaid
	}
	if current == InvoiceStatusPaid {
		return InvoiceStatusPending
	}
	return current
}
