package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentType classifies a payment
type PaymentType string

const (
	PaymentTypeAdvance PaymentType = "ADVANCE"
	PaymentTypePartial PaymentType = "PARTIAL"
	PaymentTypeFinal   PaymentType = "FINAL"
	PaymentTypeRefund  PaymentType = "REFUND"
)

// IsValid checks if the payment type is valid
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeAdvance, PaymentTypePartial, PaymentTypeFinal, PaymentTypeRefund:
		return true
	}
	return false
}

// String returns the string representation of PaymentType
func (t PaymentType) String() string {
	return string(t)
}

// ParsePaymentType validates a caller-supplied payment type
func ParsePaymentType(raw string) (PaymentType, error) {
	t := PaymentType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", shared.NewValidationError("invalid payment_type %q", raw)
	}
	return t, nil
}

// DefaultPaymentMethod is used when a payment is recorded without a method
const DefaultPaymentMethod = "CASH"

// Payment is money received against an order, an invoice, or both.
// Payments are hard-deleted.
type Payment struct {
	shared.BaseEntity
	InvoiceID       *uuid.UUID
	OrderID         *uuid.UUID
	CustomerID      uuid.UUID
	PaymentType     PaymentType
	Amount          decimal.Decimal
	PaymentDate     time.Time
	PaymentMethod   string
	ReferenceNumber string
	Notes           string
}

// PaymentParams holds the fields of a payment once its targets are resolved
type PaymentParams struct {
	InvoiceID       *uuid.UUID
	OrderID         *uuid.UUID
	CustomerID      uuid.UUID
	PaymentType     PaymentType
	Amount          decimal.Decimal
	PaymentDate     time.Time
	PaymentMethod   string
	ReferenceNumber string
	Notes           string
}

func (p PaymentParams) validate() error {
	if p.InvoiceID == nil && p.OrderID == nil {
		return shared.ErrMissingTarget
	}
	if p.CustomerID == uuid.Nil {
		return shared.NewValidationError("customer could not be resolved for payment")
	}
	if p.Amount.IsNegative() {
		return shared.NewValidationError("amount cannot be negative")
	}
	if !p.PaymentType.IsValid() {
		return shared.NewValidationError("invalid payment_type %q", p.PaymentType)
	}
	if p.PaymentDate.IsZero() {
		return shared.NewValidationError("payment_date is required")
	}
	return nil
}

// NewPayment creates a payment
func NewPayment(p PaymentParams) (*Payment, error) {
	if p.PaymentMethod == "" {
		p.PaymentMethod = DefaultPaymentMethod
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	payment := &Payment{BaseEntity: shared.NewBaseEntity()}
	payment.apply(p)
	return payment, nil
}

// Update replaces every field of the payment
func (pm *Payment) Update(p PaymentParams) error {
	if p.PaymentMethod == "" {
		p.PaymentMethod = DefaultPaymentMethod
	}
	if err := p.validate(); err != nil {
		return err
	}
	pm.apply(p)
	pm.Touch()
	return nil
}

func (pm *Payment) apply(p PaymentParams) {
	pm.InvoiceID = p.InvoiceID
	pm.OrderID = p.OrderID
	pm.CustomerID = p.CustomerID
	pm.PaymentType = p.PaymentType
	pm.Amount = p.Amount
	pm.PaymentDate = p.PaymentDate
	pm.PaymentMethod = p.PaymentMethod
	pm.ReferenceNumber = p.ReferenceNumber
	pm.Notes = p.Notes
}

// IsAdvance reports whether the payment is an advance
func (pm *Payment) IsAdvance() bool {
	return pm.PaymentType == PaymentTypeAdvance
}
