package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceFilter narrows invoice listings
type InvoiceFilter struct {
	shared.Filter
	CustomerID *uuid.UUID
	Status     *InvoiceStatus
}

// InvoiceRepository defines the interface for invoice persistence.
// Invoices are loaded with their items and with amounts recomputed.
type InvoiceRepository interface {
	// FindByID finds an invoice by ID, archived rows included
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindAll lists invoices matching the filter
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)

	// Create inserts an invoice and its items. A duplicate invoice number
	// yields shared.ErrConflict.
	Create(ctx context.Context, invoice *Invoice) error

	// Save updates the invoice header (status, amounts, archive flag)
	Save(ctx context.Context, invoice *Invoice) error

	// ListInvoiceNumbers returns every invoice number ever issued, archived
	// invoices included
	ListInvoiceNumbers(ctx context.Context) ([]string, error)
}

// PaymentFilter narrows payment listings
type PaymentFilter struct {
	shared.Filter
	InvoiceID  *uuid.UUID
	OrderID    *uuid.UUID
	CustomerID *uuid.UUID
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindAll lists payments matching the filter, newest payment date first
	FindAll(ctx context.Context, filter PaymentFilter) ([]Payment, error)

	// Count counts payments matching the filter
	Count(ctx context.Context, filter PaymentFilter) (int64, error)

	// FindByInvoiceID lists all payments linked to an invoice
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)

	// FindByOrderIDs lists all payments linked to any of the orders
	FindByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]Payment, error)

	// SumByInvoiceID sums the amounts of all payments linked to an invoice
	SumByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error)

	// Create inserts a payment
	Create(ctx context.Context, payment *Payment) error

	// Save updates a payment
	Save(ctx context.Context, payment *Payment) error

	// Delete removes a payment permanently
	Delete(ctx context.Context, id uuid.UUID) error

	// AttachUnlinkedToInvoice links payments of the given orders that have
	// no invoice to invoiceID
	AttachUnlinkedToInvoice(ctx context.Context, orderIDs []uuid.UUID, invoiceID uuid.UUID) (int64, error)

	// UnlinkInvoice clears invoice_id on every payment linked to the invoice
	UnlinkInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error)
}
