package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/shared"
)

// OrderFilter narrows order listings
type OrderFilter struct {
	shared.Filter
	CustomerID     *uuid.UUID
	Status         *OrderStatus
	InvoiceID      *uuid.UUID
	UninvoicedOnly bool
}

// OrderRepository defines the interface for order persistence.
// Orders are always loaded with their line items.
type OrderRepository interface {
	// FindByID finds an order by ID, archived rows included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDs finds the orders with the given IDs, archived rows included.
	// Missing IDs are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Order, error)

	// FindByInvoiceID finds the orders linked to an invoice, oldest order date first
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]Order, error)

	// FindAll lists orders matching the filter
	FindAll(ctx context.Context, filter OrderFilter) ([]Order, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter OrderFilter) (int64, error)

	// Save creates or updates an order. Its line items are replaced by the
	// ones on the aggregate.
	Save(ctx context.Context, order *Order) error

	// LinkInvoice sets invoice_id on an order that is not yet invoiced.
	// Returns shared.ErrConflict when the order was linked concurrently.
	LinkInvoice(ctx context.Context, orderID, invoiceID uuid.UUID) error

	// UnlinkInvoice clears invoice_id on every order linked to the invoice
	UnlinkInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error)
}
