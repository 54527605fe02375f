package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the production status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// AllOrderStatuses lists every valid order status
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusInProgress,
		OrderStatusCompleted,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// OrderLineItem is one product size and weight on an order.
// RatePerKg is captured from the product size when the line is created and
// never recomputed. It is only invalid for rows written before the column
// existed; totals fall back to the live rate for those.
type OrderLineItem struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	ProductSizeID uuid.UUID
	Quantity      decimal.Decimal
	RatePerKg     decimal.NullDecimal
	CreatedAt     time.Time
}

// NewOrderLineItem creates a line item and snapshots the product size's
// current rate onto it.
func NewOrderLineItem(orderID uuid.UUID, size *catalog.ProductSize, quantity decimal.Decimal) (*OrderLineItem, error) {
	if size == nil || size.IsArchived {
		return nil, shared.NewInvalidReferenceError("product size")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewValidationError("quantity must be greater than zero")
	}
	return &OrderLineItem{
		ID:            uuid.New(),
		OrderID:       orderID,
		ProductSizeID: size.ID,
		Quantity:      quantity,
		RatePerKg:     decimal.NewNullDecimal(size.RatePerKg),
		CreatedAt:     time.Now(),
	}, nil
}

// Rate returns the stored rate, or live when no rate was stored
func (l OrderLineItem) Rate(live decimal.Decimal) decimal.Decimal {
	if l.RatePerKg.Valid {
		return l.RatePerKg.Decimal
	}
	return live
}

// Order is a customer's manufacturing request
type Order struct {
	shared.BaseEntity
	shared.Archivable
	CustomerID      uuid.UUID
	OrderDate       time.Time
	PlateTypeID     *uuid.UUID
	AdvanceReceived decimal.Decimal
	Status          OrderStatus
	InvoiceID       *uuid.UUID
	Notes           string
	Items           []OrderLineItem
}

// NewOrder creates a new order in PENDING status with no line items
func NewOrder(customerID uuid.UUID, orderDate time.Time, plateTypeID *uuid.UUID, advance decimal.Decimal, notes string) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer_id is required")
	}
	if err := validateAdvance(advance); err != nil {
		return nil, err
	}
	return &Order{
		BaseEntity:      shared.NewBaseEntity(),
		CustomerID:      customerID,
		OrderDate:       orderDate,
		PlateTypeID:     plateTypeID,
		AdvanceReceived: advance,
		Status:          OrderStatusPending,
		Notes:           notes,
		Items:           make([]OrderLineItem, 0),
	}, nil
}

// AddItem appends a line item priced at the product size's current rate
func (o *Order) AddItem(size *catalog.ProductSize, quantity decimal.Decimal) (*OrderLineItem, error) {
	item, err := NewOrderLineItem(o.ID, size, quantity)
	if err != nil {
		return nil, err
	}
	o.Items = append(o.Items, *item)
	o.Touch()
	return item, nil
}

// ClearItems drops every line item; callers re-add them to replace the set
func (o *Order) ClearItems() {
	o.Items = make([]OrderLineItem, 0)
	o.Touch()
}

// UpdateDetails changes the order header fields
func (o *Order) UpdateDetails(orderDate time.Time, plateTypeID *uuid.UUID, advance decimal.Decimal, notes string) error {
	if err := validateAdvance(advance); err != nil {
		return err
	}
	o.OrderDate = orderDate
	o.PlateTypeID = plateTypeID
	o.AdvanceReceived = advance
	o.Notes = notes
	o.Touch()
	return nil
}

// SetStatus changes the production status
func (o *Order) SetStatus(status OrderStatus) error {
	if !status.IsValid() {
		allowed := make([]string, 0, 5)
		for _, s := range AllOrderStatuses() {
			allowed = append(allowed, s.String())
		}
		return shared.NewInvalidStatusError(string(status), allowed...)
	}
	o.Status = status
	o.Touch()
	return nil
}

// IsInvoiced reports whether the order is linked to an invoice
func (o *Order) IsInvoiced() bool {
	return o.InvoiceID != nil
}

// EligibleForInvoice reports whether the order can be billed to customerID
func (o *Order) EligibleForInvoice(customerID uuid.UUID) bool {
	return o.CustomerID == customerID && !o.IsInvoiced() && !o.IsArchived
}

// ProductSizeIDs returns the product sizes referenced by the line items
func (o *Order) ProductSizeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ProductSizeID)
	}
	return ids
}

func validateAdvance(advance decimal.Decimal) error {
	if advance.IsNegative() {
		return shared.NewValidationError("advance_received cannot be negative")
	}
	return nil
}
