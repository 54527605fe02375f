package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/pressworks/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// AdvancePaymentMarker flags invoice items that deduct an order's advance
const AdvancePaymentMarker = "Advance Payment"

const itemDateLayout = "2006-01-02"

// InvoiceItem is one printed line of an invoice. UnitPrice and TotalPrice
// may be negative for advance deductions.
type InvoiceItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	OrderID     *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	CreatedAt   time.Time
}

// NewInvoiceItem creates an item with TotalPrice = Quantity × UnitPrice
func NewInvoiceItem(orderID *uuid.UUID, description string, quantity, unitPrice decimal.Decimal) InvoiceItem {
	return InvoiceItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  quantity.Mul(unitPrice),
		CreatedAt:   time.Now(),
	}
}

// IsAdvance reports whether the item is an advance deduction line
func (it InvoiceItem) IsAdvance() bool {
	return strings.Contains(it.Description, AdvancePaymentMarker)
}

// OrderItemsInput carries what BuildOrderItems needs about one order
type OrderItemsInput struct {
	Order *trade.Order
	// Plate is nil when the order has no plate type
	Plate *catalog.PlateType
	// Labels maps product size IDs to their labels
	Labels map[uuid.UUID]string
	// LiveRates is only read for line items without a stored rate
	LiveRates map[uuid.UUID]decimal.Decimal
}

// BuildOrderItems produces the invoice items for one order: one per line
// item, one for the plate charge and, when an advance was received, one
// negative advance line.
func BuildOrderItems(in OrderItemsInput) []InvoiceItem {
	order := in.Order
	orderID := order.ID
	date := order.OrderDate.Format(itemDateLayout)

	items := make([]InvoiceItem, 0, len(order.Items)+2)
	for _, line := range order.Items {
		label := in.Labels[line.ProductSizeID]
		if label == "" {
			label = "Product"
		}
		rate := line.Rate(in.LiveRates[line.ProductSizeID])
		items = append(items, NewInvoiceItem(&orderID, fmt.Sprintf("%s - %s", label, date), line.Quantity, rate))
	}

	if in.Plate != nil {
		items = append(items, NewInvoiceItem(&orderID,
			fmt.Sprintf("Plate Charge: %s - %s", in.Plate.Name, date),
			decimal.NewFromInt(1), in.Plate.Charge))
	}

	if order.AdvanceReceived.IsPositive() {
		items = append(items, NewInvoiceItem(&orderID,
			fmt.Sprintf("%s - %s", AdvancePaymentMarker, date),
			decimal.NewFromInt(1), order.AdvanceReceived.Neg()))
	}

	return items
}
