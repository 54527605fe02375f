package trade

import (
	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// OrderTotals is the derived money view of an order
type OrderTotals struct {
	ProductAmount   decimal.Decimal
	PlateCharge     decimal.Decimal
	AdvanceReceived decimal.Decimal
	// TotalReceivable may be negative when the advance exceeds the order value
	TotalReceivable decimal.Decimal
}

// Gross returns the order value before the advance is deducted
func (t OrderTotals) Gross() decimal.Decimal {
	return t.ProductAmount.Add(t.PlateCharge)
}

// CalculateOrderTotals derives an order's totals from its stored line item
// rates and the plate type's charge. liveRates is consulted only for line
// items without a stored rate; it may be nil. plate may be nil when the
// order has no plate type.
func CalculateOrderTotals(order *Order, plate *catalog.PlateType, liveRates map[uuid.UUID]decimal.Decimal) OrderTotals {
	productAmount := decimal.Zero
	for _, item := range order.Items {
		productAmount = productAmount.Add(item.Quantity.Mul(item.Rate(liveRates[item.ProductSizeID])))
	}

	plateCharge := decimal.Zero
	if plate != nil {
		plateCharge = plate.Charge
	}

	return OrderTotals{
		ProductAmount:   productAmount,
		PlateCharge:     plateCharge,
		AdvanceReceived: order.AdvanceReceived,
		TotalReceivable: productAmount.Add(plateCharge).Sub(order.AdvanceReceived),
	}
}
