package trade

import (
	"time"

	"github.com/google/uuid"
	appshared "github.com/pressworks/backend/internal/application/shared"
	"github.com/pressworks/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one line of an order
type OrderItemRequest struct {
	ProductSizeID uuid.UUID        `json:"product_size_id" binding:"required"`
	Quantity      *decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateOrderRequest represents a request to create an order with its lines
type CreateOrderRequest struct {
	CustomerID      uuid.UUID          `json:"customer_id" binding:"required"`
	OrderDate       *string            `json:"order_date" binding:"omitempty,datetime=2006-01-02"`
	PlateTypeID     *uuid.UUID         `json:"plate_type_id"`
	AdvanceReceived *decimal.Decimal   `json:"advance_received"`
	Status          string             `json:"status"`
	Notes           string             `json:"notes" binding:"max=2000"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest replaces an order's header and every line item. An
// absent order_date keeps the current date; an absent plate_type_id or
// advance_received clears it.
type UpdateOrderRequest struct {
	OrderDate       *string            `json:"order_date" binding:"omitempty,datetime=2006-01-02"`
	PlateTypeID     *uuid.UUID         `json:"plate_type_id"`
	AdvanceReceived *decimal.Decimal   `json:"advance_received"`
	Status          string             `json:"status"`
	Notes           string             `json:"notes" binding:"max=2000"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest represents a production status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderListFilter holds the query parameters of the order listing
type OrderListFilter struct {
	appshared.Pagination
	CustomerID     string `form:"customer_id" binding:"omitempty,uuid"`
	Status         string `form:"status"`
	UninvoicedOnly bool   `form:"uninvoiced_only"`
}

// OrderLineItemResponse represents an order line
type OrderLineItemResponse struct {
	ID               uuid.UUID `json:"id"`
	ProductSizeID    uuid.UUID `json:"product_size_id"`
	ProductSizeLabel string    `json:"product_size_label,omitempty"`
	Quantity         string    `json:"quantity"`
	// RatePerKg is null for lines recorded before rates were captured
	RatePerKg *string `json:"rate_per_kg"`
	LineTotal string  `json:"line_total"`
}

// OrderTotalsResponse is the money view of an order
type OrderTotalsResponse struct {
	ProductAmount   string `json:"product_amount"`
	PlateCharge     string `json:"plate_charge"`
	AdvanceReceived string `json:"advance_received"`
	TotalReceivable string `json:"total_receivable"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID                         `json:"id"`
	CustomerID      uuid.UUID                         `json:"customer_id"`
	OrderDate       string                            `json:"order_date"`
	PlateTypeID     *uuid.UUID                        `json:"plate_type_id"`
	PlateTypeName   string                            `json:"plate_type_name,omitempty"`
	AdvanceReceived string                            `json:"advance_received"`
	Status          string                            `json:"status"`
	InvoiceID       *uuid.UUID                        `json:"invoice_id"`
	Notes           string                            `json:"notes,omitempty"`
	IsArchived      bool                              `json:"is_archived"`
	Items           []OrderLineItemResponse           `json:"items"`
	Totals          OrderTotalsResponse               `json:"totals"`
	PaymentSummary  *appshared.PaymentSummaryResponse `json:"payment_summary,omitempty"`
	CreatedAt       time.Time                         `json:"created_at"`
	UpdatedAt       time.Time                         `json:"updated_at"`
}

// ToOrderResponse converts an order with its pricing
func ToOrderResponse(order *trade.Order, pricing appshared.OrderPricing) OrderResponse {
	totals := pricing.Totals(order)
	resp := OrderResponse{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		OrderDate:       appshared.FormatDate(order.OrderDate),
		PlateTypeID:     order.PlateTypeID,
		AdvanceReceived: appshared.Money(order.AdvanceReceived),
		Status:          order.Status.String(),
		InvoiceID:       order.InvoiceID,
		Notes:           order.Notes,
		IsArchived:      order.IsArchived,
		Items:           make([]OrderLineItemResponse, len(order.Items)),
		Totals: OrderTotalsResponse{
			ProductAmount:   appshared.Money(totals.ProductAmount),
			PlateCharge:     appshared.Money(totals.PlateCharge),
			AdvanceReceived: appshared.Money(totals.AdvanceReceived),
			TotalReceivable: appshared.Money(totals.TotalReceivable),
		},
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	if plate := pricing.PlateFor(order); plate != nil {
		resp.PlateTypeName = plate.Name
	}
	for i, line := range order.Items {
		item := OrderLineItemResponse{
			ID:               line.ID,
			ProductSizeID:    line.ProductSizeID,
			ProductSizeLabel: pricing.Labels[line.ProductSizeID],
			Quantity:         line.Quantity.String(),
			LineTotal:        appshared.Money(line.Quantity.Mul(line.Rate(pricing.LiveRates[line.ProductSizeID]))),
		}
		if line.RatePerKg.Valid {
			rate := appshared.Money(line.RatePerKg.Decimal)
			item.RatePerKg = &rate
		}
		resp.Items[i] = item
	}
	return resp
}
