package billing

import (
	"time"

	"github.com/google/uuid"
	appshared "github.com/pressworks/backend/internal/application/shared"
	"github.com/pressworks/backend/internal/domain/billing"
	"github.com/pressworks/backend/internal/domain/partner"
	"github.com/pressworks/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// GenerateInvoiceRequest represents a request to invoice a customer's orders
type GenerateInvoiceRequest struct {
	CustomerID         uuid.UUID        `json:"customer_id" binding:"required"`
	OrderIDs           []uuid.UUID      `json:"order_ids" binding:"required"`
	BillingPeriodStart *string          `json:"billing_period_start" binding:"omitempty,datetime=2006-01-02"`
	BillingPeriodEnd   *string          `json:"billing_period_end" binding:"omitempty,datetime=2006-01-02"`
	PaymentDueDate     *string          `json:"payment_due_date" binding:"omitempty,datetime=2006-01-02"`
	TaxPercent         *decimal.Decimal `json:"tax_percent"`
}

// UpdateInvoiceStatusRequest represents a request to set an invoice status
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// InvoiceListFilter holds the query parameters of the invoice listing
type InvoiceListFilter struct {
	appshared.Pagination
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	Status     string `form:"status"`
	Search     string `form:"search"`
}

// InvoiceItemResponse represents an invoice line
type InvoiceItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	OrderID     *uuid.UUID `json:"order_id"`
	Description string     `json:"description"`
	Quantity    string     `json:"quantity"`
	UnitPrice   string     `json:"unit_price"`
	TotalPrice  string     `json:"total_price"`
}

// InvoiceOrderResponse is an order as listed on its invoice
type InvoiceOrderResponse struct {
	ID              uuid.UUID `json:"id"`
	OrderDate       string    `json:"order_date"`
	Status          string    `json:"status"`
	ProductAmount   string    `json:"product_amount"`
	PlateCharge     string    `json:"plate_charge"`
	AdvanceReceived string    `json:"advance_received"`
	TotalReceivable string    `json:"total_receivable"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID                 uuid.UUID                        `json:"id"`
	InvoiceNumber      string                           `json:"invoice_number"`
	CustomerID         uuid.UUID                        `json:"customer_id"`
	CustomerName       string                           `json:"customer_name,omitempty"`
	InvoiceDate        string                           `json:"invoice_date"`
	BillingPeriodStart string                           `json:"billing_period_start"`
	BillingPeriodEnd   string                           `json:"billing_period_end"`
	PaymentDueDate     *string                          `json:"payment_due_date"`
	TotalAmount        string                           `json:"total_amount"`
	TaxPercent         string                           `json:"tax_percent"`
	TaxAmount          string                           `json:"tax_amount"`
	FinalAmount        string                           `json:"final_amount"`
	Status             string                           `json:"status"`
	IsArchived         bool                             `json:"is_archived"`
	Items              []InvoiceItemResponse            `json:"items,omitempty"`
	Orders             []InvoiceOrderResponse           `json:"orders,omitempty"`
	Payments           []PaymentResponse                `json:"payments,omitempty"`
	PaymentSummary     appshared.PaymentSummaryResponse `json:"payment_summary"`
	CreatedAt          time.Time                        `json:"created_at"`
	UpdatedAt          time.Time                        `json:"updated_at"`
}

// InvoiceStatusResponse is returned by a status change
type InvoiceStatusResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

// RecordPaymentRequest represents a request to record a payment against an
// order, an invoice, or both
type RecordPaymentRequest struct {
	InvoiceID       *uuid.UUID       `json:"invoice_id"`
	OrderID         *uuid.UUID       `json:"order_id"`
	Amount          *decimal.Decimal `json:"amount"`
	PaymentType     string           `json:"payment_type"`
	PaymentDate     *string          `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	PaymentMethod   string           `json:"payment_method" binding:"max=50"`
	ReferenceNumber string           `json:"reference_number" binding:"max=100"`
	Notes           string           `json:"notes" binding:"max=2000"`
}

// UpdatePaymentRequest represents a request to update a payment. Absent
// fields keep their current values; when neither target is given the
// payment keeps its targets.
type UpdatePaymentRequest struct {
	InvoiceID       *uuid.UUID       `json:"invoice_id"`
	OrderID         *uuid.UUID       `json:"order_id"`
	Amount          *decimal.Decimal `json:"amount"`
	PaymentType     *string          `json:"payment_type"`
	PaymentDate     *string          `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	PaymentMethod   *string          `json:"payment_method" binding:"omitempty,max=50"`
	ReferenceNumber *string          `json:"reference_number" binding:"omitempty,max=100"`
	Notes           *string          `json:"notes" binding:"omitempty,max=2000"`
}

// PaymentListFilter holds the query parameters of the payment listing
type PaymentListFilter struct {
	appshared.Pagination
	InvoiceID  string `form:"invoice_id" binding:"omitempty,uuid"`
	OrderID    string `form:"order_id" binding:"omitempty,uuid"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID              uuid.UUID                         `json:"id"`
	InvoiceID       *uuid.UUID                        `json:"invoice_id"`
	OrderID         *uuid.UUID                        `json:"order_id"`
	CustomerID      uuid.UUID                         `json:"customer_id"`
	PaymentType     string                            `json:"payment_type"`
	Amount          string                            `json:"amount"`
	PaymentDate     string                            `json:"payment_date"`
	PaymentMethod   string                            `json:"payment_method"`
	ReferenceNumber string                            `json:"reference_number,omitempty"`
	Notes           string                            `json:"notes,omitempty"`
	PaymentSummary  *appshared.PaymentSummaryResponse `json:"payment_summary,omitempty"`
	CreatedAt       time.Time                         `json:"created_at"`
	UpdatedAt       time.Time                         `json:"updated_at"`
}

// ToInvoiceResponse converts an invoice header and its payment summary
func ToInvoiceResponse(inv *billing.Invoice, summary billing.PaymentSummary) InvoiceResponse {
	return InvoiceResponse{
		ID:                 inv.ID,
		InvoiceNumber:      inv.InvoiceNumber,
		CustomerID:         inv.CustomerID,
		InvoiceDate:        appshared.FormatDate(inv.InvoiceDate),
		BillingPeriodStart: appshared.FormatDate(inv.BillingPeriodStart),
		BillingPeriodEnd:   appshared.FormatDate(inv.BillingPeriodEnd),
		PaymentDueDate:     appshared.FormatDatePtr(inv.PaymentDueDate),
		TotalAmount:        appshared.Money(inv.TotalAmount),
		TaxPercent:         inv.TaxPercent.String(),
		TaxAmount:          appshared.Money(inv.TaxAmount),
		FinalAmount:        appshared.Money(inv.FinalAmount),
		Status:             inv.Status.String(),
		IsArchived:         inv.IsArchived,
		PaymentSummary:     appshared.NewPaymentSummaryResponse(summary),
		CreatedAt:          inv.CreatedAt,
		UpdatedAt:          inv.UpdatedAt,
	}
}

// ToInvoiceItemResponse converts an invoice line
func ToInvoiceItemResponse(item billing.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ID:          item.ID,
		OrderID:     item.OrderID,
		Description: item.Description,
		Quantity:    item.Quantity.String(),
		UnitPrice:   appshared.Money(item.UnitPrice),
		TotalPrice:  appshared.Money(item.TotalPrice),
	}
}

// ToInvoiceOrderResponse converts an invoiced order and its totals
func ToInvoiceOrderResponse(order *trade.Order, totals trade.OrderTotals) InvoiceOrderResponse {
	return InvoiceOrderResponse{
		ID:              order.ID,
		OrderDate:       appshared.FormatDate(order.OrderDate),
		Status:          order.Status.String(),
		ProductAmount:   appshared.Money(totals.ProductAmount),
		PlateCharge:     appshared.Money(totals.PlateCharge),
		AdvanceReceived: appshared.Money(totals.AdvanceReceived),
		TotalReceivable: appshared.Money(totals.TotalReceivable),
	}
}

// ToPaymentResponse converts a payment without its summary
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		InvoiceID:       p.InvoiceID,
		OrderID:         p.OrderID,
		CustomerID:      p.CustomerID,
		PaymentType:     p.PaymentType.String(),
		Amount:          appshared.Money(p.Amount),
		PaymentDate:     appshared.FormatDate(p.PaymentDate),
		PaymentMethod:   p.PaymentMethod,
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func customerName(c *partner.Customer) string {
	if c == nil {
		return ""
	}
	return c.Name
}
