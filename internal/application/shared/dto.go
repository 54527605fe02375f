package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/billing"
	domainshared "github.com/pressworks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// FormatDate renders a calendar date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtr renders an optional calendar date
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

// ParseOptionalUUID parses an optional id query parameter
func ParseOptionalUUID(field, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainshared.NewValidationError("%s must be a valid UUID", field)
	}
	return &id, nil
}

// ParseDate parses a YYYY-MM-DD date. field names the input in the error.
func ParseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, domainshared.NewValidationError("%s must be a date in YYYY-MM-DD format", field)
	}
	return t, nil
}

// ParseOptionalDate parses raw when present
func ParseOptionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := ParseDate(field, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Money renders an amount with two decimal places
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// PaymentSummaryResponse is the payment_summary block of invoice, order
// and payment responses
type PaymentSummaryResponse struct {
	TotalPaid        string `json:"total_paid"`
	RemainingBalance string `json:"remaining_balance"`
	IsFullyPaid      bool   `json:"is_fully_paid"`
}

// NewPaymentSummaryResponse converts a domain payment summary
func NewPaymentSummaryResponse(s billing.PaymentSummary) PaymentSummaryResponse {
	return PaymentSummaryResponse{
		TotalPaid:        Money(s.TotalPaid),
		RemainingBalance: Money(s.RemainingBalance),
		IsFullyPaid:      s.IsFullyPaid,
	}
}

// ListResponse is a page of items with paging metadata
type ListResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewListResponse builds a page response
func NewListResponse[T any](items []T, total int64, filter domainshared.Filter) ListResponse[T] {
	p := domainshared.NewPaginated(items, total, max(filter.Page, 1), filter.Limit())
	return ListResponse[T](p)
}

// Pagination holds the paging query parameters shared by list endpoints
type Pagination struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// Filter converts the paging parameters into a domain filter
func (p Pagination) Filter() domainshared.Filter {
	f := domainshared.DefaultFilter()
	if p.Page > 0 {
		f.Page = p.Page
	}
	if p.PageSize > 0 {
		f.PageSize = p.PageSize
	}
	if p.OrderBy != "" {
		f.OrderBy = p.OrderBy
	}
	if p.OrderDir != "" {
		f.OrderDir = p.OrderDir
	}
	return f
}
