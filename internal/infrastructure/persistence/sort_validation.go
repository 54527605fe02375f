package persistence

import (
	"fmt"
	"strings"

	"github.com/pressworks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC, defaulting to DESC
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when it is whitelisted, else defaultField
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// Allowed sort fields per table. Anything else falls back to the default
// so user input never reaches ORDER BY unchecked.
var (
	CustomerSortFields = map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
	}
	ProductSizeSortFields = map[string]bool{
		"created_at":  true,
		"label":       true,
		"rate_per_kg": true,
	}
	PlateTypeSortFields = map[string]bool{
		"created_at": true,
		"name":       true,
		"charge":     true,
	}
	OrderSortFields = map[string]bool{
		"created_at": true,
		"updated_at": true,
		"order_date": true,
		"status":     true,
	}
	InvoiceSortFields = map[string]bool{
		"created_at":     true,
		"invoice_date":   true,
		"invoice_number": true,
		"final_amount":   true,
		"status":         true,
	}
	PaymentSortFields = map[string]bool{
		"created_at":   true,
		"payment_date": true,
		"amount":       true,
	}
)

// applyPage adds ordering and pagination for the filter
func applyPage(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	query = query.Order(fmt.Sprintf("%s %s", field, ValidateSortOrder(filter.OrderDir)))
	return query.Offset(filter.Offset()).Limit(filter.Limit())
}

// applyArchived hides archived rows unless the filter asks for them
func applyArchived(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.IncludeArchived {
		return query
	}
	return query.Where("is_archived = ?", false)
}
