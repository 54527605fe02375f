package shared

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/catalog"
	domainshared "github.com/pressworks/backend/internal/domain/shared"
	"github.com/pressworks/backend/internal/domain/trade"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// OrderPricing holds the catalog rows an order's totals and invoice lines
// are computed from
type OrderPricing struct {
	// Plates is keyed by plate type ID
	Plates map[uuid.UUID]catalog.PlateType
	// Labels and LiveRates are keyed by product size ID
	Labels    map[uuid.UUID]string
	LiveRates map[uuid.UUID]decimal.Decimal
}

// PlateFor returns the order's plate type, or nil when it has none
func (p OrderPricing) PlateFor(order *trade.Order) *catalog.PlateType {
	if order.PlateTypeID == nil {
		return nil
	}
	plate, ok := p.Plates[*order.PlateTypeID]
	if !ok {
		return nil
	}
	return &plate
}

// Totals computes the order's totals
func (p OrderPricing) Totals(order *trade.Order) trade.OrderTotals {
	return trade.CalculateOrderTotals(order, p.PlateFor(order), p.LiveRates)
}

// LoadOrderPricing fetches the product sizes and plate types referenced by
// orders. Archived rows are included: an order keeps pricing against the
// catalog entries it was created with.
func LoadOrderPricing(
	ctx context.Context,
	sizes catalog.ProductSizeRepository,
	plates catalog.PlateTypeRepository,
	orders []trade.Order,
) (OrderPricing, error) {
	sizeIDs := lo.Uniq(lo.FlatMap(orders, func(o trade.Order, _ int) []uuid.UUID {
		return o.ProductSizeIDs()
	}))
	plateIDs := lo.Uniq(lo.FilterMap(orders, func(o trade.Order, _ int) (uuid.UUID, bool) {
		if o.PlateTypeID == nil {
			return uuid.Nil, false
		}
		return *o.PlateTypeID, true
	}))

	sizeRows, err := sizes.FindByIDs(ctx, sizeIDs)
	if err != nil {
		return OrderPricing{}, fmt.Errorf("failed to load product sizes: %w", err)
	}
	plateRows, err := plates.FindByIDs(ctx, plateIDs)
	if err != nil {
		return OrderPricing{}, fmt.Errorf("failed to load plate types: %w", err)
	}

	return OrderPricing{
		Plates: lo.KeyBy(plateRows, func(p catalog.PlateType) uuid.UUID { return p.ID }),
		Labels: lo.SliceToMap(sizeRows, func(s catalog.ProductSize) (uuid.UUID, string) {
			return s.ID, s.Label
		}),
		LiveRates: lo.SliceToMap(sizeRows, func(s catalog.ProductSize) (uuid.UUID, decimal.Decimal) {
			return s.ID, s.RatePerKg
		}),
	}, nil
}

// NotFoundAs replaces a generic not-found error with one naming the resource
func NotFoundAs(err error, resource string) error {
	if errors.Is(err, domainshared.ErrNotFound) {
		return domainshared.NewNotFoundError(resource)
	}
	return err
}
