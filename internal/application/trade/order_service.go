package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	appbilling "github.com/pressworks/backend/internal/application/billing"
	appshared "github.com/pressworks/backend/internal/application/shared"
	"github.com/pressworks/backend/internal/domain/billing"
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/pressworks/backend/internal/domain/partner"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/pressworks/backend/internal/domain/trade"
	"github.com/pressworks/backend/internal/infrastructure/telemetry"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService handles order entry. Line items capture the product size
// rate at the moment they are written.
type OrderService struct {
	scope  appbilling.TransactionScope
	repos  appbilling.Repositories
	logger *zap.Logger
	now    func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(scope appbilling.TransactionScope, repos appbilling.Repositories, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		scope:  scope,
		repos:  repos,
		logger: logger,
		now:    time.Now,
	}
}

// Create creates an order with its line items
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "create")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrCustomerID, req.CustomerID.String())

	orderDate, err := appshared.ParseOptionalDate("order_date", req.OrderDate)
	if err != nil {
		return nil, err
	}
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	var order *trade.Order
	err = s.scope.Execute(ctx, func(repos appbilling.TransactionalRepositories) error {
		if err := requireLiveCustomer(ctx, repos.CustomerRepo(), req.CustomerID); err != nil {
			return err
		}
		if err := requireLivePlate(ctx, repos.PlateTypeRepo(), req.PlateTypeID); err != nil {
			return err
		}

		var err error
		order, err = trade.NewOrder(
			req.CustomerID,
			lo.FromPtrOr(orderDate, s.today()),
			req.PlateTypeID,
			lo.FromPtrOr(req.AdvanceReceived, decimal.Zero),
			req.Notes,
		)
		if err != nil {
			return err
		}
		if req.Status != "" {
			if err := order.SetStatus(parseOrderStatus(req.Status)); err != nil {
				return err
			}
		}
		if err := addItems(ctx, repos.ProductSizeRepo(), order, req.Items); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", order.CustomerID.String()),
		zap.Int("line_items", len(order.Items)),
	)
	return s.Get(ctx, order.ID)
}

// Get returns a live order with its line items, totals and payment summary
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "get")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, id.String())

	order, err := findLiveOrder(ctx, s.repos.Orders, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	responses, err := s.toResponses(ctx, []trade.Order{*order})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// List lists live orders with their totals and payment summaries
func (s *OrderService) List(ctx context.Context, params OrderListFilter) (*appshared.ListResponse[OrderResponse], error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "list")
	defer span.End()

	filter := trade.OrderFilter{Filter: params.Filter(), UninvoicedOnly: params.UninvoicedOnly}
	filter.OrderBy = lo.Ternary(params.OrderBy == "", "order_date", filter.OrderBy)
	customerID, err := appshared.ParseOptionalUUID("customer_id", params.CustomerID)
	if err != nil {
		return nil, err
	}
	filter.CustomerID = customerID
	if params.Status != "" {
		status := parseOrderStatus(params.Status)
		if !status.IsValid() {
			return nil, shared.NewInvalidStatusError(params.Status, lo.Map(trade.AllOrderStatuses(), func(s trade.OrderStatus, _ int) string {
				return s.String()
			})...)
		}
		filter.Status = &status
	}

	orders, err := s.repos.Orders.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	total, err := s.repos.Orders.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	items, err := s.toResponses(ctx, orders)
	if err != nil {
		return nil, err
	}

	resp := appshared.NewListResponse(items, total, filter.Filter)
	return &resp, nil
}

// Update replaces the order header and all of its line items in one
// transaction. Every line re-captures the current product size rate.
// Invoiced orders stay editable; their invoice keeps the amounts it was
// generated with.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, id.String())

	orderDate, err := appshared.ParseOptionalDate("order_date", req.OrderDate)
	if err != nil {
		return nil, err
	}
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos appbilling.TransactionalRepositories) error {
		order, err := findLiveOrder(ctx, repos.OrderRepo(), id)
		if err != nil {
			return err
		}
		if err := requireLivePlate(ctx, repos.PlateTypeRepo(), req.PlateTypeID); err != nil {
			return err
		}
		if err := order.UpdateDetails(
			lo.FromPtrOr(orderDate, order.OrderDate),
			req.PlateTypeID,
			lo.FromPtrOr(req.AdvanceReceived, decimal.Zero),
			req.Notes,
		); err != nil {
			return err
		}
		if req.Status != "" {
			if err := order.SetStatus(parseOrderStatus(req.Status)); err != nil {
				return err
			}
		}
		order.ClearItems()
		if err := addItems(ctx, repos.ProductSizeRepo(), order, req.Items); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.Get(ctx, id)
}

// UpdateStatus changes the production status of an order
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, raw string) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update_status")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, id.String())

	status := parseOrderStatus(raw)
	err := s.scope.Execute(ctx, func(repos appbilling.TransactionalRepositories) error {
		order, err := findLiveOrder(ctx, repos.OrderRepo(), id)
		if err != nil {
			return err
		}
		if err := order.SetStatus(status); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.Get(ctx, id)
}

// Archive soft-deletes an order. An invoice it is billed on is not changed.
func (s *OrderService) Archive(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "archive")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, id.String())

	err := s.scope.Execute(ctx, func(repos appbilling.TransactionalRepositories) error {
		order, err := findLiveOrder(ctx, repos.OrderRepo(), id)
		if err != nil {
			return err
		}
		order.Archive()
		order.Touch()
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.logger.Info("order archived", zap.String("order_id", id.String()))
	return nil
}

// toResponses prices the orders and attaches each one's payment summary,
// loading catalog rows and payments once for the whole batch
func (s *OrderService) toResponses(ctx context.Context, orders []trade.Order) ([]OrderResponse, error) {
	pricing, err := appshared.LoadOrderPricing(ctx, s.repos.ProductSizes, s.repos.PlateTypes, orders)
	if err != nil {
		return nil, err
	}
	ids := lo.Map(orders, func(o trade.Order, _ int) uuid.UUID { return o.ID })
	payments, err := s.repos.Payments.FindByOrderIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load order payments: %w", err)
	}
	byOrder := lo.GroupBy(payments, func(p billing.Payment) uuid.UUID { return lo.FromPtr(p.OrderID) })

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		order := &orders[i]
		responses[i] = ToOrderResponse(order, pricing)
		summary := appshared.NewPaymentSummaryResponse(
			billing.SummarizeOrderPayments(pricing.Totals(order), byOrder[order.ID]),
		)
		responses[i].PaymentSummary = &summary
	}
	return responses, nil
}

func (s *OrderService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateItems(items []OrderItemRequest) error {
	if len(items) == 0 {
		return shared.NewValidationError("an order needs at least one line item")
	}
	for i, item := range items {
		if item.ProductSizeID == uuid.Nil {
			return shared.NewValidationError("items[%d].product_size_id is required", i)
		}
		if item.Quantity == nil || !item.Quantity.IsPositive() {
			return shared.NewValidationError("items[%d].quantity must be greater than zero", i)
		}
	}
	return nil
}

// addItems snapshots each referenced product size's rate onto a new line
func addItems(ctx context.Context, sizes catalog.ProductSizeRepository, order *trade.Order, items []OrderItemRequest) error {
	ids := lo.Uniq(lo.Map(items, func(item OrderItemRequest, _ int) uuid.UUID { return item.ProductSizeID }))
	rows, err := sizes.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load product sizes: %w", err)
	}
	byID := lo.KeyBy(rows, func(size catalog.ProductSize) uuid.UUID { return size.ID })

	for _, item := range items {
		size, ok := byID[item.ProductSizeID]
		if !ok {
			return shared.NewInvalidReferenceError("product size")
		}
		if _, err := order.AddItem(&size, *item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func requireLiveCustomer(ctx context.Context, repo partner.CustomerRepository, id uuid.UUID) error {
	customer, err := repo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) || (err == nil && customer.IsArchived) {
		return shared.NewInvalidReferenceError("customer")
	}
	return err
}

func requireLivePlate(ctx context.Context, repo catalog.PlateTypeRepository, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	plate, err := repo.FindByID(ctx, *id)
	if errors.Is(err, shared.ErrNotFound) || (err == nil && plate.IsArchived) {
		return shared.NewInvalidReferenceError("plate type")
	}
	return err
}

func findLiveOrder(ctx context.Context, repo trade.OrderRepository, id uuid.UUID) (*trade.Order, error) {
	order, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, appshared.NotFoundAs(err, "order")
	}
	if order.IsArchived {
		return nil, shared.NewNotFoundError("order")
	}
	return order, nil
}

func parseOrderStatus(raw string) trade.OrderStatus {
	return trade.OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
}
