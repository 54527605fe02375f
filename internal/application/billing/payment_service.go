package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	appshared "github.com/pressworks/backend/internal/application/shared"
	"github.com/pressworks/backend/internal/domain/billing"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/pressworks/backend/internal/domain/trade"
	"github.com/pressworks/backend/internal/infrastructure/telemetry"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Payment outcomes reported to the metrics recorder
const (
	paymentOutcomeRecorded = "recorded"
	paymentOutcomeUpdated  = "updated"
	paymentOutcomeDeleted  = "deleted"
	paymentOutcomeFailed   = "failed"
)

// PaymentService records payments against orders and invoices and keeps the
// invoice PAID/PENDING status in step with them
type PaymentService struct {
	scope TransactionScope
	repos Repositories
	opts  serviceOptions
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(scope TransactionScope, repos Repositories, opts ...Option) *PaymentService {
	return &PaymentService{
		scope: scope,
		repos: repos,
		opts:  applyOptions(opts),
	}
}

// paymentTargets is where a payment is attached once its references are
// resolved
type paymentTargets struct {
	invoiceID  *uuid.UUID
	orderID    *uuid.UUID
	customerID uuid.UUID
}

type statusChange struct {
	from, to billing.InvoiceStatus
}

// Record records a payment. At least one of invoice_id and order_id is
// required; the customer is taken from whichever is given.
func (s *PaymentService) Record(ctx context.Context, req RecordPaymentRequest) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "record")
	defer span.End()

	if req.InvoiceID == nil && req.OrderID == nil {
		telemetry.RecordError(span, shared.ErrMissingTarget)
		return nil, shared.ErrMissingTarget
	}
	if req.Amount == nil {
		return nil, shared.NewValidationError("amount is required")
	}
	if req.Amount.IsNegative() {
		return nil, shared.NewValidationError("amount cannot be negative")
	}
	var explicitType *billing.PaymentType
	if req.PaymentType != "" {
		t, err := billing.ParsePaymentType(req.PaymentType)
		if err != nil {
			return nil, err
		}
		explicitType = &t
	}
	paymentDate, err := appshared.ParseOptionalDate("payment_date", req.PaymentDate)
	if err != nil {
		return nil, err
	}
	method := lo.Ternary(req.PaymentMethod != "", req.PaymentMethod, s.opts.settings.DefaultPaymentMethod)

	telemetry.SetAttributes(span, telemetry.SpanAttrAmount, req.Amount.String())

	var payment *billing.Payment
	var changes []statusChange
	var operationErr error
	telemetry.WithProfilingLabels(ctx, telemetry.BillingOperationLabels("payment", telemetry.OperationRecordPayment), func(c context.Context) {
		operationErr = s.scope.Execute(c, func(repos TransactionalRepositories) error {
			targets, err := resolvePaymentTargets(c, repos, req.InvoiceID, req.OrderID)
			if err != nil {
				return err
			}

			paymentType := billing.PaymentTypePartial
			if targets.invoiceID == nil {
				paymentType = billing.PaymentTypeAdvance
			}
			if explicitType != nil {
				paymentType = *explicitType
			}

			payment, err = billing.NewPayment(billing.PaymentParams{
				InvoiceID:       targets.invoiceID,
				OrderID:         targets.orderID,
				CustomerID:      targets.customerID,
				PaymentType:     paymentType,
				Amount:          *req.Amount,
				PaymentDate:     lo.FromPtrOr(paymentDate, today(s.opts.now())),
				PaymentMethod:   method,
				ReferenceNumber: req.ReferenceNumber,
				Notes:           req.Notes,
			})
			if err != nil {
				return err
			}
			if err := repos.PaymentRepo().Create(c, payment); err != nil {
				return fmt.Errorf("failed to create payment: %w", err)
			}

			changes, err = recomputeInvoices(c, repos, targets.invoiceID)
			return err
		})
	})
	if operationErr != nil {
		telemetry.RecordError(span, operationErr)
		s.opts.metrics.RecordPayment(ctx, req.PaymentType, method, paymentOutcomeFailed)
		return nil, operationErr
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrPaymentID, payment.ID.String(),
		telemetry.SpanAttrPaymentType, payment.PaymentType.String(),
	)
	s.recordChanges(ctx, changes)
	s.opts.metrics.RecordPayment(ctx, payment.PaymentType.String(), payment.PaymentMethod, paymentOutcomeRecorded)
	s.opts.logger.Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("customer_id", payment.CustomerID.String()),
		zap.String("payment_type", payment.PaymentType.String()),
		zap.String("amount", payment.Amount.StringFixed(2)),
	)

	return s.Get(ctx, payment.ID)
}

// Update changes a payment and re-resolves its targets with the same rules
// as Record. The invoice it left and the invoice it now belongs to are both
// recomputed.
func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "update")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrPaymentID, id.String())

	if req.Amount != nil && req.Amount.IsNegative() {
		return nil, shared.NewValidationError("amount cannot be negative")
	}
	var explicitType *billing.PaymentType
	if req.PaymentType != nil && *req.PaymentType != "" {
		t, err := billing.ParsePaymentType(*req.PaymentType)
		if err != nil {
			return nil, err
		}
		explicitType = &t
	}
	paymentDate, err := appshared.ParseOptionalDate("payment_date", req.PaymentDate)
	if err != nil {
		return nil, err
	}

	var payment *billing.Payment
	var changes []statusChange
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		payment, err = repos.PaymentRepo().FindByID(ctx, id)
		if err != nil {
			return appshared.NotFoundAs(err, "payment")
		}
		previousInvoice := payment.InvoiceID

		invoiceID, orderID := req.InvoiceID, req.OrderID
		if invoiceID == nil && orderID == nil {
			invoiceID, orderID = payment.InvoiceID, payment.OrderID
		}
		targets, err := resolvePaymentTargets(ctx, repos, invoiceID, orderID)
		if err != nil {
			return err
		}

		params := billing.PaymentParams{
			InvoiceID:       targets.invoiceID,
			OrderID:         targets.orderID,
			CustomerID:      targets.customerID,
			PaymentType:     lo.FromPtrOr(explicitType, payment.PaymentType),
			Amount:          lo.FromPtrOr(req.Amount, payment.Amount),
			PaymentDate:     lo.FromPtrOr(paymentDate, payment.PaymentDate),
			PaymentMethod:   lo.FromPtrOr(req.PaymentMethod, payment.PaymentMethod),
			ReferenceNumber: lo.FromPtrOr(req.ReferenceNumber, payment.ReferenceNumber),
			Notes:           lo.FromPtrOr(req.Notes, payment.Notes),
		}
		if err := payment.Update(params); err != nil {
			return err
		}
		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}

		changes, err = recomputeInvoices(ctx, repos, previousInvoice, targets.invoiceID)
		return err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.recordChanges(ctx, changes)
	s.opts.metrics.RecordPayment(ctx, payment.PaymentType.String(), payment.PaymentMethod, paymentOutcomeUpdated)
	return s.Get(ctx, id)
}

// Delete removes a payment permanently and recomputes the invoice it was
// linked to
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "delete")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrPaymentID, id.String())

	var payment *billing.Payment
	var changes []statusChange
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		payment, err = repos.PaymentRepo().FindByID(ctx, id)
		if err != nil {
			return appshared.NotFoundAs(err, "payment")
		}
		if err := repos.PaymentRepo().Delete(ctx, id); err != nil {
			return appshared.NotFoundAs(err, "payment")
		}
		changes, err = recomputeInvoices(ctx, repos, payment.InvoiceID)
		return err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.recordChanges(ctx, changes)
	s.opts.metrics.RecordPayment(ctx, payment.PaymentType.String(), payment.PaymentMethod, paymentOutcomeDeleted)
	return nil
}

// Get returns a payment with the payment summary of its invoice, or of its
// order when it has no invoice
func (s *PaymentService) Get(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "get")
	defer span.End()

	payment, err := s.repos.Payments.FindByID(ctx, id)
	if err != nil {
		err = appshared.NotFoundAs(err, "payment")
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToPaymentResponse(payment)
	summary, err := newSummaryCache(s.repos).forPayment(ctx, payment)
	if err != nil {
		return nil, err
	}
	resp.PaymentSummary = summary
	return &resp, nil
}

// List lists payments, filtered by invoice, order or customer
func (s *PaymentService) List(ctx context.Context, params PaymentListFilter) (*appshared.ListResponse[PaymentResponse], error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "list")
	defer span.End()

	filter := billing.PaymentFilter{Filter: params.Filter()}
	var err error
	if filter.InvoiceID, err = appshared.ParseOptionalUUID("invoice_id", params.InvoiceID); err != nil {
		return nil, err
	}
	if filter.OrderID, err = appshared.ParseOptionalUUID("order_id", params.OrderID); err != nil {
		return nil, err
	}
	if filter.CustomerID, err = appshared.ParseOptionalUUID("customer_id", params.CustomerID); err != nil {
		return nil, err
	}

	payments, err := s.repos.Payments.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	total, err := s.repos.Payments.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}

	summaries := newSummaryCache(s.repos)
	items := make([]PaymentResponse, len(payments))
	for i := range payments {
		items[i] = ToPaymentResponse(&payments[i])
		if items[i].PaymentSummary, err = summaries.forPayment(ctx, &payments[i]); err != nil {
			return nil, err
		}
	}

	resp := appshared.NewListResponse(items, total, filter.Filter)
	return &resp, nil
}

func (s *PaymentService) recordChanges(ctx context.Context, changes []statusChange) {
	for _, c := range changes {
		s.opts.metrics.RecordInvoiceStatusChange(ctx, c.from.String(), c.to.String())
	}
}

// resolvePaymentTargets validates the references of a payment and fills in
// the ones that can be derived:
//   - the customer comes from the order when given, else from the invoice
//   - an order already billed on a live invoice attaches the payment to it
//   - an invoice without an order defaults to its earliest order
func resolvePaymentTargets(ctx context.Context, repos TransactionalRepositories, invoiceID, orderID *uuid.UUID) (paymentTargets, error) {
	var targets paymentTargets

	if invoiceID != nil {
		invoice, err := findLiveInvoice(ctx, repos.InvoiceRepo(), *invoiceID)
		if err != nil {
			return targets, err
		}
		targets.invoiceID = &invoice.ID
		targets.customerID = invoice.CustomerID
	}

	if orderID != nil {
		order, err := findLiveOrder(ctx, repos.OrderRepo(), *orderID)
		if err != nil {
			return targets, err
		}
		if targets.invoiceID != nil && order.CustomerID != targets.customerID {
			return targets, shared.NewValidationError("order and invoice belong to different customers")
		}
		targets.orderID = &order.ID
		targets.customerID = order.CustomerID

		if targets.invoiceID == nil && order.InvoiceID != nil {
			invoice, err := findLiveInvoice(ctx, repos.InvoiceRepo(), *order.InvoiceID)
			switch {
			case err == nil:
				targets.invoiceID = &invoice.ID
			case !shared.IsDomainError(err, shared.CodeNotFound):
				return targets, err
			}
		}
		return targets, nil
	}
	if targets.invoiceID == nil {
		return targets, shared.ErrMissingTarget
	}

	orders, err := repos.OrderRepo().FindByInvoiceID(ctx, *targets.invoiceID)
	if err != nil {
		return targets, fmt.Errorf("failed to load invoice orders: %w", err)
	}
	if len(orders) > 0 {
		targets.orderID = &orders[0].ID
	}
	return targets, nil
}

// recomputeInvoices re-derives PAID/PENDING for each distinct invoice from
// the sum of its payments
func recomputeInvoices(ctx context.Context, repos TransactionalRepositories, invoiceIDs ...*uuid.UUID) ([]statusChange, error) {
	ids := lo.Uniq(lo.FilterMap(invoiceIDs, func(id *uuid.UUID, _ int) (uuid.UUID, bool) {
		return lo.FromPtr(id), id != nil
	}))

	var changes []statusChange
	for _, id := range ids {
		invoice, err := repos.InvoiceRepo().FindByID(ctx, id)
		if err != nil {
			return nil, appshared.NotFoundAs(err, "invoice")
		}
		if invoice.IsArchived {
			continue
		}
		paid, err := repos.PaymentRepo().SumByInvoiceID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to sum payments: %w", err)
		}
		from := invoice.Status
		if !invoice.ApplyPaymentTotal(paid) {
			continue
		}
		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return nil, fmt.Errorf("failed to update invoice status: %w", err)
		}
		changes = append(changes, statusChange{from: from, to: invoice.Status})
	}
	return changes, nil
}

// findLiveOrder loads an order, treating archived orders as missing
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

// summaryCache computes payment summaries for a set of payments, loading
// each invoice or order once
type summaryCache struct {
	repos    Repositories
	invoices map[uuid.UUID]*appshared.PaymentSummaryResponse
	orders   map[uuid.UUID]*appshared.PaymentSummaryResponse
}

func newSummaryCache(repos Repositories) *summaryCache {
	return &summaryCache{
		repos:    repos,
		invoices: make(map[uuid.UUID]*appshared.PaymentSummaryResponse),
		orders:   make(map[uuid.UUID]*appshared.PaymentSummaryResponse),
	}
}

func (c *summaryCache) forPayment(ctx context.Context, p *billing.Payment) (*appshared.PaymentSummaryResponse, error) {
	switch {
	case p.InvoiceID != nil:
		return c.forInvoice(ctx, *p.InvoiceID)
	case p.OrderID != nil:
		return c.forOrder(ctx, *p.OrderID)
	}
	return nil, nil
}

func (c *summaryCache) forInvoice(ctx context.Context, id uuid.UUID) (*appshared.PaymentSummaryResponse, error) {
	if summary, ok := c.invoices[id]; ok {
		return summary, nil
	}
	invoice, err := c.repos.Invoices.FindByID(ctx, id)
	if err != nil {
		return nil, appshared.NotFoundAs(err, "invoice")
	}
	paid, err := c.repos.Payments.SumByInvoiceID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}
	summary := appshared.NewPaymentSummaryResponse(billing.SummarizeInvoicePaid(invoice, paid))
	c.invoices[id] = &summary
	return &summary, nil
}

func (c *summaryCache) forOrder(ctx context.Context, id uuid.UUID) (*appshared.PaymentSummaryResponse, error) {
	if summary, ok := c.orders[id]; ok {
		return summary, nil
	}
	order, err := c.repos.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, appshared.NotFoundAs(err, "order")
	}
	summary, err := OrderPaymentSummary(ctx, c.repos, order)
	if err != nil {
		return nil, err
	}
	resp := appshared.NewPaymentSummaryResponse(summary)
	c.orders[id] = &resp
	return &resp, nil
}

// OrderPaymentSummary computes an order's payment summary from its totals
// and every payment recorded against it
func OrderPaymentSummary(ctx context.Context, repos Repositories, order *trade.Order) (billing.PaymentSummary, error) {
	pricing, err := appshared.LoadOrderPricing(ctx, repos.ProductSizes, repos.PlateTypes, []trade.Order{*order})
	if err != nil {
		return billing.PaymentSummary{}, err
	}
	payments, err := repos.Payments.FindByOrderIDs(ctx, []uuid.UUID{order.ID})
	if err != nil {
		return billing.PaymentSummary{}, fmt.Errorf("failed to load order payments: %w", err)
	}
	return billing.SummarizeOrderPayments(pricing.Totals(order), payments), nil
}
