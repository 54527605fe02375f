package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	appshared "github.com/pressworks/backend/internal/application/shared"
	"github.com/pressworks/backend/internal/domain/billing"
	"github.com/pressworks/backend/internal/domain/partner"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/pressworks/backend/internal/domain/trade"
	"github.com/pressworks/backend/internal/infrastructure/telemetry"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// InvoiceService generates invoices from orders and manages their lifecycle
type InvoiceService struct {
	scope TransactionScope
	repos Repositories
	opts  serviceOptions
}

// NewInvoiceService creates a new InvoiceService. Reads go through repos;
// every write goes through scope.
func NewInvoiceService(scope TransactionScope, repos Repositories, opts ...Option) *InvoiceService {
	return &InvoiceService{
		scope: scope,
		repos: repos,
		opts:  applyOptions(opts),
	}
}

// generateInput is a validated GenerateInvoiceRequest
type generateInput struct {
	customerID  uuid.UUID
	orderIDs    []uuid.UUID
	periodStart *time.Time
	periodEnd   *time.Time
	dueDate     *time.Time
	taxPercent  decimal.Decimal
}

// generateResult is what one successful generation attempt produced
type generateResult struct {
	invoiceID       uuid.UUID
	invoiceNumber   string
	finalAmount     decimal.Decimal
	attachedPayment int64
}

// Generate bills a customer for the given orders. Orders that belong to
// another customer, are archived or already invoiced are skipped. The
// invoice number is allocated inside the transaction; when a concurrent
// generation takes the same number or links the same order first, the whole
// transaction is retried with backoff.
func (s *InvoiceService) Generate(ctx context.Context, req GenerateInvoiceRequest) (*InvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "generate")
	defer span.End()

	in, err := s.validateGenerate(req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCustomerID, in.customerID.String(),
		telemetry.SpanAttrOrderCount, len(in.orderIDs),
	)

	var result generateResult
	var operationErr error
	telemetry.WithProfilingLabels(ctx, telemetry.BillingOperationLabels("invoice", telemetry.OperationGenerateInvoice), func(c context.Context) {
		result, operationErr = s.generateWithRetry(c, in)
	})
	if operationErr != nil {
		telemetry.RecordError(span, operationErr)
		return nil, operationErr
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrInvoiceID, result.invoiceID.String(),
		telemetry.SpanAttrInvoiceNumber, result.invoiceNumber,
	)
	s.opts.metrics.RecordInvoiceGenerated(ctx, result.finalAmount)
	s.opts.logger.Info("invoice generated",
		zap.String("invoice_id", result.invoiceID.String()),
		zap.String("invoice_number", result.invoiceNumber),
		zap.String("customer_id", in.customerID.String()),
		zap.Int("order_count", len(in.orderIDs)),
		zap.Int64("attached_payments", result.attachedPayment),
		zap.String("final_amount", result.finalAmount.StringFixed(2)),
	)

	return s.Get(ctx, result.invoiceID)
}

func (s *InvoiceService) validateGenerate(req GenerateInvoiceRequest) (generateInput, error) {
	in := generateInput{
		customerID: req.CustomerID,
		orderIDs:   lo.Uniq(req.OrderIDs),
		taxPercent: decimal.Zero,
	}
	if in.customerID == uuid.Nil {
		return in, shared.NewValidationError("customer_id is required")
	}
	if len(in.orderIDs) == 0 {
		return in, shared.NewValidationError("order_ids must contain at least one order")
	}
	if req.TaxPercent != nil {
		if req.TaxPercent.IsNegative() {
			return in, shared.NewValidationError("tax_percent cannot be negative")
		}
		in.taxPercent = *req.TaxPercent
	}

	var err error
	if in.periodStart, err = appshared.ParseOptionalDate("billing_period_start", req.BillingPeriodStart); err != nil {
		return in, err
	}
	if in.periodEnd, err = appshared.ParseOptionalDate("billing_period_end", req.BillingPeriodEnd); err != nil {
		return in, err
	}
	if in.dueDate, err = appshared.ParseOptionalDate("payment_due_date", req.PaymentDueDate); err != nil {
		return in, err
	}
	return in, nil
}

func (s *InvoiceService) generateWithRetry(ctx context.Context, in generateInput) (generateResult, error) {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewExponentialBackOff(
				backoff.WithInitialInterval(s.opts.settings.NumberRetryInterval),
				backoff.WithMaxElapsedTime(0),
			),
			uint64(s.opts.settings.NumberRetryAttempts-1),
		),
		ctx,
	)

	span := trace.SpanFromContext(ctx)
	attempt := 0
	return backoff.RetryWithData(func() (generateResult, error) {
		attempt++
		telemetry.AddEvent(span, "generate_attempt", telemetry.SpanAttrAttempt, attempt)

		result, err := s.generateOnce(ctx, in)
		if err == nil {
			return result, nil
		}
		if shared.IsDomainError(err, shared.CodeConflict) {
			s.opts.metrics.RecordInvoiceNumberConflict(ctx)
			s.opts.logger.Warn("invoice generation conflicted, retrying",
				zap.String("customer_id", in.customerID.String()),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return result, err
		}
		return result, backoff.Permanent(err)
	}, policy)
}

func (s *InvoiceService) generateOnce(ctx context.Context, in generateInput) (generateResult, error) {
	var result generateResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		customer, err := findLiveCustomer(ctx, repos.CustomerRepo(), in.customerID)
		if err != nil {
			return err
		}

		orders, err := repos.OrderRepo().FindByIDs(ctx, in.orderIDs)
		if err != nil {
			return fmt.Errorf("failed to load orders: %w", err)
		}
		eligible := lo.Filter(orders, func(o trade.Order, _ int) bool {
			return o.EligibleForInvoice(customer.ID)
		})
		if len(eligible) == 0 {
			return shared.ErrNoEligibleOrders
		}

		pricing, err := appshared.LoadOrderPricing(ctx, repos.ProductSizeRepo(), repos.PlateTypeRepo(), eligible)
		if err != nil {
			return err
		}

		totalAmount := decimal.Zero
		totalAdvance := decimal.Zero
		for i := range eligible {
			totals := pricing.Totals(&eligible[i])
			totalAmount = totalAmount.Add(totals.Gross())
			totalAdvance = totalAdvance.Add(totals.AdvanceReceived)
		}

		numbers, err := repos.InvoiceRepo().ListInvoiceNumbers(ctx)
		if err != nil {
			return fmt.Errorf("failed to list invoice numbers: %w", err)
		}

		invoiceDate := today(s.opts.now())
		periodStart := lo.FromPtrOr(in.periodStart, lo.MinBy(eligible, func(a, b trade.Order) bool {
			return a.OrderDate.Before(b.OrderDate)
		}).OrderDate)
		periodEnd := lo.FromPtrOr(in.periodEnd, invoiceDate)
		dueDate := lo.FromPtrOr(in.dueDate, invoiceDate.AddDate(0, 0, s.opts.settings.DefaultDueDays))

		invoice, err := billing.NewInvoice(billing.InvoiceParams{
			CustomerID:         customer.ID,
			InvoiceNumber:      billing.NextInvoiceNumber(numbers),
			InvoiceDate:        invoiceDate,
			BillingPeriodStart: periodStart,
			BillingPeriodEnd:   periodEnd,
			PaymentDueDate:     &dueDate,
			TotalAmount:        totalAmount,
			TaxPercent:         in.taxPercent,
		})
		if err != nil {
			return err
		}
		for i := range eligible {
			order := &eligible[i]
			items := billing.BuildOrderItems(billing.OrderItemsInput{
				Order:     order,
				Plate:     pricing.PlateFor(order),
				Labels:    pricing.Labels,
				LiveRates: pricing.LiveRates,
			})
			for _, item := range items {
				invoice.AddItem(item)
			}
		}

		if err := repos.InvoiceRepo().Create(ctx, invoice); err != nil {
			return err
		}
		for _, order := range eligible {
			if err := repos.OrderRepo().LinkInvoice(ctx, order.ID, invoice.ID); err != nil {
				return err
			}
		}

		orderIDs := lo.Map(eligible, func(o trade.Order, _ int) uuid.UUID { return o.ID })
		attached, err := repos.PaymentRepo().AttachUnlinkedToInvoice(ctx, orderIDs, invoice.ID)
		if err != nil {
			return fmt.Errorf("failed to attach payments: %w", err)
		}
		paid, err := repos.PaymentRepo().SumByInvoiceID(ctx, invoice.ID)
		if err != nil {
			return fmt.Errorf("failed to sum payments: %w", err)
		}
		if invoice.ApplyPaymentTotal(paid) {
			if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
				return err
			}
		}

		s.opts.logger.Debug("invoice built",
			zap.String("invoice_number", invoice.InvoiceNumber),
			zap.String("total_amount", totalAmount.String()),
			zap.String("total_advance_received", totalAdvance.String()),
			zap.Int("skipped_orders", len(in.orderIDs)-len(eligible)),
		)

		result = generateResult{
			invoiceID:       invoice.ID,
			invoiceNumber:   invoice.InvoiceNumber,
			finalAmount:     invoice.FinalAmount,
			attachedPayment: attached,
		}
		return nil
	})
	return result, err
}

// Get returns a live invoice with its items, orders, payments and payment
// summary
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "get")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrInvoiceID, id.String())

	invoice, err := s.findLiveInvoice(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	payments, err := s.repos.Payments.FindByInvoiceID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	orders, err := s.repos.Orders.FindByInvoiceID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	pricing, err := appshared.LoadOrderPricing(ctx, s.repos.ProductSizes, s.repos.PlateTypes, orders)
	if err != nil {
		return nil, err
	}
	customer, err := s.repos.Customers.FindByID(ctx, invoice.CustomerID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	resp := ToInvoiceResponse(invoice, billing.SummarizeInvoicePayments(invoice, payments))
	resp.CustomerName = customerName(customer)
	resp.Items = lo.Map(invoice.Items, func(item billing.InvoiceItem, _ int) InvoiceItemResponse {
		return ToInvoiceItemResponse(item)
	})
	resp.Orders = make([]InvoiceOrderResponse, len(orders))
	for i := range orders {
		resp.Orders[i] = ToInvoiceOrderResponse(&orders[i], pricing.Totals(&orders[i]))
	}
	resp.Payments = make([]PaymentResponse, len(payments))
	for i := range payments {
		resp.Payments[i] = ToPaymentResponse(&payments[i])
	}
	return &resp, nil
}

// List lists live invoices, each with its payment summary
func (s *InvoiceService) List(ctx context.Context, params InvoiceListFilter) (*appshared.ListResponse[InvoiceResponse], error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "list")
	defer span.End()

	filter := billing.InvoiceFilter{Filter: params.Filter()}
	filter.Search = params.Search
	customerID, err := appshared.ParseOptionalUUID("customer_id", params.CustomerID)
	if err != nil {
		return nil, err
	}
	filter.CustomerID = customerID
	if params.Status != "" {
		status, err := billing.ParseInvoiceStatus(params.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	invoices, err := s.repos.Invoices.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	total, err := s.repos.Invoices.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count invoices: %w", err)
	}

	items := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		paid, err := s.repos.Payments.SumByInvoiceID(ctx, invoices[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum payments: %w", err)
		}
		items[i] = ToInvoiceResponse(&invoices[i], billing.SummarizeInvoicePaid(&invoices[i], paid))
	}

	resp := appshared.NewListResponse(items, total, filter.Filter)
	return &resp, nil
}

// SetStatus sets an invoice's status explicitly. Any valid status may be
// set; the automatic PAID/PENDING projection runs again on the next payment
// change.
func (s *InvoiceService) SetStatus(ctx context.Context, id uuid.UUID, raw string) (*InvoiceStatusResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "set_status")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrInvoiceID, id.String(), telemetry.SpanAttrInvoiceStatus, raw)

	status, err := billing.ParseInvoiceStatus(raw)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var from billing.InvoiceStatus
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := findLiveInvoice(ctx, repos.InvoiceRepo(), id)
		if err != nil {
			return err
		}
		from = invoice.Status
		if err := invoice.SetStatus(status); err != nil {
			return err
		}
		return repos.InvoiceRepo().Save(ctx, invoice)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if from != status {
		s.opts.metrics.RecordInvoiceStatusChange(ctx, from.String(), status.String())
	}
	return &InvoiceStatusResponse{ID: id, Status: status.String()}, nil
}

// Delete unlinks the invoice's orders and payments and archives it. Orders
// and payments survive and can be invoiced again.
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "delete")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrInvoiceID, id.String())

	var unlinkedOrders, unlinkedPayments int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := findLiveInvoice(ctx, repos.InvoiceRepo(), id)
		if err != nil {
			return err
		}
		if unlinkedOrders, err = repos.OrderRepo().UnlinkInvoice(ctx, id); err != nil {
			return fmt.Errorf("failed to unlink orders: %w", err)
		}
		if unlinkedPayments, err = repos.PaymentRepo().UnlinkInvoice(ctx, id); err != nil {
			return fmt.Errorf("failed to unlink payments: %w", err)
		}
		invoice.Archive()
		invoice.Touch()
		return repos.InvoiceRepo().Save(ctx, invoice)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.opts.metrics.RecordInvoiceDeleted(ctx)
	s.opts.logger.Info("invoice deleted",
		zap.String("invoice_id", id.String()),
		zap.Int64("unlinked_orders", unlinkedOrders),
		zap.Int64("unlinked_payments", unlinkedPayments),
	)
	return nil
}

// RenderPDF renders a live invoice. When archive is set the document is
// also stored in the document store.
func (s *InvoiceService) RenderPDF(ctx context.Context, id uuid.UUID, archive bool) (*RenderedInvoice, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "render_pdf")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrInvoiceID, id.String(), "archive", archive)

	if s.opts.renderer == nil {
		return nil, errors.New("invoice renderer is not configured")
	}
	if archive && s.opts.store == nil {
		return nil, shared.NewValidationError("document archive is not configured")
	}

	invoice, err := s.findLiveInvoice(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	customer, err := s.repos.Customers.FindByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, appshared.NotFoundAs(err, "customer")
	}
	payments, err := s.repos.Payments.FindByInvoiceID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	doc := InvoiceDocument{
		Invoice:  invoice,
		Customer: customer,
		Payments: payments,
		Summary:  billing.BuildStatementSummary(invoice, payments),
	}

	var content []byte
	var renderErr error
	telemetry.WithProfilingLabels(ctx, telemetry.BillingOperationLabels("invoice", telemetry.OperationRenderInvoice), func(c context.Context) {
		content, renderErr = s.opts.renderer.Render(c, doc)
	})
	if renderErr != nil {
		telemetry.RecordError(span, renderErr)
		return nil, fmt.Errorf("failed to render invoice: %w", renderErr)
	}

	rendered := &RenderedInvoice{
		Filename: InvoiceFilename(invoice.InvoiceNumber),
		Content:  content,
	}
	if archive {
		location, err := s.opts.store.Put(ctx, InvoiceDocumentKey(invoice.InvoiceNumber), PDFContentType, content)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to archive invoice: %w", err)
		}
		rendered.ArchiveLocation = location
	}
	return rendered, nil
}

func (s *InvoiceService) findLiveInvoice(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	return findLiveInvoice(ctx, s.repos.Invoices, id)
}

// findLiveInvoice loads an invoice, treating archived invoices as missing
func findLiveInvoice(ctx context.Context, repo billing.InvoiceRepository, id uuid.UUID) (*billing.Invoice, error) {
	invoice, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, appshared.NotFoundAs(err, "invoice")
	}
	if invoice.IsArchived {
		return nil, shared.NewNotFoundError("invoice")
	}
	return invoice, nil
}

// findLiveCustomer loads a customer, treating archived customers as missing
func findLiveCustomer(ctx context.Context, repo partner.CustomerRepository, id uuid.UUID) (*partner.Customer, error) {
	customer, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, appshared.NotFoundAs(err, "customer")
	}
	if customer.IsArchived {
		return nil, shared.NewNotFoundError("customer")
	}
	return customer, nil
}
