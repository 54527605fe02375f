package telemetry

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics records billing activity counters.
type BusinessMetrics struct {
	logger *zap.Logger

	invoiceGeneratedTotal *Counter
	invoiceAmountTotal    *Counter
	numberConflictTotal   *Counter
	invoiceStatusTotal    *Counter
	invoiceDeletedTotal   *Counter
	paymentTotal          *Counter
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	bm := &BusinessMetrics{logger: logger}

	counters := []struct {
		target      **Counter
		name        string
		description string
		unit        string
	}{
		{&bm.invoiceGeneratedTotal, "pressworks_invoice_generated_total", "Total number of invoices generated", "{invoices}"},
		{&bm.invoiceAmountTotal, "pressworks_invoice_amount_total", "Total final amount invoiced in cents", "{cents}"},
		{&bm.numberConflictTotal, "pressworks_invoice_number_conflict_total", "Invoice number collisions that forced a retry", "{conflicts}"},
		{&bm.invoiceStatusTotal, "pressworks_invoice_status_change_total", "Invoice status changes", "{changes}"},
		{&bm.invoiceDeletedTotal, "pressworks_invoice_deleted_total", "Invoices archived with their orders and payments unlinked", "{invoices}"},
		{&bm.paymentTotal, "pressworks_payment_total", "Payment ledger mutations", "{payments}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(cfg.Meter, c.name, c.description, c.unit)
		if err != nil {
			return nil, err
		}
		*c.target = counter
	}

	return bm, nil
}

// RecordInvoiceGenerated records a committed invoice and its final amount.
func (bm *BusinessMetrics) RecordInvoiceGenerated(ctx context.Context, finalAmount decimal.Decimal) {
	bm.invoiceGeneratedTotal.Inc(ctx)
	bm.invoiceAmountTotal.Add(ctx, finalAmount.Mul(decimal.NewFromInt(100)).IntPart())
}

// RecordInvoiceNumberConflict records a generation attempt that lost the
// race for an invoice number.
func (bm *BusinessMetrics) RecordInvoiceNumberConflict(ctx context.Context) {
	bm.numberConflictTotal.Inc(ctx)
}

// RecordInvoiceStatusChange records an invoice status transition.
func (bm *BusinessMetrics) RecordInvoiceStatusChange(ctx context.Context, from, to string) {
	bm.invoiceStatusTotal.Inc(ctx, AttrStatusFrom.String(from), AttrStatusTo.String(to))
}

// RecordInvoiceDeleted records an invoice deletion.
func (bm *BusinessMetrics) RecordInvoiceDeleted(ctx context.Context) {
	bm.invoiceDeletedTotal.Inc(ctx)
}

// RecordPayment records a payment mutation. outcome is one of "recorded",
// "updated" or "deleted".
func (bm *BusinessMetrics) RecordPayment(ctx context.Context, paymentType, paymentMethod, outcome string) {
	bm.paymentTotal.Inc(ctx,
		AttrPaymentType.String(paymentType),
		AttrPaymentMethod.String(strings.ToUpper(paymentMethod)),
		AttrOutcome.String(outcome),
	)
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
