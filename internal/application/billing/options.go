package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MetricsRecorder receives billing business events.
// *telemetry.BusinessMetrics implements it.
type MetricsRecorder interface {
	RecordInvoiceGenerated(ctx context.Context, finalAmount decimal.Decimal)
	RecordInvoiceNumberConflict(ctx context.Context)
	RecordInvoiceStatusChange(ctx context.Context, from, to string)
	RecordInvoiceDeleted(ctx context.Context)
	RecordPayment(ctx context.Context, paymentType, paymentMethod, outcome string)
}

type noopMetrics struct{}

func (noopMetrics) RecordInvoiceGenerated(context.Context, decimal.Decimal)   {}
func (noopMetrics) RecordInvoiceNumberConflict(context.Context)               {}
func (noopMetrics) RecordInvoiceStatusChange(context.Context, string, string) {}
func (noopMetrics) RecordInvoiceDeleted(context.Context)                      {}
func (noopMetrics) RecordPayment(context.Context, string, string, string)     {}

// Settings are the tunables shared by the billing services
type Settings struct {
	// NumberRetryAttempts bounds invoice generation attempts when the
	// allocated invoice number or an order link collides
	NumberRetryAttempts  int
	NumberRetryInterval  time.Duration
	DefaultDueDays       int
	DefaultPaymentMethod string
}

// DefaultSettings returns the built-in billing settings
func DefaultSettings() Settings {
	return Settings{
		NumberRetryAttempts:  3,
		NumberRetryInterval:  50 * time.Millisecond,
		DefaultDueDays:       30,
		DefaultPaymentMethod: "CASH",
	}
}

type serviceOptions struct {
	settings Settings
	metrics  MetricsRecorder
	logger   *zap.Logger
	now      func() time.Time
	renderer InvoiceRenderer
	store    DocumentStore
}

func defaultServiceOptions() serviceOptions {
	return serviceOptions{
		settings: DefaultSettings(),
		metrics:  noopMetrics{},
		logger:   zap.NewNop(),
		now:      time.Now,
	}
}

// Option configures the billing services
type Option func(*serviceOptions)

// WithSettings overrides the billing settings. Zero fields keep their defaults.
func WithSettings(s Settings) Option {
	return func(o *serviceOptions) {
		if s.NumberRetryAttempts > 0 {
			o.settings.NumberRetryAttempts = s.NumberRetryAttempts
		}
		if s.NumberRetryInterval > 0 {
			o.settings.NumberRetryInterval = s.NumberRetryInterval
		}
		if s.DefaultDueDays > 0 {
			o.settings.DefaultDueDays = s.DefaultDueDays
		}
		if s.DefaultPaymentMethod != "" {
			o.settings.DefaultPaymentMethod = s.DefaultPaymentMethod
		}
	}
}

// WithMetrics sets the business metrics recorder
func WithMetrics(m MetricsRecorder) Option {
	return func(o *serviceOptions) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(o *serviceOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithRenderer sets the invoice document renderer
func WithRenderer(r InvoiceRenderer) Option {
	return func(o *serviceOptions) {
		o.renderer = r
	}
}

// WithDocumentStore sets where rendered invoices are archived
func WithDocumentStore(s DocumentStore) Option {
	return func(o *serviceOptions) {
		o.store = s
	}
}

func applyOptions(opts []Option) serviceOptions {
	o := defaultServiceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// today truncates t to midnight in its location
func today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
