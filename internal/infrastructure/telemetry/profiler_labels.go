package telemetry

import (
	"context"
	"sort"
	"strings"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelOperation = "operation"
	ProfilingLabelService   = "service"
	ProfilingLabelMethod    = "method"
	ProfilingLabelRoute     = "route"
)

// Billing operations used as profiling labels
const (
	OperationGenerateInvoice = "generate_invoice"
	OperationRecordPayment   = "record_payment"
	OperationRenderInvoice   = "render_invoice"
)

// MaxLabelValueLength bounds label values to keep cardinality down.
const MaxLabelValueLength = 128

var highCardinalityLabels = map[string]bool{
	"request_id":  true,
	"invoice_id":  true,
	"order_id":    true,
	"payment_id":  true,
	"customer_id": true,
	"trace_id":    true,
}

// WithProfilingLabels runs fn with Pyroscope labels attached to the
// goroutine. High-cardinality keys and empty values are dropped.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// BillingOperationLabels returns the labels for a billing service operation.
func BillingOperationLabels(service, operation string) map[string]string {
	return map[string]string{
		ProfilingLabelService:   service,
		ProfilingLabelOperation: operation,
	}
}

func sanitizeLabels(labels map[string]string) []string {
	if len(labels) == 0 {
		return nil
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(labels)*2)
	for _, key := range keys {
		value := labels[key]
		if key == "" || value == "" || highCardinalityLabels[key] {
			continue
		}
		if len(value) > MaxLabelValueLength {
			value = value[:MaxLabelValueLength]
		}
		key = strings.ReplaceAll(strings.ToLower(key), "-", "_")
		pairs = append(pairs, key, value)
	}
	return pairs
}
