// Package pdf renders invoices as PDF documents with maroto.
package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	appbilling "github.com/pressworks/backend/internal/application/billing"
	"github.com/pressworks/backend/internal/domain/billing"
	"github.com/pressworks/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

const dateLayout = "02 Jan 2006"

var _ appbilling.InvoiceRenderer = (*InvoiceRenderer)(nil)

// InvoiceRenderer draws an invoice document: header, item table and the
// statement summary
type InvoiceRenderer struct {
	issuerName    string
	issuerDetails []string
}

// Option configures an InvoiceRenderer
type Option func(*InvoiceRenderer)

// WithIssuer sets the business name and address lines printed in the header
func WithIssuer(name string, details ...string) Option {
	return func(r *InvoiceRenderer) {
		r.issuerName = name
		r.issuerDetails = details
	}
}

// NewInvoiceRenderer creates a new InvoiceRenderer
func NewInvoiceRenderer(opts ...Option) *InvoiceRenderer {
	r := &InvoiceRenderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the PDF bytes of the document
func (r *InvoiceRenderer) Render(ctx context.Context, doc appbilling.InvoiceDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc.Invoice == nil {
		return nil, fmt.Errorf("invoice is required")
	}

	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(12).
		WithTopMargin(15).
		WithRightMargin(12).
		Build()
	m := maroto.New(cfg)

	r.addHeader(m, doc.Invoice)
	addParties(m, doc.Invoice, doc.Customer)
	addItems(m, doc.Invoice.Items)
	addSummary(m, doc.Summary)
	addPayments(m, doc.Payments)

	generated, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return generated.GetBytes(), nil
}

func (r *InvoiceRenderer) addHeader(m core.Maroto, inv *billing.Invoice) {
	issuer := col.New(6)
	if r.issuerName != "" {
		issuer.Add(text.New(r.issuerName, props.Text{Size: 12, Style: fontstyle.Bold}))
		for i, detail := range r.issuerDetails {
			issuer.Add(text.New(detail, props.Text{Size: 9, Top: float64(6 + i*4)}))
		}
	}
	m.AddRow(24,
		issuer,
		col.New(6).Add(
			text.New("INVOICE", props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Right}),
			text.New("# "+inv.InvoiceNumber, props.Text{Size: 10, Top: 9, Align: align.Right}),
			text.New("Status: "+inv.Status.String(), props.Text{Size: 9, Top: 15, Align: align.Right}),
		),
	)
	m.AddRow(4, line.NewCol(12))
}

func addParties(m core.Maroto, inv *billing.Invoice, customer *partner.Customer) {
	billTo := col.New(6).Add(text.New("Bill to", props.Text{Size: 9, Style: fontstyle.Bold}))
	if customer != nil {
		top := 5.0
		for _, value := range []string{
			customer.Name,
			customer.MetadataString(partner.MetadataAddress),
			customer.MetadataString(partner.MetadataEmail),
			customer.MetadataString(partner.MetadataPhone),
		} {
			if value == "" {
				continue
			}
			billTo.Add(text.New(value, props.Text{Size: 9, Top: top}))
			top += 4
		}
	}

	dueDate := "-"
	if inv.PaymentDueDate != nil {
		dueDate = inv.PaymentDueDate.Format(dateLayout)
	}
	m.AddRow(26,
		billTo,
		col.New(6).Add(
			text.New("Invoice date: "+inv.InvoiceDate.Format(dateLayout), props.Text{Size: 9, Align: align.Right}),
			text.New("Billing period: "+inv.BillingPeriodStart.Format(dateLayout)+" - "+inv.BillingPeriodEnd.Format(dateLayout),
				props.Text{Size: 9, Top: 5, Align: align.Right}),
			text.New("Due date: "+dueDate, props.Text{Size: 9, Top: 10, Align: align.Right}),
		),
	)
}

func addItems(m core.Maroto, items []billing.InvoiceItem) {
	header := props.Text{Size: 9, Style: fontstyle.Bold}
	right := header
	right.Align = align.Right
	m.AddRow(8,
		text.NewCol(6, "Description", header),
		text.NewCol(2, "Quantity", right),
		text.NewCol(2, "Unit price", right),
		text.NewCol(2, "Amount", right),
	)
	m.AddRow(2, line.NewCol(12))

	cell := props.Text{Size: 9}
	number := props.Text{Size: 9, Align: align.Right}
	for _, item := range items {
		m.AddRow(7,
			text.NewCol(6, item.Description, cell),
			text.NewCol(2, item.Quantity.String(), number),
			text.NewCol(2, money(item.UnitPrice), number),
			text.NewCol(2, money(item.TotalPrice), number),
		)
	}
	m.AddRow(3, line.NewCol(12))
}

// summaryLine is one label/amount row at the foot of the invoice
type summaryLine struct {
	Label  string
	Amount string
	Strong bool
}

// summaryLines lists the statement rows in print order. The advance and
// additional payment rows only appear when their flags are set.
func summaryLines(s billing.StatementSummary) []summaryLine {
	lines := []summaryLine{{Label: "Subtotal", Amount: money(s.Subtotal)}}
	if s.ShowAdvance {
		lines = append(lines, summaryLine{Label: "Advance paid", Amount: "-" + money(s.AdvancePaid)})
	}
	if s.ShowAdditional {
		lines = append(lines, summaryLine{Label: "Payments received", Amount: "-" + money(s.AdditionalPayments)})
	}
	lines = append(lines,
		summaryLine{Label: fmt.Sprintf("Tax (%s%%)", s.TaxPercent.String()), Amount: money(s.TaxAmount)},
		summaryLine{Label: "Total payable", Amount: money(s.TotalPayable), Strong: true},
	)
	return lines
}

func addSummary(m core.Maroto, s billing.StatementSummary) {
	for _, l := range summaryLines(s) {
		style := props.Text{Size: 10, Align: align.Right}
		if l.Strong {
			style.Style = fontstyle.Bold
		}
		m.AddRow(7,
			col.New(7),
			text.NewCol(3, l.Label, style),
			text.NewCol(2, l.Amount, style),
		)
	}
}

func addPayments(m core.Maroto, payments []billing.Payment) {
	if len(payments) == 0 {
		return
	}
	m.AddRow(12, text.NewCol(12, "Payments", props.Text{Size: 10, Style: fontstyle.Bold, Top: 5}))
	for _, p := range payments {
		method := p.PaymentMethod
		if p.ReferenceNumber != "" {
			method += " (" + p.ReferenceNumber + ")"
		}
		m.AddRow(6,
			text.NewCol(3, p.PaymentDate.Format(dateLayout), props.Text{Size: 9}),
			text.NewCol(2, p.PaymentType.String(), props.Text{Size: 9}),
			text.NewCol(5, method, props.Text{Size: 9}),
			text.NewCol(2, money(p.Amount), props.Text{Size: 9, Align: align.Right}),
		)
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
