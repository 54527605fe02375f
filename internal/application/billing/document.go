package billing

import (
	"context"
	"fmt"

	"github.com/pressworks/backend/internal/domain/billing"
	"github.com/pressworks/backend/internal/domain/partner"
)

// PDFContentType is the content type of rendered invoices
const PDFContentType = "application/pdf"

// InvoiceDocument is everything needed to draw an invoice
type InvoiceDocument struct {
	Invoice  *billing.Invoice
	Customer *partner.Customer
	Payments []billing.Payment
	Summary  billing.StatementSummary
}

// InvoiceRenderer turns an invoice into a printable document
type InvoiceRenderer interface {
	Render(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}

// DocumentStore archives rendered documents and returns their location
type DocumentStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// InvoiceDocumentKey is the storage key of an invoice's PDF, relative to the
// store's prefix
func InvoiceDocumentKey(invoiceNumber string) string {
	return fmt.Sprintf("invoices/%s.pdf", invoiceNumber)
}

// InvoiceFilename is the download name of an invoice's PDF
func InvoiceFilename(invoiceNumber string) string {
	return fmt.Sprintf("invoice-%s.pdf", invoiceNumber)
}

// RenderedInvoice is a rendered invoice PDF
type RenderedInvoice struct {
	Filename string
	Content  []byte
	// ArchiveLocation is set when the document was archived
	ArchiveLocation string
}
