package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	appbilling "github.com/pressworks/backend/internal/application/billing"
)

// ArchiveLocationHeader reports where an archived PDF was stored
const ArchiveLocationHeader = "X-Archive-Location"

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *appbilling.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *appbilling.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Generate godoc
// @ID           generateInvoice
// @Summary      Generate an invoice
// @Description  Invoice a customer's uninvoiced orders. Orders of other customers, already invoiced or archived orders are skipped; if none remain the request fails with NO_ELIGIBLE_ORDERS.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body appbilling.GenerateInvoiceRequest true "Generation request"
// @Success      201 {object} APIResponse[appbilling.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /invoices/generate [post]
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req appbilling.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	invoice, err := h.invoiceService.Generate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

// GetByID godoc
// @ID           getInvoice
// @Summary      Get invoice by ID
// @Description  Returns the invoice with its items, orders, payments and payment summary
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[appbilling.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// List godoc
// @ID           listInvoices
// @Summary      List invoices
// @Description  Paginated list of live invoices, newest first
// @Tags         invoices
// @Produce      json
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        status query string false "Invoice status" Enums(PENDING, PAID, CANCELLED)
// @Param        search query string false "Invoice number prefix"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(500)
// @Success      200 {object} APIResponse[[]appbilling.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter appbilling.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	list, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, list.Items, list.Total, list.Page, list.PageSize)
}

// UpdateStatus godoc
// @ID           updateInvoiceStatus
// @Summary      Set invoice status
// @Description  Sets PENDING, PAID or CANCELLED explicitly
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body appbilling.UpdateInvoiceStatusRequest true "New status"
// @Success      200 {object} APIResponse[InvoiceStatusData]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id", "invoice")
	if !ok {
		return
	}
	var req appbilling.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.invoiceService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete godoc
// @ID           deleteInvoice
// @Summary      Delete an invoice
// @Description  Archives the invoice and releases its orders and payments so they can be invoiced again
// @Tags         invoices
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "invoice")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DownloadPDF godoc
// @ID           downloadInvoicePDF
// @Summary      Download invoice PDF
// @Description  Renders the invoice as a PDF. With archive=true the document is also stored and its location returned in the X-Archive-Location header.
// @Tags         invoices
// @Produce      application/pdf
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        archive query bool false "Store the rendered PDF"
// @Success      200 {file} file
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id, ok := h.parseID(c, "id", "invoice")
	if !ok {
		return
	}
	archive := false
	if raw := c.Query("archive"); raw != "" {
		var err error
		if archive, err = strconv.ParseBool(raw); err != nil {
			h.BadRequest(c, "archive must be true or false")
			return
		}
	}

	rendered, err := h.invoiceService.RenderPDF(c.Request.Context(), id, archive)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, rendered.Filename))
	if rendered.ArchiveLocation != "" {
		c.Header(ArchiveLocationHeader, rendered.ArchiveLocation)
	}
	c.Data(http.StatusOK, appbilling.PDFContentType, rendered.Content)
}
