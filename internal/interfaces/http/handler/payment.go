package handler

import (
	"github.com/gin-gonic/gin"
	appbilling "github.com/pressworks/backend/internal/application/billing"
)

// PaymentHandler handles payment API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *appbilling.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *appbilling.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create godoc
// @ID           recordPayment
// @Summary      Record a payment
// @Description  Records a payment against an order, an invoice or both, then recomputes the affected statuses. The response carries the target's payment summary.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body appbilling.RecordPaymentRequest true "Payment"
// @Success      201 {object} APIResponse[appbilling.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req appbilling.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	payment, err := h.paymentService.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// GetByID godoc
// @ID           getPayment
// @Summary      Get payment by ID
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[appbilling.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "payment")
	if !ok {
		return
	}

	payment, err := h.paymentService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// List godoc
// @ID           listPayments
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        invoice_id query string false "Invoice ID" format(uuid)
// @Param        order_id query string false "Order ID" format(uuid)
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(500)
// @Success      200 {object} APIResponse[[]appbilling.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var filter appbilling.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	list, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, list.Items, list.Total, list.Page, list.PageSize)
}

// Update godoc
// @ID           updatePayment
// @Summary      Update a payment
// @Description  Absent fields keep their values. Changing the targets recomputes both the old and the new ones.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Param        request body appbilling.UpdatePaymentRequest true "Changes"
// @Success      200 {object} APIResponse[appbilling.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /payments/{id} [put]
func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "payment")
	if !ok {
		return
	}
	var req appbilling.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	payment, err := h.paymentService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// Delete godoc
// @ID           deletePayment
// @Summary      Delete a payment
// @Description  Archives the payment and recomputes the statuses of its targets
// @Tags         payments
// @Param        id path string true "Payment ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "payment")
	if !ok {
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
