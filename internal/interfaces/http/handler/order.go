package handler

import (
	"github.com/gin-gonic/gin"
	apptrade "github.com/pressworks/backend/internal/application/trade"
)

// OrderHandler handles order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *apptrade.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *apptrade.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create godoc
// @ID           createOrder
// @Summary      Create an order
// @Description  Creates an order with its line items. Each line captures the product size rate at creation time.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body apptrade.CreateOrderRequest true "Order"
// @Success      201 {object} APIResponse[apptrade.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req apptrade.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID godoc
// @ID           getOrder
// @Summary      Get order by ID
// @Description  Returns the order with its lines, totals and payment summary
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[apptrade.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List godoc
// @ID           listOrders
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        status query string false "Order status"
// @Param        uninvoiced_only query bool false "Only orders not yet on an invoice"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(500)
// @Success      200 {object} APIResponse[[]apptrade.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter apptrade.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	list, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, list.Items, list.Total, list.Page, list.PageSize)
}

// Update godoc
// @ID           updateOrder
// @Summary      Update an order
// @Description  Replaces the order header and all of its line items
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body apptrade.UpdateOrderRequest true "Order"
// @Success      200 {object} APIResponse[apptrade.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}
	var req apptrade.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus godoc
// @ID           updateOrderStatus
// @Summary      Set order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body apptrade.UpdateOrderStatusRequest true "New status"
// @Success      200 {object} APIResponse[apptrade.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}
	var req apptrade.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete godoc
// @ID           deleteOrder
// @Summary      Delete an order
// @Tags         orders
// @Param        id path string true "Order ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}

	if err := h.orderService.Archive(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
