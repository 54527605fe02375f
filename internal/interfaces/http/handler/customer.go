package handler

import (
	"github.com/gin-gonic/gin"
	apppartner "github.com/pressworks/backend/internal/application/partner"
)

// CustomerHandler handles customer API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *apppartner.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *apppartner.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create godoc
// @ID           createCustomer
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body apppartner.CreateCustomerRequest true "Customer"
// @Success      201 {object} APIResponse[apppartner.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req apppartner.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// GetByID godoc
// @ID           getCustomer
// @Summary      Get customer by ID
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[apppartner.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "customer")
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// List godoc
// @ID           listCustomers
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Param        search query string false "Name contains"
// @Param        include_archived query bool false "Include archived customers"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(500)
// @Success      200 {object} APIResponse[[]apppartner.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var filter apppartner.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	list, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, list.Items, list.Total, list.Page, list.PageSize)
}

// Update godoc
// @ID           updateCustomer
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Param        request body apppartner.UpdateCustomerRequest true "Changes"
// @Success      200 {object} APIResponse[apppartner.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "customer")
	if !ok {
		return
	}
	var req apppartner.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Delete godoc
// @ID           deleteCustomer
// @Summary      Archive a customer
// @Tags         customers
// @Param        id path string true "Customer ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "customer")
	if !ok {
		return
	}

	if err := h.customerService.Archive(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
