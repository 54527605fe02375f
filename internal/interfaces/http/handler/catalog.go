package handler

import (
	"github.com/gin-gonic/gin"
	appcatalog "github.com/pressworks/backend/internal/application/catalog"
)

// CatalogHandler handles product size and plate type endpoints
type CatalogHandler struct {
	BaseHandler
	sizeService  *appcatalog.ProductSizeService
	plateService *appcatalog.PlateTypeService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(sizeService *appcatalog.ProductSizeService, plateService *appcatalog.PlateTypeService) *CatalogHandler {
	return &CatalogHandler{sizeService: sizeService, plateService: plateService}
}

// CreateProductSize godoc
// @ID           createProductSize
// @Summary      Create a product size
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.CreateProductSizeRequest true "Product size"
// @Success      201 {object} APIResponse[appcatalog.ProductSizeResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /product-sizes [post]
func (h *CatalogHandler) CreateProductSize(c *gin.Context) {
	var req appcatalog.CreateProductSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	size, err := h.sizeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, size)
}

// GetProductSize godoc
// @ID           getProductSize
// @Summary      Get product size by ID
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product size ID" format(uuid)
// @Success      200 {object} APIResponse[appcatalog.ProductSizeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /product-sizes/{id} [get]
func (h *CatalogHandler) GetProductSize(c *gin.Context) {
	id, ok := h.parseID(c, "id", "product size")
	if !ok {
		return
	}

	size, err := h.sizeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, size)
}

// ListProductSizes godoc
// @ID           listProductSizes
// @Summary      List product sizes
// @Tags         catalog
// @Produce      json
// @Param        search query string false "Label contains"
// @Param        include_archived query bool false "Include archived sizes"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(500)
// @Success      200 {object} APIResponse[[]appcatalog.ProductSizeResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /product-sizes [get]
func (h *CatalogHandler) ListProductSizes(c *gin.Context) {
	var filter appcatalog.CatalogListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	list, err := h.sizeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, list.Items, list.Total, list.Page, list.PageSize)
}

// UpdateProductSize godoc
// @ID           updateProductSize
// @Summary      Update a product size
// @Description  A changed rate applies to order lines created afterwards
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Product size ID" format(uuid)
// @Param        request body appcatalog.UpdateProductSizeRequest true "Changes"
// @Success      200 {object} APIResponse[appcatalog.ProductSizeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /product-sizes/{id} [put]
func (h *CatalogHandler) UpdateProductSize(c *gin.Context) {
	id, ok := h.parseID(c, "id", "product size")
	if !ok {
		return
	}
	var req appcatalog.UpdateProductSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	size, err := h.sizeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, size)
}

// DeleteProductSize godoc
// @ID           deleteProductSize
// @Summary      Archive a product size
// @Tags         catalog
// @Param        id path string true "Product size ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /product-sizes/{id} [delete]
func (h *CatalogHandler) DeleteProductSize(c *gin.Context) {
	id, ok := h.parseID(c, "id", "product size")
	if !ok {
		return
	}

	if err := h.sizeService.Archive(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreatePlateType godoc
// @ID           createPlateType
// @Summary      Create a plate type
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.CreatePlateTypeRequest true "Plate type"
// @Success      201 {object} APIResponse[appcatalog.PlateTypeResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /plate-types [post]
func (h *CatalogHandler) CreatePlateType(c *gin.Context) {
	var req appcatalog.CreatePlateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	plate, err := h.plateService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, plate)
}

// GetPlateType godoc
// @ID           getPlateType
// @Summary      Get plate type by ID
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Plate type ID" format(uuid)
// @Success      200 {object} APIResponse[appcatalog.PlateTypeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /plate-types/{id} [get]
func (h *CatalogHandler) GetPlateType(c *gin.Context) {
	id, ok := h.parseID(c, "id", "plate type")
	if !ok {
		return
	}

	plate, err := h.plateService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plate)
}

// ListPlateTypes godoc
// @ID           listPlateTypes
// @Summary      List plate types
// @Tags         catalog
// @Produce      json
// @Param        search query string false "Name contains"
// @Param        include_archived query bool false "Include archived plate types"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(500)
// @Success      200 {object} APIResponse[[]appcatalog.PlateTypeResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /plate-types [get]
func (h *CatalogHandler) ListPlateTypes(c *gin.Context) {
	var filter appcatalog.CatalogListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	list, err := h.plateService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, list.Items, list.Total, list.Page, list.PageSize)
}

// UpdatePlateType godoc
// @ID           updatePlateType
// @Summary      Update a plate type
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Plate type ID" format(uuid)
// @Param        request body appcatalog.UpdatePlateTypeRequest true "Changes"
// @Success      200 {object} APIResponse[appcatalog.PlateTypeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /plate-types/{id} [put]
func (h *CatalogHandler) UpdatePlateType(c *gin.Context) {
	id, ok := h.parseID(c, "id", "plate type")
	if !ok {
		return
	}
	var req appcatalog.UpdatePlateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	plate, err := h.plateService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plate)
}

// DeletePlateType godoc
// @ID           deletePlateType
// @Summary      Archive a plate type
// @Tags         catalog
// @Param        id path string true "Plate type ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /plate-types/{id} [delete]
func (h *CatalogHandler) DeletePlateType(c *gin.Context) {
	id, ok := h.parseID(c, "id", "plate type")
	if !ok {
		return
	}

	if err := h.plateService.Archive(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
