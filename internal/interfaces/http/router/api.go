package router

import (
	"github.com/pressworks/backend/internal/interfaces/http/handler"
)

// Handlers are the resource handlers served under the versioned API
type Handlers struct {
	Customers *handler.CustomerHandler
	Catalog   *handler.CatalogHandler
	Orders    *handler.OrderHandler
	Invoices  *handler.InvoiceHandler
	Payments  *handler.PaymentHandler
}

// APIGroups builds one DomainGroup per resource
func APIGroups(h Handlers) []RouteRegistrar {
	customers := NewDomainGroup("customers", "/customers")
	customers.POST("", h.Customers.Create)
	customers.GET("", h.Customers.List)
	customers.GET("/:id", h.Customers.GetByID)
	customers.PUT("/:id", h.Customers.Update)
	customers.DELETE("/:id", h.Customers.Delete)

	sizes := NewDomainGroup("product-sizes", "/product-sizes")
	sizes.POST("", h.Catalog.CreateProductSize)
	sizes.GET("", h.Catalog.ListProductSizes)
	sizes.GET("/:id", h.Catalog.GetProductSize)
	sizes.PUT("/:id", h.Catalog.UpdateProductSize)
	sizes.DELETE("/:id", h.Catalog.DeleteProductSize)

	plates := NewDomainGroup("plate-types", "/plate-types")
	plates.POST("", h.Catalog.CreatePlateType)
	plates.GET("", h.Catalog.ListPlateTypes)
	plates.GET("/:id", h.Catalog.GetPlateType)
	plates.PUT("/:id", h.Catalog.UpdatePlateType)
	plates.DELETE("/:id", h.Catalog.DeletePlateType)

	orders := NewDomainGroup("orders", "/orders")
	orders.POST("", h.Orders.Create)
	orders.GET("", h.Orders.List)
	orders.GET("/:id", h.Orders.GetByID)
	orders.PUT("/:id", h.Orders.Update)
	orders.PATCH("/:id/status", h.Orders.UpdateStatus)
	orders.DELETE("/:id", h.Orders.Delete)

	invoices := NewDomainGroup("invoices", "/invoices")
	invoices.POST("/generate", h.Invoices.Generate)
	invoices.GET("", h.Invoices.List)
	invoices.GET("/:id", h.Invoices.GetByID)
	invoices.GET("/:id/pdf", h.Invoices.DownloadPDF)
	invoices.PATCH("/:id/status", h.Invoices.UpdateStatus)
	invoices.DELETE("/:id", h.Invoices.Delete)

	payments := NewDomainGroup("payments", "/payments")
	payments.POST("", h.Payments.Create)
	payments.GET("", h.Payments.List)
	payments.GET("/:id", h.Payments.GetByID)
	payments.PUT("/:id", h.Payments.Update)
	payments.DELETE("/:id", h.Payments.Delete)

	return []RouteRegistrar{customers, sizes, plates, orders, invoices, payments}
}
