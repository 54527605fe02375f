package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pressworks/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	invoices := NewDomainGroup("invoices", "/invoices")
	invoices.GET("/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})
	r.Use(func(c *gin.Context) {
		c.Header("X-Api", "1")
		c.Next()
	})
	r.Register(invoices).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/invoices/42")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())
	assert.Equal(t, "1", w.Header().Get("X-Api"))

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/invoices/42").Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("payments", "/payments")
		assert.Equal(t, "payments", g.Name())
		assert.Equal(t, "/payments", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("orders", "/orders")
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		g.GET("", ok).POST("", ok).PUT("/:id", ok).PATCH("/:id/status", ok).DELETE("/:id", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		for method, path := range map[string]string{
			http.MethodGet:    "/api/v1/orders",
			http.MethodPost:   "/api/v1/orders",
			http.MethodPut:    "/api/v1/orders/1",
			http.MethodPatch:  "/api/v1/orders/1/status",
			http.MethodDelete: "/api/v1/orders/1",
		} {
			w := serve(engine, method, path)
			assert.Equal(t, http.StatusOK, w.Code, method)
			assert.Equal(t, method, w.Body.String())
		}
	})

	t.Run("group middleware and subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("catalog", "/catalog")
		g.Use(func(c *gin.Context) {
			c.Header("X-Group", "catalog")
			c.Next()
		})
		g.Group("sizes", "/sizes").GET("", func(c *gin.Context) { c.String(http.StatusOK, "sizes") })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/catalog/sizes")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "sizes", w.Body.String())
		assert.Equal(t, "catalog", w.Header().Get("X-Group"))
	})
}

func TestAPIGroups_Routes(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Register(APIGroups(Handlers{
		Customers: &handler.CustomerHandler{},
		Catalog:   &handler.CatalogHandler{},
		Orders:    &handler.OrderHandler{},
		Invoices:  &handler.InvoiceHandler{},
		Payments:  &handler.PaymentHandler{},
	})...).Setup()

	var routes []string
	for _, route := range engine.Routes() {
		routes = append(routes, route.Method+" "+route.Path)
	}
	sort.Strings(routes)

	for _, want := range []string{
		"POST /api/v1/invoices/generate",
		"GET /api/v1/invoices/:id/pdf",
		"PATCH /api/v1/invoices/:id/status",
		"DELETE /api/v1/invoices/:id",
		"POST /api/v1/payments",
		"PUT /api/v1/payments/:id",
		"PATCH /api/v1/orders/:id/status",
		"GET /api/v1/customers",
		"GET /api/v1/product-sizes/:id",
		"DELETE /api/v1/plate-types/:id",
	} {
		assert.Contains(t, routes, want)
	}
	assert.Len(t, routes, 32)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestRegisterSystemRoutes(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		engine := gin.New()
		RegisterSystemRoutes(engine, SystemConfig{DB: pingerFunc(func(context.Context) error { return nil })})

		w := serve(engine, http.MethodGet, "/health")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"healthy"`)
		assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/swagger/index.html").Code)
	})

	t.Run("database down", func(t *testing.T) {
		engine := gin.New()
		RegisterSystemRoutes(engine, SystemConfig{DB: pingerFunc(func(context.Context) error {
			return errors.New("connection refused")
		})})

		w := serve(engine, http.MethodGet, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"error"`)
	})

	t.Run("swagger enabled", func(t *testing.T) {
		engine := gin.New()
		RegisterSystemRoutes(engine, SystemConfig{
			DB:             pingerFunc(func(context.Context) error { return nil }),
			SwaggerEnabled: true,
		})

		w := serve(engine, http.MethodGet, "/swagger/doc.json")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "/invoices/generate")
	})
}
