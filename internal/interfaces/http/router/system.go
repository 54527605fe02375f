package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressworks/backend/internal/infrastructure/logger"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/pressworks/backend/docs"
)

// healthCheckTimeout bounds the database ping of a health check
const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemConfig controls the unversioned system routes
type SystemConfig struct {
	DB             Pinger
	SwaggerEnabled bool
}

// RegisterSystemRoutes mounts /health and, when enabled, /swagger
func RegisterSystemRoutes(engine *gin.Engine, cfg SystemConfig) {
	engine.GET("/health", HealthHandler(cfg.DB))
	if cfg.SwaggerEnabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// HealthHandler returns a handler for health check endpoints
func HealthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
