package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appbilling "github.com/pressworks/backend/internal/application/billing"
	appcatalog "github.com/pressworks/backend/internal/application/catalog"
	apppartner "github.com/pressworks/backend/internal/application/partner"
	apptrade "github.com/pressworks/backend/internal/application/trade"
	"github.com/pressworks/backend/internal/infrastructure/config"
	"github.com/pressworks/backend/internal/infrastructure/logger"
	"github.com/pressworks/backend/internal/infrastructure/pdf"
	"github.com/pressworks/backend/internal/infrastructure/persistence"
	"github.com/pressworks/backend/internal/infrastructure/storage"
	"github.com/pressworks/backend/internal/infrastructure/telemetry"
	"github.com/pressworks/backend/internal/interfaces/http/handler"
	"github.com/pressworks/backend/internal/interfaces/http/middleware"
	"github.com/pressworks/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			Pressworks Billing API
//	@version		1.0
//	@description	Order, invoice and payment reconciliation for a printing press

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry providers. Each one is a no-op when disabled.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log := telemetry.BridgeLogger(baseLog, loggerProvider)
	defer func() {
		_ = log.Sync()
	}()

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.PyroscopeEndpoint,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to link spans to profiles", zap.Error(err))
		}
	}

	log.Info("Starting Pressworks backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel), cfg.Database.SlowThreshold)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBSystem:   cfg.Database.Driver,
	}, log).RegisterOtelGorm(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, telemetry.DBMetricsConfig{
		Enabled:            cfg.Telemetry.MetricsEnabled,
		SlowQueryThreshold: cfg.Database.SlowThreshold,
	}, log)
	if err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		defer dbMetrics.Stop()
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(ctx); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
		log.Info("Database schema migrated")
	}

	// Billing services
	scope := persistence.NewGormTransactionScope(db.DB)
	repos := persistence.NewBillingRepositories(db.DB)

	billingOpts := []appbilling.Option{
		appbilling.WithLogger(log),
		appbilling.WithSettings(appbilling.Settings{
			NumberRetryAttempts:  cfg.Billing.NumberRetryAttempts,
			NumberRetryInterval:  cfg.Billing.NumberRetryInterval,
			DefaultDueDays:       cfg.Billing.DefaultDueDays,
			DefaultPaymentMethod: cfg.Billing.DefaultPaymentMethod,
		}),
		appbilling.WithRenderer(pdf.NewInvoiceRenderer(pdf.WithIssuer(cfg.App.Name))),
	}
	if meterProvider.IsEnabled() {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:  meterProvider.Meter("pressworks.billing"),
			Logger: log,
		})
		if err != nil {
			log.Fatal("Failed to create business metrics", zap.Error(err))
		}
		billingOpts = append(billingOpts, appbilling.WithMetrics(businessMetrics))
	}
	if cfg.Storage.Enabled {
		store, err := storage.NewS3DocumentStore(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to create document store", zap.Error(err))
		}
		if err := store.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare document bucket", zap.Error(err))
		}
		billingOpts = append(billingOpts, appbilling.WithDocumentStore(store))
		log.Info("Invoice archiving enabled", zap.String("bucket", store.Bucket()))
	}

	handlers := router.Handlers{
		Customers: handler.NewCustomerHandler(apppartner.NewCustomerService(repos.Customers)),
		Catalog: handler.NewCatalogHandler(
			appcatalog.NewProductSizeService(repos.ProductSizes),
			appcatalog.NewPlateTypeService(repos.PlateTypes),
		),
		Orders:   handler.NewOrderHandler(apptrade.NewOrderService(scope, repos, log)),
		Invoices: handler.NewInvoiceHandler(appbilling.NewInvoiceService(scope, repos, billingOpts...)),
		Payments: handler.NewPaymentHandler(appbilling.NewPaymentService(scope, repos, billingOpts...)),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()

	// Middleware order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Tracing - Server span, then error marking once handlers finish
	// 4. Logger - Log requests with the trace context
	// 5. Metrics and profiling labels
	// 6. Security headers, CORS and the body limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))
	if meterProvider.IsEnabled() {
		engine.Use(middleware.HTTPMetrics(meterProvider.Meter("pressworks.http")))
	}
	if profiler.IsEnabled() {
		engine.Use(middleware.ProfilingWithConfig(middleware.DefaultProfilingConfig()))
	}
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	router.RegisterSystemRoutes(engine, router.SystemConfig{
		DB:             db,
		SwaggerEnabled: cfg.HTTP.SwaggerEnabled,
	})
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(router.APIGroups(handlers)...).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Error stopping profiler", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down tracer provider", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down meter provider", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
