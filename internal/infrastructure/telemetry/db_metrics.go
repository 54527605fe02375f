package telemetry

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Database metric attribute keys
var (
	AttrDBOperation = attribute.Key("db_operation")
	AttrDBTable     = attribute.Key("db_table")
	AttrDBState     = attribute.Key("db_state")
)

// DBDurationBuckets are the histogram boundaries for query latency, in seconds
var DBDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// DBMetricsConfig holds configuration for database metrics collection.
type DBMetricsConfig struct {
	Enabled bool
	// SlowQueryThreshold defines the threshold for slow query detection (default: 200ms).
	SlowQueryThreshold time.Duration
}

// DBMetrics holds the query instruments and the pool gauge registration.
type DBMetrics struct {
	queryTotal     *Counter
	queryDuration  metric.Float64Histogram
	slowQueryTotal *Counter
	registration   metric.Registration

	config DBMetricsConfig
	logger *zap.Logger
}

// NewDBMetrics creates the instruments. Pool statistics are observed from
// sqlDB on every collection; pass nil to skip them.
func NewDBMetrics(meter metric.Meter, sqlDB *sql.DB, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThreshold == 0 {
		cfg.SlowQueryThreshold = 200 * time.Millisecond
	}

	m := &DBMetrics{config: cfg, logger: logger}
	var err error
	if m.queryTotal, err = NewCounter(meter, "pressworks_db_query_total", "Database queries by operation", "{query}"); err != nil {
		return nil, err
	}
	if m.slowQueryTotal, err = NewCounter(meter, "pressworks_db_slow_query_total", "Database queries slower than the threshold", "{query}"); err != nil {
		return nil, err
	}
	m.queryDuration, err = meter.Float64Histogram(
		"pressworks_db_query_duration_seconds",
		metric.WithDescription("Database query latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DBDurationBuckets...),
	)
	if err != nil {
		return nil, err
	}

	if sqlDB != nil {
		connections, err := meter.Int64ObservableGauge(
			"pressworks_db_pool_connections",
			metric.WithDescription("Connections in the pool by state"),
			metric.WithUnit("{connection}"),
		)
		if err != nil {
			return nil, err
		}
		m.registration, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
			stats := sqlDB.Stats()
			o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
			o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
			o.ObserveInt64(connections, int64(stats.MaxOpenConnections), metric.WithAttributes(AttrDBState.String("max")))
			return nil
		}, connections)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordQuery records one finished query
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, duration time.Duration) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}
	m.queryTotal.Inc(ctx, AttrDBOperation.String(operation))
	m.queryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(AttrDBOperation.String(operation)))

	if duration > m.config.SlowQueryThreshold {
		if table == "" {
			table = "unknown"
		}
		m.slowQueryTotal.Inc(ctx, AttrDBTable.String(table))
		m.logger.Debug("Slow query",
			zap.String("operation", operation),
			zap.String("table", table),
			zap.Duration("duration", duration),
		)
	}
}

// Stop unregisters the pool gauge callback
func (m *DBMetrics) Stop() {
	if m.registration != nil {
		if err := m.registration.Unregister(); err != nil {
			m.logger.Warn("Failed to unregister pool metrics", zap.Error(err))
		}
	}
}

// DBMetricsPlugin is a GORM plugin that times every statement.
type DBMetricsPlugin struct {
	metrics *DBMetrics
}

// NewDBMetricsPlugin creates a new GORM plugin for database metrics.
func NewDBMetricsPlugin(metrics *DBMetrics) *DBMetricsPlugin {
	return &DBMetricsPlugin{metrics: metrics}
}

// Name returns the plugin name.
func (p *DBMetricsPlugin) Name() string {
	return "db_metrics"
}

type dbMetricsContextKey struct{}

// Initialize registers before/after callbacks on every processor.
func (p *DBMetricsPlugin) Initialize(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		ctx := tx.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		tx.Statement.Context = context.WithValue(ctx, dbMetricsContextKey{}, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			op := operation
			if op == "" {
				op = detectOperationType(tx.Statement.SQL.String())
			}
			p.record(tx, op)
		}
	}

	cb := db.Callback()
	registrations := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("db_metrics:before_create", before) },
		func() error { return cb.Query().Before("gorm:query").Register("db_metrics:before_query", before) },
		func() error { return cb.Update().Before("gorm:update").Register("db_metrics:before_update", before) },
		func() error { return cb.Delete().Before("gorm:delete").Register("db_metrics:before_delete", before) },
		func() error { return cb.Row().Before("gorm:row").Register("db_metrics:before_row", before) },
		func() error { return cb.Raw().Before("gorm:raw").Register("db_metrics:before_raw", before) },
		func() error {
			return cb.Create().After("gorm:create").Register("db_metrics:after_create", after("INSERT"))
		},
		func() error {
			return cb.Query().After("gorm:query").Register("db_metrics:after_query", after("SELECT"))
		},
		func() error {
			return cb.Update().After("gorm:update").Register("db_metrics:after_update", after("UPDATE"))
		},
		func() error {
			return cb.Delete().After("gorm:delete").Register("db_metrics:after_delete", after("DELETE"))
		},
		func() error { return cb.Row().After("gorm:row").Register("db_metrics:after_row", after("")) },
		func() error { return cb.Raw().After("gorm:raw").Register("db_metrics:after_raw", after("")) },
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

func (p *DBMetricsPlugin) record(tx *gorm.DB, operation string) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	start, ok := ctx.Value(dbMetricsContextKey{}).(time.Time)
	if !ok {
		return
	}
	p.metrics.RecordQuery(ctx, operation, tx.Statement.Table, time.Since(start))
}

func detectOperationType(sql string) string {
	sql = strings.TrimSpace(strings.ToUpper(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}

// RegisterDBMetrics attaches query and pool metrics to db. It returns nil
// when metrics are disabled.
func RegisterDBMetrics(db *gorm.DB, meterProvider *MeterProvider, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if !cfg.Enabled || meterProvider == nil || !meterProvider.IsEnabled() {
		return nil, nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	metrics, err := NewDBMetrics(meterProvider.Meter("pressworks.db"), sqlDB, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := db.Use(NewDBMetricsPlugin(metrics)); err != nil {
		return nil, err
	}

	metrics.logger.Info("Database metrics registered", zap.Duration("slow_query_threshold", metrics.config.SlowQueryThreshold))
	return metrics, nil
}
