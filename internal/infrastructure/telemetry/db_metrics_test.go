package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type meteredRow struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func newMetricsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&meteredRow{}))
	return db
}

func newManualMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return reader, provider
}

func sumsByOperation(t *testing.T, reader *sdkmetric.ManualReader, name string) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			data, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range data.DataPoints {
				op, _ := dp.Attributes.Value(AttrDBOperation)
				out[op.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestNewDBMetrics(t *testing.T) {
	_, provider := newManualMeter(t)

	t.Run("nil meter", func(t *testing.T) {
		_, err := NewDBMetrics(nil, nil, DBMetricsConfig{}, nil)
		assert.ErrorIs(t, err, ErrMeterNil)
	})

	t.Run("applies defaults", func(t *testing.T) {
		m, err := NewDBMetrics(provider.Meter("test"), nil, DBMetricsConfig{Enabled: true}, nil)
		require.NoError(t, err)
		assert.Equal(t, 200*time.Millisecond, m.config.SlowQueryThreshold)
		assert.NotNil(t, m.logger)
		m.Stop()
	})
}

func TestDBMetrics_RecordQuery(t *testing.T) {
	reader, provider := newManualMeter(t)
	m, err := NewDBMetrics(provider.Meter("test"), nil, DBMetricsConfig{
		Enabled:            true,
		SlowQueryThreshold: 50 * time.Millisecond,
	}, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordQuery(ctx, "select", "invoices", time.Millisecond)
	m.RecordQuery(ctx, "SELECT", "invoices", 2*time.Millisecond)
	m.RecordQuery(ctx, "INSERT", "payments", 100*time.Millisecond)
	m.RecordQuery(ctx, "", "", time.Millisecond)

	assert.Equal(t, map[string]int64{"SELECT": 2, "INSERT": 1, "UNKNOWN": 1},
		sumsByOperation(t, reader, "pressworks_db_query_total"))
	assert.Equal(t, int64(1), collectSums(t, reader)["pressworks_db_slow_query_total"])
}

func TestDBMetrics_PoolGauge(t *testing.T) {
	reader, provider := newManualMeter(t)
	db := newMetricsTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(4)

	m, err := NewDBMetrics(provider.Meter("test"), sqlDB, DBMetricsConfig{Enabled: true}, nil)
	require.NoError(t, err)
	defer m.Stop()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	states := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			if metric.Name != "pressworks_db_pool_connections" {
				continue
			}
			gauge, ok := metric.Data.(metricdata.Gauge[int64])
			require.True(t, ok)
			for _, dp := range gauge.DataPoints {
				state, _ := dp.Attributes.Value(AttrDBState)
				states[state.AsString()] = dp.Value
			}
		}
	}
	assert.Equal(t, int64(4), states["max"])
	assert.Contains(t, states, "idle")
	assert.Contains(t, states, "in_use")
}

func TestDBMetricsPlugin_CountsStatements(t *testing.T) {
	reader, provider := newManualMeter(t)
	db := newMetricsTestDB(t)

	m, err := NewDBMetrics(provider.Meter("test"), nil, DBMetricsConfig{Enabled: true}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Use(NewDBMetricsPlugin(m)))

	require.NoError(t, db.Create(&meteredRow{Name: "a"}).Error)
	require.NoError(t, db.Create(&meteredRow{Name: "b"}).Error)
	var rows []meteredRow
	require.NoError(t, db.Find(&rows).Error)
	require.NoError(t, db.Model(&meteredRow{}).Where("name = ?", "a").Update("name", "c").Error)
	require.NoError(t, db.Where("name = ?", "b").Delete(&meteredRow{}).Error)

	sums := sumsByOperation(t, reader, "pressworks_db_query_total")
	assert.Equal(t, int64(2), sums["INSERT"])
	assert.Equal(t, int64(1), sums["SELECT"])
	assert.Equal(t, int64(1), sums["UPDATE"])
	assert.Equal(t, int64(1), sums["DELETE"])
}

func TestRegisterDBMetrics_Disabled(t *testing.T) {
	db := newMetricsTestDB(t)

	m, err := RegisterDBMetrics(db, nil, DBMetricsConfig{Enabled: true}, nil)
	require.NoError(t, err)
	assert.Nil(t, m)

	mp, err := NewMeterProvider(context.Background(), MetricsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	m, err = RegisterDBMetrics(db, mp, DBMetricsConfig{Enabled: true}, nil)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestDetectOperationType(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"SELECT * FROM invoices", "SELECT"},
		{"  insert into payments values (1)", "INSERT"},
		{"UPDATE orders SET status = 'COMPLETED'", "UPDATE"},
		{"delete from invoice_items", "DELETE"},
		{"PRAGMA foreign_keys = ON", "OTHER"},
		{"", "OTHER"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, detectOperationType(tt.sql), tt.sql)
	}
}

func TestDBTracingPlugin_RegisterOtelGorm(t *testing.T) {
	t.Run("disabled registers nothing", func(t *testing.T) {
		db := newMetricsTestDB(t)
		plugin := NewDBTracingPlugin(DBTracingConfig{}, zap.NewNop())

		require.NoError(t, plugin.RegisterOtelGorm(db))
		_, ok := db.Config.Plugins["otelgorm"]
		assert.False(t, ok)
	})

	t.Run("enabled emits query spans", func(t *testing.T) {
		recorder := tracetest.NewSpanRecorder()
		tp := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
		previous := otel.GetTracerProvider()
		otel.SetTracerProvider(tp)
		t.Cleanup(func() { otel.SetTracerProvider(previous) })

		db := newMetricsTestDB(t)
		plugin := NewDBTracingPlugin(DBTracingConfig{Enabled: true, DBSystem: "sqlite"}, zap.NewNop())
		require.NoError(t, plugin.RegisterOtelGorm(db))

		var rows []meteredRow
		require.NoError(t, db.Find(&rows).Error)
		assert.NotEmpty(t, recorder.Ended())
	})
}
