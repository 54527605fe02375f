package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	t.Run("nil config falls back to defaults", func(t *testing.T) {
		l, err := New(nil)
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		l, err := New(&Config{Level: "debug", Format: "json", Output: path})
		require.NoError(t, err)

		l.Info("invoice generated", zap.String("invoice_number", "00000001"))
		require.NoError(t, l.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"invoice_number":"00000001"`)
		assert.Contains(t, string(data), `"level":"info"`)
	})

	t.Run("unwritable file is an error", func(t *testing.T) {
		_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "app.log")})
		assert.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ParseLevel(in))
		})
	}
}

func TestContextLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	t.Run("missing logger is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() { L(context.Background()).Info("dropped") })
		assert.Empty(t, GetRequestID(context.Background()))
	})

	t.Run("request id and trace ids are attached", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), base, "req-1")
		spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    trace.TraceID{1},
			SpanID:     trace.SpanID{2},
			TraceFlags: trace.FlagsSampled,
		})
		ctx = trace.ContextWithSpanContext(ctx, spanCtx)

		L(ctx).Info("hello")

		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, spanCtx.TraceID().String(), fields["trace_id"])
		assert.Equal(t, spanCtx.SpanID().String(), fields["span_id"])
		assert.Equal(t, "req-1", GetRequestID(ctx))
	})
}

func TestGormLogger_Trace(t *testing.T) {
	newLogger := func(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
		core, logs := observer.New(zapcore.DebugLevel)
		return NewGormLogger(zap.New(core), level, 100*time.Millisecond), logs
	}
	query := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("errors are logged", func(t *testing.T) {
		l, logs := newLogger(gormlogger.Warn)
		l.Trace(context.Background(), time.Now(), query, errors.New("boom"))
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "sql error", logs.All()[0].Message)
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		l, logs := newLogger(gormlogger.Info)
		l.Trace(context.Background(), time.Now(), query, gormlogger.ErrRecordNotFound)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "sql", logs.All()[0].Message)
	})

	t.Run("slow statements warn", func(t *testing.T) {
		l, logs := newLogger(gormlogger.Warn)
		l.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		l, logs := newLogger(gormlogger.Silent)
		l.Trace(context.Background(), time.Now(), query, errors.New("boom"))
		assert.Zero(t, logs.Len())
	})

	t.Run("log mode returns a copy", func(t *testing.T) {
		l, _ := newLogger(gormlogger.Warn)
		quiet := l.LogMode(gormlogger.Silent).(*GormLogger)
		assert.Equal(t, gormlogger.Warn, l.logLevel)
		assert.Equal(t, gormlogger.Silent, quiet.logLevel)
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("anything"))
}
