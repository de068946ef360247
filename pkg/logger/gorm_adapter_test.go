/*
Package logger - GORM logger adapter tests
*/
package logger

import (
	"context"
	"testing"
	"time"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLoggerAdapterLevels(t *testing.T) {
	testCases := []struct {
		name      string
		logLevel  gormlogger.LogLevel
		wantInfo  bool
		wantTrace bool
	}{
		{"Warn Level", gormlogger.Warn, false, false},
		{"Info Level", gormlogger.Info, true, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			defer ReplaceForTest(zap.New(core))()

			adapter := NewGormLoggerAdapter(tc.logLevel)
			assert.NotNil(t, adapter.LogMode(gormlogger.Info))

			adapter.Info(context.Background(), "test info message")
			adapter.Warn(context.Background(), "test warn message")
			adapter.Error(context.Background(), "test error message")
			adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
				return "SELECT * FROM shops", 1
			}, nil)

			assert.Equal(t, tc.wantInfo, logs.FilterMessage("test info message").Len() == 1)
			assert.Equal(t, 1, logs.FilterMessage("test warn message").Len())
			assert.Equal(t, 1, logs.FilterMessage("test error message").Len())

			traces := logs.FilterMessage("SQL query executed")
			assert.Equal(t, tc.wantTrace, traces.Len() == 1)
			if tc.wantTrace {
				assert.Equal(t, 1, traces.FilterFieldKey("sql").Len())
			}
		})
	}
}

func TestGormLoggerAdapterSlowQueryCarriesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer ReplaceForTest(zap.New(core))()

	adapter := NewGormLoggerAdapterWithConfig(gormlogger.Info, &GormLoggerConfig{
		SlowThreshold:             time.Millisecond,
		IgnoreRecordNotFoundError: true,
	})
	ctx := persistence.ContextWithRequestID(context.Background(), "test-request-123")

	adapter.Trace(ctx, time.Now().Add(-10*time.Millisecond), func() (string, int64) {
		return "SELECT * FROM payments", 1
	}, nil)
	adapter.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM shops WHERE url = 'missing'", 0
	}, gormlogger.ErrRecordNotFound)

	slow := logs.FilterMessage("Slow SQL query")
	if assert.Equal(t, 1, slow.Len()) {
		assert.Equal(t, "test-request-123", slow.All()[0].ContextMap()["request_id"])
	}
	assert.Zero(t, logs.FilterMessage("Database operation failed").Len())
}

func TestParseGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, ParseGormLevel("debug"))
	assert.Equal(t, gormlogger.Error, ParseGormLevel("error"))
	assert.Equal(t, gormlogger.Silent, ParseGormLevel("silent"))
	assert.Equal(t, gormlogger.Warn, ParseGormLevel("bogus"))
}
