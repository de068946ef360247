package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func fastConfig() Config {
	c := DefaultConfig
	c.InitialDelay = time.Millisecond
	c.MaxDelay = 2 * time.Millisecond
	c.JitterEnabled = false
	return c
}

func TestIsRetryableError(t *testing.T) {
	cfg := fastConfig()

	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql deadlock", &mysqlDriver.MySQLError{Number: 1213}, true},
		{"mysql lock timeout", fmt.Errorf("update: %w", &mysqlDriver.MySQLError{Number: 1205}), true},
		{"mysql duplicate", &mysqlDriver.MySQLError{Number: 1062}, false},
		{"pg deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"pg serialization", &pgconn.PgError{Code: "40001"}, true},
		{"pg unique", &pgconn.PgError{Code: "23505"}, false},
		{"sqlite busy", errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		{"duplicated key", gorm.ErrDuplicatedKey, false},
		{"canceled", context.Canceled, false},
		{"plain", errors.New("boom"), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsRetryableError(tc.err, cfg))
		})
	}

	cfg.RetryOnDeadlock = false
	assert.False(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1213}, cfg))
}

func TestExecuteWithRetry(t *testing.T) {
	cfg := fastConfig()

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := ExecuteWithRetry(context.Background(), cfg, func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return &mysqlDriver.MySQLError{Number: 1213}
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non retryable", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := ExecuteWithRetry(context.Background(), cfg, func(ctx context.Context) error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := ExecuteWithRetry(context.Background(), cfg, func(ctx context.Context) error {
			calls++
			return &pgconn.PgError{Code: "40001"}
		})
		assert.Error(t, err)
		assert.Equal(t, cfg.MaxAttempts, calls)
	})

	t.Run("disabled runs once", func(t *testing.T) {
		disabled := cfg
		disabled.Enabled = false
		calls := 0
		_ = ExecuteWithRetry(context.Background(), disabled, func(ctx context.Context) error {
			calls++
			return &mysqlDriver.MySQLError{Number: 1213}
		})
		assert.Equal(t, 1, calls)
	})
}

func TestExponentialBackoff(t *testing.T) {
	cfg := Config{InitialDelay: 10 * time.Millisecond, MaxDelay: 30 * time.Millisecond, BackoffFactor: 2}

	assert.Equal(t, time.Duration(0), ExponentialBackoffWithJitter(0, cfg))
	assert.Equal(t, 10*time.Millisecond, ExponentialBackoffWithJitter(1, cfg))
	assert.Equal(t, 20*time.Millisecond, ExponentialBackoffWithJitter(2, cfg))
	assert.Equal(t, 30*time.Millisecond, ExponentialBackoffWithJitter(5, cfg))
}
