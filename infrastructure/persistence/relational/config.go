/*
Package relational GORM 持久化实现：连接、Unit of Work 与各实体仓储。

Every repository resolves its *gorm.DB through getDB(ctx): inside
UnitOfWork.Execute that is the open transaction, otherwise the pool.
*/
package relational

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/config"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 10
	DefaultConnMaxLifetime = 10 * time.Minute
	DefaultConnMaxIdleTime = 5 * time.Minute
)

type Config struct {
	Driver          string
	Host            string
	Port            string
	Username        string
	Password        string
	Database        string // sqlite: 文件路径或 ":memory:"
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	LogLevel        string
}

func FromAppConfig(dc config.DatabaseConfig) *Config {
	return &Config{
		Driver:          dc.Type,
		Host:            dc.Host,
		Port:            dc.Port,
		Username:        dc.Username,
		Password:        dc.Password,
		Database:        dc.Database,
		MaxOpenConns:    dc.MaxOpenConns,
		MaxIdleConns:    dc.MaxIdleConns,
		ConnMaxLifetime: dc.ConnMaxLifetime,
		LogLevel:        dc.LogLevel,
	}
}

func (c *Config) DSN() string {
	switch c.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			c.Host, c.Port, c.Username, c.Password, c.Database)
	case DriverSQLite:
		if strings.Contains(c.Database, "?") {
			return c.Database + "&_foreign_keys=on"
		}
		return c.Database + "?_foreign_keys=on"
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&collation=utf8mb4_unicode_ci&readTimeout=10s&writeTimeout=10s",
			c.Username, c.Password, c.Host, c.Port, c.Database)
	}
}

func (c *Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case DriverMySQL, "":
		return mysql.Open(c.DSN()), nil
	case DriverPostgres:
		return postgres.Open(c.DSN()), nil
	case DriverSQLite:
		return sqlite.Open(c.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

func (c *Config) applyDefaults() {
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = DefaultMaxOpenConns
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = DefaultMaxIdleConns
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		c.MaxIdleConns = c.MaxOpenConns
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	if c.ConnMaxIdleTime <= 0 {
		c.ConnMaxIdleTime = DefaultConnMaxIdleTime
	}
	// sqlite 单写者
	if c.Driver == DriverSQLite {
		c.MaxOpenConns = 1
		c.MaxIdleConns = 1
	}
}

func (c *Config) Connect() (*gorm.DB, error) {
	c.applyDefaults()

	dialector, err := c.dialector()
	if err != nil {
		return nil, err
	}
	db, err := Open(dialector, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(c.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(c.ConnMaxIdleTime)

	logger.Info("Database connected",
		zap.String("driver", c.Driver),
		zap.String("host", c.Host),
		zap.String("database", c.Database),
		zap.Int("max_open_conns", c.MaxOpenConns),
		zap.Int("max_idle_conns", c.MaxIdleConns),
		zap.Duration("conn_max_lifetime", c.ConnMaxLifetime),
	)

	return db, nil
}

// Open 打开 GORM 连接，错误翻译开启（ErrDuplicatedKey / ErrForeignKeyViolated）
func Open(dialector gorm.Dialector, logLevel string) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLoggerAdapter(logger.ParseGormLevel(logLevel)),
		TranslateError: true,
	})
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
