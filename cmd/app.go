package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/api"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/config"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultShutdownTimeout = 10 * time.Second

// App 应用程序
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
}

// Run 阻塞到收到 SIGINT/SIGTERM，然后优雅关闭
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	return a.Shutdown()
}

// Shutdown 关闭 HTTP 服务和数据库连接
func (a *App) Shutdown() error {
	timeout := a.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close database: %w", err))
			}
		}
	}

	logger.Info("Server stopped")
	return errors.Join(errs...)
}

// Handler 测试用
func (a *App) Handler() http.Handler {
	return a.server.Handler
}
