package relational

import (
	"context"
	"fmt"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shared"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWork 一次 Execute 对应一个数据库事务。
// The transaction travels in the context; repositories pick it up via getDB.
type UnitOfWork struct {
	db          *gorm.DB
	retryConfig retry.Config
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:          db,
		retryConfig: retry.DefaultConfig,
	}
}

func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// Execute runs fn in a transaction, committing on nil and rolling back on
// error or panic. A call made while a transaction is already in ctx joins it.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if persistence.TxFromContext(ctx) != nil {
		return fn(ctx)
	}
	return retry.ExecuteWithRetry(ctx, u.retryConfig, func(ctx context.Context) error {
		return u.executeOnce(ctx, fn)
	})
}

func (u *UnitOfWork) executeOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(persistence.ContextWithTx(ctx, tx)); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
