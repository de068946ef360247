package mocks

import (
	"context"
	"sync/atomic"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shared"
)

// MockUnitOfWork 不开启真实事务，只把 ctx 原样传给 fn。
// Writes made before a failing step are NOT undone; rollback behaviour is
// covered by the relational tests.
type MockUnitOfWork struct {
	calls  atomic.Int32
	failed atomic.Int32
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{}
}

func (u *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.calls.Add(1)
	if err := fn(ctx); err != nil {
		u.failed.Add(1)
		return err
	}
	return nil
}

// Calls 返回 Execute 被调用的次数
func (u *MockUnitOfWork) Calls() int { return int(u.calls.Load()) }

// Failed 返回 fn 返回错误的次数（真实实现中会回滚）
func (u *MockUnitOfWork) Failed() int { return int(u.failed.Load()) }

var _ shared.UnitOfWork = (*MockUnitOfWork)(nil)
