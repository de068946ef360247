package shared

import "context"

// UnitOfWork 管理事务边界。
//
// Execute begins one transaction, hands fn a context carrying it, and
// commits when fn returns nil. Any error, or a panic, rolls back every
// write fn performed. Repositories called with that context join the
// transaction; called with any other context they run standalone.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
