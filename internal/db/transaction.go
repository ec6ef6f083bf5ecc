package db

import "context"

// TransactionManager runs a unit of work atomically. Implementations decide
// whether a real database transaction backs it.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(sessCtx context.Context) (interface{}, error)) (interface{}, error)
}

// InTransaction is a typed wrapper around TransactionManager.WithTransaction.
func InTransaction[T any](ctx context.Context, tm TransactionManager, fn func(sessCtx context.Context) (T, error)) (T, error) {
	var zero T
	res, err := tm.WithTransaction(ctx, func(sessCtx context.Context) (interface{}, error) {
		return fn(sessCtx)
	})
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}
	return res.(T), nil
}
