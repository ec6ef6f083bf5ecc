package db

import "context"

// NoOpTransactionManager runs fn directly. Used in dev and test modes where
// MongoDB usually runs without a replica set.
type NoOpTransactionManager struct{}

func NewNoOpTransactionManager() TransactionManager {
	return &NoOpTransactionManager{}
}

func (n *NoOpTransactionManager) WithTransaction(ctx context.Context, fn func(sessCtx context.Context) (interface{}, error)) (interface{}, error) {
	return fn(ctx)
}
