package auth

import (
	"context"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"
)

type contextKey string

const operatorKey contextKey = "operator"

// WithOperator stores the authenticated operator in ctx.
func WithOperator(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, operatorKey, u)
}

// OperatorFromContext returns the operator set by the auth middleware.
func OperatorFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(operatorKey).(*models.User)
	return u, ok && u != nil
}

// Operator is OperatorFromContext with the system user as fallback.
func Operator(ctx context.Context) *models.User {
	if u, ok := OperatorFromContext(ctx); ok {
		return u
	}
	return models.SystemUser
}
