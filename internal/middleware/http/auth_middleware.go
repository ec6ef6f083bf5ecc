package http

import (
	"net/http"
	"strings"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/auth"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/conf"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/service"
	"github.com/thirusolai/gym-backend-h4fitness2/pkg/jwt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AuthMiddleware defines the function signature for our authentication middleware.
type AuthMiddleware func(http.Handler) http.Handler

// NewAuthMiddleware validates the bearer token and stores the operator it
// names in the request context. With jwt.disabled every request runs as the
// system user.
func NewAuthMiddleware(cfg *conf.JwtConfig, manager *jwt.Manager, logger *zap.Logger) AuthMiddleware {
	logger = logger.Named("AuthMiddleware")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Disabled || manager == nil {
				next.ServeHTTP(w, r.WithContext(auth.WithOperator(r.Context(), models.SystemUser)))
				return
			}

			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				service.WriteHttpError(w, http.StatusUnauthorized, "Unauthorized: missing bearer token")
				return
			}

			claims, err := manager.Parse(strings.TrimSpace(token))
			if err != nil {
				logger.Debug("Rejected token", zap.Error(err))
				service.WriteHttpError(w, http.StatusUnauthorized, "Unauthorized: "+err.Error())
				return
			}

			operator, ok := operatorFromClaims(claims)
			if !ok {
				service.WriteHttpError(w, http.StatusUnauthorized, "Unauthorized: token carries no user")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithOperator(r.Context(), operator)))
		})
	}
}

func operatorFromClaims(op *jwt.Operator) (*models.User, bool) {
	id, err := primitive.ObjectIDFromHex(op.UserID)
	if err != nil {
		return nil, false
	}
	return &models.User{UserId: id, Name: op.Name, Email: op.Email}, true
}
