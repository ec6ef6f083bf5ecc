package http

import (
	"net"
	"net/http"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/auth"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/limiter"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/service"

	"go.uber.org/zap"
)

// CreateRateLimitMiddleware limits requests per operator under the named
// policy. Requests without an operator are keyed by client address.
func CreateRateLimitMiddleware(limiterManager *limiter.Manager, policyName string, logger *zap.Logger) func(http.Handler) http.Handler {
	l := limiterManager.Get(policyName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := l.Allow(r.Context(), rateLimitKey(r))
			if err != nil {
				logger.Error("Rate limit check failed", zap.Error(err), zap.String("policy", policyName))
				service.WriteHttpError(w, http.StatusInternalServerError, "Failed to check rate limit.")
				return
			}
			if !allowed {
				service.WriteHttpError(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitKey(r *http.Request) string {
	if u, ok := auth.OperatorFromContext(r.Context()); ok && !u.UserId.IsZero() {
		return "user:" + u.UserId.Hex()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
