package app

import (
	"context"
	"net/http"
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/limiter"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/metrics"
	http_middleware "github.com/thirusolai/gym-backend-h4fitness2/internal/middleware/http"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/provider"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	apiPrefix = "/api/v1"
	// writePolicy is the rate limiter policy applied to mutating routes.
	writePolicy = "writes"
)

// Pinger reports whether the database is reachable. *mongo.Client satisfies it.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// NewRouter registers every route and wraps the mux in the request-scoped
// middleware chain: access log, timeout, metrics.
func NewRouter(
	bills *service.BillsHandler,
	followups *service.FollowupsHandler,
	authMiddleware http_middleware.AuthMiddleware,
	limiterManager *limiter.Manager,
	m *metrics.Metrics,
	registry *prometheus.Registry,
	db Pinger,
	timeout provider.RequestTimeout,
	logger *zap.Logger,
) http.Handler {
	writeLimiter := http_middleware.CreateRateLimitMiddleware(limiterManager, writePolicy, logger)

	read := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}
	write := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(writeLimiter(h))
	}

	mux := http.NewServeMux()

	mux.Handle("POST "+apiPrefix+"/bills", write(bills.CreateBill))
	mux.Handle("GET "+apiPrefix+"/bills", read(bills.ListBills))
	mux.Handle("GET "+apiPrefix+"/bills/next-id", read(bills.NextMemberID))
	mux.Handle("GET "+apiPrefix+"/bills/{id}", read(bills.GetBill))
	mux.Handle("GET "+apiPrefix+"/bills/{id}/image", read(bills.GetImage))
	mux.Handle("PUT "+apiPrefix+"/bills/{id}", write(bills.UpdateBill))
	mux.Handle("PUT "+apiPrefix+"/bills/{id}/renew", write(bills.RenewBill))
	mux.Handle("PUT "+apiPrefix+"/bills/{id}/renewals/{renewalId}", write(bills.EditRenewal))
	mux.Handle("DELETE "+apiPrefix+"/bills/{id}/renewals/{renewalId}", write(bills.DeleteRenewal))
	mux.Handle("PUT "+apiPrefix+"/bills/{id}/payment", write(bills.RecordPayment))
	mux.Handle("DELETE "+apiPrefix+"/bills/{id}", write(bills.DeleteBill))

	mux.Handle("GET "+apiPrefix+"/followups", read(followups.ListFollowups))
	mux.Handle("PUT "+apiPrefix+"/followups/{id}/status", write(followups.UpdateStatus))
	mux.Handle("DELETE "+apiPrefix+"/followups/{id}", write(followups.DeleteFollowup))

	mux.Handle("GET /metrics", metrics.Handler(registry))
	mux.HandleFunc("GET /healthz", healthz(db, logger))

	var h http.Handler = mux
	h = http_middleware.NewMetricsMiddleware(m)(h)
	h = http_middleware.NewTimeoutMiddleware(time.Duration(timeout))(h)
	h = http_middleware.NewAccessLogMiddleware(logger)(h)
	return h
}

func healthz(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx, readpref.Primary()); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			service.WriteHttpError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		service.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
