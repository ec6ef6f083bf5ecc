package service

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/logic"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MessageResponse is the body of operations that return no record.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes v as the JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, httpCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteHttpError writes a standard JSON error response to the http.ResponseWriter.
func WriteHttpError(w http.ResponseWriter, httpCode int, message string) {
	resp := map[string]interface{}{
		"status":  "error",
		"code":    httpCode,
		"message": message,
	}
	WriteJSON(w, httpCode, resp)
}

// ResponseError writes err under the HTTP status that grpc-gateway uses for c.
func ResponseError(w http.ResponseWriter, c codes.Code, err error) {
	WriteHttpError(w, runtime.HTTPStatusFromCode(c), status.New(c, err.Error()).Message())
}

// ErrorCode classifies logic errors. Anything unrecognised is a storage
// failure and maps to Internal with its message attached.
func ErrorCode(err error) codes.Code {
	switch {
	case errors.Is(err, logic.ErrInvalidInput), errors.Is(err, logic.ErrDuplicateMemberID):
		return codes.InvalidArgument
	case errors.Is(err, logic.ErrBillNotFound),
		errors.Is(err, logic.ErrRenewalNotFound),
		errors.Is(err, logic.ErrImageNotFound),
		errors.Is(err, logic.ErrFollowupNotFound):
		return codes.NotFound
	case errors.Is(err, logic.ErrVersionConflict):
		return codes.Aborted
	}
	return codes.Internal
}

// fail logs and writes a logic error. Client errors are logged at warn.
func fail(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	c := ErrorCode(err)
	if c == codes.Internal {
		logger.Error(op+" failed", zap.Error(err))
	} else {
		logger.Warn(op+" rejected", zap.Error(err), zap.Stringer("code", c))
	}
	ResponseError(w, c, err)
}
