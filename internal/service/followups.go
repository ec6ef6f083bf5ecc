package service

import (
	"context"
	"net/http"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/dto"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"
	"github.com/thirusolai/gym-backend-h4fitness2/pkg/pagination"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type FollowupManager interface {
	ListFollowups(ctx context.Context, page *pagination.PageRequest) (*pagination.PageResult, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateFollowupStatusRequest) (*models.Followup, error)
	DeleteFollowup(ctx context.Context, id primitive.ObjectID) error
}

// FollowupsHandler serves the /followups routes.
type FollowupsHandler struct {
	followups FollowupManager
	logger    *zap.Logger
}

func NewFollowupsHandler(followups FollowupManager, logger *zap.Logger) *FollowupsHandler {
	return &FollowupsHandler{
		followups: followups,
		logger:    logger.Named("FollowupsHandler"),
	}
}

func (h *FollowupsHandler) ListFollowups(w http.ResponseWriter, r *http.Request) {
	res, err := h.followups.ListFollowups(r.Context(), pagination.FromQuery(r.URL.Query()))
	if err != nil {
		fail(w, h.logger, "ListFollowups", err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

func (h *FollowupsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		fail(w, h.logger, "UpdateFollowupStatus", err)
		return
	}
	var req dto.UpdateFollowupStatusRequest
	if _, err := decodeBody(w, r, 0, &req); err != nil {
		fail(w, h.logger, "UpdateFollowupStatus", err)
		return
	}
	req.ID = id

	f, err := h.followups.UpdateStatus(r.Context(), &req)
	if err != nil {
		fail(w, h.logger, "UpdateFollowupStatus", err)
		return
	}
	WriteJSON(w, http.StatusOK, f)
}

func (h *FollowupsHandler) DeleteFollowup(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		fail(w, h.logger, "DeleteFollowup", err)
		return
	}
	if err := h.followups.DeleteFollowup(r.Context(), id); err != nil {
		fail(w, h.logger, "DeleteFollowup", err)
		return
	}
	WriteJSON(w, http.StatusOK, &MessageResponse{Message: "Follow-up deleted successfully"})
}
