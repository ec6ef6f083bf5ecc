package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/constants"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/mongodb"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/repository"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dto"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"
	"github.com/thirusolai/gym-backend-h4fitness2/pkg/pagination"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type FollowupLogic struct {
	followupRepo repository.FollowupRepository
	logger       *zap.Logger
}

func NewFollowupLogic(followupRepo repository.FollowupRepository, logger *zap.Logger) *FollowupLogic {
	return &FollowupLogic{
		followupRepo: followupRepo,
		logger:       logger.Named("FollowupLogic"),
	}
}

// CreateFromMessage stores a follow-up requested through the broker.
// Malformed messages are reported as ErrPermanent so they are not redelivered.
// When the message id is an outbox id it becomes the follow-up id, so a
// redelivered message finds its follow-up already stored.
func (l *FollowupLogic) CreateFromMessage(ctx context.Context, msg *dto.FollowupCreateMessage) (*models.Followup, error) {
	ref, err := primitive.ObjectIDFromHex(msg.RecordReference)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid record reference %q", ErrPermanent, msg.RecordReference)
	}
	if strings.TrimSpace(msg.ScheduleDate) == "" {
		return nil, fmt.Errorf("%w: schedule date is required", ErrPermanent)
	}

	status := constants.ParseFollowupStatus(msg.Status)
	if status == constants.FollowupStatusUnknown {
		status = constants.FollowupStatusPending
	}
	followupType := msg.Type
	if followupType == "" {
		followupType = constants.FollowupTypeOther
	}
	createdBy := msg.CreatedBy
	if createdBy == "" {
		createdBy = models.SystemUser.Name
	}

	id, err := primitive.ObjectIDFromHex(msg.MessageID)
	if err != nil {
		id = primitive.NewObjectID()
	}

	now := time.Now()
	f := &models.Followup{
		ID:           id,
		ClientRef:    ref,
		MemberID:     msg.MemberID,
		FollowupType: followupType,
		ScheduleDate: msg.ScheduleDate,
		Response:     msg.Response,
		CreatedBy:    createdBy,
		Status:       status.String(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := l.followupRepo.Create(ctx, f); err != nil {
		if errors.Is(err, mongodb.ErrDuplicateKey) {
			l.logger.Info("Follow-up already stored", zap.Stringer("id", id), zap.String("messageId", msg.MessageID))
			return f, nil
		}
		return nil, fmt.Errorf("failed to create follow-up: %w", err)
	}
	l.logger.Info("Follow-up created", zap.Stringer("clientRef", ref), zap.String("scheduleDate", f.ScheduleDate))
	return f, nil
}

func (l *FollowupLogic) ListFollowups(ctx context.Context, page *pagination.PageRequest) (*pagination.PageResult, error) {
	items, total, err := l.followupRepo.List(ctx, page.GetOffset(), page.GetLimit())
	if err != nil {
		return nil, fmt.Errorf("failed to list follow-ups: %w", err)
	}
	return pagination.NewPageResult(items, total, page), nil
}

func (l *FollowupLogic) UpdateStatus(ctx context.Context, req *dto.UpdateFollowupStatusRequest) (*models.Followup, error) {
	status := constants.ParseFollowupStatus(strings.TrimSpace(req.Status))
	if status == constants.FollowupStatusUnknown {
		return nil, fmt.Errorf("%w: unknown follow-up status %q", ErrInvalidInput, req.Status)
	}
	f, err := l.followupRepo.UpdateStatus(ctx, req.ID, status.String())
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrFollowupNotFound
		}
		return nil, fmt.Errorf("failed to update follow-up status: %w", err)
	}
	return f, nil
}

func (l *FollowupLogic) DeleteFollowup(ctx context.Context, id primitive.ObjectID) error {
	if err := l.followupRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return ErrFollowupNotFound
		}
		return fmt.Errorf("failed to delete follow-up: %w", err)
	}
	return nil
}
