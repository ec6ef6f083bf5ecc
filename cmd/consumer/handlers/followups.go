package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/dto"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/logic"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/mq"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// FollowupCreator stores follow-ups requested over the broker.
type FollowupCreator interface {
	CreateFromMessage(ctx context.Context, msg *dto.FollowupCreateMessage) (*models.Followup, error)
}

// FollowupHandler turns follow-up requests into follow-up records.
type FollowupHandler struct {
	followups FollowupCreator
	queue     string
	logger    *zap.Logger
}

func NewFollowupHandler(followups FollowupCreator, topic logic.FollowupTopic, logger *zap.Logger) *FollowupHandler {
	return &FollowupHandler{
		followups: followups,
		queue:     string(topic),
		logger:    logger.Named("FollowupHandler"),
	}
}

func (h *FollowupHandler) QueueName() string {
	return h.queue
}

func (h *FollowupHandler) Handle(ctx context.Context, d amqp.Delivery) error {
	var msg dto.FollowupCreateMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		h.logger.Error("Failed to unmarshal follow-up request", zap.Error(err), zap.ByteString("body", d.Body))
		return fmt.Errorf("%w: malformed follow-up request: %v", mq.ErrPermanent, err)
	}
	msg.MessageID = d.MessageId

	f, err := h.followups.CreateFromMessage(ctx, &msg)
	if err != nil {
		return err
	}
	h.logger.Info("Follow-up stored",
		zap.String("message_id", d.MessageId),
		zap.Stringer("followup_id", f.ID),
		zap.String("member_id", f.MemberID),
	)
	return nil
}

var _ MessageHandler = (*FollowupHandler)(nil)
