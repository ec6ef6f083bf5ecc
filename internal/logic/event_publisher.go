package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/constants"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/repository"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dto"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BillEventsTopic is the queue bill lifecycle events are relayed to.
type BillEventsTopic string

// FollowupTopic is the queue follow-up creation requests are relayed to.
type FollowupTopic string

// EventPublisher writes outbox messages; the outbox worker relays them to the broker.
type EventPublisher struct {
	outboxRepo    repository.OutboxRepository
	billTopic     BillEventsTopic
	followupTopic FollowupTopic
}

func NewEventPublisher(outboxRepo repository.OutboxRepository, billTopic BillEventsTopic, followupTopic FollowupTopic) *EventPublisher {
	return &EventPublisher{
		outboxRepo:    outboxRepo,
		billTopic:     billTopic,
		followupTopic: followupTopic,
	}
}

type billEventPayload struct {
	Event      string          `json:"event"`
	BillID     string          `json:"bill_id"`
	MemberID   string          `json:"member_id"`
	Status     string          `json:"status"`
	AmountPaid models.Decimal  `json:"amount_paid"`
	Balance    models.Decimal  `json:"balance"`
	Amount     *models.Decimal `json:"amount,omitempty"`
	OccurredAt string          `json:"occurred_at"`
}

// PublishBillEvent records a lifecycle event for bill. amount is the payment
// delta for payment events and ignored otherwise.
func (p *EventPublisher) PublishBillEvent(ctx context.Context, event constants.BillEvent, bill *models.GymBill, amount decimal.Decimal) error {
	now := time.Now()
	var delta *models.Decimal
	if !amount.IsZero() {
		d := models.NewDecimal(amount)
		delta = &d
	}
	payload := billEventPayload{
		Event:      event.String(),
		BillID:     bill.ID.Hex(),
		MemberID:   bill.MemberID,
		Status:     bill.Status,
		AmountPaid: bill.Active.AmountPaid,
		Balance:    bill.Active.Balance,
		Amount:     delta,
		OccurredAt: now.UTC().Format(time.RFC3339),
	}
	return p.write(ctx, string(p.billTopic), event.String(), payload, now)
}

// RequestFollowup asks the follow-up consumer to create a follow-up.
func (p *EventPublisher) RequestFollowup(ctx context.Context, msg *dto.FollowupCreateMessage) error {
	return p.write(ctx, string(p.followupTopic), msg.Type, msg, time.Now())
}

func (p *EventPublisher) write(ctx context.Context, topic, key string, payload interface{}, now time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", key, err)
	}
	msg := &models.OutboxMessage{
		ID:        primitive.NewObjectID(),
		Topic:     topic,
		Key:       key,
		Payload:   string(body),
		Status:    models.OutboxStatusPending,
		CreatedAt: now,
	}
	if err := p.outboxRepo.Create(ctx, msg); err != nil {
		return fmt.Errorf("failed to create %s outbox message: %w", key, err)
	}
	return nil
}
