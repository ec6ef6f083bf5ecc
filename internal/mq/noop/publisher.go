package noop

import (
	"context"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/mq"

	"go.uber.org/zap"
)

// Publisher drops every message. It backs rabbitmq.disabled so the outbox
// drains locally without a broker.
type Publisher struct {
	logger *zap.Logger
}

func NewPublisher(logger *zap.Logger) *Publisher {
	return &Publisher{logger: logger.Named("NoopPublisher")}
}

func (p *Publisher) Publish(ctx context.Context, topic string, msg mq.Message) error {
	p.logger.Debug("Dropping message", zap.String("topic", topic), zap.String("id", msg.ID), zap.String("type", msg.Type))
	return nil
}

func (p *Publisher) Close() {}

var _ mq.Publisher = (*Publisher)(nil)
