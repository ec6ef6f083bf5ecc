package worker

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/conf"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/repository"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/metrics"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/mq"

	"go.uber.org/zap"
)

// OutboxProcessor periodically polls the outbox collection and relays
// bill events and follow-up requests to the broker.
type OutboxProcessor struct {
	outboxRepo repository.OutboxRepository
	publisher  mq.Publisher
	metrics    *metrics.Metrics
	logger     *zap.Logger
	interval   time.Duration
	batchSize  int
	maxRetries int
}

func NewOutboxProcessor(outboxRepo repository.OutboxRepository, publisher mq.Publisher, m *metrics.Metrics, logger *zap.Logger, cfg *conf.WorkerConfig) *OutboxProcessor {
	interval := time.Duration(cfg.Outbox.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	batchSize := cfg.Outbox.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}
	return &OutboxProcessor{
		outboxRepo: outboxRepo,
		publisher:  publisher,
		metrics:    m,
		logger:     logger.Named("OutboxProcessor"),
		interval:   interval,
		batchSize:  batchSize,
		maxRetries: cfg.Outbox.MaxRetries,
	}
}

// Start polls until ctx is cancelled.
func (p *OutboxProcessor) Start(ctx context.Context) {
	p.logger.Info("Outbox processor started", zap.Duration("interval", p.interval), zap.Int("batchSize", p.batchSize))
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.runBatch(ctx)
		case <-ctx.Done():
			p.logger.Info("Outbox processor shutting down")
			return
		}
	}
}

func (p *OutboxProcessor) runBatch(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Panic recovered in outbox processor",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())),
			)
		}
	}()
	p.processEvents(ctx)
}

// processEvents claims a batch of messages and publishes them one by one.
// It returns the number of messages published.
func (p *OutboxProcessor) processEvents(ctx context.Context) int {
	claimed, err := p.outboxRepo.ClaimAndFetchEvents(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("Failed to claim outbox events", zap.Error(err))
		return 0
	}

	if len(claimed) > 0 {
		p.logger.Debug("Claimed events for processing", zap.Int("count", len(claimed)))
	}

	published := 0
	for _, event := range claimed {
		if err := p.publisher.Publish(ctx, event.Topic, toMessage(event)); err != nil {
			p.metrics.OutboxPublished(event.Topic, false)
			p.logger.Error("Failed to publish outbox event",
				zap.String("event_id", event.ID.Hex()),
				zap.String("topic", event.Topic),
				zap.Int("retries", event.Retries),
				zap.Error(err),
			)
			if err := p.outboxRepo.IncrementRetry(ctx, event, err.Error(), p.maxRetries); err != nil {
				p.logger.Error("Failed to increment retry for event", zap.String("event_id", event.ID.Hex()), zap.Error(err))
			}
			continue
		}

		p.metrics.OutboxPublished(event.Topic, true)
		published++
		if err := p.outboxRepo.MarkAsProcessed(ctx, event.ID); err != nil {
			// The message is redelivered on the next claim. Follow-ups are keyed by
			// the outbox id, so the consumer stores a redelivery only once.
			p.logger.Error("Failed to mark event as processed",
				zap.String("event_id", event.ID.Hex()),
				zap.Error(err),
			)
		}
	}
	return published
}

func toMessage(event *models.OutboxMessage) mq.Message {
	return mq.Message{
		ID:        event.ID.Hex(),
		Type:      event.Key,
		Body:      []byte(event.Payload),
		CreatedAt: event.CreatedAt,
	}
}

var _ Worker = (*OutboxProcessor)(nil)
