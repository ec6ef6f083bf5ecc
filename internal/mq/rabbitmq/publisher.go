package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/conf"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/mq"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends outbox messages to durable queues on the default exchange.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger

	mu       sync.Mutex
	declared map[string]bool
}

func NewPublisher(cfg *conf.RabbitMQConfig, logger *zap.Logger) (*Publisher, func(), error) {
	namedLogger := logger.Named("RabbitMQPublisher")

	conn, err := amqp.Dial(dsn(cfg))
	if err != nil {
		namedLogger.Error("Failed to connect to RabbitMQ", zap.Error(err))
		return nil, nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		namedLogger.Error("Failed to open a channel", zap.Error(err))
		if connErr := conn.Close(); connErr != nil {
			namedLogger.Error("Failed to close connection after channel failure", zap.Error(connErr))
		}
		return nil, nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	namedLogger.Info("Successfully connected to RabbitMQ")

	p := &Publisher{
		conn:     conn,
		channel:  ch,
		logger:   namedLogger,
		declared: make(map[string]bool),
	}
	return p, p.Close, nil
}

// Publish declares the topic's queue on first use and sends msg as a
// persistent JSON message carrying the outbox id as MessageId.
func (p *Publisher) Publish(ctx context.Context, topic string, msg mq.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared[topic] {
		if _, err := declareQueue(p.channel, topic); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", topic, err)
		}
		p.declared[topic] = true
	}

	err := p.channel.PublishWithContext(ctx,
		"",    // default exchange
		topic, // routing key is the queue name
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.ID,
			Type:         msg.Type,
			Timestamp:    msg.CreatedAt,
			Body:         msg.Body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	p.logger.Debug("Message published", zap.String("topic", topic), zap.String("id", msg.ID))
	return nil
}

// Close gracefully closes the channel and the connection.
func (p *Publisher) Close() {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Error("Failed to close channel", zap.Error(err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.logger.Error("Failed to close connection", zap.Error(err))
		}
	}
	p.logger.Info("RabbitMQ connection closed.")
}

var _ mq.Publisher = (*Publisher)(nil)
