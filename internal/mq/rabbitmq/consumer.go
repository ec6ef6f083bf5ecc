package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/conf"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/mq"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// HandlerFunc processes one delivery. Returning an error wrapping
// mq.ErrPermanent drops the message; any other error requeues it.
type HandlerFunc func(ctx context.Context, delivery amqp.Delivery) error

// Consumer handles the connection and consumption of messages from RabbitMQ.
type Consumer struct {
	conn     *amqp.Connection
	logger   *zap.Logger
	handlers map[string]HandlerFunc
}

func NewConsumer(cfg *conf.RabbitMQConfig, logger *zap.Logger) (*Consumer, func(), error) {
	namedLogger := logger.Named("RabbitMQConsumer")

	conn, err := amqp.Dial(dsn(cfg))
	if err != nil {
		namedLogger.Error("Failed to connect to RabbitMQ", zap.Error(err))
		return nil, nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	namedLogger.Info("Successfully connected to RabbitMQ")

	c := &Consumer{
		conn:     conn,
		logger:   namedLogger,
		handlers: make(map[string]HandlerFunc),
	}
	return c, c.Close, nil
}

// RegisterHandler registers a handler function for a specific queue.
func (c *Consumer) RegisterHandler(queueName string, handler HandlerFunc) {
	c.handlers[queueName] = handler
}

// Start consumes every registered queue until ctx is cancelled or one of
// the queues fails.
func (c *Consumer) Start(ctx context.Context) error {
	if len(c.handlers) == 0 {
		return fmt.Errorf("no handlers registered, consumer will not start")
	}

	done := make(chan error, len(c.handlers))
	for queueName, handler := range c.handlers {
		go func(queueName string, handler HandlerFunc) {
			done <- c.consumeQueue(ctx, queueName, handler)
		}(queueName, handler)
	}
	return <-done
}

func (c *Consumer) consumeQueue(ctx context.Context, queueName string, handler HandlerFunc) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel for %s: %w", queueName, err)
	}
	defer ch.Close()

	q, err := declareQueue(ch, queueName)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	// One unacknowledged message at a time.
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS on %s: %w", queueName, err)
	}

	msgs, err := ch.Consume(
		q.Name, // queue
		"",     // consumer
		false,  // auto-ack
		false,  // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer on %s: %w", queueName, err)
	}

	c.logger.Info("Started consuming from queue", zap.String("queue", q.Name))

	for {
		select {
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel for %s closed", queueName)
			}
			c.handle(ctx, q.Name, d, handler)
		case <-ctx.Done():
			c.logger.Info("Context cancelled, stopping consumer", zap.String("queue", q.Name))
			return nil
		}
	}
}

func (c *Consumer) handle(ctx context.Context, queue string, d amqp.Delivery, handler HandlerFunc) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic recovered in message handler",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())),
				zap.String("queue", queue),
			)
			// No requeue, a panicking message would loop forever.
			c.settle(d, false, false)
		}
	}()

	c.logger.Debug("Received a message", zap.String("queue", queue), zap.String("id", d.MessageId))
	err := handler(ctx, d)
	switch {
	case err == nil:
		c.settle(d, true, false)
	case errors.Is(err, mq.ErrPermanent):
		c.logger.Warn("Dropping unprocessable message", zap.Error(err), zap.String("queue", queue), zap.String("id", d.MessageId))
		c.settle(d, false, false)
	default:
		c.logger.Error("Handler failed to process message", zap.Error(err), zap.String("queue", queue), zap.String("id", d.MessageId))
		c.settle(d, false, true)
	}
}

func (c *Consumer) settle(d amqp.Delivery, ack, requeue bool) {
	if d.Acknowledger == nil {
		return
	}
	var err error
	if ack {
		err = d.Ack(false)
	} else {
		err = d.Nack(false, requeue)
	}
	if err != nil {
		c.logger.Error("Failed to settle delivery", zap.Error(err), zap.Uint64("tag", d.DeliveryTag))
	}
}

// Close gracefully closes the connection.
func (c *Consumer) Close() {
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("Failed to close connection", zap.Error(err))
		}
	}
}
