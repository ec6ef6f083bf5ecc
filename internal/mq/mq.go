package mq

import (
	"context"
	"errors"
	"time"
)

// Message is one outbox entry on its way to the broker.
type Message struct {
	ID        string
	Type      string
	Body      []byte
	CreatedAt time.Time
}

// Publisher sends messages to a named queue.
type Publisher interface {
	Publish(ctx context.Context, topic string, msg Message) error
	Close()
}

// ErrPermanent marks a message that can never be processed. Consumers drop it
// instead of requeueing.
var ErrPermanent = errors.New("a permanent error occurred that should not be retried")
