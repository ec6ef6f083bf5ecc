package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/conf"
)

func TestDSN_EscapesCredentials(t *testing.T) {
	got := dsn(&conf.RabbitMQConfig{Host: "mq", Port: 5672, User: "gym", Password: "p@ss/word"})
	assert.Equal(t, "amqp://gym:p%40ss%2Fword@mq:5672/", got)
}
