package rabbitmq

import (
	"fmt"
	"net/url"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/conf"

	amqp "github.com/rabbitmq/amqp091-go"
)

func dsn(cfg *conf.RabbitMQConfig) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   "/",
	}
	return u.String()
}

// declareQueue declares the durable queue publisher and consumer share.
func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
}
