package provider

import (
	"github.com/thirusolai/gym-backend-h4fitness2/internal/conf"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/logic"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/metrics"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/mq"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/mq/noop"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/mq/rabbitmq"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ProvideBillEventsTopic extracts the bill lifecycle queue name from the app config.
func ProvideBillEventsTopic(cfg *conf.AppConfig) logic.BillEventsTopic {
	return logic.BillEventsTopic(cfg.RabbitMQConfig.BillEventsTopic)
}

// ProvideFollowupTopic extracts the follow-up request queue name from the app config.
func ProvideFollowupTopic(cfg *conf.AppConfig) logic.FollowupTopic {
	return logic.FollowupTopic(cfg.RabbitMQConfig.FollowupTopic)
}

func ProvideBalanceStrategy(cfg *conf.BillsConfig) (logic.BalanceStrategy, error) {
	return logic.ParseBalanceStrategy(cfg.BalanceStrategy)
}

func ProvideMemberIDFormat(cfg *conf.BillsConfig) logic.MemberIDFormat {
	return logic.MemberIDFormat{Prefix: cfg.IDPrefix, Pad: cfg.IDPad}
}

// ProvidePublisher connects to RabbitMQ, or drops messages when the broker is disabled.
func ProvidePublisher(cfg *conf.RabbitMQConfig, logger *zap.Logger) (mq.Publisher, func(), error) {
	if cfg.Disabled {
		logger.Warn("RabbitMQ disabled, outbox messages will be dropped")
		p := noop.NewPublisher(logger)
		return p, p.Close, nil
	}
	p, cleanup, err := rabbitmq.NewPublisher(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return p, cleanup, nil
}

// ProvideMetrics registers the service collectors on registry.
func ProvideMetrics(registry *prometheus.Registry) *metrics.Metrics {
	return metrics.NewMetrics(registry)
}
