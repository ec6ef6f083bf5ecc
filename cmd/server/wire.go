//go:build wireinject
// +build wireinject

package main

import (
	"github.com/thirusolai/gym-backend-h4fitness2/internal/app"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/conf"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/mongodb"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/repository"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/limiter"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/logger"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/logic"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/metrics"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/middleware/http"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/provider"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/service"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/worker"
	"github.com/thirusolai/gym-backend-h4fitness2/pkg/snowflake"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/mongo"
)

// baseProviders holds the components shared by every part of the API.
var baseProviders = wire.NewSet(
	wire.FieldsOf(new(*conf.AppConfig), "LogConfig", "MongodbConfig", "WorkerConfig", "JwtConfig", "RedisConfig", "RateLimiterConfig", "BillsConfig"),
	provider.ProvideAppMode,
	provider.ProvideRequestTimeout,
	logger.NewLogger,
	mongodb.NewMongoDB,
	provider.ProvideDatabase,
	provider.ProvideMachineID,
	provider.ProvideBillEventsTopic,
	provider.ProvideFollowupTopic,
	provider.ProvideBalanceStrategy,
	provider.ProvideMemberIDFormat,
	provider.ProvideTransactionManager,
	provider.ProvideJwtManager,
	provider.ProvideRedisNamespace,
	provider.ProvideRedisClient,
	limiter.NewManager,
	snowflake.NewGenerator,
	metrics.NewRegistry,
	provider.ProvideMetrics,
	mongodb.NewBillDAO,
	wire.Bind(new(repository.BillRepository), new(*mongodb.BillDAO)),
	mongodb.NewCounterDAO,
	wire.Bind(new(repository.CounterRepository), new(*mongodb.CounterDAO)),
	mongodb.NewFollowupDAO,
	wire.Bind(new(repository.FollowupRepository), new(*mongodb.FollowupDAO)),
	mongodb.NewAuditLogDAO,
	wire.Bind(new(repository.AuditLogRepository), new(*mongodb.AuditLogDAO)),
	mongodb.NewOutboxDAO,
	wire.Bind(new(repository.OutboxRepository), new(*mongodb.OutboxDAO)),
	logic.NewMemberIDAllocator,
	logic.NewEventPublisher,
	logic.NewBillLogic,
	logic.NewFollowupLogic,
)

// rabbitMQProviders holds the broker publisher and the outbox relay.
var rabbitMQProviders = wire.NewSet(
	wire.FieldsOf(new(*conf.AppConfig), "RabbitMQConfig"),
	provider.ProvidePublisher,
	worker.NewOutboxProcessor,
)

// provideWorkers wraps the OutboxProcessor into the worker slice.
func provideWorkers(p *worker.OutboxProcessor) []worker.Worker {
	return []worker.Worker{p}
}

func InitializeAPIApp(appConfig *conf.AppConfig) (*app.App, func(), error) {
	wire.Build(
		baseProviders,
		rabbitMQProviders,
		wire.FieldsOf(new(*conf.AppConfig), "Port"),
		wire.Bind(new(service.BillManager), new(*logic.BillLogic)),
		wire.Bind(new(service.FollowupManager), new(*logic.FollowupLogic)),
		wire.Bind(new(app.Pinger), new(*mongo.Client)),
		service.NewBillsHandler,
		service.NewFollowupsHandler,
		http.NewAuthMiddleware,
		app.NewRouter,
		provideWorkers,
		app.NewApp,
	)
	return nil, nil, nil
}
