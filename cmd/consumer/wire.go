//go:build wireinject
// +build wireinject

package main

import (
	"github.com/thirusolai/gym-backend-h4fitness2/cmd/consumer/handlers"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/conf"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/mongodb"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/repository"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/logger"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/logic"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/mq/rabbitmq"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/provider"

	"github.com/google/wire"
)

// provideHandlers collects all individual MessageHandlers into a slice.
func provideHandlers(followupHandler *handlers.FollowupHandler) []handlers.MessageHandler {
	return []handlers.MessageHandler{
		followupHandler,
	}
}

// InitializeConsumerApp creates the consumer application and its dependencies.
func InitializeConsumerApp(appConfig *conf.AppConfig) (*ConsumerApp, func(), error) {
	wire.Build(
		// Config Providers
		wire.FieldsOf(new(*conf.AppConfig), "LogConfig", "MongodbConfig", "RabbitMQConfig"),
		provider.ProvideAppMode,
		provider.ProvideFollowupTopic,

		// Common Components
		logger.NewLogger,
		mongodb.NewMongoDB,
		provider.ProvideDatabase,

		// DAO Layer
		mongodb.NewFollowupDAO,
		wire.Bind(new(repository.FollowupRepository), new(*mongodb.FollowupDAO)),

		// Logic Layer
		logic.NewFollowupLogic,

		// MQ Consumer
		rabbitmq.NewConsumer,

		// Handlers
		wire.Bind(new(handlers.FollowupCreator), new(*logic.FollowupLogic)),
		handlers.NewFollowupHandler,
		provideHandlers,

		// Final App
		NewConsumerApp,
	)
	return nil, nil, nil
}
