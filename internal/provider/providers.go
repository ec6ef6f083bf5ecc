package provider

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/conf"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/db"
	"github.com/thirusolai/gym-backend-h4fitness2/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// --- Type-safe configuration values for dependency injection ---

type AppMode string

// RedisNamespace is a custom type for the Redis key namespace.
type RedisNamespace string

// RequestTimeout bounds the handling time of a single HTTP request.
type RequestTimeout time.Duration

func ProvideAppMode(c *conf.AppConfig) AppMode {
	return AppMode(c.Mode)
}

func ProvideRequestTimeout(c *conf.AppConfig) RequestTimeout {
	return RequestTimeout(time.Duration(c.RequestTimeoutSeconds) * time.Second)
}

// --- Providers for application components ---

// ProvideDatabase creates a new database instance from a client and config.
func ProvideDatabase(client *mongo.Client, cfg *conf.MongodbConfig) *mongo.Database {
	return client.Database(cfg.DB)
}

// ProvideMachineID returns the configured machine id, or parses one from a
// "name-N" hostname (StatefulSet pods). It falls back to 1.
func ProvideMachineID(cfg *conf.AppConfig) uint16 {
	if cfg.MachineID != 0 {
		return cfg.MachineID
	}
	hostname, err := os.Hostname()
	if err != nil {
		return 1
	}
	return machineIDFromHostname(hostname)
}

func machineIDFromHostname(hostname string) uint16 {
	parts := strings.Split(hostname, "-")
	if len(parts) < 2 {
		return 1
	}
	id, err := strconv.ParseUint(parts[len(parts)-1], 10, 16)
	if err != nil || id == 0 {
		return 1
	}
	return uint16(id)
}

// ProvideTransactionManager decides which TransactionManager to use based on the app mode.
func ProvideTransactionManager(mode AppMode, client *mongo.Client) db.TransactionManager {
	if mode == "dev" || mode == "test" {
		// Standalone mongod has no transactions.
		return db.NewNoOpTransactionManager()
	}
	return db.NewMongoTransactionManager(client)
}

// ProvideJwtManager creates the token manager. It returns nil when
// authentication is disabled.
func ProvideJwtManager(cfg *conf.AppConfig) (*jwt.Manager, error) {
	if cfg.JwtConfig == nil || cfg.JwtConfig.Disabled {
		return nil, nil
	}
	issuer := cfg.Name

	switch cfg.JwtConfig.Algorithm {
	case "HS256", "":
		if cfg.JwtConfig.Secret == "" {
			return nil, fmt.Errorf("jwt.secret is required for HS256")
		}
		return jwt.NewSymmetric([]byte(cfg.JwtConfig.Secret), issuer)
	case "RS256":
		privateKeyData, err := os.ReadFile(cfg.JwtConfig.PrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read private key file: %w", err)
		}
		privateKey, err := gojwt.ParseRSAPrivateKeyFromPEM(privateKeyData)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}

		publicKeyData, err := os.ReadFile(cfg.JwtConfig.PublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read public key file: %w", err)
		}
		publicKey, err := gojwt.ParseRSAPublicKeyFromPEM(publicKeyData)
		if err != nil {
			return nil, fmt.Errorf("failed to parse public key: %w", err)
		}

		return jwt.NewAsymmetric(privateKey, publicKey, issuer)
	default:
		return nil, fmt.Errorf("unsupported JWT algorithm: %s", cfg.JwtConfig.Algorithm)
	}
}

// ProvideRedisNamespace creates a namespace string for Redis keys.
func ProvideRedisNamespace(cfg *conf.AppConfig) RedisNamespace {
	return RedisNamespace(fmt.Sprintf("%s:%s:", cfg.Name, cfg.Mode))
}

// ProvideRedisClient creates and returns a new Redis client based on the application configuration.
// It also returns a cleanup function to close the connection.
func ProvideRedisClient(cfg *conf.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	cleanup := func() {
		client.Close()
	}

	return client, cleanup, nil
}
