package conf

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig holds the application configuration.
type AppConfig struct {
	Mode     string `mapstructure:"mode"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	Version  string `mapstructure:"version"`
	TimeZone string `mapstructure:"time_zone"`
	// MachineID seeds receipt number generation. Zero derives it from the hostname.
	MachineID             uint16 `mapstructure:"machine_id"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
	*LogConfig            `mapstructure:"log"`
	*MongodbConfig        `mapstructure:"mongodb"`
	*WorkerConfig         `mapstructure:"worker"`
	*RabbitMQConfig       `mapstructure:"rabbitmq"`
	*JwtConfig            `mapstructure:"jwt"`
	*RedisConfig          `mapstructure:"redis"`
	*RateLimiterConfig    `mapstructure:"rate_limiter"`
	*BillsConfig          `mapstructure:"bills"`
}

// JwtConfig holds the JWT configuration.
type JwtConfig struct {
	Algorithm      string `mapstructure:"algorithm"`
	Secret         string `mapstructure:"secret"`
	PrivateKeyFile string `mapstructure:"private_key_file"`
	PublicKeyFile  string `mapstructure:"public_key_file"`
	// Disabled lets every request through as the system user. Local use only.
	Disabled bool `mapstructure:"disabled"`
}

// MongodbConfig holds the MongoDB configuration.
type MongodbConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	// Params is appended to the connection string, e.g. "replicaSet=rs0".
	Params string `mapstructure:"params"`
}

// URI builds the connection string from the individual fields.
func (c *MongodbConfig) URI() string {
	u := url.URL{
		Scheme: "mongodb",
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/",
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	u.RawQuery = c.Params
	return u.String()
}

// LogConfig holds the logger configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// WorkerConfig holds all background worker configurations.
type WorkerConfig struct {
	Outbox OutboxWorkerConfig `mapstructure:"outbox"`
}

// OutboxWorkerConfig holds the configuration for the outbox polling worker.
type OutboxWorkerConfig struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
	BatchSize       int `mapstructure:"batch_size"`
	MaxRetries      int `mapstructure:"max_retries"`
}

// RabbitMQConfig holds the RabbitMQ configuration.
type RabbitMQConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	// Disabled swaps the broker for a publisher that drops messages.
	Disabled        bool   `mapstructure:"disabled"`
	FollowupTopic   string `mapstructure:"followup_topic"`
	BillEventsTopic string `mapstructure:"bill_events_topic"`
}

// RedisConfig holds the Redis client configuration.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimiterPolicy defines the limit and interval for a policy.
type RateLimiterPolicy struct {
	Interval string `mapstructure:"interval"` // e.g., "1s", "1m", "1h"
	Limit    int    `mapstructure:"limit"`
}

// RateLimiterConfig holds all rate limiting policies.
type RateLimiterConfig struct {
	Default  RateLimiterPolicy            `mapstructure:"default"`
	Policies map[string]RateLimiterPolicy `mapstructure:"policies"`
}

// BillsConfig holds the billing rules that differ between gyms.
type BillsConfig struct {
	// IDPrefix and IDPad shape generated member ids: "MEM" and 3 give "MEM001",
	// the zero values give plain numbers.
	IDPrefix string `mapstructure:"id_prefix"`
	IDPad    int    `mapstructure:"id_pad"`
	// BalanceStrategy is "intake" or "payable".
	BalanceStrategy string `mapstructure:"balance_strategy"`
	MaxImageBytes   int64  `mapstructure:"max_image_bytes"`
}

const defaultMaxImageBytes = 5 << 20

// NewConfig loads the application configuration from a file.
func NewConfig(confFile string) (*AppConfig, error) {
	// Load .env file. It's okay if it doesn't exist. Errors are ignored.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(confFile)

	// `mongodb.host` -> `MONGODB_HOST`
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "dev")
	v.SetDefault("port", 5000)
	v.SetDefault("time_zone", "Local")
	v.SetDefault("request_timeout_seconds", 30)
	v.SetDefault("bills.id_prefix", "")
	v.SetDefault("bills.id_pad", 0)
	v.SetDefault("bills.balance_strategy", "intake")
	v.SetDefault("bills.max_image_bytes", defaultMaxImageBytes)
	v.SetDefault("worker.outbox.interval_seconds", 5)
	v.SetDefault("worker.outbox.batch_size", 50)
	v.SetDefault("worker.outbox.max_retries", 10)
	v.SetDefault("rabbitmq.followup_topic", "followup.create")
	v.SetDefault("rabbitmq.bill_events_topic", "bill.events")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var conf AppConfig
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if conf.BillsConfig == nil {
		conf.BillsConfig = &BillsConfig{BalanceStrategy: "intake", MaxImageBytes: defaultMaxImageBytes}
	}

	loc, err := time.LoadLocation(conf.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}
	time.Local = loc

	return &conf, nil
}
