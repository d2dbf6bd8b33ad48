// internal/pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingRequiredConfig is returned when a required setting is empty
var ErrMissingRequiredConfig = errors.New("missing required configuration")

const (
	StoreBackendSQL   = "sql"
	StoreBackendFile  = "file"
	StoreBackendRedis = "redis"

	AuthSourceStatic = "static"
	AuthSourceEnv    = "env"
	AuthSourceAWS    = "aws"
)

// Config holds all application configuration
type Config struct {
	// Application
	App AppConfig

	// Relational session store
	Database DatabaseConfig

	// Session store selection
	Store StoreConfig

	// Redis
	Redis RedisConfig

	// AWS
	AWS AWSConfig

	// Credential gate
	Auth AuthConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `required:"true"`
	Environment string // development, production
	Version     string // overrides the build version in reports
	LogLevel    string
	LogFormat   string // json, text, pretty
	LogOutput   string // stderr, stdout, file:<path>
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver             string `required:"true"` // sqlite, pgx
	Path               string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxConnections     int
	MaxConnLifetime    time.Duration
	MaxConnIdleTime    time.Duration
	ConnectTimeout     time.Duration
	BusyTimeout        time.Duration
	EnableQueryLogging bool
}

// StoreConfig selects the session store used by login, persist and logout
type StoreConfig struct {
	Backend      string `required:"true"` // sql, file, redis
	SnapshotPath string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	KeyPrefix    string
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
}

// AWSConfig holds AWS configuration
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Endpoint      string // For MinIO in development
	UsePathStyle    bool   // For MinIO compatibility
}

// AuthConfig holds credential gate configuration
type AuthConfig struct {
	Source       string `required:"true"` // static, env, aws
	Username     string `required:"true"`
	Password     string
	SecretName   string
	SecretKey    string
	LoginRate    time.Duration // one attempt is replenished per interval
	LoginBurst   int
	PromptRetype bool
}

// Load loads configuration from an optional warehouse config file, .env and
// environment variables
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file in development
	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Debug("no .env file found, using environment variables",
				slog.String("error", err.Error()))
		} else {
			logger.Debug(".env file loaded successfully")
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetTypeByDefaultValue(true)

	v.SetConfigName("warehouse")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(dir + "/warehouse")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		logger.Debug("config file loaded", slog.String("file", v.ConfigFileUsed()))
	}

	setDefaults(v)

	r := reader{v: v}
	cfg := &Config{
		App: AppConfig{
			Name:        r.str("APP_NAME"),
			Environment: env,
			Version:     r.str("APP_VERSION"),
			LogLevel:    r.str("LOG_LEVEL"),
			LogFormat:   r.str("LOG_FORMAT"),
			LogOutput:   r.str("LOG_OUTPUT"),
		},
		Database: DatabaseConfig{
			Driver:             r.str("DB_DRIVER"),
			Path:               r.str("DB_PATH"),
			Host:               r.str("DB_HOST"),
			Port:               r.str("DB_PORT"),
			User:               r.str("DB_USER"),
			Password:           r.str("DB_PASSWORD"),
			Name:               r.str("DB_NAME"),
			SSLMode:            r.str("DB_SSL_MODE"),
			MaxConnections:     r.integer("DB_MAX_CONNECTIONS"),
			MaxConnLifetime:    r.duration("DB_CONNECTION_LIFETIME"),
			MaxConnIdleTime:    r.duration("DB_IDLE_TIME"),
			ConnectTimeout:     r.duration("DB_CONNECT_TIMEOUT"),
			BusyTimeout:        r.duration("DB_BUSY_TIMEOUT"),
			EnableQueryLogging: r.boolean("DB_QUERY_LOGGING"),
		},
		Store: StoreConfig{
			Backend:      r.str("STORE_BACKEND"),
			SnapshotPath: r.str("STORE_SNAPSHOT_PATH"),
		},
		Redis: RedisConfig{
			Host:         r.str("REDIS_HOST"),
			Port:         r.str("REDIS_PORT"),
			Password:     r.str("REDIS_PASSWORD"),
			DB:           r.integer("REDIS_DB"),
			KeyPrefix:    r.str("REDIS_KEY_PREFIX"),
			MaxRetries:   r.integer("REDIS_MAX_RETRIES"),
			DialTimeout:  r.duration("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:  r.duration("REDIS_READ_TIMEOUT"),
			WriteTimeout: r.duration("REDIS_WRITE_TIMEOUT"),
			PoolSize:     r.integer("REDIS_POOL_SIZE"),
		},
		AWS: AWSConfig{
			Region:          r.str("AWS_REGION"),
			AccessKeyID:     r.str("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: r.str("AWS_SECRET_ACCESS_KEY"),
			S3Endpoint:      r.str("AWS_S3_ENDPOINT"),
			UsePathStyle:    r.boolean("AWS_S3_PATH_STYLE"),
		},
		Auth: AuthConfig{
			Source:       r.str("AUTH_SOURCE"),
			Username:     r.str("AUTH_USERNAME"),
			Password:     r.str("AUTH_PASSWORD"),
			SecretName:   r.str("AUTH_SECRET_NAME"),
			SecretKey:    r.str("AUTH_SECRET_KEY"),
			LoginRate:    r.duration("AUTH_LOGIN_RATE"),
			LoginBurst:   r.integer("AUTH_LOGIN_BURST"),
			PromptRetype: r.boolean("AUTH_PROMPT_RETYPE"),
		},
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validators := []Validator{&BasicValidator{}}
	if c.IsProduction() {
		validators = append(validators, &ProductionValidator{})
	}

	for _, v := range validators {
		if err := v.Validate(c); err != nil {
			return err
		}
	}
	return nil
}

// GetRedisAddress returns the host:port of the Redis server
func (c *Config) GetRedisAddress() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "warehouse")
	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stderr")

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "warehouse.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "warehouse")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "warehouse")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNECTIONS", 5)
	v.SetDefault("DB_CONNECTION_LIFETIME", time.Hour)
	v.SetDefault("DB_IDLE_TIME", 30*time.Minute)
	v.SetDefault("DB_CONNECT_TIMEOUT", 10*time.Second)
	v.SetDefault("DB_BUSY_TIMEOUT", 5*time.Second)
	v.SetDefault("DB_QUERY_LOGGING", false)

	v.SetDefault("STORE_BACKEND", StoreBackendSQL)
	v.SetDefault("STORE_SNAPSHOT_PATH", "warehouse.json")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "warehouse")
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("REDIS_DIAL_TIMEOUT", 5*time.Second)
	v.SetDefault("REDIS_READ_TIMEOUT", 3*time.Second)
	v.SetDefault("REDIS_WRITE_TIMEOUT", 3*time.Second)
	v.SetDefault("REDIS_POOL_SIZE", 2)

	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("AWS_S3_ENDPOINT", "")
	v.SetDefault("AWS_S3_PATH_STYLE", false)

	v.SetDefault("AUTH_SOURCE", AuthSourceStatic)
	v.SetDefault("AUTH_USERNAME", "admin")
	v.SetDefault("AUTH_PASSWORD", "553355")
	v.SetDefault("AUTH_SECRET_NAME", "warehouse/credentials")
	v.SetDefault("AUTH_SECRET_KEY", "WAREHOUSE_PASSWORD")
	v.SetDefault("AUTH_LOGIN_RATE", time.Second)
	v.SetDefault("AUTH_LOGIN_BURST", 3)
	v.SetDefault("AUTH_PROMPT_RETYPE", true)
}

// reader looks keys up in viper, which checks the environment before the
// config file and defaults
type reader struct {
	v *viper.Viper
}

func (r reader) str(key string) string {
	return r.v.GetString(key)
}

func (r reader) boolean(key string) bool {
	return r.v.GetBool(key)
}

func (r reader) integer(key string) int {
	return r.v.GetInt(key)
}

func (r reader) duration(key string) time.Duration {
	return r.v.GetDuration(key)
}
