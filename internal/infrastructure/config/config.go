package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs API session tokens issued at login.
	JWTSecret string `env:"JWT_SECRET"`
	// TokenSecret signs dynamic member tokens and checkpoint codes. Kept
	// separate from JWTSecret so either can rotate independently.
	TokenSecret string `env:"TOKEN_SECRET"`

	TokenTTLMinutes         int `env:"TOKEN_TTL_MINUTES,         default=30"`
	CancellationWindowHours int `env:"CANCELLATION_WINDOW_HOURS, default=3"`
	ScanWorkers             int `env:"SCAN_WORKERS,              default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gym_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}

// TokenTTL returns the dynamic token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// CancellationWindow returns the refund cutoff as a duration.
func (c *Config) CancellationWindow() time.Duration {
	return time.Duration(c.CancellationWindowHours) * time.Hour
}
