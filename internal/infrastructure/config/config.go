package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Content   ContentConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=course_platform"`
}

type RedisConfig struct {
	// Addr left empty disables Redis: the rate limiter falls back to
	// in-process counters and payment dedup relies on ledger idempotency.
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// RateLimitConfig holds the per-class fixed-window ceilings. The auth class
// is deliberately tight; the resource class covers material downloads.
type RateLimitConfig struct {
	AuthMaxRequests     int `env:"RATE_AUTH_MAX,              default=10"`
	AuthWindowSecs      int `env:"RATE_AUTH_WINDOW_SECS,      default=60"`
	ResourceMaxRequests int `env:"RATE_RESOURCE_MAX,          default=120"`
	ResourceWindowSecs  int `env:"RATE_RESOURCE_WINDOW_SECS,  default=60"`
}

type ContentConfig struct {
	Dir string `env:"CONTENT_DIR, default=./content"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
