package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App struct {
		ENV string
	}

	Log struct {
		Level     string
		Format    string
		Component string
		Source    bool
	}

	DB struct {
		Driver   string
		DSN      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
		// BreakerFailures consecutive stats cache errors open the circuit
		// for BreakerCooldown.
		BreakerFailures int
		BreakerCooldown time.Duration
	}

	GRPC struct {
		Host string
		Port string
	}

	HTTP struct {
		Host string
		Port string
		// CORSOrigins is empty unless configured; no origin is allowed then.
		CORSOrigins []string
		// RateLimit is requests per minute per client IP; 0 disables it.
		RateLimit int
	}

	Reaction struct {
		// MaxAttempts bounds the read-check-write retries on a uniqueness race.
		MaxAttempts   int
		StatsTTL      time.Duration
		TrendingLimit int
		MaxLimit      int
	}
}

func New() *Config {
	cfg := &Config{}

	cfg.App.ENV = getEnvDefault("APP_ENV", "production")

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "reaction_engine")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// Database
	cfg.DB.Driver = strings.ToLower(getEnvDefault("DB_DRIVER", "mysql"))
	cfg.DB.DSN = os.Getenv("MYSQL_DSN")
	if cfg.DB.Driver == "sqlite" {
		cfg.DB.DSN = getEnvDefault("SQLITE_DSN", "file:movie_social.db?_foreign_keys=on")
	}
	if cfg.DB.DSN == "" {
		cfg.DB.Host = getEnvDefault("DB_HOST", "localhost")
		cfg.DB.Port = getEnvDefault("DB_PORT", "3306")
		cfg.DB.User = getEnvDefault("DB_USER", "root")
		cfg.DB.Password = getEnvDefault("DB_PASSWORD", "root")
		cfg.DB.Name = getEnvDefault("DB_NAME", "movie_social")

		cfg.DB.DSN = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name,
		)
	}

	// Redis
	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)
	cfg.Redis.BreakerFailures = getEnvInt("REDIS_BREAKER_FAILURES", 5)
	if cfg.Redis.BreakerFailures < 1 {
		cfg.Redis.BreakerFailures = 5
	}
	cfg.Redis.BreakerCooldown = getEnvDuration("REDIS_BREAKER_COOLDOWN", 30*time.Second)

	// gRPC
	cfg.GRPC.Host = getEnvDefault("GRPC_HOST", "127.0.0.1")
	cfg.GRPC.Port = getEnvDefault("GRPC_PORT", "50051")

	// HTTP
	cfg.HTTP.Host = getEnvDefault("HTTP_HOST", "127.0.0.1")
	cfg.HTTP.Port = getEnvDefault("HTTP_PORT", "8080")
	cfg.HTTP.CORSOrigins = getEnvList("CORS_ALLOWED_ORIGINS")
	cfg.HTTP.RateLimit = getEnvInt("HTTP_RATE_LIMIT", 300)
	if cfg.HTTP.RateLimit < 0 {
		cfg.HTTP.RateLimit = 0
	}

	// Reactions
	cfg.Reaction.MaxAttempts = getEnvInt("REACTION_MAX_ATTEMPTS", 3)
	if cfg.Reaction.MaxAttempts < 2 {
		// a conflicting write is always retried at least once
		cfg.Reaction.MaxAttempts = 2
	}
	cfg.Reaction.StatsTTL = getEnvDuration("REACTION_STATS_TTL", time.Hour)
	cfg.Reaction.TrendingLimit = getEnvInt("REACTION_TRENDING_LIMIT", 10)
	cfg.Reaction.MaxLimit = getEnvInt("REACTION_MAX_LIMIT", 100)
	if cfg.Reaction.TrendingLimit <= 0 {
		cfg.Reaction.TrendingLimit = 10
	}
	if cfg.Reaction.MaxLimit < cfg.Reaction.TrendingLimit {
		cfg.Reaction.MaxLimit = cfg.Reaction.TrendingLimit
	}

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if n, err := strconv.Atoi(getEnvDefault(k, "")); err == nil {
		return n
	}
	return def
}

func getEnvList(k string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(k), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnvDefault(k, "")); err == nil && d > 0 {
		return d
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
