package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	RPC       RPCConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	Environment     string
	Version         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// RPCConfig holds chain endpoint configuration
type RPCConfig struct {
	URLs    []string
	Timeout time.Duration
}

// CacheConfig holds cache TTL configuration
type CacheConfig struct {
	DefaultTTL time.Duration
	BalanceTTL time.Duration
	NAVTTL     time.Duration
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	ReadPerMinute  int
	WritePerMinute int
	Window         time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables, loading a .env file
// first if present
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("API_HOST", "0.0.0.0"),
			Port:            getIntEnv("API_PORT", 8000),
			Environment:     getEnv("API_ENV", "development"),
			Version:         getEnv("API_VERSION", "1.0.0"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			AllowedOrigins:  splitAndTrim(getEnv("ALLOWED_ORIGINS", "*")),
		},
		RPC: RPCConfig{
			URLs:    splitAndTrim(getEnv("RPC_URLS", "https://eth.llamarpc.com,https://rpc.ankr.com/eth,https://ethereum.publicnode.com")),
			Timeout: getDurationEnv("RPC_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			DefaultTTL: getDurationEnv("CACHE_DEFAULT_TTL", 5*time.Minute),
			BalanceTTL: getDurationEnv("CACHE_BALANCE_TTL", 30*time.Second),
			NAVTTL:     getDurationEnv("CACHE_NAV_TTL", 5*time.Minute),
		},
		RateLimit: RateLimitConfig{
			ReadPerMinute:  getIntEnv("RATE_LIMIT_PER_MINUTE", 100),
			WritePerMinute: getIntEnv("RATE_LIMIT_WRITE_PER_MINUTE", 50),
			Window:         time.Minute,
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.RPC.URLs) == 0 {
		return fmt.Errorf("at least one RPC URL is required (RPC_URLS)")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid API_PORT: %d", c.Server.Port)
	}
	if c.RateLimit.ReadPerMinute <= 0 || c.RateLimit.WritePerMinute <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDurationEnv reads a duration. Bare integers are treated as seconds so
// legacy settings like RPC_TIMEOUT=30 keep working.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
