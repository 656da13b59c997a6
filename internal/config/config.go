package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendFlat    = "flat"
	BackendSharded = "sharded"
	BackendRedis   = "redis"
	BackendMySQL   = "mysql"
	BackendSQLite  = "sqlite"
)

var validBackends = []string{BackendFlat, BackendSharded, BackendRedis, BackendMySQL, BackendSQLite}

type Config struct {
	HTTPAddr string
	GRPCAddr string

	// Repository backend
	Backend    string
	RedisAddr  string
	MySQLDSN   string
	SQLitePath string

	// Synthetic data loaded at startup
	SeedPrefixes  int
	SeedPerPrefix int
	SeedWorkers   int

	LogLevel        string
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set take precedence.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		GRPCAddr: getEnv("GRPC_ADDR", ":50051"),

		Backend:    strings.ToLower(getEnv("INVENTORY_BACKEND", BackendSharded)),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		MySQLDSN:   getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/inventory"),
		SQLitePath: getEnv("SQLITE_PATH", "./data/inventory.db"),

		SeedPrefixes:  getEnvInt("SEED_PREFIXES", 0),
		SeedPerPrefix: getEnvInt("SEED_PER_PREFIX", 0),
		SeedWorkers:   getEnvInt("SEED_WORKERS", 4),

		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if c.HTTPAddr == "" {
		errs = append(errs, "http address cannot be empty")
	}
	if c.GRPCAddr == "" {
		errs = append(errs, "grpc address cannot be empty")
	}

	if !slices.Contains(validBackends, c.Backend) {
		errs = append(errs, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, validBackends))
	}
	switch c.Backend {
	case BackendRedis:
		if c.RedisAddr == "" {
			errs = append(errs, "redis address cannot be empty when using redis backend")
		}
	case BackendMySQL:
		if c.MySQLDSN == "" {
			errs = append(errs, "mysql dsn cannot be empty when using mysql backend")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, "sqlite path cannot be empty when using sqlite backend")
		}
	}

	if c.SeedPrefixes < 0 || c.SeedPrefixes > 26*26 {
		errs = append(errs, fmt.Sprintf("invalid seed prefixes %d: must be between 0 and %d", c.SeedPrefixes, 26*26))
	}
	if c.SeedPerPrefix < 0 || c.SeedPerPrefix > 999999 {
		errs = append(errs, fmt.Sprintf("invalid seed per prefix %d: must be between 0 and 999999", c.SeedPerPrefix))
	}
	if c.SeedWorkers < 1 {
		errs = append(errs, fmt.Sprintf("invalid seed workers %d: must be at least 1", c.SeedWorkers))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err.Error())
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
