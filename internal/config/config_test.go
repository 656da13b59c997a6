package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		HTTPAddr:        ":8080",
		GRPCAddr:        ":50051",
		Backend:         BackendSharded,
		SeedWorkers:     4,
		LogLevel:        "info",
		ShutdownTimeout: 5 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid sharded config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid sqlite config",
			mutate: func(c *Config) {
				c.Backend = BackendSQLite
				c.SQLitePath = "./inventory.db"
			},
		},
		{
			name:        "unknown backend",
			mutate:      func(c *Config) { c.Backend = "csv" },
			wantErr:     true,
			errorString: "invalid backend 'csv'",
		},
		{
			name:        "redis without address",
			mutate:      func(c *Config) { c.Backend = BackendRedis },
			wantErr:     true,
			errorString: "redis address cannot be empty",
		},
		{
			name:        "mysql without dsn",
			mutate:      func(c *Config) { c.Backend = BackendMySQL },
			wantErr:     true,
			errorString: "mysql dsn cannot be empty",
		},
		{
			name:        "too many seed prefixes",
			mutate:      func(c *Config) { c.SeedPrefixes = 700 },
			wantErr:     true,
			errorString: "invalid seed prefixes 700",
		},
		{
			name:        "seed per prefix overflows six digits",
			mutate:      func(c *Config) { c.SeedPerPrefix = 1000000 },
			wantErr:     true,
			errorString: "invalid seed per prefix 1000000",
		},
		{
			name:        "zero workers",
			mutate:      func(c *Config) { c.SeedWorkers = 0 },
			wantErr:     true,
			errorString: "invalid seed workers 0",
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "empty http address",
			mutate:      func(c *Config) { c.HTTPAddr = "" },
			wantErr:     true,
			errorString: "http address cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("INVENTORY_BACKEND", "FLAT")
	t.Setenv("SEED_PREFIXES", "26")
	t.Setenv("SEED_PER_PREFIX", "1000")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("SEED_WORKERS", "not-a-number")

	cfg := Load()

	if cfg.Backend != BackendFlat {
		t.Errorf("expected flat, got %s", cfg.Backend)
	}
	if cfg.SeedPrefixes != 26 || cfg.SeedPerPrefix != 1000 {
		t.Errorf("unexpected seed config: %d x %d", cfg.SeedPrefixes, cfg.SeedPerPrefix)
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Errorf("expected 2s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.SeedWorkers != 4 {
		t.Errorf("expected default workers for invalid value, got %d", cfg.SeedWorkers)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected default http address, got %s", cfg.HTTPAddr)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("REDIS_ADDR=cache:6380\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("REDIS_ADDR", "")
	os.Unsetenv("REDIS_ADDR")

	cfg := Load()
	if cfg.RedisAddr != "cache:6380" {
		t.Errorf("expected value from .env, got %s", cfg.RedisAddr)
	}
}

func TestNewLogger(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf, "test")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "component=test") {
		t.Errorf("unexpected log output: %s", out)
	}
}
