package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	_ "modernc.org/sqlite"

	"github.com/rl1809/inventory-index/internal/adapter/handler"
	"github.com/rl1809/inventory-index/internal/adapter/storage"
	"github.com/rl1809/inventory-index/internal/benchmark"
	"github.com/rl1809/inventory-index/internal/config"
	"github.com/rl1809/inventory-index/internal/core/service"
	"github.com/rl1809/inventory-index/internal/port"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := cfg.NewLogger(os.Stdout, "server")
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpLis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		logger.Error("listen", "addr", cfg.HTTPAddr, "error", err)
		os.Exit(1)
	}
	grpcLis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		httpLis.Close()
		logger.Error("listen", "addr", cfg.GRPCAddr, "error", err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, logger, httpLis, grpcLis); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run serves HTTP and gRPC on the given listeners until ctx is done. Both
// listeners are closed when it returns.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, httpLis, grpcLis net.Listener) error {
	defer httpLis.Close()
	defer grpcLis.Close()

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()
	logger.Info("repository ready", "backend", cfg.Backend)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	instrumented := storage.NewInstrumented(repo, cfg.Backend, storage.NewMetrics(reg))

	if err := seed(ctx, cfg, instrumented, logger); err != nil {
		return err
	}

	inventoryService := service.NewInventoryService(instrumented)

	// gRPC
	grpcServer := grpc.NewServer()
	handler.RegisterInventoryServiceServer(grpcServer, handler.NewGRPCHandler(inventoryService, logger))

	// HTTP
	mux := http.NewServeMux()
	handler.NewHTTPHandler(inventoryService, logger).Register(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	httpServer := &http.Server{
		Handler:           handler.WithRequestID(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("gRPC server listening", "addr", grpcLis.Addr().String())
		// Serve reports ErrServerStopped when shutdown wins the race.
		if err := grpcServer.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", httpLis.Addr().String())
		if err := httpServer.Serve(httpLis); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP shutdown", "error", err)
		}
		logger.Info("HTTP server stopped")

		grpcServer.GracefulStop()
		logger.Info("gRPC server stopped")
		return nil
	})

	return g.Wait()
}

// openRepository builds the configured backend. The returned func releases
// any connection it holds.
func openRepository(ctx context.Context, cfg *config.Config) (port.InventoryRepository, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case config.BackendFlat:
		return storage.NewFlatIndex(), noop, nil

	case config.BackendSharded:
		return storage.NewShardedIndex(), noop, nil

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			PoolSize: 100,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return storage.NewRedisAdapter(rdb), func() { rdb.Close() }, nil

	case config.BackendMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		db.SetMaxOpenConns(50)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		return openSQL(ctx, db)

	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		db.SetMaxOpenConns(1)
		return openSQL(ctx, db)
	}

	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

func openSQL(ctx context.Context, db *sql.DB) (port.InventoryRepository, func(), error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	adapter := storage.NewSQLAdapter(db)
	if err := adapter.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return adapter, func() { db.Close() }, nil
}

func seed(ctx context.Context, cfg *config.Config, repo port.InventoryRepository, logger *slog.Logger) error {
	if cfg.SeedPrefixes == 0 || cfg.SeedPerPrefix == 0 {
		return nil
	}

	d := benchmark.Dataset{
		Prefixes:  benchmark.Prefixes(cfg.SeedPrefixes),
		PerPrefix: cfg.SeedPerPrefix,
	}

	start := time.Now()
	if err := benchmark.PopulateParallel(ctx, repo, d, cfg.SeedWorkers); err != nil {
		return fmt.Errorf("seed inventory: %w", err)
	}
	logger.Info("seeded inventory",
		"items", d.Size(), "prefixes", len(d.Prefixes), "workers", cfg.SeedWorkers, "duration", time.Since(start))
	return nil
}
