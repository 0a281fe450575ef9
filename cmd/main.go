package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"taxipark/config"
	"taxipark/pkg/logger"
	"taxipark/pkg/session"
	"taxipark/pkg/tracing"
	"taxipark/pkg/web"
	"taxipark/service"
	"taxipark/storage/backend"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Tracing
	shutdownTracing, err := tracing.Init(cfg, log)
	if err != nil {
		log.Error("Failed to initialize tracing", logger.Error(err))
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warning("tracing shutdown", logger.Error(err))
		}
	}()

	// 4. Storage
	stg, err := backend.Open(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to open storage", logger.Error(err), logger.String("driver", cfg.DBDriver))
		os.Exit(1)
	}
	defer stg.Close()

	// 5. Sessions
	sessions, closeSessions, err := openSessions(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to open session store", logger.Error(err))
		os.Exit(1)
	}
	defer closeSessions()

	// 6. Services and HTTP
	svc := service.New(cfg, stg, sessions, log)

	srv, err := web.New(cfg, svc, log)
	if err != nil {
		log.Error("Failed to build HTTP server", logger.Error(err))
		os.Exit(1)
	}

	log.Info("taxipark is running", logger.Int("port", cfg.HTTPPort), logger.String("db", cfg.DBDriver))

	if err := srv.Run(ctx); err != nil {
		log.Error("HTTP server stopped", logger.Error(err))
	}
	log.Info("Shutting down...")
}

func openSessions(ctx context.Context, cfg config.Config, log logger.ILogger) (session.Store, func(), error) {
	if cfg.SessionStore != config.SessionStoreRedis {
		return session.NewMemoryStore(), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, err
	}
	log.Info("Redis session store connected")

	return session.NewRedisStore(rdb), func() { rdb.Close() }, nil
}
