package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/riyadah-elite/internal/api"
	"github.com/dom/riyadah-elite/internal/config"
	"github.com/dom/riyadah-elite/internal/logging"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/dom/riyadah-elite/internal/repository/memory"
	"github.com/dom/riyadah-elite/internal/repository/postgres"
	"github.com/dom/riyadah-elite/internal/service"
	"github.com/dom/riyadah-elite/internal/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to an optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// Initialize repositories
	var repos *repository.Repositories
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory store; data is lost on restart")
		repos = memory.NewRepositories()
	} else {
		level := gormlogger.Warn
		if cfg.IsDevelopment() {
			level = gormlogger.Info
		}
		db, err := postgres.NewConnection(cfg.DatabaseURL, level)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		repos = postgres.NewRepositories(db)
	}

	// Optional shared rate limit store
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unreachable, rate limits will fail open", zap.Error(err))
		}
		cancel()
	}

	// Initialize WebSocket hub
	hub := websocket.NewHub(logger)
	go hub.Run()
	defer hub.Stop()

	services := service.NewServices(repos, cfg, hub, logger)
	router := api.NewRouter(services, hub, cfg, logger, rdb)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server stopped")
}
