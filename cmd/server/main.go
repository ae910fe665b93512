// Package main - entrypoint of the portfolio backend API: the Wordly daily
// word-game leaderboard, the chat proxy, and health/metrics.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jaymian-lee/portfolio-api/config"
	"github.com/jaymian-lee/portfolio-api/internal/application/command"
	"github.com/jaymian-lee/portfolio-api/internal/application/query"
	"github.com/jaymian-lee/portfolio-api/internal/domain/wordly"
	"github.com/jaymian-lee/portfolio-api/internal/infrastructure/external/openai"
	"github.com/jaymian-lee/portfolio-api/internal/infrastructure/persistence/file"
	"github.com/jaymian-lee/portfolio-api/internal/infrastructure/persistence/memory"
	"github.com/jaymian-lee/portfolio-api/internal/infrastructure/persistence/postgres"
	redisstore "github.com/jaymian-lee/portfolio-api/internal/infrastructure/persistence/redis"
	httpserver "github.com/jaymian-lee/portfolio-api/internal/interface/http"
	"github.com/jaymian-lee/portfolio-api/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		AddCaller: cfg.App.Debug,
	}).With(logger.String("app", cfg.App.Name))

	log.Info("starting",
		logger.String("version", cfg.App.Version),
		logger.String("env", string(cfg.App.Environment)),
	)

	store, storeKind, closeStore, err := buildStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("build store: %w", err)
	}
	defer closeStore()

	log.Info("ranking store ready", logger.String("backend", storeKind))

	chat := openai.NewClient(openai.ClientConfig{
		BaseURL:     cfg.OpenAI.BaseURL,
		APIKey:      cfg.OpenAI.APIKey,
		Model:       cfg.OpenAI.Model,
		Temperature: cfg.OpenAI.Temperature,
		Timeout:     cfg.OpenAI.Timeout,
	})
	if !chat.Configured() {
		log.Warn("OPENAI_API_KEY not set, chat endpoint will report an error")
	}

	var metrics *httpserver.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = httpserver.NewMetrics()
	}

	serverCfg := httpserver.DefaultConfig()
	serverCfg.Host = cfg.HTTP.Host
	serverCfg.Port = cfg.HTTP.Port
	serverCfg.ReadTimeout = cfg.HTTP.ReadTimeout
	serverCfg.WriteTimeout = cfg.HTTP.WriteTimeout
	serverCfg.IdleTimeout = cfg.HTTP.IdleTimeout
	serverCfg.EnableCORS = cfg.HTTP.EnableCORS
	serverCfg.AllowedOrigins = cfg.HTTP.AllowedOrigins
	serverCfg.EnableMetrics = cfg.Observability.MetricsEnabled
	serverCfg.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute

	server := httpserver.NewServer(serverCfg, httpserver.Dependencies{
		SubmitScoreHandler:    command.NewSubmitScoreHandler(store),
		GetLeaderboardHandler: query.NewGetLeaderboardHandler(store),
		GetHistoryHandler:     query.NewGetHistoryHandler(store),
		GetPlayersHandler:     query.NewGetPlayersHandler(store),
		Store:                 store,
		StoreKind:             storeKind,
		Chat:                  chat,
		Logger:                log.With(logger.Component("http")),
		Metrics:               metrics,
	})

	errCh := server.StartAsync()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("stopped")
	return nil
}

// buildStore wires the configured ranking store backend. With StoreAuto the
// first reachable configured backend wins: redis, then postgres, then file.
func buildStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (wordly.Store, string, func(), error) {
	noop := func() {}

	backend := cfg.Store.Backend
	if backend == config.StoreAuto {
		switch {
		case cfg.Redis.Configured():
			backend = config.StoreRedis
		case cfg.Database.Configured():
			backend = config.StorePostgres
		case cfg.Store.FilePath != "":
			backend = config.StoreFile
		default:
			backend = config.StoreMemory
		}
	}

	switch backend {
	case config.StoreRedis:
		client, err := redisstore.NewClient(ctx, redisstore.Config{
			URL:          cfg.Redis.URL,
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			return nil, "", noop, err
		}
		return redisstore.NewBoardStore(client), "redis", func() { _ = client.Close() }, nil

	case config.StorePostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{
			URL:             cfg.Database.URL,
			MaxConns:        int32(cfg.Database.MaxConns),
			MinConns:        int32(cfg.Database.MinConns),
			MaxConnLifetime: cfg.Database.ConnMaxLifetime,
			MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
			ConnectTimeout:  cfg.Database.ConnectTimeout,
		})
		if err != nil {
			return nil, "", noop, err
		}
		store, err := postgres.NewBoardStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, "", noop, err
		}
		return store, "postgres", pool.Close, nil

	case config.StoreFile:
		store, err := file.NewBoardStore(cfg.Store.FilePath)
		if err != nil {
			return nil, "", noop, err
		}
		return store, "file", noop, nil

	case config.StoreMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return memory.NewBoardStore(), "memory", noop, nil

	case config.StoreNone:
		return wordly.NotConfiguredStore{}, "none", noop, nil

	default:
		return nil, "", noop, fmt.Errorf("unknown store backend %q", backend)
	}
}
