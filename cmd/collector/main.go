package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/ambuso/crypto-etl/internal/coingecko"
	"github.com/ambuso/crypto-etl/internal/collector"
	"github.com/ambuso/crypto-etl/internal/config"
	"github.com/ambuso/crypto-etl/internal/database"
	"github.com/ambuso/crypto-etl/internal/scheduler"
	"github.com/ambuso/crypto-etl/internal/version"
	"github.com/ambuso/crypto-etl/internal/writer"
)

func main() {
	configPath := flag.String("config", "", "path to config file (empty reads DB_* environment variables)")
	envFile := flag.String("env", ".env", "path to .env file")
	once := flag.Bool("once", false, "run a single collection cycle and exit")
	initSchema := flag.Bool("init-schema", false, "create the crypto schema and table, then exit")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(*envFile); err != nil {
		logger.Debug("no .env file loaded, using process environment", "path", *envFile)
	}

	logger.Info("starting collector",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"api_url", cfg.API.BaseURL,
		"db_host", cfg.Database.Host,
		"db_name", cfg.Database.Name,
		"job", cfg.Job.Name,
		"interval", cfg.Job.Interval,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if *initSchema {
		if err := runInitSchema(ctx, cfg, logger); err != nil {
			logger.Error("failed to initialise schema", "error", err)
			os.Exit(1)
		}
		return
	}

	pool, err := database.Open(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	apiClient := coingecko.NewClient(
		cfg.API.BaseURL,
		cfg.API.APIKey,
		coingecko.WithLogger(logger),
		coingecko.WithTimeout(cfg.API.Timeout),
		coingecko.WithRetries(cfg.API.MaxRetries, time.Second),
	)

	priceWriter := writer.New(pool, logger)

	collectorCfg := collector.DefaultConfig()
	collectorCfg.VsCurrency = cfg.API.VsCurrency
	coll := collector.New(collectorCfg, apiClient, priceWriter, logger)

	runner := scheduler.New(
		scheduler.JobFromConfig(cfg.Job),
		coll.Run,
		scheduler.LogNotifier{Logger: logger},
		logger,
	)

	if *once {
		if err := runner.RunOnce(ctx); err != nil {
			os.Exit(1)
		}
		return
	}

	healthServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:           createHealthHandler(pool, priceWriter, runner, cfg.Metrics.Path),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting health server", "port", cfg.Metrics.Port)
		if err := healthServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := runner.Start(gctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		<-gctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return runner.Stop(shutdownCtx)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return healthServer.Shutdown(shutdownCtx)
	})

	logger.Info("collector running",
		"job", cfg.Job.Name,
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Metrics.Port),
	)

	if err := g.Wait(); err != nil {
		logger.Error("collector exited with error", "error", err)
		os.Exit(1)
	}

	wm := priceWriter.Metrics()
	logger.Info("collector stopped",
		"rows_inserted", wm.Inserts,
		"commits", wm.Commits,
		"rollbacks", wm.Rollbacks,
	)
}

// runInitSchema connects, verifies the database and creates the schema.
func runInitSchema(ctx context.Context, cfg *config.CollectorConfig, logger *slog.Logger) error {
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := writer.New(pool, logger).EnsureSchema(ctx); err != nil {
		return err
	}

	logger.Info("schema ready")
	return nil
}
