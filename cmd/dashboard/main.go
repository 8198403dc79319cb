package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/camuig/foliowatch/internal/config"
	"github.com/camuig/foliowatch/internal/finnhub"
	"github.com/camuig/foliowatch/internal/lifecycle"
	"github.com/camuig/foliowatch/internal/logger"
	"github.com/camuig/foliowatch/internal/newsfeed"
	"github.com/camuig/foliowatch/internal/notify"
	"github.com/camuig/foliowatch/internal/pricecache"
	"github.com/camuig/foliowatch/internal/realtime"
	"github.com/camuig/foliowatch/internal/scheduler"
	"github.com/camuig/foliowatch/internal/storage"
	"github.com/camuig/foliowatch/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dbPath := flag.String("db", "data/foliowatch.db", "path to SQLite database")
	flag.Parse()

	_ = godotenv.Load()

	// Load config; the dashboard runs without a config file.
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = config.Default()
		} else {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
			os.Exit(1)
		}
	}

	// Init logger
	log := logger.New(cfg.Logging.Level)
	log.Info("starting foliowatch")

	// Init database
	db, err := storage.NewDatabase(*dbPath)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	repo := storage.NewRepository(db)
	if err := repo.SeedDefaultPositions(storage.DefaultPositions); err != nil {
		log.Error("seed positions failed", "error", err)
		os.Exit(1)
	}

	// Context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init services
	provider := finnhub.NewClient(cfg, log)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	cache := pricecache.New(provider, cfg.QuoteDelay(), rng, log)
	notifier := notify.New(cfg, log)
	hub := realtime.NewHub()
	evaluator := lifecycle.NewEvaluator(repo, notifier, hub, log)
	news := newsfeed.NewService(provider, cfg.NewsDelay(), log)
	sched := scheduler.NewScheduler(repo, cache, evaluator, news, hub, cfg, log)
	webServer := web.NewServer(repo, cache, provider, news, hub, cfg, log)

	// Start scheduler in goroutine
	go sched.Run(ctx)

	// Start web server in goroutine
	go func() {
		if err := webServer.Start(); err != nil {
			log.Error("web server error", "error", err)
		}
	}()

	notifier.Status("Foliowatch started")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutdown signal received", "signal", sig.String())

	// Graceful shutdown
	cancel() // stop scheduler

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := webServer.Shutdown(shutdownCtx); err != nil {
		log.Error("web server shutdown error", "error", err)
	}

	notifier.Status("Foliowatch stopped")
	log.Info("foliowatch stopped")
}
