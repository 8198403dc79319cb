// Command report renders a one-shot PDF of the current portfolio without
// starting the dashboard service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/camuig/foliowatch/internal/analytics"
	"github.com/camuig/foliowatch/internal/config"
	"github.com/camuig/foliowatch/internal/finnhub"
	"github.com/camuig/foliowatch/internal/logger"
	"github.com/camuig/foliowatch/internal/pricecache"
	"github.com/camuig/foliowatch/internal/report"
	"github.com/camuig/foliowatch/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dbPath := flag.String("db", "data/foliowatch.db", "path to SQLite database")
	outPath := flag.String("out", "portfolio.pdf", "output PDF path")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = config.Default()
		} else {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
			os.Exit(1)
		}
	}

	log := logger.New(cfg.Logging.Level)

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

	positions, err := repo.ListPositions()
	if err != nil {
		log.Error("list positions failed", "error", err)
		os.Exit(1)
	}

	// One refresh cycle; without a token the prices stay simulated.
	provider := finnhub.NewClient(cfg, log)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	cache := pricecache.New(provider, cfg.QuoteDelay(), rng, log)
	cache.Prime(positions)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	status := cache.RefreshCycle(ctx, analytics.DistinctTickers(positions))
	log.Info("prices refreshed", "status", string(status))

	out, err := os.Create(*outPath)
	if err != nil {
		log.Error("create output file", "error", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := report.Build(positions, cache.Snapshot(), out); err != nil {
		log.Error("build report", "error", err)
		os.Exit(1)
	}
	log.Info("report written", "path", *outPath, "positions", len(positions))
}
