package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/camuig/foliowatch/internal/analytics"
	"github.com/camuig/foliowatch/internal/config"
	"github.com/camuig/foliowatch/internal/lifecycle"
	"github.com/camuig/foliowatch/internal/logger"
	"github.com/camuig/foliowatch/internal/newsfeed"
	"github.com/camuig/foliowatch/internal/pricecache"
	"github.com/camuig/foliowatch/internal/realtime"
	"github.com/camuig/foliowatch/internal/storage"
)

type Scheduler struct {
	repo      *storage.Repository
	cache     *pricecache.Cache
	evaluator *lifecycle.Evaluator
	news      *newsfeed.Service
	hub       *realtime.Hub
	config    *config.Config
	logger    *logger.Logger
}

func NewScheduler(
	repo *storage.Repository,
	cache *pricecache.Cache,
	evaluator *lifecycle.Evaluator,
	news *newsfeed.Service,
	hub *realtime.Hub,
	cfg *config.Config,
	log *logger.Logger,
) *Scheduler {
	return &Scheduler{
		repo:      repo,
		cache:     cache,
		evaluator: evaluator,
		news:      news,
		hub:       hub,
		config:    cfg,
		logger:    log,
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	interval := s.config.RefreshInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", "interval", interval.String())

	// Run immediately on start
	s.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in refresh cycle", "panic", fmt.Sprint(r))
		}
	}()

	s.logger.Debug("starting refresh cycle")

	// 1. Load positions and make sure every ticker has a seeded quote.
	positions, err := s.repo.ListPositions()
	if err != nil {
		s.logger.Error("list positions", "error", err)
		return
	}
	s.cache.Prime(positions)

	// 2. Refresh every held ticker.
	tickers := analytics.DistinctTickers(positions)
	status := s.cache.RefreshCycle(ctx, tickers)
	if ctx.Err() != nil {
		return
	}

	// 3. Apply the lifecycle rules against the fresh quotes.
	prices := s.cache.Snapshot()
	s.evaluator.AfterRefresh(positions, prices, status)

	// 4. News and earnings piggyback on the first live cycle.
	if status == pricecache.StatusLive {
		go s.news.RefreshOnce(ctx, tickers)
	}

	// 5. Push the updated view to connected clients.
	s.hub.BroadcastJSON(analytics.BuildView(positions, prices, status, ""))

	s.logger.Debug("refresh cycle completed", "tickers", len(tickers), "status", string(status))
}
