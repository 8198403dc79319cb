package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/camuig/foliowatch/internal/config"
	"github.com/camuig/foliowatch/internal/finnhub"
	"github.com/camuig/foliowatch/internal/logger"
	"github.com/camuig/foliowatch/internal/newsfeed"
	"github.com/camuig/foliowatch/internal/pricecache"
	"github.com/camuig/foliowatch/internal/realtime"
	"github.com/camuig/foliowatch/internal/storage"
)

// CandleSource supplies historical closes for the correlation view.
type CandleSource interface {
	GetCandles(ctx context.Context, symbol string, from, to time.Time) (finnhub.CandleSeries, error)
}

type Server struct {
	httpServer *http.Server
	router     *mux.Router
	upgrader   websocket.Upgrader

	repo    *storage.Repository
	cache   *pricecache.Cache
	candles CandleSource
	news    *newsfeed.Service
	hub     *realtime.Hub
	config  *config.Config
	logger  *logger.Logger
}

func NewServer(
	repo *storage.Repository,
	cache *pricecache.Cache,
	candles CandleSource,
	news *newsfeed.Service,
	hub *realtime.Hub,
	cfg *config.Config,
	log *logger.Logger,
) *Server {
	s := &Server{
		repo:    repo,
		cache:   cache,
		candles: candles,
		news:    news,
		hub:     hub,
		config:  cfg,
		logger:  log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	r := mux.NewRouter()
	r.Use(corsMiddleware)

	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/api/positions", s.handleListPositions).Methods(http.MethodGet)
	r.HandleFunc("/api/positions", s.handleCreatePosition).Methods(http.MethodPost)
	r.HandleFunc("/api/positions/import", s.handleImportCSV).Methods(http.MethodPost)
	r.HandleFunc("/api/positions/{id}", s.handleDeletePosition).Methods(http.MethodDelete)

	r.HandleFunc("/api/alerts", s.handleListAlerts).Methods(http.MethodGet)
	r.HandleFunc("/api/alerts", s.handleCreateAlert).Methods(http.MethodPost)
	r.HandleFunc("/api/alerts/{id}", s.handleDeleteAlert).Methods(http.MethodDelete)

	r.HandleFunc("/api/portfolio", s.handlePortfolio).Methods(http.MethodGet)
	r.HandleFunc("/api/portfolio/history", s.handleHistory).Methods(http.MethodGet)
	r.HandleFunc("/api/portfolio/sparkline/{ticker}", s.handleSparkline).Methods(http.MethodGet)

	r.HandleFunc("/api/analytics/accounts", s.handleAccounts).Methods(http.MethodGet)
	r.HandleFunc("/api/analytics/sectors", s.handleSectors).Methods(http.MethodGet)
	r.HandleFunc("/api/analytics/movers", s.handleMovers).Methods(http.MethodGet)
	r.HandleFunc("/api/analytics/correlation", s.handleCorrelation).Methods(http.MethodGet)
	r.HandleFunc("/api/analytics/treemap", s.handleTreemap).Methods(http.MethodGet)
	r.HandleFunc("/api/analytics/whatif", s.handleWhatIf).Methods(http.MethodPost)

	r.HandleFunc("/api/achievements", s.handleAchievements).Methods(http.MethodGet)
	r.HandleFunc("/api/news/{ticker}", s.handleNews).Methods(http.MethodGet)
	r.HandleFunc("/api/earnings", s.handleEarnings).Methods(http.MethodGet)

	r.HandleFunc("/api/settings/theme", s.handleGetTheme).Methods(http.MethodGet)
	r.HandleFunc("/api/settings/theme", s.handlePutTheme).Methods(http.MethodPut)

	r.HandleFunc("/api/export/pdf", s.handleExportPDF).Methods(http.MethodGet)

	r.HandleFunc("/ws", s.handleWebSocket).Methods(http.MethodGet)

	s.router = r
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Web.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("web server starting", "port", s.config.Web.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
