package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/camuig/foliowatch/internal/analytics"
	"github.com/camuig/foliowatch/internal/csvimport"
	"github.com/camuig/foliowatch/internal/report"
	"github.com/camuig/foliowatch/internal/storage"
	"github.com/camuig/foliowatch/internal/treemap"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Positions

func (s *Server) handleListPositions(w http.ResponseWriter, _ *http.Request) {
	positions, err := s.repo.ListPositions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, positions)
}

func (s *Server) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ticker  string  `json:"ticker"`
		Shares  float64 `json:"shares"`
		AvgCost float64 `json:"avg_cost"`
		Account string  `json:"account"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	// Incomplete input suppresses the operation rather than erroring later.
	if req.Ticker == "" || req.Shares <= 0 || req.AvgCost < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid position payload"})
		return
	}

	p := storage.Position{
		Ticker:  req.Ticker,
		Shares:  req.Shares,
		AvgCost: req.AvgCost,
		Account: req.Account,
	}
	if err := s.repo.CreatePosition(&p); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	// Price the new ticker before the next refresh tick.
	s.cache.Prime([]storage.Position{p})
	s.broadcastView()
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.repo.DeletePosition(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "position not found"})
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.broadcastView()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "csv file is required"})
		return
	}
	defer file.Close()

	positions, err := csvimport.Parse(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.repo.CreatePositions(positions); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.cache.Prime(positions)
	s.broadcastView()
	writeJSON(w, http.StatusCreated, map[string]int{"imported": len(positions)})
}

// Alerts

func (s *Server) handleListAlerts(w http.ResponseWriter, _ *http.Request) {
	alerts, err := s.repo.ListAlerts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ticker      string  `json:"ticker"`
		TargetPrice float64 `json:"target_price"`
		Direction   string  `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Ticker == "" || req.TargetPrice <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid alert payload"})
		return
	}
	if req.Direction != storage.DirectionAbove && req.Direction != storage.DirectionBelow {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "direction must be above or below"})
		return
	}

	a := storage.PriceAlert{
		Ticker:      req.Ticker,
		TargetPrice: req.TargetPrice,
		Direction:   req.Direction,
	}
	if err := s.repo.CreateAlert(&a); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.repo.DeleteAlert(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "alert not found"})
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Portfolio views

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	positions, err := s.repo.ListPositions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	account := r.URL.Query().Get("account")
	view := analytics.BuildView(positions, s.cache.Snapshot(), s.cache.Status(), account)
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) {
	values, err := s.repo.ListDailyValues()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	plEntries, err := s.repo.ListDailyPL()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"values":        values,
		"daily_pl":      analytics.DailyDeltas(plEntries),
		"all_time_high": s.repo.AllTimeHigh(),
	})
}

func (s *Server) handleSparkline(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]
	points := s.cache.History(ticker)
	if points == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown ticker"})
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// Analytics

func (s *Server) handleAccounts(w http.ResponseWriter, _ *http.Request) {
	positions, err := s.repo.ListPositions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.AccountBreakdown(positions, s.cache.Snapshot()))
}

func (s *Server) handleSectors(w http.ResponseWriter, _ *http.Request) {
	positions, err := s.repo.ListPositions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.SectorBreakdown(positions, s.cache.Snapshot()))
}

func (s *Server) handleMovers(w http.ResponseWriter, _ *http.Request) {
	positions, err := s.repo.ListPositions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	gainers, losers := analytics.Movers(positions, s.cache.Snapshot())
	writeJSON(w, http.StatusOK, map[string]any{"gainers": gainers, "losers": losers})
}

const (
	correlationTickers = 10
	correlationDays    = 35
)

func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	positions, err := s.repo.ListPositions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	ctx := r.Context()
	top := analytics.TopByValue(positions, s.cache.Snapshot(), correlationTickers)

	now := time.Now()
	from := now.AddDate(0, 0, -correlationDays)

	series := make(map[string][]float64, len(top))
	for i, t := range top {
		if i > 0 {
			select {
			case <-ctx.Done():
				writeError(w, http.StatusRequestTimeout, ctx.Err())
				return
			case <-time.After(s.config.CandleDelay()):
			}
		}
		candles, err := s.candles.GetCandles(ctx, t, from, now)
		if err != nil {
			// Tickers without history are dropped; the matrix shrinks.
			s.logger.Debug("candles unavailable", "ticker", t, "error", err)
			continue
		}
		series[t] = analytics.Returns(candles.Closes)
	}

	writeJSON(w, http.StatusOK, analytics.Correlation(top, series))
}

type treemapTile struct {
	treemap.Rect
	PLPct float64 `json:"pl_pct"`
	Color string  `json:"color"`
}

func (s *Server) handleTreemap(w http.ResponseWriter, r *http.Request) {
	width := parseFloatOr(r.URL.Query().Get("w"), 800)
	height := parseFloatOr(r.URL.Query().Get("h"), 500)
	if width <= 0 || height <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "w and h must be positive"})
		return
	}

	positions, err := s.repo.ListPositions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	positions = analytics.FilterAccount(positions, r.URL.Query().Get("account"))

	prices := s.cache.Snapshot()
	values := make(map[string]float64)
	for _, p := range positions {
		values[p.Ticker] += prices[p.Ticker].Current * p.Shares
	}

	items := make([]treemap.Item, 0, len(values))
	for _, t := range analytics.DistinctTickers(positions) {
		items = append(items, treemap.Item{Key: t, Value: values[t]})
	}

	plPcts := analytics.BlendedPLPct(positions, prices)
	tiles := make([]treemapTile, 0, len(items))
	for _, rect := range treemap.Layout(items, width, height) {
		pct := plPcts[rect.Key]
		tiles = append(tiles, treemapTile{Rect: rect, PLPct: pct, Color: treemap.Color(pct)})
	}
	writeJSON(w, http.StatusOK, tiles)
}

func (s *Server) handleWhatIf(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ticker string  `json:"ticker"`
		Shares float64 `json:"shares"`
		Price  float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Ticker == "" || req.Shares <= 0 || req.Price < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "incomplete what-if input"})
		return
	}

	positions, err := s.repo.ListPositions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	result := analytics.WhatIf(positions, s.cache.Snapshot(), req.Ticker, req.Shares, req.Price)
	writeJSON(w, http.StatusOK, result)
}

// Extras

func (s *Server) handleAchievements(w http.ResponseWriter, _ *http.Request) {
	achievements, err := s.repo.ListAchievements()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, achievements)
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.news.News(mux.Vars(r)["ticker"]))
}

func (s *Server) handleEarnings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.news.Earnings())
}

func (s *Server) handleGetTheme(w http.ResponseWriter, _ *http.Request) {
	theme := s.repo.GetSetting(storage.SettingTheme, "dark")
	writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

func (s *Server) handlePutTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Theme == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "theme is required"})
		return
	}
	if err := s.repo.PutSetting(storage.SettingTheme, req.Theme); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
}

func (s *Server) handleExportPDF(w http.ResponseWriter, _ *http.Request) {
	positions, err := s.repo.ListPositions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var buf bytes.Buffer
	if err := report.Build(positions, s.cache.Snapshot(), &buf); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio.pdf"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.hub.AddClient(conn)

	if positions, err := s.repo.ListPositions(); err == nil {
		view := analytics.BuildView(positions, s.cache.Snapshot(), s.cache.Status(), "")
		s.hub.SendJSON(conn, view)
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.hub.RemoveClient(conn)
			return
		}
	}
}

func (s *Server) broadcastView() {
	positions, err := s.repo.ListPositions()
	if err != nil {
		s.logger.Error("list positions for broadcast", "error", err)
		return
	}
	s.hub.BroadcastJSON(analytics.BuildView(positions, s.cache.Snapshot(), s.cache.Status(), ""))
}

// Helpers

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func parseFloatOr(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return -1
	}
	return v
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
