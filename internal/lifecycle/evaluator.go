package lifecycle

import (
	"time"

	"github.com/camuig/foliowatch/internal/analytics"
	"github.com/camuig/foliowatch/internal/logger"
	"github.com/camuig/foliowatch/internal/pricecache"
	"github.com/camuig/foliowatch/internal/storage"
)

// Notifier delivers out-of-band milestone messages. notify.Notifier
// satisfies it; tests use a recorder.
type Notifier interface {
	AlertTriggered(ticker, direction string, target, price float64)
	NewAllTimeHigh(value float64)
	AchievementUnlocked(name string)
}

// Broadcaster pushes transient banners to connected clients.
type Broadcaster interface {
	BroadcastJSON(v any)
}

// Banner is a transient client notification; the client dismisses it after
// TTLSeconds.
type Banner struct {
	Type       string  `json:"type"`
	Message    string  `json:"message"`
	Ticker     string  `json:"ticker,omitempty"`
	Value      float64 `json:"value,omitempty"`
	TTLSeconds int     `json:"ttl_seconds"`
}

const bannerTTLSeconds = 6

// Evaluator runs the snapshot/ATH/achievement/alert rules after every price
// refresh. Its one-shot guards live for the process lifetime.
type Evaluator struct {
	repo     *storage.Repository
	notifier Notifier
	hub      Broadcaster
	logger   *logger.Logger
	now      func() time.Time

	session  session
	unlocked map[string]bool
}

func NewEvaluator(repo *storage.Repository, n Notifier, hub Broadcaster, log *logger.Logger) *Evaluator {
	e := &Evaluator{
		repo:     repo,
		notifier: n,
		hub:      hub,
		logger:   log,
		now:      time.Now,
		unlocked: make(map[string]bool),
	}
	if achievements, err := repo.ListAchievements(); err == nil {
		for _, a := range achievements {
			e.unlocked[a.Key] = true
		}
	}
	return e
}

// AfterRefresh applies the full lifecycle pass for one completed price cycle.
// Every step is non-fatal: persistence errors are logged and the pass
// continues.
func (e *Evaluator) AfterRefresh(positions []storage.Position, prices map[string]pricecache.Quote, status pricecache.Status) {
	valuation := analytics.Value(positions, prices)

	if status == pricecache.StatusLive {
		e.recordDailySnapshot(valuation.TotalValue)
		e.recordDailyPL(valuation.TotalValue)
		e.checkAllTimeHigh(valuation.TotalValue)
		e.evaluateAchievements(valuation, positions, prices)
	}

	e.evaluateAlerts(prices)
}

func (e *Evaluator) recordDailySnapshot(totalValue float64) {
	if e.session.snapshotRecorded == Completed {
		return
	}
	today := e.now().Format("2006-01-02")
	if err := e.repo.UpsertDailyValue(today, totalValue); err != nil {
		e.logger.Error("record daily snapshot", "error", err)
		return
	}
	e.session.snapshotRecorded = Completed
}

func (e *Evaluator) recordDailyPL(totalValue float64) {
	if e.session.dailyPLRecorded == Completed {
		return
	}
	today := e.now().Format("2006-01-02")
	if err := e.repo.UpsertDailyPL(today, totalValue); err != nil {
		e.logger.Error("record daily pl", "error", err)
		return
	}
	e.session.dailyPLRecorded = Completed
}

func (e *Evaluator) checkAllTimeHigh(totalValue float64) {
	if e.session.athChecked == Completed {
		return
	}
	e.session.athChecked = Completed

	prev := e.repo.AllTimeHigh()
	if totalValue <= prev {
		return
	}
	if err := e.repo.SetAllTimeHigh(totalValue); err != nil {
		e.logger.Error("persist all-time high", "error", err)
		return
	}
	if prev > 0 {
		e.logger.Info("new all-time high", "value", totalValue, "previous", prev)
		e.notifier.NewAllTimeHigh(totalValue)
		e.hub.BroadcastJSON(Banner{
			Type:       "ath",
			Message:    "New all-time high!",
			Value:      totalValue,
			TTLSeconds: bannerTTLSeconds,
		})
	}
}

func (e *Evaluator) evaluateAchievements(v analytics.Valuation, positions []storage.Position, prices map[string]pricecache.Quote) {
	for _, r := range achievementRules {
		if e.unlocked[r.Key] {
			continue
		}
		if !r.Met(v, positions, prices) {
			continue
		}
		created, err := e.repo.UnlockAchievement(r.Key, r.Name, e.now())
		if err != nil {
			e.logger.Error("unlock achievement", "key", r.Key, "error", err)
			continue
		}
		e.unlocked[r.Key] = true
		if created {
			e.logger.Info("achievement unlocked", "key", r.Key)
			e.notifier.AchievementUnlocked(r.Name)
			e.hub.BroadcastJSON(Banner{
				Type:       "achievement",
				Message:    r.Name,
				TTLSeconds: bannerTTLSeconds,
			})
		}
	}
}

func (e *Evaluator) evaluateAlerts(prices map[string]pricecache.Quote) {
	alerts, err := e.repo.ListAlerts()
	if err != nil {
		e.logger.Error("list alerts", "error", err)
		return
	}

	for _, a := range alerts {
		if a.Triggered {
			continue
		}
		price := prices[a.Ticker].Current
		if price <= 0 {
			continue
		}

		fired := (a.Direction == storage.DirectionAbove && price >= a.TargetPrice) ||
			(a.Direction == storage.DirectionBelow && price <= a.TargetPrice)
		if !fired {
			continue
		}

		if err := e.repo.MarkAlertTriggered(a.ID, e.now()); err != nil {
			e.logger.Error("mark alert triggered", "id", a.ID, "error", err)
			continue
		}
		e.logger.Info("price alert triggered", "ticker", a.Ticker, "target", a.TargetPrice, "price", price)
		e.notifier.AlertTriggered(a.Ticker, a.Direction, a.TargetPrice, price)
		e.hub.BroadcastJSON(Banner{
			Type:       "alert",
			Message:    "Price alert triggered",
			Ticker:     a.Ticker,
			Value:      price,
			TTLSeconds: bannerTTLSeconds,
		})
	}
}
