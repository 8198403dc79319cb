package storage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Positions

func (r *Repository) ListPositions() ([]Position, error) {
	var positions []Position
	err := r.db.Order("id ASC").Find(&positions).Error
	return positions, err
}

func (r *Repository) CreatePosition(p *Position) error {
	p.Ticker = strings.ToUpper(strings.TrimSpace(p.Ticker))
	if !ValidAccount(p.Account) {
		p.Account = AccountFidelity
	}
	return r.db.Create(p).Error
}

func (r *Repository) CreatePositions(positions []Position) error {
	if len(positions) == 0 {
		return nil
	}
	for i := range positions {
		positions[i].Ticker = strings.ToUpper(strings.TrimSpace(positions[i].Ticker))
		if !ValidAccount(positions[i].Account) {
			positions[i].Account = AccountFidelity
		}
	}
	return r.db.Create(&positions).Error
}

func (r *Repository) DeletePosition(id uint) error {
	res := r.db.Delete(&Position{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SeedDefaultPositions inserts the given positions only when the table is
// empty, so a fresh database starts with something to look at.
func (r *Repository) SeedDefaultPositions(defaults []Position) error {
	var count int64
	if err := r.db.Model(&Position{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count positions: %w", err)
	}
	if count > 0 {
		return nil
	}
	return r.CreatePositions(defaults)
}

// Daily history. One row per calendar day; a second write on the same day
// replaces the value (last live observation of the session wins).

func (r *Repository) UpsertDailyValue(date string, value float64) error {
	var existing DailyValue
	err := r.db.Where("date = ?", date).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&DailyValue{Date: date, Value: value}).Error
	}
	if err != nil {
		return err
	}
	existing.Value = value
	return r.db.Save(&existing).Error
}

func (r *Repository) ListDailyValues() ([]DailyValue, error) {
	var entries []DailyValue
	err := r.db.Order("date ASC").Find(&entries).Error
	return entries, err
}

func (r *Repository) UpsertDailyPL(date string, value float64) error {
	var existing DailyPL
	err := r.db.Where("date = ?", date).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&DailyPL{Date: date, Value: value}).Error
	}
	if err != nil {
		return err
	}
	existing.Value = value
	return r.db.Save(&existing).Error
}

func (r *Repository) ListDailyPL() ([]DailyPL, error) {
	var entries []DailyPL
	err := r.db.Order("date ASC").Find(&entries).Error
	return entries, err
}

// Alerts

func (r *Repository) ListAlerts() ([]PriceAlert, error) {
	var alerts []PriceAlert
	err := r.db.Order("id ASC").Find(&alerts).Error
	return alerts, err
}

func (r *Repository) CreateAlert(a *PriceAlert) error {
	a.Ticker = strings.ToUpper(strings.TrimSpace(a.Ticker))
	return r.db.Create(a).Error
}

func (r *Repository) DeleteAlert(id uint) error {
	res := r.db.Delete(&PriceAlert{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAlertTriggered flips the one-shot flag. It never flips back.
func (r *Repository) MarkAlertTriggered(id uint, at time.Time) error {
	return r.db.Model(&PriceAlert{}).Where("id = ?", id).
		Updates(map[string]any{"triggered": true, "triggered_at": at}).Error
}

// Achievements

func (r *Repository) ListAchievements() ([]Achievement, error) {
	var achievements []Achievement
	err := r.db.Order("unlocked_at ASC").Find(&achievements).Error
	return achievements, err
}

// UnlockAchievement is idempotent: unlocking an already-unlocked key is a
// no-op and reports false.
func (r *Repository) UnlockAchievement(key, name string, at time.Time) (bool, error) {
	var existing Achievement
	err := r.db.Where("key = ?", key).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := r.db.Create(&Achievement{Key: key, Name: name, UnlockedAt: at}).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Settings

func (r *Repository) GetSetting(key, fallback string) string {
	var s Setting
	if err := r.db.Where("key = ?", key).First(&s).Error; err != nil {
		return fallback
	}
	return s.Value
}

func (r *Repository) PutSetting(key, value string) error {
	var existing Setting
	err := r.db.Where("key = ?", key).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	existing.Value = value
	return r.db.Save(&existing).Error
}

// AllTimeHigh returns the persisted high-water mark, 0 when unset or corrupt.
func (r *Repository) AllTimeHigh() float64 {
	raw := r.GetSetting(SettingAllTimeHigh, "0")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func (r *Repository) SetAllTimeHigh(v float64) error {
	return r.PutSetting(SettingAllTimeHigh, strconv.FormatFloat(v, 'f', 2, 64))
}
