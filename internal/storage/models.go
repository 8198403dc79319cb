package storage

import "time"

// Valid account names. Positions outside this set are coerced to AccountFidelity.
const (
	AccountFidelity = "Fidelity"
	AccountChase    = "Chase"
	AccountIBKR     = "IBKR"
)

var Accounts = []string{AccountFidelity, AccountChase, AccountIBKR}

func ValidAccount(name string) bool {
	for _, a := range Accounts {
		if a == name {
			return true
		}
	}
	return false
}

// Position is one lot of a holding. The same ticker may appear in several
// rows (different accounts or purchases); aggregation blends them.
type Position struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Ticker  string  `gorm:"index;not null" json:"ticker"`
	Shares  float64 `gorm:"not null" json:"shares"`
	AvgCost float64 `gorm:"not null" json:"avg_cost"`
	Account string  `gorm:"not null;default:'Fidelity'" json:"account"`
}

// DailyValue is the portfolio-value-over-time series, one row per calendar day.
type DailyValue struct {
	ID    uint    `gorm:"primarykey" json:"-"`
	Date  string  `gorm:"uniqueIndex;not null" json:"date"` // YYYY-MM-DD
	Value float64 `gorm:"not null" json:"value"`
}

// DailyPL stores raw daily portfolio values; day-over-day deltas are
// derived at read time, never stored.
type DailyPL struct {
	ID    uint    `gorm:"primarykey" json:"-"`
	Date  string  `gorm:"uniqueIndex;not null" json:"date"`
	Value float64 `gorm:"not null" json:"value"`
}

const (
	DirectionAbove = "above"
	DirectionBelow = "below"
)

// PriceAlert triggers at most once; it stays triggered until deleted.
type PriceAlert struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Ticker      string     `gorm:"index;not null" json:"ticker"`
	TargetPrice float64    `gorm:"not null" json:"target_price"`
	Direction   string     `gorm:"not null" json:"direction"`
	Triggered   bool       `gorm:"not null;default:false" json:"triggered"`
	TriggeredAt *time.Time `json:"triggered_at,omitempty"`
}

// Achievement rows only ever get created, never updated or deleted.
type Achievement struct {
	ID         uint      `gorm:"primarykey" json:"-"`
	Key        string    `gorm:"uniqueIndex;not null" json:"key"`
	Name       string    `gorm:"not null" json:"name"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// Setting is a key/value row for small persisted scalars (all-time high,
// theme preference).
type Setting struct {
	Key   string `gorm:"primarykey" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

const (
	SettingAllTimeHigh = "all_time_high"
	SettingTheme       = "theme"
)
