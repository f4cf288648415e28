package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// HabitFinding is one recurring habit surfaced by the weekly analysis, in
// negative (worst) or positive (best) framing.
type HabitFinding struct {
	Name        string  `json:"name"`
	Frequency   float64 `json:"frequency"` // matching days / days with data, in [0,1]
	Days        int     `json:"days"`      // absolute matching-day count
	Severity    string  `json:"severity"`  // high | medium | low
	Description string  `json:"description"`
}

// Correlation reports a bounded mean-separation heuristic between a trigger
// habit and an outcome metric. Strength is NOT a statistical correlation
// coefficient; thresholds and phrasing downstream are tuned to this weaker
// measure and it must stay a separation of means.
type Correlation struct {
	Trigger   string  `json:"trigger"`
	Effect    string  `json:"effect"`
	Strength  float64 `json:"strength"`  // min(1, 2*|normalized mean difference|)
	Direction string  `json:"direction"` // positive | negative
}

type Recommendation struct {
	Action   string `json:"action"`
	Reason   string `json:"reason"`
	Priority string `json:"priority"` // high | medium | low
	Category string `json:"category"`
	Icon     string `json:"icon,omitempty"`
}

type WeekStats struct {
	DaysAnalyzed  int     `json:"days_analyzed"`
	DaysWithScore int     `json:"days_with_score"`
	AvgScore      float64 `json:"avg_score"`
	BestScore     float64 `json:"best_score"`
	WorstScore    float64 `json:"worst_score"`
}

// HabitPattern is one weekly analysis per (user, week_start), upserted.
// InsufficientData marks the documented placeholder returned when fewer than
// three days of habit records exist in the window.
type HabitPattern struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_habit_pattern_key" json:"user_id"`
	WeekStart time.Time `gorm:"type:date;not null;uniqueIndex:idx_habit_pattern_key" json:"week_start"`
	WeekEnd   time.Time `gorm:"type:date;not null" json:"week_end"`

	Summary          string         `gorm:"column:summary" json:"summary"`
	WorstHabits      datatypes.JSON `gorm:"column:worst_habits" json:"worst_habits"`
	BestHabits       datatypes.JSON `gorm:"column:best_habits" json:"best_habits"`
	Correlations     datatypes.JSON `gorm:"column:correlations" json:"correlations"`
	Recommendations  datatypes.JSON `gorm:"column:recommendations" json:"recommendations"`
	Stats            datatypes.JSON `gorm:"column:stats" json:"stats"`
	DaysAnalyzed     int            `gorm:"column:days_analyzed" json:"days_analyzed"`
	InsufficientData bool           `gorm:"column:insufficient_data" json:"insufficient_data"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (HabitPattern) TableName() string { return "habit_pattern" }
