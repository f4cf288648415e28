package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ScoreSourceGenerated = "generated"
	ScoreSourceFallback  = "fallback"
)

// FactorBreakdown holds the ten named signed contributions summed on top of
// the 5.0 baseline. The persisted explanation is always built from these exact
// numbers, never from a separate model of the score.
type FactorBreakdown struct {
	Sleep        float64 `json:"sleep"`
	HRV          float64 `json:"hrv"`
	Activity     float64 `json:"activity"`
	Calendar     float64 `json:"calendar"`
	Morning      float64 `json:"morning"`
	Midday       float64 `json:"midday"`
	Evening      float64 `json:"evening"`
	Habits       float64 `json:"habits"`
	MentalHealth float64 `json:"mental_health"`
	Lifestyle    float64 `json:"lifestyle"`
}

// ActionItem is one ranked micro-action attached to a score. An empty Reason
// marks a degraded generation and invalidates the cached score.
type ActionItem struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// EnergyScore is one per (user, date), overwritten on every recompute and
// deleted only by an explicit force-regenerate.
type EnergyScore struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_energy_score_key" json:"user_id"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:idx_energy_score_key" json:"date"`

	Score       float64        `gorm:"not null" json:"score"`
	Explanation string         `gorm:"column:explanation" json:"explanation"`
	Actions     datatypes.JSON `gorm:"column:actions" json:"actions"`
	Factors     datatypes.JSON `gorm:"column:factors" json:"factors"`

	ContentFingerprint string `gorm:"column:content_fingerprint" json:"content_fingerprint"`
	Source             string `gorm:"column:source" json:"source"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (EnergyScore) TableName() string { return "energy_score" }
