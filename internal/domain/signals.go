package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	CheckInKindMorning = "morning"
	CheckInKindMidday  = "midday"
	CheckInKindEvening = "evening"
)

func ValidCheckInKind(kind string) bool {
	switch kind {
	case CheckInKindMorning, CheckInKindMidday, CheckInKindEvening:
		return true
	}
	return false
}

const (
	HealthRecordKindSleep    = "sleep"
	HealthRecordKindSteps    = "steps"
	HealthRecordKindHRV      = "hrv"
	HealthRecordKindCalendar = "calendar"
)

func ValidHealthRecordKind(kind string) bool {
	switch kind {
	case HealthRecordKindSleep, HealthRecordKindSteps, HealthRecordKindHRV, HealthRecordKindCalendar:
		return true
	}
	return false
}

// CheckIn is an immutable self-reported snapshot. Multiple check-ins per day
// are kept; scoring uses the full set for the day.
type CheckIn struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_check_in_user_time" json:"user_id"`
	Kind       string         `gorm:"not null;column:kind" json:"kind"`
	RecordedAt time.Time      `gorm:"not null;index:idx_check_in_user_time" json:"recorded_at"`
	Payload    datatypes.JSON `gorm:"column:payload" json:"payload"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (CheckIn) TableName() string { return "check_in" }

// HealthRecord is one logical device-derived snapshot per (user, kind, date);
// upstream collaborators upsert it, this service only reads it.
type HealthRecord struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_health_record_key" json:"user_id"`
	Kind       string         `gorm:"not null;uniqueIndex:idx_health_record_key" json:"kind"`
	SourceDate time.Time      `gorm:"type:date;not null;uniqueIndex:idx_health_record_key" json:"source_date"`
	Payload    datatypes.JSON `gorm:"column:payload" json:"payload"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (HealthRecord) TableName() string { return "health_record" }

// DailyHabitRecord is the derived per-day lifestyle summary. Fields are
// pointers: nil means "not reported", which the aggregator and the weekly
// analyzer both treat as absent rather than zero.
type DailyHabitRecord struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_habit_record_key" json:"user_id"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:idx_habit_record_key" json:"date"`

	SleepQuality *string  `gorm:"column:sleep_quality" json:"sleep_quality,omitempty"`
	SleepHours   *float64 `gorm:"column:sleep_hours" json:"sleep_hours,omitempty"`
	RestedScore  *int     `gorm:"column:rested_score" json:"rested_score,omitempty"`

	CaffeineCups     *int  `gorm:"column:caffeine_cups" json:"caffeine_cups,omitempty"`
	CaffeineAfter2PM *bool `gorm:"column:caffeine_after_2pm" json:"caffeine_after_2pm,omitempty"`

	AlcoholConsumed *bool `gorm:"column:alcohol_consumed" json:"alcohol_consumed,omitempty"`
	AlcoholDrinks   *int  `gorm:"column:alcohol_drinks" json:"alcohol_drinks,omitempty"`

	ExerciseDone    *bool   `gorm:"column:exercise_done" json:"exercise_done,omitempty"`
	ExerciseMinutes *int    `gorm:"column:exercise_minutes" json:"exercise_minutes,omitempty"`
	ExerciseType    *string `gorm:"column:exercise_type" json:"exercise_type,omitempty"`

	MealsCount   *int  `gorm:"column:meals_count" json:"meals_count,omitempty"`
	SkippedMeals *bool `gorm:"column:skipped_meals" json:"skipped_meals,omitempty"`
	JunkFood     *bool `gorm:"column:junk_food" json:"junk_food,omitempty"`

	ScreenTimeHours *float64 `gorm:"column:screen_time_hours" json:"screen_time_hours,omitempty"`
	ScreenBeforeBed *bool    `gorm:"column:screen_before_bed" json:"screen_before_bed,omitempty"`

	Mood            *string `gorm:"column:mood" json:"mood,omitempty"`
	MotivationLevel *string `gorm:"column:motivation_level" json:"motivation_level,omitempty"`
	EnergyLevel     *int    `gorm:"column:energy_level" json:"energy_level,omitempty"`
	StressLevel     *int    `gorm:"column:stress_level" json:"stress_level,omitempty"`
	AnxietyLevel    *int    `gorm:"column:anxiety_level" json:"anxiety_level,omitempty"`
	AngerIncidents  *int    `gorm:"column:anger_incidents" json:"anger_incidents,omitempty"`

	MeditationDone    *bool `gorm:"column:meditation_done" json:"meditation_done,omitempty"`
	MeditationMinutes *int  `gorm:"column:meditation_minutes" json:"meditation_minutes,omitempty"`

	HydrationGlasses   *int `gorm:"column:hydration_glasses" json:"hydration_glasses,omitempty"`
	OutdoorMinutes     *int `gorm:"column:outdoor_minutes" json:"outdoor_minutes,omitempty"`
	SocialInteractions *int `gorm:"column:social_interactions" json:"social_interactions,omitempty"`

	Smoked *bool `gorm:"column:smoked" json:"smoked,omitempty"`

	DerivationVersion int `gorm:"column:derivation_version;default:1" json:"derivation_version"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (DailyHabitRecord) TableName() string { return "daily_habit_record" }
