package steps

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"gorm.io/datatypes"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

func iptr(v int) *int             { return &v }
func fptr(v float64) *float64     { return &v }
func bptr(v bool) *bool           { return &v }
func sptr(v string) *string       { return &v }
func jsonPayload(s string) datatypes.JSON { return datatypes.JSON(s) }

func healthRecord(kind, payload string) *types.HealthRecord {
	return &types.HealthRecord{Kind: kind, Payload: jsonPayload(payload)}
}

func checkIn(kind, payload string) *types.CheckIn {
	return &types.CheckIn{Kind: kind, Payload: jsonPayload(payload)}
}

func TestAggregateScoreNoSignals(t *testing.T) {
	out := AggregateScore(AggregateInput{})
	if out.Score != 5.0 {
		t.Fatalf("expected baseline score 5.0 with no signals, got %v", out.Score)
	}
	if out.Factors != (types.FactorBreakdown{}) {
		t.Fatalf("expected zero factor breakdown, got %+v", out.Factors)
	}
}

func TestAggregateScoreHighDay(t *testing.T) {
	out := AggregateScore(AggregateInput{
		HealthRecords: []*types.HealthRecord{
			healthRecord(types.HealthRecordKindSleep, `{"duration_hours": 7.8}`),
			healthRecord(types.HealthRecordKindHRV, `{"rmssd_ms": 62}`),
			healthRecord(types.HealthRecordKindSteps, `{"count": 10500}`),
		},
		CheckIns: []*types.CheckIn{
			checkIn(types.CheckInKindMorning, `{"rested_score": 9, "motivation_level": "high"}`),
		},
		Habit: &types.DailyHabitRecord{Mood: sptr("great")},
	})
	if out.Score != 9.5 {
		t.Fatalf("expected 9.5, got %v (factors %+v)", out.Score, out.Factors)
	}
	if out.Factors.Sleep != 1.5 || out.Factors.HRV != 1.0 || out.Factors.Activity != 0.8 {
		t.Fatalf("unexpected health factors: %+v", out.Factors)
	}
	if out.Factors.Morning != 0.5 {
		t.Fatalf("expected morning factor 0.5, got %v", out.Factors.Morning)
	}
}

func TestAggregateScoreLowDay(t *testing.T) {
	out := AggregateScore(AggregateInput{
		HealthRecords: []*types.HealthRecord{
			healthRecord(types.HealthRecordKindSleep, `{"duration_hours": 4.5}`),
		},
		CheckIns: []*types.CheckIn{
			checkIn(types.CheckInKindMorning, `{"rested_score": 2, "motivation_level": "low"}`),
		},
		Habit: &types.DailyHabitRecord{
			AlcoholConsumed: bptr(true),
			SkippedMeals:    bptr(true),
			ScreenBeforeBed: bptr(true),
		},
	})
	if out.Score != 2.0 {
		t.Fatalf("expected 2.0, got %v (factors %+v)", out.Score, out.Factors)
	}
	if out.Factors.Habits != -1.0 {
		t.Fatalf("expected habits factor -1.0, got %v", out.Factors.Habits)
	}
}

func TestSleepFactorFallsBackToHabitHours(t *testing.T) {
	out := AggregateScore(AggregateInput{
		Habit: &types.DailyHabitRecord{SleepHours: fptr(6.2)},
	})
	if out.Factors.Sleep != 0.5 {
		t.Fatalf("expected sleep factor 0.5 from habit hours, got %v", out.Factors.Sleep)
	}
}

func TestCalendarFactorHardCap(t *testing.T) {
	out := AggregateScore(AggregateInput{
		HealthRecords: []*types.HealthRecord{
			healthRecord(types.HealthRecordKindCalendar,
				`{"meeting_count": 8, "back_to_back_count": 3, "late_meeting_count": 2}`),
		},
	})
	if out.Factors.Calendar != -0.5 {
		t.Fatalf("expected calendar factor capped at -0.5, got %v", out.Factors.Calendar)
	}
}

func TestCheckInFactorClamped(t *testing.T) {
	out := AggregateScore(AggregateInput{
		CheckIns: []*types.CheckIn{
			checkIn(types.CheckInKindEvening,
				`{"rested_score": 9, "motivation_level": "high", "energy_level": 9, "mental_state": "sharp", "physical_state": "energized", "day_vs_expectation": "better"}`),
		},
	})
	if out.Factors.Evening != 0.5 {
		t.Fatalf("expected evening factor clamped at 0.5, got %v", out.Factors.Evening)
	}
}

func TestAggregateScoreAlwaysBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	moods := []string{"great", "good", "low", "terrible", ""}

	for i := 0; i < 500; i++ {
		habit := &types.DailyHabitRecord{
			SleepHours:       fptr(rng.Float64() * 12),
			CaffeineCups:     iptr(rng.Intn(10)),
			CaffeineAfter2PM: bptr(rng.Intn(2) == 0),
			AlcoholConsumed:  bptr(rng.Intn(2) == 0),
			SkippedMeals:     bptr(rng.Intn(2) == 0),
			ScreenBeforeBed:  bptr(rng.Intn(2) == 0),
			ScreenTimeHours:  fptr(rng.Float64() * 14),
			Smoked:           bptr(rng.Intn(2) == 0),
			JunkFood:         bptr(rng.Intn(2) == 0),
			StressLevel:      iptr(rng.Intn(11)),
			AnxietyLevel:     iptr(rng.Intn(11)),
			AngerIncidents:   iptr(rng.Intn(4)),
			HydrationGlasses: iptr(rng.Intn(12)),
			OutdoorMinutes:   iptr(rng.Intn(180)),
			MeditationDone:   bptr(rng.Intn(2) == 0),
			ExerciseDone:     bptr(rng.Intn(2) == 0),
			ExerciseMinutes:  iptr(rng.Intn(90)),
		}
		if mood := moods[rng.Intn(len(moods))]; mood != "" {
			habit.Mood = &mood
		}

		out := AggregateScore(AggregateInput{
			HealthRecords: []*types.HealthRecord{
				healthRecord(types.HealthRecordKindSleep, fmt.Sprintf(`{"duration_hours": %.1f}`, rng.Float64()*12)),
				healthRecord(types.HealthRecordKindHRV, fmt.Sprintf(`{"rmssd_ms": %d}`, rng.Intn(120))),
				healthRecord(types.HealthRecordKindSteps, fmt.Sprintf(`{"count": %d}`, rng.Intn(20000))),
			},
			CheckIns: []*types.CheckIn{
				checkIn(types.CheckInKindMorning, fmt.Sprintf(`{"rested_score": %d}`, rng.Intn(11))),
				checkIn(types.CheckInKindEvening, fmt.Sprintf(`{"energy_level": %d, "day_vs_expectation": "worse"}`, rng.Intn(11))),
			},
			Habit: habit,
		})

		if out.Score < 1 || out.Score > 10 {
			t.Fatalf("score %v out of [1,10] on iteration %d", out.Score, i)
		}
		if math.Abs(out.Score*10-math.Round(out.Score*10)) > 1e-9 {
			t.Fatalf("score %v not rounded to one decimal on iteration %d", out.Score, i)
		}
	}
}

func TestAggregateScoreMalformedPayloadsIgnored(t *testing.T) {
	out := AggregateScore(AggregateInput{
		HealthRecords: []*types.HealthRecord{
			healthRecord(types.HealthRecordKindSleep, `not json`),
			healthRecord(types.HealthRecordKindHRV, `{"rmssd_ms": "plenty"}`),
		},
		CheckIns: []*types.CheckIn{
			checkIn(types.CheckInKindMorning, ``),
			nil,
		},
	})
	if out.Score != 5.0 {
		t.Fatalf("expected malformed signals to contribute zero, got %v", out.Score)
	}
}
