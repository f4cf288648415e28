package steps

import (
	"testing"
	"time"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

func iptr(v int) *int       { return &v }
func bptr(v bool) *bool     { return &v }
func sptr(v string) *string { return &v }

func day(offset int) time.Time {
	return time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func findByName(findings []types.HabitFinding, name string) *types.HabitFinding {
	for i := range findings {
		if findings[i].Name == name {
			return &findings[i]
		}
	}
	return nil
}

func TestDetectHabitsExerciseThreeDays(t *testing.T) {
	records := []*types.DailyHabitRecord{
		{Date: day(0), ExerciseDone: bptr(true)},
		{Date: day(1), ExerciseDone: bptr(true)},
		{Date: day(2), ExerciseDone: bptr(true)},
	}

	worst, best := DetectHabits(records)
	if len(worst) != 0 {
		t.Fatalf("expected no negative findings, got %+v", worst)
	}
	f := findByName(best, "Regular Exercise")
	if f == nil {
		t.Fatalf("expected Regular Exercise finding, got %+v", best)
	}
	if f.Frequency != 1.0 || f.Days != 3 {
		t.Fatalf("expected frequency 1.0 over 3 days, got %+v", f)
	}
	if f.Description != "Exercised on 3 of 3 days" {
		t.Fatalf("unexpected description %q", f.Description)
	}
}

func TestDetectHabitsMinDayThresholds(t *testing.T) {
	// Two days of late caffeine sit under its 3-day floor; two days of
	// alcohol clear its lower 2-day floor.
	records := []*types.DailyHabitRecord{
		{Date: day(0), CaffeineAfter2PM: bptr(true), AlcoholConsumed: bptr(true)},
		{Date: day(1), CaffeineAfter2PM: bptr(true), AlcoholConsumed: bptr(true)},
		{Date: day(2), CaffeineAfter2PM: bptr(false), AlcoholConsumed: bptr(false)},
	}

	worst, _ := DetectHabits(records)
	if findByName(worst, "Late Caffeine") != nil {
		t.Fatal("two late-caffeine days must not reach the 3-day floor")
	}
	if findByName(worst, "Alcohol Consumption") == nil {
		t.Fatalf("two alcohol days must reach its 2-day floor, got %+v", worst)
	}
}

func TestDetectHabitsFrequencyExcludesMissingData(t *testing.T) {
	// Five rows, but only four report screens; frequency is 3/4, not 3/5.
	records := []*types.DailyHabitRecord{
		{Date: day(0), ScreenBeforeBed: bptr(true)},
		{Date: day(1), ScreenBeforeBed: bptr(true)},
		{Date: day(2), ScreenBeforeBed: bptr(true)},
		{Date: day(3), ScreenBeforeBed: bptr(false)},
		{Date: day(4)},
	}

	worst, _ := DetectHabits(records)
	f := findByName(worst, "Screens Before Bed")
	if f == nil {
		t.Fatalf("expected Screens Before Bed finding, got %+v", worst)
	}
	if f.Frequency != 0.75 {
		t.Fatalf("expected frequency 0.75 over reported days, got %v", f.Frequency)
	}
	if f.Description != "Screen time right before bed on 3 of 4 days" {
		t.Fatalf("unexpected description %q", f.Description)
	}
}

func TestDetectHabitsRanksBySeverityThenFrequency(t *testing.T) {
	records := []*types.DailyHabitRecord{
		{Date: day(0), JunkFood: bptr(true), StressLevel: iptr(8), SkippedMeals: bptr(true)},
		{Date: day(1), JunkFood: bptr(true), StressLevel: iptr(9), SkippedMeals: bptr(true)},
		{Date: day(2), JunkFood: bptr(true), StressLevel: iptr(8), SkippedMeals: bptr(true)},
		{Date: day(3), JunkFood: bptr(true), StressLevel: iptr(2), SkippedMeals: bptr(false)},
	}

	worst, _ := DetectHabits(records)
	if len(worst) != 3 {
		t.Fatalf("expected 3 findings, got %+v", worst)
	}
	if worst[0].Name != "High Stress" {
		t.Fatalf("high severity must rank first, got %q", worst[0].Name)
	}
	if worst[1].Name != "Junk Food" && worst[1].Name != "Skipped Meals" {
		t.Fatalf("unexpected second finding %q", worst[1].Name)
	}
	// Junk food matched 4/4 days, skipped meals 3/4: within the same tier
	// sort, higher frequency wins, but junk food is low severity and skipped
	// meals medium, so skipped meals comes first.
	if worst[1].Name != "Skipped Meals" || worst[2].Name != "Junk Food" {
		t.Fatalf("severity tier must beat frequency: %+v", worst)
	}
}

func TestDetectHabitsCapsFindings(t *testing.T) {
	var records []*types.DailyHabitRecord
	for i := 0; i < 7; i++ {
		records = append(records, &types.DailyHabitRecord{
			Date:             day(i),
			CaffeineAfter2PM: bptr(true),
			CaffeineCups:     iptr(6),
			AlcoholConsumed:  bptr(true),
			SkippedMeals:     bptr(true),
			ScreenBeforeBed:  bptr(true),
			StressLevel:      iptr(9),
			Smoked:           bptr(true),
			JunkFood:         bptr(true),
		})
	}

	worst, _ := DetectHabits(records)
	if len(worst) != 5 {
		t.Fatalf("findings must be capped at 5, got %d", len(worst))
	}
	for _, f := range worst {
		if f.Severity == "low" {
			t.Fatalf("low severity finding %q must be cut before high ones", f.Name)
		}
	}
}

func TestDetectHabitsEmptyInput(t *testing.T) {
	worst, best := DetectHabits(nil)
	if len(worst) != 0 || len(best) != 0 {
		t.Fatalf("no records must yield no findings, got %+v %+v", worst, best)
	}
}
