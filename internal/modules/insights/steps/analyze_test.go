package steps

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

func TestBuildPatternInsufficientData(t *testing.T) {
	userID := uuid.New()
	pattern, err := BuildPattern(AnalyzeInput{
		UserID:    userID,
		WeekStart: day(0),
		WeekEnd:   day(6),
		Records: []*types.DailyHabitRecord{
			{Date: day(0), ExerciseDone: bptr(true)},
			{Date: day(1), ExerciseDone: bptr(true)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pattern.InsufficientData {
		t.Fatal("two days of records must yield the insufficient-data placeholder")
	}
	if pattern.DaysAnalyzed != 2 {
		t.Fatalf("expected days analyzed 2, got %d", pattern.DaysAnalyzed)
	}
	if !strings.Contains(pattern.Summary, "Not enough data") {
		t.Fatalf("unexpected summary %q", pattern.Summary)
	}

	// Placeholder lists are empty arrays, never null, so clients can render
	// them without special-casing.
	for name, raw := range map[string][]byte{
		"worst_habits":    pattern.WorstHabits,
		"best_habits":     pattern.BestHabits,
		"correlations":    pattern.Correlations,
		"recommendations": pattern.Recommendations,
	} {
		if string(raw) != "[]" {
			t.Fatalf("%s must be an empty array, got %s", name, raw)
		}
	}
}

func TestBuildPatternFullWeek(t *testing.T) {
	userID := uuid.New()
	records := []*types.DailyHabitRecord{
		{Date: day(0), AlcoholConsumed: bptr(true), ExerciseDone: bptr(false)},
		{Date: day(1), AlcoholConsumed: bptr(true), ExerciseDone: bptr(false)},
		{Date: day(2), AlcoholConsumed: bptr(false), ExerciseDone: bptr(true)},
		{Date: day(3), AlcoholConsumed: bptr(false), ExerciseDone: bptr(true)},
		{Date: day(4), AlcoholConsumed: bptr(false), ExerciseDone: bptr(true)},
	}
	scores := []*types.EnergyScore{
		scoreOn(0, 3.0), scoreOn(1, 3.5), scoreOn(2, 7.0), scoreOn(3, 8.0), scoreOn(4, 7.5),
	}

	pattern, err := BuildPattern(AnalyzeInput{
		UserID:    userID,
		WeekStart: day(0),
		WeekEnd:   day(6),
		Records:   records,
		Scores:    scores,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pattern.InsufficientData {
		t.Fatal("five days of records must run the full analysis")
	}
	if pattern.UserID != userID || !pattern.WeekStart.Equal(day(0)) {
		t.Fatalf("pattern must carry user and window, got %+v", pattern)
	}

	var worst []types.HabitFinding
	if err := json.Unmarshal(pattern.WorstHabits, &worst); err != nil {
		t.Fatalf("decode worst habits: %v", err)
	}
	if findByName(worst, "Alcohol Consumption") == nil {
		t.Fatalf("expected alcohol in worst habits, got %+v", worst)
	}

	var best []types.HabitFinding
	if err := json.Unmarshal(pattern.BestHabits, &best); err != nil {
		t.Fatalf("decode best habits: %v", err)
	}
	if findByName(best, "Regular Exercise") == nil {
		t.Fatalf("expected exercise in best habits, got %+v", best)
	}

	var correlations []types.Correlation
	if err := json.Unmarshal(pattern.Correlations, &correlations); err != nil {
		t.Fatalf("decode correlations: %v", err)
	}
	if findCorrelation(correlations, "Alcohol") == nil {
		t.Fatalf("expected an alcohol correlation, got %+v", correlations)
	}

	var recs []types.Recommendation
	if err := json.Unmarshal(pattern.Recommendations, &recs); err != nil {
		t.Fatalf("decode recommendations: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected at least one recommendation")
	}

	var stats types.WeekStats
	if err := json.Unmarshal(pattern.Stats, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.DaysAnalyzed != 5 || stats.DaysWithScore != 5 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if !strings.Contains(pattern.Summary, "Analyzed 5 days") {
		t.Fatalf("unexpected summary %q", pattern.Summary)
	}
}
