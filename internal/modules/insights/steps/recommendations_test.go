package steps

import (
	"testing"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

func finding(name string) types.HabitFinding {
	return types.HabitFinding{Name: name, Severity: "high", Frequency: 1, Days: 3}
}

func TestBuildRecommendationsPrioritySorted(t *testing.T) {
	worst := []types.HabitFinding{
		finding("Junk Food"),
		finding("Late Caffeine"),
		finding("Skipped Meals"),
	}

	out := BuildRecommendations(worst, nil)
	if len(out) == 0 {
		t.Fatal("expected recommendations")
	}
	if out[0].Priority != "high" {
		t.Fatalf("high priority must sort first, got %+v", out[0])
	}
	for i := 1; i < len(out); i++ {
		if priorityRank[out[i].Priority] < priorityRank[out[i-1].Priority] {
			t.Fatalf("recommendations out of priority order: %+v", out)
		}
	}
}

func TestBuildRecommendationsFiltersSatisfiedToday(t *testing.T) {
	worst := []types.HabitFinding{finding("Alcohol Consumption")}

	today := &types.DailyHabitRecord{AlcoholConsumed: bptr(false)}
	out := BuildRecommendations(worst, today)
	if len(out) != 0 {
		t.Fatalf("an alcohol-free day must filter alcohol advice, got %+v", out)
	}

	drinking := &types.DailyHabitRecord{AlcoholConsumed: bptr(true)}
	out = BuildRecommendations(worst, drinking)
	if len(out) != 1 {
		t.Fatalf("advice must stay when the habit recurred today, got %+v", out)
	}
}

func TestBuildRecommendationsUnreportedDayKeepsAdvice(t *testing.T) {
	worst := []types.HabitFinding{finding("High Stress")}

	// Stress advice has no satisfied-today check for its own category, and a
	// meditation-free row keeps the mindfulness suggestion too.
	today := &types.DailyHabitRecord{}
	out := BuildRecommendations(worst, today)
	if len(out) != 2 {
		t.Fatalf("expected both stress recommendations, got %+v", out)
	}

	meditated := &types.DailyHabitRecord{MeditationDone: bptr(true)}
	out = BuildRecommendations(worst, meditated)
	if len(out) != 1 || out[0].Category != "stress" {
		t.Fatalf("a meditated day must drop the mindfulness suggestion, got %+v", out)
	}
}

func TestBuildRecommendationsDeduplicates(t *testing.T) {
	worst := []types.HabitFinding{
		finding("Late Caffeine"),
		finding("Late Caffeine"),
	}
	out := BuildRecommendations(worst, nil)
	if len(out) != 1 {
		t.Fatalf("duplicate findings must not duplicate advice, got %+v", out)
	}
}

func TestBuildRecommendationsCapped(t *testing.T) {
	worst := []types.HabitFinding{
		finding("Late Caffeine"),
		finding("Excess Caffeine"),
		finding("Alcohol Consumption"),
		finding("Skipped Meals"),
		finding("Screens Before Bed"),
		finding("High Stress"),
		finding("Smoking"),
		finding("Junk Food"),
	}
	out := BuildRecommendations(worst, nil)
	if len(out) != 5 {
		t.Fatalf("recommendations must be capped at 5, got %d", len(out))
	}
}

func TestBuildRecommendationsUnknownHabit(t *testing.T) {
	out := BuildRecommendations([]types.HabitFinding{finding("Interpretive Dance")}, nil)
	if len(out) != 0 {
		t.Fatalf("unknown habits have no canned advice, got %+v", out)
	}
}
