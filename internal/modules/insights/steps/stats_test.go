package steps

import (
	"testing"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

func TestComputeWeekStats(t *testing.T) {
	records := []*types.DailyHabitRecord{
		{Date: day(0)}, {Date: day(1)}, {Date: day(2)}, {Date: day(3)},
	}
	scores := []*types.EnergyScore{
		scoreOn(0, 6.5), scoreOn(1, 8.0), scoreOn(2, 4.2),
	}

	stats := ComputeWeekStats(records, scores)
	if stats.DaysAnalyzed != 4 || stats.DaysWithScore != 3 {
		t.Fatalf("unexpected day counts: %+v", stats)
	}
	if stats.BestScore != 8.0 || stats.WorstScore != 4.2 {
		t.Fatalf("unexpected extremes: %+v", stats)
	}
	// (6.5+8.0+4.2)/3 = 6.2333..., rounded to one decimal.
	if stats.AvgScore != 6.2 {
		t.Fatalf("expected avg 6.2, got %v", stats.AvgScore)
	}
}

func TestComputeWeekStatsNoScores(t *testing.T) {
	stats := ComputeWeekStats([]*types.DailyHabitRecord{{Date: day(0)}}, nil)
	if stats.DaysAnalyzed != 1 || stats.DaysWithScore != 0 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.AvgScore != 0 || stats.BestScore != 0 || stats.WorstScore != 0 {
		t.Fatalf("score fields must stay zero with no scores, got %+v", stats)
	}
}
