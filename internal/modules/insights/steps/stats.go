package steps

import (
	"math"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// ComputeWeekStats summarizes the analysis window. Zero scores in the window
// leave the score fields at zero rather than inventing a baseline.
func ComputeWeekStats(records []*types.DailyHabitRecord, scores []*types.EnergyScore) types.WeekStats {
	stats := types.WeekStats{DaysAnalyzed: len(records)}

	var values []float64
	for _, s := range scores {
		if s == nil {
			continue
		}
		values = append(values, s.Score)
	}
	stats.DaysWithScore = len(values)
	if len(values) == 0 {
		return stats
	}

	best, worst := values[0], values[0]
	for _, v := range values[1:] {
		if v > best {
			best = v
		}
		if v < worst {
			worst = v
		}
	}
	stats.AvgScore = roundOne(mean(values))
	stats.BestScore = best
	stats.WorstScore = worst
	return stats
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
