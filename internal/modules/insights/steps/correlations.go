package steps

import (
	"math"
	"time"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

// correlationPair is one candidate (trigger, outcome) comparison. Outcome
// values are normalized by Range so strength is comparable across metrics.
type correlationPair struct {
	Trigger   string
	Effect    string
	Threshold float64
	Range     float64
	HasTrig   func(*types.DailyHabitRecord) (bool, bool)
	Outcome   func(*types.DailyHabitRecord, *types.EnergyScore) (float64, bool)
}

func scoreOutcome(_ *types.DailyHabitRecord, s *types.EnergyScore) (float64, bool) {
	if s == nil {
		return 0, false
	}
	return s.Score, true
}

func stressOutcome(r *types.DailyHabitRecord, _ *types.EnergyScore) (float64, bool) {
	if r == nil || r.StressLevel == nil {
		return 0, false
	}
	return float64(*r.StressLevel), true
}

var correlationPairs = []correlationPair{
	{
		Trigger: "Late Caffeine", Effect: "Energy Score", Threshold: 0.25, Range: 9,
		HasTrig: func(r *types.DailyHabitRecord) (bool, bool) {
			if r.CaffeineAfter2PM == nil {
				return false, false
			}
			return *r.CaffeineAfter2PM, true
		},
		Outcome: scoreOutcome,
	},
	{
		Trigger: "Alcohol", Effect: "Energy Score", Threshold: 0.2, Range: 9,
		HasTrig: func(r *types.DailyHabitRecord) (bool, bool) {
			if r.AlcoholConsumed == nil {
				return false, false
			}
			return *r.AlcoholConsumed, true
		},
		Outcome: scoreOutcome,
	},
	{
		Trigger: "Exercise", Effect: "Energy Score", Threshold: 0.25, Range: 9,
		HasTrig: func(r *types.DailyHabitRecord) (bool, bool) {
			if r.ExerciseDone == nil {
				return false, false
			}
			return *r.ExerciseDone, true
		},
		Outcome: scoreOutcome,
	},
	{
		Trigger: "Screens Before Bed", Effect: "Energy Score", Threshold: 0.3, Range: 9,
		HasTrig: func(r *types.DailyHabitRecord) (bool, bool) {
			if r.ScreenBeforeBed == nil {
				return false, false
			}
			return *r.ScreenBeforeBed, true
		},
		Outcome: scoreOutcome,
	},
	{
		Trigger: "Skipped Meals", Effect: "Energy Score", Threshold: 0.3, Range: 9,
		HasTrig: func(r *types.DailyHabitRecord) (bool, bool) {
			if r.SkippedMeals == nil {
				return false, false
			}
			return *r.SkippedMeals, true
		},
		Outcome: scoreOutcome,
	},
	{
		Trigger: "Meditation", Effect: "Stress Level", Threshold: 0.25, Range: 10,
		HasTrig: func(r *types.DailyHabitRecord) (bool, bool) {
			if r.MeditationDone == nil {
				return false, false
			}
			return *r.MeditationDone, true
		},
		Outcome: stressOutcome,
	},
}

const minPartitionDays = 2

// ComputeCorrelations runs the fixed candidate pairs over the week. For each
// pair it partitions days by trigger presence and compares partition means:
// strength = min(1, 2*|meanPresent-meanAbsent| / outcomeRange). This is a
// bounded separation-of-means heuristic, NOT a correlation coefficient, and
// it must stay that way: report thresholds and downstream phrasing were
// tuned against exactly this measure.
func ComputeCorrelations(records []*types.DailyHabitRecord, scores []*types.EnergyScore) []types.Correlation {
	scoreByDay := make(map[string]*types.EnergyScore, len(scores))
	for _, s := range scores {
		if s != nil {
			scoreByDay[dayKey(s.Date)] = s
		}
	}

	var out []types.Correlation
	for _, pair := range correlationPairs {
		var present, absent []float64
		for _, rec := range records {
			if rec == nil {
				continue
			}
			hit, hasTrig := pair.HasTrig(rec)
			if !hasTrig {
				continue
			}
			val, hasOutcome := pair.Outcome(rec, scoreByDay[dayKey(rec.Date)])
			if !hasOutcome {
				continue
			}
			if hit {
				present = append(present, val)
			} else {
				absent = append(absent, val)
			}
		}
		if len(present) < minPartitionDays || len(absent) < minPartitionDays {
			continue
		}

		diff := mean(present) - mean(absent)
		strength := math.Min(1, 2*math.Abs(diff)/pair.Range)
		if strength < pair.Threshold {
			continue
		}

		direction := "positive"
		if diff < 0 {
			direction = "negative"
		}
		out = append(out, types.Correlation{
			Trigger:   pair.Trigger,
			Effect:    pair.Effect,
			Strength:  strength,
			Direction: direction,
		})
	}
	return out
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
