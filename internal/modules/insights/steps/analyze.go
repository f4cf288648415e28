package steps

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	types "github.com/vigorhq/vigor-backend/internal/domain"
)

// MinAnalysisDays is the floor under which weekly analysis refuses to run.
// Below it the analyzer returns the insufficient-data placeholder instead of
// a partially populated (and therefore misleading) pattern.
const MinAnalysisDays = 3

type AnalyzeInput struct {
	UserID    uuid.UUID
	WeekStart time.Time
	WeekEnd   time.Time
	Records   []*types.DailyHabitRecord
	Scores    []*types.EnergyScore
	Today     *types.DailyHabitRecord
}

// BuildPattern is the pure core of the weekly analysis: habit detection,
// mean-separation correlations, canned recommendations and summary stats over
// the window, or the documented placeholder when history is too thin.
func BuildPattern(in AnalyzeInput) (*types.HabitPattern, error) {
	row := &types.HabitPattern{
		UserID:       in.UserID,
		WeekStart:    in.WeekStart,
		WeekEnd:      in.WeekEnd,
		DaysAnalyzed: len(in.Records),
	}

	if len(in.Records) < MinAnalysisDays {
		return fillPlaceholder(row)
	}

	worst, best := DetectHabits(in.Records)
	correlations := ComputeCorrelations(in.Records, in.Scores)
	recommendations := BuildRecommendations(worst, in.Today)
	stats := ComputeWeekStats(in.Records, in.Scores)

	row.Summary = weekSummary(stats, worst, best)
	if err := marshalInto(row, worst, best, correlations, recommendations, stats); err != nil {
		return nil, err
	}
	return row, nil
}

// fillPlaceholder emits the fixed insufficient-data shape: empty (not null)
// lists, zeroed stats and an explanatory summary.
func fillPlaceholder(row *types.HabitPattern) (*types.HabitPattern, error) {
	row.InsufficientData = true
	row.Summary = fmt.Sprintf(
		"Not enough data yet: weekly analysis needs at least %d days of habit records, found %d. Keep checking in daily.",
		MinAnalysisDays, row.DaysAnalyzed)
	err := marshalInto(row,
		[]types.HabitFinding{}, []types.HabitFinding{},
		[]types.Correlation{}, []types.Recommendation{},
		types.WeekStats{DaysAnalyzed: row.DaysAnalyzed})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func marshalInto(row *types.HabitPattern, worst, best []types.HabitFinding, correlations []types.Correlation, recommendations []types.Recommendation, stats types.WeekStats) error {
	if worst == nil {
		worst = []types.HabitFinding{}
	}
	if best == nil {
		best = []types.HabitFinding{}
	}
	if correlations == nil {
		correlations = []types.Correlation{}
	}
	if recommendations == nil {
		recommendations = []types.Recommendation{}
	}

	var err error
	if row.WorstHabits, err = json.Marshal(worst); err != nil {
		return fmt.Errorf("marshal worst habits: %w", err)
	}
	if row.BestHabits, err = json.Marshal(best); err != nil {
		return fmt.Errorf("marshal best habits: %w", err)
	}
	if row.Correlations, err = json.Marshal(correlations); err != nil {
		return fmt.Errorf("marshal correlations: %w", err)
	}
	if row.Recommendations, err = json.Marshal(recommendations); err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	if row.Stats, err = json.Marshal(stats); err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	return nil
}

func weekSummary(stats types.WeekStats, worst, best []types.HabitFinding) string {
	summary := fmt.Sprintf("Analyzed %d days", stats.DaysAnalyzed)
	if stats.DaysWithScore > 0 {
		summary += fmt.Sprintf(", average energy %.1f", stats.AvgScore)
	}
	summary += "."
	if len(best) > 0 {
		summary += fmt.Sprintf(" Strongest habit: %s.", best[0].Name)
	}
	if len(worst) > 0 {
		summary += fmt.Sprintf(" Biggest drain: %s.", worst[0].Name)
	}
	return summary
}
