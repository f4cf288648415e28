package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vigorhq/vigor-backend/internal/data/repos"
	types "github.com/vigorhq/vigor-backend/internal/domain"
	"github.com/vigorhq/vigor-backend/internal/modules/insights/steps"
	"github.com/vigorhq/vigor-backend/internal/platform/dbctx"
	"github.com/vigorhq/vigor-backend/internal/platform/logger"
)

type UsecasesDeps struct {
	Log *logger.Logger

	Habits   repos.HabitRecordRepo
	Scores   repos.EnergyScoreRepo
	Patterns repos.HabitPatternRepo
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases { return Usecases{deps: deps} }

// AnalyzeWeek runs the weekly analysis over the 7-day window ending on
// weekEnding (inclusive). A full analysis is upserted per (user, week_start);
// the insufficient-data placeholder is returned but never persisted, so a
// thin week leaves no row behind to shadow a later, fuller analysis.
func (u Usecases) AnalyzeWeek(ctx context.Context, userID uuid.UUID, weekEnding time.Time) (*types.HabitPattern, error) {
	weekEnd := time.Date(weekEnding.Year(), weekEnding.Month(), weekEnding.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := weekEnd.AddDate(0, 0, -6)
	rangeEnd := weekEnd.AddDate(0, 0, 1)

	var (
		records []*types.DailyHabitRecord
		scores  []*types.EnergyScore
	)
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.New(gctx)

	g.Go(func() error {
		rows, err := u.deps.Habits.ListByUserRange(dbc, userID, weekStart, rangeEnd)
		if err != nil {
			return fmt.Errorf("list habit records: %w", err)
		}
		records = rows
		return nil
	})
	g.Go(func() error {
		rows, err := u.deps.Scores.ListByUserRange(dbc, userID, weekStart, rangeEnd)
		if err != nil {
			return fmt.Errorf("list scores: %w", err)
		}
		scores = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	today := habitRecordFor(records, time.Now().UTC())

	pattern, err := steps.BuildPattern(steps.AnalyzeInput{
		UserID:    userID,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Records:   records,
		Scores:    scores,
		Today:     today,
	})
	if err != nil {
		return nil, fmt.Errorf("build pattern: %w", err)
	}

	if pattern.InsufficientData {
		return pattern, nil
	}

	if err := u.deps.Patterns.Upsert(dbctx.New(ctx), pattern); err != nil {
		return nil, fmt.Errorf("upsert pattern: %w", err)
	}
	return pattern, nil
}

// TodayRecommendations re-filters the most recent stored analysis against
// today's habit record, so advice already acted on drops out as the day
// progresses. No stored analysis (or only placeholders) means no advice.
func (u Usecases) TodayRecommendations(ctx context.Context, userID uuid.UUID) ([]types.Recommendation, error) {
	dbc := dbctx.New(ctx)

	pattern, err := u.deps.Patterns.GetLatestByUser(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("load latest pattern: %w", err)
	}
	if pattern == nil || pattern.InsufficientData {
		return []types.Recommendation{}, nil
	}

	var worst []types.HabitFinding
	if len(pattern.WorstHabits) > 0 {
		if err := json.Unmarshal(pattern.WorstHabits, &worst); err != nil {
			return nil, fmt.Errorf("decode worst habits: %w", err)
		}
	}

	now := time.Now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	today, err := u.deps.Habits.GetByUserDate(dbc, userID, day)
	if err != nil {
		return nil, fmt.Errorf("load habit record: %w", err)
	}

	recs := steps.BuildRecommendations(worst, today)
	if recs == nil {
		recs = []types.Recommendation{}
	}
	return recs, nil
}

func habitRecordFor(records []*types.DailyHabitRecord, at time.Time) *types.DailyHabitRecord {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	for _, r := range records {
		if r.Date.Equal(day) {
			return r
		}
	}
	return nil
}
