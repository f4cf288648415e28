package energy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	redisclient "github.com/vigorhq/vigor-backend/internal/clients/redis"
	"github.com/vigorhq/vigor-backend/internal/data/repos"
	types "github.com/vigorhq/vigor-backend/internal/domain"
	"github.com/vigorhq/vigor-backend/internal/modules/energy/steps"
	"github.com/vigorhq/vigor-backend/internal/platform/apierr"
	"github.com/vigorhq/vigor-backend/internal/platform/dbctx"
	"github.com/vigorhq/vigor-backend/internal/platform/logger"
	"github.com/vigorhq/vigor-backend/internal/platform/openai"
)

type UsecasesDeps struct {
	Log *logger.Logger
	AI  openai.Client

	// Bus is optional; score events are best-effort.
	Bus redisclient.ScoreEventBus

	Users         repos.UserRepo
	CheckIns      repos.CheckInRepo
	HealthRecords repos.HealthRecordRepo
	Habits        repos.HabitRecordRepo
	Scores        repos.EnergyScoreRepo
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases { return Usecases{deps: deps} }

// daySignals is the read set every score request starts from. The score write
// happens strictly after these reads within the request, which is the only
// ordering the design needs: two concurrent recomputes race last-writer-wins
// and the fingerprint check self-corrects on the next read.
type daySignals struct {
	checkIns      []*types.CheckIn
	healthRecords []*types.HealthRecord
	habit         *types.DailyHabitRecord
}

func (u Usecases) readSignals(ctx context.Context, userID uuid.UUID, date time.Time) (daySignals, error) {
	var sig daySignals
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.New(gctx)

	g.Go(func() error {
		rows, err := u.deps.CheckIns.ListByUserDay(dbc, userID, date)
		if err != nil {
			return fmt.Errorf("list check-ins: %w", err)
		}
		sig.checkIns = rows
		return nil
	})
	g.Go(func() error {
		rows, err := u.deps.HealthRecords.ListByUserDate(dbc, userID, date)
		if err != nil {
			return fmt.Errorf("list health records: %w", err)
		}
		sig.healthRecords = rows
		return nil
	})
	g.Go(func() error {
		row, err := u.deps.Habits.GetByUserDate(dbc, userID, date)
		if err != nil {
			return fmt.Errorf("load habit record: %w", err)
		}
		sig.habit = row
		return nil
	})

	if err := g.Wait(); err != nil {
		return daySignals{}, err
	}
	return sig, nil
}

// GetOrComputeScore returns the day's energy score, recomputing only when the
// stored one fails the freshness rule. A nil score (with nil error) means the
// day has zero check-ins: a valid "no score" state, not an error, and
// nothing is persisted for it.
func (u Usecases) GetOrComputeScore(ctx context.Context, userID uuid.UUID, date time.Time) (*types.EnergyScore, error) {
	sig, err := u.readSignals(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if len(sig.checkIns) == 0 {
		return nil, nil
	}

	dbc := dbctx.New(ctx)
	stored, err := u.deps.Scores.GetByUserDate(dbc, userID, date)
	if err != nil {
		return nil, fmt.Errorf("load stored score: %w", err)
	}
	if steps.ScoreIsFresh(stored, sig.checkIns) {
		return stored, nil
	}

	return u.computeAndStore(ctx, userID, date, sig)
}

// ForceRecompute drops any stored score for the day before recomputing, so a
// force-regenerate always exercises the full pipeline.
func (u Usecases) ForceRecompute(ctx context.Context, userID uuid.UUID, date time.Time) (*types.EnergyScore, error) {
	dbc := dbctx.New(ctx)
	if err := u.deps.Scores.DeleteByUserDate(dbc, userID, date); err != nil {
		return nil, fmt.Errorf("delete stored score: %w", err)
	}

	sig, err := u.readSignals(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if len(sig.checkIns) == 0 {
		return nil, nil
	}
	return u.computeAndStore(ctx, userID, date, sig)
}

func (u Usecases) computeAndStore(ctx context.Context, userID uuid.UUID, date time.Time, sig daySignals) (*types.EnergyScore, error) {
	agg := steps.AggregateScore(steps.AggregateInput{
		CheckIns:      sig.checkIns,
		HealthRecords: sig.healthRecords,
		Habit:         sig.habit,
	})

	expl := steps.Explain(ctx, steps.ExplainDeps{Log: u.deps.Log, AI: u.deps.AI}, steps.ExplainInput{
		Score:   agg.Score,
		Factors: agg.Factors,
	})

	actionsJSON, err := json.Marshal(expl.Actions)
	if err != nil {
		return nil, fmt.Errorf("marshal actions: %w", err)
	}
	factorsJSON, err := json.Marshal(agg.Factors)
	if err != nil {
		return nil, fmt.Errorf("marshal factors: %w", err)
	}

	row := &types.EnergyScore{
		UserID:             userID,
		Date:               date,
		Score:              agg.Score,
		Explanation:        expl.Explanation,
		Actions:            actionsJSON,
		Factors:            factorsJSON,
		ContentFingerprint: steps.Fingerprint(sig.checkIns),
		Source:             expl.Source,
	}

	dbc := dbctx.New(ctx)
	if err := u.deps.Scores.Upsert(dbc, row); err != nil {
		return nil, fmt.Errorf("upsert score: %w", err)
	}

	if u.deps.Bus != nil {
		ev := redisclient.ScoreEvent{
			UserID: userID,
			Date:   date.Format("2006-01-02"),
			Score:  row.Score,
			Source: row.Source,
		}
		if pubErr := u.deps.Bus.Publish(ctx, ev); pubErr != nil {
			u.deps.Log.Warn("Score event publish failed", "error", pubErr, "user_id", userID.String())
		}
	}

	return row, nil
}

// IngestCheckIn durably stores the check-in first, then runs the enrichment
// pipeline (habit derivation, score recompute) as independent best-effort
// steps. A failure in either step is logged and swallowed: the committed
// check-in write is never unwound, and the caller still gets the stored row.
func (u Usecases) IngestCheckIn(ctx context.Context, userID uuid.UUID, kind string, payload map[string]any) (*types.CheckIn, *types.EnergyScore, error) {
	if !types.ValidCheckInKind(kind) {
		return nil, nil, apierr.BadRequest("invalid_check_in_kind", fmt.Errorf("invalid check-in kind %q", kind))
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal payload: %w", err)
	}

	dbc := dbctx.New(ctx)
	if err := u.deps.Users.EnsureExists(dbc, userID); err != nil {
		return nil, nil, fmt.Errorf("ensure user: %w", err)
	}

	now := time.Now().UTC()
	row := &types.CheckIn{
		UserID:     userID,
		Kind:       kind,
		RecordedAt: now,
		Payload:    payloadJSON,
	}
	if err := u.deps.CheckIns.Create(dbc, row); err != nil {
		return nil, nil, fmt.Errorf("store check-in: %w", err)
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if err := u.mergeHabitPatch(ctx, userID, day, kind, payload); err != nil {
		u.deps.Log.Warn("Habit derivation failed (check-in kept)",
			"error", err, "user_id", userID.String(), "kind", kind)
	}

	score, err := u.GetOrComputeScore(ctx, userID, day)
	if err != nil {
		u.deps.Log.Warn("Score recompute failed (check-in kept)",
			"error", err, "user_id", userID.String())
		return row, nil, nil
	}

	return row, score, nil
}

// ListCheckIns returns the day's check-ins in recorded order.
func (u Usecases) ListCheckIns(ctx context.Context, userID uuid.UUID, date time.Time) ([]*types.CheckIn, error) {
	return u.deps.CheckIns.ListByUserDay(dbctx.New(ctx), userID, date)
}

// UpsertHealthRecord stores one device-derived snapshot per (kind, date),
// replacing any previous payload for that key.
func (u Usecases) UpsertHealthRecord(ctx context.Context, userID uuid.UUID, kind string, sourceDate time.Time, payload map[string]any) (*types.HealthRecord, error) {
	if !types.ValidHealthRecordKind(kind) {
		return nil, apierr.BadRequest("invalid_health_record_kind", fmt.Errorf("invalid health record kind %q", kind))
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	dbc := dbctx.New(ctx)
	if err := u.deps.Users.EnsureExists(dbc, userID); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	row := &types.HealthRecord{
		UserID:     userID,
		Kind:       kind,
		SourceDate: sourceDate,
		Payload:    payloadJSON,
	}
	if err := u.deps.HealthRecords.Upsert(dbc, row); err != nil {
		return nil, fmt.Errorf("upsert health record: %w", err)
	}
	return row, nil
}

func (u Usecases) mergeHabitPatch(ctx context.Context, userID uuid.UUID, day time.Time, kind string, payload map[string]any) (err error) {
	// Derivation is a pure table lookup, but it sits inside the check-in write
	// path: nothing it does may surface to the caller.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("habit derivation panic: %v", r)
		}
	}()

	patch := steps.DeriveHabitPatch(kind, payload)

	dbc := dbctx.New(ctx)
	existing, err := u.deps.Habits.GetByUserDate(dbc, userID, day)
	if err != nil {
		return fmt.Errorf("load habit record: %w", err)
	}
	merged := steps.MergeHabitRecord(existing, patch, userID, day)
	if err := u.deps.Habits.Upsert(dbc, merged); err != nil {
		return fmt.Errorf("upsert habit record: %w", err)
	}
	return nil
}
