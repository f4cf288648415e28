package signals

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/vigorhq/vigor-backend/internal/domain"
	"github.com/vigorhq/vigor-backend/internal/platform/dbctx"
	"github.com/vigorhq/vigor-backend/internal/platform/logger"
)

type HabitRecordRepo interface {
	GetByUserDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) (*types.DailyHabitRecord, error)
	Upsert(dbc dbctx.Context, row *types.DailyHabitRecord) error
	ListByUserRange(dbc dbctx.Context, userID uuid.UUID, from, to time.Time) ([]*types.DailyHabitRecord, error)
}

type habitRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHabitRecordRepo(db *gorm.DB, baseLog *logger.Logger) HabitRecordRepo {
	return &habitRecordRepo{db: db, log: baseLog.With("repo", "HabitRecordRepo")}
}

func (r *habitRecordRepo) GetByUserDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) (*types.DailyHabitRecord, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.DailyHabitRecord
	err := r.db.WithContext(dbc.Ctx).
		Where("user_id = ? AND date = ?", userID, date.Format("2006-01-02")).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Upsert writes the merged row. Merge semantics (last writer wins per field)
// live in the energy module; the repo persists whatever it is handed.
func (r *habitRecordRepo) Upsert(dbc dbctx.Context, row *types.DailyHabitRecord) error {
	if row == nil {
		return nil
	}
	return r.db.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			UpdateAll: true,
		}).
		Create(row).Error
}

func (r *habitRecordRepo) ListByUserRange(dbc dbctx.Context, userID uuid.UUID, from, to time.Time) ([]*types.DailyHabitRecord, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var rows []*types.DailyHabitRecord
	err := r.db.WithContext(dbc.Ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
