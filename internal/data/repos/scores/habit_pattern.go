package scores

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/vigorhq/vigor-backend/internal/domain"
	"github.com/vigorhq/vigor-backend/internal/platform/dbctx"
	"github.com/vigorhq/vigor-backend/internal/platform/logger"
)

type HabitPatternRepo interface {
	Upsert(dbc dbctx.Context, row *types.HabitPattern) error
	GetByUserWeekStart(dbc dbctx.Context, userID uuid.UUID, weekStart time.Time) (*types.HabitPattern, error)
	GetLatestByUser(dbc dbctx.Context, userID uuid.UUID) (*types.HabitPattern, error)
}

type habitPatternRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHabitPatternRepo(db *gorm.DB, baseLog *logger.Logger) HabitPatternRepo {
	return &habitPatternRepo{db: db, log: baseLog.With("repo", "HabitPatternRepo")}
}

func (r *habitPatternRepo) Upsert(dbc dbctx.Context, row *types.HabitPattern) error {
	if row == nil {
		return nil
	}
	return r.db.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
			DoUpdates: clause.AssignmentColumns([]string{"week_end", "summary", "worst_habits", "best_habits", "correlations", "recommendations", "stats", "days_analyzed", "insufficient_data", "updated_at"}),
		}).
		Create(row).Error
}

func (r *habitPatternRepo) GetByUserWeekStart(dbc dbctx.Context, userID uuid.UUID, weekStart time.Time) (*types.HabitPattern, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.HabitPattern
	err := r.db.WithContext(dbc.Ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart.Format("2006-01-02")).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *habitPatternRepo) GetLatestByUser(dbc dbctx.Context, userID uuid.UUID) (*types.HabitPattern, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.HabitPattern
	err := r.db.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("week_start DESC").
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
