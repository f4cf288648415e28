package signals

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/vigorhq/vigor-backend/internal/domain"
	"github.com/vigorhq/vigor-backend/internal/platform/dbctx"
	"github.com/vigorhq/vigor-backend/internal/platform/logger"
)

type CheckInRepo interface {
	Create(dbc dbctx.Context, row *types.CheckIn) error
	ListByUserDay(dbc dbctx.Context, userID uuid.UUID, day time.Time) ([]*types.CheckIn, error)
}

type checkInRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCheckInRepo(db *gorm.DB, baseLog *logger.Logger) CheckInRepo {
	return &checkInRepo{db: db, log: baseLog.With("repo", "CheckInRepo")}
}

func (r *checkInRepo) Create(dbc dbctx.Context, row *types.CheckIn) error {
	if row == nil {
		return nil
	}
	return r.db.WithContext(dbc.Ctx).Create(row).Error
}

func (r *checkInRepo) ListByUserDay(dbc dbctx.Context, userID uuid.UUID, day time.Time) ([]*types.CheckIn, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	var rows []*types.CheckIn
	err := r.db.WithContext(dbc.Ctx).
		Where("user_id = ? AND recorded_at >= ? AND recorded_at < ?", userID, start, end).
		Order("recorded_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
