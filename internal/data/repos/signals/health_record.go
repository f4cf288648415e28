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

type HealthRecordRepo interface {
	Upsert(dbc dbctx.Context, row *types.HealthRecord) error
	ListByUserDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) ([]*types.HealthRecord, error)
}

type healthRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHealthRecordRepo(db *gorm.DB, baseLog *logger.Logger) HealthRecordRepo {
	return &healthRecordRepo{db: db, log: baseLog.With("repo", "HealthRecordRepo")}
}

func (r *healthRecordRepo) Upsert(dbc dbctx.Context, row *types.HealthRecord) error {
	if row == nil {
		return nil
	}
	return r.db.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}, {Name: "source_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(row).Error
}

func (r *healthRecordRepo) ListByUserDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) ([]*types.HealthRecord, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var rows []*types.HealthRecord
	err := r.db.WithContext(dbc.Ctx).
		Where("user_id = ? AND source_date = ?", userID, date.Format("2006-01-02")).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
