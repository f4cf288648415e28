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

type EnergyScoreRepo interface {
	GetByUserDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) (*types.EnergyScore, error)
	Upsert(dbc dbctx.Context, row *types.EnergyScore) error
	DeleteByUserDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) error
	ListByUserRange(dbc dbctx.Context, userID uuid.UUID, from, to time.Time) ([]*types.EnergyScore, error)
}

type energyScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnergyScoreRepo(db *gorm.DB, baseLog *logger.Logger) EnergyScoreRepo {
	return &energyScoreRepo{db: db, log: baseLog.With("repo", "EnergyScoreRepo")}
}

func (r *energyScoreRepo) GetByUserDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) (*types.EnergyScore, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.EnergyScore
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

func (r *energyScoreRepo) Upsert(dbc dbctx.Context, row *types.EnergyScore) error {
	if row == nil {
		return nil
	}
	return r.db.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "explanation", "actions", "factors", "content_fingerprint", "source", "updated_at"}),
		}).
		Create(row).Error
}

func (r *energyScoreRepo) DeleteByUserDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) error {
	if userID == uuid.Nil {
		return nil
	}
	return r.db.WithContext(dbc.Ctx).
		Where("user_id = ? AND date = ?", userID, date.Format("2006-01-02")).
		Delete(&types.EnergyScore{}).Error
}

func (r *energyScoreRepo) ListByUserRange(dbc dbctx.Context, userID uuid.UUID, from, to time.Time) ([]*types.EnergyScore, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var rows []*types.EnergyScore
	err := r.db.WithContext(dbc.Ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
