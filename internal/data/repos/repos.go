package repos

import (
	"gorm.io/gorm"

	"github.com/vigorhq/vigor-backend/internal/data/repos/scores"
	"github.com/vigorhq/vigor-backend/internal/data/repos/signals"
	"github.com/vigorhq/vigor-backend/internal/data/repos/user"
	"github.com/vigorhq/vigor-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type CheckInRepo = signals.CheckInRepo
type HealthRecordRepo = signals.HealthRecordRepo
type HabitRecordRepo = signals.HabitRecordRepo

type EnergyScoreRepo = scores.EnergyScoreRepo
type HabitPatternRepo = scores.HabitPatternRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewCheckInRepo(db *gorm.DB, baseLog *logger.Logger) CheckInRepo {
	return signals.NewCheckInRepo(db, baseLog)
}
func NewHealthRecordRepo(db *gorm.DB, baseLog *logger.Logger) HealthRecordRepo {
	return signals.NewHealthRecordRepo(db, baseLog)
}
func NewHabitRecordRepo(db *gorm.DB, baseLog *logger.Logger) HabitRecordRepo {
	return signals.NewHabitRecordRepo(db, baseLog)
}

func NewEnergyScoreRepo(db *gorm.DB, baseLog *logger.Logger) EnergyScoreRepo {
	return scores.NewEnergyScoreRepo(db, baseLog)
}
func NewHabitPatternRepo(db *gorm.DB, baseLog *logger.Logger) HabitPatternRepo {
	return scores.NewHabitPatternRepo(db, baseLog)
}
