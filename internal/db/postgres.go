package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vigorhq/vigor-backend/internal/config"
	"github.com/vigorhq/vigor-backend/internal/domain"
	"github.com/vigorhq/vigor-backend/internal/platform/logger"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(cfg config.PostgresConfig, log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	var (
		conn *gorm.DB
		err  error
	)
	switch strings.ToLower(cfg.Driver) {
	case "sqlite":
		serviceLog.Info("Opening sqlite database", "path", cfg.SQLitePath)
		conn, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	default:
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
		serviceLog.Info("Connecting to Postgres...", "host", cfg.Host, "db", cfg.Name)
		conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
		if err == nil {
			if extErr := conn.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; extErr != nil {
				serviceLog.Error("Failed to enable uuid-ossp extension", "error", extErr)
				return nil, fmt.Errorf("enable uuid-ossp extension: %w", extErr)
			}
		}
	}
	if err != nil {
		serviceLog.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &Service{db: conn, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&domain.User{},
		&domain.CheckIn{},
		&domain.HealthRecord{},
		&domain.DailyHabitRecord{},
		&domain.EnergyScore{},
		&domain.HabitPattern{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}
