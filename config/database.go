package config

import (
	"fmt"
	"log/slog"
	"time"

	"blog-cms/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the Postgres connection described by cfg.
func InitDB(cfg *Config, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), GormConfig(log, cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// GormConfig is shared by the production and test databases so both translate
// driver errors the same way.
func GormConfig(log *slog.Logger, level string) *gorm.Config {
	gormLevel := logger.Warn
	switch level {
	case "debug":
		gormLevel = logger.Info
	case "error":
		gormLevel = logger.Error
	}

	return &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log, gormLevel, 500*time.Millisecond),
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Tag{}, &models.Article{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
