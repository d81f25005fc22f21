package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-ranker/internal/models"
)

// InitDatabase opens the postgres session store and migrates the sessions
// table.
func InitDatabase(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Log.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.AutoMigrate(&models.Session{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sessions table: %w", err)
	}

	log.Info("session store ready",
		zap.String("backend", StorePostgres),
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.DBName),
	)

	return db, nil
}
