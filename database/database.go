// Package database handles connection and migration of the relational store
package database

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"farmweather.app/config"
	"farmweather.app/models"
)

// InitDB establishes a connection to the database using the provided configuration
func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established", "host", cfg.Host, "database", cfg.Name)
	return db, nil
}

// RunMigrations applies the schema for all persisted models
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.WeatherRecord{},
		&models.FarmingAlert{},
		&models.Farmer{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("database migrations completed")
	return nil
}

// CloseDB closes the underlying database connection
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
