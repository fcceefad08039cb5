// Package repository implements data access layer for the application
package repository

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"farmweather.app/models"
)

// WeatherRepository handles data access operations for cached forecast records
type WeatherRepository struct {
	db *gorm.DB
}

// NewWeatherRepository creates a new repository for forecast records
func NewWeatherRepository(db *gorm.DB) *WeatherRepository {
	return &WeatherRepository{db: db}
}

// FindByKey retrieves the forecast record for a location key, or nil when
// none exists
func (r *WeatherRepository) FindByKey(locationKey string) (*models.WeatherRecord, error) {
	var record models.WeatherRecord
	result := r.db.Where("location_key = ?", locationKey).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("find weather record", "error", result.Error, "location_key", locationKey)
		return nil, result.Error
	}

	return &record, nil
}

// Upsert creates or overwrites the forecast record for its location key
func (r *WeatherRepository) Upsert(record *models.WeatherRecord) error {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "location_key"}},
		UpdateAll: true,
	}).Create(record)
	if result.Error != nil {
		slog.Error("upsert weather record", "error", result.Error, "location_key", record.LocationKey)
		return result.Error
	}

	return nil
}

// DeleteByKey removes the forecast record for a location key. Deleting a
// missing record is not an error.
func (r *WeatherRepository) DeleteByKey(locationKey string) error {
	result := r.db.Where("location_key = ?", locationKey).Delete(&models.WeatherRecord{})
	if result.Error != nil {
		slog.Error("delete weather record", "error", result.Error, "location_key", locationKey)
		return result.Error
	}

	return nil
}

// AlertRepository handles data access operations for farming alerts
type AlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new repository for farming alerts
func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// CreateBatch persists a set of alerts in one insert
func (r *AlertRepository) CreateBatch(alerts []models.FarmingAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	result := r.db.Create(&alerts)
	if result.Error != nil {
		slog.Error("create alerts", "error", result.Error, "count", len(alerts))
		return result.Error
	}

	return nil
}

// ActiveByUser returns a user's active, unexpired alerts, newest first.
// Expiry is purely this read-time filter.
func (r *AlertRepository) ActiveByUser(userID uint, now time.Time) ([]models.FarmingAlert, error) {
	var alerts []models.FarmingAlert
	result := r.db.
		Where("user_id = ? AND is_active = ? AND expires_at > ?", userID, true, now).
		Order("created_at DESC").
		Find(&alerts)
	if result.Error != nil {
		slog.Error("query active alerts", "error", result.Error, "user_id", userID)
		return nil, result.Error
	}

	return alerts, nil
}

// FarmerRepository handles read-only lookups of app users
type FarmerRepository struct {
	db *gorm.DB
}

// NewFarmerRepository creates a new repository for farmer lookups
func NewFarmerRepository(db *gorm.DB) *FarmerRepository {
	return &FarmerRepository{db: db}
}

// FindByID retrieves a farmer by ID, or nil when none exists
func (r *FarmerRepository) FindByID(id uint) (*models.Farmer, error) {
	var farmer models.Farmer
	result := r.db.First(&farmer, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("find farmer", "error", result.Error, "id", id)
		return nil, result.Error
	}

	return &farmer, nil
}
