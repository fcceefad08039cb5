// Package models defines data structures used throughout the application
package models

import (
	"fmt"
	"time"
)

// GeoLocation identifies a point on the globe. Input-only, never mutated.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Key returns the cache/store identifier for the location, latitude and
// longitude fixed to 4 decimal places.
func (l GeoLocation) Key() string {
	return fmt.Sprintf("%.4f,%.4f", l.Latitude, l.Longitude)
}

// Validate checks the coordinates are within range
func (l GeoLocation) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90, got %f", l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180, got %f", l.Longitude)
	}
	return nil
}

// CurrentWeather is a snapshot of observed conditions. Temperature and
// FeelsLike are rounded to the nearest degree; Visibility is in kilometers.
type CurrentWeather struct {
	Temperature   int      `json:"temperature"`
	Humidity      float64  `json:"humidity"`
	Pressure      float64  `json:"pressure"`
	WindSpeed     float64  `json:"windSpeed"`
	WindDirection float64  `json:"windDirection"`
	Description   string   `json:"description"`
	Icon          string   `json:"icon"`
	Visibility    float64  `json:"visibility"`
	UVIndex       *float64 `json:"uvIndex,omitempty"`
	FeelsLike     int      `json:"feelsLike"`
}

// Precipitation holds the rain outlook for a forecast day
type Precipitation struct {
	Probability float64 `json:"probability"` // percent
	Amount      float64 `json:"amount"`      // mm over 3h at the representative point
}

// ForecastDay is one day of the aggregated forecast. Weather is the
// representative mid-day snapshot; MinTemp/MaxTemp span the whole day.
type ForecastDay struct {
	Date          time.Time      `json:"date"`
	Weather       CurrentWeather `json:"weather"`
	Precipitation Precipitation  `json:"precipitation"`
	MinTemp       float64        `json:"minTemp"`
	MaxTemp       float64        `json:"maxTemp"`
}

// AgriculturalAdvisory carries one guidance string per advisory category
type AgriculturalAdvisory struct {
	Irrigation     string `json:"irrigation"`
	PestControl    string `json:"pestControl"`
	Harvesting     string `json:"harvesting"`
	Planting       string `json:"planting"`
	GeneralAdvice  string `json:"generalAdvice"`
	SoilConditions string `json:"soilConditions"`
	CropProtection string `json:"cropProtection"`
}

// CropPlanningAdvice is a crop-specific planning suggestion. Computed per
// request, never persisted.
type CropPlanningAdvice struct {
	CropType       string `json:"cropType"`
	Recommendation string `json:"recommendation"`
	Timing         string `json:"timing"`
	Priority       string `json:"priority"` // low, medium, high
	WeatherFactor  string `json:"weatherFactor"`
}

// WeatherResponse is the assembled forecast payload returned to callers
type WeatherResponse struct {
	Location               GeoLocation          `json:"location"`
	Current                CurrentWeather       `json:"current"`
	Forecast               []ForecastDay        `json:"forecast"`
	FarmingRecommendations []string             `json:"farmingRecommendations"`
	AgriculturalAdvisory   AgriculturalAdvisory `json:"agriculturalAdvisory"`
	CropPlanningAdvice     []CropPlanningAdvice `json:"cropPlanningAdvice"`
	IsFallback             bool                 `json:"isFallback"`
	Cached                 bool                 `json:"cached"`
	CachedAt               *time.Time           `json:"cachedAt,omitempty"`
}

// WeatherRecord is the durable per-location forecast record, upserted on
// every successful live fetch and keyed by LocationKey
type WeatherRecord struct {
	ID                     uint                 `json:"id" gorm:"primaryKey"`
	LocationKey            string               `json:"location_key" gorm:"uniqueIndex;not null"`
	Latitude               float64              `json:"latitude"`
	Longitude              float64              `json:"longitude"`
	Current                CurrentWeather       `json:"current" gorm:"serializer:json"`
	Forecast               []ForecastDay        `json:"forecast" gorm:"serializer:json"`
	FarmingRecommendations []string             `json:"farming_recommendations" gorm:"serializer:json"`
	AgriculturalAdvisory   AgriculturalAdvisory `json:"agricultural_advisory" gorm:"serializer:json"`
	CropPlanningAdvice     []CropPlanningAdvice `json:"crop_planning_advice" gorm:"serializer:json"`
	CachedAt               time.Time            `json:"cached_at"`
	ExpiresAt              time.Time            `json:"expires_at"`
}

// Alert types
const (
	AlertTypeRain            = "rain"
	AlertTypeTemperature     = "temperature"
	AlertTypeWind            = "wind"
	AlertTypeHumidity        = "humidity"
	AlertTypeFarmingActivity = "farming_activity"
)

// Alert severities
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// FarmingAlert is a persisted weather alert for a farmer. Effectively
// append-only: expiry is a read-time filter, not an update.
type FarmingAlert struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	AlertID   string      `json:"alert_id" gorm:"uniqueIndex;not null"`
	UserID    uint        `json:"user_id" gorm:"index;not null"`
	AlertType string      `json:"alert_type" gorm:"not null"`
	Title     string      `json:"title" gorm:"not null"`
	Message   string      `json:"message" gorm:"not null"`
	Severity  string      `json:"severity" gorm:"not null"`
	Location  GeoLocation `json:"location" gorm:"serializer:json"`
	IsActive  bool        `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// AlertSummary is the lightweight projection returned to callers
type AlertSummary struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary projects an alert into its caller-facing shape
func (a FarmingAlert) Summary() AlertSummary {
	return AlertSummary{
		ID:        a.AlertID,
		Type:      a.AlertType,
		Title:     a.Title,
		Message:   a.Message,
		Severity:  a.Severity,
		CreatedAt: a.CreatedAt,
	}
}

// Farmer represents an app user with an optionally stored farm location
type Farmer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Location returns the farmer's stored location, or false when not set
func (f Farmer) Location() (GeoLocation, bool) {
	if f.Latitude == nil || f.Longitude == nil {
		return GeoLocation{}, false
	}
	return GeoLocation{Latitude: *f.Latitude, Longitude: *f.Longitude}, true
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
