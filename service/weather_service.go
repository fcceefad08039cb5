// Package service contains the application's business logic
package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"farmweather.app/advisory"
	"farmweather.app/breaker"
	"farmweather.app/errors"
	"farmweather.app/models"
	"farmweather.app/providers"
	"farmweather.app/providers/cache"
)

const staleDataNote = "Note: weather data may be outdated due to a temporary service issue."

// WeatherStore is the durable persistence surface the service depends on
type WeatherStore interface {
	FindByKey(locationKey string) (*models.WeatherRecord, error)
	Upsert(record *models.WeatherRecord) error
	DeleteByKey(locationKey string) error
}

// AlertStore persists and reads farming alerts
type AlertStore interface {
	CreateBatch(alerts []models.FarmingAlert) error
	ActiveByUser(userID uint, now time.Time) ([]models.FarmingAlert, error)
}

// FarmerStore resolves farmers and their stored locations
type FarmerStore interface {
	FindByID(id uint) (*models.Farmer, error)
}

// WeatherService orchestrates forecast acquisition across the cache, the
// durable store and the live provider. GetForecast never returns an error:
// every failure path degrades to stale or static data instead.
type WeatherService struct {
	provider    providers.ForecastProvider
	cache       *cache.RecordCache
	weatherRepo WeatherStore
	alertRepo   AlertStore
	farmerRepo  FarmerStore
	breaker     *breaker.Breaker
	cacheTTL    time.Duration
	alertTTL    time.Duration
	now         func() time.Time
}

// WeatherServiceOptions holds the dependencies for creating a WeatherService
type WeatherServiceOptions struct {
	Provider    providers.ForecastProvider
	Cache       *cache.RecordCache
	WeatherRepo WeatherStore
	AlertRepo   AlertStore
	FarmerRepo  FarmerStore
	Breaker     *breaker.Breaker
	CacheTTL    time.Duration
	AlertTTL    time.Duration
}

// NewWeatherService creates a new weather service
func NewWeatherService(opts WeatherServiceOptions) *WeatherService {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}
	if opts.AlertTTL <= 0 {
		opts.AlertTTL = 24 * time.Hour
	}
	return &WeatherService{
		provider:    opts.Provider,
		cache:       opts.Cache,
		weatherRepo: opts.WeatherRepo,
		alertRepo:   opts.AlertRepo,
		farmerRepo:  opts.FarmerRepo,
		breaker:     opts.Breaker,
		cacheTTL:    opts.CacheTTL,
		alertTTL:    opts.AlertTTL,
		now:         time.Now,
	}
}

// GetForecast returns the forecast for a location, preferring fresh cached
// data and falling back through the durable store, a stale record, and
// finally a static payload. The response always carries usable guidance.
func (s *WeatherService) GetForecast(location models.GeoLocation) *models.WeatherResponse {
	key := location.Key()
	now := s.now()

	if record, ok := s.cache.Get(key); ok && !record.ExpiresAt.Before(now) {
		slog.Debug("forecast served from cache", "locationKey", key)
		return s.responseFromRecord(record)
	}

	if record := s.lookupDurable(key); record != nil && !record.ExpiresAt.Before(now) {
		slog.Debug("forecast served from durable store", "locationKey", key)
		s.cache.Set(key, record, record.ExpiresAt.Sub(now))
		return s.responseFromRecord(record)
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.fetchLive(location, now)
	}, func() (interface{}, error) {
		return s.staleOrStatic(location, key), nil
	})
	if err != nil {
		// unreachable while a fallback is registered, kept as a guard
		slog.Error("forecast acquisition failed", "locationKey", key, "error", err)
		return staticFallback(location)
	}

	return result.(*models.WeatherResponse)
}

// InvalidateCache removes the location's record from both storage tiers.
// Idempotent; storage failures are logged, never surfaced.
func (s *WeatherService) InvalidateCache(location models.GeoLocation) {
	key := location.Key()
	s.cache.Delete(key)
	if err := s.weatherRepo.DeleteByKey(key); err != nil {
		slog.Error("failed to delete weather record", "locationKey", key, "error", err)
	}
}

// GenerateFarmingAlerts evaluates the current forecast for the farmer's
// stored location and persists any triggered alerts. Like GetForecast it
// never reports an error: an unknown farmer, a missing location, or a
// storage failure all yield an empty result.
func (s *WeatherService) GenerateFarmingAlerts(userID uint) []models.AlertSummary {
	farmer, err := s.farmerRepo.FindByID(userID)
	if err != nil {
		slog.Error("failed to look up farmer", "userID", userID, "error", err)
		return []models.AlertSummary{}
	}
	if farmer == nil {
		slog.Warn("no farmer found for alert generation", "userID", userID)
		return []models.AlertSummary{}
	}

	location, ok := farmer.Location()
	if !ok {
		return []models.AlertSummary{}
	}

	response := s.GetForecast(location)
	if response.IsFallback {
		// no real observations to alert on
		return []models.AlertSummary{}
	}

	alerts := s.buildAlerts(userID, location, response)
	if len(alerts) == 0 {
		return []models.AlertSummary{}
	}

	if err := s.alertRepo.CreateBatch(alerts); err != nil {
		slog.Error("failed to store farming alerts", "userID", userID, "error", err)
		return []models.AlertSummary{}
	}

	summaries := make([]models.AlertSummary, 0, len(alerts))
	for _, alert := range alerts {
		summaries = append(summaries, alert.Summary())
	}
	return summaries
}

// GetUserAlerts returns the farmer's unexpired alerts, newest first
func (s *WeatherService) GetUserAlerts(userID uint) ([]models.AlertSummary, error) {
	alerts, err := s.alertRepo.ActiveByUser(userID, s.now())
	if err != nil {
		return nil, errors.NewDatabaseError("failed to query farming alerts", err)
	}

	summaries := make([]models.AlertSummary, 0, len(alerts))
	for _, alert := range alerts {
		summaries = append(summaries, alert.Summary())
	}
	return summaries, nil
}

func (s *WeatherService) fetchLive(location models.GeoLocation, now time.Time) (*models.WeatherResponse, error) {
	current, forecast, err := s.provider.FetchWeather(location)
	if err != nil {
		return nil, err
	}

	record := &models.WeatherRecord{
		LocationKey:            location.Key(),
		Latitude:               location.Latitude,
		Longitude:              location.Longitude,
		Current:                *current,
		Forecast:               forecast,
		FarmingRecommendations: advisory.Recommendations(*current, forecast, now),
		AgriculturalAdvisory:   advisory.Advisory(*current, forecast),
		CropPlanningAdvice:     advisory.CropPlanning(*current, forecast, now),
		CachedAt:               now,
		ExpiresAt:              now.Add(s.cacheTTL),
	}

	s.persist(record)

	response := s.responseFromRecord(record)
	response.Cached = false
	response.CachedAt = nil
	return response, nil
}

// persist writes the record to both tiers; neither failure blocks the response
func (s *WeatherService) persist(record *models.WeatherRecord) {
	s.cache.Set(record.LocationKey, record, s.cacheTTL)
	if err := s.weatherRepo.Upsert(record); err != nil {
		slog.Error("failed to persist weather record", "locationKey", record.LocationKey, "error", err)
	}
}

func (s *WeatherService) lookupDurable(key string) *models.WeatherRecord {
	record, err := s.weatherRepo.FindByKey(key)
	if err != nil {
		slog.Error("durable weather lookup failed", "locationKey", key, "error", err)
		return nil
	}
	return record
}

// staleOrStatic is the last-resort path when the live fetch is unavailable:
// any stored record, however old, beats the static payload.
func (s *WeatherService) staleOrStatic(location models.GeoLocation, key string) *models.WeatherResponse {
	record, ok := s.cache.Get(key)
	if !ok {
		record = s.lookupDurable(key)
	}
	if record == nil {
		slog.Warn("no stored forecast available, serving static fallback", "locationKey", key)
		return staticFallback(location)
	}

	slog.Warn("live fetch unavailable, serving stale forecast", "locationKey", key, "cachedAt", record.CachedAt)
	response := s.responseFromRecord(record)
	response.FarmingRecommendations = append(response.FarmingRecommendations, staleDataNote)
	return response
}

func (s *WeatherService) responseFromRecord(record *models.WeatherRecord) *models.WeatherResponse {
	cachedAt := record.CachedAt
	recommendations := make([]string, len(record.FarmingRecommendations))
	copy(recommendations, record.FarmingRecommendations)
	return &models.WeatherResponse{
		Location:               models.GeoLocation{Latitude: record.Latitude, Longitude: record.Longitude},
		Current:                record.Current,
		Forecast:               record.Forecast,
		FarmingRecommendations: recommendations,
		AgriculturalAdvisory:   record.AgriculturalAdvisory,
		CropPlanningAdvice:     record.CropPlanningAdvice,
		Cached:                 true,
		CachedAt:               &cachedAt,
	}
}

func (s *WeatherService) buildAlerts(userID uint, location models.GeoLocation, response *models.WeatherResponse) []models.FarmingAlert {
	now := s.now()
	var alerts []models.FarmingAlert

	add := func(alertType, title, message, severity string) {
		alerts = append(alerts, models.FarmingAlert{
			AlertID:   uuid.New().String(),
			UserID:    userID,
			AlertType: alertType,
			Title:     title,
			Message:   message,
			Severity:  severity,
			Location:  location,
			IsActive:  true,
			CreatedAt: now,
			ExpiresAt: now.Add(s.alertTTL),
		})
	}

	if response.Current.Temperature > 40 {
		add(models.AlertTypeTemperature, "Extreme Heat Warning",
			fmt.Sprintf("Temperature has reached %d°C. Protect crops and livestock from heat stress and irrigate during cooler hours.", response.Current.Temperature),
			models.SeverityCritical)
	}

	if len(response.Forecast) > 0 {
		first := response.Forecast[0]
		if first.Precipitation.Probability > 80 && first.Precipitation.Amount > 10 {
			add(models.AlertTypeRain, "Heavy Rain Alert",
				fmt.Sprintf("Heavy rainfall of %.1fmm expected with %.0f%% probability. Secure equipment and check field drainage.", first.Precipitation.Amount, first.Precipitation.Probability),
				models.SeverityHigh)
		}
	}

	if response.Current.WindSpeed > 20 {
		add(models.AlertTypeWind, "Strong Wind Advisory",
			fmt.Sprintf("Wind speeds of %.1f km/h recorded. Postpone spraying and secure greenhouses and covers.", response.Current.WindSpeed),
			models.SeverityMedium)
	}

	return alerts
}
