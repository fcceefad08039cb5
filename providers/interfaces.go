package providers

import (
	"farmweather.app/models"
)

// ForecastProvider fetches live current conditions plus a daily-aggregated
// forecast for a location
type ForecastProvider interface {
	FetchWeather(location models.GeoLocation) (*models.CurrentWeather, []models.ForecastDay, error)
}
