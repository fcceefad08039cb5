package service

import (
	"time"

	"farmweather.app/advisory"
	"farmweather.app/models"
)

// staticFallback builds the payload served when neither live nor stored data
// is available. Conditions are deliberately moderate so the attached guidance
// stays safe to follow.
func staticFallback(location models.GeoLocation) *models.WeatherResponse {
	current := models.CurrentWeather{
		Temperature: 25,
		FeelsLike:   25,
		Humidity:    60,
		Pressure:    1013,
		WindSpeed:   8,
		Description: "conditions unavailable",
		Visibility:  10,
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	forecast := make([]models.ForecastDay, 0, 3)
	for i := 0; i < 3; i++ {
		forecast = append(forecast, models.ForecastDay{
			Date:          today.AddDate(0, 0, i),
			Weather:       current,
			Precipitation: models.Precipitation{Probability: 30, Amount: 0},
			MinTemp:       20,
			MaxTemp:       30,
		})
	}

	return &models.WeatherResponse{
		Location: location,
		Current:  current,
		Forecast: forecast,
		FarmingRecommendations: []string{
			"Weather data unavailable. Follow your regular seasonal schedule and check back later.",
		},
		AgriculturalAdvisory: advisory.FallbackAdvisory(),
		CropPlanningAdvice:   []models.CropPlanningAdvice{},
		IsFallback:           true,
	}
}
