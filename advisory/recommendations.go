// Package advisory derives farming guidance from weather conditions. All
// functions are pure: given the same current weather, forecast and time they
// produce the same output, which keeps every threshold rule unit-testable.
package advisory

import (
	"time"

	"farmweather.app/models"
)

func anyDay(forecast []models.ForecastDay, match func(models.ForecastDay) bool) bool {
	for _, day := range forecast {
		if match(day) {
			return true
		}
	}
	return false
}

func allDays(forecast []models.ForecastDay, match func(models.ForecastDay) bool) bool {
	if len(forecast) == 0 {
		return false
	}
	for _, day := range forecast {
		if !match(day) {
			return false
		}
	}
	return true
}

// Recommendations produces threshold-based farming tips for the given
// conditions. Rules are append-only and evaluated in a fixed order; the
// heavy-rain message takes precedence over the plain rain-expected one.
func Recommendations(current models.CurrentWeather, forecast []models.ForecastDay, now time.Time) []string {
	recommendations := make([]string, 0, 8)

	if current.Temperature > 35 {
		recommendations = append(recommendations,
			"High temperature alert: provide shade for livestock and increase irrigation frequency to prevent heat stress in crops.")
	}
	if current.Temperature < 10 {
		recommendations = append(recommendations,
			"Frost risk: cover sensitive crops overnight and delay early morning irrigation.")
	}
	if current.Temperature >= 25 && current.Temperature <= 30 {
		recommendations = append(recommendations,
			"Temperatures are optimal for most field operations and crop growth.")
	}

	if current.Humidity > 80 {
		recommendations = append(recommendations,
			"High humidity increases fungal disease risk: inspect crops closely and ensure good air circulation.")
	}
	if current.Humidity < 30 {
		recommendations = append(recommendations,
			"Low humidity: mulch soil and water crops early in the day to reduce evaporation loss.")
	}

	heavyRain := anyDay(forecast, func(d models.ForecastDay) bool { return d.Precipitation.Amount > 10 })
	rainLikely := anyDay(forecast, func(d models.ForecastDay) bool { return d.Precipitation.Probability > 70 })
	switch {
	case heavyRain:
		recommendations = append(recommendations,
			"Heavy rainfall expected: postpone fertilizer application and prepare field drainage channels.")
	case rainLikely:
		recommendations = append(recommendations,
			"Rain expected in the coming days: plan harvesting and spraying around the showers.")
	}
	if allDays(forecast, func(d models.ForecastDay) bool { return d.Precipitation.Probability < 20 }) {
		recommendations = append(recommendations,
			"Dry weather ahead: schedule irrigation and conserve soil moisture.")
	}

	switch {
	case current.WindSpeed > 20:
		recommendations = append(recommendations,
			"Strong winds expected: secure greenhouse covers and delay pesticide spraying.")
	case current.WindSpeed > 15:
		recommendations = append(recommendations,
			"Moderate winds: take extra care with spraying operations and support tall crops.")
	}
	if current.WindSpeed < 5 {
		recommendations = append(recommendations,
			"Calm winds make this an ideal time for pesticide and foliar spraying.")
	}

	if current.UVIndex != nil && *current.UVIndex > 8 {
		recommendations = append(recommendations,
			"Very high UV levels: schedule field work for early morning or late afternoon.")
	}

	recommendations = append(recommendations, seasonalTip(now.Month()))

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Weather conditions are favorable for most farming activities.")
	}

	return recommendations
}

func seasonalTip(month time.Month) string {
	switch {
	case month >= time.March && month <= time.May:
		return "Summer season: prepare fields for the kharif cycle and service irrigation equipment."
	case month >= time.June && month <= time.September:
		return "Monsoon season: monitor drainage and watch for pest outbreaks after rain."
	case month >= time.October && month <= time.December:
		return "Post-monsoon season: good window for rabi sowing and soil preparation."
	default:
		return "Winter season: protect crops from cold nights and plan for the coming sowing season."
	}
}
