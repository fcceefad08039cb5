package advisory

import (
	"farmweather.app/models"
)

// Flags are the derived booleans feeding the advisory decision chains
type Flags struct {
	RainExpected      bool // any forecast day with probability > 60
	HeavyRainExpected bool // any forecast day with amount > 10
	DryPeriod         bool // every forecast day with probability < 20
	HighTemp          bool // current temperature > 32
	LowHumidity       bool // current humidity < 40
	HighWind          bool // current wind speed > 15
}

// DeriveFlags computes the advisory flags from current + forecast weather
func DeriveFlags(current models.CurrentWeather, forecast []models.ForecastDay) Flags {
	return Flags{
		RainExpected:      anyDay(forecast, func(d models.ForecastDay) bool { return d.Precipitation.Probability > 60 }),
		HeavyRainExpected: anyDay(forecast, func(d models.ForecastDay) bool { return d.Precipitation.Amount > 10 }),
		DryPeriod:         allDays(forecast, func(d models.ForecastDay) bool { return d.Precipitation.Probability < 20 }),
		HighTemp:          current.Temperature > 32,
		LowHumidity:       current.Humidity < 40,
		HighWind:          current.WindSpeed > 15,
	}
}

// Advisory fills each of the seven guidance categories via its own
// priority-ordered decision chain. The first matching branch per field wins.
func Advisory(current models.CurrentWeather, forecast []models.ForecastDay) models.AgriculturalAdvisory {
	flags := DeriveFlags(current, forecast)

	return models.AgriculturalAdvisory{
		Irrigation:     irrigationAdvice(current, flags),
		PestControl:    pestControlAdvice(current, flags),
		Harvesting:     harvestingAdvice(flags),
		Planting:       plantingAdvice(flags),
		GeneralAdvice:  generalAdvice(flags),
		SoilConditions: soilConditionsAdvice(flags),
		CropProtection: cropProtectionAdvice(current, flags),
	}
}

func irrigationAdvice(current models.CurrentWeather, flags Flags) string {
	switch {
	case flags.RainExpected:
		return "Rain is expected soon; skip scheduled irrigation to avoid overwatering."
	case flags.DryPeriod && (flags.HighTemp || flags.LowHumidity):
		return "Hot, dry spell ahead: increase irrigation frequency and water during cooler hours."
	case current.Humidity > 70:
		return "Humidity is high; reduce irrigation to prevent root diseases."
	default:
		return "Maintain the normal irrigation schedule based on crop stage."
	}
}

func pestControlAdvice(current models.CurrentWeather, flags Flags) string {
	switch {
	case flags.HighWind:
		return "Winds are too strong for spraying; postpone pesticide application."
	case flags.RainExpected:
		return "Complete any planned spraying before the rain arrives."
	case current.Humidity > 75:
		return "Humid conditions favor fungal pests; scout fields and apply preventive treatment if needed."
	default:
		return "Continue routine pest monitoring."
	}
}

func harvestingAdvice(flags Flags) string {
	switch {
	case flags.HeavyRainExpected:
		return "Heavy rain is forecast; harvest mature crops immediately and move them under cover."
	case flags.RainExpected:
		return "Expedite harvesting of ready crops ahead of the expected rain."
	case flags.HighWind:
		return "Secure harvested produce and storage covers against strong winds."
	default:
		return "Conditions are suitable for normal harvesting operations."
	}
}

func plantingAdvice(flags Flags) string {
	switch {
	case flags.HeavyRainExpected:
		return "Postpone planting until the heavy rain passes and fields drain."
	case flags.DryPeriod:
		return "Pre-irrigate seedbeds before planting during this dry spell."
	case flags.HighTemp:
		return "Plant during evening hours to protect seedlings from heat."
	default:
		return "Conditions are favorable for planting."
	}
}

func generalAdvice(flags Flags) string {
	switch {
	case flags.HeavyRainExpected:
		return "Clear drainage channels and check bunds before the heavy rain arrives."
	case flags.HighTemp:
		return "Take heat precautions for field workers and livestock; provide shade and water."
	case flags.DryPeriod:
		return "Conserve water and prioritize critical crop stages for irrigation."
	default:
		return "Carry on with routine seasonal field work."
	}
}

func soilConditionsAdvice(flags Flags) string {
	switch {
	case flags.HeavyRainExpected:
		return "Watch for waterlogging; avoid working wet soil after the heavy rain."
	case flags.DryPeriod && flags.HighTemp:
		return "Apply mulch to retain soil moisture through the hot, dry period."
	case flags.RainExpected:
		return "Incoming rain should restore soil moisture to adequate levels."
	default:
		return "Soil moisture should remain stable; monitor as usual."
	}
}

func cropProtectionAdvice(current models.CurrentWeather, flags Flags) string {
	switch {
	case current.Temperature > 35:
		return "Extreme heat: deploy shade nets and protect sensitive crops from scorching."
	case current.Temperature < 5:
		return "Frost danger: cover seedlings and use frost protection measures overnight."
	case flags.HighWind:
		return "Strengthen windbreaks and stake vulnerable plants against strong winds."
	case flags.HeavyRainExpected:
		return "Install protective covers over sensitive crops before the heavy rain."
	default:
		return "No special crop protection measures are needed right now."
	}
}

// FallbackAdvisory is returned when live weather data cannot be obtained
func FallbackAdvisory() models.AgriculturalAdvisory {
	return models.AgriculturalAdvisory{
		Irrigation:     "Weather data unavailable; follow your standard irrigation schedule.",
		PestControl:    "Weather data unavailable; continue routine pest monitoring.",
		Harvesting:     "Weather data unavailable; use local observation to time harvesting.",
		Planting:       "Weather data unavailable; consult local conditions before planting.",
		GeneralAdvice:  "Live weather data is currently unavailable; rely on local observation.",
		SoilConditions: "Weather data unavailable; check soil moisture manually.",
		CropProtection: "Weather data unavailable; apply standard seasonal protection practices.",
	}
}
