package advisory

import (
	"time"

	"farmweather.app/models"
)

// CropPlanning produces crop-specific planning suggestions. Gates are
// evaluated in a fixed order and matching entries are appended as-is: no
// deduplication, no sorting.
func CropPlanning(current models.CurrentWeather, forecast []models.ForecastDay, now time.Time) []models.CropPlanningAdvice {
	flags := DeriveFlags(current, forecast)
	month := now.Month()
	advice := make([]models.CropPlanningAdvice, 0, 6)

	if month >= time.June && month <= time.September && (flags.RainExpected || current.Humidity > 60) {
		advice = append(advice, models.CropPlanningAdvice{
			CropType:       "Rice",
			Recommendation: "Conditions suit rice transplanting; keep nurseries ready.",
			Timing:         "Within the next week",
			Priority:       "high",
			WeatherFactor:  "Monsoon rainfall and high humidity",
		})
	}

	if month >= time.October && month <= time.December && current.Temperature < 25 {
		advice = append(advice, models.CropPlanningAdvice{
			CropType:       "Wheat",
			Recommendation: "The sowing window for wheat is open; prepare seedbeds now.",
			Timing:         "Current sowing window",
			Priority:       "high",
			WeatherFactor:  "Cool post-monsoon temperatures",
		})
	}

	if current.Temperature >= 18 && current.Temperature <= 30 && !flags.HeavyRainExpected {
		advice = append(advice, models.CropPlanningAdvice{
			CropType:       "Tomato",
			Recommendation: "Mild temperatures favor tomato transplanting and fruit set.",
			Timing:         "Next two weeks",
			Priority:       "medium",
			WeatherFactor:  "Moderate temperature range",
		})
	}

	if month >= time.April && month <= time.June && current.Temperature > 25 && !flags.RainExpected {
		advice = append(advice, models.CropPlanningAdvice{
			CropType:       "Cotton",
			Recommendation: "Warm, dry spell is suitable for cotton sowing.",
			Timing:         "Before the monsoon onset",
			Priority:       "medium",
			WeatherFactor:  "Warm and dry pre-monsoon weather",
		})
	}

	if current.Temperature >= 25 && current.Temperature <= 35 && current.Humidity > 50 {
		advice = append(advice, models.CropPlanningAdvice{
			CropType:       "Sugarcane",
			Recommendation: "Warm, humid conditions support sugarcane growth; maintain field moisture.",
			Timing:         "Ongoing",
			Priority:       "low",
			WeatherFactor:  "Warm temperatures with adequate humidity",
		})
	}

	if current.Temperature < 30 {
		advice = append(advice, models.CropPlanningAdvice{
			CropType:       "Leafy Vegetables",
			Recommendation: "Temperatures allow succession planting of leafy vegetables.",
			Timing:         "Anytime this month",
			Priority:       "low",
			WeatherFactor:  "Mild temperatures",
		})
	}

	return advice
}
