package advisory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"farmweather.app/models"
)

func TestDeriveFlagsBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		current  models.CurrentWeather
		forecast []models.ForecastDay
		expected Flags
	}{
		{
			name:     "AllQuiet",
			current:  models.CurrentWeather{Temperature: 25, Humidity: 55, WindSpeed: 10},
			forecast: dryForecast(),
			expected: Flags{DryPeriod: true},
		},
		{
			name:    "RainAtSixtyOnePercent",
			current: models.CurrentWeather{Temperature: 25, Humidity: 55, WindSpeed: 10},
			forecast: []models.ForecastDay{
				{Precipitation: models.Precipitation{Probability: 61}},
			},
			expected: Flags{RainExpected: true},
		},
		{
			name:    "RainAtExactlySixtyPercentDoesNotCount",
			current: models.CurrentWeather{Temperature: 25, Humidity: 55, WindSpeed: 10},
			forecast: []models.ForecastDay{
				{Precipitation: models.Precipitation{Probability: 60}},
			},
			expected: Flags{},
		},
		{
			name:    "HeavyRainAboveTenMillimeters",
			current: models.CurrentWeather{Temperature: 25, Humidity: 55, WindSpeed: 10},
			forecast: []models.ForecastDay{
				{Precipitation: models.Precipitation{Probability: 50, Amount: 10.5}},
			},
			expected: Flags{HeavyRainExpected: true},
		},
		{
			name:     "HighTempAboveThirtyTwo",
			current:  models.CurrentWeather{Temperature: 33, Humidity: 55, WindSpeed: 10},
			forecast: dryForecast(),
			expected: Flags{DryPeriod: true, HighTemp: true},
		},
		{
			name:     "ExactlyThirtyTwoIsNotHighTemp",
			current:  models.CurrentWeather{Temperature: 32, Humidity: 55, WindSpeed: 10},
			forecast: dryForecast(),
			expected: Flags{DryPeriod: true},
		},
		{
			name:     "LowHumidityBelowForty",
			current:  models.CurrentWeather{Temperature: 25, Humidity: 39, WindSpeed: 10},
			forecast: dryForecast(),
			expected: Flags{DryPeriod: true, LowHumidity: true},
		},
		{
			name:     "HighWindAboveFifteen",
			current:  models.CurrentWeather{Temperature: 25, Humidity: 55, WindSpeed: 15.5},
			forecast: dryForecast(),
			expected: Flags{DryPeriod: true, HighWind: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveFlags(tt.current, tt.forecast))
		})
	}
}

func TestIrrigationChainPrecedence(t *testing.T) {
	// rainExpected wins even when the dry-period branch would also apply
	rainy := []models.ForecastDay{{Precipitation: models.Precipitation{Probability: 80}}}
	advisory := Advisory(models.CurrentWeather{Temperature: 38, Humidity: 20}, rainy)
	assert.Contains(t, advisory.Irrigation, "skip scheduled irrigation")

	// dry + hot
	advisory = Advisory(models.CurrentWeather{Temperature: 38, Humidity: 50}, dryForecast())
	assert.Contains(t, advisory.Irrigation, "increase irrigation frequency")

	// dry + low humidity, moderate temperature
	advisory = Advisory(models.CurrentWeather{Temperature: 28, Humidity: 30}, dryForecast())
	assert.Contains(t, advisory.Irrigation, "increase irrigation frequency")

	// humid but no rain expected
	humidDays := []models.ForecastDay{{Precipitation: models.Precipitation{Probability: 40}}}
	advisory = Advisory(models.CurrentWeather{Temperature: 28, Humidity: 75}, humidDays)
	assert.Contains(t, advisory.Irrigation, "reduce irrigation")

	// default
	advisory = Advisory(models.CurrentWeather{Temperature: 28, Humidity: 55}, humidDays)
	assert.Contains(t, advisory.Irrigation, "normal irrigation schedule")
}

func TestPestControlChain(t *testing.T) {
	rainy := []models.ForecastDay{{Precipitation: models.Precipitation{Probability: 80}}}

	advisory := Advisory(models.CurrentWeather{Humidity: 80, WindSpeed: 18}, rainy)
	assert.Contains(t, advisory.PestControl, "postpone pesticide application")

	advisory = Advisory(models.CurrentWeather{Humidity: 80, WindSpeed: 5}, rainy)
	assert.Contains(t, advisory.PestControl, "before the rain")

	advisory = Advisory(models.CurrentWeather{Humidity: 80, WindSpeed: 5}, dryForecast())
	assert.Contains(t, advisory.PestControl, "fungal pests")

	advisory = Advisory(models.CurrentWeather{Humidity: 50, WindSpeed: 5}, dryForecast())
	assert.Contains(t, advisory.PestControl, "routine pest monitoring")
}

func TestHarvestingChain(t *testing.T) {
	heavy := []models.ForecastDay{{Precipitation: models.Precipitation{Probability: 90, Amount: 15}}}
	advisory := Advisory(models.CurrentWeather{WindSpeed: 18}, heavy)
	assert.Contains(t, advisory.Harvesting, "harvest mature crops immediately")

	rainy := []models.ForecastDay{{Precipitation: models.Precipitation{Probability: 70, Amount: 2}}}
	advisory = Advisory(models.CurrentWeather{WindSpeed: 18}, rainy)
	assert.Contains(t, advisory.Harvesting, "Expedite harvesting")

	advisory = Advisory(models.CurrentWeather{WindSpeed: 18}, dryForecast())
	assert.Contains(t, advisory.Harvesting, "Secure harvested produce")

	advisory = Advisory(models.CurrentWeather{WindSpeed: 5}, dryForecast())
	assert.Contains(t, advisory.Harvesting, "normal harvesting")
}

func TestCropProtectionChain(t *testing.T) {
	// the >35C branch leads the chain
	advisory := Advisory(models.CurrentWeather{Temperature: 38, WindSpeed: 25}, dryForecast())
	assert.Contains(t, advisory.CropProtection, "shade nets")

	advisory = Advisory(models.CurrentWeather{Temperature: 35, WindSpeed: 5}, dryForecast())
	assert.Contains(t, advisory.CropProtection, "No special crop protection")

	advisory = Advisory(models.CurrentWeather{Temperature: 3, WindSpeed: 5}, dryForecast())
	assert.Contains(t, advisory.CropProtection, "Frost danger")

	advisory = Advisory(models.CurrentWeather{Temperature: 20, WindSpeed: 18}, dryForecast())
	assert.Contains(t, advisory.CropProtection, "windbreaks")

	heavy := []models.ForecastDay{{Precipitation: models.Precipitation{Amount: 20}}}
	advisory = Advisory(models.CurrentWeather{Temperature: 20, WindSpeed: 5}, heavy)
	assert.Contains(t, advisory.CropProtection, "protective covers")
}

func TestAdvisoryAllFieldsPopulated(t *testing.T) {
	advisory := Advisory(mildWeather(), dryForecast())

	assert.NotEmpty(t, advisory.Irrigation)
	assert.NotEmpty(t, advisory.PestControl)
	assert.NotEmpty(t, advisory.Harvesting)
	assert.NotEmpty(t, advisory.Planting)
	assert.NotEmpty(t, advisory.GeneralAdvice)
	assert.NotEmpty(t, advisory.SoilConditions)
	assert.NotEmpty(t, advisory.CropProtection)
}

func TestFallbackAdvisory(t *testing.T) {
	fallback := FallbackAdvisory()
	assert.Contains(t, fallback.Irrigation, "Weather data unavailable")
	assert.NotEmpty(t, fallback.CropProtection)
}

func TestCropPlanningGates(t *testing.T) {
	monsoonRain := []models.ForecastDay{{Precipitation: models.Precipitation{Probability: 80, Amount: 5}}}

	t.Run("RiceInMonsoon", func(t *testing.T) {
		advice := CropPlanning(models.CurrentWeather{Temperature: 30, Humidity: 70}, monsoonRain, june)
		assert.True(t, hasCrop(advice, "Rice"))
	})

	t.Run("NoRiceOutsideMonsoon", func(t *testing.T) {
		march := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
		advice := CropPlanning(models.CurrentWeather{Temperature: 30, Humidity: 70}, monsoonRain, march)
		assert.False(t, hasCrop(advice, "Rice"))
	})

	t.Run("WheatInRabiSeason", func(t *testing.T) {
		november := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)
		advice := CropPlanning(models.CurrentWeather{Temperature: 20, Humidity: 50}, dryForecast(), november)
		assert.True(t, hasCrop(advice, "Wheat"))

		// too warm for wheat sowing
		advice = CropPlanning(models.CurrentWeather{Temperature: 27, Humidity: 50}, dryForecast(), november)
		assert.False(t, hasCrop(advice, "Wheat"))
	})

	t.Run("TomatoBlockedByHeavyRain", func(t *testing.T) {
		heavy := []models.ForecastDay{{Precipitation: models.Precipitation{Amount: 15}}}
		advice := CropPlanning(models.CurrentWeather{Temperature: 25, Humidity: 50}, heavy, june)
		assert.False(t, hasCrop(advice, "Tomato"))

		advice = CropPlanning(models.CurrentWeather{Temperature: 25, Humidity: 50}, dryForecast(), june)
		assert.True(t, hasCrop(advice, "Tomato"))
	})

	t.Run("CottonPreMonsoon", func(t *testing.T) {
		may := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
		advice := CropPlanning(models.CurrentWeather{Temperature: 32, Humidity: 40}, dryForecast(), may)
		assert.True(t, hasCrop(advice, "Cotton"))

		// expected rain blocks cotton sowing
		advice = CropPlanning(models.CurrentWeather{Temperature: 32, Humidity: 40}, monsoonRain, may)
		assert.False(t, hasCrop(advice, "Cotton"))
	})

	t.Run("SugarcaneWarmAndHumid", func(t *testing.T) {
		advice := CropPlanning(models.CurrentWeather{Temperature: 30, Humidity: 60}, dryForecast(), june)
		assert.True(t, hasCrop(advice, "Sugarcane"))
	})

	t.Run("LeafyVegetablesBelowThirty", func(t *testing.T) {
		advice := CropPlanning(models.CurrentWeather{Temperature: 29, Humidity: 50}, dryForecast(), june)
		assert.True(t, hasCrop(advice, "Leafy Vegetables"))

		advice = CropPlanning(models.CurrentWeather{Temperature: 30, Humidity: 50}, dryForecast(), june)
		assert.False(t, hasCrop(advice, "Leafy Vegetables"))
	})

	t.Run("OrderIsStable", func(t *testing.T) {
		november := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)
		advice := CropPlanning(models.CurrentWeather{Temperature: 20, Humidity: 55}, dryForecast(), november)
		// Wheat gate precedes Tomato which precedes Leafy Vegetables
		assert.Equal(t, "Wheat", advice[0].CropType)
		assert.Equal(t, "Tomato", advice[1].CropType)
		assert.Equal(t, "Leafy Vegetables", advice[2].CropType)
	})
}

func hasCrop(advice []models.CropPlanningAdvice, cropType string) bool {
	for _, a := range advice {
		if a.CropType == cropType {
			return true
		}
	}
	return false
}
