package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGeoLocationKey(t *testing.T) {
	tests := []struct {
		name     string
		location GeoLocation
		expected string
	}{
		{"Delhi", GeoLocation{Latitude: 28.6139, Longitude: 77.2090}, "28.6139,77.2090"},
		{"RoundsToFourDecimals", GeoLocation{Latitude: 28.61391234, Longitude: 77.20899876}, "28.6139,77.2090"},
		{"NegativeCoordinates", GeoLocation{Latitude: -33.8688, Longitude: -70.6693}, "-33.8688,-70.6693"},
		{"Zero", GeoLocation{}, "0.0000,0.0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.location.Key())
		})
	}
}

func TestGeoLocationValidate(t *testing.T) {
	assert.NoError(t, GeoLocation{Latitude: 28.6139, Longitude: 77.2090}.Validate())
	assert.NoError(t, GeoLocation{Latitude: 90, Longitude: -180}.Validate())
	assert.Error(t, GeoLocation{Latitude: 90.0001, Longitude: 0}.Validate())
	assert.Error(t, GeoLocation{Latitude: 0, Longitude: 180.5}.Validate())
}

func TestFarmerLocation(t *testing.T) {
	lat, lon := 28.6139, 77.2090

	farmer := Farmer{ID: 1, Name: "Ravi", Latitude: &lat, Longitude: &lon}
	loc, ok := farmer.Location()
	assert.True(t, ok)
	assert.Equal(t, GeoLocation{Latitude: lat, Longitude: lon}, loc)

	noLocation := Farmer{ID: 2, Name: "Asha"}
	_, ok = noLocation.Location()
	assert.False(t, ok)

	partial := Farmer{ID: 3, Name: "Lakshmi", Latitude: &lat}
	_, ok = partial.Location()
	assert.False(t, ok)
}

func TestFarmingAlertSummary(t *testing.T) {
	created := time.Date(2025, time.July, 10, 9, 30, 0, 0, time.UTC)
	alert := FarmingAlert{
		ID:        7,
		AlertID:   "f4f9bb2c-3f2f-4f1a-9a64-2cb2c3e06a01",
		UserID:    42,
		AlertType: AlertTypeRain,
		Title:     "Heavy Rain Alert",
		Message:   "Heavy rainfall expected tomorrow",
		Severity:  SeverityHigh,
		CreatedAt: created,
		ExpiresAt: created.Add(24 * time.Hour),
	}

	summary := alert.Summary()
	assert.Equal(t, alert.AlertID, summary.ID)
	assert.Equal(t, AlertTypeRain, summary.Type)
	assert.Equal(t, "Heavy Rain Alert", summary.Title)
	assert.Equal(t, SeverityHigh, summary.Severity)
	assert.Equal(t, created, summary.CreatedAt)
}
