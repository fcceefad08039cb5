package providers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"farmweather.app/breaker"
	"farmweather.app/config"
	"farmweather.app/errors"
	"farmweather.app/models"
)

// maxForecastDays caps the aggregated forecast at the first distinct
// calendar days found in provider list order
const maxForecastDays = 3

// OpenWeatherProvider implements ForecastProvider for OpenWeatherMap
type OpenWeatherProvider struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	outerTimeout time.Duration
}

// NewOpenWeatherProvider creates a new OpenWeatherMap provider
func NewOpenWeatherProvider(cfg *config.WeatherConfig) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
		outerTimeout: cfg.OuterTimeout(),
	}
}

type openWeatherCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type openWeatherCurrentResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  float64 `json:"pressure"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Weather []openWeatherCondition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Visibility float64  `json:"visibility"`
	UVIndex    *float64 `json:"uvi,omitempty"`
	Message    string   `json:"message,omitempty"`
}

type openWeatherForecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  float64 `json:"pressure"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Weather []openWeatherCondition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Visibility float64 `json:"visibility"`
	Pop        float64 `json:"pop"`
	Rain       *struct {
		ThreeHours float64 `json:"3h"`
	} `json:"rain,omitempty"`
	Snow *struct {
		ThreeHours float64 `json:"3h"`
	} `json:"snow,omitempty"`
}

type openWeatherForecastResponse struct {
	List    []openWeatherForecastEntry `json:"list"`
	Message interface{}                `json:"message,omitempty"`
}

// FetchWeather retrieves current conditions and the aggregated 3-day
// forecast. Each outbound call races an outer deadline on top of the HTTP
// client's own request timeout.
func (p *OpenWeatherProvider) FetchWeather(location models.GeoLocation) (*models.CurrentWeather, []models.ForecastDay, error) {
	currentResult, err := breaker.WithTimeout(func() (interface{}, error) {
		return p.fetchCurrent(location)
	}, p.outerTimeout, "current weather request timed out")
	if err != nil {
		return nil, nil, err
	}
	current := currentResult.(*models.CurrentWeather)

	forecastResult, err := breaker.WithTimeout(func() (interface{}, error) {
		return p.fetchForecast(location)
	}, p.outerTimeout, "forecast request timed out")
	if err != nil {
		return nil, nil, err
	}
	forecast := forecastResult.([]models.ForecastDay)

	slog.Debug("weather fetched", "location", location.Key(), "forecast_days", len(forecast))
	return current, forecast, nil
}

func (p *OpenWeatherProvider) fetchCurrent(location models.GeoLocation) (*models.CurrentWeather, error) {
	url := fmt.Sprintf("%s/weather?lat=%f&lon=%f&appid=%s&units=metric",
		p.baseURL, location.Latitude, location.Longitude, p.apiKey)

	resp, err := p.client.Get(url)
	if err != nil {
		return nil, errors.NewExternalAPIError("weather service unavailable", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, p.handleHTTPError(resp.StatusCode)
	}

	var apiResponse openWeatherCurrentResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, errors.NewExternalAPIError("decode current weather response", err)
	}

	current := p.convertCurrent(&apiResponse)
	return &current, nil
}

func (p *OpenWeatherProvider) fetchForecast(location models.GeoLocation) ([]models.ForecastDay, error) {
	url := fmt.Sprintf("%s/forecast?lat=%f&lon=%f&appid=%s&units=metric",
		p.baseURL, location.Latitude, location.Longitude, p.apiKey)

	resp, err := p.client.Get(url)
	if err != nil {
		return nil, errors.NewExternalAPIError("weather service unavailable", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, p.handleHTTPError(resp.StatusCode)
	}

	var apiResponse openWeatherForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, errors.NewExternalAPIError("decode forecast response", err)
	}

	return p.aggregateForecast(apiResponse.List), nil
}

func (p *OpenWeatherProvider) handleHTTPError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return errors.NewUnauthorizedError("weather API authentication failed")
	case http.StatusTooManyRequests:
		return errors.NewRateLimitError("weather API rate limit exceeded")
	default:
		return errors.NewExternalAPIError(fmt.Sprintf("weather API returned status code %d", statusCode), nil)
	}
}

func (p *OpenWeatherProvider) convertCurrent(apiResp *openWeatherCurrentResponse) models.CurrentWeather {
	description := ""
	icon := ""
	if len(apiResp.Weather) > 0 {
		description = apiResp.Weather[0].Description
		icon = apiResp.Weather[0].Icon
	}

	return models.CurrentWeather{
		Temperature:   int(math.Round(apiResp.Main.Temp)),
		Humidity:      apiResp.Main.Humidity,
		Pressure:      apiResp.Main.Pressure,
		WindSpeed:     apiResp.Wind.Speed,
		WindDirection: apiResp.Wind.Deg,
		Description:   description,
		Icon:          icon,
		Visibility:    apiResp.Visibility / 1000,
		UVIndex:       apiResp.UVIndex,
		FeelsLike:     int(math.Round(apiResp.Main.FeelsLike)),
	}
}

func (p *OpenWeatherProvider) convertEntry(entry *openWeatherForecastEntry) models.CurrentWeather {
	description := ""
	icon := ""
	if len(entry.Weather) > 0 {
		description = entry.Weather[0].Description
		icon = entry.Weather[0].Icon
	}

	return models.CurrentWeather{
		Temperature:   int(math.Round(entry.Main.Temp)),
		Humidity:      entry.Main.Humidity,
		Pressure:      entry.Main.Pressure,
		WindSpeed:     entry.Wind.Speed,
		WindDirection: entry.Wind.Deg,
		Description:   description,
		Icon:          icon,
		Visibility:    entry.Visibility / 1000,
		FeelsLike:     int(math.Round(entry.Main.FeelsLike)),
	}
}

// aggregateForecast groups the provider's 3-hourly entries by UTC calendar
// date, keeping the first three distinct days in list order. Each day's
// representative snapshot is the middle entry by index, while min/max span
// every entry of that day.
func (p *OpenWeatherProvider) aggregateForecast(list []openWeatherForecastEntry) []models.ForecastDay {
	dayOrder := make([]string, 0, maxForecastDays)
	byDay := make(map[string][]openWeatherForecastEntry)

	for _, entry := range list {
		date := time.Unix(entry.Dt, 0).UTC().Format("2006-01-02")
		if _, seen := byDay[date]; !seen {
			if len(dayOrder) == maxForecastDays {
				continue
			}
			dayOrder = append(dayOrder, date)
		}
		byDay[date] = append(byDay[date], entry)
	}

	forecast := make([]models.ForecastDay, 0, len(dayOrder))
	for _, date := range dayOrder {
		entries := byDay[date]
		representative := entries[len(entries)/2]

		minTemp := entries[0].Main.Temp
		maxTemp := entries[0].Main.Temp
		for _, entry := range entries[1:] {
			minTemp = math.Min(minTemp, entry.Main.Temp)
			maxTemp = math.Max(maxTemp, entry.Main.Temp)
		}

		amount := 0.0
		if representative.Rain != nil {
			amount = representative.Rain.ThreeHours
		} else if representative.Snow != nil {
			amount = representative.Snow.ThreeHours
		}

		day, _ := time.Parse("2006-01-02", date)
		forecast = append(forecast, models.ForecastDay{
			Date:    day,
			Weather: p.convertEntry(&representative),
			Precipitation: models.Precipitation{
				Probability: representative.Pop * 100,
				Amount:      amount,
			},
			MinTemp: minTemp,
			MaxTemp: maxTemp,
		})
	}

	return forecast
}
