// Package api provides the HTTP transport for the weather service
package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"farmweather.app/config"
	"farmweather.app/errors"
	"farmweather.app/models"
)

// ForecastService is the surface the HTTP layer needs from the service layer
type ForecastService interface {
	GetForecast(location models.GeoLocation) *models.WeatherResponse
	InvalidateCache(location models.GeoLocation)
	GenerateFarmingAlerts(userID uint) []models.AlertSummary
	GetUserAlerts(userID uint) ([]models.AlertSummary, error)
}

// Server represents the HTTP server and its dependencies
type Server struct {
	router  *gin.Engine
	service ForecastService
	config  *config.Config
}

// NewServer creates a new HTTP server with configured routes
func NewServer(svc ForecastService, cfg *config.Config) *Server {
	server := &Server{
		router:  gin.Default(),
		service: svc,
		config:  cfg,
	}
	server.setupRoutes()
	return server
}

// ServeHTTP implements the http.Handler interface
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthHandler)

		weather := api.Group("/weather")
		{
			weather.GET("/forecast", s.forecastHandler)
			weather.DELETE("/forecast", s.invalidateHandler)
			weather.POST("/alerts/:userID", s.generateAlertsHandler)
			weather.GET("/alerts/:userID", s.listAlertsHandler)
		}
	}
}

type locationQuery struct {
	Lat *float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lon *float64 `form:"lon" binding:"required,min=-180,max=180"`
}

func (s *Server) bindLocation(c *gin.Context) (models.GeoLocation, bool) {
	var query locationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.handleError(c, errors.NewValidationError("lat and lon query parameters are required and must be valid coordinates"))
		return models.GeoLocation{}, false
	}
	return models.GeoLocation{Latitude: *query.Lat, Longitude: *query.Lon}, true
}

func (s *Server) forecastHandler(c *gin.Context) {
	location, ok := s.bindLocation(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.service.GetForecast(location))
}

func (s *Server) invalidateHandler(c *gin.Context) {
	location, ok := s.bindLocation(c)
	if !ok {
		return
	}
	s.service.InvalidateCache(location)
	c.JSON(http.StatusOK, gin.H{"message": "cached forecast removed"})
}

func (s *Server) parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("userID"), 10, 32)
	if err != nil || id == 0 {
		s.handleError(c, errors.NewValidationError("userID must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

func (s *Server) generateAlertsHandler(c *gin.Context) {
	userID, ok := s.parseUserID(c)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, gin.H{"alerts": s.service.GenerateFarmingAlerts(userID)})
}

func (s *Server) listAlertsHandler(c *gin.Context) {
	userID, ok := s.parseUserID(c)
	if !ok {
		return
	}

	alerts, err := s.service.GetUserAlerts(userID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleError maps application errors onto HTTP status codes
func (s *Server) handleError(c *gin.Context, err error) {
	slog.Error("request failed", "path", c.FullPath(), "error", err)

	appErr, ok := err.(*errors.AppError)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Type {
	case errors.ErrorTypeValidation:
		status = http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		status = http.StatusNotFound
	case errors.ErrorTypeUnauthorized:
		status = http.StatusUnauthorized
	case errors.ErrorTypeRateLimit:
		status = http.StatusTooManyRequests
	case errors.ErrorTypeTimeout:
		status = http.StatusGatewayTimeout
	case errors.ErrorTypeServiceUnavailable:
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, models.ErrorResponse{Error: appErr.Message})
}
