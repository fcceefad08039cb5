// Package app wires the application's components together
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"
	"farmweather.app/api"
	"farmweather.app/breaker"
	"farmweather.app/config"
	"farmweather.app/database"
	"farmweather.app/providers"
	"farmweather.app/providers/cache"
	"farmweather.app/repository"
	"farmweather.app/service"
)

// Application holds the running components and their shutdown hooks
type Application struct {
	config     *config.Config
	db         *gorm.DB
	redis      *cache.RedisStore
	memory     *cache.MemoryStore
	httpServer *http.Server
}

// New builds the full dependency graph from configuration
func New(cfg *config.Config) (*Application, error) {
	app := &Application{config: cfg}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	app.db = db

	if err := database.RunMigrations(db); err != nil {
		return nil, err
	}

	store := app.initCacheStore()
	recordCache := cache.NewRecordCache(cache.NewInstrumentedStore(store, "forecast"))

	cb := breaker.New(breaker.Config{
		Name:             "weather-provider",
		FailureThreshold: cfg.Breaker.FailureThreshold,
		RecoveryTimeout:  cfg.Breaker.RecoveryTimeout(),
	})

	weatherService := service.NewWeatherService(service.WeatherServiceOptions{
		Provider:    providers.NewOpenWeatherProvider(&cfg.Weather),
		Cache:       recordCache,
		WeatherRepo: repository.NewWeatherRepository(db),
		AlertRepo:   repository.NewAlertRepository(db),
		FarmerRepo:  repository.NewFarmerRepository(db),
		Breaker:     cb,
		CacheTTL:    cfg.Weather.CacheTTL(),
		AlertTTL:    cfg.Alerts.TTL(),
	})

	app.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewServer(weatherService, cfg),
	}

	return app, nil
}

// initCacheStore connects to Redis, falling back to the in-process store
// when Redis is unreachable. The service behaves identically either way.
func (a *Application) initCacheStore() cache.Store {
	redisStore, err := cache.NewRedisStore(&cache.RedisStoreConfig{
		Addr:         a.config.Redis.Addr,
		Password:     a.config.Redis.Password,
		DB:           a.config.Redis.DB,
		DialTimeout:  time.Duration(a.config.Redis.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(a.config.Redis.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Redis.WriteTimeout) * time.Second,
	})
	if err != nil {
		slog.Warn("Redis unavailable, using in-memory cache", "addr", a.config.Redis.Addr, "error", err)
		a.memory = cache.NewMemoryStore()
		return a.memory
	}

	a.redis = redisStore
	return redisStore
}

// Run starts the HTTP server and blocks until it stops
func (a *Application) Run() error {
	slog.Info("starting server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server and closes all connections
func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("shutting down application")

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			slog.Error("failed to close Redis connection", "error", err)
		}
	}
	if a.memory != nil {
		a.memory.Stop()
	}

	if a.db != nil {
		if err := database.CloseDB(a.db); err != nil {
			return err
		}
	}

	slog.Info("application stopped")
	return nil
}
