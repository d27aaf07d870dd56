package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-location-service/internal/api/http"
	"github.com/i474232898/weather-location-service/internal/config"
	"github.com/i474232898/weather-location-service/internal/favorites"
	"github.com/i474232898/weather-location-service/internal/gazetteer"
	"github.com/i474232898/weather-location-service/internal/geocode"
	"github.com/i474232898/weather-location-service/internal/scheduler"
	"github.com/i474232898/weather-location-service/internal/storage"
	"github.com/i474232898/weather-location-service/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Static place dataset, loaded once.
	gaz := gazetteer.Default()

	// Geocoder is optional; without a key every selection resolves through
	// the gazetteer fallback.
	var geocoder geocode.Geocoder
	if cfg.KakaoAPIKey != "" {
		geocoder = geocode.NewKakaoGeocoder(httpClient, cfg.KakaoAPIKey)
	} else {
		log.Printf("INFO: no Kakao API key configured; resolution uses the gazetteer only")
	}

	// Weather provider behind a rate limit, with snapshot memoization.
	var client weather.Client = weather.NewOpenWeatherClient(httpClient, cfg.OpenWeatherAPIKey, cfg.Lang)
	client = weather.NewRateLimitedClient(client, cfg.RateLimitRPS, cfg.RateLimitBurst)

	agg := weather.NewAggregator(client, cfg.Timezone)
	cache := weather.NewSnapshotCache(cfg.CacheFresh, cfg.CacheMaxIdle)
	weatherSvc := weather.NewService(agg, cache)

	// Persisted favorites.
	kv, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open favorites store: %v", err)
	}
	defer kv.Close()

	favStore := favorites.NewStore(kv)

	// Periodic cache sweep.
	sched := scheduler.New(weatherSvc, cfg.EvictInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-location-service",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-location-service",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Gazetteer: gaz,
		Geocoder:  geocoder,
		Weather:   weatherSvc,
		Favorites: favStore,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
