package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig is the process configuration, read from environment with
// sensible defaults.
type AppConfig struct {
	OpenWeatherAPIKey string
	KakaoAPIKey       string

	// Lang selects the weather provider's localized description strings.
	Lang string

	Port        string
	HTTPTimeout time.Duration

	// Snapshot cache windows: a snapshot is served from cache while fresh
	// and dropped after sitting unused past the idle limit.
	CacheFresh    time.Duration
	CacheMaxIdle  time.Duration
	EvictInterval time.Duration

	// Outbound weather provider rate limit.
	RateLimitRPS   float64
	RateLimitBurst int

	// DBPath is the SQLite file holding persisted favorites.
	DBPath string

	// Timezone is the local calendar for the daily range computation and
	// hourly time formatting.
	Timezone *time.Location
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.KakaoAPIKey = os.Getenv("KAKAO_REST_API_KEY")
	cfg.Lang = getenvDefault("WEATHER_LANG", "kr")

	cfg.Port = getenvDefault("PORT", "8080")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	if cfg.CacheFresh, err = getenvDuration("CACHE_FRESH", "5m"); err != nil {
		return nil, err
	}
	if cfg.CacheMaxIdle, err = getenvDuration("CACHE_MAX_IDLE", "30m"); err != nil {
		return nil, err
	}
	if cfg.EvictInterval, err = getenvDuration("CACHE_EVICT_INTERVAL", "5m"); err != nil {
		return nil, err
	}

	cfg.RateLimitRPS = getenvFloat("RATE_LIMIT_RPS", 1)
	cfg.RateLimitBurst = getenvInt("RATE_LIMIT_BURST", 5)

	cfg.DBPath = getenvDefault("DB_PATH", "favorites.db")

	tzName := getenvDefault("DISPLAY_TIMEZONE", "Asia/Seoul")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", tzName, err)
	}
	cfg.Timezone = tz

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
