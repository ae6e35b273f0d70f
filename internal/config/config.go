// Package config loads server settings from the environment, with a
// best-effort .env file for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	// BrightSkyBaseURL is the Bright Sky API endpoint.
	BrightSkyBaseURL string
	// BrightSkyTimeout bounds each weather API request.
	BrightSkyTimeout time.Duration
	// NominatimBaseURL is the fallback geocoding endpoint.
	NominatimBaseURL string
	// GeocodeTimeout bounds each geocoding request.
	GeocodeTimeout time.Duration
	// HTTPAddr, when non-empty, serves MCP over streamable HTTP instead
	// of stdio.
	HTTPAddr string
	// Debug enables debug-level logging.
	Debug bool
}

// Load reads configuration from the environment with defaults suitable
// for production use. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BrightSkyBaseURL: getenvDefault("BRIGHTSKY_BASE_URL", "https://api.brightsky.dev"),
		NominatimBaseURL: getenvDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		HTTPAddr:         os.Getenv("HTTP_ADDR"),
		Debug:            os.Getenv("DEBUG") != "",
	}

	var err error
	cfg.BrightSkyTimeout, err = getenvDuration("BRIGHTSKY_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.GeocodeTimeout, err = getenvDuration("GEOCODE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
