package config

import (
	"os"
)

// Config holds server-level configuration
type Config struct {
	Port             string
	LocationsDir     string // base.json plus trips/*.json live here
	ThresholdsPath   string // optional JSON overlay for activity thresholds
	GeocacheDBPath   string // persistent reverse-geocode cache
	GeocodeCacheSize int    // in-memory LRU entries
	GeocodeUserAgent string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	locationsDir := os.Getenv("LOCATIONS_DIR")
	if locationsDir == "" {
		locationsDir = "./data/locations"
	}

	geocacheDB := os.Getenv("GEOCACHE_DB_PATH")
	if geocacheDB == "" {
		geocacheDB = "./data/geocache.db"
	}

	userAgent := os.Getenv("GEOCODE_USER_AGENT")
	if userAgent == "" {
		userAgent = "activity-backend/1.0"
	}

	return &Config{
		Port:             port,
		LocationsDir:     locationsDir,
		ThresholdsPath:   os.Getenv("THRESHOLDS_PATH"),
		GeocacheDBPath:   geocacheDB,
		GeocodeCacheSize: 2048,
		GeocodeUserAgent: userAgent,
	}
}
