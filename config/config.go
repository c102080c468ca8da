package config

import (
	"os"
	"strconv"

	"github.com/bicyclespokesperson/MapsTD-sub000/elevation"
)

// Config holds every tunable the server reads from the environment.
// Load a .env with godotenv in main() before calling Load.
type Config struct {
	ListenAddr string

	OverpassURL  string
	ElevationURL string

	// redis cache for elevation grids; empty host disables it
	RedisAddr string
	RedisPass string

	StorePath string

	// play area size limits in square meters
	MinAreaSqMeters float64
	MaxAreaSqMeters float64

	// elevation grid sampling resolution
	ElevationRows int
	ElevationCols int

	// snap distance for point-on-road checks; 0 means the package
	// default
	RoadToleranceMeters float64

	Visibility elevation.RangeConfig
}

// Load reads the environment, falling back to defaults for anything
// unset.
func Load() Config {
	visibility := elevation.DefaultRangeConfig()
	visibility.BonusPerMeter = envFloat("VISIBILITY_BONUS_PER_METER", visibility.BonusPerMeter)
	visibility.MinFactor = envFloat("VISIBILITY_MIN_FACTOR", visibility.MinFactor)
	visibility.MaxFactor = envFloat("VISIBILITY_MAX_FACTOR", visibility.MaxFactor)

	return Config{
		ListenAddr:          envString("LISTEN_ADDR", ":8080"),
		OverpassURL:         envString("OVERPASS_URL", "https://overpass-api.de"),
		ElevationURL:        envString("ELEVATION_URL", "https://api.open-elevation.com"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPass:           os.Getenv("REDIS_PASS"),
		StorePath:           envString("STORE_PATH", "mapstd.db"),
		MinAreaSqMeters:     envFloat("MIN_AREA_SQ_METERS", 250_000),    // 500m x 500m
		MaxAreaSqMeters:     envFloat("MAX_AREA_SQ_METERS", 25_000_000), // 5km x 5km
		ElevationRows:       envInt("ELEVATION_ROWS", 32),
		ElevationCols:       envInt("ELEVATION_COLS", 32),
		RoadToleranceMeters: envFloat("ROAD_TOLERANCE_METERS", 0),
		Visibility:          visibility,
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
