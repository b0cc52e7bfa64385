package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"Rewind/model"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
// Everything is read from the environment (optionally via a .env file)
// with sensible single-user defaults.
type Config struct {
	// Spotify API credentials for the OAuth authorization-code flow.
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRedirectURI  string
	TokenCachePath      string // Persisted OAuth token, created by `rewind authorize`

	// Flat-file data locations.
	HistoryPath string // Bulk streaming history export
	MergedPath  string // Combined timeline written by `rewind sync`

	// Dashboard server.
	ServerAddr string
	WebAppDir  string // Static dashboard shell, served when present

	// IANA timezone for the time-derived views (clock, seasons, year
	// filters). Plays are stored in UTC and converted to this zone
	// before bucketing.
	Timezone string

	// Optional Redis-backed stats cache. Empty host means in-memory only.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Logging.
	LogLevel string
	LogPath  string // Empty means console only
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override variables already set in the environment.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	dataDir := getEnv("DATA_DIR", "data")

	return &Config{
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		SpotifyRedirectURI:  getEnv("SPOTIFY_REDIRECT_URI", "http://127.0.0.1:8888/callback"),
		TokenCachePath:      getEnv("SPOTIFY_TOKEN_CACHE", ".spotify_cache"),

		HistoryPath: getEnv("HISTORY_PATH", filepath.Join(dataDir, "Spotify Streaming History.csv")),
		MergedPath:  getEnv("MERGED_PATH", filepath.Join(dataDir, "combined_listening_history.csv")),

		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		WebAppDir:  getEnv("WEB_APP_DIR", filepath.Join("web", "ui")),

		Timezone: getEnv("TIMEZONE", "UTC"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", ""),
	}
}

// Location resolves the configured timezone. An empty name means UTC; an
// unknown name is an error so the operator notices the typo instead of
// silently getting shifted clock views.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// ValidateSpotify checks that the credentials needed for any Spotify API
// call are present. The returned error carries remediation text for the
// operator; callers treat it as fatal.
func (c *Config) ValidateSpotify() error {
	if c.SpotifyClientID == "" {
		return &model.ConfigError{
			Field:  "SPOTIFY_CLIENT_ID",
			Reason: "not set",
			Remedy: "create an app at https://developer.spotify.com/dashboard and put its client ID in .env",
		}
	}
	if c.SpotifyClientSecret == "" {
		return &model.ConfigError{
			Field:  "SPOTIFY_CLIENT_SECRET",
			Reason: "not set",
			Remedy: "copy the client secret from the Spotify developer dashboard into .env",
		}
	}
	if c.SpotifyRedirectURI == "" {
		return &model.ConfigError{
			Field:  "SPOTIFY_REDIRECT_URI",
			Reason: "not set",
			Remedy: "set SPOTIFY_REDIRECT_URI=http://127.0.0.1:8888/callback and register the same URI in the dashboard",
		}
	}
	return nil
}
