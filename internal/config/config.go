package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Keyword cache
	CacheFile string // env: CACHE_FILE, default: "data/lora_keywords.json"

	// Catalog (Civitai)
	CatalogBaseURL string        // env: CATALOG_BASE_URL
	CatalogLimit   int           // env: CATALOG_PAGE_LIMIT, results per page
	CatalogNSFW    bool          // env: CATALOG_NSFW, include mature models
	CatalogTimeout time.Duration // env: CATALOG_TIMEOUT, per page fetch
	SearchWorkers  int           // env: SEARCH_WORKERS, pool size with headroom over partitions

	// Retry refresher
	RefreshEnabled  bool          // env: REFRESH_ENABLED
	RefreshInterval time.Duration // env: REFRESH_INTERVAL
	RefreshDelay    time.Duration // env: REFRESH_DELAY, pause between retried assets

	// Local model library
	LorasDir       string // env: LORAS_DIR
	CheckpointsDir string // env: CHECKPOINTS_DIR

	// Character data
	CharacterFile string // env: CHARACTER_FILE
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:   getEnv("TLS_CA_FILE", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		CacheFile: getEnv("CACHE_FILE", "data/lora_keywords.json"),

		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "https://civitai.com/api/v1"),
		CatalogLimit:   getEnvInt("CATALOG_PAGE_LIMIT", 25),
		CatalogNSFW:    getEnv("CATALOG_NSFW", "true") == "true",
		CatalogTimeout: getEnvDuration("CATALOG_TIMEOUT", 30*time.Second),
		SearchWorkers:  getEnvInt("SEARCH_WORKERS", 4),

		RefreshEnabled:  getEnv("REFRESH_ENABLED", "") != "",
		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", time.Hour),
		RefreshDelay:    getEnvDuration("REFRESH_DELAY", time.Second),

		LorasDir:       getEnv("LORAS_DIR", "models/loras"),
		CheckpointsDir: getEnv("CHECKPOINTS_DIR", "models/checkpoints"),

		CharacterFile: getEnv("CHARACTER_FILE", "data/characters.json"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}
