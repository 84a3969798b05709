// Package config loads and validates application configuration from
// environment variables. A local .env file is picked up automatically via
// godotenv's autoload import, which populates the process environment before
// Load reads it.
package config

import (
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

// defaultCORSOrigins is the allow-list used when CORS_ORIGINS is not set:
// the two management deployments plus local dev servers.
const defaultCORSOrigins = "https://okul-yonetim-sistemi.vercel.app," +
	"https://yonetim.leventokullari.com," +
	"http://localhost:3000,http://localhost:3001"

// defaultLookupBaseURLs is the ordered fallback list the public student
// lookup walks through when LOOKUP_BASE_URLS is not set.
const defaultLookupBaseURLs = "https://yonetim.leventokullari.com," +
	"https://okul-yonetim-sistemi.vercel.app"

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// Env names the runtime environment ("development" or "production").
	// Development echoes internal error detail to callers and switches the
	// logger to a human-readable handler. Defaults to "production".
	Env string

	// ServiceSecret is the shared secret the management service must present
	// on admin routes. The guard fails closed when it is empty.
	ServiceSecret string

	// GeziServiceURL is the base URL of the sibling trip service the admin
	// proxy forwards to. Validated lazily on first proxy use.
	GeziServiceURL string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// DEPLOY_URL, when set, is appended so preview deployments work without
	// editing the static list.
	CORSOrigins []string

	// LookupBaseURLs is the ordered list of management hosts the public
	// student lookup tries in turn.
	LookupBaseURLs []string
}

// IsDevelopment reports whether the server runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Env:            getEnv("ENV", "production"),
		ServiceSecret:  os.Getenv("SERVICE_API_SECRET"),
		GeziServiceURL: strings.TrimRight(os.Getenv("GEZI_SERVICE_URL"), "/"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", defaultCORSOrigins)),
		LookupBaseURLs: splitCSV(getEnv("LOOKUP_BASE_URLS", defaultLookupBaseURLs)),
	}

	if deploy := os.Getenv("DEPLOY_URL"); deploy != "" {
		cfg.CORSOrigins = append(cfg.CORSOrigins, strings.TrimRight(deploy, "/"))
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
