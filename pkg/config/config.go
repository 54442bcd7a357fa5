package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	Port     = "8080"
	AppMode  = "development"
	BasePath = ""

	// Sanity settings
	SanityProjectID  = ""
	SanityDataset    = "production"
	SanityAPIVersion = "2024-01-01"
	SanityToken      = ""
	SanityUseCDN     = true

	// Fetch settings
	FetchTimeout     = 5 * time.Second
	FetchConcurrency = 8

	// Session settings
	SessionSecret = "ambso-dev-session-secret"

	CORSOrigins = []string{"http://localhost:3000"}

	ExportDir = "./public"
)

func Init() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found or error loading it.")
	}
	Load()
}

// Load reads settings from the process environment.
func Load() {
	Port = getEnv("PORT", "8080")
	AppMode = getEnv("APP_MODE", "development")
	BasePath = strings.TrimRight(getEnv("BASE_PATH", ""), "/")

	SanityProjectID = getEnv("SANITY_PROJECT_ID", "")
	SanityDataset = getEnv("SANITY_DATASET", "production")
	SanityAPIVersion = strings.TrimPrefix(getEnv("SANITY_API_VERSION", "2024-01-01"), "v")
	SanityToken = getEnv("SANITY_TOKEN", "")
	SanityUseCDN = getBool("SANITY_USE_CDN", true)

	FetchTimeout = getDuration("FETCH_TIMEOUT", 5*time.Second)
	FetchConcurrency = getInt("FETCH_CONCURRENCY", 8)

	SessionSecret = getEnv("SESSION_SECRET", "ambso-dev-session-secret")
	CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	ExportDir = getEnv("EXPORT_DIR", "./public")
}

// CMSEnabled reports whether a Sanity project is configured. Without one
// every page renders from the fallback catalog.
func CMSEnabled() bool {
	return SanityProjectID != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// getDuration accepts Go durations ("750ms") or whole seconds ("5").
// getInt accepts positive integers only.
func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
