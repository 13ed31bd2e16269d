package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultBaseURL is the North America Selling Partner API endpoint.
const DefaultBaseURL = "https://sellingpartnerapi-na.amazon.com"

// Config is the process-wide configuration snapshot, built once in main and
// passed by reference. Nothing outside this package reads service env vars.
type Config struct {
	BaseURL     string        // FBA API base URL
	AccessToken string        // bearer token for x-amz-access-token; may be empty, validated at use
	ListenAddr  string        // local HTTP listen address
	HTTPTimeout time.Duration // outbound client timeout
}

// FromEnv builds a Config from environment variables, applying defaults.
// A missing access token is not an error here: it only matters when a request
// actually needs it, and the failure then is a deployment defect (500), not a
// startup crash.
func FromEnv() *Config {
	return &Config{
		BaseURL:     getEnv("FBA_API_BASE_URL", DefaultBaseURL),
		AccessToken: os.Getenv("AMAZON_ACCESS_TOKEN"),
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		HTTPTimeout: timeoutFromEnv(),
	}
}

func timeoutFromEnv() time.Duration {
	raw := os.Getenv("HTTP_TIMEOUT_SECONDS")
	if raw == "" {
		return 30 * time.Second
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(secs) * time.Second
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
