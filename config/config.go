package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// FetcherConfig controls the HTTP fetcher's retry and politeness behavior.
// Built once at startup and treated as immutable afterwards.
type FetcherConfig struct {
	MaxAttempts      int           // bounded retry loop, including the first attempt
	Timeout          time.Duration // per-request timeout
	BaseDelayMin     time.Duration // first backoff delay is drawn from [BaseDelayMin, BaseDelayMax)
	BaseDelayMax     time.Duration
	BackoffFactorMin float64 // each later delay is the previous one times a factor in [Min, Max)
	BackoffFactorMax float64
	PolitenessMin    time.Duration // pause after a successful fetch to space out requests
	PolitenessMax    time.Duration
	UserAgents       []string
	RenderHosts      []string // host substrings eligible for the headless render fallback
}

// DefaultFetcherConfig returns the fetcher configuration from environment
// variables with reference defaults.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		MaxAttempts:      getEnvInt("FETCH_MAX_ATTEMPTS", 3),
		Timeout:          getEnvDuration("FETCH_TIMEOUT", 25*time.Second),
		BaseDelayMin:     1 * time.Second,
		BaseDelayMax:     2 * time.Second,
		BackoffFactorMin: 1.5,
		BackoffFactorMax: 2.5,
		PolitenessMin:    500 * time.Millisecond,
		PolitenessMax:    1500 * time.Millisecond,
		UserAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:128.0) Gecko/20100101 Firefox/128.0",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15",
		},
		RenderHosts: getEnvList("RENDER_SITES", nil),
	}
}

// EmailConfig holds the SMTP transport settings for price alerts.
type EmailConfig struct {
	Host   string
	Port   int
	UseTLS bool
	User   string
	Pass   string
	To     string // default recipient when a watch item has no contact address
}

// DefaultEmailConfig returns the email configuration from environment variables.
func DefaultEmailConfig() EmailConfig {
	return EmailConfig{
		Host:   getEnv("EMAIL_HOST", "smtp.gmail.com"),
		Port:   getEnvInt("EMAIL_PORT", 587),
		UseTLS: getEnvBool("EMAIL_USE_TLS", true),
		User:   getEnv("EMAIL_USER", ""),
		Pass:   getEnv("EMAIL_PASS", ""),
		To:     getEnv("EMAIL_TO", ""),
	}
}

// Configured reports whether the transport has credentials to send with.
// Alerts are silently skipped when it does not.
func (c EmailConfig) Configured() bool {
	return c.User != "" && c.Pass != ""
}

// APIConfig holds settings for the HTTP surface.
type APIConfig struct {
	Secret         string // shared key for the refresh trigger
	RateLimit      float64
	AllowedOrigins []string
	CheckSchedule  string // cron spec (with seconds) for scheduled cycles
}

// DefaultAPIConfig returns the API configuration from environment variables.
func DefaultAPIConfig() APIConfig {
	return APIConfig{
		Secret:         getEnv("API_SECRET", "changeme"),
		RateLimit:      float64(getEnvInt("API_RATE_LIMIT", 5)),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		CheckSchedule:  getEnv("CHECK_SCHEDULE", "0 0 */12 * * *"),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvList gets a comma-separated environment variable with a default value
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
