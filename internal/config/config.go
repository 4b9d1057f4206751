package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the full application configuration, loaded once at process
// start and injected into the components that need it. External-service
// credentials live here and nowhere else; business logic never reads the
// environment directly.
type Config struct {
	ServerHost   string
	ServerPort   string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	LogLevel  string
	LogFormat string

	// Tracker (Jira-compatible REST)
	TrackerBaseURL  string
	TrackerEmail    string
	TrackerAPIToken string
	TrackerTimeout  time.Duration
	DefaultProject  string

	// Messenger (Slack-compatible REST)
	MessengerToken   string
	MessengerTimeout time.Duration
	// MessengerUserMap maps tracker display names to messenger user IDs for
	// reminder DMs, parsed from "Name=U123,Other Name=U456".
	MessengerUserMap map[string]string

	// Completion service (Anthropic-compatible REST)
	CompletionAPIKey  string
	CompletionModel   string
	CompletionTimeout time.Duration

	// Analytics behavior
	ResolvedOnlyAverage bool
	StaleThresholdDays  int

	// Weekly business review
	WBRProjects []string

	CORSEnabled        bool
	CORSAllowedOrigins []string
}

// Load reads configuration from the environment, consulting a .env file when
// present. Missing external credentials are not an error here: the affected
// endpoints fail with 500 at request time, per the error taxonomy.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerHost:   getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		TrackerBaseURL:  strings.TrimRight(getEnv("JIRA_BASE_URL", ""), "/"),
		TrackerEmail:    getEnv("JIRA_EMAIL", ""),
		TrackerAPIToken: getEnv("JIRA_API_TOKEN", ""),
		TrackerTimeout:  getEnvDuration("JIRA_TIMEOUT", 30*time.Second),
		DefaultProject:  getEnv("DEFAULT_PROJECT", "NTRVSTA"),

		MessengerToken:   getEnv("SLACK_BOT_TOKEN", ""),
		MessengerTimeout: getEnvDuration("SLACK_TIMEOUT", 30*time.Second),
		MessengerUserMap: parseUserMap(getEnv("SLACK_USER_MAP", "")),

		CompletionAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		CompletionModel:   getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		CompletionTimeout: getEnvDuration("ANTHROPIC_TIMEOUT", 60*time.Second),

		ResolvedOnlyAverage: getEnvBool("ANALYTICS_RESOLVED_ONLY_AVERAGE", false),
		StaleThresholdDays:  getEnvInt("STALE_THRESHOLD_DAYS", 4),

		WBRProjects: splitAndTrim(getEnv("WBR_PROJECTS", "NTRVSTA,ARC")),

		CORSEnabled:        getEnvBool("CORS_ENABLED", true),
		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks structural configuration. Credential presence is checked
// per request by the adapters, not here, so the dashboard can run partially
// configured.
func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("server port is required")
	}
	if c.StaleThresholdDays < 1 {
		return fmt.Errorf("stale threshold must be at least 1 day, got %d", c.StaleThresholdDays)
	}
	if c.TrackerBaseURL != "" && !strings.HasPrefix(c.TrackerBaseURL, "http") {
		return fmt.Errorf("tracker base URL must be absolute: %q", c.TrackerBaseURL)
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// parseUserMap parses "Display Name=U123,Other=U456" into a lookup map.
// Malformed entries are skipped.
func parseUserMap(raw string) map[string]string {
	m := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		name, id, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		id = strings.TrimSpace(id)
		if !ok || name == "" || id == "" {
			continue
		}
		m[name] = id
	}
	return m
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
