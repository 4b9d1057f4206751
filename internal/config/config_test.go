package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "NTRVSTA", cfg.DefaultProject)
	assert.Equal(t, 4, cfg.StaleThresholdDays)
	assert.Equal(t, 30*time.Second, cfg.TrackerTimeout)
	assert.Equal(t, []string{"NTRVSTA", "ARC"}, cfg.WBRProjects)
	assert.False(t, cfg.ResolvedOnlyAverage)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JIRA_BASE_URL", "https://acme.atlassian.net/")
	t.Setenv("STALE_THRESHOLD_DAYS", "7")
	t.Setenv("ANALYTICS_RESOLVED_ONLY_AVERAGE", "true")
	t.Setenv("WBR_PROJECTS", "ALPHA, BETA,")
	t.Setenv("JIRA_TIMEOUT", "10s")

	cfg, err := Load()
	require.NoError(t, err)

	// Trailing slash is stripped so URL joins stay clean.
	assert.Equal(t, "https://acme.atlassian.net", cfg.TrackerBaseURL)
	assert.Equal(t, 7, cfg.StaleThresholdDays)
	assert.True(t, cfg.ResolvedOnlyAverage)
	assert.Equal(t, []string{"ALPHA", "BETA"}, cfg.WBRProjects)
	assert.Equal(t, 10*time.Second, cfg.TrackerTimeout)
}

func TestLoad_MissingCredentialsIsNotFatal(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.TrackerAPIToken)
	assert.Empty(t, cfg.MessengerToken)
	assert.Empty(t, cfg.CompletionAPIKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty port", func(c *Config) { c.ServerPort = "" }, true},
		{"zero stale threshold", func(c *Config) { c.StaleThresholdDays = 0 }, true},
		{"relative tracker URL", func(c *Config) { c.TrackerBaseURL = "acme.atlassian.net" }, true},
		{"empty tracker URL allowed", func(c *Config) { c.TrackerBaseURL = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{ServerPort: "8080", StaleThresholdDays: 4, TrackerBaseURL: "https://acme.atlassian.net"}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseUserMap(t *testing.T) {
	m := parseUserMap("Ana Silva=U100, Bruno Costa =U200,broken,=U300,Empty=")
	assert.Equal(t, map[string]string{
		"Ana Silva":   "U100",
		"Bruno Costa": "U200",
	}, m)
}

func TestParseUserMap_Empty(t *testing.T) {
	assert.Empty(t, parseUserMap(""))
}
