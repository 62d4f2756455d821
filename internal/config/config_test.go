package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "hello", "default", "hello"},
		{"uses default when empty", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("STUDYBUDDY_TEST_VAR", tc.envValue)
			assert.Equal(t, tc.expected, getEnvOrDefault("STUDYBUDDY_TEST_VAR", tc.defaultVal))
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "42", 10, 42},
		{"uses default for empty", "", 10, 10},
		{"uses default for non-numeric", "abc", 10, 10},
		{"uses default for non-positive", "0", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("STUDYBUDDY_TEST_INT", tc.envValue)
			assert.Equal(t, tc.expected, getEnvAsIntOrDefault("STUDYBUDDY_TEST_INT", tc.defaultVal))
		})
	}
}

func TestGetEnvAsBoolOrDefault(t *testing.T) {
	t.Setenv("STUDYBUDDY_TEST_BOOL", "true")
	assert.True(t, getEnvAsBoolOrDefault("STUDYBUDDY_TEST_BOOL", false))

	t.Setenv("STUDYBUDDY_TEST_BOOL", "nope")
	assert.True(t, getEnvAsBoolOrDefault("STUDYBUDDY_TEST_BOOL", true))

	t.Setenv("STUDYBUDDY_TEST_BOOL", "")
	assert.False(t, getEnvAsBoolOrDefault("STUDYBUDDY_TEST_BOOL", false))
}

func TestMustGetEnv(t *testing.T) {
	t.Setenv("STUDYBUDDY_TEST_REQUIRED", "value123")
	assert.Equal(t, "value123", mustGetEnv("STUDYBUDDY_TEST_REQUIRED"))

	t.Setenv("STUDYBUDDY_TEST_REQUIRED", "")
	assert.Panics(t, func() { mustGetEnv("STUDYBUDDY_TEST_REQUIRED") })
}

func TestMustLoadLocation(t *testing.T) {
	assert.Equal(t, time.UTC, mustLoadLocation("UTC"))
	assert.Panics(t, func() { mustLoadLocation("Not/AZone") })
}

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/studybuddy")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TIMEZONE", "Europe/Zurich")
	t.Setenv("SEED_SAMPLE_DATA", "true")
	t.Setenv("REMINDER_INTERVAL_HOURS", "")
	t.Setenv("PORT", "")

	cfg := Load()

	require.NotNil(t, cfg.Location)
	assert.Equal(t, "Europe/Zurich", cfg.Location.String())
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, 24*time.Hour, cfg.ReminderInterval)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
}
