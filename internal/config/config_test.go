package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("CHAT_ID", "42")
}

func TestNew_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.TelegramBot.Token)
	assert.Equal(t, int64(42), cfg.TelegramBot.ChatID)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.URL)
	assert.Equal(t, time.Duration(0), cfg.Backend.Timeout)
	assert.False(t, cfg.Backend.LiveScoreboard)
	assert.False(t, cfg.Backend.LiveRankings)
	assert.Equal(t, "America/Chicago", cfg.Scheduler.Timezone)
	assert.Equal(t, "0 9 * * 6", cfg.Scheduler.DigestCron)
	assert.Equal(t, ":8080", cfg.HealthAddr)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNew_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("API_URL", "https://cfb.example.com")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("LIVE_SCOREBOARD", "true")
	t.Setenv("LIVE_RANKINGS", "true")
	t.Setenv("DIGEST_CRON", "30 8 * * 0")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "https://cfb.example.com", cfg.Backend.URL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.True(t, cfg.Backend.LiveScoreboard)
	assert.True(t, cfg.Backend.LiveRankings)
	assert.Equal(t, "30 8 * * 0", cfg.Scheduler.DigestCron)
}

func TestNew_MissingRequired(t *testing.T) {
	setRequired(t)
	require.NoError(t, os.Unsetenv("TELEGRAM_TOKEN"))

	_, err := New()
	require.Error(t, err)
}

func TestNew_RejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad url":      {"API_URL", "not a url"},
		"bad cron":     {"DIGEST_CRON", "every saturday"},
		"bad timezone": {"TIMEZONE", "Mars/Olympus"},
		"bad level":    {"LOG_LEVEL", "verbose"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(kv[0], kv[1])

			_, err := New()
			require.Error(t, err)
		})
	}
}

func TestScheduler_Location(t *testing.T) {
	loc, err := Scheduler{Timezone: "America/Chicago"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", loc.String())

	_, err = Scheduler{Timezone: "Nowhere/Else"}.Location()
	assert.Error(t, err)
}
