package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cleanEnv zera todas as variáveis conhecidas; valor vazio é tratado como ausente.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(envName(k.name), "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cleanEnv(t)
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.ListenAddr())
	assert.Equal(t, NotifierSlack, cfg.Notifier)
	assert.Equal(t, "#hiring", cfg.SlackChannelID)
	assert.Equal(t, "jobs.applications", cfg.NATSSubject)
	assert.Equal(t, 4, cfg.NotifyConcurrency)
	assert.Equal(t, 1.0, cfg.NotifyRPS)
	assert.Equal(t, 3, cfg.NotifyBurst)
	assert.Equal(t, 10*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, "America/Sao_Paulo", cfg.Location().String())
	assert.False(t, cfg.StatsEnabled)
	assert.Equal(t, "jobs:stats", cfg.StatsPrefix)
	assert.Equal(t, 24*time.Hour, cfg.StatsTTL)
	assert.Equal(t, "minute", cfg.StatsBucket)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "64K", cfg.BodyLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	cleanEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("NOTIFIER", "nats")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("NOTIFY_RPS", "0.5")
	t.Setenv("NOTIFY_TIMEOUT", "0")
	t.Setenv("STATS_ENABLED", "true")
	t.Setenv("STATS_REDIS_ADDR", "localhost:6379")
	t.Setenv("STATS_REDIS_DB", "2")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, NotifierNATS, cfg.Notifier)
	assert.Equal(t, "nats://localhost:4222", cfg.NATSURL)
	assert.Equal(t, 0.5, cfg.NotifyRPS)
	assert.Zero(t, cfg.NotifyTimeout)
	assert.True(t, cfg.StatsEnabled)
	assert.Equal(t, 2, cfg.StatsRedisDB)
}

func TestLoad_MissingSlackToken(t *testing.T) {
	cleanEnv(t)

	_, err := Load("")
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"SLACK_BOT_TOKEN"}, verr.Vars)
	assert.Equal(t, "missing or invalid configuration: SLACK_BOT_TOKEN", err.Error())
}

func TestLoad_ReportsEveryInvalidVar(t *testing.T) {
	cleanEnv(t)
	t.Setenv("PORT", "abc")
	t.Setenv("NOTIFY_BURST", "lots")
	t.Setenv("STATS_ENABLED", "maybe")

	_, err := Load("")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"PORT", "NOTIFY_BURST", "STATS_ENABLED"}, verr.Vars)
}

func TestLoad_ReportsEverySemanticProblem(t *testing.T) {
	cleanEnv(t)
	t.Setenv("APP_ENV", "staging")
	t.Setenv("PORT", "70000")
	t.Setenv("NOTIFY_CONCURRENCY", "0")
	t.Setenv("NOTIFY_TIMEZONE", "Mars/Olympus")
	t.Setenv("STATS_ENABLED", "1")
	t.Setenv("LOG_FORMAT", "xml")
	t.Setenv("BODY_LIMIT", "big")

	_, err := Load("")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"APP_ENV",
		"PORT",
		"SLACK_BOT_TOKEN",
		"NOTIFY_CONCURRENCY",
		"NOTIFY_TIMEZONE",
		"STATS_REDIS_ADDR",
		"LOG_FORMAT",
		"BODY_LIMIT",
	}, verr.Vars)
}

func TestLoad_UnknownNotifier(t *testing.T) {
	cleanEnv(t)
	t.Setenv("NOTIFIER", "email")

	_, err := Load("")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"NOTIFIER"}, verr.Vars)
}

func TestLoad_LogNotifierNeedsNoCredentials(t *testing.T) {
	cleanEnv(t)
	t.Setenv("NOTIFIER", "log")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, NotifierLog, cfg.Notifier)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	cleanEnv(t)
	path := writeFile(t, "jobs.yaml", `
port: 4000
notifier: log
notify_rps: 2
notify_timeout: 5s
stats_prefix: custom:stats
metrics_enabled: false
`)
	t.Setenv("PORT", "5000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port, "env wins over file")
	assert.Equal(t, NotifierLog, cfg.Notifier)
	assert.Equal(t, 2.0, cfg.NotifyRPS)
	assert.Equal(t, 5*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, "custom:stats", cfg.StatsPrefix)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoad_TOMLFile(t *testing.T) {
	cleanEnv(t)
	path := writeFile(t, "jobs.toml", `
port = 4100
notifier = "slack"
slack_bot_token = "xoxb-from-file"
slack_channel_id = "C0123"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4100, cfg.Port)
	assert.Equal(t, "xoxb-from-file", cfg.SlackBotToken)
	assert.Equal(t, "C0123", cfg.SlackChannelID)
}

func TestLoad_FileWithWrongTypes(t *testing.T) {
	cleanEnv(t)
	path := writeFile(t, "jobs.yaml", `
notifier: log
port: "not-a-port"
notify_timeout: 10
`)

	_, err := Load(path)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"PORT", "NOTIFY_TIMEOUT"}, verr.Vars)
}

func TestLoad_FileErrors(t *testing.T) {
	cleanEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config file")

	_, err = Load(writeFile(t, "jobs.json", `{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file extension")
}

func TestLoad_InvalidSlackAPIURL(t *testing.T) {
	cleanEnv(t)
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_API_URL", "localhost:9999")

	_, err := Load("")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"SLACK_API_URL"}, verr.Vars)
}
