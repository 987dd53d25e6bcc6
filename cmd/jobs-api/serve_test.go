package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobs-api/config"
	"jobs-api/jobs/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:            "test",
		Port:              3000,
		Notifier:          config.NotifierLog,
		NotifyConcurrency: 2,
		NotifyRPS:         100,
		NotifyBurst:       10,
		NotifyTimeout:     time.Second,
		NotifyTimezone:    "UTC",
		StatsPrefix:       "jobs:stats",
		StatsTTL:          time.Hour,
		StatsBucket:       "minute",
		MetricsEnabled:    true,
		LogLevel:          "info",
		LogFormat:         "json",
		BodyLimit:         "64K",
	}
}

func serveRequest(a *app, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func closeDispatcher(t *testing.T, a *app) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, a.dispatcher.Close(ctx))
	a.close()
}

func TestNewApp_WiresStatsAndMetrics(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.StatsEnabled = true
	cfg.StatsRedisAddr = mr.Addr()

	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)

	rec := serveRequest(a, http.MethodPost, "/intern-junior/apply", validSubmission())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serveRequest(a, http.MethodPost, "/intern-junior/apply", `{"fullName":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	closeDispatcher(t, a)

	assert.Equal(t, "1", mr.HGet("jobs:stats:total", "accepted"))
	assert.Equal(t, "1", mr.HGet("jobs:stats:total", "rejected"))
	assert.Equal(t, "1", mr.HGet("jobs:stats:total", "notified"))
	assert.Equal(t, int64(1), a.session.Total()[domain.EventAccepted])

	rec = serveRequest(a, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `jobs_events_total{outcome="accepted",position="intern-junior"} 1`)
}

func TestNewApp_HealthReflectsRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.StatsEnabled = true
	cfg.StatsRedisAddr = mr.Addr()

	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	defer closeDispatcher(t, a)

	rec := serveRequest(a, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	mr.Close()
	rec = serveRequest(a, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNewApp_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig()
	cfg.StatsEnabled = true
	cfg.StatsRedisAddr = addr

	_, err := newApp(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis stats ping")
}

func TestNewApp_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false

	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	defer closeDispatcher(t, a)

	rec := serveRequest(a, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"Not found"`)
}

func TestNewApp_SlackNotifierUsesConfiguredAPI(t *testing.T) {
	posted := make(chan string, 1)
	slackAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		posted <- r.URL.Path + " " + r.PostForm.Get("channel")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"ok":true,"channel":"C1","ts":"1.0"}`)
	}))
	defer slackAPI.Close()

	cfg := testConfig()
	cfg.Notifier = config.NotifierSlack
	cfg.SlackBotToken = "xoxb-test"
	cfg.SlackChannelID = "#hiring"
	cfg.SlackAPIURL = slackAPI.URL + "/api"

	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)

	rec := serveRequest(a, http.MethodPost, "/intern-junior/apply", validSubmission())
	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case got := <-posted:
		assert.Equal(t, "/api/chat.postMessage #hiring", got)
	case <-time.After(3 * time.Second):
		t.Fatal("slack was not called")
	}
	closeDispatcher(t, a)
}

func TestNewApp_NATSUnreachable(t *testing.T) {
	cfg := testConfig()
	cfg.Notifier = config.NotifierNATS
	cfg.NATSURL = "nats://127.0.0.1:1"
	cfg.NATSSubject = "jobs.applications"

	_, err := newApp(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to NATS")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Port = 0

	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	defer a.close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
