package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthService_AllOK(t *testing.T) {
	svc := NewHealthService(HealthCheck{Name: "redis", Critical: true, Check: func(context.Context) error { return nil }})

	res := svc.CheckHealth(context.Background())
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, map[string]string{"registry": "ok", "redis": "ok"}, res.Checks)
	assert.False(t, res.Timestamp.IsZero())
}

func TestHealthService_NonCriticalFailureDegrades(t *testing.T) {
	svc := NewHealthService(HealthCheck{Name: "nats", Check: func(context.Context) error { return errors.New("disconnected") }})

	res := svc.CheckHealth(context.Background())
	assert.Equal(t, StatusDegraded, res.Status)
	assert.Equal(t, "error: disconnected", res.Checks["nats"])
}

func TestHealthService_CriticalFailureIsUnavailable(t *testing.T) {
	svc := NewHealthService(
		HealthCheck{Name: "nats", Check: func(context.Context) error { return errors.New("disconnected") }},
		HealthCheck{Name: "redis", Critical: true, Check: func(context.Context) error { return errors.New("refused") }},
	)

	res := svc.CheckHealth(context.Background())
	assert.Equal(t, StatusUnavailable, res.Status)
}
