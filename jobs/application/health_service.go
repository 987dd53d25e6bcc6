package application

import (
	"context"
	"time"
)

type HealthStatus string

const (
	StatusOK          HealthStatus = "ok"
	StatusDegraded    HealthStatus = "degraded"
	StatusUnavailable HealthStatus = "unavailable"
)

type HealthCheckResponse struct {
	Status    HealthStatus      `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

// HealthCheck é uma dependência verificável. Critical=true derruba o status
// para unavailable; caso contrário fica degraded.
type HealthCheck struct {
	Name     string
	Critical bool
	Check    func(ctx context.Context) error
}

type HealthService struct {
	checks []HealthCheck
	now    func() time.Time
}

func NewHealthService(checks ...HealthCheck) *HealthService {
	return &HealthService{checks: checks, now: time.Now}
}

func (s *HealthService) CheckHealth(ctx context.Context) HealthCheckResponse {
	checks := make(map[string]string, len(s.checks)+1)
	status := StatusOK
	checks["registry"] = "ok"

	for _, hc := range s.checks {
		if err := hc.Check(ctx); err != nil {
			checks[hc.Name] = "error: " + err.Error()
			if hc.Critical {
				status = StatusUnavailable
			} else if status == StatusOK {
				status = StatusDegraded
			}
			continue
		}
		checks[hc.Name] = "ok"
	}

	return HealthCheckResponse{
		Status:    status,
		Checks:    checks,
		Timestamp: s.now(),
	}
}
