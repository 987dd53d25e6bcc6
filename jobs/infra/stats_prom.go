package infra

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"jobs-api/jobs/domain"
)

// PromStatsStore expõe os eventos como jobs_events_total{position,outcome}.
type PromStatsStore struct {
	events *prometheus.CounterVec
}

func NewPromStatsStore(reg prometheus.Registerer) (*PromStatsStore, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jobs",
		Name:      "events_total",
		Help:      "Application flow events by position and outcome.",
	}, []string{"position", "outcome"})

	if err := reg.Register(events); err != nil {
		return nil, fmt.Errorf("register jobs_events_total: %w", err)
	}
	return &PromStatsStore{events: events}, nil
}

func (s *PromStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	s.events.WithLabelValues(string(ev.Slug), string(ev.Kind)).Inc()
	return nil
}
