package domain

import (
	"context"
	"time"
)

type EventKind string

const (
	EventAccepted        EventKind = "accepted"
	EventRejected        EventKind = "rejected"
	EventMalformed       EventKind = "malformed"
	EventUnknownPosition EventKind = "unknown_position"
	EventNotified        EventKind = "notified"
	EventNotifyFailed    EventKind = "notify_failed"
)

// StatsEvent representa um evento do fluxo de candidatura.
//
// Observação: para vagas desconhecidas o Slug vem vazio. O slug informado pelo
// cliente é arbitrário e explodiria a cardinalidade em Redis/Prometheus.
type StatsEvent struct {
	Slug Slug
	Kind EventKind
	At   time.Time
}

// StatsStore é a estratégia de persistência para contadores.
//
// Implementações podem armazenar em Redis, Prometheus, memória, etc.
// Quem chama trata erro como best-effort (não derruba request).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
