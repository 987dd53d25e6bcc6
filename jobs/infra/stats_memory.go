package infra

import (
	"context"
	"sync"

	"jobs-api/jobs/domain"
)

// Counters conta eventos por tipo.
type Counters map[domain.EventKind]int64

// MemoryStatsStore é uma implementação simples em memória.
// O servidor usa para os totais da sessão, logados no shutdown.
//
// Não faz expiração; zera a cada restart.
type MemoryStatsStore struct {
	mu     sync.Mutex
	total  Counters
	bySlug map[domain.Slug]Counters
}

func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{
		total:  make(Counters),
		bySlug: make(map[domain.Slug]Counters),
	}
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total[ev.Kind]++
	if ev.Slug == "" {
		return nil
	}
	c, ok := s.bySlug[ev.Slug]
	if !ok {
		c = make(Counters)
		s.bySlug[ev.Slug] = c
	}
	c[ev.Kind]++
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCounters(s.total)
}

func (s *MemoryStatsStore) BySlug() map[domain.Slug]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.Slug]Counters, len(s.bySlug))
	for k, v := range s.bySlug {
		out[k] = copyCounters(v)
	}
	return out
}

func copyCounters(c Counters) Counters {
	out := make(Counters, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
