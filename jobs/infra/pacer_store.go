package infra

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"jobs-api/jobs/domain"
)

// PacerStore mantém um token bucket (x/time/rate) por destino de notificação,
// com limpeza periódica dos destinos ociosos.
//
// O Slack limita chat.postMessage a ~1 msg/s por canal; o bucket absorve rajadas
// curtas e espaça o resto.
type PacerStore struct {
	mu           sync.Mutex
	entries      map[string]*pacerEntry
	rps          rate.Limit
	burst        int
	idleTTL      time.Duration
	cleanupEvery time.Duration
}

type pacerEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type PacerOption func(*PacerStore)

func WithIdleTTL(d time.Duration) PacerOption {
	return func(s *PacerStore) { s.idleTTL = d }
}

func WithCleanupEvery(d time.Duration) PacerOption {
	return func(s *PacerStore) { s.cleanupEvery = d }
}

func NewPacerStore(rps float64, burst int, opts ...PacerOption) *PacerStore {
	s := &PacerStore{
		entries:      make(map[string]*pacerEntry),
		rps:          rate.Limit(rps),
		burst:        burst,
		idleTTL:      30 * time.Minute,
		cleanupEvery: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PacerStore) RPS() float64 { return float64(s.rps) }
func (s *PacerStore) Burst() int   { return s.burst }

// Get implementa domain.PacerStore.
func (s *PacerStore) Get(target string) domain.Pacer {
	return s.limiter(target)
}

func (s *PacerStore) limiter(target string) *rate.Limiter {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.entries[target]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(s.rps, s.burst)
	s.entries[target] = &pacerEntry{lim: lim, lastSeen: now}
	return lim
}

func (s *PacerStore) Cleanup() {
	cutoff := time.Now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// StartJanitor inicia uma goroutine que limpa destinos inativos periodicamente.
// Pare cancelando o contexto.
func (s *PacerStore) StartJanitor(ctx interface{ Done() <-chan struct{} }) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}
