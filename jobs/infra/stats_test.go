package infra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobs-api/jobs/domain"
)

var statsAt = time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC)

func TestMemoryStatsStore_CountsTotalsAndPerSlug(t *testing.T) {
	s := NewMemoryStatsStore()
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, domain.StatsEvent{Slug: "intern-junior", Kind: domain.EventAccepted}))
	require.NoError(t, s.Record(ctx, domain.StatsEvent{Slug: "intern-junior", Kind: domain.EventRejected}))
	require.NoError(t, s.Record(ctx, domain.StatsEvent{Slug: "intern-junior", Kind: domain.EventRejected}))
	require.NoError(t, s.Record(ctx, domain.StatsEvent{Kind: domain.EventUnknownPosition}))

	assert.Equal(t, Counters{
		domain.EventAccepted:        1,
		domain.EventRejected:        2,
		domain.EventUnknownPosition: 1,
	}, s.Total())
	assert.Equal(t, map[domain.Slug]Counters{
		"intern-junior": {domain.EventAccepted: 1, domain.EventRejected: 2},
	}, s.BySlug())
}

func TestMemoryStatsStore_TotalIsACopy(t *testing.T) {
	s := NewMemoryStatsStore()
	require.NoError(t, s.Record(context.Background(), domain.StatsEvent{Kind: domain.EventAccepted}))

	total := s.Total()
	total[domain.EventAccepted] = 100

	assert.Equal(t, int64(1), s.Total()[domain.EventAccepted])
}

func newRedisStats(t *testing.T, opts ...RedisStatsOption) (*RedisStatsStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStatsStore(rdb, opts...), mr
}

func TestRedisStatsStore_WritesTotalBucketAndPosition(t *testing.T) {
	s, mr := newRedisStats(t, WithStatsPrefix("jobs:stats:"), WithStatsTTL(time.Hour))
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, domain.StatsEvent{Slug: "intern-junior", Kind: domain.EventAccepted, At: statsAt}))
	require.NoError(t, s.Record(ctx, domain.StatsEvent{Slug: "intern-junior", Kind: domain.EventAccepted, At: statsAt}))

	assert.Equal(t, "2", mr.HGet("jobs:stats:total", "accepted"))
	assert.Equal(t, "2", mr.HGet("jobs:stats:minute:202506010930", "accepted"))
	assert.Equal(t, "2", mr.HGet("jobs:stats:position:intern-junior", "accepted"))

	assert.Equal(t, time.Hour, mr.TTL("jobs:stats:minute:202506010930"))
	assert.Equal(t, time.Hour, mr.TTL("jobs:stats:position:intern-junior"))
	assert.Equal(t, time.Duration(0), mr.TTL("jobs:stats:total"))
}

func TestRedisStatsStore_SkipsPositionForEmptySlugAndNoBucket(t *testing.T) {
	s, mr := newRedisStats(t, WithStatsBucket("none"))

	require.NoError(t, s.Record(context.Background(), domain.StatsEvent{Kind: domain.EventUnknownPosition, At: statsAt}))

	assert.Equal(t, "1", mr.HGet("jobs:stats:total", "unknown_position"))
	assert.False(t, mr.Exists("jobs:stats:minute:202506010930"))
	assert.Equal(t, []string{"jobs:stats:total"}, mr.Keys())
}

func TestRedisStatsStore_ReturnsErrorWhenRedisIsDown(t *testing.T) {
	s, mr := newRedisStats(t)
	mr.Close()

	err := s.Record(context.Background(), domain.StatsEvent{Kind: domain.EventAccepted})
	assert.Error(t, err)
	assert.Error(t, s.Ping(context.Background()))
}

func TestRedisStatsStore_NilIsNoop(t *testing.T) {
	var s *RedisStatsStore
	assert.NoError(t, s.Record(context.Background(), domain.StatsEvent{Kind: domain.EventAccepted}))
}

func TestPromStatsStore_IncrementsByPositionAndOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, err := NewPromStatsStore(reg)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Record(ctx, domain.StatsEvent{Slug: "intern-junior", Kind: domain.EventAccepted}))
	require.NoError(t, s.Record(ctx, domain.StatsEvent{Slug: "intern-junior", Kind: domain.EventAccepted}))
	require.NoError(t, s.Record(ctx, domain.StatsEvent{Slug: "intern-junior", Kind: domain.EventNotified}))

	assert.Equal(t, 2.0, testutil.ToFloat64(s.events.WithLabelValues("intern-junior", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.events.WithLabelValues("intern-junior", "notified")))
}

func TestPromStatsStore_DuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromStatsStore(reg)
	require.NoError(t, err)

	_, err = NewPromStatsStore(reg)
	assert.Error(t, err)
}

type failingStats struct{ err error }

func (f failingStats) Record(context.Context, domain.StatsEvent) error { return f.err }

func TestMultiStats_FansOutAndJoinsErrors(t *testing.T) {
	mem := NewMemoryStatsStore()
	boom := errors.New("boom")
	m := MultiStats{failingStats{err: boom}, nil, mem}

	err := m.Record(context.Background(), domain.StatsEvent{Kind: domain.EventAccepted})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), mem.Total()[domain.EventAccepted])
}
