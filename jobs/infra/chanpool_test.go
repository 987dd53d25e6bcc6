package infra

import (
	"context"
	"testing"
	"time"
)

func TestChanPool_BlocksWhenFull(t *testing.T) {
	pool := NewChanPool(1)

	release, ok := pool.Acquire(context.Background())
	if !ok {
		t.Fatalf("expected first acquire to succeed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, ok := pool.Acquire(ctx); ok {
		t.Fatalf("expected second acquire to fail while the slot is taken")
	}

	release()
	release2, ok := pool.Acquire(context.Background())
	if !ok {
		t.Fatalf("expected acquire after release to succeed")
	}
	release2()
}

func TestChanPool_NonPositiveMaxMeansUnlimited(t *testing.T) {
	if NewChanPool(0) != nil {
		t.Fatalf("expected nil pool for max=0")
	}
}
