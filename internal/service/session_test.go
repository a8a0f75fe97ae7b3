package service

import (
	"context"
	"testing"
	"time"
)

func TestEvictIdle_DropsOnlyStaleSessions(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	m := NewSessionManager(SeedInventory())
	m.now = func() time.Time { return clock }

	stale, err := m.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	active, err := m.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	inFlight, err := m.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	clock = clock.Add(SessionIdleTTL - time.Hour)
	if _, ok := m.Get(active.ID); !ok {
		t.Fatal("active session missing")
	}
	if !inFlight.acquire() {
		t.Fatal("acquire")
	}
	defer inFlight.release()

	clock = clock.Add(2 * time.Hour)
	if n := m.EvictIdle(); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if _, ok := m.Get(stale.ID); ok {
		t.Fatal("stale session must be evicted")
	}
	if _, ok := m.Get(active.ID); !ok {
		t.Fatal("recently seen session evicted")
	}
	if _, ok := m.Get(inFlight.ID); !ok {
		t.Fatal("busy session evicted")
	}
}

func TestEvictIdle_BoundsCookieLessTraffic(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	m := NewSessionManager(SeedInventory())
	m.now = func() time.Time { return clock }

	for i := 0; i < 50; i++ {
		if _, _, err := m.GetOrCreate(ctx, ""); err != nil {
			t.Fatalf("get or create: %v", err)
		}
	}
	if m.Len() != 50 {
		t.Fatalf("expected 50 sessions, got %d", m.Len())
	}

	clock = clock.Add(SessionIdleTTL + time.Minute)
	m.EvictIdle()
	if m.Len() != 0 {
		t.Fatalf("expected all abandoned sessions evicted, got %d", m.Len())
	}
}

func TestRun_StopsWithContext(t *testing.T) {
	m := NewSessionManager(SeedInventory())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
