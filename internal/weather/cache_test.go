package weather

import (
	"context"
	"testing"
	"time"
)

func TestCacheServesWhileFresh(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	c := NewSnapshotCache(5*time.Minute, 30*time.Minute)
	c.now = func() time.Time { return now }

	c.Put(37.5, 127.0, Snapshot{Location: "Seoul"})

	if _, ok := c.Get(37.5, 127.0); !ok {
		t.Fatal("expected a cache hit immediately after Put")
	}
	if _, ok := c.Get(35.1, 129.0); ok {
		t.Error("different coordinates must not hit")
	}

	now = now.Add(4 * time.Minute)
	if _, ok := c.Get(37.5, 127.0); !ok {
		t.Error("expected a hit inside the freshness window")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(37.5, 127.0); ok {
		t.Error("expected a miss after the freshness window")
	}
}

func TestCacheEvictsIdleEntries(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	c := NewSnapshotCache(5*time.Minute, 30*time.Minute)
	c.now = func() time.Time { return now }

	c.Put(37.5, 127.0, Snapshot{Location: "Seoul"})
	c.Put(35.1, 129.0, Snapshot{Location: "Busan"})

	// Keep one entry in use.
	now = now.Add(29 * time.Minute)
	c.Get(37.5, 127.0)

	now = now.Add(2 * time.Minute)
	if removed := c.Evict(); removed != 1 {
		t.Fatalf("expected 1 eviction, got %d", removed)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry to survive, got %d", c.Len())
	}
}

func TestServiceMemoizesByCoordinates(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	client := &fakeClient{
		current:  testCurrent("Seoul", 16, 10, 15),
		forecast: ForecastList{},
	}
	cache := NewSnapshotCache(5*time.Minute, 30*time.Minute)
	cache.now = func() time.Time { return now }
	svc := NewService(newTestAggregator(client, now), cache)

	for i := 0; i < 3; i++ {
		if _, err := svc.Fetch(context.Background(), 37.5, 127.0); err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
	}
	if client.currentCalls != 1 || client.forecastCalls != 1 {
		t.Errorf("expected one provider round-trip, got current=%d forecast=%d",
			client.currentCalls, client.forecastCalls)
	}

	// A different coordinate pair misses.
	if _, err := svc.Fetch(context.Background(), 35.1, 129.0); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if client.currentCalls != 2 {
		t.Errorf("expected a second provider round-trip, got %d", client.currentCalls)
	}
}

func TestServiceDoesNotCacheFailures(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	client := &fakeClient{
		currentErr: context.DeadlineExceeded,
		forecast:   ForecastList{},
	}
	cache := NewSnapshotCache(5*time.Minute, 30*time.Minute)
	cache.now = func() time.Time { return now }
	svc := NewService(newTestAggregator(client, now), cache)

	if _, err := svc.Fetch(context.Background(), 37.5, 127.0); err == nil {
		t.Fatal("expected the aggregation to fail")
	}
	if cache.Len() != 0 {
		t.Error("failed aggregations must not be cached")
	}
}
