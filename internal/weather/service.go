package weather

import "context"

// Service is the caller-facing weather surface: the Aggregator behind a
// short-lived memoization layer keyed by coordinate pair.
type Service struct {
	agg   *Aggregator
	cache *SnapshotCache
}

func NewService(agg *Aggregator, cache *SnapshotCache) *Service {
	return &Service{agg: agg, cache: cache}
}

// Fetch returns the snapshot for a coordinate pair, serving from cache while
// fresh. Failed aggregations are never cached.
func (s *Service) Fetch(ctx context.Context, lat, lon float64) (Snapshot, error) {
	if snapshot, ok := s.cache.Get(lat, lon); ok {
		return snapshot, nil
	}

	snapshot, err := s.agg.Fetch(ctx, lat, lon)
	if err != nil {
		return Snapshot{}, err
	}

	s.cache.Put(lat, lon, snapshot)
	return snapshot, nil
}

// EvictStale drops cache entries past the idle window and reports the count.
func (s *Service) EvictStale() int {
	return s.cache.Evict()
}
