package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"forecast-lab/internal/domain"
	"forecast-lab/internal/storage"
)

// SeriesPointStore is an in-memory implementation of storage.SeriesPointStore.
type SeriesPointStore struct {
	mu   sync.RWMutex
	data map[string]*domain.SeriesPoint // keyed by (series_id, timestamp_ms)
}

// NewSeriesPointStore creates a new in-memory series point store.
func NewSeriesPointStore() *SeriesPointStore {
	return &SeriesPointStore{
		data: make(map[string]*domain.SeriesPoint),
	}
}

// Compile-time interface check.
var _ storage.SeriesPointStore = (*SeriesPointStore)(nil)

// pointKey generates a unique key for a series point.
func pointKey(seriesID string, timestampMs int64) string {
	return fmt.Sprintf("%s|%d", seriesID, timestampMs)
}

// InsertBulk adds multiple points. Fails entire batch on duplicate.
func (s *SeriesPointStore) InsertBulk(_ context.Context, points []*domain.SeriesPoint) error {
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[string]struct{}, len(points))

	for _, p := range points {
		if p == nil || p.SeriesID == "" {
			return storage.ErrInvalidInput
		}
		key := pointKey(p.SeriesID, p.TimestampMs)

		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, p := range points {
		key := pointKey(p.SeriesID, p.TimestampMs)
		pointCopy := *p
		s.data[key] = &pointCopy
	}

	return nil
}

// GetBySeriesID retrieves all points of a series, ordered by timestamp ASC.
func (s *SeriesPointStore) GetBySeriesID(_ context.Context, seriesID string) ([]*domain.SeriesPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.SeriesPoint
	for _, p := range s.data {
		if p.SeriesID == seriesID {
			pointCopy := *p
			result = append(result, &pointCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TimestampMs < result[j].TimestampMs
	})

	return result, nil
}

// GetByTimeRange retrieves points of a series within [start, end] (inclusive).
func (s *SeriesPointStore) GetByTimeRange(_ context.Context, seriesID string, start, end int64) ([]*domain.SeriesPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.SeriesPoint
	for _, p := range s.data {
		if p.SeriesID == seriesID && p.TimestampMs >= start && p.TimestampMs <= end {
			pointCopy := *p
			result = append(result, &pointCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TimestampMs < result[j].TimestampMs
	})

	return result, nil
}
