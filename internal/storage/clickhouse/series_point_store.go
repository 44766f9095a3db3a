package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"forecast-lab/internal/domain"
	"forecast-lab/internal/storage"
)

// SeriesPointStore implements storage.SeriesPointStore using ClickHouse.
type SeriesPointStore struct {
	conn *Conn
}

// NewSeriesPointStore creates a new SeriesPointStore.
func NewSeriesPointStore(conn *Conn) *SeriesPointStore {
	return &SeriesPointStore{conn: conn}
}

// Compile-time interface check.
var _ storage.SeriesPointStore = (*SeriesPointStore)(nil)

// InsertBulk adds multiple points. Fails entire batch on duplicate
// (series_id, timestamp_ms). ClickHouse MergeTree does not enforce
// uniqueness at insert time, so duplicates are detected explicitly.
func (s *SeriesPointStore) InsertBulk(ctx context.Context, points []*domain.SeriesPoint) error {
	if len(points) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		seriesID    string
		timestampMs int64
	}
	seen := make(map[key]struct{})
	for _, p := range points {
		if p == nil || p.SeriesID == "" {
			return storage.ErrInvalidInput
		}
		k := key{p.SeriesID, p.TimestampMs}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing rows
	for _, p := range points {
		exists, err := s.exists(ctx, p.SeriesID, p.TimestampMs)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO series_points (
			series_id, timestamp_ms, value
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		if err := batch.Append(p.SeriesID, uint64(p.TimestampMs), p.Value); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetBySeriesID retrieves all points of a series, ordered by timestamp ASC.
func (s *SeriesPointStore) GetBySeriesID(ctx context.Context, seriesID string) ([]*domain.SeriesPoint, error) {
	query := `
		SELECT series_id, timestamp_ms, value
		FROM series_points
		WHERE series_id = ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("query by series id: %w", err)
	}
	defer rows.Close()

	return scanSeriesPoints(rows)
}

// GetByTimeRange retrieves points of a series within [start, end] (inclusive).
func (s *SeriesPointStore) GetByTimeRange(ctx context.Context, seriesID string, start, end int64) ([]*domain.SeriesPoint, error) {
	query := `
		SELECT series_id, timestamp_ms, value
		FROM series_points
		WHERE series_id = ? AND timestamp_ms >= ? AND timestamp_ms <= ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, seriesID, uint64(start), uint64(end))
	if err != nil {
		return nil, fmt.Errorf("query by time range: %w", err)
	}
	defer rows.Close()

	return scanSeriesPoints(rows)
}

// exists checks if a point with the given key exists.
func (s *SeriesPointStore) exists(ctx context.Context, seriesID string, timestampMs int64) (bool, error) {
	query := `
		SELECT count(*) FROM series_points
		WHERE series_id = ? AND timestamp_ms = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, seriesID, uint64(timestampMs)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// scanSeriesPoints scans multiple rows.
func scanSeriesPoints(rows driver.Rows) ([]*domain.SeriesPoint, error) {
	var points []*domain.SeriesPoint

	for rows.Next() {
		var p domain.SeriesPoint
		var timestampMs uint64

		if err := rows.Scan(&p.SeriesID, &timestampMs, &p.Value); err != nil {
			return nil, fmt.Errorf("scan series point row: %w", err)
		}

		p.TimestampMs = int64(timestampMs)
		points = append(points, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series point rows: %w", err)
	}

	return points, nil
}
