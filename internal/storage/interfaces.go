package storage

import (
	"context"

	"forecast-lab/internal/domain"
)

// SeriesPointStore provides access to stored forecast series points.
type SeriesPointStore interface {
	// InsertBulk adds multiple points. Fails entire batch on duplicate
	// (series_id, timestamp_ms).
	InsertBulk(ctx context.Context, points []*domain.SeriesPoint) error

	// GetBySeriesID retrieves all points of a series, ordered by timestamp ASC.
	GetBySeriesID(ctx context.Context, seriesID string) ([]*domain.SeriesPoint, error)

	// GetByTimeRange retrieves points of a series within [start, end] (inclusive).
	GetByTimeRange(ctx context.Context, seriesID string, start, end int64) ([]*domain.SeriesPoint, error)
}

// EvaluationResultStore provides access to evaluation_results storage.
type EvaluationResultStore interface {
	// Insert adds a new result. Returns ErrDuplicateKey if eval_id exists.
	Insert(ctx context.Context, r *domain.EvaluationResult) error

	// GetByID retrieves a result by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, evalID string) (*domain.EvaluationResult, error)

	// GetByMetric retrieves all results for a metric, ordered by created_at ASC.
	GetByMetric(ctx context.Context, metric string) ([]*domain.EvaluationResult, error)

	// GetAll retrieves all results, ordered by created_at ASC.
	GetAll(ctx context.Context) ([]*domain.EvaluationResult, error)
}
