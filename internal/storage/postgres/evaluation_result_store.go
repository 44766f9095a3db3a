package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"forecast-lab/internal/domain"
	"forecast-lab/internal/storage"
)

// EvaluationResultStore implements storage.EvaluationResultStore using
// PostgreSQL.
type EvaluationResultStore struct {
	pool *Pool
}

// NewEvaluationResultStore creates a new EvaluationResultStore.
func NewEvaluationResultStore(pool *Pool) *EvaluationResultStore {
	return &EvaluationResultStore{pool: pool}
}

// Compile-time interface check.
var _ storage.EvaluationResultStore = (*EvaluationResultStore)(nil)

// Insert adds a new result. Returns ErrDuplicateKey if eval_id exists.
func (s *EvaluationResultStore) Insert(ctx context.Context, r *domain.EvaluationResult) error {
	query := `
		INSERT INTO evaluation_results (
			eval_id, actual_id, predicted_id, metric,
			seasonality_m, intersect_range, value, created_at_ms
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8
		)
	`

	_, err := s.pool.Exec(ctx, query,
		r.EvalID, r.ActualID, r.PredictedID, r.Metric,
		r.SeasonalityM, r.Intersect, r.Value, r.CreatedAtMs,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert evaluation result: %w", err)
	}
	return nil
}

// GetByID retrieves a result by its ID. Returns ErrNotFound if not exists.
func (s *EvaluationResultStore) GetByID(ctx context.Context, evalID string) (*domain.EvaluationResult, error) {
	query := `
		SELECT eval_id, actual_id, predicted_id, metric,
			seasonality_m, intersect_range, value, created_at_ms
		FROM evaluation_results
		WHERE eval_id = $1
	`

	var r domain.EvaluationResult
	err := s.pool.QueryRow(ctx, query, evalID).Scan(
		&r.EvalID, &r.ActualID, &r.PredictedID, &r.Metric,
		&r.SeasonalityM, &r.Intersect, &r.Value, &r.CreatedAtMs,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get evaluation result by id: %w", err)
	}
	return &r, nil
}

// GetByMetric retrieves all results for a metric, ordered by created_at ASC.
func (s *EvaluationResultStore) GetByMetric(ctx context.Context, metric string) ([]*domain.EvaluationResult, error) {
	query := `
		SELECT eval_id, actual_id, predicted_id, metric,
			seasonality_m, intersect_range, value, created_at_ms
		FROM evaluation_results
		WHERE metric = $1
		ORDER BY created_at_ms ASC, eval_id ASC
	`

	rows, err := s.pool.Query(ctx, query, metric)
	if err != nil {
		return nil, fmt.Errorf("query evaluation results by metric: %w", err)
	}
	defer rows.Close()

	return scanEvaluationResults(rows)
}

// GetAll retrieves all results, ordered by created_at ASC.
func (s *EvaluationResultStore) GetAll(ctx context.Context) ([]*domain.EvaluationResult, error) {
	query := `
		SELECT eval_id, actual_id, predicted_id, metric,
			seasonality_m, intersect_range, value, created_at_ms
		FROM evaluation_results
		ORDER BY created_at_ms ASC, eval_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all evaluation results: %w", err)
	}
	defer rows.Close()

	return scanEvaluationResults(rows)
}

// scanEvaluationResults scans multiple rows.
func scanEvaluationResults(rows pgx.Rows) ([]*domain.EvaluationResult, error) {
	var results []*domain.EvaluationResult

	for rows.Next() {
		var r domain.EvaluationResult
		err := rows.Scan(
			&r.EvalID, &r.ActualID, &r.PredictedID, &r.Metric,
			&r.SeasonalityM, &r.Intersect, &r.Value, &r.CreatedAtMs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan evaluation result row: %w", err)
		}
		results = append(results, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluation result rows: %w", err)
	}

	return results, nil
}
