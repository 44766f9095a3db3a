package memory

import (
	"context"
	"sort"
	"sync"

	"forecast-lab/internal/domain"
	"forecast-lab/internal/storage"
)

// EvaluationResultStore is an in-memory implementation of
// storage.EvaluationResultStore.
type EvaluationResultStore struct {
	mu   sync.RWMutex
	data map[string]*domain.EvaluationResult // keyed by eval_id
}

// NewEvaluationResultStore creates a new in-memory evaluation result store.
func NewEvaluationResultStore() *EvaluationResultStore {
	return &EvaluationResultStore{
		data: make(map[string]*domain.EvaluationResult),
	}
}

// Compile-time interface check.
var _ storage.EvaluationResultStore = (*EvaluationResultStore)(nil)

// Insert adds a new result. Returns ErrDuplicateKey if eval_id exists.
func (s *EvaluationResultStore) Insert(_ context.Context, r *domain.EvaluationResult) error {
	if r == nil || r.EvalID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.EvalID]; exists {
		return storage.ErrDuplicateKey
	}

	resultCopy := *r
	s.data[r.EvalID] = &resultCopy
	return nil
}

// GetByID retrieves a result by its ID. Returns ErrNotFound if not exists.
func (s *EvaluationResultStore) GetByID(_ context.Context, evalID string) (*domain.EvaluationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.data[evalID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	resultCopy := *r
	return &resultCopy, nil
}

// GetByMetric retrieves all results for a metric, ordered by created_at ASC.
func (s *EvaluationResultStore) GetByMetric(_ context.Context, metric string) ([]*domain.EvaluationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.EvaluationResult
	for _, r := range s.data {
		if r.Metric == metric {
			resultCopy := *r
			result = append(result, &resultCopy)
		}
	}

	sortByCreatedAt(result)
	return result, nil
}

// GetAll retrieves all results, ordered by created_at ASC.
func (s *EvaluationResultStore) GetAll(_ context.Context) ([]*domain.EvaluationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.EvaluationResult, 0, len(s.data))
	for _, r := range s.data {
		resultCopy := *r
		result = append(result, &resultCopy)
	}

	sortByCreatedAt(result)
	return result, nil
}

// sortByCreatedAt orders results by created_at ASC, eval_id ASC for
// deterministic output.
func sortByCreatedAt(results []*domain.EvaluationResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].CreatedAtMs != results[j].CreatedAtMs {
			return results[i].CreatedAtMs < results[j].CreatedAtMs
		}
		return results[i].EvalID < results[j].EvalID
	})
}
