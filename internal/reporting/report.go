// Package reporting renders evaluation results for human consumption.
package reporting

import (
	"sort"
	"time"

	"forecast-lab/internal/domain"
)

// Report summarizes a set of stored evaluation results.
type Report struct {
	GeneratedAt time.Time

	// Rows sorted by metric, then created_at, then eval_id.
	Rows []ResultRow
}

// ResultRow is one evaluation result in a report.
type ResultRow struct {
	EvalID       string
	ActualID     string
	PredictedID  string
	Metric       string
	SeasonalityM int
	Intersect    bool
	Value        float64
	CreatedAtMs  int64
}

// Build assembles a report from stored results.
func Build(results []*domain.EvaluationResult, now time.Time) *Report {
	rows := make([]ResultRow, len(results))
	for i, r := range results {
		rows[i] = ResultRow{
			EvalID:       r.EvalID,
			ActualID:     r.ActualID,
			PredictedID:  r.PredictedID,
			Metric:       r.Metric,
			SeasonalityM: r.SeasonalityM,
			Intersect:    r.Intersect,
			Value:        r.Value,
			CreatedAtMs:  r.CreatedAtMs,
		}
	}
	sortRows(rows)
	return &Report{GeneratedAt: now, Rows: rows}
}

// sortRows orders rows by metric ASC, created_at ASC, eval_id ASC for
// deterministic output.
func sortRows(rows []ResultRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Metric != rows[j].Metric {
			return rows[i].Metric < rows[j].Metric
		}
		if rows[i].CreatedAtMs != rows[j].CreatedAtMs {
			return rows[i].CreatedAtMs < rows[j].CreatedAtMs
		}
		return rows[i].EvalID < rows[j].EvalID
	})
}
