package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Evaluation Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Results: %d\n\n", len(r.Rows)))

	// Per-metric summary
	sb.WriteString("## Summary by Metric\n\n")
	summaries := summarize(r.Rows)
	if len(summaries) > 0 {
		sb.WriteString("| Metric | Count | Mean | Min | Max |\n")
		sb.WriteString("|--------|-------|------|-----|-----|\n")
		for _, s := range summaries {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.4f | %.4f | %.4f |\n",
				s.Metric, s.Count, s.Mean, s.Min, s.Max))
		}
	} else {
		sb.WriteString("No results available.\n")
	}
	sb.WriteString("\n")

	// Results
	sb.WriteString("## Results\n\n")
	if len(r.Rows) > 0 {
		sb.WriteString("| EvalID | Actual | Predicted | Metric | M | Intersect | Value |\n")
		sb.WriteString("|--------|--------|-----------|--------|---|-----------|-------|\n")
		for _, row := range r.Rows {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d | %t | %.4f |\n",
				row.EvalID, row.ActualID, row.PredictedID,
				row.Metric, row.SeasonalityM, row.Intersect, row.Value))
		}
	} else {
		sb.WriteString("No results available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// MetricSummary aggregates result values for one metric.
type MetricSummary struct {
	Metric string
	Count  int
	Mean   float64
	Min    float64
	Max    float64
}

// summarize groups rows by metric. Rows arrive sorted by metric, so groups
// are contiguous.
func summarize(rows []ResultRow) []MetricSummary {
	var out []MetricSummary
	i := 0
	for i < len(rows) {
		j := i
		sum := 0.0
		min, max := rows[i].Value, rows[i].Value
		for j < len(rows) && rows[j].Metric == rows[i].Metric {
			v := rows[j].Value
			sum += v
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			j++
		}
		out = append(out, MetricSummary{
			Metric: rows[i].Metric,
			Count:  j - i,
			Mean:   sum / float64(j-i),
			Min:    min,
			Max:    max,
		})
		i = j
	}
	return out
}
