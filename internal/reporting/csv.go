package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders report rows as CSV string.
func RenderCSV(rows []ResultRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("eval_id,actual_id,predicted_id,metric,seasonality_m,intersect,value,created_at_ms\n")

	// Rows
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%d,%t,%.6f,%d\n",
			r.EvalID,
			r.ActualID,
			r.PredictedID,
			r.Metric,
			r.SeasonalityM,
			r.Intersect,
			r.Value,
			r.CreatedAtMs,
		))
	}

	return sb.String()
}
