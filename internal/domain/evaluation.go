package domain

// EvaluationResult is one persisted metric evaluation.
// Corresponds to evaluation_results table in PostgreSQL.
type EvaluationResult struct {
	EvalID       string  // unique evaluation identifier
	ActualID     string  // identifier of the actual series
	PredictedID  string  // identifier of the predicted series
	Metric       string  // metric name (mae, mse, rmse, mape, mase, forecast_bias)
	SeasonalityM int     // seasonal period used for scale-dependent metrics
	Intersect    bool    // whether comparison was restricted to the overlap
	Value        float64 // computed metric value
	CreatedAtMs  int64   // Unix timestamp in milliseconds
}

// SeriesPoint is one observation of a stored forecast series.
// Corresponds to series_points table in ClickHouse.
type SeriesPoint struct {
	SeriesID    string  // series identifier
	TimestampMs int64   // Unix timestamp in milliseconds
	Value       float64 // observed or predicted value
}
