package metrics

import (
	"errors"
	"fmt"
	"math"

	"forecast-lab/internal/domain"
)

// Errors shared by the metric family.
var (
	// ErrLengthMismatch is returned when actual and predicted hold a
	// different number of comparable observations.
	ErrLengthMismatch = errors.New("actual and predicted must have the same length")

	// ErrNoObservations is returned when nothing is left to compare after
	// alignment and NaN removal.
	ErrNoObservations = errors.New("no observations to compare")

	// ErrMissingInsample is returned when a scale-dependent metric is called
	// without in-sample data.
	ErrMissingInsample = errors.New("scale-dependent metric requires an insample series")
)

// AlignedValues aligns actual and predicted and returns their paired raw
// values. When both series are indexed and intersect is set, the comparison
// is first restricted to the overlapping time range. Positions holding NaN
// in either series are dropped pairwise so the results stay aligned.
func AlignedValues(actual, pred *domain.Series, intersect bool) ([]float64, []float64, error) {
	a, p := actual, pred
	if intersect && a.HasIndex() && p.HasIndex() {
		a, p = domain.IntersectRange(a, p)
	}
	if a.Len() != p.Len() {
		return nil, nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, a.Len(), p.Len())
	}
	yTrue, yPred := RemoveNaNUnion(a.Values, p.Values)
	if len(yTrue) == 0 {
		return nil, nil, ErrNoObservations
	}
	return yTrue, yPred, nil
}

// RemoveNaNUnion drops every position where either slice holds NaN.
// Both positions are removed together so the outputs stay equal length.
func RemoveNaNUnion(yTrue, yPred []float64) ([]float64, []float64) {
	outTrue := make([]float64, 0, len(yTrue))
	outPred := make([]float64, 0, len(yPred))
	for i := range yTrue {
		if math.IsNaN(yTrue[i]) || math.IsNaN(yPred[i]) {
			continue
		}
		outTrue = append(outTrue, yTrue[i])
		outPred = append(outPred, yPred[i])
	}
	return outTrue, outPred
}

// Mean is the default per-component reduction.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Identity returns the per-series values unreduced.
func Identity(values []float64) []float64 {
	return values
}
