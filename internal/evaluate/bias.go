package evaluate

import (
	"fmt"

	"forecast-lab/internal/domain"
	"forecast-lab/internal/metrics"
)

// BiasName identifies forecast bias in stored evaluation results.
const BiasName = "forecast_bias"

// ForecastBias computes the forecast bias percentage
//
//	100 * (sum(actual) - sum(predicted)) / sum(actual)
//
// over paired actual/predicted data. Inputs must share the same
// representation kind (raw array or indexed series). Indexed inputs are
// first restricted to their overlapping time range when intersect is true;
// positions holding NaN in either series are then dropped pairwise.
//
// Returns ErrZeroBaseline when the actual values sum to zero instead of the
// legacy silent division by zero.
func ForecastBias(actual, predicted *domain.Input, intersect bool) (float64, error) {
	if actual == nil || predicted == nil {
		return 0, ErrNilInput
	}
	if actual.Kind != predicted.Kind {
		return 0, fmt.Errorf("%w: actual is %s, predicted is %s", ErrTypeMismatch, actual.Kind, predicted.Kind)
	}
	if actual.Kind == domain.KindTable {
		return 0, fmt.Errorf("%w: forecast bias accepts arrays or indexed series", ErrUnsupportedShape)
	}

	var yTrue, yPred []float64
	if actual.Kind == domain.KindIndexedSeries {
		a, err := domain.FromSeries(actual.Values, actual.Index)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrNormalization, err)
		}
		p, err := domain.FromSeries(predicted.Values, predicted.Index)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrNormalization, err)
		}
		if yTrue, yPred, err = metrics.AlignedValues(a, p, intersect); err != nil {
			return 0, err
		}
	} else {
		if len(actual.Values) != len(predicted.Values) {
			return 0, fmt.Errorf("%w: %d vs %d", metrics.ErrLengthMismatch, len(actual.Values), len(predicted.Values))
		}
		yTrue, yPred = metrics.RemoveNaNUnion(actual.Values, predicted.Values)
		if len(yTrue) == 0 {
			return 0, metrics.ErrNoObservations
		}
	}

	var sumTrue, sumPred float64
	for _, v := range yTrue {
		sumTrue += v
	}
	for _, v := range yPred {
		sumPred += v
	}
	if sumTrue == 0 {
		return 0, ErrZeroBaseline
	}
	return 100 * (sumTrue - sumPred) / sumTrue, nil
}
