// Package evaluate normalizes heterogeneous time-series inputs and
// dispatches them to the metric family.
package evaluate

import (
	"fmt"

	"forecast-lab/internal/domain"
	"forecast-lab/internal/metrics"
)

// Options carries the optional parameters of an evaluation call.
type Options struct {
	// Insample is the training series for scale-dependent metrics.
	Insample *domain.Input

	// M is the seasonality period forwarded to scale-dependent metrics.
	M int

	// Intersect restricts comparison to the overlapping time range.
	Intersect bool

	// Reduction aggregates per-component metric values. Defaults to
	// metrics.Mean.
	Reduction func([]float64) float64
}

// DefaultOptions returns the defaults of the evaluation contract:
// seasonality 1, intersection enabled.
func DefaultOptions() Options {
	return Options{M: 1, Intersect: true}
}

// Evaluate validates actual and predicted, coerces them into canonical
// series, and forwards the call to metric.
//
// Validation is performed strictly in order, failing fast: representation
// kinds must match, single-column tables are squeezed to indexed series
// (wider tables are rejected), and scale-dependent metrics require every
// input to carry a chronological index. Inputs are never mutated; coercion
// copies into fresh canonical containers.
func Evaluate(metric metrics.Metric, actual, predicted *domain.Input, opts Options) (float64, error) {
	if actual == nil || predicted == nil {
		return 0, ErrNilInput
	}
	if actual.Kind != predicted.Kind {
		return 0, fmt.Errorf("%w: actual is %s, predicted is %s", ErrTypeMismatch, actual.Kind, predicted.Kind)
	}
	if opts.Insample != nil && opts.Insample.Kind != actual.Kind {
		return 0, fmt.Errorf("%w: actual is %s, insample is %s", ErrTypeMismatch, actual.Kind, opts.Insample.Kind)
	}

	actual, err := squeeze(actual)
	if err != nil {
		return 0, err
	}
	predicted, err = squeeze(predicted)
	if err != nil {
		return 0, err
	}
	insample := opts.Insample
	if insample != nil {
		if insample, err = squeeze(insample); err != nil {
			return 0, err
		}
	}

	isDatetimeIndex := hasDatetimeIndex(actual) && hasDatetimeIndex(predicted)
	if insample != nil {
		isDatetimeIndex = isDatetimeIndex && hasDatetimeIndex(insample)
	}

	if metric.ScaleDependent && !isDatetimeIndex {
		return 0, fmt.Errorf("%w: %s", ErrMissingDatetimeIndex, metric.Name)
	}

	params := metrics.Params{
		Intersect: opts.Intersect,
		Reduction: opts.Reduction,
	}
	if params.Actual, err = canonical(actual, isDatetimeIndex); err != nil {
		return 0, err
	}
	if params.Pred, err = canonical(predicted, isDatetimeIndex); err != nil {
		return 0, err
	}
	if metric.ScaleDependent {
		if insample == nil {
			return 0, fmt.Errorf("%w: %s", metrics.ErrMissingInsample, metric.Name)
		}
		if params.Insample, err = canonical(insample, isDatetimeIndex); err != nil {
			return 0, err
		}
		params.M = opts.M
	}

	return metric.Compute(params)
}

// squeeze reduces a single-column table to an indexed series by dropping the
// column axis. Wider tables are rejected; other kinds pass through.
func squeeze(in *domain.Input) (*domain.Input, error) {
	if in.Kind != domain.KindTable {
		return in, nil
	}
	if len(in.Columns) != 1 {
		return nil, fmt.Errorf("%w: got %d columns", ErrUnsupportedShape, len(in.Columns))
	}
	return domain.FromIndexed(in.Columns[0], in.Index), nil
}

// hasDatetimeIndex reports whether in is an indexed series with a genuine
// chronological index.
func hasDatetimeIndex(in *domain.Input) bool {
	return in.Kind == domain.KindIndexedSeries && domain.IsChronological(in.Index)
}

// canonical coerces a squeezed input into the canonical series form. The
// representation rules mirror the validation above; anything that falls
// through is an internal contract violation.
func canonical(in *domain.Input, isDatetimeIndex bool) (*domain.Series, error) {
	switch {
	case isDatetimeIndex:
		s, err := domain.FromSeries(in.Values, in.Index)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNormalization, err)
		}
		return s, nil
	case in.Kind == domain.KindArray || in.Kind == domain.KindIndexedSeries:
		return domain.FromValues(in.Values), nil
	default:
		return nil, fmt.Errorf("%w: kind %s", ErrNormalization, in.Kind)
	}
}
