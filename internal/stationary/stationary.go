// Package stationary converts raw series into stationary representations
// paired with an explicit inverse.
package stationary

import (
	"errors"
	"fmt"
	"math"

	"forecast-lab/internal/decompose"
)

// Errors returned by the transformer.
var (
	// ErrUnsupportedMethod is returned for an unrecognized transform method.
	// There is no fallback and no silent default.
	ErrUnsupportedMethod = errors.New("unsupported stationarity method")

	// ErrEmptyInput is returned when the input series is empty.
	ErrEmptyInput = errors.New("input series is empty")

	// ErrLengthMismatch is returned when a stationary series does not match
	// the shape the inverse was derived for.
	ErrLengthMismatch = errors.New("stationary series length does not match transform")
)

// Method selects the stationarity algorithm.
type Method string

const (
	// MethodDetrend removes a trend component and keeps the residual.
	MethodDetrend Method = "detrend"
	// MethodLogDiff takes the log-ratio first difference.
	MethodLogDiff Method = "logdiff"
)

// Result pairs a stationary series with the side data needed to undo the
// transform. The tag says which reconstruction rule applies; the inverse is
// only valid for series derived from the original input.
type Result struct {
	Kind       Method
	Stationary []float64

	// trend is captured for MethodDetrend.
	trend []float64
	// original is captured for MethodLogDiff.
	original []float64
}

// MakeStationary transforms x into a stationary series plus its inverse.
//
// MethodDetrend delegates trend extraction to decompose.Detrend. The
// ReturnTrend option is forced on regardless of what the caller set, since
// the inverse cannot be built without the trend.
//
// MethodLogDiff computes s[i] = log(x[i]/x[i+1]) for i in [0, len(x)-2],
// producing a series one element shorter than the input.
func MakeStationary(x []float64, method Method, opts decompose.Options) (*Result, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	switch method {
	case MethodDetrend:
		opts.ReturnTrend = true
		residual, trend, err := decompose.Detrend(x, opts)
		if err != nil {
			return nil, fmt.Errorf("detrend: %w", err)
		}
		return &Result{Kind: MethodDetrend, Stationary: residual, trend: trend}, nil

	case MethodLogDiff:
		stationary := make([]float64, len(x)-1)
		for i := 0; i < len(x)-1; i++ {
			stationary[i] = math.Log(x[i] / x[i+1])
		}
		original := make([]float64, len(x))
		copy(original, x)
		return &Result{Kind: MethodLogDiff, Stationary: stationary, original: original}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
}

// Inverse reconstructs a series on the original scale from a stationary one.
// For MethodDetrend the captured trend is added back elementwise; for
// MethodLogDiff the result is exp(s) multiplied by the tail of the captured
// original starting at position 1.
func (r *Result) Inverse(stationary []float64) ([]float64, error) {
	switch r.Kind {
	case MethodDetrend:
		if len(stationary) != len(r.trend) {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(stationary), len(r.trend))
		}
		out := make([]float64, len(stationary))
		for i := range stationary {
			out[i] = stationary[i] + r.trend[i]
		}
		return out, nil

	case MethodLogDiff:
		tail := r.original[1:]
		if len(stationary) != len(tail) {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(stationary), len(tail))
		}
		out := make([]float64, len(stationary))
		for i := range stationary {
			out[i] = math.Exp(stationary[i]) * tail[i]
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, r.Kind)
	}
}
