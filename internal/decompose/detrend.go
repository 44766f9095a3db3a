// Package decompose provides trend extraction for time series.
package decompose

import "errors"

// ErrEmptySeries is returned when there is nothing to detrend.
var ErrEmptySeries = errors.New("cannot detrend an empty series")

// Options configures Detrend.
type Options struct {
	// Window is the centered moving-average window for trend extraction.
	// When 0, a least-squares linear trend is fitted instead, which keeps
	// the trend defined at every position.
	Window int

	// ReturnTrend requests the extracted trend alongside the residual.
	ReturnTrend bool
}

// Detrend splits x into a residual (stationary) component and a trend
// component. The trend is defined at every position, so x == residual + trend
// holds elementwise. The trend slice is nil unless opts.ReturnTrend is set.
func Detrend(x []float64, opts Options) (residual, trend []float64, err error) {
	if len(x) == 0 {
		return nil, nil, ErrEmptySeries
	}

	var t []float64
	if opts.Window > 1 && opts.Window <= len(x) {
		t = movingAverageTrend(x, opts.Window)
	} else {
		t = linearTrend(x)
	}

	residual = make([]float64, len(x))
	for i := range x {
		residual[i] = x[i] - t[i]
	}

	if opts.ReturnTrend {
		trend = t
	}
	return residual, trend, nil
}

// linearTrend fits a least-squares line over positions 0..n-1.
func linearTrend(x []float64) []float64 {
	n := len(x)
	if n == 1 {
		return []float64{x[0]}
	}

	var sumI, sumV, sumIV, sumII float64
	for i, v := range x {
		fi := float64(i)
		sumI += fi
		sumV += v
		sumIV += fi * v
		sumII += fi * fi
	}

	fn := float64(n)
	denom := fn*sumII - sumI*sumI
	slope := (fn*sumIV - sumI*sumV) / denom
	intercept := (sumV - slope*sumI) / fn

	trend := make([]float64, n)
	for i := range trend {
		trend[i] = intercept + slope*float64(i)
	}
	return trend
}

// movingAverageTrend computes a centered moving average. Positions inside the
// half-window at either edge reuse the nearest computed value so the trend
// stays defined everywhere.
func movingAverageTrend(x []float64, window int) []float64 {
	n := len(x)
	half := window / 2
	trend := make([]float64, n)

	first, last := -1, -1
	for i := half; i < n-half; i++ {
		sum := 0.0
		if window%2 == 0 {
			// Even window: 2x-window centered MA, half weight at the ends.
			sum += x[i-half] * 0.5
			sum += x[i+half] * 0.5
			for j := i - half + 1; j < i+half; j++ {
				sum += x[j]
			}
		} else {
			for j := i - half; j <= i+half; j++ {
				sum += x[j]
			}
		}
		trend[i] = sum / float64(window)
		if first < 0 {
			first = i
		}
		last = i
	}

	if first < 0 {
		// Window too wide to produce any centered value.
		return linearTrend(x)
	}
	for i := 0; i < first; i++ {
		trend[i] = trend[first]
	}
	for i := last + 1; i < n; i++ {
		trend[i] = trend[last]
	}
	return trend
}
