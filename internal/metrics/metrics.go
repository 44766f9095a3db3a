// Package metrics implements the forecast accuracy metric family evaluated
// over canonical series.
package metrics

import (
	"errors"
	"fmt"
	"math"

	"forecast-lab/internal/domain"
)

// ErrZeroScale is returned when the seasonal naive baseline of a
// scale-dependent metric has zero mean absolute error.
var ErrZeroScale = errors.New("insample naive forecast error is zero, cannot scale")

// Params carries the keyword contract shared by every metric function.
// Insample and M are only consulted by scale-dependent metrics.
type Params struct {
	Actual *domain.Series
	Pred   *domain.Series

	// Insample is the training series a seasonal naive baseline is derived
	// from. Required for scale-dependent metrics, ignored otherwise.
	Insample *domain.Series

	// M is the seasonality period for the naive baseline. Defaults to 1.
	M int

	// Intersect restricts indexed series to their overlapping time range
	// before comparison.
	Intersect bool

	// Reduction aggregates per-component values into a scalar.
	// Defaults to Mean.
	Reduction func([]float64) float64
}

// Metric is one member of the metric family. ScaleDependent marks metrics
// that are undefined without a chronologically ordered insample baseline.
type Metric struct {
	Name           string
	ScaleDependent bool

	compute func(p Params) (float64, error)
}

// Compute evaluates the metric, applying parameter defaults.
func (m Metric) Compute(p Params) (float64, error) {
	if p.Reduction == nil {
		p.Reduction = Mean
	}
	if p.M <= 0 {
		p.M = 1
	}
	return m.compute(p)
}

// The provided metric family.
var (
	MAE  = Metric{Name: "mae", compute: computeMAE}
	MSE  = Metric{Name: "mse", compute: computeMSE}
	RMSE = Metric{Name: "rmse", compute: computeRMSE}
	MAPE = Metric{Name: "mape", compute: computeMAPE}
	MASE = Metric{Name: "mase", ScaleDependent: true, compute: computeMASE}
)

// ByName returns the named metric. The second result is false for an
// unknown name.
func ByName(name string) (Metric, bool) {
	switch name {
	case MAE.Name:
		return MAE, true
	case MSE.Name:
		return MSE, true
	case RMSE.Name:
		return RMSE, true
	case MAPE.Name:
		return MAPE, true
	case MASE.Name:
		return MASE, true
	default:
		return Metric{}, false
	}
}

func computeMAE(p Params) (float64, error) {
	yTrue, yPred, err := AlignedValues(p.Actual, p.Pred, p.Intersect)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range yTrue {
		sum += math.Abs(yTrue[i] - yPred[i])
	}
	return p.Reduction([]float64{sum / float64(len(yTrue))}), nil
}

func computeMSE(p Params) (float64, error) {
	yTrue, yPred, err := AlignedValues(p.Actual, p.Pred, p.Intersect)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range yTrue {
		diff := yTrue[i] - yPred[i]
		sum += diff * diff
	}
	return p.Reduction([]float64{sum / float64(len(yTrue))}), nil
}

func computeRMSE(p Params) (float64, error) {
	mse, err := computeMSE(p)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

func computeMAPE(p Params) (float64, error) {
	yTrue, yPred, err := AlignedValues(p.Actual, p.Pred, p.Intersect)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range yTrue {
		if yTrue[i] == 0 {
			return 0, fmt.Errorf("mape: actual value at position %d is zero", i)
		}
		sum += math.Abs((yTrue[i] - yPred[i]) / yTrue[i])
	}
	return p.Reduction([]float64{100 * sum / float64(len(yTrue))}), nil
}

// computeMASE scales the out-of-sample MAE by the in-sample mean absolute
// error of the seasonal naive forecast with period M.
func computeMASE(p Params) (float64, error) {
	if p.Insample == nil {
		return 0, ErrMissingInsample
	}
	if p.Insample.Len() <= p.M {
		return 0, fmt.Errorf("mase: insample length %d must exceed seasonality %d", p.Insample.Len(), p.M)
	}

	yTrue, yPred, err := AlignedValues(p.Actual, p.Pred, p.Intersect)
	if err != nil {
		return 0, err
	}

	in := p.Insample.Values
	scaleSum := 0.0
	for i := p.M; i < len(in); i++ {
		scaleSum += math.Abs(in[i] - in[i-p.M])
	}
	scale := scaleSum / float64(len(in)-p.M)
	if scale == 0 {
		return 0, ErrZeroScale
	}

	errSum := 0.0
	for i := range yTrue {
		errSum += math.Abs(yTrue[i] - yPred[i])
	}
	return p.Reduction([]float64{errSum / float64(len(yTrue)) / scale}), nil
}
