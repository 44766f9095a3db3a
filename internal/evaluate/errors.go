package evaluate

import "errors"

// Validation errors raised at the evaluation boundary. All are surfaced
// immediately at the point of detection; nothing is recovered locally.
var (
	// ErrTypeMismatch is returned when actual, predicted, and insample do
	// not share the same concrete representation kind.
	ErrTypeMismatch = errors.New("inputs must be of the same representation kind")

	// ErrUnsupportedShape is returned for tabular inputs with more than
	// one column.
	ErrUnsupportedShape = errors.New("tables with more than one column are not supported")

	// ErrMissingDatetimeIndex is returned when a scale-dependent metric is
	// requested without chronologically indexed inputs.
	ErrMissingDatetimeIndex = errors.New("scale-dependent metric requires series with a datetime index")

	// ErrNormalization is returned when no coercion rule matches the inputs.
	// Reaching it means an internal contract violation.
	ErrNormalization = errors.New("inputs could not be normalized to canonical series")

	// ErrZeroBaseline is returned by ForecastBias when the actual values sum
	// to zero and the bias ratio is undefined.
	ErrZeroBaseline = errors.New("actual series sums to zero, forecast bias is undefined")

	// ErrNilInput is returned when a required input is absent.
	ErrNilInput = errors.New("actual and predicted inputs are required")
)
