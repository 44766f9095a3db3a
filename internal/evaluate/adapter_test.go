package evaluate

import (
	"errors"
	"math"
	"testing"
	"time"

	"forecast-lab/internal/domain"
	"forecast-lab/internal/metrics"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func days(ns ...int) []time.Time {
	out := make([]time.Time, len(ns))
	for i, n := range ns {
		out[i] = day(n)
	}
	return out
}

func TestEvaluate_RawArrays(t *testing.T) {
	actual := domain.FromArray([]float64{3, 5, 2, 7})
	predicted := domain.FromArray([]float64{2, 4, 4, 8})

	got, err := Evaluate(metrics.MAE, actual, predicted, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-1.25) > 1e-9 {
		t.Errorf("expected 1.25, got %f", got)
	}
}

func TestEvaluate_KindMismatch(t *testing.T) {
	actual := domain.FromArray([]float64{1, 2, 3})
	predicted := domain.FromIndexed([]float64{1, 2, 3}, days(1, 2, 3))

	_, err := Evaluate(metrics.MAE, actual, predicted, DefaultOptions())
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestEvaluate_InsampleKindMismatch(t *testing.T) {
	actual := domain.FromIndexed([]float64{1, 2, 3}, days(1, 2, 3))
	predicted := domain.FromIndexed([]float64{1, 2, 3}, days(1, 2, 3))

	opts := DefaultOptions()
	opts.Insample = domain.FromArray([]float64{1, 2, 3})

	_, err := Evaluate(metrics.MASE, actual, predicted, opts)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestEvaluate_NilInput(t *testing.T) {
	_, err := Evaluate(metrics.MAE, nil, domain.FromArray([]float64{1}), DefaultOptions())
	if !errors.Is(err, ErrNilInput) {
		t.Errorf("expected ErrNilInput, got %v", err)
	}
}

func TestEvaluate_SingleColumnTableSqueezed(t *testing.T) {
	actual := domain.FromTable([][]float64{{3, 5, 2}}, days(1, 2, 3))
	predicted := domain.FromTable([][]float64{{2, 4, 4}}, days(1, 2, 3))

	got, err := Evaluate(metrics.MAE, actual, predicted, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (1 + 1 + 2) / 3
	if math.Abs(got-4.0/3.0) > 1e-9 {
		t.Errorf("expected %f, got %f", 4.0/3.0, got)
	}
}

func TestEvaluate_MultiColumnTableRejected(t *testing.T) {
	actual := domain.FromTable([][]float64{{1, 2}, {3, 4}}, days(1, 2))
	predicted := domain.FromTable([][]float64{{1, 2}, {3, 4}}, days(1, 2))

	_, err := Evaluate(metrics.MAE, actual, predicted, DefaultOptions())
	if !errors.Is(err, ErrUnsupportedShape) {
		t.Errorf("expected ErrUnsupportedShape, got %v", err)
	}
}

func TestEvaluate_ScaleDependentWithoutDatetimeIndex(t *testing.T) {
	actual := domain.FromArray([]float64{6, 7})
	predicted := domain.FromArray([]float64{7, 9})

	opts := DefaultOptions()
	opts.Insample = domain.FromArray([]float64{1, 2, 3, 4, 5})

	_, err := Evaluate(metrics.MASE, actual, predicted, opts)
	if !errors.Is(err, ErrMissingDatetimeIndex) {
		t.Errorf("expected ErrMissingDatetimeIndex, got %v", err)
	}
}

func TestEvaluate_ScaleDependentNonChronologicalIndex(t *testing.T) {
	// Index present but out of order: treated as positional, so still rejected
	actual := domain.FromIndexed([]float64{6, 7}, []time.Time{day(7), day(6)})
	predicted := domain.FromIndexed([]float64{7, 9}, []time.Time{day(7), day(6)})

	opts := DefaultOptions()
	opts.Insample = domain.FromIndexed([]float64{1, 2}, []time.Time{day(1), day(2)})

	_, err := Evaluate(metrics.MASE, actual, predicted, opts)
	if !errors.Is(err, ErrMissingDatetimeIndex) {
		t.Errorf("expected ErrMissingDatetimeIndex, got %v", err)
	}
}

func TestEvaluate_ScaleDependentWithoutInsample(t *testing.T) {
	// Indexed inputs satisfy the datetime requirement, but the insample
	// series is still mandatory for a scale-dependent metric
	actual := domain.FromIndexed([]float64{6, 7}, days(6, 7))
	predicted := domain.FromIndexed([]float64{7, 9}, days(6, 7))

	_, err := Evaluate(metrics.MASE, actual, predicted, DefaultOptions())
	if !errors.Is(err, metrics.ErrMissingInsample) {
		t.Errorf("expected ErrMissingInsample, got %v", err)
	}
}

func TestEvaluate_ScaleDependentWithDatetimeIndex(t *testing.T) {
	actual := domain.FromIndexed([]float64{6, 7}, days(6, 7))
	predicted := domain.FromIndexed([]float64{7, 9}, days(6, 7))

	opts := DefaultOptions()
	opts.Insample = domain.FromIndexed([]float64{1, 2, 3, 4, 5}, days(1, 2, 3, 4, 5))

	got, err := Evaluate(metrics.MASE, actual, predicted, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Scale 1, out-of-sample MAE 1.5
	if math.Abs(got-1.5) > 1e-9 {
		t.Errorf("expected 1.5, got %f", got)
	}
}

func TestEvaluate_ScaleIndependentIgnoresInsample(t *testing.T) {
	actual := domain.FromArray([]float64{3, 5})
	predicted := domain.FromArray([]float64{2, 4})

	opts := DefaultOptions()
	// Present but irrelevant for MAE
	opts.Insample = domain.FromArray([]float64{1, 2, 3})

	got, err := Evaluate(metrics.MAE, actual, predicted, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected 1.0, got %f", got)
	}
}

func TestEvaluate_IntersectRestrictsComparison(t *testing.T) {
	actual := domain.FromIndexed([]float64{1, 2, 3, 4}, days(1, 2, 3, 4))
	predicted := domain.FromIndexed([]float64{2, 3, 4, 100}, days(2, 3, 4, 5))

	got, err := Evaluate(metrics.MAE, actual, predicted, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Overlap days 2..4: actual 2,3,4 vs predicted 2,3,4 → 0
	if math.Abs(got) > 1e-9 {
		t.Errorf("expected 0, got %f", got)
	}
}

func TestEvaluate_InputsNotMutated(t *testing.T) {
	values := []float64{3, 5, 2}
	actual := domain.FromArray(values)
	predicted := domain.FromArray([]float64{2, 4, 4})

	if _, err := Evaluate(metrics.MAE, actual, predicted, DefaultOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values[0] != 3 || values[1] != 5 || values[2] != 2 {
		t.Errorf("input mutated: %v", values)
	}
}
