package series

import (
	"math"
	"testing"

	apperrors "marketlens/internal/errors"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRollingMean(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	out, err := RollingMean(values, 3)
	if err != nil {
		t.Fatalf("RollingMean failed: %v", err)
	}

	if len(out) != len(values) {
		t.Fatalf("Expected %d positions, got %d", len(values), len(out))
	}
	for i := 0; i < 2; i++ {
		if !math.IsNaN(out[i]) {
			t.Errorf("Position %d should be undefined during warm-up, got %f", i, out[i])
		}
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if !almostEqual(out[i+2], w) {
			t.Errorf("Position %d: expected %f, got %f", i+2, w, out[i+2])
		}
	}
}

func TestRollingMeanWindowOfOne(t *testing.T) {
	values := []float64{7, 8, 9}

	out, err := RollingMean(values, 1)
	if err != nil {
		t.Fatalf("RollingMean failed: %v", err)
	}

	for i, v := range values {
		if out[i] != v {
			t.Errorf("Window of one should reproduce input at %d: got %f, want %f", i, out[i], v)
		}
	}
}

func TestRollingMeanInvalidWindow(t *testing.T) {
	if _, err := RollingMean([]float64{1, 2}, 0); err != apperrors.ErrInvalidWindow {
		t.Errorf("Expected ErrInvalidWindow, got %v", err)
	}
	if _, err := RollingMean([]float64{1, 2}, -3); err != apperrors.ErrInvalidWindow {
		t.Errorf("Expected ErrInvalidWindow, got %v", err)
	}
}

func TestRollingMeanShortSeries(t *testing.T) {
	out, err := RollingMean([]float64{1, 2, 3}, 10)
	if err != nil {
		t.Fatalf("RollingMean failed: %v", err)
	}
	for i, v := range out {
		if !math.IsNaN(v) {
			t.Errorf("Window longer than series should leave position %d undefined, got %f", i, v)
		}
	}
}

func TestRollingStd(t *testing.T) {
	// Known population standard deviation: 2.
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	out, err := RollingStd(values, 8)
	if err != nil {
		t.Fatalf("RollingStd failed: %v", err)
	}

	for i := 0; i < 7; i++ {
		if !math.IsNaN(out[i]) {
			t.Errorf("Position %d should be undefined during warm-up, got %f", i, out[i])
		}
	}
	if !almostEqual(out[7], 2.0) {
		t.Errorf("Expected population std 2.0, got %f", out[7])
	}
}

func TestRollingStdConstantSeries(t *testing.T) {
	values := []float64{5, 5, 5, 5, 5}

	out, err := RollingStd(values, 3)
	if err != nil {
		t.Fatalf("RollingStd failed: %v", err)
	}
	for i := 2; i < len(out); i++ {
		if out[i] != 0 {
			t.Errorf("Constant series should have zero deviation at %d, got %f", i, out[i])
		}
	}
}

func TestExponentialMean(t *testing.T) {
	// span 2 gives alpha 2/3; seeded from the first value.
	values := []float64{2, 4, 8}

	out, err := ExponentialMean(values, 2)
	if err != nil {
		t.Fatalf("ExponentialMean failed: %v", err)
	}

	want := []float64{2, 10.0 / 3.0, 58.0 / 9.0}
	for i, w := range want {
		if !almostEqual(out[i], w) {
			t.Errorf("Position %d: expected %f, got %f", i, w, out[i])
		}
	}
}

func TestExponentialMeanNoWarmup(t *testing.T) {
	values := []float64{100, 101, 102}

	out, err := ExponentialMean(values, 50)
	if err != nil {
		t.Fatalf("ExponentialMean failed: %v", err)
	}

	for i, v := range out {
		if math.IsNaN(v) {
			t.Errorf("Exponential mean should be defined at every position, NaN at %d", i)
		}
	}
	if out[0] != values[0] {
		t.Errorf("Expected seed from first value %f, got %f", values[0], out[0])
	}
}

func TestPercentChange(t *testing.T) {
	out := PercentChange([]float64{100, 110, 99})

	if len(out) != 2 {
		t.Fatalf("Expected 2 changes, got %d", len(out))
	}
	if !almostEqual(out[0], 0.10) {
		t.Errorf("Expected 0.10, got %f", out[0])
	}
	if !almostEqual(out[1], -0.10) {
		t.Errorf("Expected -0.10, got %f", out[1])
	}
}

func TestPercentChangeZeroPrevious(t *testing.T) {
	out := PercentChange([]float64{0, 10})
	if !math.IsNaN(out[0]) {
		t.Errorf("Change from zero should be undefined, got %f", out[0])
	}
}

func TestPercentChangeTooShort(t *testing.T) {
	if out := PercentChange([]float64{5}); out != nil {
		t.Errorf("Expected nil for single-element input, got %v", out)
	}
	if out := PercentChange(nil); out != nil {
		t.Errorf("Expected nil for empty input, got %v", out)
	}
}

func TestMaxMinMean(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5}

	if got := Max(values); got != 5 {
		t.Errorf("Max: expected 5, got %f", got)
	}
	if got := Min(values); got != 1 {
		t.Errorf("Min: expected 1, got %f", got)
	}
	if got := Mean(values); !almostEqual(got, 2.8) {
		t.Errorf("Mean: expected 2.8, got %f", got)
	}

	if !math.IsNaN(Max(nil)) || !math.IsNaN(Min(nil)) || !math.IsNaN(Mean(nil)) {
		t.Error("Empty input should yield NaN for Max, Min and Mean")
	}
}

func TestSampleStd(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	got := SampleStd(values)
	want := math.Sqrt(32.0 / 7.0)
	if !almostEqual(got, want) {
		t.Errorf("Expected sample std %f, got %f", want, got)
	}
}

func TestSampleStdSkipsNaN(t *testing.T) {
	values := []float64{math.NaN(), 2, 4, math.NaN(), 4, 4, 5, 5, 7, 9}

	got := SampleStd(values)
	want := math.Sqrt(32.0 / 7.0)
	if !almostEqual(got, want) {
		t.Errorf("NaN positions should be ignored: expected %f, got %f", want, got)
	}
}

func TestSampleStdTooFewValid(t *testing.T) {
	if got := SampleStd([]float64{1}); !math.IsNaN(got) {
		t.Errorf("Expected NaN for single value, got %f", got)
	}
	if got := SampleStd([]float64{math.NaN(), 1}); !math.IsNaN(got) {
		t.Errorf("Expected NaN with one valid value, got %f", got)
	}
}
