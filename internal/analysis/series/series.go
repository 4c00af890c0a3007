// Package series implements rolling statistics over price sequences.
//
// Positions without enough history are NaN so that "absent" never collapses
// to zero further up the stack; report builders convert NaN to omitted
// fields. All functions are pure and safe for concurrent use.
package series

import (
	"math"

	"marketlens/internal/errors"
)

// RollingMean returns the arithmetic mean over a sliding window of the given
// size. The first window-1 positions are NaN.
func RollingMean(values []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, errors.ErrInvalidWindow
	}
	out := make([]float64, len(values))
	for i := range values {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(window)
	}
	return out, nil
}

// RollingStd returns the population standard deviation over the same window
// semantics as RollingMean, including the NaN warm-up.
func RollingStd(values []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, errors.ErrInvalidWindow
	}
	out := make([]float64, len(values))
	for i := range values {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		mean := 0.0
		for j := i - window + 1; j <= i; j++ {
			mean += values[j]
		}
		mean /= float64(window)
		variance := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean
			variance += d * d
		}
		out[i] = math.Sqrt(variance / float64(window))
	}
	return out, nil
}

// ExponentialMean returns the exponentially weighted mean with
// alpha = 2/(span+1), seeded from the first value. Every position of a
// non-empty input is defined; there is no warm-up gap.
func ExponentialMean(values []float64, span int) ([]float64, error) {
	if span < 1 {
		return nil, errors.ErrInvalidWindow
	}
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out, nil
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out, nil
}

// PercentChange returns the fractional period-over-period changes, length
// n-1. A zero previous value yields NaN; SampleStd skips those positions.
func PercentChange(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			out[i-1] = math.NaN()
			continue
		}
		out[i-1] = (values[i] - prev) / prev
	}
	return out
}

// Max returns the largest value of the slice, NaN for empty input.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	out := values[0]
	for _, v := range values[1:] {
		if v > out {
			out = v
		}
	}
	return out
}

// Min returns the smallest value of the slice, NaN for empty input.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	out := values[0]
	for _, v := range values[1:] {
		if v < out {
			out = v
		}
	}
	return out
}

// Mean returns the arithmetic mean of the whole slice, NaN for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleStd returns the n-1 denominator standard deviation of the slice,
// ignoring NaN positions. NaN when fewer than two valid values remain.
func SampleStd(values []float64) float64 {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) < 2 {
		return math.NaN()
	}
	mean := Mean(valid)
	variance := 0.0
	for _, v := range valid {
		d := v - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(valid)-1))
}
