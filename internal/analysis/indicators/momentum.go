package indicators

import (
	"fmt"
	"math"

	"marketlens/internal/analysis/series"
	"marketlens/internal/errors"
	"marketlens/internal/models"
)

// RSI calculates the Relative Strength Index from rolling-mean gains and
// losses over the period. The first bar has no delta, so the first defined
// position is index period.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator.
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

func (r *RSI) Name() string {
	return fmt.Sprintf("RSI_%d", r.period)
}

func (r *RSI) Period() int {
	return r.period
}

// Calculate returns the RSI sequence aligned to the input closes. Undefined
// positions are NaN: the warm-up, and any position whose window saw neither
// gains nor losses. A zero average loss against a positive average gain
// saturates to 100.
func (r *RSI) Calculate(closes []float64) ([]float64, error) {
	if r.period < 1 {
		return nil, errors.ErrInvalidWindow
	}

	n := len(closes)
	result := make([]float64, n)
	for i := range result {
		result[i] = math.NaN()
	}
	if n < 2 {
		return result, nil
	}

	gains := make([]float64, n-1)
	losses := make([]float64, n-1)
	for i := 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = -change
		}
	}

	avgGain, err := series.RollingMean(gains, r.period)
	if err != nil {
		return nil, err
	}
	avgLoss, err := series.RollingMean(losses, r.period)
	if err != nil {
		return nil, err
	}

	// Delta i-1 belongs to close i, so the first full window of deltas
	// lands at close index period.
	for i := r.period; i < n; i++ {
		gain, loss := avgGain[i-1], avgLoss[i-1]
		switch {
		case math.IsNaN(gain) || math.IsNaN(loss):
		case loss == 0 && gain == 0:
			// Flat window: relative strength undefined.
		case loss == 0:
			result[i] = 100
		default:
			rs := gain / loss
			result[i] = 100 - (100 / (1 + rs))
		}
	}

	return result, nil
}

// RSISignalFor classifies an RSI value against the given thresholds.
// Everything that is neither oversold nor overbought is NEUTRAL, the 40-60
// midband included. NaN (undefined RSI) classifies as NEUTRAL.
func RSISignalFor(value, oversold, overbought float64) models.RSISignal {
	switch {
	case value < oversold:
		return models.RSIOversold
	case value > overbought:
		return models.RSIOverbought
	default:
		return models.RSINeutral
	}
}
