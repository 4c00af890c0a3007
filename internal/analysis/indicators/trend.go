package indicators

import (
	"fmt"
	"math"

	"marketlens/internal/analysis/series"
	"marketlens/internal/errors"
	"marketlens/internal/models"
)

// MACD calculates Moving Average Convergence Divergence. Both EMAs and the
// signal line use the seed-from-first exponential mean, so every position of
// a non-empty series is defined.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// MACDSeries holds the three MACD output lines aligned to the input closes.
type MACDSeries struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// NewMACD creates a new MACD indicator with the given spans (default 12, 26, 9).
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
	}
}

func (m *MACD) Name() string {
	return fmt.Sprintf("MACD_%d_%d_%d", m.fastPeriod, m.slowPeriod, m.signalPeriod)
}

func (m *MACD) Calculate(closes []float64) (*MACDSeries, error) {
	if m.fastPeriod < 1 || m.slowPeriod < 1 || m.signalPeriod < 1 {
		return nil, errors.ErrInvalidWindow
	}

	fastEMA, err := series.ExponentialMean(closes, m.fastPeriod)
	if err != nil {
		return nil, err
	}
	slowEMA, err := series.ExponentialMean(closes, m.slowPeriod)
	if err != nil {
		return nil, err
	}

	macdLine := make([]float64, len(closes))
	for i := range closes {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine, err := series.ExponentialMean(macdLine, m.signalPeriod)
	if err != nil {
		return nil, err
	}

	histogram := make([]float64, len(closes))
	for i := range closes {
		histogram[i] = macdLine[i] - signalLine[i]
	}

	return &MACDSeries{
		MACD:      macdLine,
		Signal:    signalLine,
		Histogram: histogram,
	}, nil
}

// InterpretMACD reads the crossover state from the latest MACD values:
// BULLISH only when the MACD line is above the signal line with a positive
// histogram, BEARISH only in the mirrored case. NaN inputs fall through to
// NEUTRAL.
func InterpretMACD(macd, signal, histogram float64) models.Signal {
	switch {
	case macd > signal && histogram > 0:
		return models.SignalBullish
	case macd < signal && histogram < 0:
		return models.SignalBearish
	default:
		return models.SignalNeutral
	}
}

// ClassifyTrend places the current price against the 50 and 20 period
// averages. The rules are evaluated only once SMA50 is defined; the STRONG
// variants additionally require SMA50 on the far side of SMA20.
func ClassifyTrend(price, sma20, sma50 float64) models.Trend {
	if math.IsNaN(sma50) {
		return models.TrendNeutral
	}
	switch {
	case price > sma50 && sma50 > sma20:
		return models.TrendStrongUptrend
	case price > sma50:
		return models.TrendUptrend
	case price < sma50 && sma50 < sma20:
		return models.TrendStrongDowntrend
	case price < sma50:
		return models.TrendDowntrend
	default:
		return models.TrendNeutral
	}
}
