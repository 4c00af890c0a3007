package indicators

import (
	"fmt"

	"marketlens/internal/analysis/series"
	"marketlens/internal/errors"
)

// BollingerBands calculates Bollinger Bands around a rolling mean, using the
// population standard deviation of the same window.
type BollingerBands struct {
	period    int
	stdDevMul float64
}

// BandSeries holds the band lines aligned to the input closes. Warm-up
// positions are NaN like the underlying rolling statistics.
type BandSeries struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
}

// NewBollingerBands creates a new Bollinger Bands indicator.
func NewBollingerBands(period int, stdDevMul float64) *BollingerBands {
	return &BollingerBands{
		period:    period,
		stdDevMul: stdDevMul,
	}
}

func (b *BollingerBands) Name() string {
	return fmt.Sprintf("BollingerBands_%d_%.1f", b.period, b.stdDevMul)
}

func (b *BollingerBands) Period() int {
	return b.period
}

func (b *BollingerBands) Calculate(closes []float64) (*BandSeries, error) {
	if b.period < 1 {
		return nil, errors.ErrInvalidWindow
	}

	middle, err := series.RollingMean(closes, b.period)
	if err != nil {
		return nil, err
	}
	std, err := series.RollingStd(closes, b.period)
	if err != nil {
		return nil, err
	}

	n := len(closes)
	upper := make([]float64, n)
	lower := make([]float64, n)
	for i := 0; i < n; i++ {
		upper[i] = middle[i] + b.stdDevMul*std[i]
		lower[i] = middle[i] - b.stdDevMul*std[i]
	}

	return &BandSeries{
		Middle: middle,
		Upper:  upper,
		Lower:  lower,
	}, nil
}

// BandPosition places a price inside the band on a 0..1 scale: 0 at the
// lower band, 1 at the upper. A zero-width band reads 0.5. Prices outside
// the bands extend beyond the scale; the value is not clamped.
func BandPosition(price, upper, lower float64) float64 {
	width := upper - lower
	if width == 0 {
		return 0.5
	}
	return (price - lower) / width
}
