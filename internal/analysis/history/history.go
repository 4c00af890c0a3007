// Package history condenses a price series into headline statistics:
// period extremes, total return and realized volatility.
package history

import (
	"math"

	"marketlens/internal/analysis/series"
	"marketlens/internal/errors"
	"marketlens/internal/models"
)

// DefaultRecentCloses is how many trailing closes the summary echoes back.
const DefaultRecentCloses = 30

// Summarize computes the summary for one instrument. Total return is absent
// when the first close is zero; volatility is the sample standard deviation
// of period-over-period returns, absent below three bars.
func Summarize(instrument string, s models.PriceSeries) (*models.HistorySummary, error) {
	if len(s) == 0 {
		return nil, errors.NewDataError("history", instrument, "empty series", errors.ErrNoData)
	}

	closes := s.Closes()
	first := s[0]
	last := s[len(s)-1]

	volumes := s.Volumes()
	volumeSum := 0.0
	for _, v := range volumes {
		volumeSum += float64(v)
	}

	start := len(closes) - DefaultRecentCloses
	if start < 0 {
		start = 0
	}

	summary := &models.HistorySummary{
		Instrument:   instrument,
		DataPoints:   len(s),
		Start:        first.Timestamp,
		End:          last.Timestamp,
		LatestClose:  last.Close,
		PeriodHigh:   series.Max(s.Highs()),
		PeriodLow:    series.Min(s.Lows()),
		AvgVolume:    int64(volumeSum / float64(len(s))),
		RecentCloses: append([]float64(nil), closes[start:]...),
	}

	if first.Close != 0 {
		totalReturn := (last.Close/first.Close - 1) * 100
		summary.TotalReturnPct = &totalReturn
	}

	if vol := series.SampleStd(series.PercentChange(closes)) * 100; !math.IsNaN(vol) {
		summary.VolatilityPct = &vol
	}

	return summary, nil
}
