// Package levels derives candidate support and resistance levels from
// period extremes, a recent-window scan and psychological round numbers.
package levels

import (
	"marketlens/internal/analysis/series"
	"marketlens/internal/errors"
	"marketlens/internal/models"
	"marketlens/pkg/utils"
)

// DefaultRecentWindow is the bar count of the recent high/low scan.
const DefaultRecentWindow = 20

// Config holds the detection window and psychological granularities.
type Config struct {
	RecentWindow  int
	Granularities []float64
}

// DefaultConfig returns the 20-bar recent window with round-number
// granularities of 10 and 5.
func DefaultConfig() Config {
	return Config{
		RecentWindow:  DefaultRecentWindow,
		Granularities: []float64{10, 5},
	}
}

// Validate checks the configured window and granularities.
func (c Config) Validate() error {
	if c.RecentWindow < 1 {
		return errors.ErrInvalidWindow
	}
	for _, g := range c.Granularities {
		if g <= 0 {
			return errors.NewValidationError("granularities", g, "must be positive")
		}
	}
	return nil
}

// Detector lists candidate levels for a series. Stateless and safe for
// concurrent use.
type Detector struct {
	cfg Config
}

// NewDetector creates a Detector with a validated configuration.
func NewDetector(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Detector{cfg: cfg}, nil
}

// Detect computes the level report for one instrument. Candidates are
// ordered by significance: the full-period extreme first, then the
// recent-window extreme. Duplicates are kept when the windows coincide.
func (d *Detector) Detect(instrument string, s models.PriceSeries) (*models.LevelReport, error) {
	if len(s) == 0 {
		return nil, errors.NewDataError("levels", instrument, "empty series", errors.ErrNoData)
	}

	highs := s.Highs()
	lows := s.Lows()
	closes := s.Closes()
	price := closes[len(closes)-1]

	start := len(s) - d.cfg.RecentWindow
	if start < 0 {
		start = 0
	}

	periodHigh := series.Max(highs)
	periodLow := series.Min(lows)
	recentHigh := series.Max(highs[start:])
	recentLow := series.Min(lows[start:])

	psychological := make([]float64, 0, len(d.cfg.Granularities))
	for _, g := range d.cfg.Granularities {
		psychological = append(psychological, utils.RoundToNearest(price, g))
	}

	return &models.LevelReport{
		Instrument:    instrument,
		CurrentPrice:  price,
		PeriodHigh:    periodHigh,
		PeriodLow:     periodLow,
		RecentHigh:    recentHigh,
		RecentLow:     recentLow,
		Resistance:    []float64{periodHigh, recentHigh},
		Support:       []float64{periodLow, recentLow},
		Psychological: psychological,
	}, nil
}
