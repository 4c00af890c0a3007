// Package momentum measures percent returns over fixed lookback horizons
// and grades their average into strength and direction.
package momentum

import (
	"fmt"
	"math"

	"marketlens/internal/analysis/series"
	"marketlens/internal/errors"
	"marketlens/internal/models"
)

// Default strength thresholds on the absolute average return percent.
const (
	DefaultStrongThreshold   = 5.0
	DefaultModerateThreshold = 2.0
)

// Config holds the analyzer horizons and strength thresholds.
type Config struct {
	Horizons []int
	Strong   float64
	Moderate float64
}

// DefaultConfig returns horizons of 1, 5, 10, 20 and 30 periods with the
// standard strength thresholds.
func DefaultConfig() Config {
	return Config{
		Horizons: []int{1, 5, 10, 20, 30},
		Strong:   DefaultStrongThreshold,
		Moderate: DefaultModerateThreshold,
	}
}

// Validate checks the configured horizons and thresholds.
func (c Config) Validate() error {
	if len(c.Horizons) == 0 {
		return errors.NewValidationError("horizons", c.Horizons, "at least one horizon required")
	}
	for _, h := range c.Horizons {
		if h < 1 {
			return errors.ErrInvalidWindow
		}
	}
	if c.Moderate <= 0 || c.Strong <= c.Moderate {
		return errors.NewValidationError("strength_thresholds", c.Strong, "need 0 < moderate < strong")
	}
	return nil
}

// Analyzer grades recent percent returns. Stateless and safe for concurrent
// use.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an Analyzer with a validated configuration.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{cfg: cfg}, nil
}

// Analyze computes the percent return over each configured horizon the
// series can cover; horizons needing more bars than exist are omitted
// rather than computed on a partial window. With no qualifying horizon the
// report carries no average and reads WEAK/NEUTRAL.
func (a *Analyzer) Analyze(instrument string, s models.PriceSeries) (*models.MomentumReport, error) {
	if len(s) == 0 {
		return nil, errors.NewDataError("momentum", instrument, "empty series", errors.ErrNoData)
	}

	closes := s.Closes()
	price := closes[len(closes)-1]

	returns := make(map[string]float64)
	computed := make([]float64, 0, len(a.cfg.Horizons))
	for _, h := range a.cfg.Horizons {
		if len(closes) <= h {
			continue
		}
		past := closes[len(closes)-1-h]
		if past == 0 {
			// Return from a zero price is undefined.
			continue
		}
		ret := (price - past) / past * 100
		returns[fmt.Sprintf("%dd", h)] = ret
		computed = append(computed, ret)
	}

	report := &models.MomentumReport{
		Instrument:   instrument,
		CurrentPrice: price,
		Returns:      returns,
		Strength:     models.StrengthWeak,
		Direction:    models.SignalNeutral,
	}
	if len(computed) == 0 {
		return report, nil
	}

	avg := series.Mean(computed)
	report.AverageReturn = &avg

	switch {
	case math.Abs(avg) > a.cfg.Strong:
		report.Strength = models.StrengthStrong
	case math.Abs(avg) > a.cfg.Moderate:
		report.Strength = models.StrengthModerate
	}
	switch {
	case avg > 0:
		report.Direction = models.SignalBullish
	case avg < 0:
		report.Direction = models.SignalBearish
	}

	return report, nil
}
