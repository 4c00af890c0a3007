// Package indicators builds aggregate technical snapshots from price series:
// moving averages, RSI, MACD and Bollinger Bands combined into a single
// report with trend and signal classification. All computations are pure; a
// field whose backing window exceeds the series length is absent from the
// report, never zero.
package indicators

import (
	"math"

	"marketlens/internal/analysis/series"
	"marketlens/internal/errors"
	"marketlens/internal/models"
)

// Default periods and thresholds for the aggregate report.
const (
	DefaultSMAShort        = 20
	DefaultSMAMid          = 50
	DefaultSMALong         = 200
	DefaultEMAShort        = 20
	DefaultEMALong         = 50
	DefaultRSIPeriod       = 14
	DefaultMACDFast        = 12
	DefaultMACDSlow        = 26
	DefaultMACDSignal      = 9
	DefaultBollingerPeriod = 20

	DefaultRSIOversold   = 30.0
	DefaultRSIOverbought = 70.0
	DefaultBollingerMult = 2.0
)

// Config holds the periods and thresholds for an aggregate report.
type Config struct {
	SMAShort int
	SMAMid   int
	SMALong  int
	EMAShort int
	EMALong  int

	RSIPeriod     int
	RSIOversold   float64
	RSIOverbought float64

	MACDFast   int
	MACDSlow   int
	MACDSignal int

	BollingerPeriod int
	BollingerMult   float64
}

// DefaultConfig returns the standard periods (SMA 20/50/200, EMA 20/50,
// RSI 14 at 30/70, MACD 12/26/9, Bollinger 20 at 2.0).
func DefaultConfig() Config {
	return Config{
		SMAShort:        DefaultSMAShort,
		SMAMid:          DefaultSMAMid,
		SMALong:         DefaultSMALong,
		EMAShort:        DefaultEMAShort,
		EMALong:         DefaultEMALong,
		RSIPeriod:       DefaultRSIPeriod,
		RSIOversold:     DefaultRSIOversold,
		RSIOverbought:   DefaultRSIOverbought,
		MACDFast:        DefaultMACDFast,
		MACDSlow:        DefaultMACDSlow,
		MACDSignal:      DefaultMACDSignal,
		BollingerPeriod: DefaultBollingerPeriod,
		BollingerMult:   DefaultBollingerMult,
	}
}

// Validate checks the configured periods and thresholds.
func (c Config) Validate() error {
	periods := []int{
		c.SMAShort, c.SMAMid, c.SMALong, c.EMAShort, c.EMALong,
		c.RSIPeriod, c.MACDFast, c.MACDSlow, c.MACDSignal, c.BollingerPeriod,
	}
	for _, p := range periods {
		if p < 1 {
			return errors.ErrInvalidWindow
		}
	}
	if c.BollingerMult <= 0 {
		return errors.NewValidationError("bollinger_mult", c.BollingerMult, "must be positive")
	}
	if c.RSIOversold >= c.RSIOverbought {
		return errors.NewValidationError("rsi_oversold", c.RSIOversold, "must be below the overbought threshold")
	}
	return nil
}

// Analyzer produces aggregate indicator reports from price series. It is
// stateless and safe for concurrent use.
type Analyzer struct {
	cfg   Config
	rsi   *RSI
	macd  *MACD
	bands *BollingerBands
}

// NewAnalyzer creates an Analyzer with a validated configuration.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{
		cfg:   cfg,
		rsi:   NewRSI(cfg.RSIPeriod),
		macd:  NewMACD(cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal),
		bands: NewBollingerBands(cfg.BollingerPeriod, cfg.BollingerMult),
	}, nil
}

// Analyze computes the full indicator report for one instrument. An empty
// series yields ErrNoData; a short series yields a report with the
// unreachable fields absent.
func (a *Analyzer) Analyze(instrument string, s models.PriceSeries) (*models.IndicatorReport, error) {
	if len(s) == 0 {
		return nil, errors.NewDataError("indicators", instrument, "empty series", errors.ErrNoData)
	}

	closes := s.Closes()
	price := closes[len(closes)-1]

	sma20, err := series.RollingMean(closes, a.cfg.SMAShort)
	if err != nil {
		return nil, err
	}
	sma50, err := series.RollingMean(closes, a.cfg.SMAMid)
	if err != nil {
		return nil, err
	}
	sma200, err := series.RollingMean(closes, a.cfg.SMALong)
	if err != nil {
		return nil, err
	}
	ema20, err := series.ExponentialMean(closes, a.cfg.EMAShort)
	if err != nil {
		return nil, err
	}
	ema50, err := series.ExponentialMean(closes, a.cfg.EMALong)
	if err != nil {
		return nil, err
	}

	rsiSeq, err := a.rsi.Calculate(closes)
	if err != nil {
		return nil, err
	}
	rsiValue := lastOf(rsiSeq)
	rsiSignal := RSISignalFor(rsiValue, a.cfg.RSIOversold, a.cfg.RSIOverbought)

	macdSeq, err := a.macd.Calculate(closes)
	if err != nil {
		return nil, err
	}
	macdValue := lastOf(macdSeq.MACD)
	signalValue := lastOf(macdSeq.Signal)
	histValue := lastOf(macdSeq.Histogram)
	macdCall := InterpretMACD(macdValue, signalValue, histValue)

	bandSeq, err := a.bands.Calculate(closes)
	if err != nil {
		return nil, err
	}
	var bollinger *models.BollingerBlock
	if mid := lastOf(bandSeq.Middle); !math.IsNaN(mid) {
		upper := lastOf(bandSeq.Upper)
		lower := lastOf(bandSeq.Lower)
		bollinger = &models.BollingerBlock{
			SMA:      mid,
			Upper:    upper,
			Lower:    lower,
			Width:    upper - lower,
			Position: BandPosition(price, upper, lower),
			Price:    price,
		}
	}

	trend := ClassifyTrend(price, lastOf(sma20), lastOf(sma50))

	// MACD speaks first; a neutral crossover defers to the RSI state.
	overall := macdCall
	if macdCall == models.SignalNeutral {
		overall = models.Signal(rsiSignal)
	}

	return &models.IndicatorReport{
		Instrument:   instrument,
		CurrentPrice: price,
		MovingAverages: models.MovingAverages{
			SMA20:  optional(lastOf(sma20)),
			SMA50:  optional(lastOf(sma50)),
			SMA200: optional(lastOf(sma200)),
			EMA20:  optional(lastOf(ema20)),
			EMA50:  optional(lastOf(ema50)),
		},
		RSI: models.RSIBlock{
			Value:  optional(rsiValue),
			Signal: rsiSignal,
		},
		MACD: models.MACDBlock{
			MACD:           optional(macdValue),
			Signal:         optional(signalValue),
			Histogram:      optional(histValue),
			Interpretation: macdCall,
		},
		Bollinger: bollinger,
		Trend:     trend,
		Signals: models.SignalSummary{
			Overall: overall,
			RSI:     rsiSignal,
			MACD:    macdCall,
			Trend:   trend,
		},
	}, nil
}

// lastOf returns the final value of a sequence, NaN for empty input.
func lastOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}

// optional converts a possibly-NaN value into an optional report field.
func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	out := v
	return &out
}
