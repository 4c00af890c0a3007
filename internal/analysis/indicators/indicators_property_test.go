package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"marketlens/internal/models"
)

// Property: for any positive close sequence, indicator outputs stay within
// their mathematically defined bounds:
// - RSI: [0, 100]
// - Bollinger: Lower <= Middle <= Upper
// - MACD: Histogram == MACD - Signal at every position

// closesGen generates a slice of positive close prices.
func closesGen(minLen, maxLen int) gopter.Gen {
	return gen.SliceOfN(maxLen, gen.Float64Range(1.0, 1000.0)).Map(func(closes []float64) []float64 {
		if len(closes) < minLen {
			// Pad with copies if shrinking shortened the slice
			for len(closes) < minLen {
				closes = append(closes, closes[len(closes)-1])
			}
		}
		for i, v := range closes {
			// Re-validate after shrinking
			if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				closes[i] = 100.0
			}
		}
		return closes
	})
}

func TestProperty_RSIWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("RSI values are within [0, 100]", prop.ForAll(
		func(closes []float64) bool {
			rsi := NewRSI(14)
			values, err := rsi.Calculate(closes)
			if err != nil {
				return false
			}
			for _, v := range values {
				if math.IsNaN(v) {
					// Warm-up or flat window
					continue
				}
				if v < 0 || v > 100 {
					return false
				}
			}
			return true
		},
		closesGen(20, 100),
	))

	properties.TestingRun(t)
}

func TestProperty_BollingerBandOrdering(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Lower <= Middle <= Upper wherever the bands are defined", prop.ForAll(
		func(closes []float64) bool {
			bands := NewBollingerBands(20, 2.0)
			out, err := bands.Calculate(closes)
			if err != nil {
				return false
			}
			for i := range out.Middle {
				if math.IsNaN(out.Middle[i]) {
					continue
				}
				if out.Lower[i] > out.Middle[i]+1e-9 || out.Middle[i] > out.Upper[i]+1e-9 {
					return false
				}
			}
			return true
		},
		closesGen(25, 100),
	))

	properties.TestingRun(t)
}

func TestProperty_MACDHistogramIdentity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Histogram equals MACD minus signal at every position", prop.ForAll(
		func(closes []float64) bool {
			macd := NewMACD(12, 26, 9)
			out, err := macd.Calculate(closes)
			if err != nil {
				return false
			}
			for i := range out.MACD {
				if math.Abs(out.Histogram[i]-(out.MACD[i]-out.Signal[i])) > 1e-9 {
					return false
				}
			}
			return true
		},
		closesGen(30, 100),
	))

	properties.TestingRun(t)
}

func TestProperty_ReportSignalsWellFormed(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	allowedSignals := map[models.Signal]bool{
		models.SignalBullish:    true,
		models.SignalBearish:    true,
		models.SignalNeutral:    true,
		models.SignalOversold:   true,
		models.SignalOverbought: true,
	}
	allowedTrends := map[models.Trend]bool{
		models.TrendStrongUptrend:   true,
		models.TrendUptrend:         true,
		models.TrendNeutral:         true,
		models.TrendDowntrend:       true,
		models.TrendStrongDowntrend: true,
	}

	analyzer, err := NewAnalyzer(DefaultConfig())
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}

	properties.Property("reports carry only known signal and trend states", prop.ForAll(
		func(closes []float64) bool {
			report, err := analyzer.Analyze("PROP", seriesFromCloses(closes))
			if err != nil {
				return false
			}
			if !allowedSignals[report.Signals.Overall] {
				return false
			}
			if !allowedTrends[report.Trend] {
				return false
			}
			if report.RSI.Value != nil && (*report.RSI.Value < 0 || *report.RSI.Value > 100) {
				return false
			}
			if report.Bollinger != nil {
				if report.Bollinger.Lower > report.Bollinger.Upper+1e-9 {
					return false
				}
			}
			return true
		},
		closesGen(30, 120),
	))

	properties.TestingRun(t)
}
