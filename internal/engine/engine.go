// Package engine fans multi-instrument analysis out over a worker pool.
// Failures stay on the failing instrument's result; a batch never fails
// wholesale.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"marketlens/internal/analysis/history"
	"marketlens/internal/analysis/indicators"
	"marketlens/internal/analysis/levels"
	"marketlens/internal/analysis/momentum"
	"marketlens/internal/marketdata"
	"marketlens/internal/models"
	"marketlens/internal/portfolio"
	"marketlens/internal/sentiment"
)

// DefaultWorkers is the pool size used when the config leaves it zero.
const DefaultWorkers = 4

// Config wires the engine's analyzers and pool size.
type Config struct {
	Workers    int
	Indicators indicators.Config
	Momentum   momentum.Config
	Levels     levels.Config
}

// DefaultConfig returns the default analyzer settings with DefaultWorkers.
func DefaultConfig() Config {
	return Config{
		Workers:    DefaultWorkers,
		Indicators: indicators.DefaultConfig(),
		Momentum:   momentum.DefaultConfig(),
		Levels:     levels.DefaultConfig(),
	}
}

// Result carries everything computed for one instrument. Err is set when
// the provider or an analyzer failed; sibling instruments are unaffected.
type Result struct {
	Instrument string                  `json:"instrument"`
	Indicators *models.IndicatorReport `json:"indicators,omitempty"`
	Momentum   *models.MomentumReport  `json:"momentum,omitempty"`
	Levels     *models.LevelReport     `json:"levels,omitempty"`
	Summary    *models.HistorySummary  `json:"summary,omitempty"`
	Error      string                  `json:"error,omitempty"`
	Err        error                   `json:"-"`
}

func (r *Result) fail(err error) *Result {
	r.Err = err
	r.Error = err.Error()
	return r
}

// Engine runs analyses against a provider through a shared worker pool.
// Safe for concurrent use.
type Engine struct {
	provider   marketdata.Provider
	pool       *WorkerPool
	indicators *indicators.Analyzer
	momentum   *momentum.Analyzer
	levels     *levels.Detector
	logger     zerolog.Logger
}

// New creates an Engine with validated analyzer configurations and starts
// its pool. Callers own the engine's lifecycle and must Close it.
func New(provider marketdata.Provider, cfg Config, logger zerolog.Logger) (*Engine, error) {
	ia, err := indicators.NewAnalyzer(cfg.Indicators)
	if err != nil {
		return nil, err
	}
	ma, err := momentum.NewAnalyzer(cfg.Momentum)
	if err != nil {
		return nil, err
	}
	ld, err := levels.NewDetector(cfg.Levels)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	pool := NewWorkerPool(workers)
	pool.Start()

	return &Engine{
		provider:   provider,
		pool:       pool,
		indicators: ia,
		momentum:   ma,
		levels:     ld,
		logger:     logger,
	}, nil
}

// Close stops the worker pool.
func (e *Engine) Close() {
	e.pool.Stop()
}

// Stats exposes the pool counters.
func (e *Engine) Stats() PoolStats {
	return e.pool.Stats()
}

// Analyze runs the full set of analyses for one instrument. The error, if
// any, is recorded on the result rather than returned.
func (e *Engine) Analyze(ctx context.Context, instrument string) *Result {
	res := &Result{Instrument: instrument}

	s, err := e.provider.History(ctx, instrument)
	if err != nil {
		return res.fail(err)
	}

	if res.Indicators, err = e.indicators.Analyze(instrument, s); err != nil {
		return res.fail(err)
	}
	if res.Momentum, err = e.momentum.Analyze(instrument, s); err != nil {
		return res.fail(err)
	}
	if res.Levels, err = e.levels.Detect(instrument, s); err != nil {
		return res.fail(err)
	}
	if res.Summary, err = history.Summarize(instrument, s); err != nil {
		return res.fail(err)
	}

	e.logger.Debug().
		Str("instrument", instrument).
		Str("trend", string(res.Indicators.Trend)).
		Str("signal", string(res.Indicators.Signals.Overall)).
		Msg("analysis complete")
	return res
}

// AnalyzeAll fans a batch out over the pool and returns one entry per
// requested instrument. Identical inputs produce identical per-instrument
// results regardless of worker interleaving; cancellation surfaces as the
// context error on the instruments still pending.
func (e *Engine) AnalyzeAll(ctx context.Context, instruments []string) map[string]*Result {
	started := time.Now()
	results := make(map[string]*Result, len(instruments))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, instrument := range instruments {
		instrument := instrument
		wg.Add(1)
		task := func() {
			defer wg.Done()
			res := e.Analyze(ctx, instrument)
			mu.Lock()
			results[instrument] = res
			mu.Unlock()
		}
		if !e.pool.Submit(task) {
			// Pool stopped or queue full: run on the caller.
			task()
		}
	}
	wg.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	e.logger.Info().
		Int("requested", len(instruments)).
		Int("failed", failed).
		Dur("elapsed", time.Since(started)).
		Msg("batch analysis complete")
	return results
}

// Quote returns the provider's latest quote for one instrument.
func (e *Engine) Quote(ctx context.Context, instrument string) (*models.Quote, error) {
	return e.provider.Quote(ctx, instrument)
}

// ValuePortfolio prices holdings through the engine's provider. Lookup
// failures isolate to their own holding entries.
func (e *Engine) ValuePortfolio(ctx context.Context, holdings map[string]float64) *models.PortfolioValuation {
	return portfolio.Value(ctx, e.provider, holdings)
}

// MarketSentiment combines supplied headlines and recommendation with the
// instrument's price action.
func (e *Engine) MarketSentiment(ctx context.Context, instrument string, headlines []string, recommendation string) (*models.MarketSentiment, error) {
	s, err := e.provider.History(ctx, instrument)
	if err != nil {
		return nil, err
	}
	return sentiment.MarketSentiment(instrument, s, headlines, recommendation), nil
}
