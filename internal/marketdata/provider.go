// Package marketdata supplies price history and quotes from local sources.
// It is the boundary to the external data collaborator: implementations
// read files or memory, never the network. Lookups for instruments the
// source does not carry fail with ErrPriceUnavailable.
package marketdata

import (
	"context"
	"sync"

	"marketlens/internal/errors"
	"marketlens/internal/models"
)

// Provider defines the interface for market data lookups.
type Provider interface {
	History(ctx context.Context, instrument string) (models.PriceSeries, error)
	Quote(ctx context.Context, instrument string) (*models.Quote, error)
}

// StaticProvider serves series preloaded in memory. It is the library
// embedding path and the test double.
type StaticProvider struct {
	mu     sync.RWMutex
	series map[string]models.PriceSeries
}

// NewStaticProvider creates an empty StaticProvider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		series: make(map[string]models.PriceSeries),
	}
}

// Load validates and stores a series under an instrument name, replacing
// any previous one. The provider keeps the slice; the caller must not
// mutate it afterwards.
func (p *StaticProvider) Load(instrument string, s models.PriceSeries) error {
	if err := s.Validate(); err != nil {
		return errors.NewDataError("load", instrument, "rejected series", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.series[instrument] = s
	return nil
}

func (p *StaticProvider) History(ctx context.Context, instrument string) (models.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.series[instrument]
	if !ok {
		return nil, errors.NewDataError("history", instrument, "instrument not loaded", errors.ErrPriceUnavailable)
	}
	return s, nil
}

func (p *StaticProvider) Quote(ctx context.Context, instrument string) (*models.Quote, error) {
	s, err := p.History(ctx, instrument)
	if err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return nil, errors.NewDataError("quote", instrument, "empty series", errors.ErrPriceUnavailable)
	}
	return quoteFromSeries(instrument, s), nil
}

// quoteFromSeries derives the quote fields from the final two bars.
func quoteFromSeries(instrument string, s models.PriceSeries) *models.Quote {
	last := s[len(s)-1]
	q := &models.Quote{
		Instrument: instrument,
		Price:      last.Close,
		Volume:     last.Volume,
		Timestamp:  last.Timestamp,
	}
	if len(s) > 1 {
		prev := s[len(s)-2].Close
		q.PreviousClose = prev
		q.Change = last.Close - prev
		if prev != 0 {
			q.ChangePercent = q.Change / prev * 100
		}
	}
	return q
}
