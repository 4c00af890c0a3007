package marketdata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketlens/internal/errors"
	"marketlens/internal/models"
)

func testSeries(closes ...float64) models.PriceSeries {
	base := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	s := make(models.PriceSeries, len(closes))
	for i, c := range closes {
		s[i] = models.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    int64(1000 * (i + 1)),
		}
	}
	return s
}

// TestStaticProviderLifecycle verifies load, history and quote on the
// in-memory provider.
func TestStaticProviderLifecycle(t *testing.T) {
	provider := NewStaticProvider()
	require.NoError(t, provider.Load("ACME", testSeries(100, 104, 102)))

	s, err := provider.History(context.Background(), "ACME")
	require.NoError(t, err)
	require.Len(t, s, 3)
	assert.InDelta(t, 102.0, s[2].Close, 1e-9)

	q, err := provider.Quote(context.Background(), "ACME")
	require.NoError(t, err)
	assert.Equal(t, "ACME", q.Instrument)
	assert.InDelta(t, 102.0, q.Price, 1e-9)
	assert.InDelta(t, 104.0, q.PreviousClose, 1e-9)
	assert.InDelta(t, -2.0, q.Change, 1e-9)
	assert.InDelta(t, -2.0/104.0*100, q.ChangePercent, 1e-9)
	assert.Equal(t, int64(3000), q.Volume)
}

// TestStaticProviderUnknownInstrument verifies the sentinel for instruments
// that were never loaded.
func TestStaticProviderUnknownInstrument(t *testing.T) {
	provider := NewStaticProvider()

	_, err := provider.History(context.Background(), "GHOST")
	assert.ErrorIs(t, err, errors.ErrPriceUnavailable)

	_, err = provider.Quote(context.Background(), "GHOST")
	assert.ErrorIs(t, err, errors.ErrPriceUnavailable)
}

// TestStaticProviderRejectsDisorder verifies that Load enforces bar order.
func TestStaticProviderRejectsDisorder(t *testing.T) {
	provider := NewStaticProvider()

	s := testSeries(100, 101, 102)
	s[2].Timestamp = s[0].Timestamp

	err := provider.Load("ACME", s)
	assert.ErrorIs(t, err, errors.ErrSeriesOrder)

	_, err = provider.History(context.Background(), "ACME")
	assert.ErrorIs(t, err, errors.ErrPriceUnavailable, "rejected series must not be served")
}

// TestStaticProviderReplacesSeries verifies that a reload overwrites the
// previous series.
func TestStaticProviderReplacesSeries(t *testing.T) {
	provider := NewStaticProvider()
	require.NoError(t, provider.Load("ACME", testSeries(100)))
	require.NoError(t, provider.Load("ACME", testSeries(200, 210)))

	s, err := provider.History(context.Background(), "ACME")
	require.NoError(t, err)
	require.Len(t, s, 2)
	assert.InDelta(t, 210.0, s[1].Close, 1e-9)
}

// TestStaticProviderContextCancelled verifies that a dead context is
// honored before any lookup.
func TestStaticProviderContextCancelled(t *testing.T) {
	provider := NewStaticProvider()
	require.NoError(t, provider.Load("ACME", testSeries(100, 101)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.History(ctx, "ACME")
	assert.ErrorIs(t, err, context.Canceled)
}

// TestQuoteFromSingleBar verifies that one bar yields a quote without
// change fields.
func TestQuoteFromSingleBar(t *testing.T) {
	provider := NewStaticProvider()
	require.NoError(t, provider.Load("ACME", testSeries(150)))

	q, err := provider.Quote(context.Background(), "ACME")
	require.NoError(t, err)
	assert.InDelta(t, 150.0, q.Price, 1e-9)
	assert.Zero(t, q.PreviousClose)
	assert.Zero(t, q.Change)
	assert.Zero(t, q.ChangePercent)
}
