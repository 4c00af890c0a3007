package marketdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketlens/internal/errors"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

const acmeCSV = `date,open,high,low,close,volume
2026-06-01,100.0,103.0,99.0,102.0,1200
2026-06-02,102.0,106.5,101.0,105.0,1500
2026-06-03,105.0,105.5,98.5,99.0,2400
`

// TestCSVProviderHistory verifies parsing of a well-formed bar file.
func TestCSVProviderHistory(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "ACME.csv", acmeCSV)

	provider := NewCSVProvider(dir)
	s, err := provider.History(context.Background(), "ACME")
	require.NoError(t, err)
	require.Len(t, s, 3)

	first := s[0]
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), first.Timestamp)
	assert.InDelta(t, 100.0, first.Open, 1e-9)
	assert.InDelta(t, 103.0, first.High, 1e-9)
	assert.InDelta(t, 99.0, first.Low, 1e-9)
	assert.InDelta(t, 102.0, first.Close, 1e-9)
	assert.Equal(t, int64(1200), first.Volume)

	assert.InDelta(t, 99.0, s[2].Close, 1e-9)
}

// TestCSVProviderUppercasesInstrument verifies that lookups are
// case-insensitive on the instrument name.
func TestCSVProviderUppercasesInstrument(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "ACME.csv", acmeCSV)

	provider := NewCSVProvider(dir)
	assert.Equal(t, filepath.Join(dir, "ACME.csv"), provider.Path("acme"))

	s, err := provider.History(context.Background(), "acme")
	require.NoError(t, err)
	assert.Len(t, s, 3)
}

// TestCSVProviderMissingFile verifies the sentinel for an absent data file.
func TestCSVProviderMissingFile(t *testing.T) {
	provider := NewCSVProvider(t.TempDir())

	_, err := provider.History(context.Background(), "GHOST")
	assert.ErrorIs(t, err, errors.ErrPriceUnavailable)
}

// TestCSVProviderMalformedFile verifies that unparseable rows fail the load.
func TestCSVProviderMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "BAD.csv", "date,open,high,low,close,volume\n2026-06-01,abc,103.0,99.0,102.0,1200\n")

	provider := NewCSVProvider(dir)
	_, err := provider.History(context.Background(), "BAD")
	assert.Error(t, err)
}

// TestCSVProviderRejectsDisorder verifies that out-of-order rows fail the
// ordering check.
func TestCSVProviderRejectsDisorder(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "DIS.csv", `date,open,high,low,close,volume
2026-06-02,102.0,106.5,101.0,105.0,1500
2026-06-01,100.0,103.0,99.0,102.0,1200
`)

	provider := NewCSVProvider(dir)
	_, err := provider.History(context.Background(), "DIS")
	assert.ErrorIs(t, err, errors.ErrSeriesOrder)
}

// TestCSVProviderRejectsDuplicateDates verifies that equal timestamps are
// treated as disorder.
func TestCSVProviderRejectsDuplicateDates(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "DUP.csv", `date,open,high,low,close,volume
2026-06-01,100.0,103.0,99.0,102.0,1200
2026-06-01,102.0,106.5,101.0,105.0,1500
`)

	provider := NewCSVProvider(dir)
	_, err := provider.History(context.Background(), "DUP")
	assert.ErrorIs(t, err, errors.ErrSeriesOrder)
}

// TestCSVProviderTimestampDates verifies the RFC 3339 date fallback.
func TestCSVProviderTimestampDates(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "TS.csv", `date,open,high,low,close,volume
2026-06-01T10:00:00Z,100.0,103.0,99.0,102.0,1200
2026-06-01T11:00:00Z,102.0,106.5,101.0,105.0,1500
`)

	provider := NewCSVProvider(dir)
	s, err := provider.History(context.Background(), "TS")
	require.NoError(t, err)
	require.Len(t, s, 2)
	assert.Equal(t, 10, s[0].Timestamp.Hour())
}

// TestCSVProviderQuote verifies that the quote derives from the last two
// rows of the file.
func TestCSVProviderQuote(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "ACME.csv", acmeCSV)

	provider := NewCSVProvider(dir)
	q, err := provider.Quote(context.Background(), "ACME")
	require.NoError(t, err)

	assert.InDelta(t, 99.0, q.Price, 1e-9)
	assert.InDelta(t, 105.0, q.PreviousClose, 1e-9)
	assert.InDelta(t, -6.0, q.Change, 1e-9)
	assert.InDelta(t, -6.0/105.0*100, q.ChangePercent, 1e-9)
	assert.Equal(t, int64(2400), q.Volume)
}

// TestCSVProviderContextCancelled verifies that a dead context short-circuits
// before any file access.
func TestCSVProviderContextCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "ACME.csv", acmeCSV)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := NewCSVProvider(dir)
	_, err := provider.History(ctx, "ACME")
	assert.ErrorIs(t, err, context.Canceled)
}

// TestCSVProviderEmptyFile verifies that a header-only file quotes as
// unavailable.
func TestCSVProviderEmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "EMPTY.csv", "date,open,high,low,close,volume\n")

	provider := NewCSVProvider(dir)

	s, err := provider.History(context.Background(), "EMPTY")
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = provider.Quote(context.Background(), "EMPTY")
	assert.ErrorIs(t, err, errors.ErrPriceUnavailable)
}
