package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"marketlens/internal/errors"
	"marketlens/internal/models"
)

// barRecord is the expected CSV row shape. The header must carry the
// lowercase column names: date,open,high,low,close,volume.
type barRecord struct {
	Date   csvDate `csv:"date"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume int64   `csv:"volume"`
}

// csvDate accepts plain dates and RFC 3339 timestamps.
type csvDate struct {
	time.Time
}

func (d *csvDate) UnmarshalCSV(value string) error {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", value)
}

// CSVProvider reads one file of bars per instrument from a directory,
// named <INSTRUMENT>.csv with the instrument uppercased.
type CSVProvider struct {
	dir string
}

// NewCSVProvider creates a provider over a directory of bar files.
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{dir: dir}
}

// Path returns the file an instrument resolves to.
func (p *CSVProvider) Path(instrument string) string {
	return filepath.Join(p.dir, strings.ToUpper(instrument)+".csv")
}

func (p *CSVProvider) History(ctx context.Context, instrument string) (models.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := p.Path(instrument)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewDataError("history", instrument, "no data file", errors.ErrPriceUnavailable)
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var rows []*barRecord
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, errors.NewDataError("history", instrument, "malformed csv", err)
	}

	bars := make(models.PriceSeries, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, models.Bar{
			Timestamp: r.Date.Time,
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Volume:    r.Volume,
		})
	}
	if err := bars.Validate(); err != nil {
		return nil, errors.NewDataError("history", instrument, "corrupt series", err)
	}
	return bars, nil
}

func (p *CSVProvider) Quote(ctx context.Context, instrument string) (*models.Quote, error) {
	s, err := p.History(ctx, instrument)
	if err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return nil, errors.NewDataError("quote", instrument, "empty series", errors.ErrPriceUnavailable)
	}
	return quoteFromSeries(instrument, s), nil
}
