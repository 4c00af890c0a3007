// Package portfolio values holdings against current prices.
package portfolio

import (
	"context"

	"marketlens/internal/models"
)

// Quoter supplies the current price of an instrument. marketdata.Provider
// satisfies it.
type Quoter interface {
	Quote(ctx context.Context, instrument string) (*models.Quote, error)
}

// Value prices each holding and derives portfolio weights. A failed quote
// becomes an error entry for that instrument while the others still
// compute; the valuation itself never fails. Share counts are taken as
// given, zero and negative included.
func Value(ctx context.Context, quoter Quoter, holdings map[string]float64) *models.PortfolioValuation {
	valuation := &models.PortfolioValuation{
		Positions: len(holdings),
		Holdings:  make(map[string]models.Holding, len(holdings)),
	}

	total := 0.0
	for instrument, shares := range holdings {
		quote, err := quoter.Quote(ctx, instrument)
		if err != nil {
			valuation.Holdings[instrument] = models.Holding{Error: err.Error()}
			continue
		}
		value := quote.Price * shares
		valuation.Holdings[instrument] = models.Holding{
			Shares: shares,
			Price:  quote.Price,
			Value:  value,
		}
		total += value
	}
	valuation.TotalValue = total

	// Weights are percentages of the total; a non-positive total leaves
	// every weight zero rather than dividing.
	if total > 0 {
		for instrument, h := range valuation.Holdings {
			if h.Error != "" {
				continue
			}
			h.WeightPercent = h.Value / total * 100
			valuation.Holdings[instrument] = h
		}
	}

	return valuation
}
