// Package sentiment scores supplied news headlines against fixed keyword
// lists and combines them with analyst-recommendation and price-action
// factors. Scoring is deterministic: nothing is fetched and no text is
// generated. Headlines come from the caller's own news source.
package sentiment

import (
	"math"
	"strings"

	"marketlens/internal/analysis/series"
	"marketlens/internal/models"
	"marketlens/pkg/utils"
)

// Thresholds for the aggregate labels and the price-action band.
const (
	PositiveThreshold = 0.2
	NegativeThreshold = -0.2
	BullishThreshold  = 0.3
	BearishThreshold  = -0.3
	PriceActionBand   = 0.05
	PriceActionWindow = 50
)

var positiveKeywords = []string{
	"rise", "gain", "profit", "growth", "beats",
	"exceeds", "strong", "bullish", "surge", "jump",
}

var negativeKeywords = []string{
	"fall", "loss", "decline", "weak", "miss",
	"warning", "bearish", "drop", "plunge", "crash",
}

// ScoreHeadline scores a single headline by case-insensitive keyword hits:
// more positive hits than negative reads +1, the reverse -1, a tie 0.
func ScoreHeadline(headline string) models.HeadlineScore {
	lower := strings.ToLower(headline)

	positives := 0
	for _, w := range positiveKeywords {
		if strings.Contains(lower, w) {
			positives++
		}
	}
	negatives := 0
	for _, w := range negativeKeywords {
		if strings.Contains(lower, w) {
			negatives++
		}
	}

	score := models.HeadlineScore{
		Headline:  headline,
		Sentiment: models.SentimentNeutral,
	}
	switch {
	case positives > negatives:
		score.Sentiment = models.SentimentPositive
		score.Score = 1
	case negatives > positives:
		score.Sentiment = models.SentimentNegative
		score.Score = -1
	}
	return score
}

// ScoreHeadlines aggregates per-headline scores into an average rounded to
// two decimals. No headlines reads as a neutral zero.
func ScoreHeadlines(instrument string, headlines []string) *models.SentimentReport {
	report := &models.SentimentReport{
		Instrument: instrument,
		Articles:   len(headlines),
		Overall:    models.SentimentNeutral,
		Headlines:  make([]models.HeadlineScore, 0, len(headlines)),
	}
	if len(headlines) == 0 {
		return report
	}

	total := 0
	for _, h := range headlines {
		scored := ScoreHeadline(h)
		report.Headlines = append(report.Headlines, scored)
		total += scored.Score
	}

	avg := float64(total) / float64(len(headlines))
	report.Score = utils.RoundTo(avg, 2)
	switch {
	case avg > PositiveThreshold:
		report.Overall = models.SentimentPositive
	case avg < NegativeThreshold:
		report.Overall = models.SentimentNegative
	}
	return report
}

// RecommendationScore maps an analyst recommendation string onto [-2, 2].
// Unrecognized input scores zero.
func RecommendationScore(recommendation string) float64 {
	rec := strings.ToLower(recommendation)
	switch {
	case strings.Contains(rec, "buy"):
		if strings.Contains(rec, "strong") {
			return 2
		}
		return 1
	case strings.Contains(rec, "sell"):
		if strings.Contains(rec, "strong") {
			return -2
		}
		return -1
	default:
		return 0
	}
}

// PriceActionScore reads +1 when the last close sits more than the band
// above its rolling average, -1 when more than the band below, 0 otherwise
// or when the average is undefined.
func PriceActionScore(s models.PriceSeries, window int) float64 {
	closes := s.Closes()
	if len(closes) == 0 {
		return 0
	}
	avg, err := series.RollingMean(closes, window)
	if err != nil {
		return 0
	}
	last := avg[len(avg)-1]
	if math.IsNaN(last) {
		return 0
	}

	price := closes[len(closes)-1]
	switch {
	case price > last*(1+PriceActionBand):
		return 1
	case price < last*(1-PriceActionBand):
		return -1
	default:
		return 0
	}
}

// MarketSentiment averages the three factors into a directional call:
// above 0.3 BULLISH, below -0.3 BEARISH, NEUTRAL between.
func MarketSentiment(instrument string, s models.PriceSeries, headlines []string, recommendation string) *models.MarketSentiment {
	news := ScoreHeadlines(instrument, headlines)
	recScore := RecommendationScore(recommendation)
	priceScore := PriceActionScore(s, PriceActionWindow)

	total := (recScore + priceScore + news.Score) / 3

	overall := models.SignalNeutral
	switch {
	case total > BullishThreshold:
		overall = models.SignalBullish
	case total < BearishThreshold:
		overall = models.SignalBearish
	}

	return &models.MarketSentiment{
		Instrument:          instrument,
		Overall:             overall,
		Score:               utils.RoundTo(total, 2),
		RecommendationScore: recScore,
		PriceActionScore:    priceScore,
		NewsScore:           news.Score,
	}
}
