// Package models provides domain models for the analytics engine.
package models

import "time"

// Report values use pointers for fields whose backing window can exceed the
// series length: absent serializes as omitted, never as zero.

// MovingAverages holds the simple and exponential averages of a report.
type MovingAverages struct {
	SMA20  *float64 `json:"sma_20,omitempty"`
	SMA50  *float64 `json:"sma_50,omitempty"`
	SMA200 *float64 `json:"sma_200,omitempty"`
	EMA20  *float64 `json:"ema_20,omitempty"`
	EMA50  *float64 `json:"ema_50,omitempty"`
}

// RSIBlock holds the RSI value and its classification.
type RSIBlock struct {
	Value  *float64  `json:"value,omitempty"`
	Signal RSISignal `json:"signal"`
}

// MACDBlock holds the MACD line, signal line, histogram and interpretation.
type MACDBlock struct {
	MACD           *float64 `json:"macd,omitempty"`
	Signal         *float64 `json:"signal,omitempty"`
	Histogram      *float64 `json:"histogram,omitempty"`
	Interpretation Signal   `json:"interpretation"`
}

// BollingerBlock holds the band snapshot at the last bar.
type BollingerBlock struct {
	SMA      float64 `json:"sma"`
	Upper    float64 `json:"upper_band"`
	Lower    float64 `json:"lower_band"`
	Width    float64 `json:"band_width"`
	Position float64 `json:"band_position"`
	Price    float64 `json:"price"`
}

// SignalSummary collects the individual signals and the overall call.
type SignalSummary struct {
	Overall Signal    `json:"overall"`
	RSI     RSISignal `json:"rsi"`
	MACD    Signal    `json:"macd"`
	Trend   Trend     `json:"trend"`
}

// IndicatorReport is the aggregate technical snapshot for one instrument.
type IndicatorReport struct {
	Instrument     string          `json:"instrument"`
	CurrentPrice   float64         `json:"current_price"`
	MovingAverages MovingAverages  `json:"moving_averages"`
	RSI            RSIBlock        `json:"rsi"`
	MACD           MACDBlock       `json:"macd"`
	Bollinger      *BollingerBlock `json:"bollinger_bands,omitempty"`
	Trend          Trend           `json:"trend"`
	Signals        SignalSummary   `json:"signals"`
}

// MomentumReport holds percent returns over the configured horizons.
// Returns is keyed "1d", "5d", ... and only contains horizons the series
// is long enough to cover.
type MomentumReport struct {
	Instrument    string             `json:"instrument"`
	CurrentPrice  float64            `json:"current_price"`
	Returns       map[string]float64 `json:"returns"`
	AverageReturn *float64           `json:"average_return,omitempty"`
	Strength      Strength           `json:"strength"`
	Direction     Signal             `json:"direction"`
}

// LevelReport lists candidate support/resistance levels ordered by
// significance. Duplicates are allowed when windows coincide.
type LevelReport struct {
	Instrument    string    `json:"instrument"`
	CurrentPrice  float64   `json:"current_price"`
	PeriodHigh    float64   `json:"period_high"`
	PeriodLow     float64   `json:"period_low"`
	RecentHigh    float64   `json:"recent_high_20"`
	RecentLow     float64   `json:"recent_low_20"`
	Resistance    []float64 `json:"resistance_levels"`
	Support       []float64 `json:"support_levels"`
	Psychological []float64 `json:"psychological_levels"`
}

// Holding is one instrument's slot in a portfolio valuation. A failed price
// lookup leaves the numeric fields zero and sets Error.
type Holding struct {
	Shares        float64 `json:"shares"`
	Price         float64 `json:"price"`
	Value         float64 `json:"value"`
	WeightPercent float64 `json:"weight_percent"`
	Error         string  `json:"error,omitempty"`
}

// PortfolioValuation is the valuation of a set of holdings. Positions counts
// every requested instrument, error entries included.
type PortfolioValuation struct {
	TotalValue float64            `json:"total_value"`
	Positions  int                `json:"positions"`
	Holdings   map[string]Holding `json:"holdings"`
}

// HistorySummary condenses a price series into headline statistics.
type HistorySummary struct {
	Instrument        string    `json:"instrument"`
	DataPoints        int       `json:"data_points"`
	Start             time.Time `json:"start_date"`
	End               time.Time `json:"end_date"`
	LatestClose       float64   `json:"latest_close"`
	PeriodHigh        float64   `json:"period_high"`
	PeriodLow         float64   `json:"period_low"`
	AvgVolume         int64     `json:"avg_volume"`
	TotalReturnPct    *float64  `json:"total_return_percent,omitempty"`
	VolatilityPct     *float64  `json:"volatility_percent,omitempty"`
	RecentCloses      []float64 `json:"recent_closes"`
}

// HeadlineScore is the per-headline outcome of keyword scoring.
type HeadlineScore struct {
	Headline  string    `json:"headline"`
	Sentiment Sentiment `json:"sentiment"`
	Score     int       `json:"score"`
}

// SentimentReport aggregates headline scores.
type SentimentReport struct {
	Instrument string          `json:"instrument"`
	Articles   int             `json:"articles"`
	Score      float64         `json:"score"`
	Overall    Sentiment       `json:"overall"`
	Headlines  []HeadlineScore `json:"headlines"`
}

// MarketSentiment combines analyst, price-action and news factors into a
// single directional score.
type MarketSentiment struct {
	Instrument          string  `json:"instrument"`
	Overall             Signal  `json:"overall"`
	Score               float64 `json:"score"`
	RecommendationScore float64 `json:"recommendation_score"`
	PriceActionScore    float64 `json:"price_action_score"`
	NewsScore           float64 `json:"news_score"`
}
