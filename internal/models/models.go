// Package models provides domain models for the analytics engine.
package models

import (
	"fmt"
	"time"

	"marketlens/internal/errors"
)

// Trend classifies the relationship between price and its moving averages.
type Trend string

const (
	TrendStrongUptrend   Trend = "STRONG_UPTREND"
	TrendUptrend         Trend = "UPTREND"
	TrendNeutral         Trend = "NEUTRAL"
	TrendDowntrend       Trend = "DOWNTREND"
	TrendStrongDowntrend Trend = "STRONG_DOWNTREND"
)

// Signal represents a directional reading.
type Signal string

const (
	SignalBullish Signal = "BULLISH"
	SignalBearish Signal = "BEARISH"
	SignalNeutral Signal = "NEUTRAL"

	// The overall report signal defers to the RSI state when MACD is
	// neutral, so it may carry these values too.
	SignalOversold   Signal = "OVERSOLD"
	SignalOverbought Signal = "OVERBOUGHT"
)

// RSISignal classifies an RSI value.
type RSISignal string

const (
	RSIOversold   RSISignal = "OVERSOLD"
	RSIOverbought RSISignal = "OVERBOUGHT"
	RSINeutral    RSISignal = "NEUTRAL"
)

// Strength grades the magnitude of a move.
type Strength string

const (
	StrengthStrong   Strength = "STRONG"
	StrengthModerate Strength = "MODERATE"
	StrengthWeak     Strength = "WEAK"
)

// Sentiment labels a news or composite reading.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

// Bar represents OHLCV data for a time period.
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// PriceSeries is a chronological sequence of bars, oldest first.
// Strictly increasing timestamps are a contract of every consumer;
// loaders call Validate, analyzers assume it.
type PriceSeries []Bar

// Validate checks the bar-ordering invariant.
func (s PriceSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].Timestamp.After(s[i-1].Timestamp) {
			return fmt.Errorf("bar %d (%s): %w", i, s[i].Timestamp.Format(time.RFC3339), errors.ErrSeriesOrder)
		}
	}
	return nil
}

// Closes returns the close prices in series order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// Highs returns the high prices in series order.
func (s PriceSeries) Highs() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.High
	}
	return out
}

// Lows returns the low prices in series order.
func (s PriceSeries) Lows() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Low
	}
	return out
}

// Volumes returns the volumes in series order.
func (s PriceSeries) Volumes() []int64 {
	out := make([]int64, len(s))
	for i, b := range s {
		out[i] = b.Volume
	}
	return out
}

// Last returns the most recent bar, or false for an empty series.
func (s PriceSeries) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}

// Quote represents the latest known price state of an instrument,
// derived by a provider from its own data.
type Quote struct {
	Instrument    string    `json:"instrument"`
	Price         float64   `json:"price"`
	PreviousClose float64   `json:"previous_close"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Volume        int64     `json:"volume"`
	Timestamp     time.Time `json:"timestamp"`
}
