package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# MarketLens Configuration

[analysis]
# Simple moving average periods
sma_short = 20
sma_mid = 50
sma_long = 200
# Exponential moving average periods
ema_short = 20
ema_long = 50
# RSI lookback and signal thresholds
rsi_period = 14
rsi_oversold = 30.0
rsi_overbought = 70.0
# MACD periods
macd_fast = 12
macd_slow = 26
macd_signal = 9
# Bollinger Band period and standard deviation multiplier
bollinger_period = 20
bollinger_mult = 2.0

[momentum]
# Lookback horizons in bars
horizons = [1, 5, 10, 20, 30]
# Absolute average return (percent) above which momentum is strong/moderate
strong_threshold = 5.0
moderate_threshold = 2.0

[levels]
# Bars scanned for the recent high/low
recent_window = 20
# Round-number granularities for psychological levels
granularities = [10.0, 5.0]

[engine]
# Concurrent analysis workers
workers = 4

[data]
# Directory holding per-instrument OHLCV CSV files, e.g. AAPL.csv
# dir = "/path/to/market-data"

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "02-Jan-2006"

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to stderr
console = true
# Log to a rotating file under the config directory
file = false
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
