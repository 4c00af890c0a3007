// Package config provides configuration management for the analysis engine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"marketlens/internal/analysis/indicators"
	"marketlens/internal/analysis/levels"
	"marketlens/internal/analysis/momentum"
	"marketlens/internal/engine"
	"marketlens/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Momentum MomentumConfig `mapstructure:"momentum"`
	Levels   LevelConfig    `mapstructure:"levels"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Data     DataConfig     `mapstructure:"data"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AnalysisConfig holds indicator periods and thresholds.
type AnalysisConfig struct {
	SMAShort        int     `mapstructure:"sma_short"`
	SMAMid          int     `mapstructure:"sma_mid"`
	SMALong         int     `mapstructure:"sma_long"`
	EMAShort        int     `mapstructure:"ema_short"`
	EMALong         int     `mapstructure:"ema_long"`
	RSIPeriod       int     `mapstructure:"rsi_period"`
	RSIOversold     float64 `mapstructure:"rsi_oversold"`
	RSIOverbought   float64 `mapstructure:"rsi_overbought"`
	MACDFast        int     `mapstructure:"macd_fast"`
	MACDSlow        int     `mapstructure:"macd_slow"`
	MACDSignal      int     `mapstructure:"macd_signal"`
	BollingerPeriod int     `mapstructure:"bollinger_period"`
	BollingerMult   float64 `mapstructure:"bollinger_mult"`
}

// MomentumConfig holds momentum horizons and strength thresholds.
type MomentumConfig struct {
	Horizons          []int   `mapstructure:"horizons"`
	StrongThreshold   float64 `mapstructure:"strong_threshold"`
	ModerateThreshold float64 `mapstructure:"moderate_threshold"`
}

// LevelConfig holds support/resistance detection configuration.
type LevelConfig struct {
	RecentWindow  int       `mapstructure:"recent_window"`
	Granularities []float64 `mapstructure:"granularities"`
}

// EngineConfig holds batch engine configuration.
type EngineConfig struct {
	Workers int `mapstructure:"workers"`
}

// DataConfig holds market data source configuration.
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Console  bool   `mapstructure:"console"`
	File     bool   `mapstructure:"file"`
	FilePath string `mapstructure:"file_path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/marketlens"
	}
	return filepath.Join(home, ".config", "marketlens")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config file is not an error: a template is written and the defaults
// apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
		if werr := createTemplateConfig(configDir); werr != nil {
			return nil, werr
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("analysis.sma_short", indicators.DefaultSMAShort)
	v.SetDefault("analysis.sma_mid", indicators.DefaultSMAMid)
	v.SetDefault("analysis.sma_long", indicators.DefaultSMALong)
	v.SetDefault("analysis.ema_short", indicators.DefaultEMAShort)
	v.SetDefault("analysis.ema_long", indicators.DefaultEMALong)
	v.SetDefault("analysis.rsi_period", indicators.DefaultRSIPeriod)
	v.SetDefault("analysis.rsi_oversold", indicators.DefaultRSIOversold)
	v.SetDefault("analysis.rsi_overbought", indicators.DefaultRSIOverbought)
	v.SetDefault("analysis.macd_fast", indicators.DefaultMACDFast)
	v.SetDefault("analysis.macd_slow", indicators.DefaultMACDSlow)
	v.SetDefault("analysis.macd_signal", indicators.DefaultMACDSignal)
	v.SetDefault("analysis.bollinger_period", indicators.DefaultBollingerPeriod)
	v.SetDefault("analysis.bollinger_mult", indicators.DefaultBollingerMult)

	v.SetDefault("momentum.horizons", []int{1, 5, 10, 20, 30})
	v.SetDefault("momentum.strong_threshold", momentum.DefaultStrongThreshold)
	v.SetDefault("momentum.moderate_threshold", momentum.DefaultModerateThreshold)

	v.SetDefault("levels.recent_window", levels.DefaultRecentWindow)
	v.SetDefault("levels.granularities", []float64{10, 5})

	v.SetDefault("engine.workers", engine.DefaultWorkers)

	v.SetDefault("data.dir", filepath.Join(DefaultConfigDir(), "data"))

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", false)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MARKETLENS_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("MARKETLENS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MARKETLENS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Engine.Workers = n
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	ec := c.EngineSettings()
	if err := ec.Indicators.Validate(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	if err := ec.Momentum.Validate(); err != nil {
		return fmt.Errorf("momentum: %w", err)
	}
	if err := ec.Levels.Validate(); err != nil {
		return fmt.Errorf("levels: %w", err)
	}
	if c.Engine.Workers < 1 {
		return fmt.Errorf("engine workers must be at least 1")
	}
	return nil
}

// EngineSettings assembles the engine configuration from the loaded settings.
func (c *Config) EngineSettings() engine.Config {
	return engine.Config{
		Workers: c.Engine.Workers,
		Indicators: indicators.Config{
			SMAShort:        c.Analysis.SMAShort,
			SMAMid:          c.Analysis.SMAMid,
			SMALong:         c.Analysis.SMALong,
			EMAShort:        c.Analysis.EMAShort,
			EMALong:         c.Analysis.EMALong,
			RSIPeriod:       c.Analysis.RSIPeriod,
			RSIOversold:     c.Analysis.RSIOversold,
			RSIOverbought:   c.Analysis.RSIOverbought,
			MACDFast:        c.Analysis.MACDFast,
			MACDSlow:        c.Analysis.MACDSlow,
			MACDSignal:      c.Analysis.MACDSignal,
			BollingerPeriod: c.Analysis.BollingerPeriod,
			BollingerMult:   c.Analysis.BollingerMult,
		},
		Momentum: momentum.Config{
			Horizons: c.Momentum.Horizons,
			Strong:   c.Momentum.StrongThreshold,
			Moderate: c.Momentum.ModerateThreshold,
		},
		Levels: levels.Config{
			RecentWindow:  c.Levels.RecentWindow,
			Granularities: c.Levels.Granularities,
		},
	}
}

// LoggerSettings assembles the logging configuration from the loaded settings.
func (c *Config) LoggerSettings() logging.LogConfig {
	lc := logging.DefaultLogConfig()
	lc.Level = c.Logging.Level
	lc.Console = c.Logging.Console
	lc.File = c.Logging.File
	if c.Logging.FilePath != "" {
		lc.FilePath = c.Logging.FilePath
	}
	return lc
}
