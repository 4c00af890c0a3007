// Package cli provides the command-line interface for the analytics engine.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"marketlens/internal/config"
	"marketlens/internal/engine"
	"marketlens/internal/logging"
	"marketlens/internal/marketdata"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-01"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Engine *engine.Engine
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "marketlens",
		Short: "MarketLens - technical analysis CLI for OHLCV price data",
		Long: `MarketLens computes deterministic technical analysis reports from OHLCV
price history stored as per-instrument CSV files.

Reports cover moving averages, RSI, MACD, Bollinger Bands, momentum,
support/resistance levels, portfolio valuation and market sentiment,
as formatted text or JSON.

Use 'marketlens help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Handle debug flag
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}

			dataDir, _ := cmd.Flags().GetString("data")
			if dataDir == "" {
				dataDir = app.Config.Data.Dir
			}

			eng, err := engine.New(marketdata.NewCSVProvider(dataDir), app.Config.EngineSettings(), app.Logger)
			if err != nil {
				return err
			}
			app.Engine = eng
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Engine != nil {
				app.Engine.Close()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/marketlens)")
	rootCmd.PersistentFlags().String("data", "", "directory holding per-instrument CSV files")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Add all command groups
	addCoreCommands(rootCmd, app)
	addAnalysisCommands(rootCmd, app)
	addDataCommands(rootCmd, app)
	addPortfolioCommands(rootCmd, app)
	addSentimentCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("MarketLens v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Analysis Configuration")
	output.Printf("  SMA Periods:     %d / %d / %d\n", cfg.Analysis.SMAShort, cfg.Analysis.SMAMid, cfg.Analysis.SMALong)
	output.Printf("  EMA Periods:     %d / %d\n", cfg.Analysis.EMAShort, cfg.Analysis.EMALong)
	output.Printf("  RSI:             %d (%.0f / %.0f)\n", cfg.Analysis.RSIPeriod, cfg.Analysis.RSIOversold, cfg.Analysis.RSIOverbought)
	output.Printf("  MACD:            %d / %d / %d\n", cfg.Analysis.MACDFast, cfg.Analysis.MACDSlow, cfg.Analysis.MACDSignal)
	output.Printf("  Bollinger:       %d x %.1f\n", cfg.Analysis.BollingerPeriod, cfg.Analysis.BollingerMult)
	output.Println()

	output.Bold("Momentum Configuration")
	output.Printf("  Horizons:        %v\n", cfg.Momentum.Horizons)
	output.Printf("  Strong Above:    %.1f%%\n", cfg.Momentum.StrongThreshold)
	output.Printf("  Moderate Above:  %.1f%%\n", cfg.Momentum.ModerateThreshold)
	output.Println()

	output.Bold("Level Configuration")
	output.Printf("  Recent Window:   %d bars\n", cfg.Levels.RecentWindow)
	output.Printf("  Granularities:   %v\n", cfg.Levels.Granularities)
	output.Println()

	output.Bold("Engine")
	output.Printf("  Workers:         %d\n", cfg.Engine.Workers)
	output.Printf("  Data Directory:  %s\n", cfg.Data.Dir)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  Console:         %v\n", cfg.Logging.Console)
	output.Printf("  File:            %v\n", cfg.Logging.File)

	return nil
}
