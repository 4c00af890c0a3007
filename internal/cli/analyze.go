// Package cli provides the command-line interface for the analytics engine.
package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"marketlens/internal/engine"
	"marketlens/internal/models"
	"marketlens/pkg/utils"
)

const commandTimeout = 60 * time.Second

// addAnalysisCommands adds analysis commands.
func addAnalysisCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newMomentumCmd(app))
	rootCmd.AddCommand(newLevelsCmd(app))
}

func newAnalyzeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <instrument> [instrument...]",
		Short: "Full technical analysis for one or more instruments",
		Long: `Compute the aggregate indicator report:
- Moving averages (SMA 20/50/200, EMA 20/50)
- RSI with oversold/overbought classification
- MACD with crossover interpretation
- Bollinger Bands with band position
- Trend and overall signal

Multiple instruments are analyzed concurrently. A failing instrument
reports its error without affecting the others.`,
		Example: `  marketlens analyze AAPL
  marketlens analyze AAPL MSFT GOOG
  marketlens analyze TSLA --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			instruments := upperAll(args)
			results := app.Engine.AnalyzeAll(ctx, instruments)

			if output.IsJSON() {
				return output.JSON(results)
			}

			for i, instrument := range instruments {
				res := results[instrument]
				if res == nil {
					continue
				}
				if i > 0 {
					output.Println()
				}
				if res.Error != "" {
					output.Error("%s: %s", instrument, res.Error)
					continue
				}
				renderIndicators(output, res)
			}
			return nil
		},
	}
}

func renderIndicators(output *Output, res *engine.Result) {
	rep := res.Indicators
	output.Bold("%s  %s", rep.Instrument, utils.FormatPrice(rep.CurrentPrice))
	output.Printf("  Trend:   %s\n", output.Signal(string(rep.Trend)))
	output.Printf("  Signal:  %s\n", output.Signal(string(rep.Signals.Overall)))
	output.Println()

	table := NewTable(output, "INDICATOR", "VALUE", "SIGNAL")
	table.AddRow("SMA 20", formatOptional(rep.MovingAverages.SMA20), "")
	table.AddRow("SMA 50", formatOptional(rep.MovingAverages.SMA50), "")
	table.AddRow("SMA 200", formatOptional(rep.MovingAverages.SMA200), "")
	table.AddRow("EMA 20", formatOptional(rep.MovingAverages.EMA20), "")
	table.AddRow("EMA 50", formatOptional(rep.MovingAverages.EMA50), "")
	table.AddRow("RSI", formatOptional(rep.RSI.Value), output.Signal(string(rep.RSI.Signal)))
	table.AddRow("MACD", formatOptional(rep.MACD.MACD), output.Signal(string(rep.MACD.Interpretation)))
	table.AddRow("MACD Signal", formatOptional(rep.MACD.Signal), "")
	table.AddRow("MACD Histogram", formatOptional(rep.MACD.Histogram), "")
	if bb := rep.Bollinger; bb != nil {
		table.AddRow("BB Upper", fmt.Sprintf("%.2f", bb.Upper), "")
		table.AddRow("BB Middle", fmt.Sprintf("%.2f", bb.SMA), "")
		table.AddRow("BB Lower", fmt.Sprintf("%.2f", bb.Lower), "")
		table.AddRow("BB Position", fmt.Sprintf("%.2f", bb.Position), "")
	}
	table.Render()

	if res.Momentum != nil && res.Momentum.AverageReturn != nil {
		output.Println()
		output.Printf("  Momentum: %s %s (avg %s)\n",
			string(res.Momentum.Strength),
			output.Signal(string(res.Momentum.Direction)),
			output.FormatPercent(*res.Momentum.AverageReturn))
	}
}

func newMomentumCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "momentum <instrument>",
		Short: "Recent percent returns over fixed horizons",
		Long: `Compute percent returns over 1, 5, 10, 20 and 30 bar horizons and grade
the average into strength (STRONG/MODERATE/WEAK) and direction. Horizons
longer than the available history are omitted.`,
		Example: `  marketlens momentum AAPL
  marketlens momentum NVDA --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			res := app.Engine.Analyze(ctx, strings.ToUpper(args[0]))
			if res.Err != nil {
				output.Error("Momentum analysis failed: %v", res.Err)
				return res.Err
			}

			if output.IsJSON() {
				return output.JSON(res.Momentum)
			}
			renderMomentum(output, res.Momentum)
			return nil
		},
	}
}

func renderMomentum(output *Output, rep *models.MomentumReport) {
	output.Bold("%s  %s", rep.Instrument, utils.FormatPrice(rep.CurrentPrice))
	output.Println()

	table := NewTable(output, "HORIZON", "RETURN")
	for _, horizon := range sortedHorizons(rep.Returns) {
		table.AddRow(horizon, output.FormatPercent(rep.Returns[horizon]))
	}
	table.Render()

	output.Println()
	if rep.AverageReturn != nil {
		output.Printf("  Average:   %s\n", output.FormatPercent(*rep.AverageReturn))
	}
	output.Printf("  Strength:  %s\n", string(rep.Strength))
	output.Printf("  Direction: %s\n", output.Signal(string(rep.Direction)))
}

// sortedHorizons orders the "1d"/"5d"/... keys numerically.
func sortedHorizons(returns map[string]float64) []string {
	keys := make([]string, 0, len(returns))
	for k := range returns {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		var a, b int
		fmt.Sscanf(keys[i], "%dd", &a)
		fmt.Sscanf(keys[j], "%dd", &b)
		return a < b
	})
	return keys
}

func newLevelsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "levels <instrument>",
		Short: "Support and resistance levels",
		Long: `List candidate support and resistance levels: the full-period high/low,
the recent 20-bar high/low and psychological round numbers near the
current price.`,
		Example: `  marketlens levels AAPL`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			res := app.Engine.Analyze(ctx, strings.ToUpper(args[0]))
			if res.Err != nil {
				output.Error("Level detection failed: %v", res.Err)
				return res.Err
			}

			if output.IsJSON() {
				return output.JSON(res.Levels)
			}
			renderLevels(output, res.Levels)
			return nil
		},
	}
}

func renderLevels(output *Output, rep *models.LevelReport) {
	output.Bold("%s  %s", rep.Instrument, utils.FormatPrice(rep.CurrentPrice))
	output.Println()

	output.Printf("  Period High:  %s\n", utils.FormatPrice(rep.PeriodHigh))
	output.Printf("  Period Low:   %s\n", utils.FormatPrice(rep.PeriodLow))
	output.Printf("  Recent High:  %s\n", utils.FormatPrice(rep.RecentHigh))
	output.Printf("  Recent Low:   %s\n", utils.FormatPrice(rep.RecentLow))
	output.Println()

	output.Printf("  Resistance:    %s\n", formatLevels(rep.Resistance))
	output.Printf("  Support:       %s\n", formatLevels(rep.Support))
	output.Printf("  Psychological: %s\n", formatLevels(rep.Psychological))
}

func formatLevels(levels []float64) string {
	parts := make([]string, 0, len(levels))
	for _, level := range levels {
		parts = append(parts, fmt.Sprintf("%.2f", level))
	}
	return strings.Join(parts, ", ")
}

// formatOptional renders an optional report value, "-" when absent.
func formatOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

// upperAll uppercases each instrument argument.
func upperAll(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = strings.ToUpper(a)
	}
	return out
}
