// Package cli provides the command-line interface for the analytics engine.
package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"marketlens/internal/models"
	"marketlens/pkg/utils"
)

// addDataCommands adds market data commands.
func addDataCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newHistoryCmd(app))
	rootCmd.AddCommand(newQuoteCmd(app))
}

func newHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history <instrument>",
		Short: "Summary statistics for an instrument's price history",
		Long: `Condense the stored price history into headline statistics: bar count,
date range, period high/low, average volume, total return and daily
return volatility.`,
		Example: `  marketlens history AAPL`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			res := app.Engine.Analyze(ctx, strings.ToUpper(args[0]))
			if res.Err != nil {
				output.Error("History summary failed: %v", res.Err)
				return res.Err
			}

			if output.IsJSON() {
				return output.JSON(res.Summary)
			}
			renderHistory(output, res.Summary, app.Config.UI.DateFormat)
			return nil
		},
	}
}

func renderHistory(output *Output, rep *models.HistorySummary, dateFormat string) {
	output.Bold("%s  %s", rep.Instrument, utils.FormatPrice(rep.LatestClose))
	output.Println()

	output.Printf("  Data Points:  %d\n", rep.DataPoints)
	output.Printf("  Range:        %s to %s\n", rep.Start.Format(dateFormat), rep.End.Format(dateFormat))
	output.Printf("  Period High:  %s\n", utils.FormatPrice(rep.PeriodHigh))
	output.Printf("  Period Low:   %s\n", utils.FormatPrice(rep.PeriodLow))
	output.Printf("  Avg Volume:   %s\n", utils.FormatCompact(float64(rep.AvgVolume)))
	if rep.TotalReturnPct != nil {
		output.Printf("  Total Return: %s\n", output.FormatPercent(*rep.TotalReturnPct))
	}
	if rep.VolatilityPct != nil {
		output.Printf("  Volatility:   %.2f%%\n", *rep.VolatilityPct)
	}
}

func newQuoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quote <instrument> [instrument...]",
		Short: "Latest close with change from the previous bar",
		Example: `  marketlens quote AAPL
  marketlens quote AAPL MSFT --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			quotes := make([]*models.Quote, 0, len(args))
			for _, instrument := range upperAll(args) {
				quote, err := app.Engine.Quote(ctx, instrument)
				if err != nil {
					output.Error("%s: %v", instrument, err)
					continue
				}
				quotes = append(quotes, quote)
			}

			if output.IsJSON() {
				return output.JSON(quotes)
			}

			table := NewTable(output, "INSTRUMENT", "PRICE", "CHANGE", "CHANGE %", "VOLUME")
			for _, q := range quotes {
				table.AddRow(
					q.Instrument,
					utils.FormatPrice(q.Price),
					output.ColoredString(output.signColor(q.Change), utils.FormatPrice(q.Change)),
					output.FormatPercent(q.ChangePercent),
					utils.FormatCompact(float64(q.Volume)),
				)
			}
			table.Render()
			return nil
		},
	}
}
