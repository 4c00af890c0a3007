// Package cli provides the command-line interface for the analytics engine.
package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"marketlens/internal/models"
	"marketlens/pkg/utils"
)

// addPortfolioCommands adds portfolio commands.
func addPortfolioCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPortfolioCmd(app))
}

func newPortfolioCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Value a set of holdings at the latest close",
		Long: `Value each holding at its latest close and compute portfolio weights.
An instrument whose price cannot be resolved carries an error entry;
the rest of the portfolio is valued normally.`,
		Example: `  marketlens portfolio --position AAPL=10
  marketlens portfolio --position AAPL=10 --position MSFT=5.5 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			positions, _ := cmd.Flags().GetStringArray("position")
			holdings, err := parseHoldings(positions)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			valuation := app.Engine.ValuePortfolio(ctx, holdings)

			if output.IsJSON() {
				return output.JSON(valuation)
			}
			renderPortfolio(output, valuation)
			return nil
		},
	}
	cmd.Flags().StringArray("position", nil, "holding as INSTRUMENT=SHARES (repeatable)")
	return cmd
}

// parseHoldings converts INSTRUMENT=SHARES arguments into a holdings map.
func parseHoldings(positions []string) (map[string]float64, error) {
	holdings := make(map[string]float64, len(positions))
	for _, p := range positions {
		parts := strings.SplitN(p, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid position %q, want INSTRUMENT=SHARES", p)
		}
		shares, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid share count in %q: %w", p, err)
		}
		holdings[strings.ToUpper(parts[0])] = shares
	}
	return holdings, nil
}

func renderPortfolio(output *Output, v *models.PortfolioValuation) {
	output.Bold("Portfolio Valuation")
	output.Printf("  Total Value: %s\n", utils.FormatPrice(v.TotalValue))
	output.Printf("  Positions:   %d\n", v.Positions)
	output.Println()

	instruments := make([]string, 0, len(v.Holdings))
	for instrument := range v.Holdings {
		instruments = append(instruments, instrument)
	}
	sort.Strings(instruments)

	table := NewTable(output, "INSTRUMENT", "SHARES", "PRICE", "VALUE", "WEIGHT")
	for _, instrument := range instruments {
		h := v.Holdings[instrument]
		if h.Error != "" {
			table.AddRow(instrument, "-", "-", "-", output.Red(h.Error))
			continue
		}
		table.AddRow(
			instrument,
			strconv.FormatFloat(h.Shares, 'f', -1, 64),
			utils.FormatPrice(h.Price),
			utils.FormatPrice(h.Value),
			fmt.Sprintf("%.2f%%", h.WeightPercent),
		)
	}
	table.Render()
}
