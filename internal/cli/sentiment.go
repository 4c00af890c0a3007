// Package cli provides the command-line interface for the analytics engine.
package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"marketlens/internal/models"
	"marketlens/internal/sentiment"
)

// addSentimentCommands adds sentiment commands.
func addSentimentCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newSentimentCmd(app))
	rootCmd.AddCommand(newHeadlinesCmd(app))
}

func newSentimentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentiment <instrument>",
		Short: "Combined market sentiment for an instrument",
		Long: `Combine three factors into one directional score: the analyst
recommendation, the price relative to its 50-bar average and keyword
scoring of the supplied headlines.`,
		Example: `  marketlens sentiment AAPL --recommendation buy
  marketlens sentiment AAPL --headline "Apple beats estimates" --recommendation "strong buy"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			instrument := strings.ToUpper(args[0])
			headlines, _ := cmd.Flags().GetStringArray("headline")
			recommendation, _ := cmd.Flags().GetString("recommendation")

			ms, err := app.Engine.MarketSentiment(ctx, instrument, headlines, recommendation)
			if err != nil {
				output.Error("Sentiment analysis failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(ms)
			}
			renderMarketSentiment(output, ms)
			return nil
		},
	}
	cmd.Flags().StringArray("headline", nil, "news headline to score (repeatable)")
	cmd.Flags().String("recommendation", "", "analyst recommendation (buy, sell, strong buy, ...)")
	return cmd
}

func renderMarketSentiment(output *Output, ms *models.MarketSentiment) {
	output.Bold("%s  %s", ms.Instrument, output.Signal(string(ms.Overall)))
	output.Println()

	output.Printf("  Composite Score:  %.2f\n", ms.Score)
	output.Printf("  Recommendation:   %.2f\n", ms.RecommendationScore)
	output.Printf("  Price Action:     %.2f\n", ms.PriceActionScore)
	output.Printf("  News:             %.2f\n", ms.NewsScore)
}

func newHeadlinesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headlines <instrument>",
		Short: "Score news headlines by keyword sentiment",
		Long: `Score each headline against positive and negative keyword lists and
aggregate into an overall sentiment. Works without price data.`,
		Example: `  marketlens headlines AAPL --headline "Shares surge on strong growth" --headline "Analysts warn of decline"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			instrument := strings.ToUpper(args[0])
			headlines, _ := cmd.Flags().GetStringArray("headline")

			rep := sentiment.ScoreHeadlines(instrument, headlines)

			if output.IsJSON() {
				return output.JSON(rep)
			}
			renderHeadlines(output, rep)
			return nil
		},
	}
	cmd.Flags().StringArray("headline", nil, "news headline to score (repeatable)")
	return cmd
}

func renderHeadlines(output *Output, rep *models.SentimentReport) {
	output.Bold("%s  %s (%.2f from %d headlines)", rep.Instrument, output.Signal(string(rep.Overall)), rep.Score, rep.Articles)
	if len(rep.Headlines) == 0 {
		return
	}
	output.Println()

	table := NewTable(output, "SENTIMENT", "HEADLINE")
	for _, h := range rep.Headlines {
		table.AddRow(output.Signal(string(h.Sentiment)), h.Headline)
	}
	table.Render()
}
