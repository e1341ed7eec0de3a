package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradejournal/internal/analytics"
	"tradejournal/pkg/utils"
)

// addReportCommands adds analytics report commands.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Analytics reports",
		Long:  "Aggregate metrics and equity reports over the filtered trade set.",
	}

	cmd.AddCommand(newReportStatsCmd(app))
	cmd.AddCommand(newReportEquityCmd(app))

	rootCmd.AddCommand(cmd)
}

func newReportStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summary statistics for the filtered trades",
		Example: `  journal report stats --from 2025-01-01 --to 2025-03-31
  journal report stats --playbook P1712345 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			matched, _, err := applyFilter(ctx, app, cmd)
			if err != nil {
				return err
			}

			summary := analytics.Summarize(matched, analytics.Options{
				CommissionRate: app.Config.Journal.CommissionPerUnit,
				Multiplier:     app.Config.Multiplier,
				Clock:          utils.NewClock(app.Config.Journal.TimezoneOffsetHours),
			})
			if output.IsJSON() {
				return output.JSON(summary)
			}

			output.Bold("Performance")
			output.Printf("  Trades:         %d (%d closed, %d open)\n",
				summary.TradeCount, summary.ClosedCount, summary.TradeCount-summary.ClosedCount)
			output.Printf("  Net P&L:        %s\n", output.FormatPnL(summary.TotalPnL))
			output.Printf("  Win rate:       %s (%dW / %dL / %dBE)\n",
				utils.FormatPercent(summary.WinRate), summary.Wins, summary.Losses, summary.BreakEven)
			if summary.ProfitFactorOK {
				output.Printf("  Profit factor:  %.2f\n", summary.ProfitFactor)
			} else {
				output.Printf("  Profit factor:  n/a\n")
			}
			output.Printf("  Gross profit:   %s\n", utils.FormatCurrency(summary.GrossProfit))
			output.Printf("  Gross loss:     %s\n", utils.FormatCurrency(summary.GrossLoss))
			output.Printf("  Avg win:        %s\n", utils.FormatCurrency(summary.AvgWin))
			output.Printf("  Avg loss:       %s\n", utils.FormatCurrency(summary.AvgLoss))
			output.Println()

			output.Bold("Streaks")
			output.Printf("  Current:        %+d trades, %+d days\n", summary.Streaks.Current, summary.Streaks.CurrentDay)
			output.Printf("  Longest win:    %d trades, %d days\n", summary.Streaks.MaxWin, summary.Streaks.MaxWinDay)
			output.Printf("  Longest loss:   %d trades, %d days\n", summary.Streaks.MaxLoss, summary.Streaks.MaxLossDay)
			output.Println()

			output.Bold("Score: %.0f / 100", summary.Score)
			for _, d := range summary.ScoreDetails {
				output.Printf("  %-14s %.0f\n", d.Subject, d.Score)
			}
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func newReportEquityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Daily equity curve and drawdown",
		Long: `Print the day-by-day equity curve for the filtered trades.

Days without trades are filled in so the curve is continuous between
the first and last trading day.`,
		Example: `  journal report equity --from 2025-01-01
  journal report equity --tag tag1 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			matched, _, err := applyFilter(ctx, app, cmd)
			if err != nil {
				return err
			}

			clock := utils.NewClock(app.Config.Journal.TimezoneOffsetHours)
			curve := analytics.EquityCurve(matched, app.Config.Journal.CommissionPerUnit, clock)
			if output.IsJSON() {
				return output.JSON(curve)
			}
			if len(curve) == 0 {
				output.Info("No closed trades match the filter.")
				return nil
			}

			showAll, _ := cmd.Flags().GetBool("all-days")
			table := NewTable(output, "Date", "Day P&L", "Equity", "Drawdown")
			for _, p := range curve {
				if !p.HasTrades && !showAll {
					continue
				}
				dd := "-"
				if p.Drawdown < 0 {
					dd = output.Red(utils.FormatCurrency(p.Drawdown))
				}
				table.AddRow(
					FormatDate(p.Date),
					output.FormatPnL(p.PnL),
					utils.FormatCurrency(p.Cumulative),
					dd,
				)
			}
			table.Render()

			output.Println()
			maxDD := analytics.MaxDrawdown(curve)
			output.Printf("  Final equity: %s   Max drawdown: %s\n",
				output.FormatPnL(curve[len(curve)-1].Cumulative),
				utils.FormatCurrency(maxDD))
			return nil
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().Bool("all-days", false, "include gap days with no trades")
	return cmd
}
