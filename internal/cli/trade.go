package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradejournal/internal/analytics"
	"tradejournal/internal/filter"
	"tradejournal/internal/logging"
	"tradejournal/internal/models"
	"tradejournal/internal/store"
	"tradejournal/pkg/utils"
)

// addTradeCommands adds trade management commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade management",
		Long:  "Log, update, list, and delete journal trades.",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeCloseCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeShowCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <symbol>",
		Short: "Log a new trade",
		Long: `Log a new trade, open or closed.

A trade without --exit is recorded as open and stays out of the P&L
aggregates until closed.`,
		Example: `  journal trade add AAPL --direction long --qty 100 --entry 182.50 --stop 180.00
  journal trade add ES --direction short --qty 2 --entry 5310 --stop 5320 --exit 5290 --outcome win`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}

			trade, err := tradeFromFlags(cmd, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.SaveTrade(ctx, trade); err != nil {
				return err
			}
			logging.LogTradeSaved(app.Logger, trade.ID, trade.Symbol, trade.Closed())

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Trade %s saved", trade.ID)
			if pnl, ok := analytics.NetPnL(*trade, app.Config.Journal.CommissionPerUnit); ok {
				output.Printf("  Net P&L: %s\n", output.FormatPnL(pnl))
				if r, ok := analytics.RMultiple(*trade, app.Config.Journal.CommissionPerUnit, app.Config.Multiplier); ok {
					output.Printf("  R-multiple: %s\n", utils.FormatRMultiple(r))
				}
			}
			return nil
		},
	}

	cmd.Flags().String("direction", "long", "trade direction (long, short)")
	cmd.Flags().Float64("qty", 0, "quantity (required, > 0)")
	cmd.Flags().Float64("entry", 0, "entry price (required)")
	cmd.Flags().Float64("stop", 0, "initial stop-loss price (required)")
	cmd.Flags().Float64("exit", 0, "exit price (omit for an open trade)")
	cmd.Flags().String("entry-time", "", "entry timestamp (YYYY-MM-DD [HH:MM], default now)")
	cmd.Flags().String("exit-time", "", "exit timestamp (YYYY-MM-DD [HH:MM])")
	cmd.Flags().String("outcome", "", "outcome (win, small-win, break-even, small-loss, loss)")
	cmd.Flags().Float64("commission", 0, "flat commission for this trade")
	cmd.Flags().Float64("high", 0, "highest price reached (MFE)")
	cmd.Flags().Float64("low", 0, "lowest price reached (MAE)")
	cmd.Flags().String("playbook", "", "playbook id")
	cmd.Flags().StringSlice("rules", nil, "followed rule item ids")
	cmd.Flags().StringSlice("tags", nil, "tag ids")
	cmd.Flags().String("notes", "", "free-form notes")

	cmd.MarkFlagRequired("qty")
	cmd.MarkFlagRequired("entry")
	cmd.MarkFlagRequired("stop")

	return cmd
}

func tradeFromFlags(cmd *cobra.Command, symbol string) (*models.Trade, error) {
	directionStr, _ := cmd.Flags().GetString("direction")
	direction, err := parseDirection(directionStr)
	if err != nil {
		return nil, err
	}

	trade := &models.Trade{
		ID:        newTradeID(),
		Symbol:    symbol,
		Direction: direction,
		EntryTime: time.Now(),
		CreatedAt: time.Now(),
	}
	trade.Quantity, _ = cmd.Flags().GetFloat64("qty")
	trade.EntryPrice, _ = cmd.Flags().GetFloat64("entry")
	trade.StopLoss, _ = cmd.Flags().GetFloat64("stop")

	if v, _ := cmd.Flags().GetString("entry-time"); v != "" {
		t, err := ParseDateTime(v)
		if err != nil {
			return nil, err
		}
		trade.EntryTime = t
	}
	if cmd.Flags().Changed("exit") {
		v, _ := cmd.Flags().GetFloat64("exit")
		trade.ExitPrice = &v
		exitTime := trade.EntryTime
		trade.ExitTime = &exitTime
	}
	if v, _ := cmd.Flags().GetString("exit-time"); v != "" {
		t, err := ParseDateTime(v)
		if err != nil {
			return nil, err
		}
		trade.ExitTime = &t
	}
	if v, _ := cmd.Flags().GetString("outcome"); v != "" {
		outcome, err := parseOutcome(v)
		if err != nil {
			return nil, err
		}
		trade.Outcome = outcome
	}
	if cmd.Flags().Changed("commission") {
		v, _ := cmd.Flags().GetFloat64("commission")
		trade.Commission = &v
	}
	if cmd.Flags().Changed("high") {
		v, _ := cmd.Flags().GetFloat64("high")
		trade.HighestPrice = &v
	}
	if cmd.Flags().Changed("low") {
		v, _ := cmd.Flags().GetFloat64("low")
		trade.LowestPrice = &v
	}
	trade.PlaybookID, _ = cmd.Flags().GetString("playbook")
	trade.RulesFollowed, _ = cmd.Flags().GetStringSlice("rules")
	trade.Tags, _ = cmd.Flags().GetStringSlice("tags")
	trade.Notes, _ = cmd.Flags().GetString("notes")

	return trade, trade.Validate()
}

func newTradeID() string {
	return fmt.Sprintf("T%d", time.Now().UnixNano())
}

func newTradeCloseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close <trade-id>",
		Short: "Close an open trade",
		Example: `  journal trade close T1712345 --exit 185.20 --outcome win
  journal trade close T1712345 --exit 179.10 --outcome loss --exit-time "2025-03-04 15:30"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}

			trade, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}

			exit, _ := cmd.Flags().GetFloat64("exit")
			trade.ExitPrice = &exit

			exitTime := time.Now()
			if v, _ := cmd.Flags().GetString("exit-time"); v != "" {
				exitTime, err = ParseDateTime(v)
				if err != nil {
					return err
				}
			}
			trade.ExitTime = &exitTime

			if v, _ := cmd.Flags().GetString("outcome"); v != "" {
				outcome, err := parseOutcome(v)
				if err != nil {
					return err
				}
				trade.Outcome = outcome
			}

			if err := app.Store.SaveTrade(ctx, trade); err != nil {
				return err
			}
			logging.LogTradeSaved(app.Logger, trade.ID, trade.Symbol, true)

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Trade %s closed", trade.ID)
			if pnl, ok := analytics.NetPnL(*trade, app.Config.Journal.CommissionPerUnit); ok {
				output.Printf("  Net P&L: %s\n", output.FormatPnL(pnl))
			}
			return nil
		},
	}

	cmd.Flags().Float64("exit", 0, "exit price (required)")
	cmd.Flags().String("exit-time", "", "exit timestamp (YYYY-MM-DD [HH:MM], default now)")
	cmd.Flags().String("outcome", "", "outcome (win, small-win, break-even, small-loss, loss)")
	cmd.MarkFlagRequired("exit")

	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades through the filter",
		Long: `List trades matching the filter flags.

Categories combine under --logic (and/or); --exclude inverts the
combined match. Date bounds gate by calendar day before any category
logic runs.`,
		Example: `  journal trade list --from 2025-01-01 --outcome win --outcome small-win --logic or
  journal trade list --tag tag1 --min-r 2 --day mon --day tue
  journal trade list --rule r1 --cross-playbooks`,
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
			if output.IsJSON() {
				return output.JSON(matched)
			}

			if len(matched) == 0 {
				output.Info("No trades match the filter.")
				return nil
			}

			rate := app.Config.Journal.CommissionPerUnit
			table := NewTable(output, "ID", "Date", "Symbol", "Side", "Qty", "Entry", "Exit", "P&L", "R")
			var total float64
			for _, t := range matched {
				exitStr, pnlStr, rStr := "-", "-", "-"
				if pnl, ok := analytics.NetPnL(t, rate); ok {
					total += pnl
					exitStr = FormatPrice(*t.ExitPrice)
					pnlStr = output.FormatPnL(pnl)
					if r, ok := analytics.RMultiple(t, rate, app.Config.Multiplier); ok {
						rStr = utils.FormatRMultiple(r)
					}
				}
				table.AddRow(
					t.ID,
					FormatDate(t.EntryTime),
					t.Symbol,
					string(t.Direction),
					utils.FormatQuantity(t.Quantity),
					FormatPrice(t.EntryPrice),
					exitStr,
					pnlStr,
					rStr,
				)
			}
			table.Render()
			output.Println()
			output.Printf("  %d trades, total P&L %s\n", len(matched), output.FormatPnL(total))
			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

// applyFilter fetches the trade snapshot plus catalogs and runs the
// filter built from the command's flags.
func applyFilter(ctx context.Context, app *App, cmd *cobra.Command) (matched, all []models.Trade, err error) {
	state, dates, err := filterFromFlags(cmd)
	if err != nil {
		return nil, nil, err
	}

	trades, err := app.Store.GetTrades(ctx, store.TradeQuery{})
	if err != nil {
		return nil, nil, err
	}
	catalog, err := app.Store.Catalog(ctx)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	f := &filter.Filter{
		State:          state,
		Dates:          dates,
		Catalog:        catalog,
		CommissionRate: app.Config.Journal.CommissionPerUnit,
		Multiplier:     app.Config.Multiplier,
		Clock:          utils.NewClock(app.Config.Journal.TimezoneOffsetHours),
	}
	matched = f.Apply(trades)
	logging.LogReport(app.Logger, len(trades), len(matched), time.Since(start))
	return matched, trades, nil
}

func newTradeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show one trade in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			trade, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(trade)
			}

			rate := app.Config.Journal.CommissionPerUnit
			output.Bold("Trade %s", trade.ID)
			output.Printf("  Symbol:     %s\n", trade.Symbol)
			output.Printf("  Direction:  %s\n", trade.Direction)
			output.Printf("  Entry:      %s @ %s\n", FormatDateTime(trade.EntryTime), FormatPrice(trade.EntryPrice))
			if trade.Closed() {
				exitTime := "-"
				if trade.ExitTime != nil {
					exitTime = FormatDateTime(*trade.ExitTime)
				}
				output.Printf("  Exit:       %s @ %s\n", exitTime, FormatPrice(*trade.ExitPrice))
			} else {
				output.Printf("  Exit:       (open)\n")
			}
			output.Printf("  Quantity:   %s\n", utils.FormatQuantity(trade.Quantity))
			output.Printf("  Stop:       %s\n", FormatPrice(trade.StopLoss))
			if trade.Outcome != "" {
				output.Printf("  Outcome:    %s\n", trade.Outcome)
			}
			if pnl, ok := analytics.NetPnL(*trade, rate); ok {
				output.Printf("  Net P&L:    %s\n", output.FormatPnL(pnl))
			}
			if r, ok := analytics.RMultiple(*trade, rate, app.Config.Multiplier); ok {
				output.Printf("  R-multiple: %s\n", utils.FormatRMultiple(r))
			}
			if trade.PlaybookID != "" {
				output.Printf("  Playbook:   %s\n", trade.PlaybookID)
			}
			if len(trade.RulesFollowed) > 0 {
				output.Printf("  Rules:      %v\n", trade.RulesFollowed)
			}
			if len(trade.Tags) > 0 {
				output.Printf("  Tags:       %v\n", trade.Tags)
			}
			if trade.Notes != "" {
				output.Printf("  Notes:      %s\n", trade.Notes)
			}
			return nil
		},
	}
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			if err := app.Store.DeleteTrade(ctx, args[0]); err != nil {
				return err
			}
			logging.LogTradeDeleted(app.Logger, args[0])
			output.Success("✓ Trade %s deleted", args[0])
			return nil
		},
	}
}
