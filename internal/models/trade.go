// Package models defines the core data types for the trading journal.
package models

import (
	"time"

	"tradejournal/internal/errors"
)

// Direction is the side of a trade.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Sign returns +1 for long trades and -1 for short trades.
func (d Direction) Sign() float64 {
	if d == Short {
		return -1
	}
	return 1
}

// Valid reports whether the direction is one of the known values.
func (d Direction) Valid() bool {
	return d == Long || d == Short
}

// Outcome is the user-asserted result classification of a trade.
// It is recorded by the user, not derived from P&L.
type Outcome string

const (
	Win       Outcome = "WIN"
	SmallWin  Outcome = "SMALL_WIN"
	BreakEven Outcome = "BREAK_EVEN"
	SmallLoss Outcome = "SMALL_LOSS"
	Loss      Outcome = "LOSS"
)

// Valid reports whether the outcome is one of the known values.
func (o Outcome) Valid() bool {
	switch o {
	case Win, SmallWin, BreakEven, SmallLoss, Loss:
		return true
	}
	return false
}

// Trade represents one logged position, open or closed.
// A trade is closed iff ExitPrice is set; only closed trades participate
// in P&L, streak, and score aggregates.
type Trade struct {
	ID        string
	Symbol    string
	Direction Direction
	Outcome   Outcome

	EntryTime time.Time
	ExitTime  *time.Time

	Quantity   float64
	EntryPrice float64
	ExitPrice  *float64
	Commission *float64 // flat, superseded by the settings rate when that is set

	StopLoss     float64
	HighestPrice *float64 // MFE extreme
	LowestPrice  *float64 // MAE extreme

	PlaybookID    string   // zero or one playbook reference
	RulesFollowed []string // rule item ids, meaningful only relative to PlaybookID
	Tags          []string // tag ids, may span categories

	Notes     string
	CreatedAt time.Time
}

// Closed reports whether the trade has been exited.
func (t *Trade) Closed() bool {
	return t.ExitPrice != nil
}

// Validate checks the trade for structurally invalid input.
// Partial data (missing exit, extremes) is allowed; nonsense is not.
func (t *Trade) Validate() error {
	if t.ID == "" {
		return errors.NewValidationError("id", t.ID, "required")
	}
	if t.Symbol == "" {
		return errors.NewValidationError("symbol", t.Symbol, "required")
	}
	if !t.Direction.Valid() {
		return errors.NewValidationError("direction", t.Direction, "must be LONG or SHORT")
	}
	if t.Outcome != "" && !t.Outcome.Valid() {
		return errors.NewValidationError("outcome", t.Outcome, "unknown outcome")
	}
	if t.Quantity <= 0 {
		return errors.NewValidationError("quantity", t.Quantity, "must be positive")
	}
	if t.EntryPrice < 0 {
		return errors.NewValidationError("entry_price", t.EntryPrice, "must be non-negative")
	}
	if t.ExitPrice != nil && *t.ExitPrice < 0 {
		return errors.NewValidationError("exit_price", *t.ExitPrice, "must be non-negative")
	}
	if t.StopLoss < 0 {
		return errors.NewValidationError("stop_loss", t.StopLoss, "must be non-negative")
	}
	if t.EntryTime.IsZero() {
		return errors.NewValidationError("entry_time", t.EntryTime, "required")
	}
	if t.ExitTime != nil && t.ExitTime.Before(t.EntryTime) {
		return errors.NewValidationError("exit_time", *t.ExitTime, "precedes entry time")
	}
	return nil
}
