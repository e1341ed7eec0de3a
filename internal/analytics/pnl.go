// Package analytics computes per-trade and aggregate statistics over a
// trade collection. Everything here is pure: trades in, numbers out, no
// shared state. Ratios that would divide by zero report ok=false instead
// of propagating NaN or Inf into aggregates.
package analytics

import "tradejournal/internal/models"

// MultiplierFunc resolves the instrument multiplier for a symbol
// (contract point value). The journal config supplies one; DefaultMultiplier
// treats every symbol as cash equity.
type MultiplierFunc func(symbol string) float64

// DefaultMultiplier returns 1 for every symbol.
func DefaultMultiplier(string) float64 { return 1 }

// NetPnL returns the net P&L of a trade: (exit - entry) * qty * side,
// minus the effective commission. ok is false for open trades; callers
// must skip those before aggregating.
func NetPnL(t models.Trade, commissionRate float64) (float64, bool) {
	if !t.Closed() {
		return 0, false
	}
	gross := (*t.ExitPrice - t.EntryPrice) * t.Quantity * t.Direction.Sign()
	return gross - effectiveCommission(t, commissionRate), true
}

// effectiveCommission prefers the settings rate; the trade's flat
// commission applies only when no rate is configured.
func effectiveCommission(t models.Trade, commissionRate float64) float64 {
	if commissionRate > 0 {
		return commissionRate * t.Quantity
	}
	if t.Commission != nil {
		return *t.Commission
	}
	return 0
}

// StopSize returns the stop distance in price points.
func StopSize(t models.Trade) float64 {
	d := t.EntryPrice - t.StopLoss
	if d < 0 {
		d = -d
	}
	return d
}

// RiskAmount returns the dollar risk implied by the initial stop:
// |entry - stop| * qty * instrument multiplier.
func RiskAmount(t models.Trade, mult MultiplierFunc) float64 {
	if mult == nil {
		mult = DefaultMultiplier
	}
	return StopSize(t) * t.Quantity * mult(t.Symbol)
}

// RiskPercent returns the stop distance as a percentage of the entry
// price. ok is false when the entry price is zero.
func RiskPercent(t models.Trade) (float64, bool) {
	if t.EntryPrice == 0 {
		return 0, false
	}
	return StopSize(t) / t.EntryPrice * 100, true
}

// RMultiple returns net P&L divided by the initial risk amount.
// ok is false for open trades and when the risk amount is zero.
func RMultiple(t models.Trade, commissionRate float64, mult MultiplierFunc) (float64, bool) {
	pnl, ok := NetPnL(t, commissionRate)
	if !ok {
		return 0, false
	}
	risk := RiskAmount(t, mult)
	if risk == 0 {
		return 0, false
	}
	return pnl / risk, true
}
