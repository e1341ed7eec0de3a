package analytics

import (
	"sort"
	"time"

	"tradejournal/internal/models"
	"tradejournal/pkg/utils"
)

// DayPoint is one calendar day on the cumulative P&L curve.
type DayPoint struct {
	Date       time.Time
	PnL        float64
	Cumulative float64
	Drawdown   float64 // cumulative minus the running peak, never positive
	HasTrades  bool
}

// EquityCurve groups closed trades by entry calendar day on the journal
// clock and walks every day from the first to the last, filling gap days
// with zero-P&L points that keep the running totals flat but stay on the
// curve.
func EquityCurve(trades []models.Trade, commissionRate float64, clock utils.Clock) []DayPoint {
	daySums := make(map[int64]float64)
	var first, last time.Time
	for _, t := range trades {
		pnl, ok := NetPnL(t, commissionRate)
		if !ok {
			continue
		}
		day := clock.Day(t.EntryTime)
		daySums[day.Unix()] += pnl
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if last.IsZero() || day.After(last) {
			last = day
		}
	}
	if len(daySums) == 0 {
		return nil
	}

	var curve []DayPoint
	var cumulative, peak float64
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		pnl, hasTrades := daySums[day.Unix()]
		cumulative += pnl
		if cumulative > peak {
			peak = cumulative
		}
		curve = append(curve, DayPoint{
			Date:       day,
			PnL:        pnl,
			Cumulative: cumulative,
			Drawdown:   cumulative - peak,
			HasTrades:  hasTrades,
		})
	}
	return curve
}

// MaxDrawdown returns the magnitude of the deepest drawdown on the curve.
func MaxDrawdown(curve []DayPoint) float64 {
	var worst float64
	for _, p := range curve {
		if p.Drawdown < worst {
			worst = p.Drawdown
		}
	}
	return -worst
}

// sortedDayPnLs returns the per-day net P&L sums in chronological order.
func sortedDayPnLs(trades []models.Trade, commissionRate float64, clock utils.Clock) []float64 {
	daySums := make(map[int64]float64)
	var keys []int64
	for _, t := range trades {
		pnl, ok := NetPnL(t, commissionRate)
		if !ok {
			continue
		}
		key := clock.Day(t.EntryTime).Unix()
		if _, seen := daySums[key]; !seen {
			keys = append(keys, key)
		}
		daySums[key] += pnl
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]float64, len(keys))
	for i, k := range keys {
		out[i] = daySums[k]
	}
	return out
}
