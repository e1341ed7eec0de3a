package analytics

import (
	"sort"

	"tradejournal/internal/models"
	"tradejournal/pkg/utils"
)

// GrossStats returns the sum of positive net P&L and the sum of negative
// net P&L (a non-positive number) over closed trades.
func GrossStats(trades []models.Trade, commissionRate float64) (grossProfit, grossLoss float64) {
	for _, t := range trades {
		pnl, ok := NetPnL(t, commissionRate)
		if !ok {
			continue
		}
		if pnl > 0 {
			grossProfit += pnl
		} else {
			grossLoss += pnl
		}
	}
	return grossProfit, grossLoss
}

// ProfitFactor returns gross profit divided by the magnitude of gross
// loss. ok is false when there are no losing trades.
func ProfitFactor(trades []models.Trade, commissionRate float64) (float64, bool) {
	grossProfit, grossLoss := GrossStats(trades, commissionRate)
	if grossLoss == 0 {
		return 0, false
	}
	return grossProfit / -grossLoss, true
}

// AvgWinLoss returns the mean net P&L of winning trades and the mean net
// P&L of losing trades, independently. Trades with exactly zero P&L are
// counted in neither.
func AvgWinLoss(trades []models.Trade, commissionRate float64) (avgWin, avgLoss float64) {
	var winSum, lossSum float64
	var wins, losses int
	for _, t := range trades {
		pnl, ok := NetPnL(t, commissionRate)
		if !ok || pnl == 0 {
			continue
		}
		if pnl > 0 {
			winSum += pnl
			wins++
		} else {
			lossSum += pnl
			losses++
		}
	}
	if wins > 0 {
		avgWin = winSum / float64(wins)
	}
	if losses > 0 {
		avgLoss = lossSum / float64(losses)
	}
	return avgWin, avgLoss
}

// StreakStats holds win/loss streaks at trade and day granularity.
// Current values are signed: positive runs of wins, negative runs of
// losses, zero after a break-even result.
type StreakStats struct {
	Current    int
	MaxWin     int
	MaxLoss    int
	CurrentDay int
	MaxWinDay  int
	MaxLossDay int
}

// Streaks computes trade-level and day-level streaks over the closed
// trades. Trades are ordered by entry time; a day is won or lost by the
// sign of its summed net P&L. An exact zero breaks a streak at either
// granularity without starting a new one.
func Streaks(trades []models.Trade, commissionRate float64, clock utils.Clock) StreakStats {
	closed := closedByEntryTime(trades)

	var stats StreakStats

	var tradePnLs []float64
	for _, t := range closed {
		pnl, _ := NetPnL(t, commissionRate)
		tradePnLs = append(tradePnLs, pnl)
	}
	stats.Current, stats.MaxWin, stats.MaxLoss = runStreaks(tradePnLs)

	daySums := make(map[int64]float64)
	var dayKeys []int64
	for i, t := range closed {
		key := clock.Day(t.EntryTime).Unix()
		if _, seen := daySums[key]; !seen {
			dayKeys = append(dayKeys, key)
		}
		daySums[key] += tradePnLs[i]
	}
	sort.Slice(dayKeys, func(i, j int) bool { return dayKeys[i] < dayKeys[j] })

	dayPnLs := make([]float64, len(dayKeys))
	for i, key := range dayKeys {
		dayPnLs[i] = daySums[key]
	}
	stats.CurrentDay, stats.MaxWinDay, stats.MaxLossDay = runStreaks(dayPnLs)

	return stats
}

// runStreaks walks a signed P&L sequence and returns the current signed
// streak plus the historical maxima for each sign.
func runStreaks(pnls []float64) (current, maxWin, maxLoss int) {
	for _, pnl := range pnls {
		switch {
		case pnl > 0:
			if current > 0 {
				current++
			} else {
				current = 1
			}
			if current > maxWin {
				maxWin = current
			}
		case pnl < 0:
			if current < 0 {
				current--
			} else {
				current = -1
			}
			if -current > maxLoss {
				maxLoss = -current
			}
		default:
			current = 0
		}
	}
	return current, maxWin, maxLoss
}

// closedByEntryTime returns the closed trades sorted by entry time.
// The input slice is not modified.
func closedByEntryTime(trades []models.Trade) []models.Trade {
	closed := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if t.Closed() {
			closed = append(closed, t)
		}
	}
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].EntryTime.Before(closed[j].EntryTime)
	})
	return closed
}

// Options parameterize a Summarize call.
type Options struct {
	CommissionRate float64
	Multiplier     MultiplierFunc
	Clock          utils.Clock
	Weights        *ScoreWeights // nil means DefaultScoreWeights
}

// Summary is the derived metrics bundle consumed by presentation.
type Summary struct {
	TotalPnL    float64
	TradeCount  int
	ClosedCount int

	Wins      int
	Losses    int
	BreakEven int
	WinRate   float64 // wins / (wins + losses) * 100, break-even excluded

	GrossProfit    float64
	GrossLoss      float64
	ProfitFactor   float64
	ProfitFactorOK bool
	AvgWin         float64
	AvgLoss        float64

	Streaks StreakStats

	Score        float64
	ScoreDetails []ScoreDetail

	Curve []DayPoint
}

// Summarize computes the full metrics bundle over a trade collection.
// Open trades count toward TradeCount only.
func Summarize(trades []models.Trade, opts Options) Summary {
	s := Summary{TradeCount: len(trades)}

	for _, t := range trades {
		pnl, ok := NetPnL(t, opts.CommissionRate)
		if !ok {
			continue
		}
		s.ClosedCount++
		s.TotalPnL += pnl
		switch {
		case pnl > 0:
			s.Wins++
		case pnl < 0:
			s.Losses++
		default:
			s.BreakEven++
		}
	}
	if s.Wins+s.Losses > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Wins+s.Losses) * 100
	}

	s.GrossProfit, s.GrossLoss = GrossStats(trades, opts.CommissionRate)
	s.ProfitFactor, s.ProfitFactorOK = ProfitFactor(trades, opts.CommissionRate)
	s.AvgWin, s.AvgLoss = AvgWinLoss(trades, opts.CommissionRate)
	s.Streaks = Streaks(trades, opts.CommissionRate, opts.Clock)
	s.Curve = EquityCurve(trades, opts.CommissionRate, opts.Clock)

	weights := DefaultScoreWeights()
	if opts.Weights != nil {
		weights = *opts.Weights
	}
	s.Score, s.ScoreDetails = ScoreWith(trades, opts.CommissionRate, opts.Clock, weights)

	return s
}
