package analytics

import (
	"tradejournal/internal/models"
	"tradejournal/pkg/utils"
)

// ScoreDetail is one normalized sub-metric of the composite score.
type ScoreDetail struct {
	Subject string
	Score   float64 // 0-100
}

// ScoreWeights defines the weight of each sub-metric in the composite
// score. Weights are relative; the composite divides by their sum.
type ScoreWeights struct {
	WinRate      float64
	ProfitFactor float64
	WinLossRatio float64
	Drawdown     float64
	Consistency  float64
}

// DefaultScoreWeights returns the default sub-metric weights.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		WinRate:      0.25,
		ProfitFactor: 0.25,
		WinLossRatio: 0.20,
		Drawdown:     0.15,
		Consistency:  0.15,
	}
}

// Normalization caps: a profit factor of profitFactorCap or better and a
// win/loss ratio of winLossCap or better score 100 on their axes.
const (
	profitFactorCap = 3.0
	winLossCap      = 2.5
)

// Score computes the composite 0-100 performance score with default
// weights. Deterministic for a given trade set; details come back in a
// stable order.
func Score(trades []models.Trade, commissionRate float64, clock utils.Clock) (float64, []ScoreDetail) {
	return ScoreWith(trades, commissionRate, clock, DefaultScoreWeights())
}

// ScoreWith computes the composite score with custom weights.
//
// Sub-metrics:
//   - Win rate: wins / (wins + losses), break-even trades excluded.
//   - Profit factor: capped at profitFactorCap; 100 when there are
//     profits and no losses, 0 with no closed trades.
//   - Avg win/loss: avgWin / |avgLoss|, capped at winLossCap.
//   - Max drawdown: 1 - maxDD/grossProfit; 100 with no drawdown.
//   - Consistency: 1 - (largest |daily P&L| / sum of |daily P&L|),
//     zero when the account is not net profitable.
func ScoreWith(trades []models.Trade, commissionRate float64, clock utils.Clock, weights ScoreWeights) (float64, []ScoreDetail) {
	var wins, losses int
	var totalPnL float64
	closed := 0
	for _, t := range trades {
		pnl, ok := NetPnL(t, commissionRate)
		if !ok {
			continue
		}
		closed++
		totalPnL += pnl
		if pnl > 0 {
			wins++
		} else if pnl < 0 {
			losses++
		}
	}

	winRateScore := 0.0
	if wins+losses > 0 {
		winRateScore = float64(wins) / float64(wins+losses) * 100
	}

	grossProfit, _ := GrossStats(trades, commissionRate)
	pfScore := 0.0
	if pf, ok := ProfitFactor(trades, commissionRate); ok {
		pfScore = clamp01(pf/profitFactorCap) * 100
	} else if grossProfit > 0 {
		pfScore = 100
	}

	avgWin, avgLoss := AvgWinLoss(trades, commissionRate)
	wlScore := 0.0
	if avgLoss != 0 {
		wlScore = clamp01(avgWin/-avgLoss/winLossCap) * 100
	} else if avgWin > 0 {
		wlScore = 100
	}

	curve := EquityCurve(trades, commissionRate, clock)
	ddScore := 0.0
	if closed > 0 {
		maxDD := MaxDrawdown(curve)
		switch {
		case maxDD == 0:
			ddScore = 100
		case grossProfit > 0:
			ddScore = clamp01(1-maxDD/grossProfit) * 100
		}
	}

	consistencyScore := 0.0
	if totalPnL > 0 {
		days := sortedDayPnLs(trades, commissionRate, clock)
		var largest, sumAbs float64
		for _, pnl := range days {
			if pnl < 0 {
				pnl = -pnl
			}
			sumAbs += pnl
			if pnl > largest {
				largest = pnl
			}
		}
		if sumAbs > 0 {
			consistencyScore = clamp01(1-largest/sumAbs) * 100
		}
	}

	details := []ScoreDetail{
		{Subject: "Win rate", Score: winRateScore},
		{Subject: "Profit factor", Score: pfScore},
		{Subject: "Avg win/loss", Score: wlScore},
		{Subject: "Max drawdown", Score: ddScore},
		{Subject: "Consistency", Score: consistencyScore},
	}

	weightFor := []float64{
		weights.WinRate,
		weights.ProfitFactor,
		weights.WinLossRatio,
		weights.Drawdown,
		weights.Consistency,
	}
	var total, totalWeight float64
	for i, d := range details {
		total += d.Score * weightFor[i]
		totalWeight += weightFor[i]
	}
	score := 0.0
	if totalWeight > 0 {
		score = total / totalWeight
	}
	return clamp01(score/100) * 100, details
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
