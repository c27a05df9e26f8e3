package decision

import (
	"parimutuel-advisor/internal/mathutil"
	"parimutuel-advisor/internal/odds"
)

// Kelly computes the Kelly criterion stake fraction for pari-mutuel odds
// Kelly formula: f* = (b * p - q) / b
// where: p = probability of winning, q = 1-p, b = net odds (decimal odds - 1)
//
// A pool holding every wager pays 1.0x, so b = 0 and there is nothing to
// size; that case returns 0 instead of dividing by zero.
// The result is always within [0, 1].
func Kelly(winProb, decimalOdds float64) float64 {
	b := odds.NetOdds(decimalOdds)
	if b <= 0 {
		return 0
	}

	p := winProb
	q := 1.0 - p

	kelly := (b*p - q) / b

	// Never bet more than 100% of bankroll, never suggest a negative stake
	return mathutil.Clamp(kelly, 0, 1)
}

// ScaleKelly applies the configured Kelly multiplier (1 = full Kelly).
// Out-of-range multipliers fall back to full Kelly.
func ScaleKelly(kelly, fraction float64) float64 {
	if fraction <= 0 || fraction > 1 {
		fraction = 1
	}
	return mathutil.Clamp(kelly*fraction, 0, 1)
}

// StakeFor returns the whole-unit stake for a bankroll and Kelly fraction.
// Fractions of a unit are dropped, matching how points are wagered.
func StakeFor(bankroll, kelly float64) int64 {
	return mathutil.FloorStake(bankroll * kelly)
}
