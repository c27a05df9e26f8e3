package odds

import "math"

// PoolOdds returns the pari-mutuel decimal odds for one side of a pool.
// Odds are simply total pool / side pool; a side with nothing wagered has no
// defined odds and returns 0.
func PoolOdds(totalPool, sidePool float64) float64 {
	if sidePool <= 0 || totalPool <= 0 {
		return 0
	}
	return totalPool / sidePool
}

// NetOdds converts decimal odds to net odds (profit per unit staked).
func NetOdds(decimalOdds float64) float64 {
	return decimalOdds - 1
}

// ExpectedValue returns the fractional return of a unit stake
// EV = (p * odds) - 1
// Example: 50% chance at 3.0 odds -> (0.5 * 3.0) - 1 = 0.5 (+50%)
func ExpectedValue(winProb, decimalOdds float64) float64 {
	return winProb*decimalOdds - 1
}

// ImpliedProbability is the win chance the pool itself prices in (1 / odds).
func ImpliedProbability(decimalOdds float64) float64 {
	if decimalOdds <= 0 {
		return 0
	}
	return 1 / decimalOdds
}

// DecimalToAmerican converts decimal odds to American odds
// Example: 3.0 → +200, 1.5 → -200
// Odds of 1.0 or less have no American equivalent and return 0.
func DecimalToAmerican(decimalOdds float64) int {
	if decimalOdds <= 1 {
		return 0
	}
	if decimalOdds >= 2.0 {
		return int(math.Round((decimalOdds - 1) * 100))
	}
	return int(math.Round(-100 / (decimalOdds - 1)))
}
