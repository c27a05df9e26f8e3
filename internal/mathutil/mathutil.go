package mathutil

import "math"

// Clamp bounds v to [lo, hi]. NaN clamps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}

// Finite returns v, or 0 when v is NaN or infinite.
// Pool and rate inputs go through this so a bad value can never poison a sum.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FloorStake truncates a stake amount toward negative infinity.
// Non-positive or non-finite amounts return 0.
func FloorStake(amount float64) int64 {
	amount = Finite(amount)
	if amount <= 0 {
		return 0
	}
	if amount >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Floor(amount))
}
