package decision

import (
	"math"

	"parimutuel-advisor/internal/mathutil"
	"parimutuel-advisor/internal/odds"
)

const (
	// EVThreshold is the minimum expected value worth betting on (10%).
	EVThreshold = 0.10

	// RateTolerance is how far, in percentage points, the win rates may
	// drift from 100 before the result carries a warning.
	RateTolerance = 1.0

	// IneligibleEV marks an option with nothing wagered on it. Real EVs are
	// never below -1, so such an option can't win the best-option scan
	// against an eligible one.
	IneligibleEV = -1.0
)

// Verdict is the recommendation for one evaluation.
type Verdict string

const (
	VerdictBet  Verdict = "bet"
	VerdictSkip Verdict = "skip"
	VerdictIdle Verdict = "idle" // no wagers entered yet
)

// SkipReason explains a skip verdict.
type SkipReason string

const (
	SkipNone           SkipReason = ""
	SkipBelowThreshold SkipReason = "below-threshold" // best EV is positive but under EVThreshold
	SkipNoEdge         SkipReason = "no-edge"         // no option has a positive EV
)

// Config holds engine configuration
type Config struct {
	KellyFraction float64 // Multiplier on the Kelly stake (1 = full Kelly, 0.5 = half Kelly)
}

// DefaultConfig returns full Kelly sizing.
func DefaultConfig() Config {
	return Config{
		KellyFraction: 1.0,
	}
}

// Option is one competing outcome as entered by the user.
type Option struct {
	Name           string
	WinRatePercent float64 // Declared chance of winning, 0-100
	Pool           float64 // Total wagered on this option
}

// Input is a snapshot of every option plus the bettor's bankroll.
type Input struct {
	Options  []Option
	Bankroll float64 // 0 = not supplied
}

// Evaluation is the per-option outcome of a pass.
type Evaluation struct {
	Index         int // Position in Input.Options
	Option        Option
	Odds          float64 // Decimal payout multiple, 0 when ineligible
	ExpectedValue float64 // Fractional return, IneligibleEV when ineligible
	Eligible      bool
}

// Result is everything one evaluation pass produces.
type Result struct {
	Verdict     Verdict
	SkipReason  SkipReason
	Evaluations []Evaluation
	BestIndex   int // Index of the best option, -1 when idle

	TotalPool   float64
	TotalRate   float64
	RateWarning bool // Win rates don't sum to 100 within RateTolerance

	EVPercent      float64 // Best option's EV * 100
	OddsMultiplier float64 // Best option's decimal odds
	Kelly          float64 // Suggested bankroll fraction, 0 unless betting
	KellyPercent   float64
	SuggestedStake int64 // Whole-unit stake, only meaningful when HasStake
	HasStake       bool  // A bankroll was supplied
}

// Best returns the selected option, if any.
func (r Result) Best() (Evaluation, bool) {
	if r.BestIndex < 0 || r.BestIndex >= len(r.Evaluations) {
		return Evaluation{}, false
	}
	return r.Evaluations[r.BestIndex], true
}

// Evaluate runs one decision pass over a snapshot of inputs.
//
// Pipeline: totals -> per-option odds/EV -> best option -> threshold ->
// Kelly sizing -> stake. Bad values degrade to 0 and an empty pool yields
// the idle verdict; Evaluate never fails.
func Evaluate(in Input, cfg Config) Result {
	res := Result{
		Verdict:     VerdictIdle,
		BestIndex:   -1,
		Evaluations: make([]Evaluation, len(in.Options)),
	}

	for _, opt := range in.Options {
		res.TotalRate += mathutil.Finite(opt.WinRatePercent)
		// Negative pools are treated as no wager; adding them would shrink
		// the total and pay other options less than was actually staked.
		if pool := mathutil.Finite(opt.Pool); pool > 0 {
			res.TotalPool += pool
		}
	}
	// Pools large enough to overflow the sum degrade to "no wagers".
	res.TotalPool = mathutil.Finite(res.TotalPool)
	res.RateWarning = math.Abs(res.TotalRate-100) > RateTolerance

	for i, opt := range in.Options {
		opt.WinRatePercent = mathutil.Finite(opt.WinRatePercent)
		opt.Pool = mathutil.Finite(opt.Pool)

		ev := Evaluation{Index: i, Option: opt, ExpectedValue: IneligibleEV}
		if opt.Pool > 0 && res.TotalPool > 0 {
			o := odds.PoolOdds(res.TotalPool, opt.Pool)
			e := odds.ExpectedValue(opt.WinRatePercent/100, o)
			// A pool tiny enough to overflow the odds has no usable price.
			if !math.IsInf(o, 0) && !math.IsNaN(e) && !math.IsInf(e, 0) {
				ev.Eligible = true
				ev.Odds = o
				ev.ExpectedValue = e
			}
		}
		res.Evaluations[i] = ev
	}

	if res.TotalPool <= 0 {
		return res
	}

	res.BestIndex = bestOption(res.Evaluations)
	if res.BestIndex < 0 {
		return res
	}
	best := res.Evaluations[res.BestIndex]

	res.EVPercent = best.ExpectedValue * 100
	res.OddsMultiplier = best.Odds

	bankroll := mathutil.Finite(in.Bankroll)
	res.HasStake = bankroll > 0

	if best.ExpectedValue < EVThreshold {
		res.Verdict = VerdictSkip
		res.SkipReason = SkipNoEdge
		if best.ExpectedValue > 0 {
			res.SkipReason = SkipBelowThreshold
		}
		return res
	}

	res.Verdict = VerdictBet
	res.Kelly = ScaleKelly(Kelly(best.Option.WinRatePercent/100, best.Odds), cfg.KellyFraction)
	res.KellyPercent = res.Kelly * 100
	if res.HasStake {
		res.SuggestedStake = StakeFor(bankroll, res.Kelly)
	}

	return res
}

// bestOption picks the eligible option with the strictly greatest EV.
// Earlier options win ties. It returns -1 when no option is eligible.
func bestOption(evals []Evaluation) int {
	best := -1
	for i, e := range evals {
		if !e.Eligible {
			continue
		}
		if best < 0 || e.ExpectedValue > evals[best].ExpectedValue {
			best = i
		}
	}
	return best
}
