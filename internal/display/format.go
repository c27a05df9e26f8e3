package display

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"parimutuel-advisor/internal/decision"
)

// Placeholder is shown for any output that has no value yet.
const Placeholder = "--"

// View is a rendered result, one string per output field.
type View struct {
	Headline  string
	Detail    string
	EV        string
	Odds      string
	Stake     string
	Kelly     string
	RateTotal string
	Warning   string // empty unless the win rates are off
}

// Formatter renders results for one locale.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter builds a formatter for a BCP 47 locale such as "zh-TW".
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	return &Formatter{printer: message.NewPrinter(tag)}, nil
}

// Amount formats a whole number with the locale's digit grouping.
func (f *Formatter) Amount(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// Pool formats a pool size, dropping fractions the way stakes are shown.
func (f *Formatter) Pool(v float64) string {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return f.Amount(int64(math.Floor(v)))
}

// Percent formats a percentage value with one decimal.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Multiplier formats decimal odds.
func Multiplier(v float64) string {
	return fmt.Sprintf("%.2fx", v)
}

// View renders every output field of a result.
func (f *Formatter) View(res decision.Result) View {
	v := View{
		RateTotal: fmt.Sprintf("Win rates total %.1f%%", res.TotalRate),
	}
	if res.RateWarning {
		v.Warning = fmt.Sprintf("Win rates add up to %.1f%%, not 100%%", res.TotalRate)
	}

	best, _ := res.Best()

	switch res.Verdict {
	case decision.VerdictBet:
		v.Headline = fmt.Sprintf("Bet %s", best.Option.Name)
		v.Detail = fmt.Sprintf("Expected value %s", Percent(res.EVPercent))
		v.EV = Percent(res.EVPercent)
		v.Odds = Multiplier(res.OddsMultiplier)
		v.Kelly = Percent(res.KellyPercent)
		if res.HasStake {
			v.Stake = f.Amount(res.SuggestedStake)
		} else {
			v.Stake = Percent(res.KellyPercent) + " of bankroll"
		}

	case decision.VerdictSkip:
		v.Headline = "Skip"
		if res.SkipReason == decision.SkipBelowThreshold {
			v.Detail = fmt.Sprintf("Best EV only %s (below %.0f%%)", Percent(res.EVPercent), decision.EVThreshold*100)
		} else {
			v.Detail = "No profitable bet"
		}
		v.EV = Percent(res.EVPercent)
		v.Odds = Placeholder
		v.Stake = "0"
		v.Kelly = "0%"

	default:
		v.Headline = "Enter pool sizes"
		v.Detail = "Waiting for input..."
		v.EV = Placeholder
		v.Odds = Placeholder
		v.Stake = Placeholder
		v.Kelly = Placeholder
	}

	return v
}
