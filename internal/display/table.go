package display

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"parimutuel-advisor/internal/board"
	"parimutuel-advisor/internal/decision"
	"parimutuel-advisor/internal/odds"
)

// RenderTable prints one line per option followed by the recommendation.
// rows and res.Evaluations must come from the same snapshot.
func (f *Formatter) RenderTable(w io.Writer, rows []board.Row, res decision.Result) {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Option", "Color", "Win %", "Pool", "Odds", "US", "Implied", "EV", "")

	for i, row := range rows {
		var e decision.Evaluation
		if i < len(res.Evaluations) {
			e = res.Evaluations[i]
		}

		oddsLabel, usLabel, impliedLabel, evLabel := Placeholder, Placeholder, Placeholder, Placeholder
		if e.Eligible && res.Verdict != decision.VerdictIdle {
			oddsLabel = Multiplier(e.Odds)
			if us := odds.DecimalToAmerican(e.Odds); us != 0 {
				usLabel = fmt.Sprintf("%+d", us)
			}
			impliedLabel = Percent(odds.ImpliedProbability(e.Odds) * 100)
			evLabel = Percent(e.ExpectedValue * 100)
		}

		rate := row.WinRate
		if rate == "" {
			rate = Placeholder
		}

		marker := ""
		if i == res.BestIndex {
			marker = "best"
			if res.Verdict == decision.VerdictBet {
				marker = "BET"
			}
		}

		table.Append(
			fmt.Sprintf("%d", i+1),
			row.Name,
			row.Color,
			rate,
			f.Pool(e.Option.Pool),
			oddsLabel,
			usLabel,
			impliedLabel,
			evLabel,
			marker,
		)
	}

	table.Render()

	v := f.View(res)
	fmt.Fprintf(w, "  %s | %s\n", v.Headline, v.Detail)
	fmt.Fprintf(w, "  EV %s | Odds %s | Kelly %s | Stake %s\n", v.EV, v.Odds, v.Kelly, v.Stake)
	fmt.Fprintf(w, "  %s\n", v.RateTotal)
	if v.Warning != "" {
		fmt.Fprintf(w, "  ! %s\n", v.Warning)
	}
}
