package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/finsim/household-simulator/internal/domain"
	"github.com/finsim/household-simulator/pkg/money"
)

// TableFormatter renders a fixed-width table for reading at a terminal.
// The column layout is advisory; scripts should consume the csv format.
type TableFormatter struct{}

func (t TableFormatter) Name() string { return "table" }

func (t TableFormatter) Format(result *domain.BatchResult) ([]byte, error) {
	var buf bytes.Buffer
	if result.Verbose() {
		t.formatTrace(&buf, result)
	} else {
		t.formatOutcomes(&buf, result)
	}
	return buf.Bytes(), nil
}

func (t TableFormatter) formatOutcomes(buf *bytes.Buffer, result *domain.BatchResult) {
	if result.Bootstrap {
		fmt.Fprintf(buf, "%6s %7s %18s %8s %6s %18s\n",
			"TRIAL", "START", "FINAL", "STATUS", "RUIN", "AT-RETIREMENT")
	} else {
		fmt.Fprintf(buf, "%6s %18s %8s %6s %18s\n",
			"TRIAL", "FINAL", "STATUS", "RUIN", "AT-RETIREMENT")
	}

	ruined := 0
	for _, outcome := range result.Outcomes {
		if outcome.Status == domain.StatusRuined {
			ruined++
		}
		ruin := "-"
		if outcome.RuinYear >= 0 {
			ruin = strconv.Itoa(outcome.RuinYear)
		}
		retirement := naValue
		if outcome.RetirementWealth != nil {
			retirement = money.DisplayUSD(*outcome.RetirementWealth)
		}

		if result.Bootstrap {
			fmt.Fprintf(buf, "%6d %7d %18s %8s %6s %18s\n",
				outcome.Trial, outcome.StartOffset, money.DisplayUSD(outcome.FinalWealth),
				outcome.Status, ruin, retirement)
		} else {
			fmt.Fprintf(buf, "%6d %18s %8s %6s %18s\n",
				outcome.Trial, money.DisplayUSD(outcome.FinalWealth),
				outcome.Status, ruin, retirement)
		}
	}

	if n := len(result.Outcomes); n > 0 {
		fmt.Fprintf(buf, "\n%d trials, %d ruined (%.1f%%)\n",
			n, ruined, float64(ruined)/float64(n)*100)
	}
}

func (t TableFormatter) formatTrace(buf *bytes.Buffer, result *domain.BatchResult) {
	fmt.Fprintf(buf, "Trial %d trajectory\n\n", result.TraceTrial)
	fmt.Fprintf(buf, "%4s %18s %18s %15s %15s %12s %12s\n",
		"YEAR", "MARKET", "RETIREMENT", "INCOME", "SPENDING", "CAR", "CHILD")

	for _, rec := range result.Trace {
		fmt.Fprintf(buf, "%4d %18s %18s %15s %15s %12s %12s\n",
			rec.Year,
			money.DisplayUSD(rec.MarketValue),
			money.DisplayUSD(rec.RetirementValue),
			money.DisplayUSD(rec.JobIncome),
			money.DisplayUSD(rec.SpendingExpense),
			money.DisplayUSD(rec.CarExpense),
			money.DisplayUSD(rec.ChildExpense))
	}

	if n := len(result.Trace); n > 0 {
		last := result.Trace[n-1]
		fmt.Fprintf(buf, "\nFinal wealth: %s\n",
			money.DisplayUSD(last.MarketValue.Add(last.RetirementValue)))
	}
}
