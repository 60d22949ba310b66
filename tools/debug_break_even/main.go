package main

import (
	"fmt"
	"os"

	"github.com/finsim/household-simulator/internal/config"
	"github.com/finsim/household-simulator/internal/domain"
	"github.com/finsim/household-simulator/internal/simulation"
	"github.com/shopspring/decimal"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <config-file>")
		return
	}
	f := os.Args[1]
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(f)
	if err != nil {
		panic(err)
	}
	cfg.Simulation.Verbose = false

	var series *simulation.DailySeries
	if cfg.Bootstrap() {
		series, err = simulation.LoadDailySeries(cfg.Returns.Data)
		if err != nil {
			panic(err)
		}
	}

	baseAnnual := cfg.Spending.Annual

	// Sweep spending from 50% to 150% of the configured level to find
	// where the ruin rate takes off.
	fmt.Println("Multiplier,Spending,Ruined,Trials,RuinPct")
	for step := 50; step <= 150; step += 10 {
		mult := decimal.NewFromInt(int64(step)).Div(decimal.NewFromInt(100))
		cfg.Spending.Annual = baseAnnual.Mul(mult)

		result, err := simulation.NewBatch(cfg, series, nil).Run()
		if err != nil {
			panic(err)
		}

		ruined := 0
		for _, outcome := range result.Outcomes {
			if outcome.Status == domain.StatusRuined {
				ruined++
			}
		}
		total := len(result.Outcomes)
		fmt.Printf("%s,%s,%d,%d,%.1f\n",
			mult.StringFixed(2), cfg.Spending.Annual.StringFixed(0),
			ruined, total, 100*float64(ruined)/float64(total))
	}
}
