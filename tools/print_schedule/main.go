package main

import (
	"fmt"

	"github.com/finsim/household-simulator/internal/domain"
	"github.com/finsim/household-simulator/internal/simulation"
	"github.com/shopspring/decimal"
)

func main() {
	// Fractional starts and durations on purpose, to eyeball the proration
	// at window boundaries.
	cfg := &domain.SimulationConfig{
		Job: domain.JobConfig{
			Salary:   decimal.NewFromInt(120000),
			Duration: 20.5,
			Rate:     decimal.NewFromFloat(0.02),
		},
		Spending: domain.SpendingConfig{
			Annual: decimal.NewFromInt(65000),
			Rate:   decimal.NewFromFloat(0.02),
		},
		Children: []domain.CostConfig{
			{Start: 2.25, Total: decimal.NewFromInt(500000), Duration: 18},
		},
		Car: domain.CostConfig{
			Start:    5,
			Total:    decimal.NewFromInt(54000),
			Duration: 2,
			Down:     decimal.NewFromInt(9000),
		},
	}

	sched := simulation.NewSchedules(cfg)

	fmt.Println("Year,Income,Spending,Child,Car")
	for year := 0; year < 25; year++ {
		fmt.Printf("%d,%s,%s,%s,%s\n",
			year,
			sched.Job.IncomeFor(year).StringFixed(2),
			sched.Spending.ExpenseFor(year).StringFixed(2),
			sched.ChildExpenseFor(year).StringFixed(2),
			sched.Car.ExpenseFor(year).StringFixed(2))
	}

	// Year 20 covers only half the job window, so income there should be
	// half the year-20 raised salary.
	raised := decimal.NewFromInt(120000).Mul(decimal.NewFromFloat(1.02).Pow(decimal.NewFromInt(20)))
	fmt.Printf("\nYear 20 income: %s\n", sched.Job.IncomeFor(20).StringFixed(2))
	fmt.Printf("Half of raised salary: %s\n", raised.Div(decimal.NewFromInt(2)).StringFixed(2))
}
