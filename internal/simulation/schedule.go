package simulation

import (
	"math"

	"github.com/finsim/household-simulator/internal/domain"
	"github.com/finsim/household-simulator/pkg/money"
	"github.com/shopspring/decimal"
)

// The schedule evaluators are stateless: each maps a 0-based year index to
// a non-negative amount. Partial activation prorates by the overlap of the
// year window [y, y+1) with the schedule's active window.

// overlap returns the fraction of the year window [year, year+1) covered
// by [start, end).
func overlap(year int, start, end float64) float64 {
	lo := math.Max(float64(year), start)
	hi := math.Min(float64(year+1), end)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// JobSchedule produces the household's salary income, with the raise
// compounding at each whole year worked.
type JobSchedule struct {
	salary   decimal.Decimal
	duration float64
	rate     decimal.Decimal
}

func NewJobSchedule(cfg domain.JobConfig) *JobSchedule {
	return &JobSchedule{
		salary:   cfg.Salary,
		duration: cfg.Duration,
		rate:     cfg.Rate,
	}
}

// IncomeFor returns the salary paid during the given year, prorated when
// the job ends inside it.
func (j *JobSchedule) IncomeFor(year int) decimal.Decimal {
	frac := overlap(year, 0, j.duration)
	if frac == 0 {
		return decimal.Zero
	}
	raised := j.salary.Mul(money.Compound(j.rate, year))
	return money.Prorate(raised, frac)
}

// SpendingSchedule produces the open-ended household spending. It is active
// every year and never stops.
type SpendingSchedule struct {
	annual decimal.Decimal
	rate   decimal.Decimal
	linear bool
}

func NewSpendingSchedule(cfg domain.SpendingConfig) *SpendingSchedule {
	return &SpendingSchedule{
		annual: cfg.Annual,
		rate:   cfg.Rate,
		linear: cfg.Growth == domain.GrowthLinear,
	}
}

// ExpenseFor returns the spending drawn during the given year. In linear
// mode a negative rate can drive the line to zero; it never goes below.
func (s *SpendingSchedule) ExpenseFor(year int) decimal.Decimal {
	if s.linear {
		growth := decimal.NewFromInt(1).Add(s.rate.Mul(decimal.NewFromInt(int64(year))))
		return money.Floor0(s.annual.Mul(growth))
	}
	return s.annual.Mul(money.Compound(s.rate, year))
}

// CostSchedule amortizes one cost window into level installments. The down
// payment lands in the year the window opens, the close-out amount in the
// year it ends.
type CostSchedule struct {
	start    float64
	duration float64
	level    decimal.Decimal
	down     decimal.Decimal
	closeOut decimal.Decimal
	enabled  bool
}

func NewCostSchedule(cfg domain.CostConfig) *CostSchedule {
	cs := &CostSchedule{
		start:    cfg.Start,
		duration: cfg.Duration,
		down:     cfg.Down,
		closeOut: cfg.Close,
		enabled:  cfg.Enabled(),
	}
	if cfg.Duration > 0 {
		cs.level = cfg.Total.Div(decimal.NewFromFloat(cfg.Duration))
	}
	return cs
}

// ExpenseFor returns the cost charged during the given year.
func (c *CostSchedule) ExpenseFor(year int) decimal.Decimal {
	if !c.enabled {
		return decimal.Zero
	}

	expense := money.Prorate(c.level, overlap(year, c.start, c.start+c.duration))
	if year == int(math.Floor(c.start)) {
		expense = expense.Add(c.down)
	}
	if year == int(math.Floor(c.start+c.duration)) {
		expense = expense.Add(c.closeOut)
	}
	return expense
}

// Schedules bundles the stateless evaluators shared by every trial in a
// batch.
type Schedules struct {
	Job      *JobSchedule
	Spending *SpendingSchedule
	Children []*CostSchedule
	Car      *CostSchedule
}

func NewSchedules(cfg *domain.SimulationConfig) *Schedules {
	children := make([]*CostSchedule, 0, len(cfg.Children))
	for _, child := range cfg.Children {
		children = append(children, NewCostSchedule(child))
	}
	return &Schedules{
		Job:      NewJobSchedule(cfg.Job),
		Spending: NewSpendingSchedule(cfg.Spending),
		Children: children,
		Car:      NewCostSchedule(cfg.Car),
	}
}

// ChildExpenseFor sums the child costs charged during the given year.
func (s *Schedules) ChildExpenseFor(year int) decimal.Decimal {
	total := decimal.Zero
	for _, child := range s.Children {
		total = total.Add(child.ExpenseFor(year))
	}
	return total
}
