package simulation

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/finsim/household-simulator/internal/domain"
	"github.com/finsim/household-simulator/pkg/dateutil"
)

const maxConcurrentTrials = 10 // Limit concurrent trials

// Batch plans and runs the configured set of trials. Trials are
// embarrassingly parallel: each owns its state and return source, and the
// daily series is the only shared, read-only resource.
type Batch struct {
	cfg    *domain.SimulationConfig
	series *DailySeries // nil outside historical mode
	logger Logger
}

// NewBatch wires a batch controller. series must be non-nil exactly when
// the configuration selects historical returns; logger may be nil for
// silence.
func NewBatch(cfg *domain.SimulationConfig, series *DailySeries, logger Logger) *Batch {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Batch{cfg: cfg, series: series, logger: logger}
}

// trialPlan fixes everything random about one trial before dispatch.
type trialPlan struct {
	index  int
	offset int
	seed   int64
}

// Run executes the batch and assembles the formatter-ready result.
func (b *Batch) Run() (*domain.BatchResult, error) {
	plans, err := b.plan()
	if err != nil {
		return nil, err
	}

	if b.cfg.Simulation.Verbose {
		return b.runTrace(plans)
	}
	return b.runAggregate(plans)
}

// plan draws every trial's start offset or seed up front from a single
// generator seeded with the configured seed. The draw order is part of the
// determinism contract: trial i always receives the i-th draw, so the same
// configuration replays bit-identically regardless of scheduling.
func (b *Batch) plan() ([]trialPlan, error) {
	sim := b.cfg.Simulation
	rng := rand.New(rand.NewSource(sim.Seed))

	if b.cfg.Bootstrap() {
		usable := b.series.UsableOffsets(sim.Years)
		if usable == 0 {
			return nil, fmt.Errorf("series %s has %d points, too short for a %d-year horizon",
				b.series.Name, b.series.Len(), sim.Years)
		}

		if sim.Sweep {
			b.logger.Infof("sweeping %d start offsets over %d years", usable, sim.Years)
			plans := make([]trialPlan, usable)
			for i := range plans {
				plans[i] = trialPlan{index: i, offset: i}
			}
			return plans, nil
		}

		if sim.StartOffset != nil {
			offset := *sim.StartOffset
			if !b.series.CanSeat(offset, sim.Years) {
				return nil, fmt.Errorf("start offset %d cannot seat a %d-year horizon (usable offsets: %d)",
					offset, sim.Years, usable)
			}
			b.logger.Infof("forcing all %d trials to start offset %d (near %.1f)",
				sim.Count, offset, dateutil.ApproxYear(b.series.Epoch(), offset))
			plans := make([]trialPlan, sim.Count)
			for i := range plans {
				plans[i] = trialPlan{index: i, offset: offset}
			}
			return plans, nil
		}

		b.logger.Infof("sampling %d start offsets from %d usable days", sim.Count, usable)
		plans := make([]trialPlan, sim.Count)
		for i := range plans {
			plans[i] = trialPlan{index: i, offset: rng.Intn(usable)}
		}
		return plans, nil
	}

	plans := make([]trialPlan, sim.Count)
	for i := range plans {
		plans[i] = trialPlan{index: i, seed: rng.Int63()}
	}
	return plans, nil
}

// newTrial builds the trial for one plan, including its private return
// source.
func (b *Batch) newTrial(plan trialPlan, schedules *Schedules) *Trial {
	var source ReturnSource
	switch b.cfg.Returns.Mode {
	case domain.ReturnModeHistorical:
		source = NewBootstrapSource(b.series, plan.offset)
	case domain.ReturnModeFixed:
		source = NewFixedSource(b.cfg.Returns.Rate)
	default:
		source = NewSyntheticSource(b.cfg.Returns.Mean, b.cfg.Returns.StdDev, plan.seed)
	}
	return NewTrial(plan.index, plan.offset, b.cfg.Simulation.Years, b.cfg.Accounts, schedules, source)
}

// runAggregate runs every planned trial through a bounded worker pool.
// Results land at their trial index, so row order is stable no matter how
// the goroutines schedule.
func (b *Batch) runAggregate(plans []trialPlan) (*domain.BatchResult, error) {
	schedules := NewSchedules(b.cfg)
	outcomes := make([]domain.TrialOutcome, len(plans))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentTrials)

	for i := range plans {
		wg.Add(1)
		go func(plan trialPlan) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire semaphore
			defer func() { <-semaphore }() // Release semaphore

			outcome, _ := b.newTrial(plan, schedules).Run()
			outcomes[plan.index] = outcome
		}(plans[i])
	}

	wg.Wait()

	ruined := 0
	for _, outcome := range outcomes {
		if outcome.Status == domain.StatusRuined {
			ruined++
			b.logger.Debugf("trial %d ruined in year %d, uncovered deficit %s",
				outcome.Trial, outcome.RuinYear, outcome.Deficit.StringFixed(2))
		}
	}
	b.logger.Infof("completed %d trials, %d ruined", len(outcomes), ruined)

	return &domain.BatchResult{
		Bootstrap: b.cfg.Bootstrap(),
		Outcomes:  outcomes,
	}, nil
}

// runTrace replays exactly one planned trial and returns its per-year
// records. The plans are drawn the same way as an aggregate run, so the
// trace matches the corresponding aggregate row.
func (b *Batch) runTrace(plans []trialPlan) (*domain.BatchResult, error) {
	selected := b.cfg.Simulation.Trial
	if selected >= len(plans) {
		return nil, fmt.Errorf("trial %d out of range, batch has %d trials", selected, len(plans))
	}

	outcome, records := b.newTrial(plans[selected], NewSchedules(b.cfg)).Run()
	if outcome.Status == domain.StatusRuined {
		b.logger.Warnf("trial %d ruined in year %d, uncovered deficit %s",
			outcome.Trial, outcome.RuinYear, outcome.Deficit.StringFixed(2))
	}

	return &domain.BatchResult{
		Bootstrap:  b.cfg.Bootstrap(),
		Trace:      records,
		TraceTrial: selected,
	}, nil
}
