// Package optimizer searches for the maximum sustainable annual spending of
// a snapshot: the largest living-expense level whose projection still
// survives the full horizon.
package optimizer

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/avalle/asset-runway/internal/simulation"
	"github.com/avalle/asset-runway/pkg/constants"
)

// MaxIterations bounds the bisection loop.
const MaxIterations = 100

// ErrNoSustainableSpending indicates the snapshot depletes even with zero
// living expenses, so no spending level can be sustained.
var ErrNoSustainableSpending = errors.New("assets deplete even with zero expenses; no spending level is sustainable")

// Summary reports the outcome of one spending search.
type Summary struct {
	// MaxAnnualSpending is the largest sustainable annual expense level
	// found, in the snapshot currency.
	MaxAnnualSpending float64 `json:"max_annual_spending"`

	// BaselineSpending echoes the snapshot's own annual expenses.
	BaselineSpending float64 `json:"baseline_spending"`

	// Headroom is MaxAnnualSpending minus BaselineSpending; negative when
	// current spending already exceeds the sustainable level.
	Headroom float64 `json:"headroom"`

	Iterations int  `json:"iterations"`
	Converged  bool `json:"converged"`
}

// Runner drives spending searches over a simulator.
type Runner struct {
	logger *zap.Logger
	sim    *simulation.Simulator
}

// NewRunner constructs a Runner.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, sim: simulation.NewSimulator(logger)}
}

// MaxSustainableSpending bisects on annual expenses until the sustainable
// level is bracketed within the currency tolerance. The snapshot itself is
// never modified; each probe runs on a copy.
func (r *Runner) MaxSustainableSpending(snapshot simulation.Snapshot) (Summary, error) {
	summary := Summary{BaselineSpending: snapshot.AnnualExpenses}

	if !r.sustains(snapshot, 0) {
		return summary, ErrNoSustainableSpending
	}

	lower, upper, iterations := r.bracket(snapshot)
	summary.Iterations = iterations

	if upper < 0 {
		// Bracketing never found an unsustainable level; the upper probe
		// bound itself is sustainable.
		summary.MaxAnnualSpending = lower
		summary.Headroom = lower - summary.BaselineSpending
		summary.Converged = false
		return summary, nil
	}

	for summary.Iterations < MaxIterations && math.Abs(upper-lower) > constants.CurrencyTolerance {
		mid := lower + (upper-lower)/2
		summary.Iterations++
		if r.sustains(snapshot, mid) {
			lower = mid
		} else {
			upper = mid
		}
	}

	summary.MaxAnnualSpending = lower
	summary.Headroom = lower - summary.BaselineSpending
	summary.Converged = math.Abs(upper-lower) <= constants.CurrencyTolerance

	r.logger.Debug("spending search complete",
		zap.String("op", "optimizer.MaxSustainableSpending"),
		zap.Float64("max_annual_spending", summary.MaxAnnualSpending),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
	)

	return summary, nil
}

// bracket doubles an upper probe until it finds an unsustainable spending
// level. It returns the last sustainable level, the first unsustainable one
// (-1 when none was found), and the probes spent.
func (r *Runner) bracket(snapshot simulation.Snapshot) (float64, float64, int) {
	lower := 0.0
	probe := snapshot.AnnualExpenses
	if probe < 1000 {
		probe = 1000
	}

	iterations := 0
	for i := 0; i < 60; i++ {
		iterations++
		if r.sustains(snapshot, probe) {
			lower = probe
			probe *= 2
			continue
		}
		return lower, probe, iterations
	}
	return lower, -1, iterations
}

func (r *Runner) sustains(snapshot simulation.Snapshot, annualExpenses float64) bool {
	probe := snapshot
	probe.AnnualExpenses = annualExpenses
	result := r.sim.Run(probe)
	return result.RunwayStatus == simulation.StatusInfinite
}
