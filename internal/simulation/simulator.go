package simulation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/avalle/asset-runway/pkg/constants"
	"github.com/avalle/asset-runway/pkg/debt"
	"github.com/avalle/asset-runway/pkg/format"
	"github.com/avalle/asset-runway/pkg/holdings"
	"github.com/avalle/asset-runway/pkg/mathutil"
	"github.com/avalle/asset-runway/pkg/rates"
)

// WithdrawalOrder is the fixed priority in which liquid asset buckets are
// drawn down to cover a funding gap. Each bucket is exhausted before the
// next is touched.
var WithdrawalOrder = []string{
	holdings.TypeCash,
	holdings.TypeDeposit,
	holdings.TypeBond,
	holdings.TypeStock,
	holdings.TypeETF,
	holdings.TypeCrypto,
	holdings.TypeOther,
}

// KeepAssets are the asset categories never drawn down. Real estate is
// illiquid; selling it is out of scope for a runway projection.
var KeepAssets = []string{holdings.TypeRealEstate}

// Simulator computes runway projections. It performs no I/O and needs no
// configuration; the zero value with a nop logger is usable.
type Simulator struct {
	logger  *zap.Logger
	horizon int
}

// NewSimulator creates a simulator over the standard projection horizon.
func NewSimulator(logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{logger: logger, horizon: constants.HorizonYears}
}

// debtState tracks one debt across simulation years.
type debtState struct {
	Debt
	underwaterNoted bool
}

// Run advances the snapshot one year at a time until liquid assets deplete
// or the horizon is reached, and assembles the full projection result.
func (s *Simulator) Run(snapshot Snapshot) Result {
	inflation := rates.Inflation(snapshot.Region)
	buckets, bucketRates := s.buildBuckets(snapshot)

	debts := make([]*debtState, 0, len(snapshot.Debts))
	for _, d := range snapshot.Debts {
		state := debtState{Debt: d}
		if state.CurrentBalance < 0 {
			state.CurrentBalance = 0
		}
		debts = append(debts, &state)
	}

	result := Result{
		Assumptions: Assumptions{
			InflationRate: inflation.Rate,
			GrowthRates:   bucketRates,
			Reasoning: fmt.Sprintf("Inflation %.1f%% for %s (typical range %.1f-%.1f%%); growth from asset data where provided, type defaults otherwise.",
				inflation.Rate*100, inflation.Region, inflation.RangeLow*100, inflation.RangeHigh*100),
		},
		Strategy: Strategy{
			WithdrawalOrder: WithdrawalOrder,
			KeepAssets:      KeepAssets,
			Reasoning:       "Draw down the most liquid, lowest-growth buckets first; real estate is never sold.",
		},
		Milestones: []Milestone{},
	}

	// Year 0 is the unmodified snapshot.
	initialGap := snapshot.AnnualExpenses + annualDebtPayments(debts) - snapshot.AnnualPassiveIncome
	result.Projection = append(result.Projection, s.record(0, buckets, debts, snapshot.AnnualExpenses, snapshot.AnnualPassiveIncome, initialGap, ""))

	depletedYear := 0
	for year := 1; year <= s.horizon; year++ {
		gap, notes := s.advanceYear(year, inflation.Rate, snapshot, buckets, bucketRates, debts, &result.Milestones)

		livingExpenses := snapshot.AnnualExpenses * math.Pow(1+inflation.Rate, float64(year))
		result.Projection = append(result.Projection, s.record(year, buckets, debts, livingExpenses, snapshot.AnnualPassiveIncome, gap, notes))

		if !mathutil.IsPositive(s.liquidTotal(buckets)) {
			depletedYear = year
			result.Milestones = append(result.Milestones, Milestone{
				Year:   year,
				Event:  "Liquid assets depleted",
				Impact: "Spending can no longer be funded from liquid holdings",
			})
			break
		}
	}

	if depletedYear == 0 {
		result.RunwayYears = s.horizon
		result.RunwayStatus = StatusInfinite
	} else {
		result.RunwayYears = depletedYear
		if depletedYear < constants.CriticalRunwayYears {
			result.RunwayStatus = StatusCritical
		} else {
			result.RunwayStatus = StatusFinite
		}
	}

	result.Suggestions = s.buildSuggestions(snapshot, debts, buckets, result.RunwayStatus)

	s.logger.Debug("runway simulation complete",
		zap.String("op", "simulation.Run"),
		zap.Int("runway_years", result.RunwayYears),
		zap.String("runway_status", string(result.RunwayStatus)),
	)

	return result
}

// buildBuckets aggregates asset balances by type and resolves each bucket's
// growth rate. Types outside the closed set, empty ones included, fold into
// the other bucket so every balance stays inside the withdrawal order. An
// asset-supplied bucketed rate map wins over the type default; the first
// asset of a type carrying one decides for the bucket.
func (s *Simulator) buildBuckets(snapshot Snapshot) (map[string]float64, map[string]float64) {
	buckets := make(map[string]float64)
	bucketRates := make(map[string]float64)
	pinned := make(map[string]bool)

	for _, asset := range snapshot.Assets {
		assetType := strings.ToLower(strings.TrimSpace(asset.Type))
		if !holdings.ValidTypes[assetType] {
			assetType = holdings.TypeOther
		}
		balance := asset.Balance
		if balance < 0 {
			balance = 0
		}
		buckets[assetType] += balance

		if len(asset.GrowthRates) > 0 && !pinned[assetType] {
			bucketRates[assetType] = rates.AssetRate(asset.GrowthRates, assetType)
			pinned[assetType] = true
		} else if _, ok := bucketRates[assetType]; !ok {
			bucketRates[assetType] = rates.DefaultRate(assetType)
		}
	}

	return buckets, bucketRates
}

// advanceYear applies one year's transition in place. It returns the funding
// gap it withdrew against, computed over the debts active at the start of the
// year so a debt retiring during the year still shows in that year's gap.
func (s *Simulator) advanceYear(year int, inflationRate float64, snapshot Snapshot,
	buckets, bucketRates map[string]float64, debts []*debtState, milestones *[]Milestone) (float64, string) {

	livingExpenses := snapshot.AnnualExpenses * math.Pow(1+inflationRate, float64(year))
	gap := livingExpenses + annualDebtPayments(debts) - snapshot.AnnualPassiveIncome

	if gap > 0 {
		s.withdraw(gap, buckets)
	}

	for assetType, balance := range buckets {
		if balance <= 0 {
			continue
		}
		buckets[assetType] = balance * (1 + bucketRates[assetType])
	}

	var notes []string
	for _, d := range debts {
		if !mathutil.IsPositive(d.CurrentBalance) {
			continue
		}
		principal := debt.AnnualPrincipal(d.CurrentBalance, d.InterestRate, d.MonthlyPayment)
		if principal <= 0 {
			// Underwater: the balance grows and the debt never retires.
			d.CurrentBalance -= principal
			if !d.underwaterNoted {
				d.underwaterNoted = true
				notes = append(notes, fmt.Sprintf("debt '%s' is underwater: payments do not cover interest", d.Name))
			}
			continue
		}

		d.CurrentBalance -= principal
		if d.CurrentBalance <= 0 {
			d.CurrentBalance = 0
			*milestones = append(*milestones, Milestone{
				Year:   year,
				Event:  fmt.Sprintf("%s paid off", d.Name),
				Impact: format.AnnualImpact(-d.MonthlyPayment*constants.MonthsPerYear, "debt payments end"),
			})
		}
	}

	if len(notes) == 0 {
		return gap, ""
	}
	note := notes[0]
	for _, n := range notes[1:] {
		note += "; " + n
	}
	return gap, note
}

// withdraw covers a positive gap from liquid buckets in the fixed order,
// exhausting each before the next. Kept categories are never touched. A
// remaining shortfall simply leaves every liquid bucket at zero.
func (s *Simulator) withdraw(gap float64, buckets map[string]float64) {
	remaining := gap
	for _, assetType := range WithdrawalOrder {
		if remaining <= 0 {
			break
		}
		available := buckets[assetType]
		if available <= 0 {
			continue
		}
		taken := math.Min(available, remaining)
		buckets[assetType] = available - taken
		remaining -= taken
	}
}

func (s *Simulator) liquidTotal(buckets map[string]float64) float64 {
	total := 0.0
	for _, assetType := range WithdrawalOrder {
		total += buckets[assetType]
	}
	return total
}

func annualDebtPayments(debts []*debtState) float64 {
	total := 0.0
	for _, d := range debts {
		if mathutil.IsPositive(d.CurrentBalance) {
			total += d.MonthlyPayment * constants.MonthsPerYear
		}
	}
	return total
}

// record captures a year snapshot. The gap is the one the year was advanced
// with, not re-derived from the mutated debt states. Balances are rounded to
// cents and never negative.
func (s *Simulator) record(year int, buckets map[string]float64, debts []*debtState,
	livingExpenses, passiveIncome, gap float64, notes string) YearProjection {

	totalAssets := 0.0
	for _, balance := range buckets {
		if balance > 0 {
			totalAssets += balance
		}
	}
	totalDebts := 0.0
	for _, d := range debts {
		if d.CurrentBalance > 0 {
			totalDebts += d.CurrentBalance
		}
	}

	return YearProjection{
		Year:          year,
		NetWorth:      mathutil.Round(totalAssets - totalDebts),
		Assets:        mathutil.Round(totalAssets),
		Debts:         mathutil.Round(totalDebts),
		Expenses:      mathutil.Round(livingExpenses),
		PassiveIncome: mathutil.Round(passiveIncome),
		Gap:           mathutil.Round(gap),
		Notes:         notes,
	}
}

// buildSuggestions derives deterministic advice from the snapshot and the
// terminal state.
func (s *Simulator) buildSuggestions(snapshot Snapshot, debts []*debtState, buckets map[string]float64, status RunwayStatus) []string {
	var suggestions []string

	var underwater, highInterest []string
	for _, d := range debts {
		if d.underwaterNoted {
			underwater = append(underwater, d.Name)
		} else if d.InterestRate >= 0.08 && d.CurrentBalance > 0 {
			highInterest = append(highInterest, d.Name)
		}
	}
	sort.Strings(underwater)
	sort.Strings(highInterest)
	for _, name := range underwater {
		suggestions = append(suggestions, fmt.Sprintf("Increase the payment on '%s'; it does not cover the accruing interest", name))
	}
	for _, name := range highInterest {
		suggestions = append(suggestions, fmt.Sprintf("Prioritize paying down '%s'; its interest rate exceeds expected portfolio growth", name))
	}

	if snapshot.AnnualExpenses > 0 && buckets[holdings.TypeCash]+buckets[holdings.TypeDeposit] <= 0 {
		suggestions = append(suggestions, "Hold a cash or deposit buffer to avoid selling growth assets in a downturn")
	}

	switch status {
	case StatusCritical:
		suggestions = append(suggestions, "Runway is under ten years; reduce living expenses or increase passive income")
	case StatusInfinite:
		suggestions = append(suggestions, "Assets outlast the projection horizon under current assumptions")
	}

	return suggestions
}
