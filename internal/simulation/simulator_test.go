package simulation

import (
	"strings"
	"testing"

	"github.com/avalle/asset-runway/pkg/constants"
)

func TestRunDepletionYear(t *testing.T) {
	tests := []struct {
		name           string
		liquid         float64
		gap            float64
		expectedYear   int
		expectedStatus RunwayStatus
	}{
		{"Exact division", 100, 20, 5, StatusCritical},
		{"Rounds up", 100, 30, 4, StatusCritical},
		{"Single year", 10, 100, 1, StatusCritical},
		{"Finite at threshold", 1000, 100, 10, StatusFinite},
		{"Finite long runway", 3000, 100, 30, StatusFinite},
		{"Critical just under threshold", 900, 100, 9, StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Expenses of zero sidestep inflation; the constant gap is
			// expressed as negative passive income.
			snapshot := Snapshot{
				Assets:              []Asset{{Name: "Savings", Type: "cash", Balance: tt.liquid, GrowthRates: map[string]float64{"5y": 0}}},
				AnnualExpenses:      0,
				AnnualPassiveIncome: -tt.gap,
				Currency:            "USD",
			}
			result := NewSimulator(nil).Run(snapshot)
			if result.RunwayYears != tt.expectedYear {
				t.Errorf("RunwayYears = %d, expected %d", result.RunwayYears, tt.expectedYear)
			}
			if result.RunwayStatus != tt.expectedStatus {
				t.Errorf("RunwayStatus = %s, expected %s", result.RunwayStatus, tt.expectedStatus)
			}
		})
	}
}

func TestRunSurvivesHorizonWithZeroGap(t *testing.T) {
	snapshot := Snapshot{
		Assets:         []Asset{{Name: "Savings", Type: "cash", Balance: 1000, GrowthRates: map[string]float64{"5y": 0}}},
		AnnualExpenses: 0,
		Currency:       "USD",
	}
	result := NewSimulator(nil).Run(snapshot)
	if result.RunwayStatus != StatusInfinite {
		t.Errorf("RunwayStatus = %s, expected infinite", result.RunwayStatus)
	}
	if result.RunwayYears != constants.HorizonYears {
		t.Errorf("RunwayYears = %d, expected horizon cap %d", result.RunwayYears, constants.HorizonYears)
	}
	if len(result.Projection) != constants.HorizonYears+1 {
		t.Errorf("projection has %d rows, expected %d (year 0 through 50)",
			len(result.Projection), constants.HorizonYears+1)
	}
}

func TestRunProjectionYearsStrictlyIncreasing(t *testing.T) {
	result := NewSimulator(nil).Run(Snapshot{
		Assets:              []Asset{{Name: "Savings", Type: "cash", Balance: 500}},
		AnnualPassiveIncome: -100,
		Currency:            "USD",
	})
	for i, row := range result.Projection {
		if row.Year != i {
			t.Fatalf("projection[%d].Year = %d, expected %d", i, row.Year, i)
		}
	}
}

func TestRunNeverNegativeBalances(t *testing.T) {
	snapshot := Snapshot{
		Assets: []Asset{
			{Name: "Savings", Type: "cash", Balance: 5000},
			{Name: "Index fund", Type: "etf", Balance: 20000},
			{Name: "Home", Type: "real_estate", Balance: 300000},
		},
		Debts: []Debt{
			{Name: "Card", DebtType: "credit_card", CurrentBalance: 2000, InterestRate: 0.2, MonthlyPayment: 300},
		},
		AnnualExpenses:      60000,
		AnnualPassiveIncome: 1000,
		Currency:            "USD",
		Region:              "US",
	}
	result := NewSimulator(nil).Run(snapshot)
	for _, row := range result.Projection {
		if row.Assets < 0 {
			t.Errorf("year %d assets = %.2f, expected >= 0", row.Year, row.Assets)
		}
		if row.Debts < 0 {
			t.Errorf("year %d debts = %.2f, expected >= 0", row.Year, row.Debts)
		}
	}
}

func TestRunWithdrawalOrder(t *testing.T) {
	// A 100/year gap drains cash (150) before touching the deposit.
	snapshot := Snapshot{
		Assets: []Asset{
			{Name: "Checking", Type: "cash", Balance: 150, GrowthRates: map[string]float64{"5y": 0}},
			{Name: "Term deposit", Type: "deposit", Balance: 1000, GrowthRates: map[string]float64{"5y": 0}},
		},
		AnnualPassiveIncome: -100,
		Currency:            "USD",
	}

	result := NewSimulator(nil).Run(snapshot)
	// After year 1: cash 50, deposit 1000. After year 2: cash 0, deposit 950.
	year2 := result.Projection[2]
	if year2.Assets != 950 {
		t.Errorf("year 2 assets = %.2f, expected 950 (cash exhausted first)", year2.Assets)
	}
}

func TestRunRealEstateNeverSold(t *testing.T) {
	snapshot := Snapshot{
		Assets: []Asset{
			{Name: "Savings", Type: "cash", Balance: 100, GrowthRates: map[string]float64{"5y": 0}},
			{Name: "Home", Type: "real_estate", Balance: 500000, GrowthRates: map[string]float64{"5y": 0}},
		},
		AnnualPassiveIncome: -100,
		Currency:            "USD",
	}
	result := NewSimulator(nil).Run(snapshot)

	// Liquid is gone after year 1 even though the home retains its value.
	if result.RunwayYears != 1 {
		t.Fatalf("RunwayYears = %d, expected 1", result.RunwayYears)
	}
	final := result.Projection[len(result.Projection)-1]
	if final.Assets != 500000 {
		t.Errorf("final assets = %.2f, expected 500000 (home untouched)", final.Assets)
	}
}

func TestRunGrowthApplied(t *testing.T) {
	// No gap, 7% default growth on a lone stock position.
	snapshot := Snapshot{
		Assets:         []Asset{{Name: "Shares", Type: "stock", Balance: 10000}},
		AnnualExpenses: 0,
		Currency:       "USD",
	}
	result := NewSimulator(nil).Run(snapshot)
	year1 := result.Projection[1]
	if year1.Assets != 10700 {
		t.Errorf("year 1 assets = %.2f, expected 10700", year1.Assets)
	}
}

func TestRunAssetRateOverridesDefault(t *testing.T) {
	snapshot := Snapshot{
		Assets:         []Asset{{Name: "Hot fund", Type: "stock", Balance: 10000, GrowthRates: map[string]float64{"5y": 0.12}}},
		AnnualExpenses: 0,
		Currency:       "USD",
	}
	result := NewSimulator(nil).Run(snapshot)
	if result.Projection[1].Assets != 11200 {
		t.Errorf("year 1 assets = %.2f, expected 11200 from the 5y bucket rate", result.Projection[1].Assets)
	}
	if result.Assumptions.GrowthRates["stock"] != 0.12 {
		t.Errorf("assumptions stock rate = %v, expected 0.12", result.Assumptions.GrowthRates["stock"])
	}
}

func TestRunDebtPaidOffMilestone(t *testing.T) {
	// 9000 at 0% with 300/month retires in 2.5 years of annual paydowns.
	snapshot := Snapshot{
		Assets: []Asset{{Name: "Savings", Type: "cash", Balance: 1000000, GrowthRates: map[string]float64{"5y": 0}}},
		Debts: []Debt{
			{Name: "Car loan", DebtType: "auto", CurrentBalance: 9000, InterestRate: 0, MonthlyPayment: 300},
		},
		AnnualExpenses: 0,
		Currency:       "USD",
	}
	result := NewSimulator(nil).Run(snapshot)

	var payoff *Milestone
	for i := range result.Milestones {
		if strings.Contains(result.Milestones[i].Event, "Car loan") {
			payoff = &result.Milestones[i]
		}
	}
	if payoff == nil {
		t.Fatalf("no payoff milestone in %v", result.Milestones)
	}
	if payoff.Year != 3 {
		t.Errorf("payoff year = %d, expected 3", payoff.Year)
	}
	if !strings.Contains(payoff.Impact, "3,600") {
		t.Errorf("impact = %q, expected the annual payment amount", payoff.Impact)
	}

	// The retired debt stops contributing to the gap.
	year4 := result.Projection[4]
	if year4.Gap != 0 {
		t.Errorf("year 4 gap = %.2f, expected 0 after payoff", year4.Gap)
	}
}

func TestRunUnderwaterDebtNoted(t *testing.T) {
	snapshot := Snapshot{
		Assets: []Asset{{Name: "Savings", Type: "cash", Balance: 1000000, GrowthRates: map[string]float64{"5y": 0}}},
		Debts: []Debt{
			{Name: "Bad loan", DebtType: "personal_loan", CurrentBalance: 100000, InterestRate: 0.20, MonthlyPayment: 100},
		},
		AnnualExpenses: 0,
		Currency:       "USD",
	}
	result := NewSimulator(nil).Run(snapshot)

	if !strings.Contains(result.Projection[1].Notes, "underwater") {
		t.Errorf("year 1 notes = %q, expected underwater note", result.Projection[1].Notes)
	}
	// Noted once, not every year.
	if strings.Contains(result.Projection[2].Notes, "underwater") {
		t.Errorf("underwater note repeated in year 2: %q", result.Projection[2].Notes)
	}
	// The balance grows rather than shrinking, and the run still completes.
	if result.Projection[5].Debts <= 100000 {
		t.Errorf("underwater debt balance = %.2f, expected growth past 100000", result.Projection[5].Debts)
	}

	found := false
	for _, s := range result.Suggestions {
		if strings.Contains(s, "Bad loan") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a suggestion about the underwater debt, got %v", result.Suggestions)
	}
}

func TestRunInflationCompounds(t *testing.T) {
	// US inflation (3%); expenses inflate each year so the gap grows.
	snapshot := Snapshot{
		Assets:         []Asset{{Name: "Savings", Type: "cash", Balance: 1000000, GrowthRates: map[string]float64{"5y": 0}}},
		AnnualExpenses: 10000,
		Currency:       "USD",
		Region:         "US",
	}
	result := NewSimulator(nil).Run(snapshot)
	year1 := result.Projection[1]
	year2 := result.Projection[2]
	if year1.Expenses != 10300 {
		t.Errorf("year 1 expenses = %.2f, expected 10300", year1.Expenses)
	}
	if year2.Expenses != 10609 {
		t.Errorf("year 2 expenses = %.2f, expected 10609", year2.Expenses)
	}
	if year2.Gap <= year1.Gap {
		t.Errorf("gap should grow with inflation: year1 %.2f, year2 %.2f", year1.Gap, year2.Gap)
	}
}

func TestRunDepletionMilestone(t *testing.T) {
	result := NewSimulator(nil).Run(Snapshot{
		Assets:              []Asset{{Name: "Savings", Type: "cash", Balance: 100, GrowthRates: map[string]float64{"5y": 0}}},
		AnnualPassiveIncome: -50,
		Currency:            "USD",
	})
	found := false
	for _, m := range result.Milestones {
		if m.Event == "Liquid assets depleted" && m.Year == result.RunwayYears {
			found = true
		}
	}
	if !found {
		t.Errorf("expected depletion milestone at year %d, got %v", result.RunwayYears, result.Milestones)
	}
}

func TestEnsureIDs(t *testing.T) {
	snapshot := Snapshot{
		Assets: []Asset{{Name: "Savings", Type: "cash", Balance: 100}, {ID: "keep-me", Name: "Fund", Type: "etf", Balance: 50}},
		Debts:  []Debt{{Name: "Card", CurrentBalance: 10}},
	}
	snapshot.EnsureIDs()
	if snapshot.Assets[0].ID == "" {
		t.Error("blank asset ID not assigned")
	}
	if snapshot.Assets[1].ID != "keep-me" {
		t.Errorf("existing ID overwritten: %q", snapshot.Assets[1].ID)
	}
	if snapshot.Debts[0].ID == "" {
		t.Error("blank debt ID not assigned")
	}
}
