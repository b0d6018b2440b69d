// Package simulation defines the runway snapshot types and computes the
// year-by-year asset-depletion projection.
package simulation

import (
	"github.com/google/uuid"
)

// Asset is a single asset position in a runway snapshot.
type Asset struct {
	ID          string             `json:"id" yaml:"id"`
	Name        string             `json:"name" yaml:"name"`
	Type        string             `json:"type" yaml:"type"`
	Ticker      string             `json:"ticker,omitempty" yaml:"ticker,omitempty"`
	Balance     float64            `json:"balance" yaml:"balance"`
	Currency    string             `json:"currency" yaml:"currency"`
	GrowthRates map[string]float64 `json:"growth_rates,omitempty" yaml:"growthRates,omitempty"`
}

// Debt is an outstanding debt in a runway snapshot.
type Debt struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	DebtType       string  `json:"debt_type" yaml:"debtType"`
	CurrentBalance float64 `json:"current_balance" yaml:"currentBalance"`
	InterestRate   float64 `json:"interest_rate" yaml:"interestRate"`
	MonthlyPayment float64 `json:"monthly_payment" yaml:"monthlyPayment"`
}

// MonthlyStats is one month of compressed income/expense history.
type MonthlyStats struct {
	Month    string  `json:"month" yaml:"month"`
	Income   float64 `json:"income" yaml:"income"`
	Expenses float64 `json:"expenses" yaml:"expenses"`
}

// Snapshot is the complete financial picture a runway projection starts
// from. It is a value record built fresh per request.
type Snapshot struct {
	Assets              []Asset        `json:"assets" yaml:"assets"`
	Debts               []Debt         `json:"debts" yaml:"debts"`
	AnnualPassiveIncome float64        `json:"annual_passive_income" yaml:"annualPassiveIncome"`
	AnnualExpenses      float64        `json:"annual_expenses" yaml:"annualExpenses"`
	MonthlyHistory      []MonthlyStats `json:"monthly_history,omitempty" yaml:"monthlyHistory,omitempty"`
	NetWorth            float64        `json:"net_worth" yaml:"netWorth"`
	Currency            string         `json:"currency" yaml:"currency"`
	// Region is a coarse region code or IANA timezone used only for the
	// inflation lookup.
	Region string `json:"timezone,omitempty" yaml:"region,omitempty"`
}

// EnsureIDs assigns a fresh ID to any asset or debt that arrived without
// one.
func (s *Snapshot) EnsureIDs() {
	for i := range s.Assets {
		if s.Assets[i].ID == "" {
			s.Assets[i].ID = uuid.NewString()
		}
	}
	for i := range s.Debts {
		if s.Debts[i].ID == "" {
			s.Debts[i].ID = uuid.NewString()
		}
	}
}

// TotalAssets sums all asset balances.
func (s *Snapshot) TotalAssets() float64 {
	total := 0.0
	for _, a := range s.Assets {
		total += a.Balance
	}
	return total
}

// TotalDebts sums all debt balances.
func (s *Snapshot) TotalDebts() float64 {
	total := 0.0
	for _, d := range s.Debts {
		total += d.CurrentBalance
	}
	return total
}

// YearProjection is one year of the runway projection.
type YearProjection struct {
	Year          int     `json:"year"`
	NetWorth      float64 `json:"net_worth"`
	Assets        float64 `json:"assets"`
	Debts         float64 `json:"debts"`
	Expenses      float64 `json:"expenses"`
	PassiveIncome float64 `json:"passive_income"`
	Gap           float64 `json:"gap"`
	Notes         string  `json:"notes,omitempty"`
}

// Milestone annotates a simulation year with a notable transition.
type Milestone struct {
	Year   int    `json:"year"`
	Event  string `json:"event"`
	Impact string `json:"impact"`
}

// RunwayStatus classifies the terminal verdict of a projection.
type RunwayStatus string

const (
	// StatusInfinite means the simulation survived the full horizon.
	StatusInfinite RunwayStatus = "infinite"

	// StatusFinite means liquid assets deplete at or after the critical
	// threshold.
	StatusFinite RunwayStatus = "finite"

	// StatusCritical means liquid assets deplete in under ten years.
	StatusCritical RunwayStatus = "critical"
)

// Assumptions reports the rates the projection was computed under.
type Assumptions struct {
	InflationRate float64            `json:"inflation_rate"`
	GrowthRates   map[string]float64 `json:"growth_rates"`
	Reasoning     string             `json:"reasoning"`
}

// Strategy reports the withdrawal policy the projection followed.
type Strategy struct {
	WithdrawalOrder []string `json:"withdrawal_order"`
	KeepAssets      []string `json:"keep_assets"`
	Reasoning       string   `json:"reasoning"`
}

// Result is the complete runway projection.
type Result struct {
	Assumptions  Assumptions      `json:"assumptions"`
	Strategy     Strategy         `json:"strategy"`
	Projection   []YearProjection `json:"projection"`
	Milestones   []Milestone      `json:"milestones"`
	Suggestions  []string         `json:"suggestions"`
	RunwayYears  int              `json:"runway_years"`
	RunwayStatus RunwayStatus     `json:"runway_status"`
}
