package validation

import (
	"fmt"
)

// AssetInfo carries the asset fields relevant to snapshot validation.
type AssetInfo struct {
	Name    string
	Type    string
	Balance float64
}

// DebtInfo carries the debt fields relevant to snapshot validation.
type DebtInfo struct {
	Name           string
	CurrentBalance float64
	InterestRate   float64
	MonthlyPayment float64
}

// ValidateSnapshot checks a runway snapshot for values that would make a
// projection misleading and returns human-readable warnings. It never blocks
// the simulation; hard constraints (negative balances) are reported so the
// caller can reject the request at its own boundary.
func ValidateSnapshot(assets []AssetInfo, debts []DebtInfo, annualExpenses, annualPassiveIncome float64) []string {
	var warnings []string

	for _, asset := range assets {
		if asset.Balance < 0 {
			warnings = append(warnings, fmt.Sprintf("Asset '%s' has a negative balance (%.2f)", asset.Name, asset.Balance))
		}
		if asset.Type == "" {
			warnings = append(warnings, fmt.Sprintf("Asset '%s' has no type; it will grow at 0%%", asset.Name))
		}
	}

	for _, debt := range debts {
		if debt.CurrentBalance < 0 {
			warnings = append(warnings, fmt.Sprintf("Debt '%s' has a negative balance (%.2f)", debt.Name, debt.CurrentBalance))
		}
		if debt.MonthlyPayment < 0 {
			warnings = append(warnings, fmt.Sprintf("Debt '%s' has a negative monthly payment (%.2f)", debt.Name, debt.MonthlyPayment))
		}
		if debt.InterestRate > 1.0 {
			warnings = append(warnings, fmt.Sprintf("Debt '%s' interest rate %.2f looks like a percentage; expected a decimal (0.06 = 6%%)", debt.Name, debt.InterestRate))
		}
	}

	if annualExpenses < 0 {
		warnings = append(warnings, fmt.Sprintf("Annual expenses are negative (%.2f)", annualExpenses))
	}
	if annualPassiveIncome < 0 {
		warnings = append(warnings, fmt.Sprintf("Annual passive income is negative (%.2f)", annualPassiveIncome))
	}

	return warnings
}
