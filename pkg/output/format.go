// Package output provides utilities for formatting and displaying runway
// projection results.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/avalle/asset-runway/internal/simulation"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(result simulation.Result) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Runway projection: %s over %d years ---\n", result.RunwayStatus, result.RunwayYears)
	fmt.Printf("%s\n", result.Assumptions.Reasoning)
	fmt.Printf("Year | Net Worth       | Assets          | Debts           | Gap             | Notes\n")
	fmt.Printf("____ | _______________ | _______________ | _______________ | _______________ | _____\n")
	for _, year := range result.Projection {
		_, _ = p.Printf("%4d | $%.2f | $%.2f | $%.2f | $%.2f | %s\n",
			year.Year, year.NetWorth, year.Assets, year.Debts, year.Gap, year.Notes)
	}

	if len(result.Milestones) > 0 {
		fmt.Printf("\nMilestones:\n")
		for _, m := range result.Milestones {
			fmt.Printf("  year %d: %s (%s)\n", m.Year, m.Event, m.Impact)
		}
	}
	if len(result.Suggestions) > 0 {
		fmt.Printf("\nSuggestions:\n")
		for _, s := range result.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(result simulation.Result) {
	fmt.Printf(`"year","net_worth","assets","debts","expenses","passive_income","gap","notes"`)
	fmt.Printf("\n")
	for _, year := range result.Projection {
		fmt.Printf(`"%d","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%s"`,
			year.Year, year.NetWorth, year.Assets, year.Debts,
			year.Expenses, year.PassiveIncome, year.Gap, strings.ReplaceAll(year.Notes, `"`, `'`))
		fmt.Printf("\n")
	}
}

// JSONFormat outputs the full projection result as indented JSON.
func JSONFormat(result simulation.Result) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
