// Package rates resolves expected asset growth rates and regional inflation
// rates from partial input data. Resolution never fails; missing data always
// falls through to a documented default.
package rates

import (
	"strconv"
	"strings"
)

// PreferredHorizon is the growth-rate bucket preferred when an asset carries
// its own bucketed rates (e.g. {"5y": 0.12, "10y": 0.08}).
const PreferredHorizon = "5y"

// defaultGrowthRates holds the per-asset-type annual growth defaults applied
// when an asset carries no usable rate data of its own.
var defaultGrowthRates = map[string]float64{
	"stock":       0.07,
	"etf":         0.07,
	"bond":        0.03,
	"cash":        0.00,
	"deposit":     0.02,
	"crypto":      0.00,
	"real_estate": 0.03,
	"other":       0.00,
}

// AssetRate resolves the expected annual growth rate for an asset. A bucketed
// growth-rate map wins when it carries the preferred horizon (or, failing
// that, any bucket); otherwise the per-type default applies.
func AssetRate(growthRates map[string]float64, assetType string) float64 {
	if len(growthRates) > 0 {
		if rate, ok := growthRates[PreferredHorizon]; ok {
			return rate
		}
		// No 5y bucket; take the shortest horizon available for determinism.
		best := ""
		for bucket := range growthRates {
			if best == "" || horizonLess(bucket, best) {
				best = bucket
			}
		}
		return growthRates[best]
	}
	return DefaultRate(assetType)
}

// horizonLess orders bucket labels by their leading year count ("3y" before
// "10y"); labels without one sort after numeric ones, lexicographically.
func horizonLess(a, b string) bool {
	na, aok := horizonYears(a)
	nb, bok := horizonYears(b)
	switch {
	case aok && bok:
		if na != nb {
			return na < nb
		}
		return a < b
	case aok:
		return true
	case bok:
		return false
	default:
		return a < b
	}
}

func horizonYears(bucket string) (int, bool) {
	i := 0
	for i < len(bucket) && bucket[i] >= '0' && bucket[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(bucket[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// DefaultRate returns the per-type default growth rate. Unknown types grow at
// 0% rather than failing.
func DefaultRate(assetType string) float64 {
	if rate, ok := defaultGrowthRates[strings.ToLower(strings.TrimSpace(assetType))]; ok {
		return rate
	}
	return 0.0
}

// DefaultRates returns a copy of the full per-type default table, used to
// report assumptions alongside a projection.
func DefaultRates() map[string]float64 {
	rates := make(map[string]float64, len(defaultGrowthRates))
	for assetType, rate := range defaultGrowthRates {
		rates[assetType] = rate
	}
	return rates
}
