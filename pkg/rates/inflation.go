package rates

import (
	"strings"

	"github.com/avalle/asset-runway/pkg/constants"
)

// InflationInfo describes the inflation guidance for a region: a point
// default used by the simulator plus the typical range for reporting.
type InflationInfo struct {
	Region    string
	Rate      float64
	RangeLow  float64
	RangeHigh float64
}

// inflationTable holds per-region inflation guidance keyed by coarse region
// code.
var inflationTable = map[string]InflationInfo{
	"US": {Region: "United States", Rate: 0.03, RangeLow: 0.02, RangeHigh: 0.04},
	"UK": {Region: "United Kingdom", Rate: 0.03, RangeLow: 0.02, RangeHigh: 0.04},
	"EU": {Region: "European Union", Rate: 0.025, RangeLow: 0.02, RangeHigh: 0.03},
	"JP": {Region: "Japan", Rate: 0.01, RangeLow: 0.00, RangeHigh: 0.02},
}

// timezonePrefixes maps IANA timezone area prefixes to coarse region codes.
// Snapshots carry a timezone rather than a region code.
var timezonePrefixes = map[string]string{
	"america":   "US",
	"europe":    "EU",
	"asia":      "",
	"australia": "",
	"africa":    "",
	"pacific":   "",
}

// Inflation resolves inflation guidance for a region. The input may be a
// coarse region code ("US", "EU") or an IANA timezone ("America/New_York").
// Unknown or empty regions fall back to the fixed default; this never fails.
func Inflation(region string) InflationInfo {
	code := strings.ToUpper(strings.TrimSpace(region))
	if info, ok := inflationTable[code]; ok {
		return info
	}

	if area, _, found := strings.Cut(region, "/"); found {
		if mapped, ok := timezonePrefixes[strings.ToLower(area)]; ok && mapped != "" {
			if strings.EqualFold(area, "europe") && strings.Contains(region, "London") {
				return inflationTable["UK"]
			}
			return inflationTable[mapped]
		}
	}

	return InflationInfo{
		Region:    region,
		Rate:      constants.DefaultInflationRate,
		RangeLow:  0.035,
		RangeHigh: 0.04,
	}
}
