// Package constants provides shared constants for the asset-runway application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Simulation constants
const (
	// HorizonYears is the maximum number of years the runway simulation advances.
	HorizonYears = 50

	// CriticalRunwayYears is the threshold below which a finite runway is
	// reported as critical.
	CriticalRunwayYears = 10

	// DefaultInflationRate is applied when the region cannot be resolved.
	DefaultInflationRate = 0.04
)

// Document analysis constants
const (
	// MaxDocumentChars is the character budget handed to the extraction model;
	// longer documents are truncated and the result confidence is capped.
	MaxDocumentChars = 15000

	// MinDocumentChars is the minimum amount of usable text required before
	// any extraction is attempted.
	MinDocumentChars = 50

	// TruncatedConfidenceCap is the maximum confidence reported for a
	// truncated document.
	TruncatedConfidenceCap = 0.7

	// MaxUploadSizeBytes is the maximum accepted document upload (10 MB).
	MaxUploadSizeBytes int64 = 10 * 1024 * 1024
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"
)
