// Package constants provides shared constants for the loan-calculator application.
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

// Input range limits enforced by the presentation layer. These are stricter
// than the engine's own preconditions and produce warnings, never errors.
const (
	// MinPrincipal is the smallest loan amount accepted by the input layer
	MinPrincipal = 1000.0

	// MaxPrincipal is the largest loan amount accepted by the input layer
	MaxPrincipal = 1000000.0

	// MinAnnualRatePercent is the smallest annual interest rate (percent)
	MinAnnualRatePercent = 0.1

	// MaxAnnualRatePercent is the largest annual interest rate (percent)
	MaxAnnualRatePercent = 30.0

	// MinTermYears is the shortest loan term in years
	MinTermYears = 1

	// MaxTermYears is the longest loan term in years
	MaxTermYears = 30

	// MinMonthlyPayment is the smallest fixed monthly payment
	MinMonthlyPayment = 100.0

	// MaxMonthlyPayment is the largest fixed monthly payment
	MaxMonthlyPayment = 50000.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"
)

// Chart rendering constants
const (
	// DefaultChartPeriods is the number of periods shown on the
	// per-payment breakdown chart (first five years)
	DefaultChartPeriods = 60
)
