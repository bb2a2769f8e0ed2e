// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/hamii31/loan-calculator/pkg/amortization"
	"github.com/hamii31/loan-calculator/pkg/constants"
	"github.com/hamii31/loan-calculator/pkg/mathutil"
)

// Configuration holds all configuration for loan-calculator.
type Configuration struct {
	Loan    LoanConfig
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoanConfig holds the loan parameters as entered by the user: the rate is
// an annual percentage and the term is in years.
type LoanConfig struct {
	Principal         float64
	AnnualRatePercent float64
	TermYears         int
	MonthlyPayment    float64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// MonthlyRate converts the annual percentage rate to a monthly decimal rate.
func (l LoanConfig) MonthlyRate() float64 {
	return l.AnnualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// Parameters converts the user-facing loan configuration into engine inputs.
func (l LoanConfig) Parameters() amortization.Parameters {
	return amortization.Parameters{
		Principal:      l.Principal,
		MonthlyRate:    l.MonthlyRate(),
		MonthlyPayment: l.MonthlyPayment,
		MaxYears:       l.TermYears,
	}
}

// Warnings reports input-layer policy violations: range limits stricter than
// the engine's preconditions, and a payment too small to cover the first
// month's interest. Warnings never block a computation.
func (l LoanConfig) Warnings() []string {
	var warnings []string

	if l.Principal < constants.MinPrincipal || l.Principal > constants.MaxPrincipal {
		warnings = append(warnings, fmt.Sprintf(
			"principal %.2f is outside the supported range [%.0f, %.0f]",
			l.Principal, constants.MinPrincipal, constants.MaxPrincipal))
	}
	if l.AnnualRatePercent < constants.MinAnnualRatePercent || l.AnnualRatePercent > constants.MaxAnnualRatePercent {
		warnings = append(warnings, fmt.Sprintf(
			"annual rate %.2f%% is outside the supported range [%.1f%%, %.1f%%]",
			l.AnnualRatePercent, constants.MinAnnualRatePercent, constants.MaxAnnualRatePercent))
	}
	if l.TermYears < constants.MinTermYears || l.TermYears > constants.MaxTermYears {
		warnings = append(warnings, fmt.Sprintf(
			"term of %d years is outside the supported range [%d, %d]",
			l.TermYears, constants.MinTermYears, constants.MaxTermYears))
	}
	if l.MonthlyPayment < constants.MinMonthlyPayment || l.MonthlyPayment > constants.MaxMonthlyPayment {
		warnings = append(warnings, fmt.Sprintf(
			"monthly payment %.2f is outside the supported range [%.0f, %.0f]",
			l.MonthlyPayment, constants.MinMonthlyPayment, constants.MaxMonthlyPayment))
	}

	firstInterest := mathutil.Round(l.Principal * l.MonthlyRate())
	if l.MonthlyPayment < firstInterest {
		warnings = append(warnings, fmt.Sprintf(
			"monthly payment %.2f does not cover the first month's interest %.2f; the balance will grow",
			l.MonthlyPayment, firstInterest))
	}

	return warnings
}

// Validate performs configuration validation and returns warnings.
func (conf *Configuration) Validate() []string {
	return conf.Loan.Warnings()
}
