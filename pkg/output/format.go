// Package output provides utilities for formatting and displaying schedules.
package output

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hamii31/loan-calculator/internal/config"
	"github.com/hamii31/loan-calculator/pkg/amortization"
	"github.com/hamii31/loan-calculator/pkg/constants"
	"github.com/hamii31/loan-calculator/pkg/export"
)

// ValidateFormat checks that the requested output format is supported.
func ValidateFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	}
	return fmt.Errorf("invalid output format %q (expected %s or %s)",
		format, constants.OutputFormatPretty, constants.OutputFormatCSV)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, loan config.LoanConfig, schedule *amortization.Schedule, warnings []string) {
	p := message.NewPrinter(language.English)

	_, _ = p.Fprintf(w, "--- Loan Amortization Schedule ---\n")
	_, _ = p.Fprintf(w, "Loan Amount:           $%.2f\n", loan.Principal)
	_, _ = p.Fprintf(w, "Annual Interest Rate:  %.1f%%\n", loan.AnnualRatePercent)
	_, _ = p.Fprintf(w, "Monthly Interest Rate: %.3f%%\n", loan.MonthlyRate()*constants.PercentageMultiplier)
	_, _ = p.Fprintf(w, "Monthly Payment:       $%.2f\n\n", loan.MonthlyPayment)

	_, _ = p.Fprintf(w, "Total Interest Paid:   $%.2f\n", schedule.TotalInterest)
	_, _ = p.Fprintf(w, "Total Principal Paid:  $%.2f\n", schedule.TotalPrincipal)
	_, _ = p.Fprintf(w, "Total Payments:        $%.2f\n", schedule.TotalInterest+schedule.TotalPrincipal)
	years, months := schedule.PayoffYearsMonths()
	_, _ = p.Fprintf(w, "Payoff Time:           %dy %dm\n", years, months)

	if schedule.FullyAmortized() {
		_, _ = p.Fprintf(w, "Loan will be paid off in %d years and %d months.\n", years, months)
	} else {
		_, _ = p.Fprintf(w, "WARNING: loan will not be fully paid off in %d years. Remaining balance: $%.2f\n",
			loan.TermYears, schedule.FinalBalance())
	}

	for _, warning := range warnings {
		_, _ = fmt.Fprintf(w, "WARNING: %s\n", warning)
	}

	_, _ = fmt.Fprintf(w, "\nMonth | Year | Payment       | Interest      | Principal     | Remaining Balance\n")
	_, _ = fmt.Fprintf(w, "_____ | ____ | _______       | ________      | _________     | _________________\n")
	for _, record := range schedule.Records {
		_, _ = p.Fprintf(w, "%5d | %4d | $%.2f | $%.2f | $%.2f | $%.2f\n",
			record.Period, record.Year, record.Payment, record.Interest,
			record.Principal, record.RemainingBalance)
	}

	insights := amortization.Insights(loan.Parameters(), schedule)
	if len(insights) > 0 {
		_, _ = fmt.Fprintf(w, "\nKey Insights:\n")
		for _, insight := range insights {
			_, _ = fmt.Fprintf(w, "- %s\n", insight)
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, schedule *amortization.Schedule) error {
	return export.WriteCSV(w, schedule.Records)
}
