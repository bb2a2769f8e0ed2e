// Package export serializes amortization schedules for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/hamii31/loan-calculator/pkg/amortization"
)

var csvHeader = []string{
	"Month",
	"Year",
	"Payment",
	"Interest",
	"Principal",
	"Remaining_Balance",
	"Total_Interest",
	"Total_Principal",
}

// WriteCSV writes the schedule as comma-separated values with a header row
// and one row per payment period.
func WriteCSV(w io.Writer, records []amortization.PaymentRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Period),
			strconv.Itoa(record.Year),
			formatAmount(record.Payment),
			formatAmount(record.Interest),
			formatAmount(record.Principal),
			formatAmount(record.RemainingBalance),
			formatAmount(record.CumulativeInterest),
			formatAmount(record.CumulativePrincipal),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for period %d: %w", record.Period, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Filename returns the conventional download name for a schedule, encoding
// the principal and annual percentage rate.
func Filename(principal, annualRatePercent float64) string {
	return fmt.Sprintf("loan_amortization_schedule_%.0f_%.1fpct.csv", principal, annualRatePercent)
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
