package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hamii31/loan-calculator/internal/config"
	"github.com/hamii31/loan-calculator/pkg/amortization"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{name: "Pretty", format: "pretty", wantErr: false},
		{name: "CSV", format: "csv", wantErr: false},
		{name: "Unknown", format: "xml", wantErr: true},
		{name: "Empty", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestPrettyFormatUnamortizedLoan(t *testing.T) {
	loan := config.LoanConfig{Principal: 90000, AnnualRatePercent: 17.0, TermYears: 5, MonthlyPayment: 1500}
	schedule, err := amortization.Compute(loan.Parameters())
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}

	var buf bytes.Buffer
	PrettyFormat(&buf, loan, schedule, []string{"test warning"})
	got := buf.String()

	if !strings.Contains(got, "--- Loan Amortization Schedule ---") {
		t.Error("PrettyFormat missing header")
	}
	if !strings.Contains(got, "Loan Amount:           $90,000.00") {
		t.Error("PrettyFormat missing comma-grouped loan amount")
	}
	if !strings.Contains(got, "Monthly Interest Rate: 1.417%") {
		t.Error("PrettyFormat missing monthly rate")
	}
	if !strings.Contains(got, "WARNING: loan will not be fully paid off in 5 years") {
		t.Error("PrettyFormat missing unamortized warning")
	}
	if !strings.Contains(got, "WARNING: test warning") {
		t.Error("PrettyFormat missing passed-in warning")
	}
	if !strings.Contains(got, "Month | Year | Payment") {
		t.Error("PrettyFormat missing table header")
	}
	if !strings.Contains(got, "Key Insights:") {
		t.Error("PrettyFormat missing insights section")
	}
}

func TestPrettyFormatPaidOffLoan(t *testing.T) {
	loan := config.LoanConfig{Principal: 10000, AnnualRatePercent: 0, TermYears: 1, MonthlyPayment: 1000}
	schedule, err := amortization.Compute(loan.Parameters())
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}

	var buf bytes.Buffer
	PrettyFormat(&buf, loan, schedule, nil)
	got := buf.String()

	if !strings.Contains(got, "Loan will be paid off in 0 years and 10 months.") {
		t.Error("PrettyFormat missing paid-off notice")
	}
	if !strings.Contains(got, "Total Interest Paid:   $0.00") {
		t.Error("PrettyFormat missing zero total interest")
	}
}

func TestCsvFormat(t *testing.T) {
	loan := config.LoanConfig{Principal: 10000, AnnualRatePercent: 0, TermYears: 1, MonthlyPayment: 1000}
	schedule, err := amortization.Compute(loan.Parameters())
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := CsvFormat(&buf, schedule); err != nil {
		t.Fatalf("CsvFormat() unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected header plus 10 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Month,Year,Payment") {
		t.Errorf("unexpected CSV header: %q", lines[0])
	}
}
