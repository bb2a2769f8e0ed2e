package amortization

import (
	"fmt"

	"github.com/hamii31/loan-calculator/pkg/mathutil"
)

// Insights derives human-readable observations from a computed schedule:
// the first payment's interest/principal split, year-one totals, and the
// total interest cost relative to the principal.
func Insights(params Parameters, schedule *Schedule) []string {
	if len(schedule.Records) == 0 {
		return nil
	}

	var insights []string

	first := schedule.Records[0]
	interestShare := mathutil.Percentage(first.Interest, params.MonthlyPayment)
	insights = append(insights, fmt.Sprintf(
		"First payment breakdown: %.1f%% goes to interest ($%.2f) vs %.1f%% to principal ($%.2f)",
		interestShare, first.Interest, 100-interestShare, first.Principal))

	if len(schedule.Records) >= 12 {
		yearOneInterest := 0.0
		yearOnePrincipal := 0.0
		for _, record := range FilterYear(schedule.Records, 1) {
			yearOneInterest += record.Interest
			yearOnePrincipal += record.Principal
		}
		insights = append(insights, fmt.Sprintf(
			"Year 1 totals: $%.2f in interest, $%.2f in principal",
			yearOneInterest, yearOnePrincipal))
	}

	if schedule.FullyAmortized() {
		costRatio := mathutil.Percentage(schedule.TotalInterest, params.Principal)
		insights = append(insights, fmt.Sprintf(
			"Total cost: $%.2f in interest over the life of the loan (%.1f%% of the original principal)",
			schedule.TotalInterest, costRatio))
	}

	insights = append(insights,
		"Early payoff benefit: extra principal payments reduce the total interest paid")

	return insights
}
