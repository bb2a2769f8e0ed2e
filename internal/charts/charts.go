// Package charts renders an amortization schedule as an HTML page of charts:
// per-payment allocation, remaining balance, cumulative totals, and an
// interest-vs-principal bar comparison over the first five years.
package charts

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hamii31/loan-calculator/pkg/amortization"
	"github.com/hamii31/loan-calculator/pkg/constants"
)

// RenderPage writes the chart page for a computed schedule to w.
func RenderPage(w io.Writer, schedule *amortization.Schedule) error {
	records := schedule.Records

	months := make([]int, len(records))
	interest := make([]opts.LineData, len(records))
	principal := make([]opts.LineData, len(records))
	balance := make([]opts.LineData, len(records))
	cumulativeInterest := make([]opts.LineData, len(records))
	cumulativePrincipal := make([]opts.LineData, len(records))
	for i, record := range records {
		months[i] = record.Period
		interest[i] = opts.LineData{Value: record.Interest}
		principal[i] = opts.LineData{Value: record.Principal}
		balance[i] = opts.LineData{Value: record.RemainingBalance}
		cumulativeInterest[i] = opts.LineData{Value: record.CumulativeInterest}
		cumulativePrincipal[i] = opts.LineData{Value: record.CumulativePrincipal}
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		allocationChart(months, interest, principal),
		balanceChart(months, balance),
		cumulativeChart(months, cumulativeInterest, cumulativePrincipal),
		breakdownChart(records),
	)
	return page.Render(w)
}

func newLine(title, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Month"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)
	return line
}

func allocationChart(months []int, interest, principal []opts.LineData) *charts.Line {
	line := newLine("Monthly Payment Allocation", "Amount ($)")
	line.SetXAxis(months).
		AddSeries("Interest", interest).
		AddSeries("Principal", principal)
	return line
}

func balanceChart(months []int, balance []opts.LineData) *charts.Line {
	line := newLine("Remaining Balance Over Time", "Balance ($)")
	line.SetXAxis(months).
		AddSeries("Remaining Balance", balance).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func cumulativeChart(months []int, cumulativeInterest, cumulativePrincipal []opts.LineData) *charts.Line {
	line := newLine("Cumulative Payments", "Cumulative ($)")
	line.SetXAxis(months).
		AddSeries("Cumulative Interest", cumulativeInterest).
		AddSeries("Cumulative Principal", cumulativePrincipal)
	return line
}

// breakdownChart compares interest and principal portions per payment,
// truncated to the first five years to stay readable for long schedules.
func breakdownChart(records []amortization.PaymentRecord) *charts.Bar {
	truncated := amortization.First(records, constants.DefaultChartPeriods)

	months := make([]int, len(truncated))
	interest := make([]opts.BarData, len(truncated))
	principal := make([]opts.BarData, len(truncated))
	for i, record := range truncated {
		months[i] = record.Period
		interest[i] = opts.BarData{Value: record.Interest}
		principal[i] = opts.BarData{Value: record.Principal}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Interest vs Principal per Payment (First 5 Years)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Month"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Monthly Amount ($)"}),
	)
	bar.SetXAxis(months).
		AddSeries("Interest", interest).
		AddSeries("Principal", principal)
	return bar
}
