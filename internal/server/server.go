// Package server exposes the amortization engine over HTTP: a JSON schedule
// API, a CSV download, a chart page, and a version endpoint.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hamii31/loan-calculator/internal/cache"
	"github.com/hamii31/loan-calculator/internal/charts"
	"github.com/hamii31/loan-calculator/internal/config"
	"github.com/hamii31/loan-calculator/pkg/amortization"
	"github.com/hamii31/loan-calculator/pkg/export"
)

type handler struct {
	logger  *zap.Logger
	cache   cache.Cache
	version string
}

// NewHandler constructs the HTTP handler that serves the schedule API.
func NewHandler(logger *zap.Logger, responseCache cache.Cache, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if responseCache == nil {
		responseCache = cache.NewMemoryCache()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, cache: responseCache, version: trimmedVersion}

	mux := http.NewServeMux()

	// Schedule API endpoint (JSON in, JSON out)
	mux.HandleFunc("/api/schedule", h.handleSchedule)

	// CSV download of a full schedule
	mux.HandleFunc("/api/schedule/csv", h.handleScheduleCSV)

	// Rendered chart page
	mux.HandleFunc("/charts", h.handleCharts)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

// scheduleRequest mirrors the user-facing loan inputs: annual percentage
// rate and a term in years. FilterYear and FirstN are optional table
// controls applied to the returned records only.
type scheduleRequest struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermYears         int     `json:"termYears"`
	MonthlyPayment    float64 `json:"monthlyPayment"`
	FilterYear        int     `json:"filterYear,omitempty"`
	FirstN            int     `json:"firstN,omitempty"`
}

type scheduleResponse struct {
	Records          []scheduleRow `json:"records"`
	TotalInterest    float64       `json:"totalInterest"`
	TotalPrincipal   float64       `json:"totalPrincipal"`
	TotalPayments    float64       `json:"totalPayments"`
	PeriodsToPayoff  int           `json:"periodsToPayoff"`
	PayoffYears      int           `json:"payoffYears"`
	PayoffMonths     int           `json:"payoffMonths"`
	PaidOff          bool          `json:"paidOff"`
	RemainingBalance float64       `json:"remainingBalance"`
	Warnings         []string      `json:"warnings,omitempty"`
	Insights         []string      `json:"insights,omitempty"`
	CSV              string        `json:"csv"`
	Duration         string        `json:"duration"`
}

type scheduleRow struct {
	Period              int     `json:"period"`
	Year                int     `json:"year"`
	Payment             float64 `json:"payment"`
	Interest            float64 `json:"interest"`
	Principal           float64 `json:"principal"`
	RemainingBalance    float64 `json:"remainingBalance"`
	CumulativeInterest  float64 `json:"cumulativeInterest"`
	CumulativePrincipal float64 `json:"cumulativePrincipal"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"

	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	key := cacheKey(req)
	if cached, ok := h.cache.Get(r.Context(), key); ok {
		h.logger.Debug("serving cached schedule",
			zap.String("op", op),
			zap.String("key", key),
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(cached))
		return
	}

	loan := config.LoanConfig{
		Principal:         req.Principal,
		AnnualRatePercent: req.AnnualRatePercent,
		TermYears:         req.TermYears,
		MonthlyPayment:    req.MonthlyPayment,
	}

	schedule, err := amortization.Compute(loan.Parameters())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, amortization.ErrInvalidParameter) {
			status = http.StatusBadRequest
		}
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	records := schedule.Records
	if req.FilterYear > 0 {
		records = amortization.FilterYear(records, req.FilterYear)
	}
	if req.FirstN > 0 {
		records = amortization.First(records, req.FirstN)
	}

	var csvBody strings.Builder
	if err := export.WriteCSV(&csvBody, schedule.Records); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to serialize CSV: %v", err), op)
		return
	}

	rows := make([]scheduleRow, len(records))
	for i, record := range records {
		rows[i] = scheduleRow{
			Period:              record.Period,
			Year:                record.Year,
			Payment:             record.Payment,
			Interest:            record.Interest,
			Principal:           record.Principal,
			RemainingBalance:    record.RemainingBalance,
			CumulativeInterest:  record.CumulativeInterest,
			CumulativePrincipal: record.CumulativePrincipal,
		}
	}

	years, months := schedule.PayoffYearsMonths()
	resp := scheduleResponse{
		Records:          rows,
		TotalInterest:    schedule.TotalInterest,
		TotalPrincipal:   schedule.TotalPrincipal,
		TotalPayments:    schedule.TotalInterest + schedule.TotalPrincipal,
		PeriodsToPayoff:  schedule.PeriodsToPayoff,
		PayoffYears:      years,
		PayoffMonths:     months,
		PaidOff:          schedule.FullyAmortized(),
		RemainingBalance: schedule.FinalBalance(),
		Warnings:         loan.Warnings(),
		Insights:         amortization.Insights(loan.Parameters(), schedule),
		CSV:              csvBody.String(),
		Duration:         time.Since(start).String(),
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode response: %v", err), op)
		return
	}

	if err := h.cache.Set(r.Context(), key, string(payload)); err != nil {
		// A failed cache write is not worth failing the request over.
		h.logger.Warn("failed to cache schedule response",
			zap.String("op", op),
			zap.String("key", key),
			zap.Error(err),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *handler) handleScheduleCSV(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScheduleCSV"

	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	loan, err := parseLoanQuery(r)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	schedule, err := amortization.Compute(loan.Parameters())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, amortization.ErrInvalidParameter) {
			status = http.StatusBadRequest
		}
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	filename := export.Filename(loan.Principal, loan.AnnualRatePercent)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if err := export.WriteCSV(w, schedule.Records); err != nil {
		h.logger.Error("failed to write CSV response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleCharts(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCharts"

	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	loan, err := parseLoanQuery(r)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	schedule, err := amortization.Compute(loan.Parameters())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, amortization.ErrInvalidParameter) {
			status = http.StatusBadRequest
		}
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.RenderPage(w, schedule); err != nil {
		h.logger.Error("failed to render chart page",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

// parseLoanQuery reads the loan parameters from URL query values, e.g.
// /charts?principal=90000&annualRatePercent=17&termYears=5&monthlyPayment=1500
func parseLoanQuery(r *http.Request) (config.LoanConfig, error) {
	var loan config.LoanConfig

	query := r.URL.Query()
	principal, err := strconv.ParseFloat(query.Get("principal"), 64)
	if err != nil {
		return loan, fmt.Errorf("invalid principal %q", query.Get("principal"))
	}
	rate, err := strconv.ParseFloat(query.Get("annualRatePercent"), 64)
	if err != nil {
		return loan, fmt.Errorf("invalid annualRatePercent %q", query.Get("annualRatePercent"))
	}
	termYears, err := strconv.Atoi(query.Get("termYears"))
	if err != nil {
		return loan, fmt.Errorf("invalid termYears %q", query.Get("termYears"))
	}
	payment, err := strconv.ParseFloat(query.Get("monthlyPayment"), 64)
	if err != nil {
		return loan, fmt.Errorf("invalid monthlyPayment %q", query.Get("monthlyPayment"))
	}

	loan.Principal = principal
	loan.AnnualRatePercent = rate
	loan.TermYears = termYears
	loan.MonthlyPayment = payment
	return loan, nil
}

func cacheKey(req scheduleRequest) string {
	return fmt.Sprintf("schedule:%g:%g:%d:%g:%d:%d",
		req.Principal, req.AnnualRatePercent, req.TermYears, req.MonthlyPayment,
		req.FilterYear, req.FirstN)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Warn(msg,
		zap.String("op", op),
		zap.Int("status", status),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.Error(err),
		)
	}
}
