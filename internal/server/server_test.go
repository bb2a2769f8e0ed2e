package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hamii31/loan-calculator/internal/cache"
)

func newTestHandler() http.Handler {
	return NewHandler(zap.NewNop(), cache.NewMemoryCache(), "test")
}

func postSchedule(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleScheduleSuccess(t *testing.T) {
	handler := newTestHandler()

	rr := postSchedule(t, handler, `{"principal":10000,"annualRatePercent":0,"termYears":1,"monthlyPayment":1000}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp scheduleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Records) != 10 {
		t.Errorf("expected 10 records, got %d", len(resp.Records))
	}
	if !resp.PaidOff {
		t.Error("expected PaidOff = true")
	}
	if resp.TotalInterest != 0 {
		t.Errorf("TotalInterest = %.2f, want 0", resp.TotalInterest)
	}
	if resp.TotalPrincipal != 10000 {
		t.Errorf("TotalPrincipal = %.2f, want 10000", resp.TotalPrincipal)
	}
	if resp.PeriodsToPayoff != 10 {
		t.Errorf("PeriodsToPayoff = %d, want 10", resp.PeriodsToPayoff)
	}
	if resp.CSV == "" {
		t.Error("expected CSV data in response")
	}
	if resp.Duration == "" {
		t.Error("expected duration in response")
	}
	if resp.PayoffYears != 0 || resp.PayoffMonths != 10 {
		t.Errorf("payoff split = %dy %dm, want 0y 10m", resp.PayoffYears, resp.PayoffMonths)
	}
}

func TestHandleScheduleUnamortizedWarning(t *testing.T) {
	handler := newTestHandler()

	rr := postSchedule(t, handler, `{"principal":90000,"annualRatePercent":17,"termYears":5,"monthlyPayment":1500}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp scheduleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.PaidOff {
		t.Error("expected PaidOff = false for slow-amortizing loan")
	}
	if resp.RemainingBalance <= 0 {
		t.Errorf("RemainingBalance = %.2f, want > 0", resp.RemainingBalance)
	}
	if len(resp.Records) != 60 {
		t.Errorf("expected 60 records, got %d", len(resp.Records))
	}
	if len(resp.Insights) == 0 {
		t.Error("expected insights in response")
	}
}

func TestHandleScheduleRecordFilters(t *testing.T) {
	handler := newTestHandler()

	rr := postSchedule(t, handler, `{"principal":90000,"annualRatePercent":17,"termYears":5,"monthlyPayment":1500,"filterYear":2,"firstN":6}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp scheduleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Records) != 6 {
		t.Fatalf("expected 6 filtered records, got %d", len(resp.Records))
	}
	for i, row := range resp.Records {
		if row.Year != 2 {
			t.Errorf("record %d: year = %d, want 2", i, row.Year)
		}
	}
	// Totals still describe the full schedule.
	if resp.PeriodsToPayoff != 60 {
		t.Errorf("PeriodsToPayoff = %d, want 60", resp.PeriodsToPayoff)
	}
}

func TestHandleScheduleInvalidParameters(t *testing.T) {
	handler := newTestHandler()

	tests := []struct {
		name string
		body string
	}{
		{name: "Zero principal", body: `{"principal":0,"annualRatePercent":5,"termYears":5,"monthlyPayment":500}`},
		{name: "Negative rate", body: `{"principal":10000,"annualRatePercent":-5,"termYears":5,"monthlyPayment":500}`},
		{name: "Zero term", body: `{"principal":10000,"annualRatePercent":5,"termYears":0,"monthlyPayment":500}`},
		{name: "Malformed JSON", body: `{"principal":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postSchedule(t, handler, tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestHandleScheduleMethodNotAllowed(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/schedule", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rr.Code)
	}
}

func TestHandleScheduleCacheHit(t *testing.T) {
	handler := newTestHandler()
	body := `{"principal":10000,"annualRatePercent":5,"termYears":2,"monthlyPayment":500}`

	first := postSchedule(t, handler, body)
	if first.Code != http.StatusOK {
		t.Fatalf("first request: expected status 200, got %d", first.Code)
	}
	second := postSchedule(t, handler, body)
	if second.Code != http.StatusOK {
		t.Fatalf("second request: expected status 200, got %d", second.Code)
	}

	if first.Body.String() != second.Body.String() {
		t.Error("cached response differs from computed response")
	}
}

func TestHandleScheduleCSV(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet,
		"/api/schedule/csv?principal=90000&annualRatePercent=17&termYears=5&monthlyPayment=1500", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", got)
	}
	if got := rr.Header().Get("Content-Disposition"); !strings.Contains(got, "loan_amortization_schedule_90000_17.0pct.csv") {
		t.Errorf("Content-Disposition = %q, want conventional filename", got)
	}

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	if len(lines) != 61 {
		t.Errorf("expected header plus 60 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Month,Year,Payment") {
		t.Errorf("unexpected CSV header: %q", lines[0])
	}
}

func TestHandleScheduleCSVMissingQuery(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/schedule/csv", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleCharts(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet,
		"/charts?principal=90000&annualRatePercent=17&termYears=5&monthlyPayment=1500", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", got)
	}
	if !strings.Contains(rr.Body.String(), "Remaining Balance Over Time") {
		t.Error("chart page missing balance chart")
	}
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "test" {
		t.Errorf("version = %q, want test", resp["version"])
	}
}
