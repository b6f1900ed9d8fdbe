package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bprsb-tools/kpr-quote/internal/cache"
	"github.com/bprsb-tools/kpr-quote/internal/engine"
	"github.com/bprsb-tools/kpr-quote/pkg/fees"
	"go.uber.org/zap"
)

func newTestHandler(quoteCache cache.Cache) http.Handler {
	return NewHandler(zap.NewNop(), engine.New(zap.NewNop()), quoteCache, "test")
}

func postJSON(t *testing.T, handler http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleQuoteSuccess(t *testing.T) {
	handler := newTestHandler(nil)

	rr := postJSON(t, handler, "/api/quote", engine.Input{
		PropertyPrice: "500000000",
		LoanAmount:    "400000000",
		TermYears:     "10",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp quoteResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.State != engine.StateComputed {
		t.Fatalf("state = %s, expected computed", resp.State)
	}
	if resp.Quote == nil {
		t.Fatal("expected quote in response")
	}
	if math.Abs(resp.Quote.MonthlyInstallment-5_626_666.67) > 0.01 {
		t.Errorf("installment = %.2f, expected 5626666.67", resp.Quote.MonthlyInstallment)
	}
	if resp.Duration == "" {
		t.Error("expected duration in response")
	}
	if resp.Labels[fees.KindPowerOfAttorney] != "PK Notaril" {
		t.Errorf("binding label = %q, expected PK Notaril", resp.Labels[fees.KindPowerOfAttorney])
	}
}

func TestHandleQuoteInvalidInput(t *testing.T) {
	handler := newTestHandler(nil)

	rr := postJSON(t, handler, "/api/quote", engine.Input{
		PropertyPrice: "500000000",
		LoanAmount:    "600000000",
		TermYears:     "10",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp quoteResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.State != engine.StateInvalid {
		t.Errorf("state = %s, expected invalid", resp.State)
	}
	if resp.Message != "Plafon pinjaman tidak boleh melebihi harga rumah." {
		t.Errorf("message = %q, expected localized loan-exceeds-price text", resp.Message)
	}
	if resp.Quote != nil {
		t.Error("expected no quote for invalid input")
	}
}

func TestHandleQuoteEmptyInput(t *testing.T) {
	handler := newTestHandler(nil)

	rr := postJSON(t, handler, "/api/quote", engine.Input{})

	var resp quoteResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.State != engine.StateEmpty {
		t.Errorf("state = %s, expected empty", resp.State)
	}
	if resp.Message != "" {
		t.Errorf("message = %q, expected no message in quiescent state", resp.Message)
	}
}

func TestHandleQuoteMalformedBody(t *testing.T) {
	handler := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleQuoteMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/quote", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rr.Code)
	}
}

func TestHandleQuoteUsesCache(t *testing.T) {
	quoteCache := cache.NewMemory()
	handler := newTestHandler(quoteCache)

	input := engine.Input{
		PropertyPrice: "500000000",
		LoanAmount:    "400000000",
		TermYears:     "10",
	}

	first := postJSON(t, handler, "/api/quote", input)
	var firstResp quoteResponse
	if err := json.Unmarshal(first.Body.Bytes(), &firstResp); err != nil {
		t.Fatalf("failed to decode first response: %v", err)
	}
	if firstResp.Cached {
		t.Error("first evaluation should not be served from cache")
	}
	if quoteCache.Len() != 1 {
		t.Fatalf("cache holds %d entries after first call, expected 1", quoteCache.Len())
	}

	second := postJSON(t, handler, "/api/quote", input)
	var secondResp quoteResponse
	if err := json.Unmarshal(second.Body.Bytes(), &secondResp); err != nil {
		t.Fatalf("failed to decode second response: %v", err)
	}
	if !secondResp.Cached {
		t.Error("second evaluation should be served from cache")
	}

	// Cached or not, the quote must be identical (idempotence).
	if secondResp.Quote.TotalDueAtDisbursement != firstResp.Quote.TotalDueAtDisbursement {
		t.Errorf("cached total due %.2f differs from computed %.2f",
			secondResp.Quote.TotalDueAtDisbursement, firstResp.Quote.TotalDueAtDisbursement)
	}
}

func TestHandleQuoteCacheIgnoresInvalidStates(t *testing.T) {
	quoteCache := cache.NewMemory()
	handler := newTestHandler(quoteCache)

	postJSON(t, handler, "/api/quote", engine.Input{
		PropertyPrice: "500000000",
		LoanAmount:    "600000000",
		TermYears:     "10",
	})

	if quoteCache.Len() != 0 {
		t.Errorf("cache holds %d entries after invalid input, expected 0", quoteCache.Len())
	}
}

func TestHandleExportSuccess(t *testing.T) {
	handler := newTestHandler(nil)

	rr := postJSON(t, handler, "/api/quote/export", engine.Input{
		PropertyPrice: "500000000",
		LoanAmount:    "400000000",
		TermYears:     "10",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp exportResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Summary.PropertyPrice != "500000000" {
		t.Errorf("summary price = %q, expected verbatim input", resp.Summary.PropertyPrice)
	}
	if resp.Summary.GeneratedAt.IsZero() {
		t.Error("expected generation timestamp")
	}
	if resp.YAML == "" {
		t.Error("expected YAML in response")
	}
	if !strings.Contains(resp.Text, "Penawaran Simulasi Kredit Pemilikan Rumah (KPR)") {
		t.Error("expected rendered text document in response")
	}
}

func TestHandleExportRejectsUncomputableInput(t *testing.T) {
	handler := newTestHandler(nil)

	tests := []struct {
		name  string
		input engine.Input
	}{
		{
			name:  "Empty input",
			input: engine.Input{},
		},
		{
			name: "Invalid input",
			input: engine.Input{
				PropertyPrice: "500000000",
				LoanAmount:    "600000000",
				TermYears:     "10",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, handler, "/api/quote/export", tt.input)

			if rr.Code != http.StatusUnprocessableEntity {
				t.Errorf("expected status 422, got %d", rr.Code)
			}
		})
	}
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler(nil)

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
		t.Errorf("version = %q, expected test", resp["version"])
	}
}
