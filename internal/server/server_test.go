package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/avalle/asset-runway/internal/simulation"
	"github.com/avalle/asset-runway/pkg/holdings"
	"github.com/avalle/asset-runway/pkg/testutil"
)

type stubGenerator struct {
	response string
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	return s.response, nil
}

func newTestHandler(response string) http.Handler {
	return NewHandler(nil, &stubGenerator{response: response}, 0, "test")
}

func postJSON(t *testing.T, h http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleVersion(t *testing.T) {
	h := newTestHandler("{}")
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if payload["version"] != "test" {
		t.Errorf("version = %q, want test", payload["version"])
	}
}

func TestHandleImport(t *testing.T) {
	h := newTestHandler(`{"assets": [{"name": "Apple Inc.", "type": "stock", "shares": 100, "currency": "USD", "confidence": 0.95}], "confidence": 0.9}`)

	doc := strings.Repeat("name,shares\nApple Inc.,100\n", 10)
	rec := postJSON(t, h, "/api/import", map[string]string{
		"file_content": base64.StdEncoding.EncodeToString([]byte(doc)),
		"file_type":    "csv",
		"file_name":    "statement.csv",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var result holdings.ExtractionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(result.Holdings) != 1 || result.Holdings[0].Name != "Apple Inc." {
		t.Errorf("unexpected extraction result: %+v", result)
	}
}

func TestHandleImportGarbageStaysOK(t *testing.T) {
	h := newTestHandler("no json here at all")

	doc := strings.Repeat("name,shares\nApple Inc.,100\n", 10)
	rec := postJSON(t, h, "/api/import", map[string]string{
		"file_content": base64.StdEncoding.EncodeToString([]byte(doc)),
		"file_type":    "csv",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for a degraded import; body: %s", rec.Code, rec.Body.String())
	}
	var result holdings.ExtractionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(result.Holdings) != 0 || result.Confidence != 0 {
		t.Errorf("expected empty zero-confidence result, got %+v", result)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning on the degraded result")
	}
}

func TestHandleImportBadFileType(t *testing.T) {
	h := newTestHandler("{}")
	rec := postJSON(t, h, "/api/import", map[string]string{
		"file_content": base64.StdEncoding.EncodeToString([]byte("hello")),
		"file_type":    "docx",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleImportBadBase64(t *testing.T) {
	h := newTestHandler("{}")
	rec := postJSON(t, h, "/api/import", map[string]string{
		"file_content": "not base64!!!",
		"file_type":    "csv",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleRunway(t *testing.T) {
	h := newTestHandler("{}")
	snapshot := simulation.Snapshot{
		Assets: []simulation.Asset{
			{Name: "Savings", Type: "cash", Balance: 100000, Currency: "USD"},
		},
		AnnualExpenses: 50000,
		Currency:       "USD",
	}

	rec := postJSON(t, h, "/api/runway", snapshot)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Result simulation.Result `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Result.RunwayStatus == "" {
		t.Error("expected a runway status in the response")
	}
	if len(resp.Result.Projection) == 0 {
		t.Error("expected a projection in the response")
	}
	if year0 := testutil.FindYear(resp.Result.Projection, 0); year0 == nil || year0.Assets != 100000 {
		t.Errorf("year 0 = %+v, expected the unmodified snapshot", year0)
	}
}

func TestHandleRunwayValidationWarnings(t *testing.T) {
	h := newTestHandler("{}")
	snapshot := simulation.Snapshot{
		Assets: []simulation.Asset{
			{Name: "Savings", Type: "cash", Balance: -100, Currency: "USD"},
		},
		AnnualExpenses: 50000,
	}

	rec := postJSON(t, h, "/api/runway", snapshot)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Warnings []string `json:"warnings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Warnings) == 0 {
		t.Error("expected validation warnings for a negative balance")
	}
}

func TestHandleRunwayOptimize(t *testing.T) {
	h := newTestHandler("{}")
	snapshot := simulation.Snapshot{
		Assets: []simulation.Asset{
			{Name: "Savings", Type: "cash", Balance: 1000000, Currency: "USD"},
		},
		AnnualExpenses: 30000,
		Currency:       "USD",
	}

	body, _ := json.Marshal(snapshot)
	req := httptest.NewRequest(http.MethodPost, "/api/runway?optimize=1", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Optimization *struct {
			MaxAnnualSpending float64 `json:"max_annual_spending"`
		} `json:"optimization"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Optimization == nil || resp.Optimization.MaxAnnualSpending <= 0 {
		t.Errorf("expected a positive optimization summary, got %+v", resp.Optimization)
	}
}

func TestHandleGrowthBadYears(t *testing.T) {
	h := newTestHandler("{}")
	req := httptest.NewRequest(http.MethodGet, "/api/growth/AAPL?years=zero", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleRunwayInvalidBody(t *testing.T) {
	h := newTestHandler("{}")
	req := httptest.NewRequest(http.MethodPost, "/api/runway", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
