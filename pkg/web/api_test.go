package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/danielpaul/ft8encode/ft8"
	"github.com/danielpaul/ft8encode/pkg/logbook"
	"github.com/danielpaul/ft8encode/pkg/logger"
	"github.com/danielpaul/ft8encode/pkg/metrics"
)

func newTestAPI(t *testing.T) *API {
	t.Helper()
	log := logger.New(logger.Config{Level: "info"})
	encoder, err := ft8.New()
	if err != nil {
		t.Fatalf("ft8.New() failed: %v", err)
	}
	hub := NewWebSocketHub(log)
	return NewAPI(log, encoder, hub, nil, nil)
}

func TestAPI_Status(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()

	api.HandleStatus(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if _, ok := result["status"]; !ok {
		t.Error("Response doesn't contain status field")
	}
	if result["service"] != "ft8encode" {
		t.Errorf("Expected service ft8encode, got %v", result["service"])
	}
}

func TestAPI_Status_MethodNotAllowed(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/status", nil)
	w := httptest.NewRecorder()

	api.HandleStatus(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", resp.StatusCode)
	}
}

func TestAPI_Encode_Standard(t *testing.T) {
	api := newTestAPI(t)

	body, _ := json.Marshal(map[string]string{"message": "CQ K1ABC FN42"})
	req := httptest.NewRequest(http.MethodPost, "/api/encode", bytes.NewReader(body))
	w := httptest.NewRecorder()

	api.HandleEncode(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result encodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.Subtype != "Standard" {
		t.Errorf("Expected subtype Standard, got %s", result.Subtype)
	}
	if result.SymbolCount != ft8.TotalSymbols {
		t.Errorf("Expected %d symbols, got %d", ft8.TotalSymbols, result.SymbolCount)
	}
	if result.SampleRate != ft8.SampleRate {
		t.Errorf("Expected sample rate %d, got %d", ft8.SampleRate, result.SampleRate)
	}
	if result.TrajectorySize == 0 {
		t.Error("Expected non-zero trajectory size")
	}
}

func TestAPI_Encode_InvalidBody(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/encode", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()

	api.HandleEncode(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestAPI_Encode_UnsupportedSubtype(t *testing.T) {
	api := newTestAPI(t)

	body, _ := json.Marshal(map[string]string{"message": "hello there friend"})
	req := httptest.NewRequest(http.MethodPost, "/api/encode", bytes.NewReader(body))
	w := httptest.NewRecorder()

	api.HandleEncode(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unsupported subtype, got %d", resp.StatusCode)
	}
}

func TestAPI_Encode_MethodNotAllowed(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/encode", nil)
	w := httptest.NewRecorder()

	api.HandleEncode(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", resp.StatusCode)
	}
}

func TestAPI_Encode_RecordsLogbookAndMetrics(t *testing.T) {
	log := logger.New(logger.Config{Level: "info"})
	encoder, err := ft8.New()
	if err != nil {
		t.Fatalf("ft8.New() failed: %v", err)
	}

	dbPath := "/tmp/test_api_encode_logbook.db"
	defer func() { _ = os.Remove(dbPath) }()
	db, err := logbook.NewDB(logbook.Config{Path: dbPath}, log)
	if err != nil {
		t.Fatalf("logbook.NewDB() failed: %v", err)
	}
	defer func() { _ = db.Close() }()
	repo := logbook.NewRepository(db.GetDB())

	collector := metrics.NewCollector()
	api := NewAPI(log, encoder, NewWebSocketHub(log), repo, collector)

	body, _ := json.Marshal(map[string]string{"message": "CQ K1ABC FN42"})
	req := httptest.NewRequest(http.MethodPost, "/api/encode", bytes.NewReader(body))
	w := httptest.NewRecorder()
	api.HandleEncode(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Result().StatusCode)
	}

	records, err := repo.GetRecent(10)
	if err != nil {
		t.Fatalf("GetRecent() failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 logbook record, got %d", len(records))
	}
	if records[0].Subtype != "Standard" {
		t.Errorf("expected Subtype Standard, got %s", records[0].Subtype)
	}
	if records[0].PayloadHex == "" {
		t.Error("expected non-empty PayloadHex")
	}

	count, err := testCounterTotal(collector)
	if err != nil {
		t.Fatalf("failed to read metric: %v", err)
	}
	if count != 1 {
		t.Errorf("expected ft8encode_requests_total=1, got %v", count)
	}
}

// testCounterTotal sums the ft8encode_requests_total counter across all of
// its subtype label values.
func testCounterTotal(collector *metrics.Collector) (float64, error) {
	metricFamilies, err := collector.Registry().Gather()
	if err != nil {
		return 0, err
	}
	var total float64
	for _, mf := range metricFamilies {
		if mf.GetName() != "ft8encode_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total, nil
}

func TestDecimate(t *testing.T) {
	trajectory := make([]float32, 1000)
	for i := range trajectory {
		trajectory[i] = float32(i)
	}

	out := decimate(trajectory, 100)
	if len(out) != 100 {
		t.Fatalf("expected 100 samples, got %d", len(out))
	}

	short := make([]float32, 50)
	out = decimate(short, 100)
	if len(out) != 50 {
		t.Errorf("expected decimate to no-op below n, got %d samples", len(out))
	}
}
