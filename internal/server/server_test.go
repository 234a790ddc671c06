package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/raaihank/pii-shield/internal/config"
	"github.com/raaihank/pii-shield/internal/logger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.GetDefaults()
	cfg.Cache.Enabled = false
	cfg.Server.BatchLimit = 3

	log := &logger.Logger{Logger: zap.NewNop()}
	s, err := New(cfg, log)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// TestHealthAndInfo tests the service metadata endpoints
func TestHealthAndInfo(t *testing.T) {
	s := newTestServer(t)

	t.Run("Health", func(t *testing.T) {
		rec := doJSON(t, s, "GET", "/health", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid JSON response: %v", err)
		}
		if resp["status"] != "healthy" {
			t.Errorf("Status field = %q", resp["status"])
		}
	})

	t.Run("Info", func(t *testing.T) {
		rec := doJSON(t, s, "GET", "/", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "pii-shield") {
			t.Errorf("Info response missing service name: %s", rec.Body.String())
		}
	})

	t.Run("Types", func(t *testing.T) {
		rec := doJSON(t, s, "GET", "/types", nil)
		var resp struct {
			Types []string `json:"types"`
			Count int      `json:"count"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid JSON response: %v", err)
		}
		if resp.Count != 12 || len(resp.Types) != 12 {
			t.Errorf("Expected 12 types, got %d", resp.Count)
		}
	})
}

// TestDetectEndpoint tests POST /detect
func TestDetectEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("FindsEmail", func(t *testing.T) {
		rec := doJSON(t, s, "POST", "/detect", DetectRequest{Text: "Reach me at john@example.com"})
		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d: %s", rec.Code, rec.Body.String())
		}
		var resp DetectResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid JSON response: %v", err)
		}
		if resp.Count != 1 || resp.Matches[0].Type != "EMAIL" {
			t.Errorf("Unexpected result: %+v", resp)
		}
	})

	t.Run("TypeFilter", func(t *testing.T) {
		rec := doJSON(t, s, "POST", "/detect", DetectRequest{
			Text:  "john@example.com and SSN 123-45-6789",
			Types: []string{"ssn"},
		})
		var resp DetectResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid JSON response: %v", err)
		}
		if resp.Count != 1 || resp.Matches[0].Type != "SSN" {
			t.Errorf("Type filter not applied: %+v", resp)
		}
	})

	t.Run("MaskFlag", func(t *testing.T) {
		rec := doJSON(t, s, "POST", "/detect", DetectRequest{
			Text: "My SSN is 123-45-6789",
			Mask: true,
		})
		var resp DetectResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid JSON response: %v", err)
		}
		if resp.MaskedText != "My SSN is ***-**-6789" {
			t.Errorf("MaskedText = %q", resp.MaskedText)
		}
		if resp.Count != 1 {
			t.Errorf("Count = %d, want 1", resp.Count)
		}
	})

	t.Run("UnknownTypeRejected", func(t *testing.T) {
		rec := doJSON(t, s, "POST", "/detect", DetectRequest{
			Text:  "whatever",
			Types: []string{"SOCIAL_MEDIA"},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", rec.Code)
		}
	})

	t.Run("EmptyTextRejected", func(t *testing.T) {
		rec := doJSON(t, s, "POST", "/detect", DetectRequest{Text: ""})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", rec.Code)
		}
	})

	t.Run("MalformedBodyRejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/detect", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", rec.Code)
		}
	})
}

// TestMaskEndpoint tests POST /mask
func TestMaskEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/mask", MaskRequest{Text: "My SSN is 123-45-6789"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp MaskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if resp.MaskedText != "My SSN is ***-**-6789" {
		t.Errorf("MaskedText = %q", resp.MaskedText)
	}
	if resp.MatchesFound != 1 {
		t.Errorf("MatchesFound = %d, want 1", resp.MatchesFound)
	}
}

// TestSanitizeEndpoint tests POST /proxy/sanitize
func TestSanitizeEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/proxy/sanitize", MaskRequest{
		Text: "Prompt with card 4532148803436464 and email john@example.com",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp SanitizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if strings.Contains(resp.SanitizedText, "4532148803436464") {
		t.Errorf("Raw card number leaked: %q", resp.SanitizedText)
	}
	if len(resp.Warnings) != 2 {
		t.Errorf("Expected 2 warnings, got %+v", resp.Warnings)
	}
	for _, warning := range resp.Warnings {
		if strings.Contains(warning, "4532") || strings.Contains(warning, "john") {
			t.Errorf("Warning leaks a matched value: %q", warning)
		}
	}
}

// TestBatchDetectEndpoint tests POST /batch/detect
func TestBatchDetectEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("ResultsInOrder", func(t *testing.T) {
		rec := doJSON(t, s, "POST", "/batch/detect", BatchDetectRequest{
			Texts: []string{"SSN 123-45-6789", "nothing here"},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d: %s", rec.Code, rec.Body.String())
		}
		var resp BatchDetectResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid JSON response: %v", err)
		}
		if resp.Total != 2 {
			t.Fatalf("Total = %d, want 2", resp.Total)
		}
		if resp.Results[0].Count != 1 || resp.Results[1].Count != 0 {
			t.Errorf("Per-text counts wrong: %+v", resp.Results)
		}
	})

	t.Run("OverLimitRejected", func(t *testing.T) {
		rec := doJSON(t, s, "POST", "/batch/detect", BatchDetectRequest{
			Texts: []string{"a", "b", "c", "d"},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", rec.Code)
		}
	})

	t.Run("EmptyBatchRejected", func(t *testing.T) {
		rec := doJSON(t, s, "POST", "/batch/detect", BatchDetectRequest{})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", rec.Code)
		}
	})
}

// TestStrategyEndpoints tests the runtime masking configuration API
func TestStrategyEndpoints(t *testing.T) {
	s := newTestServer(t)

	t.Run("PerType", func(t *testing.T) {
		rec := doJSON(t, s, "PUT", "/config/strategy", StrategyRequest{Type: "SSN", Strategy: "FULL"})
		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d: %s", rec.Code, rec.Body.String())
		}

		rec = doJSON(t, s, "POST", "/mask", MaskRequest{Text: "SSN 123-45-6789"})
		var resp MaskResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid JSON response: %v", err)
		}
		if resp.MaskedText != "SSN [SSN]" {
			t.Errorf("MaskedText = %q, want SSN [SSN]", resp.MaskedText)
		}
	})

	t.Run("UnknownStrategyRejected", func(t *testing.T) {
		rec := doJSON(t, s, "PUT", "/config/strategy", StrategyRequest{Type: "SSN", Strategy: "shuffle"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", rec.Code)
		}
	})

	t.Run("AllTypes", func(t *testing.T) {
		rec := doJSON(t, s, "PUT", "/config/strategy/all", StrategyRequest{Strategy: "REDACT"})
		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d: %s", rec.Code, rec.Body.String())
		}

		rec = doJSON(t, s, "POST", "/mask", MaskRequest{Text: "email john@example.com"})
		var resp MaskResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid JSON response: %v", err)
		}
		if resp.MaskedText != "email ****************" {
			t.Errorf("MaskedText = %q", resp.MaskedText)
		}
	})
}

// TestStatsEndpoint tests GET /stats
func TestStatsEndpoint(t *testing.T) {
	s := newTestServer(t)

	doJSON(t, s, "POST", "/detect", DetectRequest{Text: "SSN 123-45-6789"})

	rec := doJSON(t, s, "GET", "/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d", rec.Code)
	}

	var resp struct {
		Detection struct {
			TotalDetections     int64 `json:"total_detections"`
			TotalTextsProcessed int64 `json:"total_texts_processed"`
		} `json:"detection"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if resp.Detection.TotalDetections != 1 || resp.Detection.TotalTextsProcessed != 1 {
		t.Errorf("Detection stats = %+v", resp.Detection)
	}
}
