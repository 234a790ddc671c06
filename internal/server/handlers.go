package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/raaihank/pii-shield/internal/privacy"
	"github.com/raaihank/pii-shield/internal/websocket"
)

// DetectRequest is the payload for /detect and /batch/detect entries
type DetectRequest struct {
	Text                string   `json:"text"`
	ConfidenceThreshold float64  `json:"confidence_threshold,omitempty"`
	Types               []string `json:"types,omitempty"`
	Mask                bool     `json:"mask,omitempty"`
}

// DetectResponse carries the detection outcome for one text
type DetectResponse struct {
	Matches      []privacy.Match `json:"matches"`
	Count        int             `json:"count"`
	MaskedText   string          `json:"masked_text,omitempty"`
	ProcessingMS float64         `json:"processing_ms"`
}

// MaskRequest is the payload for /mask and /proxy/sanitize
type MaskRequest struct {
	Text                string   `json:"text"`
	ConfidenceThreshold float64  `json:"confidence_threshold,omitempty"`
	Types               []string `json:"types,omitempty"`
}

// MaskResponse carries the masked text
type MaskResponse struct {
	MaskedText   string  `json:"masked_text"`
	MatchesFound int     `json:"matches_found"`
	ProcessingMS float64 `json:"processing_ms"`
}

// SanitizeResponse is the proxy-oriented variant of MaskResponse: the
// sanitized text plus human-readable warnings about what was removed.
type SanitizeResponse struct {
	SanitizedText string   `json:"sanitized_text"`
	Warnings      []string `json:"warnings"`
}

// BatchDetectRequest is the payload for /batch/detect
type BatchDetectRequest struct {
	Texts               []string `json:"texts"`
	ConfidenceThreshold float64  `json:"confidence_threshold,omitempty"`
	Types               []string `json:"types,omitempty"`
}

// BatchDetectResponse carries per-text results in input order
type BatchDetectResponse struct {
	Results []DetectResponse `json:"results"`
	Total   int              `json:"total"`
}

// StrategyRequest is the payload for the /config/strategy endpoints
type StrategyRequest struct {
	Type     string `json:"type,omitempty"`
	Strategy string `json:"strategy"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, format string, args ...interface{}) {
	writeJSON(w, status, errorResponse{Error: fmt.Sprintf(format, args...)})
}

// handleInfo handles service info requests
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":                 "pii-shield",
		"version":              "0.1.0",
		"supported_types":      len(privacy.AllTypes),
		"confidence_threshold": s.config.Detection.ConfidenceThreshold,
		"cache_enabled":        s.cache != nil,
	})
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"uptime":    time.Since(s.startTime).String(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleStats handles detection statistics requests
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"websocket": s.wsHub.GetStats(),
	}

	if stats := s.detector.Statistics(); stats != nil {
		response["detection"] = stats
	}

	if s.cache != nil {
		if cacheStats, err := s.cache.GetStats(r.Context()); err == nil {
			response["cache"] = cacheStats
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// handleTypes lists the supported PII types
func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	types := make([]string, len(privacy.AllTypes))
	for i, t := range privacy.AllTypes {
		types[i] = string(t)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"types": types,
		"count": len(types),
	})
}

// handleDetect handles single-text detection requests
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if !s.checkTextLength(w, req.Text) {
		return
	}

	types, badName, ok := parseTypes(req.Types)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown PII type: %s", badName)
		return
	}

	threshold := s.threshold(req.ConfidenceThreshold)

	start := time.Now()
	matches, cacheHit := s.detectCached(r, req.Text, threshold, types)
	var masked string
	if req.Mask {
		masked = s.detector.Mask(req.Text, matches, threshold)
	}
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	s.broadcastDetection(r, "/detect", len(req.Text), matches, req.Mask, elapsed)

	if !cacheHit {
		s.storeCached(r, req.Text, threshold, types, matches)
	}

	writeJSON(w, http.StatusOK, DetectResponse{
		Matches:      matches,
		Count:        len(matches),
		MaskedText:   masked,
		ProcessingMS: elapsed,
	})
}

// handleMask handles single-text masking requests
func (s *Server) handleMask(w http.ResponseWriter, r *http.Request) {
	var req MaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if !s.checkTextLength(w, req.Text) {
		return
	}

	types, badName, ok := parseTypes(req.Types)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown PII type: %s", badName)
		return
	}

	threshold := s.threshold(req.ConfidenceThreshold)

	start := time.Now()
	matches := s.detector.Detect(req.Text, threshold, types...)
	masked := s.detector.Mask(req.Text, matches, threshold)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	s.broadcastDetection(r, "/mask", len(req.Text), matches, true, elapsed)

	writeJSON(w, http.StatusOK, MaskResponse{
		MaskedText:   masked,
		MatchesFound: len(matches),
		ProcessingMS: elapsed,
	})
}

// handleSanitize masks text destined for an AI model call and explains
// what was removed. Warnings name types and counts only.
func (s *Server) handleSanitize(w http.ResponseWriter, r *http.Request) {
	var req MaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if !s.checkTextLength(w, req.Text) {
		return
	}

	threshold := s.threshold(req.ConfidenceThreshold)

	start := time.Now()
	matches := s.detector.Detect(req.Text, threshold)
	sanitized := s.detector.Mask(req.Text, matches, threshold)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	byType := map[privacy.PIIType]int{}
	for _, m := range matches {
		byType[m.Type]++
	}
	warnings := make([]string, 0, len(byType))
	for _, t := range privacy.AllTypes {
		if n := byType[t]; n > 0 {
			warnings = append(warnings, fmt.Sprintf("masked %d %s value(s) before forwarding", n, t))
		}
	}

	s.broadcastDetection(r, "/proxy/sanitize", len(req.Text), matches, true, elapsed)

	writeJSON(w, http.StatusOK, SanitizeResponse{
		SanitizedText: sanitized,
		Warnings:      warnings,
	})
}

// handleBatchDetect handles multi-text detection requests
func (s *Server) handleBatchDetect(w http.ResponseWriter, r *http.Request) {
	var req BatchDetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}

	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "texts must not be empty")
		return
	}
	if len(req.Texts) > s.config.Server.BatchLimit {
		writeError(w, http.StatusBadRequest, "batch size %d exceeds limit %d", len(req.Texts), s.config.Server.BatchLimit)
		return
	}

	types, badName, ok := parseTypes(req.Types)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown PII type: %s", badName)
		return
	}

	threshold := s.threshold(req.ConfidenceThreshold)

	results := make([]DetectResponse, len(req.Texts))
	for i, text := range req.Texts {
		if s.config.Server.MaxTextLength > 0 && len(text) > s.config.Server.MaxTextLength {
			writeError(w, http.StatusBadRequest, "text %d exceeds maximum length", i)
			return
		}

		start := time.Now()
		matches := s.detector.Detect(text, threshold, types...)
		results[i] = DetectResponse{
			Matches:      matches,
			Count:        len(matches),
			ProcessingMS: float64(time.Since(start).Microseconds()) / 1000.0,
		}
	}

	writeJSON(w, http.StatusOK, BatchDetectResponse{
		Results: results,
		Total:   len(results),
	})
}

// handleSetStrategy overrides the masking strategy for one PII type
func (s *Server) handleSetStrategy(w http.ResponseWriter, r *http.Request) {
	var req StrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}

	piiType, ok := privacy.ParseType(req.Type)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown PII type: %s", req.Type)
		return
	}
	strategy, ok := privacy.ParseStrategy(req.Strategy)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown masking strategy: %s", req.Strategy)
		return
	}

	s.detector.SetStrategy(piiType, strategy)
	s.logger.Info("Masking strategy updated",
		zap.String("pii_type", string(piiType)),
		zap.String("strategy", string(strategy)),
	)

	writeJSON(w, http.StatusOK, map[string]string{
		"type":     string(piiType),
		"strategy": string(strategy),
	})
}

// handleSetAllStrategies applies one masking strategy to every type
func (s *Server) handleSetAllStrategies(w http.ResponseWriter, r *http.Request) {
	var req StrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}

	strategy, ok := privacy.ParseStrategy(req.Strategy)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown masking strategy: %s", req.Strategy)
		return
	}

	s.detector.SetAllStrategies(strategy)
	s.logger.Info("Masking strategy applied to all types",
		zap.String("strategy", string(strategy)),
	)

	writeJSON(w, http.StatusOK, map[string]string{"strategy": string(strategy)})
}

// threshold resolves the effective confidence threshold for a request.
func (s *Server) threshold(requested float64) float64 {
	if requested > 0 {
		return requested
	}
	return s.config.Detection.ConfidenceThreshold
}

// checkTextLength rejects oversized inputs before scanning.
func (s *Server) checkTextLength(w http.ResponseWriter, text string) bool {
	if text == "" {
		writeError(w, http.StatusBadRequest, "text must not be empty")
		return false
	}
	if s.config.Server.MaxTextLength > 0 && len(text) > s.config.Server.MaxTextLength {
		writeError(w, http.StatusBadRequest, "text exceeds maximum length of %d bytes", s.config.Server.MaxTextLength)
		return false
	}
	return true
}

// detectCached consults the result cache before scanning.
func (s *Server) detectCached(r *http.Request, text string, threshold float64, types []privacy.PIIType) ([]privacy.Match, bool) {
	if s.cache != nil {
		if lookup, err := s.cache.Lookup(r.Context(), text, threshold, types); err == nil && lookup.CacheHit {
			return lookup.Result.Matches, true
		}
	}
	return s.detector.Detect(text, threshold, types...), false
}

// storeCached records a fresh detection result, best effort.
func (s *Server) storeCached(r *http.Request, text string, threshold float64, types []privacy.PIIType, matches []privacy.Match) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Store(r.Context(), text, threshold, types, matches); err != nil {
		s.logger.Debug("Result cache store failed", zap.Error(err))
	}
}

// broadcastDetection publishes a detection event to dashboard clients.
func (s *Server) broadcastDetection(r *http.Request, endpoint string, textLen int, matches []privacy.Match, masked bool, elapsedMS float64) {
	byType := map[privacy.PIIType]int{}
	for _, m := range matches {
		byType[m.Type]++
	}

	typeNames := make([]string, 0, len(byType))
	for _, t := range privacy.AllTypes {
		if byType[t] > 0 {
			typeNames = append(typeNames, string(t))
		}
	}

	requestID := getRequestID(r.Context())
	s.logger.LogDetection(requestID, textLen, len(matches), typeNames, elapsedMS)

	if len(matches) == 0 {
		return
	}
	s.wsHub.BroadcastEvent(websocket.Event{
		Type:      websocket.EventTypeDetection,
		Timestamp: time.Now(),
		RequestID: requestID,
		Data: websocket.DetectionEvent{
			RequestID:    requestID,
			Endpoint:     endpoint,
			ClientIP:     getClientIP(r),
			TextLength:   textLen,
			TotalMatches: len(matches),
			ByType:       byType,
			Masked:       masked,
			ProcessingMS: elapsedMS,
		},
	})
}
