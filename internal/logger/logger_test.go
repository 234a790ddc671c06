package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestSafeHeaders tests that credential-bearing headers are redacted
func TestSafeHeaders(t *testing.T) {
	headers := map[string][]string{
		"Authorization": {"Bearer secret"},
		"X-Api-Key":     {"abc123"},
		"Cookie":        {"session=1"},
		"Content-Type":  {"application/json"},
		"Accept":        {"application/json", "text/plain"},
	}

	safe := SafeHeaders(headers)

	for _, h := range []string{"Authorization", "X-Api-Key", "Cookie"} {
		if safe[h] != "[REDACTED]" {
			t.Errorf("%s = %q, want [REDACTED]", h, safe[h])
		}
	}
	if safe["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q", safe["Content-Type"])
	}
	if safe["Accept"] != "application/json" {
		t.Errorf("Accept = %q, want first value only", safe["Accept"])
	}
}

// TestLogDetection tests that detection logs carry types, counts, and
// timing but no matched values
func TestLogDetection(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{Logger: zap.New(core)}

	l.LogDetection("req-1", 42, 2, []string{"EMAIL", "SSN"}, 1.5)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Logged %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-1" {
		t.Errorf("request_id = %v", fields["request_id"])
	}
	if fields["text_length"] != int64(42) {
		t.Errorf("text_length = %v", fields["text_length"])
	}
	if fields["matches"] != int64(2) {
		t.Errorf("matches = %v", fields["matches"])
	}
	types, ok := fields["pii_types"].([]interface{})
	if !ok || len(types) != 2 || types[0] != "EMAIL" || types[1] != "SSN" {
		t.Errorf("pii_types = %v", fields["pii_types"])
	}
}
