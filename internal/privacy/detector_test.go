package privacy

import (
	"sort"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestDetector(opts Options) *Detector {
	return New(opts, zap.NewNop())
}

// TestDetect tests end-to-end detection on mixed text
func TestDetect(t *testing.T) {
	d := newTestDetector(DefaultOptions())

	t.Run("MixedText", func(t *testing.T) {
		text := "Contact John Smith at john@example.com or call (555) 123-4567"
		matches := d.Detect(text, 0)

		if len(matches) != 3 {
			t.Fatalf("Expected 3 matches, got %d: %+v", len(matches), matches)
		}

		byType := map[PIIType]Match{}
		for _, m := range matches {
			byType[m.Type] = m
		}
		if m, ok := byType[TypePersonName]; !ok || m.Value != "John Smith" {
			t.Errorf("Person name not detected correctly: %+v", byType[TypePersonName])
		}
		if m, ok := byType[TypeEmail]; !ok || m.Value != "john@example.com" {
			t.Errorf("Email not detected correctly: %+v", byType[TypeEmail])
		}
		if m, ok := byType[TypePhone]; !ok || !strings.HasSuffix(m.Value, "123-4567") {
			t.Errorf("Phone not detected correctly: %+v", byType[TypePhone])
		}
	})

	t.Run("SSN", func(t *testing.T) {
		matches := d.Detect("My SSN is 123-45-6789", 0)
		if len(matches) != 1 || matches[0].Type != TypeSSN {
			t.Fatalf("Expected one SSN match, got %+v", matches)
		}
		if matches[0].Value != "123-45-6789" {
			t.Errorf("SSN value = %q", matches[0].Value)
		}
	})

	t.Run("UnseparatedSSNWinsOverlap", func(t *testing.T) {
		// A bare nine-digit run also matches the driver-license and
		// bank-account patterns; the higher-confidence SSN reading
		// must win.
		matches := d.Detect("ID 123456789 on file", 0)
		if len(matches) != 1 {
			t.Fatalf("Expected one match, got %+v", matches)
		}
		if matches[0].Type != TypeSSN {
			t.Errorf("Overlap winner = %s, want SSN", matches[0].Type)
		}
	})

	t.Run("CreditCardWinsOverBankAccount", func(t *testing.T) {
		matches := d.Detect("Card: 4532148803436464", 0)
		if len(matches) != 1 || matches[0].Type != TypeCreditCard {
			t.Fatalf("Expected one credit card match, got %+v", matches)
		}
	})

	t.Run("StrictValidationDropsBadLuhn", func(t *testing.T) {
		matches := d.Detect("Card: 4532148803436468", 0)
		for _, m := range matches {
			if m.Type == TypeCreditCard {
				t.Errorf("Card with broken checksum survived strict validation: %+v", m)
			}
		}
	})

	t.Run("EmptyText", func(t *testing.T) {
		if matches := d.Detect("", 0); len(matches) != 0 {
			t.Errorf("Empty text produced matches: %+v", matches)
		}
	})

	t.Run("CleanText", func(t *testing.T) {
		if matches := d.Detect("The quick brown fox jumps over the lazy dog.", 0); len(matches) != 0 {
			t.Errorf("Clean text produced matches: %+v", matches)
		}
	})
}

// TestDetectGuarantees checks the structural guarantees of the result set
func TestDetectGuarantees(t *testing.T) {
	d := newTestDetector(DefaultOptions())
	text := "Dr. Sarah Johnson, SSN 123-45-6789, email sarah@example.org, " +
		"card 4532-1488-0343-6464, IP 192.168.1.1, lives at 123 Main Street."

	matches := d.Detect(text, 0)
	if len(matches) == 0 {
		t.Fatal("Expected matches")
	}

	t.Run("ValueMatchesSpan", func(t *testing.T) {
		for _, m := range matches {
			if text[m.Start:m.End] != m.Value {
				t.Errorf("Span [%d,%d) = %q, value = %q", m.Start, m.End, text[m.Start:m.End], m.Value)
			}
		}
	})

	t.Run("NoOverlaps", func(t *testing.T) {
		for i := 0; i < len(matches); i++ {
			for j := i + 1; j < len(matches); j++ {
				if matches[i].overlaps(matches[j]) {
					t.Errorf("Matches %d and %d overlap: %+v / %+v", i, j, matches[i], matches[j])
				}
			}
		}
	})

	t.Run("SortedByStart", func(t *testing.T) {
		if !sort.SliceIsSorted(matches, func(i, j int) bool {
			return matches[i].Start < matches[j].Start
		}) {
			t.Errorf("Matches not sorted by start: %+v", matches)
		}
	})

	t.Run("ConfidenceInRange", func(t *testing.T) {
		for _, m := range matches {
			if m.Confidence < 0 || m.Confidence > 1 {
				t.Errorf("Confidence %f out of range for %+v", m.Confidence, m)
			}
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		again := d.Detect(text, 0)
		if len(again) != len(matches) {
			t.Fatalf("Repeated detection returned %d matches, want %d", len(again), len(matches))
		}
		for i := range matches {
			if again[i].Type != matches[i].Type || again[i].Start != matches[i].Start ||
				again[i].End != matches[i].End || again[i].Confidence != matches[i].Confidence {
				t.Errorf("Match %d differs between runs: %+v / %+v", i, matches[i], again[i])
			}
		}
	})

	t.Run("ThresholdMonotone", func(t *testing.T) {
		low := d.Detect(text, 0.3)
		high := d.Detect(text, 0.9)
		if len(high) > len(low) {
			t.Errorf("Raising the threshold grew the result set: %d -> %d", len(low), len(high))
		}
	})
}

// TestDetectTypeFilter tests restricting detection to chosen types
func TestDetectTypeFilter(t *testing.T) {
	d := newTestDetector(DefaultOptions())
	text := "John Smith, john@example.com, SSN 123-45-6789"

	matches := d.Detect(text, 0, TypeEmail)
	if len(matches) != 1 || matches[0].Type != TypeEmail {
		t.Fatalf("Type filter leaked other types: %+v", matches)
	}

	matches = d.Detect(text, 0, TypeEmail, TypeSSN)
	types := map[PIIType]bool{}
	for _, m := range matches {
		types[m.Type] = true
	}
	if !types[TypeEmail] || !types[TypeSSN] || types[TypePersonName] {
		t.Errorf("Unexpected type set: %+v", matches)
	}
}

// TestMaskText tests whole-text masking
func TestMaskText(t *testing.T) {
	d := newTestDetector(DefaultOptions())

	t.Run("DetectAndMask", func(t *testing.T) {
		got := d.Mask("My SSN is 123-45-6789", nil, 0)
		if got != "My SSN is ***-**-6789" {
			t.Errorf("Masked text = %q", got)
		}
	})

	t.Run("MultipleSpans", func(t *testing.T) {
		got := d.Mask("Email john@example.com, SSN 123-45-6789", nil, 0)
		if !strings.Contains(got, "j***n@example.com") {
			t.Errorf("Email not partially masked: %q", got)
		}
		if !strings.Contains(got, "***-**-6789") {
			t.Errorf("SSN not partially masked: %q", got)
		}
		if strings.Contains(got, "123-45-6789") {
			t.Errorf("Raw SSN leaked: %q", got)
		}
	})

	t.Run("PrecomputedMatches", func(t *testing.T) {
		text := "code ABC123 here"
		matches := []Match{{
			Type: TypePassport, Value: "ABC123", Start: 5, End: 11,
			Confidence: 0.9, MaskedValue: "[PASSPORT]",
		}}
		if got := d.Mask(text, matches, 0); got != "code [PASSPORT] here" {
			t.Errorf("Mask with explicit matches = %q", got)
		}
	})

	t.Run("NoPII", func(t *testing.T) {
		text := "nothing sensitive here"
		if got := d.Mask(text, nil, 0); got != text {
			t.Errorf("Clean text changed by masking: %q", got)
		}
	})
}

// TestStrategyOverrides tests runtime strategy switching on the detector
func TestStrategyOverrides(t *testing.T) {
	d := newTestDetector(DefaultOptions())

	d.SetStrategy(TypeSSN, MaskFull)
	if got := d.Mask("SSN 123-45-6789", nil, 0); got != "SSN [SSN]" {
		t.Errorf("Full SSN mask = %q", got)
	}

	d.SetAllStrategies(MaskRedact)
	got := d.Mask("SSN 123-45-6789", nil, 0)
	if got != "SSN ***********" {
		t.Errorf("Redacted mask = %q", got)
	}
}

// TestStatistics tests the optional counters
func TestStatistics(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		d := newTestDetector(DefaultOptions())
		d.Detect("SSN 123-45-6789", 0)
		if d.Statistics() != nil {
			t.Error("Statistics should be nil when collection is disabled")
		}
	})

	t.Run("Enabled", func(t *testing.T) {
		opts := DefaultOptions()
		opts.CollectStatistics = true
		d := newTestDetector(opts)

		d.Detect("SSN 123-45-6789", 0)
		d.Detect("Email john@example.com", 0)

		stats := d.Statistics()
		if stats == nil {
			t.Fatal("Statistics is nil with collection enabled")
		}
		if stats.TotalTextsProcessed != 2 {
			t.Errorf("TotalTextsProcessed = %d, want 2", stats.TotalTextsProcessed)
		}
		if stats.TotalDetections != 2 {
			t.Errorf("TotalDetections = %d, want 2", stats.TotalDetections)
		}
		if stats.DetectionsByType[TypeSSN] != 1 || stats.DetectionsByType[TypeEmail] != 1 {
			t.Errorf("DetectionsByType = %+v", stats.DetectionsByType)
		}

		d.ResetStatistics()
		stats = d.Statistics()
		if stats.TotalDetections != 0 || stats.TotalTextsProcessed != 0 {
			t.Errorf("Counters survived reset: %+v", stats)
		}
	})
}

// TestIncludeContext tests snippet attachment
func TestIncludeContext(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeContext = true
	d := newTestDetector(opts)

	matches := d.Detect("Please email john@example.com for details", 0)
	if len(matches) == 0 {
		t.Fatal("Expected matches")
	}
	for _, m := range matches {
		if m.Context == "" {
			t.Errorf("Context missing for %+v", m)
		}
		if !strings.Contains(m.Context, "["+m.Value+"]") {
			t.Errorf("Context %q does not bracket the value %q", m.Context, m.Value)
		}
	}
}
