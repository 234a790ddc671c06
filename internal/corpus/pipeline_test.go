package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/raaihank/pii-shield/internal/privacy"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func newTestPipeline() *Pipeline {
	detector := privacy.New(privacy.DefaultOptions(), zap.NewNop())
	return NewPipeline(detector, &Config{BatchSize: 2, WorkerCount: 2}, zap.NewNop())
}

// TestEvaluateCSV tests evaluation against a labeled CSV corpus
func TestEvaluateCSV(t *testing.T) {
	csvData := "text,pii_types,label\n" +
		"My SSN is 123-45-6789,SSN,1\n" +
		"Reach me at john@example.com,EMAIL,1\n" +
		"The quick brown fox,,0\n" +
		"Card 4532148803436464,CREDIT_CARD,1\n"
	path := writeTempFile(t, "corpus.csv", csvData)

	p := newTestPipeline()
	result, err := p.EvaluateFile(context.Background(), path)
	if err != nil {
		t.Fatalf("EvaluateFile failed: %v", err)
	}

	if result.TotalRecords != 4 {
		t.Errorf("TotalRecords = %d, want 4", result.TotalRecords)
	}
	if result.RecordsCorrect != 4 {
		t.Errorf("RecordsCorrect = %d, want 4", result.RecordsCorrect)
	}
	if result.Accuracy() != 1.0 {
		t.Errorf("Accuracy = %f, want 1.0", result.Accuracy())
	}

	ssn := result.ByType[privacy.TypeSSN]
	if ssn == nil || ssn.TruePositives != 1 || ssn.FalseNegatives != 0 {
		t.Errorf("SSN metrics = %+v", ssn)
	}
	email := result.ByType[privacy.TypeEmail]
	if email == nil || email.TruePositives != 1 {
		t.Errorf("Email metrics = %+v", email)
	}
}

// TestEvaluateJSON tests evaluation against a JSON-lines corpus
func TestEvaluateJSON(t *testing.T) {
	jsonData := `{"text":"SSN 123-45-6789","pii_types":"SSN","label":1}` + "\n" +
		`{"text":"plain text only","pii_types":"","label":0}` + "\n"
	path := writeTempFile(t, "corpus.json", jsonData)

	p := newTestPipeline()
	result, err := p.EvaluateFile(context.Background(), path)
	if err != nil {
		t.Fatalf("EvaluateFile failed: %v", err)
	}
	if result.TotalRecords != 2 || result.RecordsCorrect != 2 {
		t.Errorf("Result = %+v", result)
	}
}

// TestMissedDetectionCountsAsFalseNegative tests metric bookkeeping
func TestMissedDetectionCountsAsFalseNegative(t *testing.T) {
	// A label claims PASSPORT but the text has nothing detectable.
	csvData := "text,pii_types,label\n" +
		"no identifiers in this sentence,PASSPORT,1\n"
	path := writeTempFile(t, "corpus.csv", csvData)

	p := newTestPipeline()
	result, err := p.EvaluateFile(context.Background(), path)
	if err != nil {
		t.Fatalf("EvaluateFile failed: %v", err)
	}

	if result.RecordsCorrect != 0 {
		t.Errorf("RecordsCorrect = %d, want 0", result.RecordsCorrect)
	}
	passport := result.ByType[privacy.TypePassport]
	if passport == nil || passport.FalseNegatives != 1 || passport.TruePositives != 0 {
		t.Errorf("Passport metrics = %+v", passport)
	}
}

// TestTypeMetrics tests precision and recall arithmetic
func TestTypeMetrics(t *testing.T) {
	m := TypeMetrics{TruePositives: 3, FalsePositives: 1, FalseNegatives: 2}
	if m.Precision() != 0.75 {
		t.Errorf("Precision = %f, want 0.75", m.Precision())
	}
	if m.Recall() != 0.6 {
		t.Errorf("Recall = %f, want 0.6", m.Recall())
	}

	var zero TypeMetrics
	if zero.Precision() != 0 || zero.Recall() != 0 {
		t.Error("Zero metrics should yield zero precision and recall")
	}
}

// TestDetectFileFormat tests extension-based format detection
func TestDetectFileFormat(t *testing.T) {
	cases := map[string]FileFormat{
		"data.csv":     FormatCSV,
		"data.parquet": FormatParquet,
		"data.json":    FormatJSON,
		"data.jsonl":   FormatJSON,
		"data.txt":     FormatCSV,
	}
	for name, want := range cases {
		if got := DetectFileFormat(name); got != want {
			t.Errorf("DetectFileFormat(%q) = %s, want %s", name, got, want)
		}
	}
}
