package corpus

import (
	"strings"
	"time"

	"github.com/raaihank/pii-shield/internal/privacy"
)

// Record represents a single labeled row from an evaluation corpus.
// Types holds the expected PII type names, comma-separated; Label is 1
// when the text contains any PII.
type Record struct {
	Text  string `csv:"text" parquet:"text" json:"text"`
	Types string `csv:"pii_types" parquet:"pii_types" json:"pii_types"`
	Label int    `csv:"label" parquet:"label" json:"label"`
}

// ExpectedTypes parses the comma-separated type column. Unknown names
// are skipped.
func (r Record) ExpectedTypes() []privacy.PIIType {
	if strings.TrimSpace(r.Types) == "" {
		return nil
	}
	var types []privacy.PIIType
	for _, name := range strings.Split(r.Types, ",") {
		if t, ok := privacy.ParseType(strings.TrimSpace(name)); ok {
			types = append(types, t)
		}
	}
	return types
}

// TypeMetrics accumulates per-type match quality counters
type TypeMetrics struct {
	TruePositives  int64 `json:"true_positives"`
	FalsePositives int64 `json:"false_positives"`
	FalseNegatives int64 `json:"false_negatives"`
}

// Precision is TP / (TP + FP), or 0 when undefined
func (m TypeMetrics) Precision() float64 {
	total := m.TruePositives + m.FalsePositives
	if total == 0 {
		return 0
	}
	return float64(m.TruePositives) / float64(total)
}

// Recall is TP / (TP + FN), or 0 when undefined
func (m TypeMetrics) Recall() float64 {
	total := m.TruePositives + m.FalseNegatives
	if total == 0 {
		return 0
	}
	return float64(m.TruePositives) / float64(total)
}

// Result represents the outcome of evaluating one corpus file
type Result struct {
	TotalRecords   int64                            `json:"total_records"`
	RecordsCorrect int64                            `json:"records_correct"`
	ByType         map[privacy.PIIType]*TypeMetrics `json:"by_type"`
	Duration       time.Duration                    `json:"duration"`
	Errors         []string                         `json:"errors,omitempty"`
}

// Accuracy is the fraction of records whose has-PII verdict matched
// the label
func (r *Result) Accuracy() float64 {
	if r.TotalRecords == 0 {
		return 0
	}
	return float64(r.RecordsCorrect) / float64(r.TotalRecords)
}

// Config contains evaluation pipeline configuration
type Config struct {
	BatchSize           int     `yaml:"batch_size" mapstructure:"batch_size"`
	WorkerCount         int     `yaml:"worker_count" mapstructure:"worker_count"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold" mapstructure:"confidence_threshold"`
	ProgressReport      int     `yaml:"progress_report" mapstructure:"progress_report"`
}

// FileFormat represents supported file formats
type FileFormat string

const (
	FormatCSV     FileFormat = "csv"
	FormatParquet FileFormat = "parquet"
	FormatJSON    FileFormat = "json"
)

// DetectFileFormat detects file format from extension
func DetectFileFormat(filename string) FileFormat {
	switch {
	case strings.HasSuffix(filename, ".csv"):
		return FormatCSV
	case strings.HasSuffix(filename, ".parquet"):
		return FormatParquet
	case strings.HasSuffix(filename, ".json"), strings.HasSuffix(filename, ".jsonl"):
		return FormatJSON
	default:
		return FormatCSV
	}
}
