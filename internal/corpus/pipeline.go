package corpus

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/parquet-go"
	"go.uber.org/zap"

	"github.com/raaihank/pii-shield/internal/privacy"
)

// Pipeline evaluates the detector against a labeled corpus file. It
// reads records in batches, scans each text, and compares the detected
// type set against the labels.
type Pipeline struct {
	detector *privacy.Detector
	config   *Config
	logger   *zap.Logger
}

// NewPipeline creates a new evaluation pipeline
func NewPipeline(detector *privacy.Detector, config *Config, logger *zap.Logger) *Pipeline {
	if config.BatchSize <= 0 {
		config.BatchSize = 1000
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = 4
	}
	return &Pipeline{
		detector: detector,
		config:   config,
		logger:   logger,
	}
}

// EvaluateFile evaluates a corpus file (CSV, Parquet, or JSON lines)
func (p *Pipeline) EvaluateFile(ctx context.Context, filePath string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	p.logger.Info("Starting corpus evaluation",
		zap.String("file", filePath),
		zap.Int("batch_size", p.config.BatchSize),
		zap.Int("workers", p.config.WorkerCount))

	start := time.Now()
	result := &Result{ByType: make(map[privacy.PIIType]*TypeMetrics)}

	format := DetectFileFormat(filePath)
	p.logger.Info("Detected file format", zap.String("format", string(format)))

	var err error
	switch format {
	case FormatCSV:
		err = p.evaluateCSV(ctx, filePath, result)
	case FormatParquet:
		err = p.evaluateParquet(ctx, filePath, result)
	case FormatJSON:
		err = p.evaluateJSON(ctx, filePath, result)
	default:
		return result, fmt.Errorf("unsupported file format: %s", format)
	}
	if err != nil {
		return result, fmt.Errorf("%s evaluation failed: %w", format, err)
	}

	result.Duration = time.Since(start)

	p.logger.Info("Corpus evaluation completed",
		zap.Int64("total_records", result.TotalRecords),
		zap.Float64("accuracy", result.Accuracy()),
		zap.Duration("duration", result.Duration))

	return result, nil
}

// evaluateCSV reads records from a CSV file with a header row
func (p *Pipeline) evaluateCSV(ctx context.Context, filePath string, result *Result) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 3 // text, pii_types, label

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	p.logger.Info("CSV header detected", zap.Strings("columns", header))

	return p.evaluateBatches(ctx, func() ([]Record, error) {
		var batch []Record
		for len(batch) < p.config.BatchSize {
			row, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				p.logger.Warn("Failed to read CSV record", zap.Error(err))
				continue
			}
			if len(row) != 3 {
				p.logger.Warn("Invalid CSV record length", zap.Int("length", len(row)))
				continue
			}

			label := 0
			if row[2] == "1" || strings.EqualFold(row[2], "true") {
				label = 1
			}

			record := Record{
				Text:  strings.TrimSpace(row[0]),
				Types: strings.TrimSpace(row[1]),
				Label: label,
			}
			if record.Text != "" {
				batch = append(batch, record)
			}
		}
		return batch, nil
	}, result)
}

// evaluateParquet reads records from a Parquet file
func (p *Pipeline) evaluateParquet(ctx context.Context, filePath string, result *Result) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open Parquet file: %w", err)
	}
	defer file.Close()

	reader := parquet.NewReader(file)
	defer reader.Close()

	return p.evaluateBatches(ctx, func() ([]Record, error) {
		var batch []Record
		for len(batch) < p.config.BatchSize {
			var record Record
			err := reader.Read(&record)
			if err == io.EOF {
				break
			}
			if err != nil {
				p.logger.Warn("Failed to read Parquet record", zap.Error(err))
				continue
			}
			if record.Text != "" {
				batch = append(batch, record)
			}
		}
		return batch, nil
	}, result)
}

// evaluateJSON reads records from a JSON-lines file
func (p *Pipeline) evaluateJSON(ctx context.Context, filePath string, result *Result) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open JSON file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)

	return p.evaluateBatches(ctx, func() ([]Record, error) {
		var batch []Record
		for len(batch) < p.config.BatchSize {
			var record Record
			err := decoder.Decode(&record)
			if err == io.EOF {
				break
			}
			if err != nil {
				p.logger.Warn("Failed to read JSON record", zap.Error(err))
				continue
			}
			if record.Text != "" {
				batch = append(batch, record)
			}
		}
		return batch, nil
	}, result)
}

// evaluateBatches drains the reader function batch by batch
func (p *Pipeline) evaluateBatches(ctx context.Context, readBatch func() ([]Record, error), result *Result) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		batch, err := readBatch()
		if err != nil {
			return fmt.Errorf("failed to read batch: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		p.evaluateBatch(batch, result)

		if p.config.ProgressReport > 0 && result.TotalRecords%int64(p.config.ProgressReport) < int64(len(batch)) {
			p.logger.Info("Evaluation progress",
				zap.Int64("records", result.TotalRecords),
				zap.Float64("accuracy", result.Accuracy()))
		}
	}
	return nil
}

// recordOutcome is one worker's verdict for a single record
type recordOutcome struct {
	correct  bool
	expected map[privacy.PIIType]bool
	detected map[privacy.PIIType]bool
}

// evaluateBatch scans a batch of records across the worker pool and
// folds the outcomes into the shared result.
func (p *Pipeline) evaluateBatch(batch []Record, result *Result) {
	outcomes := make([]recordOutcome, len(batch))

	var wg sync.WaitGroup
	jobs := make(chan int, len(batch))

	for w := 0; w < p.config.WorkerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = p.evaluateRecord(batch[i])
			}
		}()
	}
	for i := range batch {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, o := range outcomes {
		result.TotalRecords++
		if o.correct {
			result.RecordsCorrect++
		}
		for t := range o.expected {
			if o.detected[t] {
				p.metricsFor(result, t).TruePositives++
			} else {
				p.metricsFor(result, t).FalseNegatives++
			}
		}
		for t := range o.detected {
			if !o.expected[t] {
				p.metricsFor(result, t).FalsePositives++
			}
		}
	}
}

// evaluateRecord scans one record and compares against its labels
func (p *Pipeline) evaluateRecord(record Record) recordOutcome {
	matches := p.detector.Detect(record.Text, p.config.ConfidenceThreshold)

	detected := make(map[privacy.PIIType]bool, len(matches))
	for _, m := range matches {
		detected[m.Type] = true
	}

	expected := make(map[privacy.PIIType]bool)
	for _, t := range record.ExpectedTypes() {
		expected[t] = true
	}

	hasPII := len(matches) > 0
	return recordOutcome{
		correct:  hasPII == (record.Label == 1),
		expected: expected,
		detected: detected,
	}
}

func (p *Pipeline) metricsFor(result *Result, t privacy.PIIType) *TypeMetrics {
	m, ok := result.ByType[t]
	if !ok {
		m = &TypeMetrics{}
		result.ByType[t] = m
	}
	return m
}
