package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"go.uber.org/zap"

	"github.com/raaihank/pii-shield/internal/config"
	"github.com/raaihank/pii-shield/internal/corpus"
	"github.com/raaihank/pii-shield/internal/logger"
	"github.com/raaihank/pii-shield/internal/privacy"
)

func main() {
	var (
		configPath = flag.String("config", "", "Configuration file path")
		inputFile  = flag.String("input", "", "Labeled corpus file (CSV, Parquet, or JSON lines)")
		batchSize  = flag.Int("batch-size", 1000, "Batch size for processing")
		workers    = flag.Int("workers", 4, "Number of worker goroutines")
		threshold  = flag.Float64("threshold", 0, "Confidence threshold override")
	)
	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --input corpus.csv --batch-size 500\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --input corpus.parquet --workers 8\n", os.Args[0])
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting PII-Shield corpus evaluation",
		zap.String("version", "0.1.0"),
		zap.String("input", *inputFile))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, cancelling evaluation...")
		cancel()
	}()

	detector := privacy.New(privacy.Options{
		ContextValidation: cfg.Detection.ContextValidation,
		StrictValidation:  cfg.Detection.StrictValidation,
	}, log.WithComponent("privacy").Logger)

	evalThreshold := cfg.Detection.ConfidenceThreshold
	if *threshold > 0 {
		evalThreshold = *threshold
	}

	pipeline := corpus.NewPipeline(detector, &corpus.Config{
		BatchSize:           *batchSize,
		WorkerCount:         *workers,
		ConfidenceThreshold: evalThreshold,
		ProgressReport:      1000,
	}, log.WithComponent("corpus").Logger)

	result, err := pipeline.EvaluateFile(ctx, *inputFile)
	if err != nil {
		log.Fatal("Evaluation failed", zap.Error(err))
	}

	printReport(result)
}

// printReport renders the evaluation summary to stdout
func printReport(result *corpus.Result) {
	fmt.Printf("\nCorpus evaluation results\n")
	fmt.Printf("  records:  %d\n", result.TotalRecords)
	fmt.Printf("  correct:  %d (%.1f%%)\n", result.RecordsCorrect, result.Accuracy()*100)
	fmt.Printf("  duration: %s\n\n", result.Duration)

	types := make([]string, 0, len(result.ByType))
	for t := range result.ByType {
		types = append(types, string(t))
	}
	sort.Strings(types)

	fmt.Printf("  %-16s %8s %8s %8s %10s %8s\n", "type", "tp", "fp", "fn", "precision", "recall")
	for _, name := range types {
		m := result.ByType[privacy.PIIType(name)]
		fmt.Printf("  %-16s %8d %8d %8d %10.3f %8.3f\n",
			name, m.TruePositives, m.FalsePositives, m.FalseNegatives, m.Precision(), m.Recall())
	}

	for _, errMsg := range result.Errors {
		fmt.Fprintf(os.Stderr, "  error: %s\n", errMsg)
	}
}
