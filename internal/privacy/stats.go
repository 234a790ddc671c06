package privacy

import (
	"sync"
	"time"
)

// Statistics is a point-in-time snapshot of detector counters.
type Statistics struct {
	TotalDetections     int64             `json:"total_detections"`
	DetectionsByType    map[PIIType]int64 `json:"detections_by_type"`
	TotalTextsProcessed int64             `json:"total_texts_processed"`
	AvgProcessingTimeMS float64           `json:"avg_processing_time_ms"`
}

// statsCollector accumulates per-type detection counts and processing
// time. Guarded by a mutex so concurrent Detect calls on one detector
// stay consistent.
type statsCollector struct {
	mu              sync.Mutex
	totalDetections int64
	byType          map[PIIType]int64
	textsProcessed  int64
	processingTime  time.Duration
}

func newStatsCollector() *statsCollector {
	return &statsCollector{byType: make(map[PIIType]int64)}
}

func (s *statsCollector) recordProcessing(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.textsProcessed++
	s.processingTime += d
}

func (s *statsCollector) recordDetections(matches []Match) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range matches {
		s.totalDetections++
		s.byType[m.Type]++
	}
}

func (s *statsCollector) snapshot() *Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	byType := make(map[PIIType]int64, len(s.byType))
	for t, n := range s.byType {
		byType[t] = n
	}

	avg := 0.0
	if s.textsProcessed > 0 {
		avg = float64(s.processingTime.Microseconds()) / float64(s.textsProcessed) / 1000.0
	}

	return &Statistics{
		TotalDetections:     s.totalDetections,
		DetectionsByType:    byType,
		TotalTextsProcessed: s.textsProcessed,
		AvgProcessingTimeMS: avg,
	}
}

func (s *statsCollector) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalDetections = 0
	s.byType = make(map[PIIType]int64)
	s.textsProcessed = 0
	s.processingTime = 0
}
