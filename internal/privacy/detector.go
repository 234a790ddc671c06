package privacy

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Detector is the PII detection and masking engine. It composes the
// pattern registry, validators, context heuristics, confidence scoring,
// overlap resolution, and masking into the detect/mask contract.
//
// A detector is safe for concurrent use: the registry and compiled
// matchers are immutable, and the mutable pieces (masking config,
// tokenize counter, statistics) guard themselves.
type Detector struct {
	registry      *Registry
	masker        *Masker
	maskingConfig *MaskingConfig
	addressRegexp *regexp.Regexp
	options       Options
	stats         *statsCollector
	logger        *zap.Logger
}

// New creates a detector with the given options. A nil logger is
// replaced with a no-op logger.
func New(opts Options, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Detector{
		registry:      NewRegistry(),
		masker:        NewMasker(),
		maskingConfig: NewMaskingConfig(),
		addressRegexp: newAddressRegexp(),
		options:       opts,
		logger:        logger,
	}
	if opts.CollectStatistics {
		d.stats = newStatsCollector()
	}

	logger.Info("PII detector initialized",
		zap.Int("patterns", len(d.registry.Patterns())),
		zap.Bool("context_validation", opts.ContextValidation),
		zap.Bool("strict_validation", opts.StrictValidation),
	)
	return d
}

// Detect scans text and returns confirmed PII matches sorted by start
// offset. Matches never overlap and each match's value equals the text
// at its span. A non-positive threshold selects
// DefaultConfidenceThreshold; an empty types list scans for all types.
func (d *Detector) Detect(text string, threshold float64, types ...PIIType) []Match {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	start := time.Now()

	candidates := d.detectPatternBased(text, types)
	if len(types) == 0 || typeIn(TypePersonName, types) {
		candidates = append(candidates, d.detectNames(text)...)
	}
	if len(types) == 0 || typeIn(TypeAddress, types) {
		candidates = append(candidates, d.detectAddresses(text)...)
	}

	filtered := candidates[:0:0]
	for _, m := range candidates {
		if m.Confidence >= threshold {
			filtered = append(filtered, m)
		}
	}

	final := resolveOverlaps(filtered)

	if d.options.IncludeContext {
		for i := range final {
			final[i].Context = contextSnippet(text, final[i].Start, final[i].End)
		}
	}

	if d.stats != nil {
		d.stats.recordProcessing(time.Since(start))
		d.stats.recordDetections(final)
	}

	if len(final) > 0 {
		d.logger.Debug("PII detected",
			zap.Int("matches", len(final)),
			zap.Duration("duration", time.Since(start)),
		)
	}
	return final
}

// detectPatternBased runs every compiled registry pattern not excluded
// by the type filter.
func (d *Detector) detectPatternBased(text string, types []PIIType) []Match {
	var matches []Match

	for _, cp := range d.registry.Compiled(types...) {
		for _, span := range cp.Regexp.FindAllStringIndex(text, -1) {
			start, end := span[0], span[1]
			value := text[start:end]

			if cp.Pattern.RequiresValidation && d.options.StrictValidation {
				if !validate(value, cp.Pattern.Type) {
					continue
				}
			}

			confidence := adjustConfidence(
				cp.Pattern.BaseConfidence,
				false, // context boost applies to the name/address heuristics only
				true,  // failed validations were already discarded
				lengthAppropriate(value, cp.Pattern.Type),
			)

			matches = append(matches, Match{
				Type:        cp.Pattern.Type,
				Value:       value,
				Start:       start,
				End:         end,
				Confidence:  confidence,
				MaskedValue: d.masker.Mask(value, cp.Pattern.Type, d.maskingConfig.Strategy(cp.Pattern.Type)),
			})
		}
	}
	return matches
}

// Mask returns the text with every match's span replaced by its
// precomputed masked value. When matches is nil, Detect runs first
// with the given threshold. Replacement proceeds in descending start
// order so earlier substitutions cannot shift later offsets.
func (d *Detector) Mask(text string, matches []Match, threshold float64) string {
	if matches == nil {
		matches = d.Detect(text, threshold)
	}
	if len(matches) == 0 {
		return text
	}

	sorted := make([]Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start > sorted[j].Start
	})

	var b strings.Builder
	result := text
	for _, m := range sorted {
		b.Reset()
		b.WriteString(result[:m.Start])
		b.WriteString(m.MaskedValue)
		b.WriteString(result[m.End:])
		result = b.String()
	}
	return result
}

// SetStrategy overrides the masking strategy for one PII type.
// Affects subsequent Detect/Mask calls only.
func (d *Detector) SetStrategy(t PIIType, s MaskingStrategy) {
	d.maskingConfig.SetStrategy(t, s)
}

// SetAllStrategies applies one masking strategy to every PII type.
func (d *Detector) SetAllStrategies(s MaskingStrategy) {
	d.maskingConfig.SetAllStrategies(s)
}

// Statistics returns a snapshot of the detection counters, or nil when
// statistics collection is disabled.
func (d *Detector) Statistics() *Statistics {
	if d.stats == nil {
		return nil
	}
	return d.stats.snapshot()
}

// ResetStatistics clears all counters. No-op when collection is
// disabled.
func (d *Detector) ResetStatistics() {
	if d.stats != nil {
		d.stats.reset()
	}
}
