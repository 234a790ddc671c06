package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// MaskingStrategy selects the transformation applied to a confirmed
// PII value.
type MaskingStrategy string

const (
	MaskFull     MaskingStrategy = "FULL"
	MaskPartial  MaskingStrategy = "PARTIAL"
	MaskRedact   MaskingStrategy = "REDACT"
	MaskHash     MaskingStrategy = "HASH"
	MaskTokenize MaskingStrategy = "TOKENIZE"
)

// ParseStrategy converts a strategy name (case-insensitive) to a
// MaskingStrategy.
func ParseStrategy(name string) (MaskingStrategy, bool) {
	switch MaskingStrategy(strings.ToUpper(name)) {
	case MaskFull:
		return MaskFull, true
	case MaskPartial:
		return MaskPartial, true
	case MaskRedact:
		return MaskRedact, true
	case MaskHash:
		return MaskHash, true
	case MaskTokenize:
		return MaskTokenize, true
	}
	return "", false
}

// Masker applies masking strategies to PII values. Safe for concurrent
// use; the only mutable state is the tokenize counter, which is
// incremented atomically.
type Masker struct {
	defaultStrategy MaskingStrategy
	tokenCounter    atomic.Int64
	table           map[MaskingStrategy]func(value string, t PIIType) string
}

// NewMasker returns a masker whose unspecified strategy defaults to
// PARTIAL.
func NewMasker() *Masker {
	m := &Masker{defaultStrategy: MaskPartial}
	m.table = map[MaskingStrategy]func(string, PIIType) string{
		MaskFull:     m.maskFull,
		MaskPartial:  m.maskPartial,
		MaskRedact:   m.maskRedact,
		MaskHash:     m.maskHash,
		MaskTokenize: m.maskTokenize,
	}
	return m
}

// Mask transforms a value according to the given strategy, falling back
// to the masker default when the strategy is empty or unknown.
func (m *Masker) Mask(value string, t PIIType, strategy MaskingStrategy) string {
	fn, ok := m.table[strategy]
	if !ok {
		fn = m.table[m.defaultStrategy]
	}
	return fn(value, t)
}

func (m *Masker) maskFull(_ string, t PIIType) string {
	if typeIn(t, AllTypes) {
		return "[" + string(t) + "]"
	}
	return "[PII]"
}

func (m *Masker) maskPartial(value string, t PIIType) string {
	switch t {
	case TypeCreditCard:
		return maskCreditCard(value)
	case TypeSSN:
		return maskSSN(value)
	case TypeEmail:
		return maskEmail(value)
	case TypePhone:
		return maskPhone(value)
	case TypePersonName:
		return maskName(value)
	case TypeBankAccount:
		return maskBankAccount(value)
	default:
		return m.maskFull(value, t)
	}
}

func (m *Masker) maskRedact(value string, _ PIIType) string {
	return strings.Repeat("*", len(value))
}

func (m *Masker) maskHash(value string, t PIIType) string {
	sum := sha256.Sum256([]byte(value))
	return fmt.Sprintf("[%s:%s]", t, hex.EncodeToString(sum[:])[:12])
}

func (m *Masker) maskTokenize(_ string, t PIIType) string {
	n := m.tokenCounter.Add(1)
	return fmt.Sprintf("[%s_TOKEN_%04d]", t, n)
}

// Per-type partial reveal rules. Invalid or too-short inputs yield a
// safe placeholder rather than failing.

func maskCreditCard(value string) string {
	clean := stripSeparators(value)
	if len(clean) < 4 {
		return "****"
	}
	return "****-****-****-" + clean[len(clean)-4:]
}

func maskSSN(value string) string {
	clean := stripSeparators(value)
	if len(clean) < 4 {
		return "***-**-****"
	}
	return "***-**-" + clean[len(clean)-4:]
}

func maskEmail(value string) string {
	parts := strings.Split(value, "@")
	if len(parts) != 2 {
		return "[EMAIL]"
	}
	user, domain := parts[0], parts[1]

	masked := "***"
	if len(user) > 2 {
		masked = user[:1] + "***" + user[len(user)-1:]
	}
	return masked + "@" + domain
}

func maskPhone(value string) string {
	digits := digitsOf(value)
	if len(digits) < 4 {
		return "[PHONE]"
	}
	return "***-***-" + digits[len(digits)-4:]
}

func maskName(value string) string {
	parts := strings.Fields(value)
	if len(parts) == 0 {
		return "[NAME]"
	}
	masked := make([]string, len(parts))
	for i, part := range parts {
		masked[i] = strings.ToUpper(part[:1]) + "***"
	}
	return strings.Join(masked, " ")
}

func maskBankAccount(value string) string {
	digits := digitsOf(value)
	if len(digits) < 4 {
		return "****"
	}
	return "****" + digits[len(digits)-4:]
}

// MaskingConfig maps each PII type to its masking strategy. It is
// owned by a detector instance; reads and writes are mutex-guarded so
// concurrent detection calls observe a consistent mapping.
type MaskingConfig struct {
	mu         sync.RWMutex
	strategies map[PIIType]MaskingStrategy
}

// NewMaskingConfig returns the default per-type strategy mapping:
// partial reveal for the types that support it, full replacement for
// the rest.
func NewMaskingConfig() *MaskingConfig {
	return &MaskingConfig{
		strategies: map[PIIType]MaskingStrategy{
			TypeCreditCard:    MaskPartial,
			TypeSSN:           MaskPartial,
			TypeEmail:         MaskPartial,
			TypePhone:         MaskPartial,
			TypePersonName:    MaskPartial,
			TypeAddress:       MaskFull,
			TypeIPAddress:     MaskFull,
			TypeDateOfBirth:   MaskFull,
			TypePassport:      MaskFull,
			TypeDriverLicense: MaskFull,
			TypeBankAccount:   MaskPartial,
			TypeTaxID:         MaskFull,
		},
	}
}

// Strategy returns the configured strategy for a type, defaulting to
// FULL for unmapped types.
func (c *MaskingConfig) Strategy(t PIIType) MaskingStrategy {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if s, ok := c.strategies[t]; ok {
		return s
	}
	return MaskFull
}

// SetStrategy overrides the strategy for one type.
func (c *MaskingConfig) SetStrategy(t PIIType, s MaskingStrategy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strategies[t] = s
}

// SetAllStrategies applies one strategy to every known type.
func (c *MaskingConfig) SetAllStrategies(s MaskingStrategy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range AllTypes {
		c.strategies[t] = s
	}
}
