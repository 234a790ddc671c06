package privacy

import (
	"fmt"
	"strings"
	"sync"
)

// ReversibleMasker issues tokens that can be mapped back to the
// original values. It exists for tests and debugging only: retaining
// the token-to-value mapping defeats the purpose of masking, so it must
// never back a production masking path. It is deliberately a separate
// type rather than a MaskingStrategy variant.
type ReversibleMasker struct {
	mu      sync.Mutex
	mapping map[string]string
	counter int
}

// NewReversibleMasker returns an empty reversible masker.
func NewReversibleMasker() *ReversibleMasker {
	return &ReversibleMasker{mapping: make(map[string]string)}
}

// Mask replaces a value with a numbered token and remembers the
// original.
func (r *ReversibleMasker) Mask(value string, t PIIType) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counter++
	token := fmt.Sprintf("[%s_%04d]", t, r.counter)
	r.mapping[token] = value
	return token
}

// Unmask returns the original value for a token. The second return
// value is false for unknown tokens or after ClearMapping.
func (r *ReversibleMasker) Unmask(token string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.mapping[token]
	return value, ok
}

// UnmaskText restores every known token occurring in the text.
func (r *ReversibleMasker) UnmaskText(text string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := text
	for token, original := range r.mapping {
		result = strings.ReplaceAll(result, token, original)
	}
	return result
}

// ClearMapping wipes all retained originals and resets the counter.
func (r *ReversibleMasker) ClearMapping() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mapping = make(map[string]string)
	r.counter = 0
}
