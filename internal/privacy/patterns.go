package privacy

import "regexp"

// CompiledPattern pairs a pattern definition with its compiled matcher.
// Compilation happens once at registry construction; compiled matchers
// are safe for concurrent use.
type CompiledPattern struct {
	Pattern Pattern
	Regexp  *regexp.Regexp
}

// Registry holds the full set of detection patterns. It is immutable
// after construction and safe to share across detectors.
type Registry struct {
	patterns []Pattern
	compiled []CompiledPattern
}

// NewRegistry builds the default pattern registry.
//
// The reference rule set expressed some rejections (SSN area 000/666/9xx,
// zero group/serial) as lookahead assertions; RE2 has no lookahead, so
// those rejections live in the validators instead and the SSN patterns
// here are marked RequiresValidation.
func NewRegistry() *Registry {
	patterns := []Pattern{
		{TypeCreditCard, `\b4\d{3}[\s\-]?\d{4}[\s\-]?\d{4}[\s\-]?\d{4}\b`, 0.95, "Visa credit card", true},
		{TypeCreditCard, `\b5[1-5]\d{2}[\s\-]?\d{4}[\s\-]?\d{4}[\s\-]?\d{4}\b`, 0.95, "Mastercard", true},
		{TypeCreditCard, `\b3[47]\d{2}[\s\-]?\d{6}[\s\-]?\d{5}\b`, 0.95, "American Express", true},
		{TypeCreditCard, `\b6(?:011|5\d{2})[\s\-]?\d{4}[\s\-]?\d{4}[\s\-]?\d{4}\b`, 0.95, "Discover card", true},

		{TypeSSN, `\b\d{3}[\s\-]\d{2}[\s\-]\d{4}\b`, 0.98, "Social Security Number with separators", true},
		{TypeSSN, `\b\d{9}\b`, 0.98, "Social Security Number without separators", true},

		{TypeEmail, `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`, 0.99, "Email address", false},

		{TypePhone, `\b(?:\+?1[\s\-]?)?\(?\d{3}\)?[\s\-]?\d{3}[\s\-]?\d{4}\b`, 0.85, "US phone number", false},
		{TypePhone, `\b(?:\+\d{1,3}[\s\-]?)?\d{2,4}[\s\-]?\d{3,4}[\s\-]?\d{3,4}\b`, 0.80, "International phone number", false},

		{TypeIPAddress, `\b(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`, 0.90, "IPv4 address", false},

		{TypeDateOfBirth, `\b(?:0[1-9]|1[0-2])[/\-](?:0[1-9]|[12][0-9]|3[01])[/\-](?:19|20)\d{2}\b`, 0.75, "Date of birth MM/DD/YYYY", false},
		{TypeDateOfBirth, `\b(?:0[1-9]|[12][0-9]|3[01])[/\-](?:0[1-9]|1[0-2])[/\-](?:19|20)\d{2}\b`, 0.75, "Date of birth DD/MM/YYYY", false},

		{TypePassport, `\b[A-Z]{1,2}\d{6,9}\b`, 0.70, "US Passport number", false},

		{TypeDriverLicense, `\b[A-Z]\d{7,8}\b`, 0.65, "Driver license (CA, TX, etc.)", false},
		{TypeDriverLicense, `\b\d{9}\b`, 0.60, "Driver license (FL, etc.)", false},

		{TypeBankAccount, `\b\d{8,17}\b`, 0.50, "Bank account number", false},

		{TypeTaxID, `\b\d{2}\-?\d{7}\b`, 0.75, "Tax identification number", false},
	}

	compiled := make([]CompiledPattern, len(patterns))
	for i, p := range patterns {
		compiled[i] = CompiledPattern{Pattern: p, Regexp: regexp.MustCompile(p.Expr)}
	}

	return &Registry{patterns: patterns, compiled: compiled}
}

// Patterns returns pattern definitions, optionally filtered by type.
func (r *Registry) Patterns(types ...PIIType) []Pattern {
	if len(types) == 0 {
		out := make([]Pattern, len(r.patterns))
		copy(out, r.patterns)
		return out
	}
	var out []Pattern
	for _, p := range r.patterns {
		if typeIn(p.Type, types) {
			out = append(out, p)
		}
	}
	return out
}

// Compiled returns compiled patterns, optionally filtered by type.
func (r *Registry) Compiled(types ...PIIType) []CompiledPattern {
	if len(types) == 0 {
		return r.compiled
	}
	var out []CompiledPattern
	for _, cp := range r.compiled {
		if typeIn(cp.Pattern.Type, types) {
			out = append(out, cp)
		}
	}
	return out
}

func typeIn(t PIIType, types []PIIType) bool {
	for _, candidate := range types {
		if t == candidate {
			return true
		}
	}
	return false
}
