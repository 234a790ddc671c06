package privacy

// adjustConfidence combines the base pattern confidence with the
// context, validation, and length signals. The context boost is applied
// before the multiplicative penalties; the result is clamped to [0,1].
func adjustConfidence(base float64, contextMatch, validationPassed, lengthAppropriate bool) float64 {
	confidence := base

	if contextMatch {
		confidence += 0.1
		if confidence > 1.0 {
			confidence = 1.0
		}
	}
	if !validationPassed {
		confidence *= 0.5
	}
	if !lengthAppropriate {
		confidence *= 0.7
	}

	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

// lengthAppropriate applies the type-specific length rule: credit card
// digit counts must fall in [13,19] and SSNs must have exactly nine
// digits. Every other type passes.
func lengthAppropriate(value string, t PIIType) bool {
	switch t {
	case TypeCreditCard:
		n := len(digitsOf(value))
		return n >= 13 && n <= 19
	case TypeSSN:
		return len(digitsOf(value)) == 9
	default:
		return true
	}
}
