package privacy

import (
	"fmt"
	"regexp"
	"strings"
)

// newAddressRegexp builds the street-address matcher by interpolating
// the street-type vocabulary: a house number, one to three capitalized
// words, then a street type. Case-insensitive.
func newAddressRegexp() *regexp.Regexp {
	expr := fmt.Sprintf(`(?i)\b\d+\s+(?:[A-Z][a-z]+\s+){1,3}(?:%s)\b`, strings.Join(streetTypes, "|"))
	return regexp.MustCompile(expr)
}

// detectAddresses finds street-address candidates and scores them by
// whether address keywords appear nearby.
func (d *Detector) detectAddresses(text string) []Match {
	var matches []Match

	for _, span := range d.addressRegexp.FindAllStringIndex(text, -1) {
		start, end := span[0], span[1]
		value := text[start:end]

		contextOK := true
		if d.options.ContextValidation {
			contextOK = isLikelyAddressContext(text, start, end)
		}

		confidence := 0.65
		if contextOK {
			confidence = 0.80
		}

		matches = append(matches, Match{
			Type:        TypeAddress,
			Value:       value,
			Start:       start,
			End:         end,
			Confidence:  confidence,
			MaskedValue: d.masker.Mask(value, TypeAddress, d.maskingConfig.Strategy(TypeAddress)),
		})
	}
	return matches
}
