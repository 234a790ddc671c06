package privacy

import (
	"strings"
	"unicode"
)

// Person-name detection is a lexical heuristic, not NER: it walks the
// token stream left to right with a cursor that always advances,
// looking for honorific-led runs and known-first-name pairs.

const tokenPunct = ".,!?;:()[]{}"

// token is a whitespace-delimited word with its byte span in the
// source text. Spans come from tokenization, so candidate offsets are
// exact even when the same name appears more than once.
type token struct {
	raw   string
	start int
	end   int
}

func tokenize(text string) []token {
	var tokens []token
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, token{raw: text[start:i], start: start, end: i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{raw: text[start:], start: start, end: len(text)})
	}
	return tokens
}

func stripPunct(s string) string {
	return strings.Trim(s, tokenPunct)
}

// trimmedEnd returns the token's end offset with trailing punctuation
// excluded, so spans built from tokens never carry a comma or period.
func (t token) trimmedEnd() int {
	return t.end - (len(t.raw) - len(strings.TrimRight(t.raw, tokenPunct)))
}

// isCapitalizedWord reports title case: first letter upper, remainder
// lower. Single letters count when uppercase.
func isCapitalizedWord(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	if len(runes) == 1 {
		return unicode.IsUpper(runes[0])
	}
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// detectNames finds person-name candidates. Two rules share one
// cursor:
//
//	(a) an honorific prefix followed by up to three capitalized words
//	    or name suffixes; the honorific is part of the name, and at
//	    least two tokens must be consumed in total.
//	(b) a known common first name followed by a capitalized word
//	    longer than two characters.
func (d *Detector) detectNames(text string) []Match {
	var matches []Match
	tokens := tokenize(text)

	i := 0
	for i < len(tokens) {
		word := stripPunct(tokens[i].raw)
		lower := strings.ToLower(word)

		if _, ok := namePrefixes[lower]; ok && i+1 < len(tokens) {
			next := d.consumeNameRun(tokens, i)
			if next-i >= 2 {
				matches = append(matches, d.nameMatch(text, tokens[i].start, tokens[next-1].trimmedEnd(), 0.85, 0.70))
			}
			i = next
			continue
		}

		if _, ok := commonFirstNames[lower]; ok && i+1 < len(tokens) {
			next := stripPunct(tokens[i+1].raw)
			if isCapitalizedWord(next) && len([]rune(next)) > 2 {
				matches = append(matches, d.nameMatch(text, tokens[i].start, tokens[i+1].trimmedEnd(), 0.75, 0.60))
			}
			i += 2
			continue
		}

		i++
	}
	return matches
}

// consumeNameRun consumes the honorific at start plus up to three
// following tokens while each is a capitalized word or a known name
// suffix. Returns the index after the run.
func (d *Detector) consumeNameRun(tokens []token, start int) int {
	i := start + 1
	for i < len(tokens) && i < start+4 {
		word := stripPunct(tokens[i].raw)
		if isCapitalizedWord(word) {
			i++
			continue
		}
		if _, ok := nameSuffixes[strings.ToLower(word)]; ok {
			i++
			continue
		}
		break
	}
	return i
}

// nameMatch builds a PERSON_NAME match, choosing between the rule's
// with-context and without-context confidence values.
func (d *Detector) nameMatch(text string, start, end int, withContext, withoutContext float64) Match {
	value := text[start:end]

	contextOK := true
	if d.options.ContextValidation {
		contextOK = isLikelyNameContext(text, start, end)
	}

	confidence := withoutContext
	if contextOK {
		confidence = withContext
	}

	return Match{
		Type:        TypePersonName,
		Value:       value,
		Start:       start,
		End:         end,
		Confidence:  confidence,
		MaskedValue: d.masker.Mask(value, TypePersonName, d.maskingConfig.Strategy(TypePersonName)),
	}
}
