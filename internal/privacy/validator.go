package privacy

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Validation functions are pure and stateless. A false return is not an
// error; it just removes a candidate from the result set.

var passportFormat = regexp.MustCompile(`^[A-Z]{1,2}\d{6,9}$`)

// ValidCreditCard reports whether the value passes the Luhn checksum.
// Separators are ignored; the digit count must be 13-19.
func ValidCreditCard(value string) bool {
	digits := digitsOf(value)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	checksum := 0
	for i := 0; i < len(digits); i++ {
		d := int(digits[len(digits)-1-i] - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		checksum += d
	}
	return checksum%10 == 0
}

// ValidSSN checks a Social Security Number against the SSA issuance
// rules: area 000, 666, 900+ and 734-749 were never issued, and group
// 00 / serial 0000 are invalid.
func ValidSSN(value string) bool {
	clean := stripSeparators(value)
	if len(clean) != 9 || !allDigits(clean) {
		return false
	}

	area, _ := strconv.Atoi(clean[:3])
	group, _ := strconv.Atoi(clean[3:5])
	serial, _ := strconv.Atoi(clean[5:])

	if area == 0 || area == 666 || area >= 900 {
		return false
	}
	if area >= 734 && area <= 749 {
		return false
	}
	if group == 0 || serial == 0 {
		return false
	}
	return true
}

// ValidEmail applies length and structure checks beyond what the regex
// guarantees (RFC 5321 limits, non-empty domain labels).
func ValidEmail(value string) bool {
	if len(value) > 254 {
		return false
	}

	parts := strings.Split(value, "@")
	if len(parts) != 2 {
		return false
	}
	local, domain := parts[0], parts[1]

	if len(local) == 0 || len(local) > 64 {
		return false
	}
	if len(domain) == 0 || len(domain) > 253 {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return false
		}
	}
	return true
}

// ValidPhone accepts 10-digit US numbers with a plausible area code, or
// 11-15 digits for international numbers.
func ValidPhone(value string) bool {
	digits := digitsOf(value)

	if len(digits) == 10 {
		area, _ := strconv.Atoi(digits[:3])
		if area < 200 || area == 911 || area == 988 {
			return false
		}
		return true
	}
	return len(digits) >= 11 && len(digits) <= 15
}

// ValidIPAddress checks for exactly four decimal octets in [0,255].
func ValidIPAddress(value string) bool {
	parts := strings.Split(value, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}

// ValidDateOfBirth checks that the value splits into three parts on
// '/' or '-', contains a 4-digit year in [1900, current year], and that
// the remaining parts each parse as integers in [1,31].
func ValidDateOfBirth(value string) bool {
	parts := splitDate(value)
	if len(parts) != 3 {
		return false
	}

	year := 0
	for _, part := range parts {
		if len(part) == 4 {
			n, err := strconv.Atoi(part)
			if err != nil {
				return false
			}
			year = n
			break
		}
	}
	if year == 0 {
		return false
	}
	if year < 1900 || year > time.Now().Year() {
		return false
	}

	for _, part := range parts {
		if len(part) <= 2 {
			n, err := strconv.Atoi(part)
			if err != nil || n < 1 || n > 31 {
				return false
			}
		}
	}
	return true
}

// ValidPassport matches the US passport format: one or two uppercase
// letters followed by 6-9 digits.
func ValidPassport(value string) bool {
	return passportFormat.MatchString(value)
}

// validate dispatches to the type-specific validator. Types without a
// validator are accepted.
func validate(value string, t PIIType) bool {
	switch t {
	case TypeCreditCard:
		return ValidCreditCard(value)
	case TypeSSN:
		return ValidSSN(value)
	case TypeEmail:
		return ValidEmail(value)
	case TypePhone:
		return ValidPhone(value)
	case TypeIPAddress:
		return ValidIPAddress(value)
	case TypeDateOfBirth:
		return ValidDateOfBirth(value)
	case TypePassport:
		return ValidPassport(value)
	default:
		return true
	}
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '\t' {
			return -1
		}
		return r
	}, s)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func splitDate(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-'
	})
}
