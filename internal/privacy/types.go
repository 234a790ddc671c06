package privacy

// PIIType identifies a category of personally identifiable information.
type PIIType string

const (
	TypeCreditCard    PIIType = "CREDIT_CARD"
	TypeSSN           PIIType = "SSN"
	TypeEmail         PIIType = "EMAIL"
	TypePhone         PIIType = "PHONE"
	TypePersonName    PIIType = "PERSON_NAME"
	TypeAddress       PIIType = "ADDRESS"
	TypeIPAddress     PIIType = "IP_ADDRESS"
	TypeDateOfBirth   PIIType = "DATE_OF_BIRTH"
	TypePassport      PIIType = "PASSPORT"
	TypeDriverLicense PIIType = "DRIVER_LICENSE"
	TypeBankAccount   PIIType = "BANK_ACCOUNT"
	TypeTaxID         PIIType = "TAX_ID"
)

// AllTypes lists every supported PII type in a stable order.
var AllTypes = []PIIType{
	TypeCreditCard,
	TypeSSN,
	TypeEmail,
	TypePhone,
	TypePersonName,
	TypeAddress,
	TypeIPAddress,
	TypeDateOfBirth,
	TypePassport,
	TypeDriverLicense,
	TypeBankAccount,
	TypeTaxID,
}

// ParseType converts a type name (case-insensitive, spaces or dashes
// allowed) to a PIIType. The second return value reports whether the
// name is known.
func ParseType(name string) (PIIType, bool) {
	t := PIIType(upperSnake(name))
	for _, known := range AllTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

func upperSnake(s string) string {
	b := []byte(s)
	for i := range b {
		switch {
		case b[i] >= 'a' && b[i] <= 'z':
			b[i] -= 'a' - 'A'
		case b[i] == ' ' || b[i] == '-':
			b[i] = '_'
		}
	}
	return string(b)
}

// Pattern describes one regular expression rule in the registry.
type Pattern struct {
	Type               PIIType
	Expr               string
	BaseConfidence     float64
	Description        string
	RequiresValidation bool
}

// Match is a single confirmed PII finding. Offsets are byte positions
// into the scanned text; the interval is half-open, End exclusive.
// The text at [Start,End) always equals Value exactly.
type Match struct {
	Type        PIIType `json:"pii_type"`
	Value       string  `json:"value"`
	Start       int     `json:"start"`
	End         int     `json:"end"`
	Confidence  float64 `json:"confidence"`
	MaskedValue string  `json:"masked_value"`
	Context     string  `json:"context,omitempty"`
}

// overlaps reports whether two half-open spans intersect.
func (m Match) overlaps(other Match) bool {
	return m.Start < other.End && m.End > other.Start
}

// Options controls detector behavior. The zero value disables
// everything; use DefaultOptions for the usual configuration.
type Options struct {
	// ContextValidation enables the lexical window heuristics that
	// raise or veto name/address candidates.
	ContextValidation bool

	// StrictValidation runs format/checksum validators on pattern
	// matches that require them, discarding failures.
	StrictValidation bool

	// CollectStatistics keeps per-type counters and timing on the
	// detector instance.
	CollectStatistics bool

	// IncludeContext attaches a short surrounding-text snippet to
	// each returned match.
	IncludeContext bool
}

// DefaultOptions matches the behavior expected by most callers.
func DefaultOptions() Options {
	return Options{
		ContextValidation: true,
		StrictValidation:  true,
	}
}

// DefaultConfidenceThreshold is applied when a caller passes a
// non-positive threshold to Detect or Mask.
const DefaultConfidenceThreshold = 0.7
