// Package severity provides severity level constants and utilities
// for diagnostics reported by the validator and marker packages.
//
// The severity levels are ordered from most to least severe:
// Error > Warning > Info
package severity

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	// SeverityError indicates a problem that makes the document invalid.
	SeverityError Severity = iota

	// SeverityWarning indicates a structural violation that does not block
	// editing but should be addressed.
	SeverityWarning

	// SeverityInfo indicates informational messages, such as the "content
	// is valid" confirmation emitted on a clean validation pass.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity as its string name, so JSON payloads
// carry "error" instead of an ordinal.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name. Unknown names decode as Info.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		*s = SeverityInfo
	}
	return nil
}

// Worst returns the more severe of the two levels.
func Worst(a, b Severity) Severity {
	if a < b {
		return a
	}
	return b
}
