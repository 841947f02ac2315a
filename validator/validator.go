package validator

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/ziahq/specstudio/internal/severity"
)

// Severity indicates the severity level of a diagnostic.
type Severity = severity.Severity

const (
	// SeverityError indicates a finding that makes the document invalid.
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a structural problem that does not block editing.
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages.
	SeverityInfo = severity.SeverityInfo
)

// Kind classifies what part of the pipeline produced a diagnostic.
type Kind string

const (
	// KindSyntax marks findings from the YAML parse stage.
	KindSyntax Kind = "syntax"
	// KindSchema marks findings from the structural check stage.
	KindSchema Kind = "schema"
	// KindFormat marks informational findings, such as the valid notice.
	KindFormat Kind = "format"
)

// PositionUnknown is the Line/Column value of a diagnostic that carries no
// source position. Positions are 0-based, so 0 is a real location.
const PositionUnknown = -1

// Diagnostic is a single validation finding.
type Diagnostic struct {
	// Kind classifies the producing stage: syntax, schema, or format.
	Kind Kind `json:"kind"`
	// Severity is the severity level of the finding.
	Severity Severity `json:"severity"`
	// Message is a human-readable description of the finding.
	Message string `json:"message"`
	// Line is the 0-based source line, or PositionUnknown.
	Line int `json:"lineNumber"`
	// Column is the 0-based source column, or PositionUnknown.
	Column int `json:"column"`
	// Path is the document path of the implicated field, when known
	// (e.g. "info.title").
	Path string `json:"path,omitempty"`
	// Details carries extra free-form information from the underlying
	// parser or validator.
	Details string `json:"details,omitempty"`
	// Suggestion is a heuristic fix hint, when one matched.
	Suggestion string `json:"suggestion,omitempty"`
}

// HasPosition reports whether the diagnostic carries a source position.
func (d Diagnostic) HasPosition() bool { return d.Line >= 0 }

// String renders the diagnostic for human output, with 1-based positions.
func (d Diagnostic) String() string {
	if d.HasPosition() {
		return fmt.Sprintf("%s: %s (line %d, column %d)", d.Severity, d.Message, d.Line+1, d.Column+1)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Result is the outcome of one validation pass. A Result is built fresh
// per call and never shared between calls.
type Result struct {
	// Valid is true iff Errors is empty. Warnings do not affect validity.
	Valid bool `json:"isValid"`
	// Errors contains error-severity diagnostics.
	Errors []Diagnostic `json:"errors"`
	// Warnings contains warning-severity diagnostics.
	Warnings []Diagnostic `json:"warnings"`
	// Infos contains informational diagnostics.
	Infos []Diagnostic `json:"infos"`
	// Severity is the worst severity present across all diagnostics.
	Severity Severity `json:"severity"`
}

// Diagnostics returns all findings in severity order: errors, warnings,
// then infos.
func (r *Result) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, 0, len(r.Errors)+len(r.Warnings)+len(r.Infos))
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	return append(out, r.Infos...)
}

// Validator checks OpenAPI 3.0 text. The zero value validates with
// suggestions disabled; New returns one with defaults applied.
type Validator struct {
	// IncludeSuggestions controls whether diagnostics carry heuristic fix
	// hints matched from the finding's message text.
	IncludeSuggestions bool
}

// New creates a Validator with default settings.
func New() *Validator {
	return &Validator{IncludeSuggestions: true}
}

// Validate checks text using a default Validator.
func Validate(text string) *Result {
	return New().Validate(text)
}

// Validate runs the staged pipeline over text. Stages short-circuit: an
// empty-content or syntax failure halts before the structural check. A
// pass with no findings at all yields one informational valid notice.
func (v *Validator) Validate(text string) *Result {
	result := &Result{}

	if strings.TrimSpace(text) == "" {
		v.add(result, Diagnostic{
			Kind:     KindSyntax,
			Severity: SeverityError,
			Message:  "content cannot be empty",
			Line:     PositionUnknown,
			Column:   PositionUnknown,
		})
		return finalize(result)
	}

	var parsed any
	if err := yaml.Unmarshal([]byte(text), &parsed); err != nil {
		v.add(result, v.syntaxDiagnostic(err))
		return finalize(result)
	}

	v.checkStructure(result, parsed)

	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		v.add(result, Diagnostic{
			Kind:     KindFormat,
			Severity: SeverityInfo,
			Message:  "content is valid",
			Line:     PositionUnknown,
			Column:   PositionUnknown,
		})
	}
	return finalize(result)
}

// syntaxDiagnostic builds the single error for a failed parse, extracting
// the parser's position and matching a suggestion from the syntax table.
func (v *Validator) syntaxDiagnostic(err error) Diagnostic {
	msg := err.Error()
	line, column := extractPosition(msg)
	return Diagnostic{
		Kind:       KindSyntax,
		Severity:   SeverityError,
		Message:    msg,
		Line:       line,
		Column:     column,
		Details:    msg,
		Suggestion: v.suggest(syntaxSuggestions, genericSyntaxSuggestion, msg),
	}
}

// add routes a diagnostic to the matching result bucket, applying the
// suggestion policy.
func (v *Validator) add(result *Result, d Diagnostic) {
	if !v.IncludeSuggestions {
		d.Suggestion = ""
	}
	switch d.Severity {
	case SeverityError:
		result.Errors = append(result.Errors, d)
	case SeverityWarning:
		result.Warnings = append(result.Warnings, d)
	default:
		result.Infos = append(result.Infos, d)
	}
}

// finalize computes the derived Result fields from the collected buckets.
func finalize(result *Result) *Result {
	result.Valid = len(result.Errors) == 0
	switch {
	case len(result.Errors) > 0:
		result.Severity = SeverityError
	case len(result.Warnings) > 0:
		result.Severity = SeverityWarning
	default:
		result.Severity = SeverityInfo
	}
	return result
}
