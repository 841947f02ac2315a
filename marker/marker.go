// Package marker converts validation diagnostics into editor decorations.
//
// Every diagnostic maps to exactly one marker. The default range runs from
// the diagnostic's column to the end of its line; recognizable message
// shapes narrow the range to the implicated token.
package marker

import (
	"regexp"
	"strings"

	"github.com/ziahq/specstudio/validator"
)

// quickFixHint is appended to every hover. The editor surface binds its
// quick-fix menu to this chord.
const quickFixHint = "press Ctrl+. for quick fixes"

// Marker is one editor decoration. Lines and columns are 0-based;
// EndColumn is exclusive.
type Marker struct {
	StartLine   int                `json:"startLine"`
	StartColumn int                `json:"startColumn"`
	EndLine     int                `json:"endLine"`
	EndColumn   int                `json:"endColumn"`
	Severity    validator.Severity `json:"severity"`
	Message     string             `json:"message"`
	Hover       string             `json:"hover"`
}

// narrowPatterns locate the token a message implicates so the marker can
// bound it instead of flagging the whole line. Evaluated in order; the
// first capture found in the line text wins. The patterns track the
// message vocabulary of the parser and the structural checks and may need
// updating when either changes.
var narrowPatterns = []*regexp.Regexp{
	regexp.MustCompile(`duplicate key "([^"]+)"`),
	regexp.MustCompile(`mapping key "([^"]+)" already defined`),
	regexp.MustCompile(`"([^"]+)" should be a`),
	regexp.MustCompile(`unexpected (\S+)`),
}

// FromDiagnostics builds one marker per diagnostic against the text the
// diagnostics were produced from.
func FromDiagnostics(diags []validator.Diagnostic, text string) []Marker {
	lines := strings.Split(text, "\n")
	markers := make([]Marker, 0, len(diags))
	for _, d := range diags {
		markers = append(markers, fromDiagnostic(d, lines))
	}
	return markers
}

func fromDiagnostic(d validator.Diagnostic, lines []string) Marker {
	line := d.Line
	if line < 0 {
		line = 0
	}
	if line >= len(lines) {
		line = len(lines) - 1
	}
	lineText := lines[line]

	start := d.Column
	if start < 0 {
		start = 0
	}
	if start > len(lineText) {
		start = len(lineText)
	}
	end := len(lineText)

	if from, to, ok := narrowRange(d.Message, lineText); ok {
		start, end = from, to
	}
	if end < start {
		end = start
	}

	return Marker{
		StartLine:   line,
		StartColumn: start,
		EndLine:     line,
		EndColumn:   end,
		Severity:    d.Severity,
		Message:     d.Message,
		Hover:       hover(d),
	}
}

// narrowRange bounds the range to the token the message implicates, when
// both the message matches a known shape and the token occurs in the line.
func narrowRange(message, lineText string) (start, end int, ok bool) {
	for _, pattern := range narrowPatterns {
		m := pattern.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		if idx := strings.Index(lineText, m[1]); idx >= 0 {
			return idx, idx + len(m[1]), true
		}
	}
	return 0, 0, false
}

// hover composes the marker's hover text: severity-prefixed message, an
// optional details block fed from the diagnostic's details and suggestion,
// and the fixed quick-fix hint.
func hover(d validator.Diagnostic) string {
	var b strings.Builder
	b.WriteString(d.Severity.String())
	b.WriteString(": ")
	b.WriteString(d.Message)

	if d.Details != "" || d.Suggestion != "" {
		b.WriteString("\n\nDetails:")
		if d.Details != "" {
			b.WriteString("\n")
			b.WriteString(d.Details)
		}
		if d.Suggestion != "" {
			b.WriteString("\nSuggestion: ")
			b.WriteString(d.Suggestion)
		}
	}

	b.WriteString("\n\n")
	b.WriteString(quickFixHint)
	return b.String()
}
