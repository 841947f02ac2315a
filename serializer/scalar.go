package serializer

import "strings"

// scalar renders a string value using the editor's quoting conventions:
// values containing a colon, a newline, or a single quote are double-quoted
// with inner double quotes escaped; values that would otherwise be
// misparsed (empty string, or a '#' that opens a comment) are
// single-quoted; everything else is emitted bare.
func scalar(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, ":\n'") {
		return `"` + escapeDouble(s) + `"`
	}
	if startsComment(s) {
		return "'" + s + "'"
	}
	return s
}

// startsComment reports whether a bare rendering of s would open a YAML
// comment: a leading '#', or a '#' preceded by whitespace.
func startsComment(s string) bool {
	if s[0] == '#' {
		return true
	}
	return strings.Contains(s, " #") || strings.Contains(s, "\t#")
}

// singleQuoted renders a string inside single quotes, used for the inline
// scope lists of security requirements. Values with embedded single quotes
// fall back to the double-quoted form.
func singleQuoted(s string) string {
	if strings.ContainsAny(s, "'\n") {
		return `"` + escapeDouble(s) + `"`
	}
	return "'" + s + "'"
}

func escapeDouble(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\n`)
}

// mapKey renders a mapping key. Keys follow the same quoting rules as
// values; path templates and media types are emitted bare.
func mapKey(s string) string {
	return scalar(s)
}

// boolLiteral renders a boolean via its literal textual form.
func boolLiteral(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
