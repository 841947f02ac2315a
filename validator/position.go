package validator

import (
	"regexp"
	"strconv"
)

// Position extraction is pattern-matching over free-text messages from the
// underlying parser and validator. The patterns track their vocabulary and
// may need updating when either is upgraded.
var (
	// go.yaml.in/yaml/v4 reports "yaml: line N: message" with a 1-based line.
	yamlLinePattern = regexp.MustCompile(`yaml: line (\d+):`)
	// Some validators report "line N, column M", both 1-based.
	lineColumnPattern = regexp.MustCompile(`line (\d+), column (\d+)`)
	// Some validators report the implicated location as `at path "X"`.
	pathPattern = regexp.MustCompile(`at path "([^"]+)"`)
)

// extractPosition pulls a 0-based line and column out of a message.
// Returns PositionUnknown for whatever it cannot find.
func extractPosition(message string) (line, column int) {
	line, column = PositionUnknown, PositionUnknown
	if m := lineColumnPattern.FindStringSubmatch(message); m != nil {
		line = mustAtoi(m[1]) - 1
		column = mustAtoi(m[2]) - 1
		return line, column
	}
	if m := yamlLinePattern.FindStringSubmatch(message); m != nil {
		line = mustAtoi(m[1]) - 1
	}
	return line, column
}

// extractPath pulls a document path out of a message, or "".
func extractPath(message string) string {
	if m := pathPattern.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	return ""
}

// mustAtoi converts digits already matched by \d+ in the patterns above.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
