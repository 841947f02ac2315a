package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDocument = "openapi: 3.0.0\ninfo:\n  title: T\n  version: \"1.0\"\npaths: {}"

func TestValidateEmptyContent(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t  \n"} {
		result := Validate(input)

		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		d := result.Errors[0]
		assert.Equal(t, KindSyntax, d.Kind)
		assert.Equal(t, SeverityError, d.Severity)
		assert.Contains(t, d.Message, "empty")
		assert.False(t, d.HasPosition())
		assert.Equal(t, SeverityError, result.Severity)
	}
}

func TestValidateValidDocument(t *testing.T) {
	result := Validate(validDocument)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	require.Len(t, result.Infos, 1)
	assert.Equal(t, KindFormat, result.Infos[0].Kind)
	assert.Equal(t, SeverityInfo, result.Infos[0].Severity)
	assert.Contains(t, result.Infos[0].Message, "valid")
	assert.Equal(t, SeverityInfo, result.Severity)
}

func TestValidateSyntaxErrorHaltsPipeline(t *testing.T) {
	result := Validate("info:\n  title: [unclosed")

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	d := result.Errors[0]
	assert.Equal(t, KindSyntax, d.Kind)
	assert.NotEmpty(t, d.Suggestion)
	assert.Empty(t, result.Warnings, "schema stage does not run after a syntax failure")
	assert.Empty(t, result.Infos)
}

func TestValidateSyntaxErrorCarriesLine(t *testing.T) {
	// The broken mapping is on the third line (0-based line 2).
	result := Validate("info:\n  title: T\n bad: [\npaths: {}")

	require.Len(t, result.Errors, 1)
	if result.Errors[0].HasPosition() {
		assert.GreaterOrEqual(t, result.Errors[0].Line, 1)
	}
}

func TestValidateMissingInfo(t *testing.T) {
	result := Validate("paths: {}")

	assert.True(t, result.Valid, "structural findings are warnings, not errors")
	require.NotEmpty(t, result.Warnings)
	found := false
	for _, d := range result.Warnings {
		if d.Kind == KindSchema && strings.Contains(d.Message, "info") {
			found = true
			assert.Contains(t, d.Suggestion, "info section")
		}
	}
	assert.True(t, found, "expected a schema diagnostic about the missing info section")
	assert.Empty(t, result.Infos, "warnings suppress the valid notice")
	assert.Equal(t, SeverityWarning, result.Severity)
}

func TestValidateMissingPaths(t *testing.T) {
	result := Validate("info:\n  title: T\n  version: \"1.0\"")

	require.NotEmpty(t, result.Warnings)
	var messages []string
	for _, d := range result.Warnings {
		messages = append(messages, d.Message)
	}
	assert.Contains(t, messages, "missing required property: paths")
}

func TestValidateEmptyTitle(t *testing.T) {
	result := Validate("info:\n  title: ''\n  version: \"1.0\"\npaths: {}")

	require.NotEmpty(t, result.Warnings)
	assert.Equal(t, "missing required property: info.title", result.Warnings[0].Message)
	assert.Equal(t, "info.title", result.Warnings[0].Path)
}

func TestValidateTypedSections(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		path    string
	}{
		{
			name:    "servers not array",
			input:   validDocument + "\nservers: nope",
			message: "servers should be an array",
			path:    "servers",
		},
		{
			name:    "server url not string",
			input:   validDocument + "\nservers:\n  - url: [1, 2]",
			message: "servers[0].url should be a string",
			path:    "servers[0].url",
		},
		{
			name:    "schemas not mapping",
			input:   validDocument + "\ncomponents:\n  schemas: [a, b]",
			message: "components.schemas should be a mapping",
			path:    "components.schemas",
		},
		{
			name:    "security not array",
			input:   validDocument + "\nsecurity: nope",
			message: "security should be an array",
			path:    "security",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)

			require.NotEmpty(t, result.Warnings)
			var found *Diagnostic
			for i := range result.Warnings {
				if result.Warnings[i].Message == tt.message {
					found = &result.Warnings[i]
				}
			}
			require.NotNil(t, found, "expected warning %q, got %v", tt.message, result.Warnings)
			assert.Equal(t, tt.path, found.Path)
			assert.Equal(t, KindSchema, found.Kind)
		})
	}
}

func TestValidateResultIsFreshPerCall(t *testing.T) {
	first := Validate("paths: {}")
	second := Validate(validDocument)

	assert.NotEmpty(t, first.Warnings)
	assert.Empty(t, second.Warnings, "findings must not leak between calls")
	assert.True(t, second.Valid)
}

func TestValidateSuggestionsCanBeDisabled(t *testing.T) {
	v := &Validator{IncludeSuggestions: false}
	result := v.Validate("paths: {}")

	require.NotEmpty(t, result.Warnings)
	for _, d := range result.Warnings {
		assert.Empty(t, d.Suggestion)
	}
}

func TestDiagnosticsOrdering(t *testing.T) {
	result := Validate(validDocument)
	all := result.Diagnostics()
	require.Len(t, all, 1)
	assert.Equal(t, KindFormat, all[0].Kind)
}
