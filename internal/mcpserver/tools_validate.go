package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ziahq/specstudio/marker"
	"github.com/ziahq/specstudio/validator"
)

type validateInput struct {
	Content       string `json:"content"                  jsonschema:"The OpenAPI document text to validate (YAML or JSON)"`
	NoSuggestions bool   `json:"no_suggestions,omitempty" jsonschema:"Omit heuristic fix suggestions from diagnostics"`
}

type validateIssue struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Path       string `json:"path,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type validateMarker struct {
	StartLine   int    `json:"start_line"`
	StartColumn int    `json:"start_column"`
	EndLine     int    `json:"end_line"`
	EndColumn   int    `json:"end_column"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
}

type validateOutput struct {
	Valid    bool             `json:"valid"`
	Severity string           `json:"severity"`
	Errors   []validateIssue  `json:"errors,omitempty"`
	Warnings []validateIssue  `json:"warnings,omitempty"`
	Infos    []validateIssue  `json:"infos,omitempty"`
	Markers  []validateMarker `json:"markers,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	val := validator.New()
	val.IncludeSuggestions = !input.NoSuggestions
	result := val.Validate(input.Content)

	output := validateOutput{
		Valid:    result.Valid,
		Severity: result.Severity.String(),
		Errors:   makeIssues(result.Errors),
		Warnings: makeIssues(result.Warnings),
		Infos:    makeIssues(result.Infos),
	}
	for _, m := range marker.FromDiagnostics(result.Diagnostics(), input.Content) {
		output.Markers = append(output.Markers, validateMarker{
			StartLine:   m.StartLine,
			StartColumn: m.StartColumn,
			EndLine:     m.EndLine,
			EndColumn:   m.EndColumn,
			Severity:    m.Severity.String(),
			Message:     m.Message,
		})
	}
	return nil, output, nil
}

// makeIssues returns nil for an empty bucket, preserving omitempty JSON
// semantics.
func makeIssues(diags []validator.Diagnostic) []validateIssue {
	if len(diags) == 0 {
		return nil
	}
	issues := make([]validateIssue, 0, len(diags))
	for _, d := range diags {
		issues = append(issues, validateIssue{
			Kind:       string(d.Kind),
			Message:    d.Message,
			Line:       d.Line,
			Column:     d.Column,
			Path:       d.Path,
			Suggestion: d.Suggestion,
		})
	}
	return issues
}
