package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ziahq/specstudio/document"
	"github.com/ziahq/specstudio/importer"
)

type importInput struct {
	Content  string          `json:"content"            jsonschema:"The OpenAPI text to merge in (YAML or JSON)"`
	Document json.RawMessage `json:"document,omitempty" jsonschema:"The document to merge into, in its JSON form. Omitted means a fresh document."`
}

type importOutput struct {
	Document    *document.Document `json:"document"`
	FullyParsed bool               `json:"fully_parsed"`
	ParseError  string             `json:"parse_error,omitempty"`
}

func handleImportMerge(_ context.Context, _ *mcp.CallToolRequest, input importInput) (*mcp.CallToolResult, importOutput, error) {
	doc := document.New()
	if len(input.Document) > 0 {
		if err := json.Unmarshal(input.Document, doc); err != nil {
			return errResult(fmt.Errorf("decoding document: %w", err)), importOutput{}, nil
		}
	}

	outcome := importer.Merge(doc, input.Content)
	output := importOutput{Document: doc, FullyParsed: outcome.FullyParsed}
	if outcome.ParseError != nil {
		output.ParseError = outcome.ParseError.Error()
	}
	return nil, output, nil
}
