package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ziahq/specstudio/document"
	"github.com/ziahq/specstudio/internal/naming"
	"github.com/ziahq/specstudio/serializer"
)

type renderInput struct {
	Document json.RawMessage `json:"document"         jsonschema:"The document to render, in its JSON form (as returned by import_merge)"`
	Format   string          `json:"format,omitempty" jsonschema:"Output format: yaml (default) or json"`
}

type renderOutput struct {
	Content  string `json:"content"`
	FileName string `json:"file_name"`
	MIMEType string `json:"mime_type"`
}

func handleRender(_ context.Context, _ *mcp.CallToolRequest, input renderInput) (*mcp.CallToolResult, renderOutput, error) {
	doc := document.New()
	if len(input.Document) > 0 {
		if err := json.Unmarshal(input.Document, doc); err != nil {
			return errResult(fmt.Errorf("decoding document: %w", err)), renderOutput{}, nil
		}
	}

	var content string
	switch input.Format {
	case "", "yaml":
		content = serializer.Serialize(doc)
	case "json":
		var err error
		content, err = serializer.SerializeJSON(doc)
		if err != nil {
			return errResult(fmt.Errorf("rendering JSON: %w", err)), renderOutput{}, nil
		}
	default:
		return errResult(fmt.Errorf("unknown format %q: must be yaml or json", input.Format)), renderOutput{}, nil
	}

	title := ""
	if doc.Info != nil {
		title = doc.Info.Title
	}
	return nil, renderOutput{
		Content:  content,
		FileName: naming.ExportFileName(title),
		MIMEType: naming.YAMLMIMEType,
	}, nil
}
