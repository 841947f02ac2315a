// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes SpecStudio capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ziahq/specstudio"
)

const serverInstructions = `SpecStudio MCP server — validates, renders, and imports OpenAPI 3.0 documents.

Tools:
- validate: run the staged validation pipeline over YAML or JSON text. Returns
  errors, warnings, and infos with 0-based line/column positions, plus editor
  markers computed against the same text.
- render: serialize a SpecStudio document (its JSON form) to deterministic
  YAML or JSON. The same document always yields byte-identical output.
- import_merge: merge YAML or JSON text into a document section by section.
  Sections absent from the text are left untouched; unparseable text leaves
  the document unchanged and reports the parse error.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "specstudio", Version: specstudio.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate an OpenAPI 3.0 document (YAML or JSON text). Returns errors, warnings, and infos with 0-based line/column positions and heuristic fix suggestions, plus editor markers bounding the implicated tokens. Use no_suggestions=true to omit the fix hints.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render",
		Description: "Render a SpecStudio document to text. Pass the document in its JSON form (as returned by import_merge). Output is deterministic: the same document always produces byte-identical text. Format is yaml (default) or json.",
	}, handleRender)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_merge",
		Description: "Merge OpenAPI 3.0 text (YAML or JSON) into a document. Sections present in the text replace the matching document sections; absent sections are preserved. Omit the document to import into a fresh one. Unparseable text leaves the document unchanged and sets parse_error.",
	}, handleImportMerge)
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
