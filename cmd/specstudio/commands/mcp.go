package commands

import (
	"github.com/spf13/cobra"

	"github.com/ziahq/specstudio/internal/mcpserver"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio",
		Long:  "Run the Model Context Protocol server over stdio, exposing the\nvalidate, render, and import_merge tools to MCP clients.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}
