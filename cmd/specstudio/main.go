// Command specstudio is the SpecStudio command-line interface: validate
// and render OpenAPI 3.0 documents, run the editor backend, or serve the
// MCP tools over stdio.
package main

import (
	"fmt"
	"os"

	"github.com/ziahq/specstudio/cmd/specstudio/commands"
)

func main() {
	if err := commands.NewRoot().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
