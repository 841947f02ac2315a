// Package commands provides the CLI command handlers for SpecStudio.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziahq/specstudio"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// NewRoot builds the specstudio command tree.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:     "specstudio",
		Short:   "Visual OpenAPI 3.0 editor backend and toolkit",
		Long:    "SpecStudio validates, renders, and imports OpenAPI 3.0 documents,\nand runs the editor backend service.",
		Version: specstudio.Version(),
		// Errors are reported once, by main.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(
		newValidateCommand(),
		newRenderCommand(),
		newServeCommand(),
		newMCPCommand(),
	)
	return root
}

// readInput reads the document text from a file path, or from the
// command's stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == StdinFilePath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
