package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziahq/specstudio/validator"
)

// errInvalidDocument signals the non-zero exit for a document that failed
// validation; the diagnostics were already printed.
var errInvalidDocument = errors.New("document is not valid")

func newValidateCommand() *cobra.Command {
	var (
		format        string
		noSuggestions bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file|->",
		Short: "Validate an OpenAPI 3.0 document",
		Long:  "Validate an OpenAPI 3.0 document (YAML or JSON) and print the\ndiagnostics. Exits non-zero when the document has errors.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			val := validator.New()
			val.IncludeSuggestions = !noSuggestions
			result := val.Validate(text)

			switch format {
			case "text":
				printResultText(cmd, result)
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return fmt.Errorf("encoding result: %w", err)
				}
			default:
				return fmt.Errorf("invalid format %q: must be text or json", format)
			}

			if !result.Valid {
				return errInvalidDocument
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")
	cmd.Flags().BoolVar(&noSuggestions, "no-suggestions", false, "omit heuristic fix suggestions")
	return cmd
}

func printResultText(cmd *cobra.Command, result *validator.Result) {
	out := cmd.OutOrStdout()
	for _, d := range result.Diagnostics() {
		fmt.Fprintln(out, d.String())
		if d.Suggestion != "" {
			fmt.Fprintf(out, "  suggestion: %s\n", d.Suggestion)
		}
	}
	fmt.Fprintf(out, "\n%d errors, %d warnings\n", len(result.Errors), len(result.Warnings))
}
