// Package validator checks OpenAPI 3.0 text and reports diagnostics.
//
// Validation runs in stages: an empty-content guard, a YAML syntax check,
// and a structural check against the OpenAPI subset the editor works with.
// The first failing stage short-circuits the pipeline. Nothing the
// validator finds is fatal; it is a reporting facility, not a gate, and
// every finding carries a severity, a position when one is known, and a
// heuristic fix suggestion.
//
// Quick start:
//
//	result := validator.Validate(yamlText)
//	if !result.Valid {
//	    for _, d := range result.Errors {
//	        fmt.Printf("%d:%d %s (%s)\n", d.Line, d.Column, d.Message, d.Suggestion)
//	    }
//	}
//
// Results are built fresh per call; the package keeps no state between
// calls and is safe for concurrent use.
package validator
