package validator

import "strings"

// suggestionRule pairs a message substring with a fix hint. Rules are
// evaluated in order; the first match wins.
//
// The substrings track the message vocabulary of go.yaml.in/yaml/v4 and
// the structural checks in this package. Upgrading the parser may require
// updating this table.
type suggestionRule struct {
	contains   string
	suggestion string
}

// syntaxSuggestions matches parser failure messages from the syntax stage.
var syntaxSuggestions = []suggestionRule{
	{"end of the stream", "check for missing closing brackets or quotes"},
	{"unexpected end", "check for missing closing brackets or quotes"},
	{"duplicate key", "remove or rename the duplicate property"},
	{"bad indentation", "use 2 spaces per indentation level"},
	{"tab", "replace tabs with spaces for indentation"},
	{"mapping values are not allowed", "quote values that contain a colon, or check the indentation of this line"},
	{"did not find expected key", "check the indentation and that every key ends with a colon"},
	{"unknown anchor", "define the anchor before referencing it, or remove the alias"},
	{"cannot unmarshal", "check that the value matches the expected shape"},
}

const genericSyntaxSuggestion = "check the YAML syntax near the reported position"

// schemaSuggestions matches structural finding messages from the schema
// stage.
var schemaSuggestions = []suggestionRule{
	{"missing required property: info", "add an info section with title and version"},
	{"missing required property: paths", "add a paths section, even an empty one: paths: {}"},
	{"missing required property", "add the missing required property"},
	{"should be a", "change the value to the expected type"},
	{"additional propert", "remove the unrecognized property or check its spelling"},
	{"not one of", "use one of the allowed values"},
	{"enum", "use one of the allowed values"},
}

const genericSchemaSuggestion = "compare the document against the OpenAPI 3.0 structure"

// suggest returns the first matching rule's suggestion, or the fallback.
// Matching is case-insensitive over the whole message.
func (v *Validator) suggest(rules []suggestionRule, fallback, message string) string {
	lower := strings.ToLower(message)
	for _, rule := range rules {
		if strings.Contains(lower, rule.contains) {
			return rule.suggestion
		}
	}
	return fallback
}
