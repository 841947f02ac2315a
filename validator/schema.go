package validator

import (
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// subsetSchema declares the OpenAPI 3.0 subset the editor works with:
// info.title, info.version, and paths are required; the remaining sections
// are optional but typed.
func subsetSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"info", "paths"},
		Properties: map[string]*jsonschema.Schema{
			"openapi": {Type: "string"},
			"info": {
				Type:     "object",
				Required: []string{"title", "version"},
				Properties: map[string]*jsonschema.Schema{
					"title":   {Type: "string"},
					"version": {Type: "string"},
				},
			},
			"paths": {Type: "object"},
			"servers": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"url": {Type: "string"},
					},
				},
			},
			"components": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"schemas":         {Type: "object"},
					"securitySchemes": {Type: "object"},
				},
			},
			"security": {Type: "array"},
		},
	}
}

// resolvedSubset compiles the declared subset once per process.
var resolvedSubset = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	return subsetSchema().Resolve(nil)
})

// checkStructure runs the schema stage over the parsed value. Hand-rolled
// checks carry precise paths and run first; the compiled subset schema is
// the backstop for shapes they miss. Violations are warnings, never
// errors: a structurally broken document must not block editing.
func (v *Validator) checkStructure(result *Result, parsed any) {
	root, ok := parsed.(map[string]any)
	if !ok {
		v.addSchemaWarning(result, "", "document should be a mapping of OpenAPI sections")
		return
	}

	before := len(result.Warnings)
	v.checkInfo(result, root)
	v.checkPaths(result, root)
	v.checkServers(result, root)
	v.checkComponents(result, root)
	v.checkSecurity(result, root)

	resolved, err := resolvedSubset()
	if err != nil {
		// Compilation failing is a fault in the declared schema itself, so
		// it surfaces as the stage's single error.
		msg := err.Error()
		line, column := extractPosition(msg)
		v.add(result, Diagnostic{
			Kind:       KindSchema,
			Severity:   SeverityError,
			Message:    fmt.Sprintf("schema validation unavailable: %s", msg),
			Line:       line,
			Column:     column,
			Path:       extractPath(msg),
			Details:    msg,
			Suggestion: v.suggest(schemaSuggestions, genericSchemaSuggestion, msg),
		})
		return
	}

	if err := resolved.Validate(parsed); err != nil && len(result.Warnings) == before {
		msg := err.Error()
		line, column := extractPosition(msg)
		v.add(result, Diagnostic{
			Kind:       KindSchema,
			Severity:   SeverityWarning,
			Message:    msg,
			Line:       line,
			Column:     column,
			Path:       extractPath(msg),
			Details:    msg,
			Suggestion: v.suggest(schemaSuggestions, genericSchemaSuggestion, msg),
		})
	}
}

func (v *Validator) checkInfo(result *Result, root map[string]any) {
	raw, present := root["info"]
	if !present {
		v.addSchemaWarning(result, "info", "missing required property: info")
		return
	}
	info, ok := raw.(map[string]any)
	if !ok {
		v.addSchemaWarning(result, "info", "info should be a mapping")
		return
	}
	checkRequiredString(v, result, info, "title", "info.title")
	checkRequiredString(v, result, info, "version", "info.version")
}

func checkRequiredString(v *Validator, result *Result, m map[string]any, key, path string) {
	raw, present := m[key]
	if !present {
		v.addSchemaWarning(result, path, "missing required property: "+path)
		return
	}
	s, ok := raw.(string)
	if !ok {
		v.addSchemaWarning(result, path, path+" should be a string")
		return
	}
	if s == "" {
		v.addSchemaWarning(result, path, "missing required property: "+path)
	}
}

func (v *Validator) checkPaths(result *Result, root map[string]any) {
	raw, present := root["paths"]
	if !present {
		v.addSchemaWarning(result, "paths", "missing required property: paths")
		return
	}
	if _, ok := raw.(map[string]any); !ok {
		v.addSchemaWarning(result, "paths", "paths should be a mapping of path templates")
	}
}

func (v *Validator) checkServers(result *Result, root map[string]any) {
	raw, present := root["servers"]
	if !present {
		return
	}
	servers, ok := raw.([]any)
	if !ok {
		v.addSchemaWarning(result, "servers", "servers should be an array")
		return
	}
	for i, entry := range servers {
		path := fmt.Sprintf("servers[%d]", i)
		server, ok := entry.(map[string]any)
		if !ok {
			v.addSchemaWarning(result, path, path+" should be a mapping")
			continue
		}
		if url, present := server["url"]; present {
			if _, ok := url.(string); !ok {
				v.addSchemaWarning(result, path+".url", path+".url should be a string")
			}
		}
	}
}

func (v *Validator) checkComponents(result *Result, root map[string]any) {
	raw, present := root["components"]
	if !present {
		return
	}
	components, ok := raw.(map[string]any)
	if !ok {
		v.addSchemaWarning(result, "components", "components should be a mapping")
		return
	}
	for _, key := range []string{"schemas", "securitySchemes"} {
		if section, present := components[key]; present {
			if _, ok := section.(map[string]any); !ok {
				path := "components." + key
				v.addSchemaWarning(result, path, path+" should be a mapping")
			}
		}
	}
}

func (v *Validator) checkSecurity(result *Result, root map[string]any) {
	raw, present := root["security"]
	if !present {
		return
	}
	if _, ok := raw.([]any); !ok {
		v.addSchemaWarning(result, "security", "security should be an array")
	}
}

// addSchemaWarning appends a position-less structural warning with a
// suggestion matched from the schema table.
func (v *Validator) addSchemaWarning(result *Result, path, message string) {
	v.add(result, Diagnostic{
		Kind:       KindSchema,
		Severity:   SeverityWarning,
		Message:    message,
		Line:       PositionUnknown,
		Column:     PositionUnknown,
		Path:       path,
		Suggestion: v.suggest(schemaSuggestions, genericSchemaSuggestion, message),
	})
}
