package importer

import (
	"slices"

	"go.yaml.in/yaml/v4"

	"github.com/ziahq/specstudio/document"
)

// Outcome reports how an import went. Import never fails the caller;
// Outcome lets callers distinguish a best-effort success from a fallback
// without relying on exceptions or sentinel state.
type Outcome struct {
	// FullyParsed is true when the source text parsed cleanly. When false,
	// nothing was merged and ParseError carries the parser failure.
	FullyParsed bool

	// ParseError is the swallowed parse failure, if any.
	ParseError error
}

// Importer converts OpenAPI-shaped YAML or JSON text into the document
// model. The zero value is usable; New returns one with defaults applied.
type Importer struct {
	// Logger receives structured diagnostics for swallowed parse failures.
	// Defaults to NopLogger.
	Logger Logger
}

// New creates an Importer with default settings.
func New() *Importer {
	return &Importer{Logger: NopLogger{}}
}

// Merge applies text onto doc using a default Importer.
func Merge(doc *document.Document, text string) Outcome {
	return New().Merge(doc, text)
}

// Parse imports text into a fresh empty document using a default Importer.
func Parse(text string) (*document.Document, Outcome) {
	return New().Parse(text)
}

// Merge applies the source text onto an existing document as a partial
// merge: only top-level sections present in the source overwrite the
// document, absent sections keep their prior value. Unparseable input
// merges nothing. Merge never returns an error; inspect the Outcome to
// distinguish the cases.
//
// Section rules:
//   - info: always rebuilt when present, with per-field defaults (title and
//     description empty, version "1.0.0", contact only when present).
//   - servers: overwritten only when the source value is an array. A
//     present-but-malformed servers value leaves the list untouched, unlike
//     the other sections. Observed behavior of the original editor, kept
//     pending product-owner confirmation.
//   - components.securitySchemes: rebuilt per entry; oauth2 flows union
//     their scopes into the scheme's derived cache in source order, last
//     flow wins on collision.
//   - components.schemas: only entries with type "object" and a properties
//     map are imported; everything else is dropped.
//   - paths: rebuilt with per-field defaulting of operations, parameters,
//     request bodies, and responses.
//   - security: overwritten only when the source value is an array.
func (imp *Importer) Merge(doc *document.Document, text string) Outcome {
	logger := imp.Logger
	if logger == nil {
		logger = NopLogger{}
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		logger.Warn("import text did not parse, merging nothing", "error", err)
		return Outcome{FullyParsed: false, ParseError: err}
	}

	top := documentRoot(&root)
	if !isMapping(top) {
		logger.Debug("import source is not a mapping, merging nothing")
		return Outcome{FullyParsed: true}
	}

	if info := mapValue(top, "info"); info != nil {
		doc.Info = importInfo(info)
	}
	if servers := mapValue(top, "servers"); isSequence(servers) {
		doc.Servers = importServers(servers)
	}
	if components := mapValue(top, "components"); isMapping(components) {
		if schemes := mapValue(components, "securitySchemes"); schemes != nil {
			doc.ReplaceSecuritySchemes(importSecuritySchemes(schemes))
		}
		if schemas := mapValue(components, "schemas"); schemas != nil {
			doc.ReplaceSchemas(importSchemas(schemas))
		}
	}
	if paths := mapValue(top, "paths"); paths != nil {
		doc.ReplacePaths(importPaths(paths))
	}
	if security := mapValue(top, "security"); isSequence(security) {
		doc.GlobalSecurity = importSecurityList(security)
	}

	logger.Debug("import merged", "fullyParsed", true)
	return Outcome{FullyParsed: true}
}

// Parse imports text into a fresh empty document.
func (imp *Importer) Parse(text string) (*document.Document, Outcome) {
	doc := document.New()
	outcome := imp.Merge(doc, text)
	return doc, outcome
}

func importInfo(n *yaml.Node) *document.Info {
	info := &document.Info{
		Title:       asString(mapValue(n, "title")),
		Description: asString(mapValue(n, "description")),
		Version:     asString(mapValue(n, "version")),
	}
	if info.Version == "" {
		info.Version = "1.0.0"
	}
	if contact := mapValue(n, "contact"); isMapping(contact) {
		info.Contact = &document.Contact{
			Name:  asString(mapValue(contact, "name")),
			Email: asString(mapValue(contact, "email")),
			URL:   asString(mapValue(contact, "url")),
		}
	}
	return info
}

func importServers(n *yaml.Node) []*document.Server {
	items := sequence(n)
	servers := make([]*document.Server, 0, len(items))
	for _, item := range items {
		servers = append(servers, &document.Server{
			URL:         asString(mapValue(item, "url")),
			Description: asString(mapValue(item, "description")),
		})
	}
	return servers
}

func importSecuritySchemes(n *yaml.Node) []*document.SecurityScheme {
	entries := mapEntries(n)
	schemes := make([]*document.SecurityScheme, 0, len(entries))
	for _, e := range entries {
		scheme := &document.SecurityScheme{
			Name:         e.key,
			Type:         asString(mapValue(e.value, "type")),
			Scheme:       asString(mapValue(e.value, "scheme")),
			BearerFormat: asString(mapValue(e.value, "bearerFormat")),
			In:           asString(mapValue(e.value, "in")),
		}
		if flows := mapValue(e.value, "flows"); scheme.Type == "oauth2" && isMapping(flows) {
			scheme.Flows = make(map[string]*document.OAuthFlow)
			for _, f := range mapEntries(flows) {
				flow := &document.OAuthFlow{
					AuthorizationURL: asString(mapValue(f.value, "authorizationUrl")),
					TokenURL:         asString(mapValue(f.value, "tokenUrl")),
					Scopes:           stringMap(mapValue(f.value, "scopes")),
				}
				scheme.Flows[f.key] = flow
				// Union in source order so a later flow wins on collision.
				for name, desc := range flow.Scopes {
					if scheme.Scopes == nil {
						scheme.Scopes = make(map[string]string)
					}
					scheme.Scopes[name] = desc
				}
			}
		}
		schemes = append(schemes, scheme)
	}
	return schemes
}

func importSchemas(n *yaml.Node) []*document.Schema {
	entries := mapEntries(n)
	schemas := make([]*document.Schema, 0, len(entries))
	for _, e := range entries {
		props := mapValue(e.value, "properties")
		if asString(mapValue(e.value, "type")) != "object" || !isMapping(props) {
			continue
		}
		schema := &document.Schema{Name: e.key, Type: "object"}
		for _, p := range mapEntries(props) {
			schema.Properties = append(schema.Properties, &document.Property{
				Name:           p.key,
				Type:           asString(mapValue(p.value, "type")),
				Description:    asString(mapValue(p.value, "description")),
				AgentParamType: document.AgentParamType(asString(mapValue(p.value, "x-zia-agent-param-type"))),
			})
		}
		// Required entries naming unknown properties are dropped so the
		// subset invariant holds from the first mutation on.
		for _, name := range stringSeq(mapValue(e.value, "required")) {
			if schema.Property(name) != nil && !slices.Contains(schema.Required, name) {
				schema.Required = append(schema.Required, name)
			}
		}
		schemas = append(schemas, schema)
	}
	return schemas
}

func importPaths(n *yaml.Node) []*document.Path {
	entries := mapEntries(n)
	paths := make([]*document.Path, 0, len(entries))
	for _, e := range entries {
		p := &document.Path{Path: e.key}
		for _, m := range mapEntries(e.value) {
			p.Methods = append(p.Methods, document.MethodOperation{
				Method:    m.key,
				Operation: importOperation(m.value),
			})
		}
		paths = append(paths, p)
	}
	return paths
}

func importOperation(n *yaml.Node) *document.Operation {
	op := &document.Operation{
		Summary:     asString(mapValue(n, "summary")),
		Description: asString(mapValue(n, "description")),
		OperationID: asString(mapValue(n, "operationId")),
	}
	for _, tag := range stringSeq(mapValue(n, "tags")) {
		if !slices.Contains(op.Tags, tag) {
			op.Tags = append(op.Tags, tag)
		}
	}
	if security := mapValue(n, "security"); isSequence(security) {
		op.Security = importSecurityList(security)
	}
	for _, item := range sequence(mapValue(n, "parameters")) {
		op.Parameters = append(op.Parameters, importParameter(item))
	}
	if rb := mapValue(n, "requestBody"); isMapping(rb) {
		op.RequestBody = importRequestBody(rb)
	}
	for _, r := range mapEntries(mapValue(n, "responses")) {
		op.Responses = append(op.Responses, importResponse(r.key, r.value))
	}
	return op
}

func importParameter(n *yaml.Node) *document.Parameter {
	return &document.Parameter{
		Name:           asString(mapValue(n, "name")),
		In:             asString(mapValue(n, "in")),
		Required:       asBool(mapValue(n, "required")),
		Description:    asString(mapValue(n, "description")),
		Schema:         document.SchemaType{Type: asString(mapValue(mapValue(n, "schema"), "type"))},
		AgentParamType: document.AgentParamType(asString(mapValue(n, "x-zia-agent-param-type"))),
	}
}

func importRequestBody(n *yaml.Node) *document.RequestBody {
	rb := &document.RequestBody{
		Required: asBool(mapValue(n, "required")),
		Schema:   document.SchemaOrRef{Type: "object"},
	}
	schema := mapValue(mapValue(mapValue(n, "content"), "application/json"), "schema")
	if ref := asString(mapValue(schema, "$ref")); ref != "" {
		rb.Schema = document.SchemaOrRef{Ref: ref}
	}
	return rb
}

func importResponse(statusCode string, n *yaml.Node) *document.Response {
	resp := &document.Response{
		StatusCode:  statusCode,
		Description: asString(mapValue(n, "description")),
	}
	schema := mapValue(mapValue(mapValue(n, "content"), "application/json"), "schema")
	if schema != nil {
		if ref := asString(mapValue(schema, "$ref")); ref != "" {
			resp.Content = &document.SchemaOrRef{Ref: ref}
		} else {
			resp.Content = &document.SchemaOrRef{Type: asString(mapValue(schema, "type"))}
		}
	}
	return resp
}

// importSecurityList maps a sequence of single-key maps to requirements.
// Multi-key entries contribute one requirement per key in source order.
func importSecurityList(n *yaml.Node) []document.SecurityRequirement {
	items := sequence(n)
	reqs := make([]document.SecurityRequirement, 0, len(items))
	for _, item := range items {
		for _, e := range mapEntries(item) {
			scopes := stringSeq(e.value)
			if scopes == nil {
				scopes = []string{}
			}
			reqs = append(reqs, document.SecurityRequirement{Scheme: e.key, Scopes: scopes})
		}
	}
	return reqs
}
