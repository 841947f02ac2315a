package serializer

import (
	"slices"
	"strings"

	"github.com/ziahq/specstudio/document"
)

// indentStep is the indentation unit: two spaces per level.
const indentStep = "  "

// Serialize renders a document as OpenAPI 3.0 YAML text. It never fails:
// nil documents and nil subobjects degrade to the smallest valid output.
//
// Top-level keys appear in fixed order (openapi, info, servers, paths,
// components, security); sections with no content are omitted entirely.
// Paths are emitted in model order, methods in insertion order, and every
// request body schema carries the fixed x-zia-agent-param-type: dynamic
// marker.
func Serialize(doc *document.Document) string {
	w := &writer{}
	w.kv(0, "openapi", "3.0.0")

	if doc == nil {
		return w.String()
	}

	writeInfo(w, doc.Info)
	writeServers(w, doc.Servers)
	writePaths(w, doc.Paths)
	writeComponents(w, doc)
	writeGlobalSecurity(w, doc.GlobalSecurity)

	return w.String()
}

// writer accumulates output lines. Lines are built fully formed; there is
// no post-processing pass.
type writer struct {
	b strings.Builder
}

func (w *writer) line(indent int, s string) {
	for range indent {
		w.b.WriteString(indentStep)
	}
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

// kv writes "key: value" with the value run through scalar quoting.
func (w *writer) kv(indent int, key, value string) {
	w.line(indent, mapKey(key)+": "+scalar(value))
}

// kvRaw writes "key: value" with the value emitted verbatim (booleans,
// already-quoted strings, flow collections).
func (w *writer) kvRaw(indent int, key, value string) {
	w.line(indent, mapKey(key)+": "+value)
}

// key writes "key:" opening a nested block.
func (w *writer) key(indent int, key string) {
	w.line(indent, mapKey(key)+":")
}

// seqItem writes an array-of-objects element: the first of lines goes
// inline after "- ", subsequent lines are indented to align with it.
func (w *writer) seqItem(indent int, lines []string) {
	if len(lines) == 0 {
		return
	}
	w.line(indent, "- "+lines[0])
	for _, l := range lines[1:] {
		w.line(indent, "  "+l)
	}
}

func (w *writer) String() string {
	return w.b.String()
}

// block collects lines for one object of an array-of-objects so the caller
// can emit them as a seqItem.
type block struct {
	lines []string
}

func (b *block) kv(key, value string) {
	b.lines = append(b.lines, mapKey(key)+": "+scalar(value))
}

func (b *block) kvRaw(key, value string) {
	b.lines = append(b.lines, mapKey(key)+": "+value)
}

func (b *block) key(key string) {
	b.lines = append(b.lines, mapKey(key)+":")
}

// nested appends a line one level deeper inside the current block.
func (b *block) nested(depth int, line string) {
	b.lines = append(b.lines, strings.Repeat(indentStep, depth)+line)
}

func writeInfo(w *writer, info *document.Info) {
	w.key(0, "info")
	if info == nil {
		info = &document.Info{Version: "1.0.0"}
	}
	w.kv(1, "title", info.Title)
	if info.Description != "" {
		w.kv(1, "description", info.Description)
	}
	version := info.Version
	if version == "" {
		version = "1.0.0"
	}
	w.kv(1, "version", version)
	if c := info.Contact; c != nil {
		w.key(1, "contact")
		if c.Name != "" {
			w.kv(2, "name", c.Name)
		}
		if c.Email != "" {
			w.kv(2, "email", c.Email)
		}
		if c.URL != "" {
			w.kv(2, "url", c.URL)
		}
	}
}

func writeServers(w *writer, servers []*document.Server) {
	if len(servers) == 0 {
		return
	}
	w.key(0, "servers")
	for _, s := range servers {
		b := &block{}
		b.kv("url", s.URL)
		b.kv("description", s.Description)
		w.seqItem(1, b.lines)
	}
}

func writePaths(w *writer, paths []*document.Path) {
	if len(paths) == 0 {
		return
	}
	w.key(0, "paths")
	for _, p := range paths {
		if len(p.Methods) == 0 {
			w.kvRaw(1, p.Path, "{}")
			continue
		}
		w.key(1, p.Path)
		for _, m := range p.Methods {
			writeOperation(w, m.Method, m.Operation)
		}
	}
}

func writeOperation(w *writer, method string, op *document.Operation) {
	w.key(2, method)
	if op == nil {
		return
	}
	if op.Summary != "" {
		w.kv(3, "summary", op.Summary)
	}
	if op.Description != "" {
		w.kv(3, "description", op.Description)
	}
	if op.OperationID != "" {
		w.kv(3, "operationId", op.OperationID)
	}
	if len(op.Tags) > 0 {
		w.key(3, "tags")
		for _, tag := range op.Tags {
			w.line(4, "- "+scalar(tag))
		}
	}
	writeSecurityList(w, 3, op.Security)
	writeParameters(w, op.Parameters)
	writeRequestBody(w, op.RequestBody)
	writeResponses(w, op.Responses)
}

// writeSecurityList emits security requirements as a flow sequence of
// single-key maps: "- name: ['a', 'b']" or "- name: []".
func writeSecurityList(w *writer, indent int, reqs []document.SecurityRequirement) {
	if len(reqs) == 0 {
		return
	}
	w.key(indent, "security")
	for _, req := range reqs {
		w.line(indent+1, "- "+mapKey(req.Scheme)+": "+scopeFlowList(req.Scopes))
	}
}

func scopeFlowList(scopes []string) string {
	if len(scopes) == 0 {
		return "[]"
	}
	quoted := make([]string, len(scopes))
	for i, s := range scopes {
		quoted[i] = singleQuoted(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func writeParameters(w *writer, params []*document.Parameter) {
	if len(params) == 0 {
		return
	}
	w.key(3, "parameters")
	for _, p := range params {
		b := &block{}
		b.kv("name", p.Name)
		b.kv("in", p.In)
		b.kvRaw("required", boolLiteral(p.Required))
		if p.Description != "" {
			b.kv("description", p.Description)
		}
		if p.AgentParamType != "" {
			b.kv("x-zia-agent-param-type", string(p.AgentParamType))
		}
		b.key("schema")
		schemaType := p.Schema.Type
		if schemaType == "" {
			schemaType = "string"
		}
		b.nested(1, "type: "+scalar(schemaType))
		w.seqItem(4, b.lines)
	}
}

// writeRequestBody forces the content schema to either a $ref or a literal
// object type and always appends the fixed dynamic marker on the schema
// block. Downstream tooling keys off that marker; change it deliberately
// or not at all.
func writeRequestBody(w *writer, rb *document.RequestBody) {
	if rb == nil {
		return
	}
	w.key(3, "requestBody")
	w.kvRaw(4, "required", boolLiteral(rb.Required))
	w.key(4, "content")
	w.key(5, "application/json")
	w.key(6, "schema")
	if rb.Schema.IsRef() {
		w.kv(7, "$ref", rb.Schema.Ref)
	} else {
		w.kv(7, "type", "object")
	}
	w.kv(7, "x-zia-agent-param-type", "dynamic")
}

// writeResponses keys the response list by quoted status code. Duplicate
// codes collapse with the later entry winning, matching the mapping
// semantics of the OpenAPI responses object.
func writeResponses(w *writer, responses []*document.Response) {
	if len(responses) == 0 {
		return
	}
	byCode := make(map[string]*document.Response, len(responses))
	order := make([]string, 0, len(responses))
	for _, r := range responses {
		if _, seen := byCode[r.StatusCode]; !seen {
			order = append(order, r.StatusCode)
		}
		byCode[r.StatusCode] = r
	}

	w.key(3, "responses")
	for _, code := range order {
		r := byCode[code]
		w.line(4, "'"+code+"':")
		w.kv(5, "description", r.Description)
		if r.Content != nil {
			w.key(5, "content")
			w.key(6, "application/json")
			w.key(7, "schema")
			if r.Content.IsRef() {
				w.kv(8, "$ref", r.Content.Ref)
			} else {
				schemaType := r.Content.Type
				if schemaType == "" {
					schemaType = "object"
				}
				w.kv(8, "type", schemaType)
			}
		}
	}
}

func writeComponents(w *writer, doc *document.Document) {
	if len(doc.Schemas) == 0 && len(doc.SecuritySchemes) == 0 {
		return
	}
	w.key(0, "components")
	writeSchemas(w, doc.Schemas)
	writeSecuritySchemes(w, doc.SecuritySchemes)
}

func writeSchemas(w *writer, schemas []*document.Schema) {
	if len(schemas) == 0 {
		return
	}
	w.key(1, "schemas")
	for _, s := range schemas {
		w.key(2, s.Name)
		schemaType := s.Type
		if schemaType == "" {
			schemaType = "object"
		}
		w.kv(3, "type", schemaType)
		if len(s.Properties) > 0 {
			w.key(3, "properties")
			for _, p := range s.Properties {
				w.key(4, p.Name)
				w.kv(5, "type", p.Type)
				if p.Description != "" {
					w.kv(5, "description", p.Description)
				}
				if p.AgentParamType != "" {
					w.kv(5, "x-zia-agent-param-type", string(p.AgentParamType))
				}
			}
		}
		if len(s.Required) > 0 {
			w.key(3, "required")
			for _, name := range s.Required {
				w.line(4, "- "+scalar(name))
			}
		}
	}
}

func writeSecuritySchemes(w *writer, schemes []*document.SecurityScheme) {
	if len(schemes) == 0 {
		return
	}
	w.key(1, "securitySchemes")
	for _, s := range schemes {
		w.key(2, s.Name)
		w.kv(3, "type", s.Type)
		if s.Scheme != "" {
			w.kv(3, "scheme", s.Scheme)
		}
		if s.BearerFormat != "" {
			w.kv(3, "bearerFormat", s.BearerFormat)
		}
		if s.In != "" {
			w.kv(3, "in", s.In)
		}
		writeFlows(w, s.Flows)
	}
}

// writeFlows emits oauth2 flows in the canonical flow-type order and each
// flow's scopes sorted by name, keeping output deterministic even though
// both live in maps.
func writeFlows(w *writer, flows map[string]*document.OAuthFlow) {
	if len(flows) == 0 {
		return
	}
	w.key(3, "flows")
	for _, flowType := range document.FlowTypes {
		flow := flows[flowType]
		if flow == nil {
			continue
		}
		w.key(4, flowType)
		if flow.AuthorizationURL != "" {
			w.kv(5, "authorizationUrl", flow.AuthorizationURL)
		}
		if flow.TokenURL != "" {
			w.kv(5, "tokenUrl", flow.TokenURL)
		}
		if len(flow.Scopes) > 0 {
			w.key(5, "scopes")
			names := make([]string, 0, len(flow.Scopes))
			for name := range flow.Scopes {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				w.kv(6, name, flow.Scopes[name])
			}
		}
	}
}

func writeGlobalSecurity(w *writer, reqs []document.SecurityRequirement) {
	writeSecurityList(w, 0, reqs)
}
