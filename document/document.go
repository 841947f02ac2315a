package document

// Parameter locations defined by OAS 3.0.
const (
	ParamInQuery  = "query"
	ParamInHeader = "header"
	ParamInPath   = "path"
	ParamInCookie = "cookie"
)

// AgentParamType is the value space of the x-zia-agent-param-type vendor
// extension carried on parameters and schema properties. It is passed through
// import and serialization without interpretation.
type AgentParamType string

const (
	// AgentParamTypeSystem marks values sourced by the platform itself.
	AgentParamTypeSystem AgentParamType = "system"
	// AgentParamTypeModel marks values filled in by the model.
	AgentParamTypeModel AgentParamType = "model"
	// AgentParamTypeDynamic marks values resolved at call time.
	AgentParamTypeDynamic AgentParamType = "dynamic"
)

// Contact holds the optional info.contact block.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Info is the document's info section. Title is required for a valid
// document; Version defaults to "1.0.0".
type Info struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Contact     *Contact `json:"contact,omitempty"`
}

// Server is one entry of the ordered servers list. Order is significant;
// the first server is the default.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// SchemaType is an inline schema restricted to a bare type, as used by
// parameter schemas.
type SchemaType struct {
	Type string `json:"type"`
}

// SchemaOrRef is either a $ref to a named component schema or an inline
// type. Ref wins when both are set.
type SchemaOrRef struct {
	Ref  string `json:"$ref,omitempty"`
	Type string `json:"type,omitempty"`
}

// IsRef reports whether this value references a component schema.
func (s SchemaOrRef) IsRef() bool { return s.Ref != "" }

// Parameter is one operation parameter. Name is unique within an
// operation for a given location. Path parameters are derived from the
// owning path string and are always required.
type Parameter struct {
	Name           string         `json:"name"`
	In             string         `json:"in"`
	Required       bool           `json:"required"`
	Description    string         `json:"description"`
	Schema         SchemaType     `json:"schema"`
	AgentParamType AgentParamType `json:"x-zia-agent-param-type,omitempty"`
}

// RequestBody describes an operation's request payload. The content schema
// is either a $ref or an inline object type.
type RequestBody struct {
	Required bool        `json:"required"`
	Schema   SchemaOrRef `json:"schema"`
}

// Response is one status-code entry of an operation. Responses live in a
// list in memory; duplicate status codes are possible by construction and
// the serializer lets the later duplicate win, matching the mapping
// semantics of the OpenAPI responses object.
type Response struct {
	StatusCode  string       `json:"statusCode"`
	Description string       `json:"description"`
	Content     *SchemaOrRef `json:"content,omitempty"`
}

// SecurityRequirement is one entry of a security list: a scheme name and
// the scopes requested from it. On the wire this renders as the single-key
// map OpenAPI expects.
type SecurityRequirement struct {
	Scheme string   `json:"scheme"`
	Scopes []string `json:"scopes"`
}

// Operation is one HTTP-method handler under one Path.
type Operation struct {
	Summary     string                `json:"summary"`
	Description string                `json:"description"`
	OperationID string                `json:"operationId"`
	Tags        []string              `json:"tags"`
	Security    []SecurityRequirement `json:"security"`
	Parameters  []*Parameter          `json:"parameters"`
	RequestBody *RequestBody          `json:"requestBody,omitempty"`
	Responses   []*Response           `json:"responses"`
}

// MethodOperation binds an HTTP verb to its Operation. Methods within a
// Path keep insertion order, which the serializer preserves.
type MethodOperation struct {
	Method    string     `json:"method"`
	Operation *Operation `json:"operation"`
}

// Path is one paths entry. The path string may embed {param} placeholders;
// mutations to it re-derive path parameters on every operation beneath it.
type Path struct {
	Path    string            `json:"path"`
	Methods []MethodOperation `json:"methods"`
}

// Operation returns the operation registered for an HTTP method, or nil.
func (p *Path) Operation(method string) *Operation {
	for _, m := range p.Methods {
		if m.Method == method {
			return m.Operation
		}
	}
	return nil
}

// Property is one named property of a component schema.
type Property struct {
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	Description    string         `json:"description"`
	AgentParamType AgentParamType `json:"x-zia-agent-param-type,omitempty"`
}

// Schema is a named component schema. Type is always "object" in this
// system's scope; Required only ever names existing properties.
type Schema struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Properties []*Property `json:"properties"`
	Required   []string    `json:"required"`
}

// Property returns the named property, or nil.
func (s *Schema) Property(name string) *Property {
	for _, p := range s.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// OAuthFlow is one flow of an oauth2 security scheme.
type OAuthFlow struct {
	AuthorizationURL string            `json:"authorizationUrl,omitempty"`
	TokenURL         string            `json:"tokenUrl,omitempty"`
	Scopes           map[string]string `json:"scopes,omitempty"`
}

// FlowTypes is the canonical emission order for oauth2 flows. Flows are
// stored in a map; this fixed order keeps serialization deterministic.
var FlowTypes = []string{"implicit", "password", "clientCredentials", "authorizationCode"}

// SecurityScheme is a named components.securitySchemes entry.
// Scopes is a derived cache: the union of all flows' scopes, recomputed
// whenever a flow changes (later flows win on key collision).
type SecurityScheme struct {
	Name         string                `json:"name"`
	Type         string                `json:"type"`
	Scheme       string                `json:"scheme,omitempty"`
	BearerFormat string                `json:"bearerFormat,omitempty"`
	In           string                `json:"in,omitempty"`
	Flows        map[string]*OAuthFlow `json:"flows,omitempty"`
	Scopes       map[string]string     `json:"scopes,omitempty"`
}

// Document is the single aggregate the editor mutates. The JSON field names
// match the snapshot layout flushed to durable storage after every change.
type Document struct {
	Info            *Info                 `json:"apiInfo"`
	Servers         []*Server             `json:"servers"`
	Paths           []*Path               `json:"paths"`
	Schemas         []*Schema             `json:"schemas"`
	SecuritySchemes []*SecurityScheme     `json:"securitySchemes"`
	GlobalSecurity  []SecurityRequirement `json:"globalSecurity"`
}

// New creates an empty Document with defaulted info.
func New() *Document {
	return &Document{
		Info: &Info{Version: "1.0.0"},
	}
}

// PathByString returns the Path whose path string matches, or nil.
func (d *Document) PathByString(path string) *Path {
	for _, p := range d.Paths {
		if p.Path == path {
			return p
		}
	}
	return nil
}

// SchemaByName returns the named component schema, or nil.
func (d *Document) SchemaByName(name string) *Schema {
	for _, s := range d.Schemas {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// SecuritySchemeByName returns the named security scheme, or nil.
func (d *Document) SecuritySchemeByName(name string) *SecurityScheme {
	for _, s := range d.SecuritySchemes {
		if s.Name == name {
			return s
		}
	}
	return nil
}
