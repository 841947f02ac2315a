package document

import (
	"slices"

	"github.com/ziahq/specstudio/internal/pathutil"
)

// pathParamDescription is the system-sourced description attached to
// parameters derived from {placeholder} names in a path string.
func pathParamDescription(name string) string {
	return "Path parameter: " + name
}

// AddServer appends a server to the ordered list and returns it.
func (d *Document) AddServer(url, description string) *Server {
	s := &Server{URL: url, Description: description}
	d.Servers = append(d.Servers, s)
	return s
}

// RemoveServer removes the server at index i. Out-of-range indices are
// ignored.
func (d *Document) RemoveServer(i int) {
	if i < 0 || i >= len(d.Servers) {
		return
	}
	d.Servers = slices.Delete(d.Servers, i, i+1)
}

// AddPath appends a new Path for the given path string and returns it.
// If the path string already exists, the existing Path is returned instead.
func (d *Document) AddPath(path string) *Path {
	if existing := d.PathByString(path); existing != nil {
		return existing
	}
	p := &Path{Path: path}
	d.Paths = append(d.Paths, p)
	return p
}

// RemovePath removes the Path with the given path string.
func (d *Document) RemovePath(path string) {
	for i, p := range d.Paths {
		if p.Path == path {
			d.Paths = slices.Delete(d.Paths, i, i+1)
			return
		}
	}
}

// SetPathString updates a Path's path string and re-derives path parameters
// on every operation beneath it.
//
// Placeholders newly present in the string become required string
// parameters with a system-sourced description. Existing path parameters
// are preserved by name; parameters of other kinds are untouched. Path
// parameters whose placeholder disappeared from the string are NOT removed:
// dropping them would silently lose user edits, so stale path parameters
// are left for the user to delete explicitly.
func (d *Document) SetPathString(p *Path, path string) {
	p.Path = path
	for _, m := range p.Methods {
		syncPathParams(m.Operation, path)
	}
}

// SetOperation registers an operation for an HTTP method on a path,
// replacing any existing operation for that verb. Methods keep insertion
// order. Path parameters are derived onto the operation immediately.
func (d *Document) SetOperation(p *Path, method string, op *Operation) {
	if op == nil {
		return
	}
	syncPathParams(op, p.Path)
	for i, m := range p.Methods {
		if m.Method == method {
			p.Methods[i].Operation = op
			return
		}
	}
	p.Methods = append(p.Methods, MethodOperation{Method: method, Operation: op})
}

// RemoveOperation removes the operation registered for an HTTP method.
func (d *Document) RemoveOperation(p *Path, method string) {
	for i, m := range p.Methods {
		if m.Method == method {
			p.Methods = slices.Delete(p.Methods, i, i+1)
			return
		}
	}
}

// AddParameter appends a parameter to an operation. Path-location
// parameters are forced required. A parameter with the same name and
// location replaces the existing one.
func (d *Document) AddParameter(op *Operation, param *Parameter) {
	if param == nil {
		return
	}
	if param.In == ParamInPath {
		param.Required = true
	}
	for i, existing := range op.Parameters {
		if existing.Name == param.Name && existing.In == param.In {
			op.Parameters[i] = param
			return
		}
	}
	op.Parameters = append(op.Parameters, param)
}

// RemoveParameter removes the parameter with the given name and location.
// Path parameters are protected: they mirror the owning path string and
// can only disappear when the operation itself is removed. Returns whether
// a parameter was removed.
func (d *Document) RemoveParameter(op *Operation, name, in string) bool {
	if in == ParamInPath {
		return false
	}
	for i, p := range op.Parameters {
		if p.Name == name && p.In == in {
			op.Parameters = slices.Delete(op.Parameters, i, i+1)
			return true
		}
	}
	return false
}

// AddResponse appends a response entry. Duplicate status codes are allowed
// in the model; the serializer keys by code with the later duplicate
// winning.
func (d *Document) AddResponse(op *Operation, resp *Response) {
	if resp == nil {
		return
	}
	op.Responses = append(op.Responses, resp)
}

// RemoveResponse removes the first response with the given status code.
func (d *Document) RemoveResponse(op *Operation, statusCode string) {
	for i, r := range op.Responses {
		if r.StatusCode == statusCode {
			op.Responses = slices.Delete(op.Responses, i, i+1)
			return
		}
	}
}

// AddSchema appends a new object schema with the given name and returns
// it. An existing schema with the same name is returned unchanged.
func (d *Document) AddSchema(name string) *Schema {
	if existing := d.SchemaByName(name); existing != nil {
		return existing
	}
	s := &Schema{Name: name, Type: "object"}
	d.Schemas = append(d.Schemas, s)
	return s
}

// RemoveSchema removes the named component schema.
func (d *Document) RemoveSchema(name string) {
	for i, s := range d.Schemas {
		if s.Name == name {
			d.Schemas = slices.Delete(d.Schemas, i, i+1)
			return
		}
	}
}

// SetProperty adds or updates a property on a schema.
func (d *Document) SetProperty(s *Schema, prop *Property) {
	if prop == nil {
		return
	}
	for i, existing := range s.Properties {
		if existing.Name == prop.Name {
			s.Properties[i] = prop
			return
		}
	}
	s.Properties = append(s.Properties, prop)
}

// RemoveProperty removes a property and, to keep the required list a
// subset of the property names, drops the name from Required as well.
func (d *Document) RemoveProperty(s *Schema, name string) {
	for i, p := range s.Properties {
		if p.Name == name {
			s.Properties = slices.Delete(s.Properties, i, i+1)
			break
		}
	}
	if i := slices.Index(s.Required, name); i >= 0 {
		s.Required = slices.Delete(s.Required, i, i+1)
	}
}

// SetPropertyRequired marks or unmarks a property as required. Names that
// do not match an existing property are ignored.
func (d *Document) SetPropertyRequired(s *Schema, name string, required bool) {
	if s.Property(name) == nil {
		return
	}
	idx := slices.Index(s.Required, name)
	switch {
	case required && idx < 0:
		s.Required = append(s.Required, name)
	case !required && idx >= 0:
		s.Required = slices.Delete(s.Required, idx, idx+1)
	}
}

// AddSecurityScheme appends a security scheme and recomputes the derived
// scope cache and the global security list.
func (d *Document) AddSecurityScheme(scheme *SecurityScheme) {
	if scheme == nil {
		return
	}
	d.SecuritySchemes = append(d.SecuritySchemes, scheme)
	syncSchemeScopes(scheme)
	d.syncGlobalSecurity()
}

// RemoveSecurityScheme removes the named scheme and recomputes the global
// security list.
func (d *Document) RemoveSecurityScheme(name string) {
	for i, s := range d.SecuritySchemes {
		if s.Name == name {
			d.SecuritySchemes = slices.Delete(d.SecuritySchemes, i, i+1)
			break
		}
	}
	d.syncGlobalSecurity()
}

// SetSchemeFlow adds or replaces one oauth2 flow on a scheme and
// recomputes the derived values.
func (d *Document) SetSchemeFlow(scheme *SecurityScheme, flowType string, flow *OAuthFlow) {
	if scheme.Flows == nil {
		scheme.Flows = make(map[string]*OAuthFlow)
	}
	scheme.Flows[flowType] = flow
	syncSchemeScopes(scheme)
	d.syncGlobalSecurity()
}

// RemoveSchemeFlow removes one oauth2 flow and recomputes the derived
// values.
func (d *Document) RemoveSchemeFlow(scheme *SecurityScheme, flowType string) {
	delete(scheme.Flows, flowType)
	syncSchemeScopes(scheme)
	d.syncGlobalSecurity()
}

// SetFlowScope adds or updates one scope on one flow and recomputes the
// derived values. Missing flows are created.
func (d *Document) SetFlowScope(scheme *SecurityScheme, flowType, scope, description string) {
	if scheme.Flows == nil {
		scheme.Flows = make(map[string]*OAuthFlow)
	}
	flow := scheme.Flows[flowType]
	if flow == nil {
		flow = &OAuthFlow{}
		scheme.Flows[flowType] = flow
	}
	if flow.Scopes == nil {
		flow.Scopes = make(map[string]string)
	}
	flow.Scopes[scope] = description
	syncSchemeScopes(scheme)
	d.syncGlobalSecurity()
}

// RemoveFlowScope removes one scope from one flow and recomputes the
// derived values.
func (d *Document) RemoveFlowScope(scheme *SecurityScheme, flowType, scope string) {
	if flow := scheme.Flows[flowType]; flow != nil {
		delete(flow.Scopes, scope)
	}
	syncSchemeScopes(scheme)
	d.syncGlobalSecurity()
}

// ReplacePaths swaps in a whole new path list, as imports do. Path
// parameters are re-derived on every operation so placeholder-backed
// parameters exist even when the source text omitted them.
func (d *Document) ReplacePaths(paths []*Path) {
	d.Paths = paths
	for _, p := range paths {
		for _, m := range p.Methods {
			if m.Operation != nil {
				syncPathParams(m.Operation, p.Path)
			}
		}
	}
}

// ReplaceSchemas swaps in a whole new component schema list.
func (d *Document) ReplaceSchemas(schemas []*Schema) {
	d.Schemas = schemas
}

// ReplaceSecuritySchemes swaps in a whole new scheme list and recomputes
// the global security list. Per-scheme scope caches are taken as given:
// imports fill them from source flow data in source order.
func (d *Document) ReplaceSecuritySchemes(schemes []*SecurityScheme) {
	d.SecuritySchemes = schemes
	d.syncGlobalSecurity()
}

// syncPathParams re-derives path parameters on an operation from the
// {placeholder} names in path. The resulting parameter order is: existing
// path parameters still matched by name, then newly discovered ones, then
// all non-path parameters. Existing path parameters keep their edits;
// stale ones (placeholder removed) are deliberately retained.
func syncPathParams(op *Operation, path string) {
	names := pathutil.ExtractParams(path)

	existing := make(map[string]*Parameter)
	var pathParams, rest []*Parameter
	for _, p := range op.Parameters {
		if p.In == ParamInPath {
			existing[p.Name] = p
			pathParams = append(pathParams, p)
		} else {
			rest = append(rest, p)
		}
	}

	for _, name := range names {
		if _, ok := existing[name]; ok {
			continue
		}
		pathParams = append(pathParams, &Parameter{
			Name:           name,
			In:             ParamInPath,
			Required:       true,
			Description:    pathParamDescription(name),
			Schema:         SchemaType{Type: "string"},
			AgentParamType: AgentParamTypeSystem,
		})
	}

	// Path parameters are always required, even after imports that said
	// otherwise.
	for _, p := range pathParams {
		p.Required = true
	}

	op.Parameters = append(pathParams, rest...)
}

// syncSchemeScopes rebuilds a scheme's derived scope cache as the union of
// its flows' scopes. Flows are folded in canonical order, so a later flow
// wins when two flows define the same scope name.
//
// A scheme with no Flows map at all keeps whatever Scopes it carries: an
// import may set the cache directly without flow detail, and wiping it here
// would lose that.
func syncSchemeScopes(scheme *SecurityScheme) {
	if scheme.Flows == nil {
		return
	}
	if scheme.Type != "oauth2" || len(scheme.Flows) == 0 {
		scheme.Scopes = nil
		return
	}
	union := make(map[string]string)
	for _, flowType := range FlowTypes {
		flow := scheme.Flows[flowType]
		if flow == nil {
			continue
		}
		for name, desc := range flow.Scopes {
			union[name] = desc
		}
	}
	if len(union) == 0 {
		scheme.Scopes = nil
		return
	}
	scheme.Scopes = union
}

// syncGlobalSecurity recomputes the document's global security list as a
// pure function of its security schemes: oauth2 schemes contribute their
// scope names, every other type contributes an empty scope list.
func (d *Document) syncGlobalSecurity() {
	if len(d.SecuritySchemes) == 0 {
		d.GlobalSecurity = nil
		return
	}
	reqs := make([]SecurityRequirement, 0, len(d.SecuritySchemes))
	for _, scheme := range d.SecuritySchemes {
		scopes := []string{}
		if scheme.Type == "oauth2" && len(scheme.Scopes) > 0 {
			scopes = make([]string, 0, len(scheme.Scopes))
			for name := range scheme.Scopes {
				scopes = append(scopes, name)
			}
			slices.Sort(scopes)
		}
		reqs = append(reqs, SecurityRequirement{Scheme: scheme.Name, Scopes: scopes})
	}
	d.GlobalSecurity = reqs
}
