package importer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziahq/specstudio/document"
	"github.com/ziahq/specstudio/serializer"
)

func TestMergeUnparseableInputChangesNothing(t *testing.T) {
	doc := document.New()
	doc.Info.Title = "Keep Me"
	doc.AddServer("https://api.example.com", "prod")

	outcome := Merge(doc, "info:\n  title: [unclosed")

	assert.False(t, outcome.FullyParsed)
	assert.Error(t, outcome.ParseError)
	assert.Equal(t, "Keep Me", doc.Info.Title)
	assert.Len(t, doc.Servers, 1)
}

func TestMergeNonMappingInputChangesNothing(t *testing.T) {
	doc := document.New()
	doc.Info.Title = "Keep Me"

	outcome := Merge(doc, "just a scalar")

	assert.True(t, outcome.FullyParsed)
	assert.Equal(t, "Keep Me", doc.Info.Title)
}

func TestMergeInfoDefaults(t *testing.T) {
	doc, outcome := Parse("info:\n  title: Orders API")

	assert.True(t, outcome.FullyParsed)
	assert.Equal(t, "Orders API", doc.Info.Title)
	assert.Equal(t, "", doc.Info.Description)
	assert.Equal(t, "1.0.0", doc.Info.Version, "missing version falls back")
	assert.Nil(t, doc.Info.Contact)
}

func TestMergeInfoContact(t *testing.T) {
	doc, _ := Parse("info:\n  title: T\n  contact:\n    name: Team\n    email: team@example.com")

	require.NotNil(t, doc.Info.Contact)
	assert.Equal(t, "Team", doc.Info.Contact.Name)
	assert.Equal(t, "team@example.com", doc.Info.Contact.Email)
}

// Numeric-looking scalars coerce to their text, so "version: 1.0" imports
// as the string "1.0".
func TestMergeScalarCoercion(t *testing.T) {
	doc, _ := Parse("info:\n  title: T\n  version: 1.0")
	assert.Equal(t, "1.0", doc.Info.Version)
}

func TestMergeServersOverwritesWhenArray(t *testing.T) {
	doc := document.New()
	doc.AddServer("https://old.example.com", "old")

	Merge(doc, "servers:\n  - url: https://new.example.com\n  - description: only desc")

	require.Len(t, doc.Servers, 2)
	assert.Equal(t, "https://new.example.com", doc.Servers[0].URL)
	assert.Equal(t, "", doc.Servers[0].Description)
	assert.Equal(t, "", doc.Servers[1].URL)
	assert.Equal(t, "only desc", doc.Servers[1].Description)
}

// A servers value that is present but not an array leaves the list alone,
// same as an absent one. The other sections overwrite on any present value.
func TestMergeServersUntouchedWhenNotArray(t *testing.T) {
	doc := document.New()
	doc.AddServer("https://old.example.com", "old")

	Merge(doc, "servers: nope")

	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "https://old.example.com", doc.Servers[0].URL)
}

func TestMergeAbsentSectionsUntouched(t *testing.T) {
	doc := document.New()
	doc.AddServer("https://api.example.com", "prod")
	doc.AddPath("/orders")
	doc.AddSchema("Order")

	Merge(doc, "info:\n  title: New Title")

	assert.Equal(t, "New Title", doc.Info.Title)
	assert.Len(t, doc.Servers, 1)
	assert.Len(t, doc.Paths, 1)
	assert.Len(t, doc.Schemas, 1)
}

func TestMergeSchemasFiltered(t *testing.T) {
	text := `components:
  schemas:
    Order:
      type: object
      properties:
        id:
          type: string
          description: order id
        total:
          type: number
          x-zia-agent-param-type: model
      required:
        - id
        - ghost
    NotAnObject:
      type: string
    NoProperties:
      type: object
`
	doc, _ := Parse(text)

	require.Len(t, doc.Schemas, 1)
	s := doc.Schemas[0]
	assert.Equal(t, "Order", s.Name)
	require.Len(t, s.Properties, 2)
	assert.Equal(t, "id", s.Properties[0].Name)
	assert.Equal(t, document.AgentParamTypeModel, s.Properties[1].AgentParamType)
	assert.Equal(t, []string{"id"}, s.Required, "required names without a property are dropped")
}

func TestMergeSecuritySchemesOAuth2ScopeUnion(t *testing.T) {
	text := `components:
  securitySchemes:
    bearerAuth:
      type: http
      scheme: bearer
      bearerFormat: JWT
    oauth2:
      type: oauth2
      flows:
        implicit:
          authorizationUrl: https://auth.example.com/authorize
          scopes:
            read: from implicit
        authorizationCode:
          tokenUrl: https://auth.example.com/token
          scopes:
            read: from code
            write: write access
`
	doc, _ := Parse(text)

	require.Len(t, doc.SecuritySchemes, 2)
	bearer := doc.SecuritySchemeByName("bearerAuth")
	require.NotNil(t, bearer)
	assert.Equal(t, "bearer", bearer.Scheme)
	assert.Equal(t, "JWT", bearer.BearerFormat)

	oauth := doc.SecuritySchemeByName("oauth2")
	require.NotNil(t, oauth)
	assert.Equal(t, map[string]string{"read": "from code", "write": "write access"}, oauth.Scopes)

	// Global security is recomputed from the imported schemes, then the
	// top-level security section (absent here) leaves it alone.
	require.Len(t, doc.GlobalSecurity, 2)
	assert.Equal(t, []string{}, doc.GlobalSecurity[0].Scopes)
	assert.Equal(t, []string{"read", "write"}, doc.GlobalSecurity[1].Scopes)
}

func TestMergePathsAndOperations(t *testing.T) {
	text := `paths:
  /orders/{orderId}:
    get:
      summary: get one order
      operationId: getOrder
      tags:
        - orders
        - orders
      parameters:
        - name: orderId
          in: path
          description: order identifier
          schema:
            type: string
        - name: verbose
          in: query
          schema:
            type: boolean
      responses:
        '200':
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Order'
        '404':
          description: not found
    post:
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Order'
`
	doc, _ := Parse(text)

	require.Len(t, doc.Paths, 1)
	p := doc.Paths[0]
	assert.Equal(t, "/orders/{orderId}", p.Path)
	require.Len(t, p.Methods, 2)
	assert.Equal(t, "get", p.Methods[0].Method)

	get := p.Operation("get")
	assert.Equal(t, "get one order", get.Summary)
	assert.Equal(t, "getOrder", get.OperationID)
	assert.Equal(t, []string{"orders"}, get.Tags, "tags are deduplicated")

	require.Len(t, get.Parameters, 2)
	orderID := get.Parameters[0]
	assert.Equal(t, "orderId", orderID.Name)
	assert.True(t, orderID.Required, "path parameters are forced required even when the source says otherwise")
	assert.Equal(t, "order identifier", orderID.Description)

	require.Len(t, get.Responses, 2)
	assert.Equal(t, "200", get.Responses[0].StatusCode)
	require.NotNil(t, get.Responses[0].Content)
	assert.Equal(t, "#/components/schemas/Order", get.Responses[0].Content.Ref)
	assert.Nil(t, get.Responses[1].Content)

	post := p.Operation("post")
	require.NotNil(t, post.RequestBody)
	assert.True(t, post.RequestBody.Required)
	assert.Equal(t, "#/components/schemas/Order", post.RequestBody.Schema.Ref)
	require.Len(t, post.Parameters, 1, "placeholder parameter is derived when the source omits it")
	assert.Equal(t, "orderId", post.Parameters[0].Name)
}

func TestMergeRequestBodyFallsBackToObject(t *testing.T) {
	text := `paths:
  /orders:
    post:
      requestBody:
        content:
          application/json: {}
`
	doc, _ := Parse(text)

	rb := doc.Paths[0].Operation("post").RequestBody
	require.NotNil(t, rb)
	assert.False(t, rb.Required)
	assert.Equal(t, document.SchemaOrRef{Type: "object"}, rb.Schema)
}

func TestMergeTopLevelSecurity(t *testing.T) {
	doc := document.New()
	Merge(doc, "security:\n  - bearerAuth: []\n  - oauth2: ['read', 'write']")

	require.Len(t, doc.GlobalSecurity, 2)
	assert.Equal(t, "bearerAuth", doc.GlobalSecurity[0].Scheme)
	assert.Equal(t, []string{}, doc.GlobalSecurity[0].Scopes)
	assert.Equal(t, []string{"read", "write"}, doc.GlobalSecurity[1].Scopes)
}

func TestMergeTopLevelSecurityUntouchedWhenNotArray(t *testing.T) {
	doc := document.New()
	doc.AddSecurityScheme(&document.SecurityScheme{Name: "bearerAuth", Type: "http"})
	before := doc.GlobalSecurity

	Merge(doc, "security: oops")

	assert.Equal(t, before, doc.GlobalSecurity)
}

func buildFullDocument() *document.Document {
	doc := document.New()
	doc.Info.Title = "Orders API"
	doc.Info.Description = "manages: orders"
	doc.Info.Version = "2.0.0"
	doc.AddServer("https://api.example.com/v1", "production")

	p := doc.AddPath("/orders/{orderId}")
	op := &document.Operation{
		Summary:     "get one order",
		OperationID: "getOrder",
		Tags:        []string{"orders"},
	}
	doc.SetOperation(p, "get", op)
	doc.AddParameter(op, &document.Parameter{
		Name: "verbose", In: document.ParamInQuery, Schema: document.SchemaType{Type: "boolean"},
	})
	doc.AddResponse(op, &document.Response{
		StatusCode:  "200",
		Description: "OK",
		Content:     &document.SchemaOrRef{Ref: "#/components/schemas/Order"},
	})
	post := &document.Operation{
		RequestBody: &document.RequestBody{Required: true, Schema: document.SchemaOrRef{Ref: "#/components/schemas/Order"}},
	}
	doc.SetOperation(p, "post", post)

	s := doc.AddSchema("Order")
	doc.SetProperty(s, &document.Property{Name: "id", Type: "string", Description: "order id"})
	doc.SetProperty(s, &document.Property{Name: "total", Type: "number"})
	doc.SetPropertyRequired(s, "id", true)

	doc.AddSecurityScheme(&document.SecurityScheme{Name: "bearerAuth", Type: "http", Scheme: "bearer"})
	oauth := &document.SecurityScheme{Name: "oauth2", Type: "oauth2"}
	doc.AddSecurityScheme(oauth)
	doc.SetFlowScope(oauth, "authorizationCode", "read", "read access")
	return doc
}

// Serializing a document and importing the text into a fresh document
// recovers every section.
func TestRoundTrip(t *testing.T) {
	doc := buildFullDocument()
	text := serializer.Serialize(doc)

	got, outcome := Parse(text)
	require.True(t, outcome.FullyParsed)

	assert.Equal(t, doc.Info, got.Info)
	assert.Equal(t, doc.Servers, got.Servers)
	assert.Equal(t, doc.Schemas, got.Schemas)
	assert.Equal(t, doc.GlobalSecurity, got.GlobalSecurity)

	require.Len(t, got.Paths, 1)
	assert.Equal(t, doc.Paths[0].Path, got.Paths[0].Path)
	gotGet := got.Paths[0].Operation("get")
	wantGet := doc.Paths[0].Operation("get")
	assert.Equal(t, wantGet.Summary, gotGet.Summary)
	assert.Equal(t, wantGet.Tags, gotGet.Tags)
	assert.Equal(t, wantGet.Parameters, gotGet.Parameters)
	assert.Equal(t, wantGet.Responses, gotGet.Responses)
	assert.Equal(t, doc.Paths[0].Operation("post").RequestBody, got.Paths[0].Operation("post").RequestBody)

	gotOAuth := got.SecuritySchemeByName("oauth2")
	require.NotNil(t, gotOAuth)
	assert.Equal(t, doc.SecuritySchemeByName("oauth2").Scopes, gotOAuth.Scopes)
}

// A full serialization merged into any starting state is idempotent: every
// section is present in the text, so a second merge changes nothing.
func TestFullMergeIsIdempotent(t *testing.T) {
	text := serializer.Serialize(buildFullDocument())

	doc := document.New()
	doc.AddServer("https://stale.example.com", "stale")
	Merge(doc, text)
	once := serializer.Serialize(doc)
	Merge(doc, text)
	twice := serializer.Serialize(doc)

	assert.Equal(t, once, twice)
	assert.NotContains(t, once, "stale.example.com")
}

// Partial text accumulates instead: prior sections survive each merge, so
// merging partial text does not converge on the text's own content.
func TestPartialMergeAccumulates(t *testing.T) {
	doc := document.New()
	Merge(doc, "info:\n  title: First\npaths:\n  /orders: {}\n")
	Merge(doc, "info:\n  title: Second\n")

	assert.Equal(t, "Second", doc.Info.Title)
	require.Len(t, doc.Paths, 1, "paths from the first merge survive the second")

	fresh, _ := Parse("info:\n  title: Second\n")
	assert.NotEqual(t, serializer.Serialize(fresh), serializer.Serialize(doc))
}

func TestParseJSONInput(t *testing.T) {
	doc, outcome := Parse(`{"info": {"title": "From JSON", "version": "3.0.0"}}`)

	assert.True(t, outcome.FullyParsed)
	assert.Equal(t, "From JSON", doc.Info.Title)
	assert.Equal(t, "3.0.0", doc.Info.Version)
}

func TestMergeRequiredBooleanSpellings(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    bool
	}{
		{"lowercase true", "true", true},
		{"titlecase true", "True", true},
		{"uppercase true", "TRUE", true},
		{"lowercase false", "false", false},
		{"titlecase false", "False", false},
		{"quoted true stays a string", `"true"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := fmt.Sprintf(`paths:
  /orders:
    get:
      parameters:
        - name: verbose
          in: query
          required: %s
    post:
      requestBody:
        required: %s
        content:
          application/json:
            schema:
              type: object
`, tt.literal, tt.literal)
			doc, outcome := Parse(text)
			require.True(t, outcome.FullyParsed)

			get := doc.Paths[0].Operation("get")
			require.Len(t, get.Parameters, 1)
			assert.Equal(t, tt.want, get.Parameters[0].Required)

			post := doc.Paths[0].Operation("post")
			require.NotNil(t, post.RequestBody)
			assert.Equal(t, tt.want, post.RequestBody.Required)
		})
	}
}
