// Package specstudio is the document core behind the Zia SpecStudio visual
// OpenAPI 3.0 designer.
//
// The browser UI is a thin collaborator; everything that understands OpenAPI
// lives here, split across five primary packages:
//
//   - document: the typed in-memory model the editor forms mutate
//   - serializer: deterministic, order-preserving emission of the model as
//     OpenAPI-flavored YAML
//   - importer: best-effort, non-throwing partial-merge import of YAML/JSON
//     text back into the model
//   - validator: a three-stage diagnostic pipeline (syntax, schema,
//     suggestions) over raw editor text
//   - marker: mapping of diagnostics into positioned editor markers with
//     hover content
//
// Supporting packages provide snapshot persistence (store), the HTTP/WebSocket
// backend the editor talks to (service), and the specstudio CLI.
//
// # Quick Start
//
// Build a document and render it:
//
//	import (
//		"github.com/ziahq/specstudio/document"
//		"github.com/ziahq/specstudio/serializer"
//	)
//
//	doc := document.New()
//	doc.Info.Title = "Orders API"
//	doc.AddPath("/orders/{orderId}")
//	text := serializer.Serialize(doc)
//
// Validate editor text:
//
//	import "github.com/ziahq/specstudio/validator"
//
//	result := validator.Validate(text)
//	if !result.Valid {
//		for _, d := range result.Errors {
//			fmt.Println(d.String())
//		}
//	}
//
// Import pasted text into an existing document (partial merge; absent
// sections keep their prior value):
//
//	import "github.com/ziahq/specstudio/importer"
//
//	outcome := importer.Merge(doc, pasted)
//	if !outcome.FullyParsed {
//		// fell back to best-effort; outcome.ParseError has the cause
//	}
package specstudio
