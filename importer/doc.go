// Package importer converts OpenAPI-shaped YAML or JSON text into the
// document model.
//
// Import is a partial merge, not a replace: only top-level sections present
// in the source text overwrite the target document, so repeated imports of
// partial text accumulate state. Import never fails; unparseable input is
// logged, reported through the returned Outcome, and merges nothing.
//
// Quick start:
//
//	doc := document.New()
//	outcome := importer.Merge(doc, yamlText)
//	if !outcome.FullyParsed {
//	    // doc is unchanged; outcome.ParseError says why
//	}
package importer
