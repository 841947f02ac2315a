// Package serializer renders a document model as OpenAPI-flavored YAML.
//
// Serialize is total and deterministic: the same document always produces
// byte-identical output, sections appear in the fixed OpenAPI order, and
// empty sections are omitted rather than emitted as empty collections.
// Emission is hand-rolled line assembly instead of a generic YAML marshal so
// the editor preview matches the formatting conventions OpenAPI documents
// conventionally use (inline security scope lists, quoted status-code keys,
// block sequences for parameters). The output always parses as valid YAML;
// the importer round-trips it.
package serializer
