// Package document defines the typed in-memory model of an OpenAPI 3.0
// document as edited by the SpecStudio forms.
//
// The model is a pure data container plus a small set of derived-value
// recomputation rules; it performs no I/O. UI components hold references into
// a single Document aggregate and apply mutations through the methods on
// Document, which keep three derived values in sync:
//
//   - path parameters mirror the {placeholder} names in each path string
//   - a security scheme's Scopes cache is the union of its flows' scopes
//   - GlobalSecurity is recomputed from the scheme list on every scheme
//     mutation
//
// Ordering is significant throughout: servers, paths, methods within a path,
// schema properties, and security requirements are all slices whose order is
// preserved by the serializer.
package document
