// Package service exposes the editor core over HTTP.
//
// The service owns one document and one raw text buffer, both flushed to
// the snapshot store after every change. REST endpoints cover validation,
// rendering, import, and snapshot access; a WebSocket endpoint runs
// debounced live validation for editor integrations; Prometheus metrics
// are served on /metrics.
package service
