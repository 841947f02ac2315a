package store

import (
	"encoding/json"

	"github.com/ziahq/specstudio/document"
)

// Fixed keys of the two persisted blobs: the document snapshot flushed
// after every change, and the raw YAML buffer of the advanced-editor view.
// The two are independent on purpose; the buffer may hold text that never
// imported cleanly.
const (
	documentKey = "specstudio.document"
	bufferKey   = "specstudio.buffer"
)

// DocumentStore wraps a Store with the editor's two fixed keys.
type DocumentStore struct {
	store Store
}

// NewDocumentStore creates a DocumentStore over any Store.
func NewDocumentStore(s Store) *DocumentStore {
	return &DocumentStore{store: s}
}

// SaveDocument flushes the whole document as one JSON snapshot.
func (ds *DocumentStore) SaveDocument(doc *document.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return ds.store.Put(documentKey, data)
}

// LoadDocument returns the persisted snapshot, or nil when the entry is
// missing or corrupt. Corruption is not an error to the caller.
func (ds *DocumentStore) LoadDocument() *document.Document {
	data, err := ds.store.Get(documentKey)
	if err != nil || len(data) == 0 {
		return nil
	}
	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return &doc
}

// SaveBuffer persists the raw editor text buffer.
func (ds *DocumentStore) SaveBuffer(text string) error {
	return ds.store.Put(bufferKey, []byte(text))
}

// LoadBuffer returns the persisted buffer, or "" when missing or
// unreadable.
func (ds *DocumentStore) LoadBuffer() string {
	data, err := ds.store.Get(bufferKey)
	if err != nil {
		return ""
	}
	return string(data)
}

// Clear removes both persisted entries.
func (ds *DocumentStore) Clear() error {
	if err := ds.store.Delete(documentKey); err != nil {
		return err
	}
	return ds.store.Delete(bufferKey)
}
