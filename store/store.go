// Package store persists document snapshots and the raw editor buffer.
//
// Persistence is best effort: corrupt or missing entries degrade to nil
// values and never fail the caller, so the editor stays usable regardless
// of what the backing store holds.
package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ziahq/specstudio/internal/pathutil"
)

// Store persists opaque byte blobs by key. A missing key is not an error:
// Get returns (nil, nil) for it.
type Store interface {
	// Get returns the value for key, or (nil, nil) when absent.
	Get(key string) ([]byte, error)

	// Put stores the value under key, replacing any prior value.
	Put(key string, value []byte) error

	// Delete removes the value under key. Deleting an absent key is a no-op.
	Delete(key string) error
}

// MemStore is an in-memory Store, safe for concurrent use.
type MemStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string][]byte)}
}

// Get implements Store.
func (m *MemStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put implements Store.
func (m *MemStore) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

// Delete implements Store.
func (m *MemStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

var _ Store = (*MemStore)(nil)

// FileStore keeps one file per key under a root directory.
type FileStore struct {
	root string
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed. The root path is cleaned and checked the same way
// as other output paths.
func NewFileStore(dir string) (*FileStore, error) {
	root, err := pathutil.SanitizeOutputPath(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, err
	}
	return &FileStore{root: root}, nil
}

// path maps a key to its backing file. Separators in keys are flattened so
// a key can never escape the root directory.
func (f *FileStore) path(key string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(f.root, name+".json")
}

// Get implements Store.
func (f *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put implements Store.
func (f *FileStore) Put(key string, value []byte) error {
	return os.WriteFile(f.path(key), value, 0o600)
}

// Delete implements Store.
func (f *FileStore) Delete(key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

var _ Store = (*FileStore)(nil)
