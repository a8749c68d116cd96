// Package session persists quiz progress in a local key-value store.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// storeFile is the key-value file inside the app directory.
const storeFile = "storage.json"

// Store is a string key-value store with local-storage semantics: values
// are opaque strings and every write replaces the whole file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a Store backed by storage.json in dir.
// The directory is created lazily on first write.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, storeFile)}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) readAll() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store: %w", err)
	}
	items := map[string]string{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing store: %w", err)
	}
	return items, nil
}

func (s *Store) writeAll(items map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".storage-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing store: %w", err)
	}
	return nil
}

// GetItem returns the value stored under key. ok is false when absent.
func (s *Store) GetItem(key string) (value string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readAll()
	if err != nil {
		return "", false, err
	}
	value, ok = items[key]
	return value, ok, nil
}

// SetItem stores value under key.
func (s *Store) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readAll()
	if err != nil {
		// A corrupt file is replaced rather than blocking every write.
		items = map[string]string{}
	}
	items[key] = value
	return s.writeAll(items)
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (s *Store) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readAll()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return s.writeAll(items)
}
