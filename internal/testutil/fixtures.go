// Package testutil provides test helper utilities for reststyle tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// TempHome creates a temporary app directory with the given files and
// returns its path. Files is a map of relative path -> content.
// The directory is automatically cleaned up when the test finishes.
func TempHome(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// StorageFile returns storage.json content holding raw under key.
func StorageFile(t *testing.T, key, raw string) string {
	t.Helper()
	data, err := json.Marshal(map[string]string{key: raw})
	if err != nil {
		t.Fatalf("marshalling storage: %v", err)
	}
	return string(data)
}

// ReadStorage parses storage.json in dir. Missing file yields an empty map.
func ReadStorage(t *testing.T, dir string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "storage.json"))
	if os.IsNotExist(err) {
		return map[string]string{}
	}
	if err != nil {
		t.Fatalf("reading storage: %v", err)
	}
	items := map[string]string{}
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("parsing storage: %v", err)
	}
	return items
}
