package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mindvr/reststyle/internal/testutil"
)

func TestStoreSetGetRemove(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "nested"))

	if _, ok, err := s.GetItem("k"); err != nil || ok {
		t.Fatalf("GetItem on empty store = ok %v, err %v", ok, err)
	}
	if err := s.SetItem("k", "v1"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if err := s.SetItem("other", "x"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	v, ok, err := s.GetItem("k")
	if err != nil || !ok || v != "v1" {
		t.Fatalf("GetItem = %q, %v, %v; want v1", v, ok, err)
	}

	if err := s.RemoveItem("k"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if _, ok, _ := s.GetItem("k"); ok {
		t.Error("key still present after RemoveItem")
	}
	if v, _, _ := s.GetItem("other"); v != "x" {
		t.Errorf("unrelated key = %q, want x", v)
	}
	if err := s.RemoveItem("missing"); err != nil {
		t.Errorf("RemoveItem(missing) = %v, want nil", err)
	}
}

func TestStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	for i := 0; i < 3; i++ {
		if err := s.SetItem("k", "v"); err != nil {
			t.Fatalf("SetItem: %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "storage.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir entries = %v, want only storage.json", names)
	}
}

func TestStoreCorruptFile(t *testing.T) {
	dir := testutil.TempHome(t, map[string]string{"storage.json": "{not json"})
	s := NewStore(dir)

	if _, _, err := s.GetItem("k"); err == nil {
		t.Error("GetItem on corrupt file should error")
	}
	// Writes recover by replacing the file.
	if err := s.SetItem("k", "v"); err != nil {
		t.Fatalf("SetItem over corrupt file: %v", err)
	}
	if v, ok, err := s.GetItem("k"); err != nil || !ok || v != "v" {
		t.Errorf("GetItem = %q, %v, %v", v, ok, err)
	}
}
