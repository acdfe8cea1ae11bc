package covers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImport(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "dune.JPG")
	if err := os.WriteFile(src, []byte("not really a jpeg"), 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	storeDir := filepath.Join(t.TempDir(), "covers")
	store := NewStore(storeDir)

	stored, err := store.Import(src)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if filepath.Dir(stored) != storeDir {
		t.Errorf("stored path %q should live under %q", stored, storeDir)
	}
	if !strings.HasSuffix(stored, ".jpg") {
		t.Errorf("extension should be preserved lowercase, got %q", stored)
	}

	data, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("failed to read stored cover: %v", err)
	}
	if string(data) != "not really a jpeg" {
		t.Errorf("stored content differs from source")
	}
}

func TestImportNamesNeverCollide(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "cover.png")
	if err := os.WriteFile(src, []byte("png"), 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	store := NewStore(t.TempDir())

	first, err := store.Import(src)
	if err != nil {
		t.Fatalf("first Import failed: %v", err)
	}
	second, err := store.Import(src)
	if err != nil {
		t.Fatalf("second Import failed: %v", err)
	}

	if first == second {
		t.Errorf("two imports of the same source should get distinct names, both got %q", first)
	}
}

func TestImportMissingSource(t *testing.T) {
	store := NewStore(t.TempDir())

	if _, err := store.Import(filepath.Join(t.TempDir(), "nope.jpg")); err == nil {
		t.Error("expected error for missing source file")
	}
}

func TestImportLeavesNoTempFiles(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "cover.png")
	if err := os.WriteFile(src, []byte("png"), 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	storeDir := t.TempDir()
	store := NewStore(storeDir)
	if _, err := store.Import(src); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	entries, err := os.ReadDir(storeDir)
	if err != nil {
		t.Fatalf("failed to read store dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".cover-") {
			t.Errorf("temp file %q left behind", e.Name())
		}
	}
}
