package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStore_SaveAndOpen(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	stored, err := store.Save("report.pdf", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasSuffix(stored, ".pdf") {
		t.Errorf("stored name %q should keep the extension", stored)
	}
	if stored == "report.pdf" {
		t.Error("stored name should be randomized")
	}

	file, err := store.Open(stored)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer file.Close()

	content := make([]byte, 5)
	if _, err := file.Read(content); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(content) != "hello" {
		t.Errorf("content = %q, want hello", content)
	}
}

func TestFileStore_SaveStripsPath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	stored, err := store.Save("../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if strings.Contains(stored, "..") || strings.Contains(stored, string(os.PathSeparator)) {
		t.Errorf("stored name %q should not contain path components", stored)
	}
	if _, err := os.Stat(filepath.Join(dir, stored)); err != nil {
		t.Errorf("file should be inside the store dir: %v", err)
	}
}

func TestFileStore_WeirdExtensionDropped(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	stored, err := store.Save("evil.p/d%f", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if ext := filepath.Ext(stored); ext != "" && strings.ContainsAny(ext, "/%") {
		t.Errorf("unsafe extension kept: %q", stored)
	}
}

func TestFileStore_Delete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	stored, err := store.Save("note.txt", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Delete(stored); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Open(stored); err == nil {
		t.Error("file should be gone")
	}

	// deleting again is not an error
	if err := store.Delete(stored); err != nil {
		t.Errorf("second Delete failed: %v", err)
	}
}
