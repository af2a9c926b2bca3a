package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")

	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("Expected directory to exist, got %v", err)
	}

	// Idempotent for an existing directory
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Errorf("Expected no error for existing directory, got %v", err)
	}
}

func TestSaveArchive(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("zip bytes")

	path, err := SaveArchive(dir, payload)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, ArchiveFilePrefix) || !strings.HasSuffix(base, ArchiveFileExtension) {
		t.Errorf("Unexpected archive file name %s", base)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected archive to be readable, got %v", err)
	}
	if string(content) != string(payload) {
		t.Error("Archive content does not match input bytes")
	}
}

func TestSaveArchive_AvoidsCollisions(t *testing.T) {
	dir := t.TempDir()

	first, err := SaveArchive(dir, []byte("one"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := SaveArchive(dir, []byte("two"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if first == second {
		t.Errorf("Expected distinct file names, both were %s", first)
	}

	content, _ := os.ReadFile(second)
	if string(content) != "two" {
		t.Error("Second archive content does not match input bytes")
	}
}

func TestSaveArchive_CreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does", "not", "exist")

	if _, err := SaveArchive(dir, []byte("zip")); err != nil {
		t.Fatalf("Expected output directory to be created, got %v", err)
	}
}
