package repo

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "repo.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to add entry %s: %v", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}
	return zipPath
}

func TestUnzip(t *testing.T) {
	loader := NewLoader(t.TempDir())
	zipPath := writeZip(t, map[string]string{
		"app.py":        "print('hi')\n",
		"lib/helper.py": "def helper():\n    pass\n",
	})

	root, err := loader.Unzip(zipPath, "demo")
	if err != nil {
		t.Fatalf("Unzip failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "app.py"))
	if err != nil {
		t.Fatalf("Extracted file missing: %v", err)
	}
	if string(data) != "print('hi')\n" {
		t.Errorf("Unexpected content: %q", string(data))
	}
	if _, err := os.Stat(filepath.Join(root, "lib", "helper.py")); err != nil {
		t.Errorf("Nested entry missing: %v", err)
	}
}

func TestUnzipRejectsEscapingEntries(t *testing.T) {
	loader := NewLoader(t.TempDir())
	zipPath := writeZip(t, map[string]string{
		"../evil.txt": "escaped",
	})

	if _, err := loader.Unzip(zipPath, "demo"); err == nil {
		t.Fatal("Expected an error for an entry escaping the destination")
	}
	if _, err := os.Stat(filepath.Join(loader.WorkDir(), "evil.txt")); err == nil {
		t.Error("Escaping entry must not be written")
	}
}

func TestUnzipReplacesExistingCheckout(t *testing.T) {
	loader := NewLoader(t.TempDir())

	first := writeZip(t, map[string]string{"old.py": "old\n"})
	if _, err := loader.Unzip(first, "demo"); err != nil {
		t.Fatalf("First unzip failed: %v", err)
	}

	second := writeZip(t, map[string]string{"new.py": "new\n"})
	root, err := loader.Unzip(second, "demo")
	if err != nil {
		t.Fatalf("Second unzip failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "old.py")); err == nil {
		t.Error("Stale checkout should have been cleared")
	}
	if _, err := os.Stat(filepath.Join(root, "new.py")); err != nil {
		t.Errorf("New checkout missing: %v", err)
	}
}

func TestPrepareDestDerivesName(t *testing.T) {
	loader := NewLoader(t.TempDir())

	dest, err := loader.prepareDest("https://example.com/owner/project.git", "")
	if err != nil {
		t.Fatalf("prepareDest failed: %v", err)
	}
	if filepath.Base(dest) != "project" {
		t.Errorf("Expected derived name 'project', got %q", filepath.Base(dest))
	}
}
