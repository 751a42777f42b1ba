package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/modoterra/tally/pkg/manifest"
)

func TestGenerateDirectory(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "b.txt"), []byte("bob\n"), 0644)
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alice\n"), 0644)
	os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# notes\n"), 0644)
	os.Mkdir(filepath.Join(dir, "sub.txt"), 0755)

	m, err := GenerateDirectory(dir, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(m.Sources) != 2 || m.Sources[0] != "${root}/a.txt" || m.Sources[1] != "${root}/b.txt" {
		t.Errorf("unexpected sources %v", m.Sources)
	}

	// Saved and reloaded, ${root} expands to real paths.
	path := filepath.Join(t.TempDir(), "tally.yaml")
	if err := manifest.Save(m, path); err != nil {
		t.Fatal(err)
	}
	loaded, err := manifest.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Sources[0] != filepath.Join(m.Root, "a.txt") {
		t.Errorf("interpolation: got %q", loaded.Sources[0])
	}
	if errs := manifest.Validate(loaded); len(errs) != 0 {
		t.Errorf("validation errors: %v", errs)
	}
}

func TestGenerateDirectoryNoMatches(t *testing.T) {
	if _, err := GenerateDirectory(t.TempDir(), "*.names"); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestGenerateJournal(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "sshd.service"), []byte("[Unit]\n"), 0644)

	saved := unitDirs
	unitDirs = []string{dir}
	defer func() { unitDirs = saved }()

	m, err := GenerateJournal([]string{"sshd.service", "missing.service"})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Sources) != 1 || m.Sources[0] != "journal:sshd.service" {
		t.Errorf("unexpected sources %v", m.Sources)
	}

	if _, err := GenerateJournal([]string{"missing.service"}); err == nil {
		t.Error("expected error when no unit exists")
	}
}
