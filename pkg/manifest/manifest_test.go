package manifest

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/modoterra/tally/pkg/core"
)

func TestParseValidManifest(t *testing.T) {
	yaml := `
version: 1
project: names
root: /srv/names
max_line_length: 30
header: "== counts =="
journal: true
sources:
  - "${root}/a.txt"
  - b.txt
  - "exec:cat ${root}/c.txt"
  - journal:sshd.service
  - "-"
`
	m, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if m.Version != 1 {
		t.Errorf("version: got %d, want 1", m.Version)
	}
	if m.MaxLineLength != 30 || m.Header != "== counts ==" || !m.Journal {
		t.Errorf("scalars: got %+v", m)
	}
	if len(m.Sources) != 5 {
		t.Fatalf("sources count: got %d, want 5", len(m.Sources))
	}
	// Check interpolation
	if m.Sources[0] != "/srv/names/a.txt" {
		t.Errorf("file interpolation: got %q", m.Sources[0])
	}
	if m.Sources[2] != "exec:cat /srv/names/c.txt" {
		t.Errorf("exec interpolation: got %q", m.Sources[2])
	}

	ids, err := m.SourceIDs()
	if err != nil {
		t.Fatal(err)
	}
	wantKinds := []core.SourceKind{core.KindFile, core.KindFile, core.KindExec, core.KindJournal, core.KindStdin}
	for i, k := range wantKinds {
		if ids[i].Kind != k {
			t.Errorf("source %d: kind %q, want %q", i, ids[i].Kind, k)
		}
	}

	errs := Validate(m)
	if len(errs) != 0 {
		t.Errorf("unexpected validation errors: %v", errs)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("version: [1")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	in := &Manifest{Version: 1, Project: "p", Sources: []string{"a.txt", "exec:echo hi"}}
	if err := Save(in, path); err != nil {
		t.Fatal(err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if out.Project != "p" || len(out.Sources) != 2 || out.Sources[1] != "exec:echo hi" {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestValidateVersionMustBe1(t *testing.T) {
	m := &Manifest{Version: 2, Sources: []string{"a.txt"}}
	errs := Validate(m)
	assertHasError(t, errs, "version must be 1")
}

func TestValidateNegativeMaxLineLength(t *testing.T) {
	m := &Manifest{Version: 1, MaxLineLength: -1}
	errs := Validate(m)
	assertHasError(t, errs, "max_line_length")
}

func TestValidateBadSource(t *testing.T) {
	m := &Manifest{Version: 1, Sources: []string{"a.txt", "exec:"}}
	errs := Validate(m)
	assertHasError(t, errs, "source 2")
}

func TestValidateStdinOnce(t *testing.T) {
	errs := ValidateSources([]string{"-", "a.txt", "stdin:"})
	assertHasError(t, errs, "stdin is listed 2 times")
}

func TestValidateNoSourcesIsAllowed(t *testing.T) {
	// Sources may be supplied on the command line instead.
	if errs := Validate(&Manifest{Version: 1}); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func assertHasError(t *testing.T, errs []error, substr string) {
	t.Helper()
	for _, e := range errs {
		if strings.Contains(e.Error(), substr) {
			return
		}
	}
	t.Errorf("expected error containing %q, got %v", substr, errs)
}
