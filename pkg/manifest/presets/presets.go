// Package presets generates tally.yaml manifests for common layouts.
package presets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/modoterra/tally/pkg/manifest"
)

// DefaultPattern selects name lists inside a directory.
const DefaultPattern = "*.txt"

// GenerateDirectory creates a manifest reading every file in root that
// matches pattern, in lexical order. Sources are written relative to ${root}.
func GenerateDirectory(root, pattern string) (*manifest.Manifest, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	if pattern == "" {
		pattern = DefaultPattern
	}

	matches, err := filepath.Glob(filepath.Join(absRoot, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)

	m := &manifest.Manifest{
		Version: 1,
		Project: filepath.Base(absRoot),
		Root:    absRoot,
	}
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		m.Sources = append(m.Sources, "${root}/"+filepath.Base(path))
	}
	if len(m.Sources) == 0 {
		return nil, fmt.Errorf("no files matching %q in %s", pattern, absRoot)
	}
	return m, nil
}

// GenerateJournal creates a manifest reading the journal of every unit that is
// installed on this machine. Units that are not found are skipped.
func GenerateJournal(units []string) (*manifest.Manifest, error) {
	m := &manifest.Manifest{Version: 1, Project: "journal"}
	for _, unit := range units {
		if unitExists(unit) {
			m.Sources = append(m.Sources, "journal:"+unit)
		}
	}
	if len(m.Sources) == 0 {
		return nil, fmt.Errorf("none of the units %v is installed", units)
	}
	return m, nil
}

var unitDirs = []string{
	"/etc/systemd/system",
	"/lib/systemd/system",
	"/usr/lib/systemd/system",
}

// unitExists checks if a systemd unit file exists in common locations.
func unitExists(unit string) bool {
	for _, dir := range unitDirs {
		if _, err := os.Stat(filepath.Join(dir, unit)); err == nil {
			return true
		}
	}
	return false
}
