package manifest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/modoterra/tally/pkg/core"
)

// DefaultFile is looked up in the working directory when no manifest is given.
const DefaultFile = "tally.yaml"

// Manifest represents a tally.yaml configuration file.
type Manifest struct {
	Version       int      `yaml:"version"                   json:"version"`
	Project       string   `yaml:"project,omitempty"         json:"project,omitempty"`
	Root          string   `yaml:"root,omitempty"            json:"root,omitempty"`            // base for relative file sources
	MaxLineLength int      `yaml:"max_line_length,omitempty" json:"max_line_length,omitempty"` // bytes; 0 = default
	Header        string   `yaml:"header,omitempty"          json:"header,omitempty"`
	Journal       bool     `yaml:"journal,omitempty"         json:"journal,omitempty"` // mirror the sequenced log to journald
	Sources       []string `yaml:"sources"                   json:"sources"`
}

// Parse decodes a manifest and expands ${root} in its sources.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	m.interpolate()
	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Save writes m to path as YAML.
func Save(m *Manifest, path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// SourceIDs parses every configured source.
func (m *Manifest) SourceIDs() ([]core.SourceID, error) {
	return ParseSources(m.Sources)
}

// ParseSources parses a list of source identifiers, stopping at the first bad one.
func ParseSources(srcs []string) ([]core.SourceID, error) {
	ids := make([]core.SourceID, 0, len(srcs))
	for _, s := range srcs {
		id, err := core.ParseSourceID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *Manifest) interpolate() {
	if m.Root == "" {
		return
	}
	for i, s := range m.Sources {
		m.Sources[i] = strings.ReplaceAll(s, "${root}", m.Root)
	}
}
