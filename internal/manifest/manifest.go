// Package manifest loads the repository list from a YAML file. This is the
// moral equivalent of the review server's repository resource: an ordered
// list of records the picker treats as externally owned.
package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"repopick/internal/domain"
)

// Manifest is the top-level YAML document
type Manifest struct {
	Repositories []Entry `yaml:"repositories"`
}

// Entry is one repository record in the manifest
type Entry struct {
	ID         int    `yaml:"id"`
	Name       string `yaml:"name"`
	Path       string `yaml:"path"`
	MirrorPath string `yaml:"mirror_path"`
	Tool       string `yaml:"tool"`
	Visible    *bool  `yaml:"visible"` // defaults to true when omitted
}

// Load reads and parses a manifest file
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Parse parses manifest YAML
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	for i, entry := range m.Repositories {
		if entry.Name == "" {
			return nil, fmt.Errorf("manifest entry %d has no name", i)
		}
	}
	return &m, nil
}

// Records converts manifest entries to domain records, skipping entries an
// admin has hidden
func (m *Manifest) Records() []domain.Repository {
	repos := make([]domain.Repository, 0, len(m.Repositories))
	for _, e := range m.Repositories {
		visible := e.Visible == nil || *e.Visible
		if !visible {
			continue
		}
		tool := e.Tool
		if tool == "" {
			tool = "Git"
		}
		repos = append(repos, domain.Repository{
			ID:         e.ID,
			Name:       e.Name,
			Path:       e.Path,
			MirrorPath: e.MirrorPath,
			Tool:       tool,
			Visible:    true,
		})
	}
	return repos
}
