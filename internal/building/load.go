package building

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadProject reads a project YAML file, normalizes names and IDs, and
// validates the resulting graph.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file %s: %w", path, err)
	}
	return ParseProject(data)
}

// ParseProject parses project YAML from memory. Unknown fields are
// rejected so typos in surface or layer keys surface early instead of
// silently dropping data.
func ParseProject(data []byte) (*Project, error) {
	var project Project
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&project); err != nil {
		return nil, fmt.Errorf("parsing project YAML: %w", err)
	}

	project.Normalize()
	if err := project.Validate(); err != nil {
		return nil, err
	}
	return &project, nil
}
