package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads, validates and resolves a YAML project file.
func Load(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("read project: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML project, validates it and resolves the theme.
func Parse(data []byte) (Project, error) {
	var p Project
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Project{}, &ConfigError{Errors: []FieldError{{Field: "yaml", Message: err.Error()}}}
	}

	p.ApplyDefaults()
	if err := Validate(&p); err != nil {
		return Project{}, err
	}
	return p.Resolve(), nil
}

// Write stores p as YAML.
func Write(p Project, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
