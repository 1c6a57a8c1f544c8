package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/reckit/internal/loader"
)

// LoadFile reads, parses and validates a pipeline YAML file. Relative
// source paths are resolved against the file's directory.
func LoadFile(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline file: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes a pipeline definition and validates it. Unknown fields
// are rejected so typos such as "step:" fail loudly. basePath, when
// non-empty, prefixes relative source paths.
func Parse(data []byte, basePath string) (*Pipeline, error) {
	var p Pipeline
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for name, ref := range p.Sources {
		r := loader.ParseRef(ref)
		if r.Path != "" && !filepath.IsAbs(r.Path) && basePath != "" {
			r.Path = filepath.Join(basePath, r.Path)
			p.Sources[name] = r.String()
		}
	}

	if err := Validate(&p); err != nil {
		return nil, fmt.Errorf("invalid pipeline: %w", err)
	}
	return &p, nil
}
