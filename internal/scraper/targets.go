package scraper

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type targetFile struct {
	Targets []Target `yaml:"targets"`
}

// LoadTargets reads a YAML document with a top-level "targets" list.
func LoadTargets(path string) ([]Target, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTargets(b)
}

func ParseTargets(b []byte) ([]Target, error) {
	var f targetFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse targets: %w", err)
	}
	if len(f.Targets) == 0 {
		return nil, fmt.Errorf("parse targets: no targets defined")
	}
	return f.Targets, nil
}
