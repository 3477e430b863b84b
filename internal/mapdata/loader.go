package mapdata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and unmarshals a YAML file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("read embedded map file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse map file %s: %w", filename, err)
	}
	return result, nil
}

// LoadFile reads and unmarshals a YAML file from disk.
func LoadFile[T any](path string) (T, error) {
	var result T

	content, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("read map file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse map file %s: %w", path, err)
	}
	return result, nil
}
