package device

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load decodes a capability document from YAML. JSON parses too, since YAML
// is a superset, but profile files conventionally use .yaml.
func Load(data []byte) (*Capabilities, error) {
	var caps Capabilities
	if err := yaml.Unmarshal(data, &caps); err != nil {
		return nil, fmt.Errorf("failed to parse capability document: %w", err)
	}
	if err := caps.Check(); err != nil {
		return nil, fmt.Errorf("invalid capability document: %w", err)
	}
	return &caps, nil
}

// LoadFile reads a capability document from a .yaml, .yml or .json file.
// The profile name defaults to the file basename when the document does not
// carry one.
func LoadFile(path string) (*Capabilities, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("capability document must be .yaml, .yml or .json, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read capability document: %w", err)
	}

	var caps *Capabilities
	if ext == ".json" {
		caps = &Capabilities{}
		if err := json.Unmarshal(data, caps); err != nil {
			return nil, fmt.Errorf("failed to parse capability document: %w", err)
		}
		if err := caps.Check(); err != nil {
			return nil, fmt.Errorf("invalid capability document: %w", err)
		}
	} else {
		caps, err = Load(data)
		if err != nil {
			return nil, err
		}
	}

	if caps.Name == "" {
		caps.Name = strings.TrimSuffix(filepath.Base(cleanPath), ext)
	}
	return caps, nil
}
