package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadAgentSpec reads, defaults and validates an agent definition from a
// YAML or JSON file.
func LoadAgentSpec(path string) (AgentSpec, error) {
	var spec AgentSpec
	if err := decodeFile(path, &spec); err != nil {
		return AgentSpec{}, err
	}
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return AgentSpec{}, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// LoadPipelineSpec reads, defaults and validates a pipeline definition from
// a YAML or JSON file.
func LoadPipelineSpec(path string) (PipelineSpec, error) {
	var spec PipelineSpec
	if err := decodeFile(path, &spec); err != nil {
		return PipelineSpec{}, err
	}
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return PipelineSpec{}, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// LoadRoster resolves each named agent to a spec file under dir
// (<dir>/<name>.yaml, .yml or .json) and assembles the roster.
func LoadRoster(dir string, names []string) (*Roster, error) {
	roster, err := NewRoster()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		path, err := findSpecFile(dir, name)
		if err != nil {
			return nil, err
		}
		spec, err := LoadAgentSpec(path)
		if err != nil {
			return nil, err
		}
		if spec.Name != name {
			return nil, fmt.Errorf("%s: declares agent %q but file is referenced as %q", path, spec.Name, name)
		}
		if err := roster.Add(spec); err != nil {
			return nil, err
		}
	}
	return roster, nil
}

func findSpecFile(dir, name string) (string, error) {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("agent config not found for %q in %s", name, dir)
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	default:
		return fmt.Errorf("%s: unsupported config format %q, use .yaml, .yml or .json", path, ext)
	}
	return nil
}
