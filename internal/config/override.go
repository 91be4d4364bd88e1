package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// OverrideFile is the per-directory override filename
const OverrideFile = "reactlint.toml"

// Override adjusts classification options for one directory subtree.
// Nil pointer fields mean "inherit from the project configuration".
type Override struct {
	// IgnorePureComponentBase overrides Rule.IgnorePureComponentBase
	IgnorePureComponentBase *bool `toml:"ignore_pure_component_base,omitempty"`

	// ReactVersion overrides Rule.ReactVersion
	ReactVersion *string `toml:"react_version,omitempty"`

	// Exclude adds glob patterns excluded within this subtree
	Exclude []string `toml:"exclude,omitempty"`
}

// ParseOverrideFile parses a reactlint.toml file from the given path
func ParseOverrideFile(filePath string) (*Override, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", OverrideFile, err)
	}

	var override Override
	if err := toml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", OverrideFile, err)
	}

	return &override, nil
}

// WithOverride returns a copy of the configuration with the override's
// engine options applied. A nil override returns the receiver unchanged.
// Exclude patterns are not merged here: they are relative to the override
// file's directory and the discovery layer applies them in that scope.
func (c *Config) WithOverride(o *Override) *Config {
	if o == nil {
		return c
	}

	merged := *c
	if o.IgnorePureComponentBase != nil {
		merged.Rule.IgnorePureComponentBase = *o.IgnorePureComponentBase
	}
	if o.ReactVersion != nil {
		merged.Rule.ReactVersion = *o.ReactVersion
	}

	return &merged
}
