// Package config handles capability configuration for automation sessions.
package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the capability file is looked up when the caller
// doesn't specify one.
const DefaultPath = "config/capabilities.yaml"

// Capabilities is a set of session capabilities: a mapping from capability
// names to values. Keys not understood by this layer are passed through to
// the automation server unchanged.
type Capabilities map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty, non-nil set.
func (c Capabilities) Clone() Capabilities {
	return Capabilities(lo.Assign(map[string]any(c)))
}

// Merge returns a copy with overrides applied on top; overrides win on
// conflicting keys.
func (c Capabilities) Merge(overrides Capabilities) Capabilities {
	return Capabilities(lo.Assign(map[string]any(c), map[string]any(overrides)))
}

// SetDefault sets key to value only when the key is absent.
func (c Capabilities) SetDefault(key string, value any) {
	if _, ok := c[key]; !ok {
		c[key] = value
	}
}

// String returns the capability as a string, with ok=false when the key is
// missing or holds a non-string value.
func (c Capabilities) String(key string) (string, bool) {
	v, ok := c[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// File represents the capability config document (capabilities.yaml) with
// one flat capability section per platform.
type File struct {
	Android Capabilities `yaml:"android"`
	IOS     Capabilities `yaml:"ios"`
}

// Load reads the capability file at path. A missing file is not an error:
// it degrades to an empty config with a warning, so sessions fall back to
// built-in defaults. Malformed YAML is an error.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("Capability config not found, using defaults")
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read capability config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse capability config: %w", err)
	}

	log.Info().Str("path", path).Msg("Loaded capability config")
	return &f, nil
}
