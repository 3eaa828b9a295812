// Package config loads the taxonomy configuration file and resolves it
// against the compiled-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nomenworks/nomen/pkg/nomen"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "NOMEN_CONFIG"

// LayerConfig is one layer vocabulary entry in the file.
type LayerConfig struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label,omitempty"`
}

// ProfilesConfig overrides the profile field sets.
type ProfilesConfig struct {
	Light []string `yaml:"light,omitempty"`
	Full  []string `yaml:"full,omitempty"`
}

// TaxonomyConfig is the YAML schema of the configuration file. Every
// section is optional; omitted sections keep their defaults.
type TaxonomyConfig struct {
	Layers        []LayerConfig     `yaml:"layers,omitempty"`
	Extensions    []string          `yaml:"extensions,omitempty"`
	SidecarSuffix string            `yaml:"sidecar_suffix,omitempty"`
	Manifest      string            `yaml:"manifest,omitempty"`
	Ignore        []string          `yaml:"ignore,omitempty"`
	Profiles      ProfilesConfig    `yaml:"profiles,omitempty"`
	Fields        map[string]string `yaml:"fields,omitempty"`
}

// Load reads the configuration file at the tree root.
func Load(treePath string) (*TaxonomyConfig, error) {
	return LoadFile(filepath.Join(treePath, nomen.DefaultConfigFileName))
}

// LoadFile reads a configuration file at an explicit path.
func LoadFile(configPath string) (*TaxonomyConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg TaxonomyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %v: %w", configPath, err, nomen.ErrInvalidConfig)
	}
	return &cfg, nil
}

// Taxonomy merges the file over the defaults and validates the result.
func (c *TaxonomyConfig) Taxonomy() (*nomen.Taxonomy, error) {
	tax := nomen.DefaultTaxonomy()

	if len(c.Layers) > 0 {
		tax.Layers = make([]nomen.Layer, len(c.Layers))
		for i, l := range c.Layers {
			tax.Layers[i] = nomen.Layer{Name: l.Name, Label: l.Label}
		}
	}
	if len(c.Extensions) > 0 {
		tax.Extensions = append([]string(nil), c.Extensions...)
	}
	if c.SidecarSuffix != "" {
		tax.SidecarSuffix = c.SidecarSuffix
	}
	if c.Manifest != "" {
		tax.ManifestName = c.Manifest
	}
	if len(c.Ignore) > 0 {
		tax.Ignore = append([]string(nil), c.Ignore...)
	}
	if len(c.Profiles.Light) > 0 {
		tax.LightFields = append([]string(nil), c.Profiles.Light...)
	}
	if len(c.Profiles.Full) > 0 {
		tax.FullFields = append([]string(nil), c.Profiles.Full...)
	}
	// Field kind assignments layer on top of the defaults so a file can
	// add custom fields without restating created/tags/layer.
	for field, kind := range c.Fields {
		tax.FieldKinds[field] = nomen.FieldKind(kind)
	}

	if err := tax.Validate(); err != nil {
		return nil, err
	}
	return tax, nil
}

// Resolve produces the taxonomy for a pass: an explicit path (flag,
// then NOMEN_CONFIG) wins, otherwise the file at the tree root, and a
// tree without a file runs on the defaults.
func Resolve(treePath, explicitPath string) (*nomen.Taxonomy, error) {
	if explicitPath == "" {
		explicitPath = os.Getenv(EnvConfigPath)
	}

	var (
		cfg *TaxonomyConfig
		err error
	)
	switch {
	case explicitPath != "":
		cfg, err = LoadFile(explicitPath)
		if err != nil {
			// An explicitly named file must exist.
			return nil, fmt.Errorf("loading %s: %v: %w", explicitPath, err, nomen.ErrInvalidConfig)
		}
	default:
		cfg, err = Load(treePath)
		if errors.Is(err, ErrConfigNotFound) {
			return nomen.DefaultTaxonomy(), nil
		}
		if err != nil {
			return nil, err
		}
	}

	return cfg.Taxonomy()
}
