// Package config loads the YAML description of a database, its models and
// the resources served from them.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables overriding file values.
const (
	EnvDatabase      = "REDI_RECORDS_DATABASE"
	EnvLogLevel      = "REDI_RECORDS_LOG_LEVEL"
	EnvStrictFilters = "REDI_RECORDS_STRICT_FILTERS"
)

const DefaultLogLevel = "info"

// Config is the root of a configuration file.
type Config struct {
	Database      string           `yaml:"database"`
	LogLevel      string           `yaml:"log_level"`
	StrictFilters bool             `yaml:"strict_filters"`
	Models        []ModelConfig    `yaml:"models"`
	Resources     []ResourceConfig `yaml:"resources"`
}

// ModelConfig describes one table.
type ModelConfig struct {
	Name         string              `yaml:"name"`
	Table        string              `yaml:"table,omitempty"`
	Fields       []FieldConfig       `yaml:"fields"`
	Associations []AssociationConfig `yaml:"associations,omitempty"`
}

type FieldConfig struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Column     string `yaml:"column,omitempty"`
	PrimaryKey bool   `yaml:"primary_key,omitempty"`
	Nullable   bool   `yaml:"nullable,omitempty"`
}

// AssociationConfig declares a model association. Kind is one of
// belongs_to, has_one or has_many.
type AssociationConfig struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Model      string `yaml:"model"`
	ForeignKey string `yaml:"foreign_key,omitempty"`
}

// ResourceConfig declares a resource served from a model.
type ResourceConfig struct {
	Name          string               `yaml:"name"`
	Model         string               `yaml:"model"`
	PrimaryKey    string               `yaml:"primary_key,omitempty"`
	DefaultSort   string               `yaml:"default_sort,omitempty"`
	Relationships []RelationshipConfig `yaml:"relationships,omitempty"`
	Filters       []FilterConfig       `yaml:"filters,omitempty"`
}

// RelationshipConfig links a resource to another one. Kind is to_one or
// to_many.
type RelationshipConfig struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Resource   string `yaml:"resource"`
	BelongsTo  bool   `yaml:"belongs_to,omitempty"`
	ForeignKey string `yaml:"foreign_key,omitempty"`
	Relation   string `yaml:"relation,omitempty"`
}

// FilterConfig declares a filter. A filter with a delegate is applied by
// the function registered under that name when building the catalog.
type FilterConfig struct {
	Name     string `yaml:"name"`
	Delegate string `yaml:"delegate,omitempty"`
}

// Load reads the file at path, applies environment overrides and validates
// the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data, applies environment overrides and validates the
// result.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvStrictFilters); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvStrictFilters, err)
		}
		c.StrictFilters = strict
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Resource returns the resource declared under name.
func (c *Config) Resource(name string) (*ResourceConfig, bool) {
	for i := range c.Resources {
		if c.Resources[i].Name == name {
			return &c.Resources[i], true
		}
	}
	return nil, false
}

// DropDelegateFilters removes every filter that names a delegate and
// returns them as "<resource>.<filter>". Callers that cannot supply
// delegate functions use it before Build.
func (c *Config) DropDelegateFilters() []string {
	var dropped []string
	for i := range c.Resources {
		res := &c.Resources[i]
		kept := res.Filters[:0]
		for _, f := range res.Filters {
			if f.Delegate != "" {
				dropped = append(dropped, res.Name+"."+f.Name)
				continue
			}
			kept = append(kept, f)
		}
		res.Filters = kept
	}
	return dropped
}

func (c *Config) model(name string) (*ModelConfig, bool) {
	for i := range c.Models {
		if c.Models[i].Name == name {
			return &c.Models[i], true
		}
	}
	return nil, false
}
