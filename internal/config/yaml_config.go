package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// The category partition list is hierarchical and easier to manage in
// YAML than in env vars.
type YAMLConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
	Catalog    CatalogConfig    `yaml:"catalog"`
}

// CategoryConfig defines one category partition of the remote catalog
// that is searched independently.
type CategoryConfig struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`     // catalog "types" filter value, e.g. "LORA"
	Disabled bool   `yaml:"disabled"` // skip this partition without deleting it
}

// CatalogConfig overrides catalog query tuning from YAML.
type CatalogConfig struct {
	PageLimit int   `yaml:"page_limit,omitempty"`
	NSFW      *bool `yaml:"nsfw,omitempty"`
}

// DefaultCategories are the partitions searched when no config file is
// present: the two LoRA-style model classifications of the catalog.
var DefaultCategories = []string{"LORA", "LoCon"}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// CategoryTypes returns the enabled partition type filters, falling
// back to DefaultCategories when the receiver is nil or empty.
func (c *YAMLConfig) CategoryTypes() []string {
	if c == nil || len(c.Categories) == 0 {
		return DefaultCategories
	}
	var types []string
	for _, cat := range c.Categories {
		if cat.Disabled || cat.Type == "" {
			continue
		}
		types = append(types, cat.Type)
	}
	if len(types) == 0 {
		return DefaultCategories
	}
	return types
}

// Apply folds YAML overrides into the env-derived config.
func (c *YAMLConfig) Apply(cfg *Config) {
	if c == nil {
		return
	}
	if c.Catalog.PageLimit > 0 {
		cfg.CatalogLimit = c.Catalog.PageLimit
	}
	if c.Catalog.NSFW != nil {
		cfg.CatalogNSFW = *c.Catalog.NSFW
	}
}
