// Package models defines data structures for configuration and layouts.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "keyheat.yaml"

// Offset is the spatial shift applied per layout index when several layouts
// are composed into one picture.
type Offset struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Config holds runtime configuration. Values come from an optional YAML file
// and are overridden by CLI flags.
type Config struct {
	Layouts   []string            `yaml:"layouts"`
	LayoutDir string              `yaml:"layout_dir"`
	LayoutURL string              `yaml:"layout_url,omitempty"`
	LayoutDB  string              `yaml:"layout_db,omitempty"`
	CacheDir  string              `yaml:"cache_dir"`
	CacheTTL  time.Duration       `yaml:"cache_ttl"`
	Strategy  string              `yaml:"strategy"`
	Scope     string              `yaml:"scope"`
	Offset    Offset              `yaml:"offset"`
	TopN      int                 `yaml:"top_n"`
	Locale    string              `yaml:"locale"` // empty prints every supported locale
	AliasFile string              `yaml:"alias_file,omitempty"`
	Aliases   map[string][]string `yaml:"aliases,omitempty"`
	Workers   int                 `yaml:"workers"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Layouts:   []string{"qwerty"},
		LayoutDir: "layouts",
		CacheDir:  ".keyheat-cache",
		CacheTTL:  24 * time.Hour,
		Strategy:  ColorModeLightness.String(),
		Scope:     MaxScopeGlobal.String(),
		Offset:    Offset{X: 0, Y: 300},
		TopN:      10,
		Workers:   4,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
// A missing file is not an error; the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enumerated fields and numeric bounds.
func (c *Config) Validate() error {
	if _, err := ParseColorMode(c.Strategy); err != nil {
		return err
	}
	if _, err := ParseMaxScope(c.Scope); err != nil {
		return err
	}
	if c.TopN < 0 {
		return fmt.Errorf("top_n must not be negative, got %d", c.TopN)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
