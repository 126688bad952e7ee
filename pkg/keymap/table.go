package keymap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTable reads a YAML alias file and merges it over the default table.
//
//	tab: ["<Tab>", "tab"]
//	muhenkan: ["<Unknown(235)>"]
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias table: %w", err)
	}

	var overrides map[string][]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse alias table %s: %w", path, err)
	}

	return DefaultTable().WithOverrides(overrides), nil
}
