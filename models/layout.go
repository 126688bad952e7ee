package models

// LayoutKey is a printed key label and where it is drawn.
type LayoutKey struct {
	Key string  `json:"key" yaml:"key"`
	X   float64 `json:"x" yaml:"x"`
	Y   float64 `json:"y" yaml:"y"`
}

// Layout is a named, ordered set of keys loaded from a layout definition.
type Layout struct {
	Name string      `json:"name" yaml:"name"`
	Keys []LayoutKey `json:"keys" yaml:"keys"`
}
