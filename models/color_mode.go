package models

import (
	"fmt"
	"strings"
)

// ColorMode selects how a frequency ratio is turned into a color.
type ColorMode int

const (
	// ColorModeLightness sweeps lightness from 90% to 30% at a fixed red hue.
	ColorModeLightness ColorMode = iota
	ColorModeHue // blue (240) to red (0) at fixed lightness
)

func (m ColorMode) String() string {
	switch m {
	case ColorModeHue:
		return "hue"
	default:
		return "lightness"
	}
}

// ParseColorMode accepts the short and long spellings of each mode.
// The empty string resolves to the default lightness sweep.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lightness", "lightness-sweep":
		return ColorModeLightness, nil
	case "hue", "hue-sweep":
		return ColorModeHue, nil
	default:
		return 0, fmt.Errorf("unknown color strategy %q (want hue or lightness)", s)
	}
}

// MaxScope decides which keys contribute to the maximum frequency that colors
// are scaled against.
type MaxScope int

const (
	// MaxScopeGlobal scans every token in the frequency mapping.
	MaxScopeGlobal MaxScope = iota
	MaxScopeLayout // only keys resolved for the layout being drawn
)

func (s MaxScope) String() string {
	if s == MaxScopeLayout {
		return "layout"
	}
	return "global"
}

func ParseMaxScope(s string) (MaxScope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "global":
		return MaxScopeGlobal, nil
	case "layout":
		return MaxScopeLayout, nil
	default:
		return 0, fmt.Errorf("unknown max scope %q (want global or layout)", s)
	}
}
