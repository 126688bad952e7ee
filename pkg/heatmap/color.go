// Package heatmap turns resolved key frequencies into colors and composes
// per-layout render instructions.
package heatmap

import (
	"fmt"
	"image/color"
	"math"

	"github.com/dtnitsch/keyheat/models"
)

// HSL is a color in hue (degrees), saturation and lightness (percent).
type HSL struct {
	H int `json:"h" yaml:"h"`
	S int `json:"s" yaml:"s"`
	L int `json:"l" yaml:"l"`
}

func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// RGBA converts to an opaque sRGB color.
func (c HSL) RGBA() color.RGBA {
	h := math.Mod(float64(c.H), 360) / 360
	if h < 0 {
		h++
	}
	s := float64(c.S) / 100
	l := float64(c.L) / 100

	if s == 0 {
		v := uint8(math.Round(l * 255))
		return color.RGBA{R: v, G: v, B: v, A: 255}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return color.RGBA{
		R: uint8(math.Round(hueToRGB(p, q, h+1.0/3) * 255)),
		G: uint8(math.Round(hueToRGB(p, q, h) * 255)),
		B: uint8(math.Round(hueToRGB(p, q, h-1.0/3) * 255)),
		A: 255,
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// Hex renders the color as #rrggbb.
func (c HSL) Hex() string {
	rgb := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Ratio is f/m, or 0 when nothing was counted.
func Ratio(f, m int) float64 {
	if m == 0 {
		return 0
	}
	return float64(f) / float64(m)
}

// Strategy maps a frequency and the maximum frequency to a color.
type Strategy interface {
	Name() string
	Color(f, m int) HSL
}

// HueSweep goes from blue (hue 240) at zero to red (hue 0) at the maximum.
type HueSweep struct{}

func (HueSweep) Name() string { return models.ColorModeHue.String() }

func (HueSweep) Color(f, m int) HSL {
	return HSL{H: 240 - int(math.Floor(240*Ratio(f, m))), S: 100, L: 50}
}

// LightnessSweep keeps a red hue and darkens from 90% to 30% lightness.
type LightnessSweep struct{}

func (LightnessSweep) Name() string { return models.ColorModeLightness.String() }

func (LightnessSweep) Color(f, m int) HSL {
	return HSL{H: 0, S: 100, L: 90 - int(math.Floor(60*Ratio(f, m)))}
}

func StrategyFor(mode models.ColorMode) Strategy {
	if mode == models.ColorModeHue {
		return HueSweep{}
	}
	return LightnessSweep{}
}

func ParseStrategy(name string) (Strategy, error) {
	mode, err := models.ParseColorMode(name)
	if err != nil {
		return nil, err
	}
	return StrategyFor(mode), nil
}
