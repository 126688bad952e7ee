package heatmap

import (
	"strings"

	"github.com/dtnitsch/keyheat/models"
	"github.com/dtnitsch/keyheat/pkg/analytics"
	"github.com/dtnitsch/keyheat/pkg/keymap"
)

var (
	// DefaultOffset shifts each successive layout down by one layout height.
	DefaultOffset = models.Offset{X: 0, Y: 300}
	// DefaultTitlePos is where a layout's name is drawn, before the layout offset.
	DefaultTitlePos = models.Offset{X: 150, Y: 30}
)

// Instruction tells a renderer to draw one key.
type Instruction struct {
	Label string  `json:"label" yaml:"label"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Count int     `json:"count" yaml:"count"`
	Color HSL     `json:"color" yaml:"color"`
}

// LayoutRender holds the instructions for one layout.
type LayoutRender struct {
	Name   string        `json:"name" yaml:"name"`
	Title  string        `json:"title" yaml:"title"`
	TitleX float64       `json:"title_x" yaml:"title_x"`
	TitleY float64       `json:"title_y" yaml:"title_y"`
	Max    int           `json:"max" yaml:"max"`
	Keys   []Instruction `json:"keys" yaml:"keys"`
}

type Composition struct {
	Strategy string         `json:"strategy" yaml:"strategy"`
	Scope    string         `json:"scope" yaml:"scope"`
	Layouts  []LayoutRender `json:"layouts" yaml:"layouts"`
}

// Compositor lays out several layouts, each shifted by index*Offset.
type Compositor struct {
	Normalizer *keymap.Normalizer
	Strategy   Strategy
	Offset     models.Offset
	Scope      models.MaxScope
	TitlePos   models.Offset
}

func NewCompositor(n *keymap.Normalizer, s Strategy, offset models.Offset, scope models.MaxScope) *Compositor {
	if n == nil {
		n = keymap.NewNormalizer(nil)
	}
	if s == nil {
		s = LightnessSweep{}
	}
	return &Compositor{
		Normalizer: n,
		Strategy:   s,
		Offset:     offset,
		Scope:      scope,
		TitlePos:   DefaultTitlePos,
	}
}

// Compose resolves every key of every layout, in list order, to a colored
// render instruction. Nothing is drawn here.
func (c *Compositor) Compose(layouts []models.Layout, freq *analytics.Counter[string]) Composition {
	comp := Composition{
		Strategy: c.Strategy.Name(),
		Scope:    c.Scope.String(),
		Layouts:  make([]LayoutRender, 0, len(layouts)),
	}

	globalMax := freq.Max()

	for i, layout := range layouts {
		dx := float64(i) * c.Offset.X
		dy := float64(i) * c.Offset.Y

		counts := make([]int, len(layout.Keys))
		layoutMax := 0
		for j, key := range layout.Keys {
			counts[j] = c.Normalizer.Resolve(key.Key, freq)
			if counts[j] > layoutMax {
				layoutMax = counts[j]
			}
		}

		scale := globalMax
		if c.Scope == models.MaxScopeLayout {
			scale = layoutMax
		}

		render := LayoutRender{
			Name:   layout.Name,
			Title:  strings.ToUpper(layout.Name),
			TitleX: c.TitlePos.X + dx,
			TitleY: c.TitlePos.Y + dy,
			Max:    scale,
			Keys:   make([]Instruction, len(layout.Keys)),
		}
		for j, key := range layout.Keys {
			render.Keys[j] = Instruction{
				Label: key.Key,
				X:     key.X + dx,
				Y:     key.Y + dy,
				Count: counts[j],
				Color: c.Strategy.Color(counts[j], scale),
			}
		}
		comp.Layouts = append(comp.Layouts, render)
	}

	return comp
}
