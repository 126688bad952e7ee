// Package render draws a heatmap composition, either to a PNG image or as
// styled text for a terminal.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/dtnitsch/keyheat/pkg/heatmap"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

var (
	labelColor = color.RGBA{R: 0x77, G: 0x77, B: 0x77, A: 0xff}
	titleColor = color.RGBA{A: 0xff}
)

// PNGOptions controls the image geometry.
type PNGOptions struct {
	Radius     float64
	LabelSize  float64
	TitleSize  float64
	Margin     int
	Background color.Color
}

func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Radius:     20,
		LabelSize:  20,
		TitleSize:  16,
		Margin:     20,
		Background: color.White,
	}
}

func loadFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Draw renders comp onto a canvas sized to fit every key and title.
func Draw(comp heatmap.Composition, opts PNGOptions) (*image.RGBA, error) {
	labelFace, err := loadFace(opts.LabelSize)
	if err != nil {
		return nil, err
	}
	titleFace, err := loadFace(opts.TitleSize)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(canvasBounds(comp, opts, titleFace))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	for _, l := range comp.Layouts {
		drawCentered(img, titleFace, titleColor, l.Title, l.TitleX, l.TitleY, false)
		for _, k := range l.Keys {
			fillCircle(img, k.X, k.Y, opts.Radius, k.Color.RGBA())
			drawCentered(img, labelFace, labelColor, k.Label, k.X, k.Y, true)
		}
	}
	return img, nil
}

// PNG encodes the rendered composition to w.
func PNG(w io.Writer, comp heatmap.Composition, opts PNGOptions) error {
	img, err := Draw(comp, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

func canvasBounds(comp heatmap.Composition, opts PNGOptions, titleFace font.Face) image.Rectangle {
	maxX, maxY := 0.0, 0.0
	for _, l := range comp.Layouts {
		half := float64(font.MeasureString(titleFace, l.Title).Ceil()) / 2
		maxX = math.Max(maxX, l.TitleX+half)
		maxY = math.Max(maxY, l.TitleY)
		for _, k := range l.Keys {
			maxX = math.Max(maxX, k.X+opts.Radius)
			maxY = math.Max(maxY, k.Y+opts.Radius)
		}
	}
	return image.Rect(0, 0, int(math.Ceil(maxX))+opts.Margin, int(math.Ceil(maxY))+opts.Margin)
}

// drawCentered draws text horizontally centered on x. With middle set, y
// is the vertical center of the text; otherwise it is the baseline.
func drawCentered(img *image.RGBA, face font.Face, c color.Color, text string, x, y float64, middle bool) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}

	width := d.MeasureString(text)
	if !middle {
		d.Dot = freetype.Pt(int(math.Round(x))-width.Round()/2, int(math.Round(y)))
		d.DrawString(text)
		return
	}

	m := face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x*64)) - width/2,
		Y: fixed.Int26_6(math.Round(y*64)) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(text)
}

// circle is an alpha mask for a filled disc.
type circle struct {
	cx, cy, r float64
}

func (c circle) ColorModel() color.Model { return color.AlphaModel }

func (c circle) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(c.cx-c.r)), int(math.Floor(c.cy-c.r)),
		int(math.Ceil(c.cx+c.r))+1, int(math.Ceil(c.cy+c.r))+1,
	)
}

func (c circle) At(x, y int) color.Color {
	dx, dy := float64(x)+0.5-c.cx, float64(y)+0.5-c.cy
	if dx*dx+dy*dy <= c.r*c.r {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}

func fillCircle(img *image.RGBA, x, y, r float64, c color.RGBA) {
	mask := circle{cx: x, cy: y, r: r}
	draw.DrawMask(img, mask.Bounds(), image.NewUniform(c), image.Point{}, mask, mask.Bounds().Min, draw.Over)
}
