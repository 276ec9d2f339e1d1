package charts

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// fonts are parsed once; faces are created per canvas since a face caches
// glyphs and is not safe for concurrent use
type fonts struct {
	regular *truetype.Font
	bold    *truetype.Font
}

func loadFonts() (*fonts, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return &fonts{regular: regular, bold: bold}, nil
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// bar is one bar of a bar chart; a NaN value draws no bar
type bar struct {
	Label string
	Value float64
	Color string
	Text  string
}

// canvas is a chart image with a title and a plot area
type canvas struct {
	dc    *gg.Context
	style Style

	text  font.Face
	small font.Face
	title font.Face

	left, top, right, bottom float64
}

func (r *Renderer) newCanvas(title string) *canvas {
	s := r.style
	c := &canvas{
		dc:    gg.NewContext(s.Width, s.Height),
		style: s,
		text:  newFace(r.fonts.regular, s.FontSize),
		small: newFace(r.fonts.regular, s.FontSize*0.85),
		title: newFace(r.fonts.bold, s.FontSize*1.4),
	}

	c.dc.SetHexColor(s.Palette.Background)
	c.dc.Clear()

	c.dc.SetFontFace(c.title)
	c.dc.SetHexColor(s.Palette.Text)
	c.dc.DrawStringAnchored(title, float64(s.Width)/2, s.FontSize*1.6, 0.5, 0.5)

	pad := s.FontSize
	c.left = pad * 4
	c.top = s.FontSize * 3.5
	c.right = float64(s.Width) - pad*2
	c.bottom = float64(s.Height) - s.FontSize*3.5
	return c
}

func (c *canvas) plotWidth() float64  { return c.right - c.left }
func (c *canvas) plotHeight() float64 { return c.bottom - c.top }

// measure returns the width of the widest string in the given face
func (c *canvas) measure(face font.Face, values ...string) float64 {
	c.dc.SetFontFace(face)
	widest := 0.0
	for _, v := range values {
		w, _ := c.dc.MeasureString(v)
		widest = math.Max(widest, w)
	}
	return widest
}

func (c *canvas) label(face font.Face, hex, s string, x, y, ax, ay float64) {
	c.dc.SetFontFace(face)
	c.dc.SetHexColor(hex)
	c.dc.DrawStringAnchored(s, x, y, ax, ay)
}

func (c *canvas) line(hex string, width, x1, y1, x2, y2 float64) {
	c.dc.SetHexColor(hex)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
}

func (c *canvas) rect(hex string, x, y, w, h float64) {
	c.dc.SetHexColor(hex)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

// xAxis draws vertical grid lines with tick labels under the plot
func (c *canvas) xAxis(top float64, format func(float64) string, caption string) {
	for _, v := range ticks(top) {
		x := c.left + v/top*c.plotWidth()
		c.line(c.style.Palette.Grid, 1, x, c.top, x, c.bottom)
		c.label(c.small, c.style.Palette.Text, format(v), x, c.bottom+c.style.FontSize*0.9, 0.5, 0.5)
	}
	c.line(c.style.Palette.Axis, 1.5, c.left, c.top, c.left, c.bottom)
	c.label(c.text, c.style.Palette.Text, caption, c.left+c.plotWidth()/2, c.bottom+c.style.FontSize*2.4, 0.5, 0.5)
}

// yAxis draws horizontal grid lines with tick labels left of the plot
func (c *canvas) yAxis(top float64, format func(float64) string, caption string) {
	for _, v := range ticks(top) {
		y := c.bottom - v/top*c.plotHeight()
		c.line(c.style.Palette.Grid, 1, c.left, y, c.right, y)
		c.label(c.small, c.style.Palette.Text, format(v), c.left-c.style.FontSize*0.4, y, 1, 0.5)
	}
	c.line(c.style.Palette.Axis, 1.5, c.left, c.bottom, c.right, c.bottom)

	c.dc.Push()
	x, y := c.style.FontSize, c.top+c.plotHeight()/2
	c.dc.RotateAbout(gg.Radians(-90), x, y)
	c.label(c.text, c.style.Palette.Text, caption, x, y, 0.5, 0.5)
	c.dc.Pop()
}

// horizontalBars draws bars top to bottom in the given order
func (c *canvas) horizontalBars(bars []bar, top float64, format func(float64) string, caption string) {
	labels := make([]string, len(bars))
	texts := make([]string, len(bars))
	for i, b := range bars {
		labels[i] = b.Label
		texts[i] = b.Text
	}
	c.left = c.style.FontSize + c.measure(c.text, labels...) + c.style.FontSize*0.6
	c.right -= c.measure(c.small, texts...)

	c.xAxis(top, format, caption)
	if len(bars) == 0 {
		return
	}

	band := c.plotHeight() / float64(len(bars))
	for i, b := range bars {
		cy := c.top + band*(float64(i)+0.5)
		c.label(c.text, c.style.Palette.Text, b.Label, c.left-c.style.FontSize*0.4, cy, 1, 0.5)

		end := c.left
		if !math.IsNaN(b.Value) {
			w := math.Min(b.Value, top) / top * c.plotWidth()
			c.rect(b.Color, c.left, cy-band*0.35, w, band*0.7)
			end += w
		}
		c.label(c.small, c.style.Palette.Text, b.Text, end+c.style.FontSize*0.3, cy, 0, 0.5)
	}
}

// verticalBars draws bars left to right; labels are rotated when crowded
func (c *canvas) verticalBars(bars []bar, top float64, format func(float64) string, caption, xCaption string) {
	labels := make([]string, len(bars))
	for i, b := range bars {
		labels[i] = b.Label
	}

	band := c.plotWidth() / math.Max(1, float64(len(bars)))
	rotate := c.measure(c.text, labels...) > band*0.9
	if rotate {
		c.bottom -= c.measure(c.text, labels...) * 0.45
	}
	if xCaption != "" {
		c.bottom -= c.style.FontSize * 1.2
		c.label(c.text, c.style.Palette.Text, xCaption, c.left+c.plotWidth()/2, float64(c.style.Height)-c.style.FontSize, 0.5, 0.5)
	}

	c.yAxis(top, format, caption)

	for i, b := range bars {
		cx := c.left + band*(float64(i)+0.5)
		if !math.IsNaN(b.Value) {
			h := math.Min(b.Value, top) / top * c.plotHeight()
			c.rect(b.Color, cx-band*0.35, c.bottom-h, band*0.7, h)
			c.label(c.small, c.style.Palette.Text, b.Text, cx, c.bottom-h-c.style.FontSize*0.6, 0.5, 0.5)
		} else {
			c.label(c.small, c.style.Palette.Text, b.Text, cx, c.bottom-c.style.FontSize*0.6, 0.5, 0.5)
		}
		c.xTickLabel(b.Label, cx, rotate)
	}
}

func (c *canvas) xTickLabel(s string, x float64, rotate bool) {
	y := c.bottom + c.style.FontSize*0.5
	if !rotate {
		c.label(c.text, c.style.Palette.Text, s, x, y, 0.5, 1)
		return
	}
	c.dc.Push()
	c.dc.RotateAbout(gg.Radians(-25), x, y)
	c.label(c.text, c.style.Palette.Text, s, x, y, 1, 1)
	c.dc.Pop()
}

func (c *canvas) png() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ticks returns six evenly spaced values from 0 to top
func ticks(top float64) []float64 {
	out := make([]float64, 0, 6)
	for i := 0; i <= 5; i++ {
		out = append(out, top*float64(i)/5)
	}
	return out
}

// niceMax rounds v up to a 1, 2, 2.5 or 5 multiple of a power of ten so five
// ticks land on round numbers
func niceMax(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if v <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}
