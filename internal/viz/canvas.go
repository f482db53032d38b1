package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = rune(0x2800)

// litThreshold is the brightest channel value at which a sub-pixel shows.
const litThreshold = 0.06

// Canvas is a color sub-pixel buffer shown as braille cells. Each terminal
// cell holds 2x4 sub-pixels; draw calls take logical coordinates scaled by
// the ratio passed to Resize.
type Canvas struct {
	Width, Height int

	subW, subH int
	dpr        float64
	pix        []colorful.Color
}

func NewCanvas(cols, rows int, dpr float64) *Canvas {
	c := &Canvas{}
	c.Resize(float64(cols*2)/nonZero(dpr), float64(rows*4)/nonZero(dpr), dpr)
	return c
}

// Resize sets the sub-pixel grid to round(width*dpr) x round(height*dpr) and
// clears it to black.
func (c *Canvas) Resize(width, height, dpr float64) {
	c.dpr = nonZero(dpr)
	c.subW = int(math.Round(math.Max(width, 0) * c.dpr))
	c.subH = int(math.Round(math.Max(height, 0) * c.dpr))
	c.Width = (c.subW + 1) / 2
	c.Height = (c.subH + 3) / 4
	c.pix = make([]colorful.Color, c.subW*c.subH)
}

func (c *Canvas) SubPixels() (int, int) { return c.subW, c.subH }

// FillRect composites c over every sub-pixel whose center lies in the rect.
func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	src, a := toColorful(col)
	if a == 0 {
		return
	}
	x0, x1 := c.span(x, x+w, c.subW)
	y0, y1 := c.span(y, y+h, c.subH)
	for sy := y0; sy < y1; sy++ {
		for sx := x0; sx < x1; sx++ {
			c.blend(sx, sy, src, a)
		}
	}
}

// FillCircle lights every sub-pixel whose center is within r. A circle
// smaller than one sub-pixel still lights the one under its center.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.Color) {
	if r <= 0 {
		return
	}
	src, a := toColorful(col)
	if a == 0 {
		return
	}
	scx, scy := cx*c.dpr, cy*c.dpr
	sr := math.Max(r*c.dpr, 0.5)
	x0 := int(math.Floor(scx - sr))
	x1 := int(math.Ceil(scx + sr))
	y0 := int(math.Floor(scy - sr))
	y1 := int(math.Ceil(scy + sr))
	for sy := max(y0, 0); sy < min(y1, c.subH); sy++ {
		for sx := max(x0, 0); sx < min(x1, c.subW); sx++ {
			dx := float64(sx) + 0.5 - scx
			dy := float64(sy) + 0.5 - scy
			if dx*dx+dy*dy <= sr*sr {
				c.blend(sx, sy, src, a)
			}
		}
	}
}

// At returns the color of sub-pixel (x, y).
func (c *Canvas) At(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= c.subW || y >= c.subH {
		return colorful.Color{}
	}
	return c.pix[y*c.subW+x]
}

// Cell returns the braille rune for a terminal cell and the mean color of
// its lit sub-pixels.
func (c *Canvas) Cell(col, row int) (rune, colorful.Color) {
	r := blank
	var sum colorful.Color
	lit := 0
	for dy := 0; dy < 4; dy++ {
		for dx := 0; dx < 2; dx++ {
			p := c.At(col*2+dx, row*4+dy)
			if math.Max(p.R, math.Max(p.G, p.B)) < litThreshold {
				continue
			}
			r |= rune(pixelMap[dy][dx])
			sum.R += p.R
			sum.G += p.G
			sum.B += p.B
			lit++
		}
	}
	if lit == 0 {
		return r, sum
	}
	n := float64(lit)
	return r, colorful.Color{R: sum.R / n, G: sum.G / n, B: sum.B / n}
}

// String renders the canvas row by row, grouping runs of cells that share a
// color into one styled segment.
func (c *Canvas) String() string {
	var b strings.Builder
	var run strings.Builder
	for row := 0; row < c.Height; row++ {
		hex := ""
		for col := 0; col < c.Width; col++ {
			r, clr := c.Cell(col, row)
			h := ""
			if r != blank {
				h = clr.Clamped().Hex()
			}
			if h != hex && run.Len() > 0 {
				b.WriteString(paint(run.String(), hex))
				run.Reset()
			}
			hex = h
			run.WriteRune(r)
		}
		b.WriteString(paint(run.String(), hex))
		run.Reset()
		b.WriteString("\n")
	}
	return b.String()
}

func paint(s, hex string) string {
	if hex == "" {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(s)
}

func (c *Canvas) span(lo, hi float64, limit int) (int, int) {
	a := int(math.Ceil(lo*c.dpr - 0.5))
	b := int(math.Ceil(hi*c.dpr - 0.5))
	return max(a, 0), min(b, limit)
}

func (c *Canvas) blend(x, y int, src colorful.Color, a float64) {
	i := y*c.subW + x
	dst := c.pix[i]
	c.pix[i] = colorful.Color{
		R: src.R*a + dst.R*(1-a),
		G: src.G*a + dst.G*(1-a),
		B: src.B*a + dst.B*(1-a),
	}
}

// toColorful splits a color into straight (non-premultiplied) RGB and alpha.
func toColorful(c color.Color) (colorful.Color, float64) {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return colorful.Color{}, 0
	}
	fa := float64(a)
	return colorful.Color{R: float64(r) / fa, G: float64(g) / fa, B: float64(b) / fa}, fa / 0xffff
}

func nonZero(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}
